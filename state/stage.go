// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"io"
	"slices"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/stakepool/stsol/cache"
	"github.com/stakepool/stsol/kv"
	"github.com/stakepool/stsol/sol"
)

// Stage abstracts a set of account changes ready to be committed.
type Stage struct {
	store   kv.Store
	cache   *cache.LRU[sol.Pubkey, *Account]
	addrs   []sol.Pubkey
	changes map[sol.Pubkey]*Account
}

func newStage(store kv.Store, c *cache.LRU[sol.Pubkey, *Account], changes map[sol.Pubkey]*Account) *Stage {
	addrs := make([]sol.Pubkey, 0, len(changes))
	for addr := range changes {
		addrs = append(addrs, addr)
	}
	slices.SortFunc(addrs, sol.Pubkey.Compare)
	return &Stage{store: store, cache: c, addrs: addrs, changes: changes}
}

// Len returns the number of changed accounts.
func (s *Stage) Len() int {
	return len(s.addrs)
}

// Changed returns the changed addresses in key order.
func (s *Stage) Changed() []sol.Pubkey {
	return slices.Clone(s.addrs)
}

// Hash computes a digest over the changed accounts.
func (s *Stage) Hash() sol.Pubkey {
	return sol.Blake2bFn(func(w io.Writer) {
		for _, addr := range s.addrs {
			w.Write(addr[:])
			rlp.Encode(w, s.changes[addr])
		}
	})
}

// Commit writes all changes in one bulk.
func (s *Stage) Commit() error {
	bulk := s.store.Bulk()
	for _, addr := range s.addrs {
		if err := saveAccount(bulk, addr, s.changes[addr]); err != nil {
			return &Error{err}
		}
	}
	if err := bulk.Write(); err != nil {
		return &Error{err}
	}
	metricAccountCounter().AddWithLabel(int64(len(s.addrs)), map[string]string{"type": "write", "target": "store"})
	if s.cache != nil {
		for _, addr := range s.addrs {
			s.cache.Add(addr, s.changes[addr])
		}
	}
	return nil
}
