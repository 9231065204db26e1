// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/stakepool/stsol/cache"
	"github.com/stakepool/stsol/kv"
	"github.com/stakepool/stsol/sol"
	"github.com/stakepool/stsol/stackedmap"
)

// AccountBucket is the kv bucket holding accounts.
const AccountBucket = kv.Bucket("a")

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// State manages the accounts ledger.
type State struct {
	store kv.Store                                     // the accounts bucket
	cache *cache.LRU[sol.Pubkey, *Account]             // committed accounts, never mutated
	sm    *stackedmap.StackedMap[sol.Pubkey, *Account] // keeps revisions of accounts
}

// New create state object.
func New(db kv.Store, c *cache.LRU[sol.Pubkey, *Account]) *State {
	s := State{
		store: AccountBucket.NewStore(db),
		cache: c,
	}
	s.sm = stackedmap.New(s.cacheGetter)
	return &s
}

// cacheGetter implements stackedmap.MapGetter.
func (s *State) cacheGetter(addr sol.Pubkey) (*Account, bool, error) {
	load := func(addr sol.Pubkey) (*Account, error) {
		metricAccountCounter().AddWithLabel(1, map[string]string{"type": "read", "target": "store"})
		return loadAccount(s.store, addr)
	}
	if s.cache == nil {
		a, err := load(addr)
		return a, err == nil, err
	}
	a, err := s.cache.GetOrLoad(addr, load)
	if err != nil {
		return nil, false, err
	}
	return a, true, nil
}

// getAccount gets account by address. the returned account should not be modified.
func (s *State) getAccount(addr sol.Pubkey) (*Account, error) {
	a, _, err := s.sm.Get(addr)
	if err != nil {
		return nil, &Error{err}
	}
	return a, nil
}

func (s *State) updateAccount(addr sol.Pubkey, a *Account) {
	s.sm.Put(addr, a)
}

// GetAccount returns a copy of the account at addr.
func (s *State) GetAccount(addr sol.Pubkey) (*Account, error) {
	a, err := s.getAccount(addr)
	if err != nil {
		return nil, err
	}
	return a.Copy(), nil
}

// SetAccount replaces the account at addr with a copy of a.
func (s *State) SetAccount(addr sol.Pubkey, a *Account) {
	s.updateAccount(addr, a.Copy())
}

// Exists returns whether the account at addr is not empty.
func (s *State) Exists(addr sol.Pubkey) (bool, error) {
	a, err := s.getAccount(addr)
	if err != nil {
		return false, err
	}
	return !a.IsEmpty(), nil
}

// Delete empties the account at addr.
func (s *State) Delete(addr sol.Pubkey) {
	s.updateAccount(addr, &emptyAccount)
}

// GetLamports returns the balance of addr.
func (s *State) GetLamports(addr sol.Pubkey) (uint64, error) {
	a, err := s.getAccount(addr)
	if err != nil {
		return 0, err
	}
	return a.Lamports, nil
}

// SetLamports sets the balance of addr.
func (s *State) SetLamports(addr sol.Pubkey, lamports uint64) error {
	a, err := s.getAccount(addr)
	if err != nil {
		return err
	}
	cpy := *a
	cpy.Lamports = lamports
	s.updateAccount(addr, &cpy)
	return nil
}

// GetOwner returns the owner program of addr.
func (s *State) GetOwner(addr sol.Pubkey) (sol.Pubkey, error) {
	a, err := s.getAccount(addr)
	if err != nil {
		return sol.Pubkey{}, err
	}
	return a.Owner, nil
}

// GetData returns a copy of the data held by addr.
func (s *State) GetData(addr sol.Pubkey) ([]byte, error) {
	a, err := s.getAccount(addr)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(a.Data), nil
}

// SetData replaces the data held by addr with a copy of data.
func (s *State) SetData(addr sol.Pubkey, data []byte) error {
	a, err := s.getAccount(addr)
	if err != nil {
		return err
	}
	cpy := *a
	cpy.Data = bytes.Clone(data)
	s.updateAccount(addr, &cpy)
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	if revision < 0 || revision > s.sm.Depth() {
		panic("invalid revision")
	}
	s.sm.PopTo(revision)
	if s.sm.Depth() == 0 {
		s.sm.Push()
	}
}

// Stage collects all changes since the state was created.
func (s *State) Stage() (*Stage, error) {
	changes := make(map[sol.Pubkey]*Account)
	s.sm.Journal(func(addr sol.Pubkey, a *Account) bool {
		changes[addr] = a
		return true
	})
	return newStage(s.store, s.cache, changes), nil
}
