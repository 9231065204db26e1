// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/stakepool/stsol/cache"
	"github.com/stakepool/stsol/kv"
	"github.com/stakepool/stsol/sol"
)

// Stater is the state creator. States it creates share one account cache.
type Stater struct {
	db    kv.Store
	cache *cache.LRU[sol.Pubkey, *Account]
}

// NewStater create a new stater caching up to cacheSize accounts.
func NewStater(db kv.Store, cacheSize int) (*Stater, error) {
	c, err := cache.NewLRU[sol.Pubkey, *Account](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Stater{db, c}, nil
}

// NewState create a new state object.
func (s *Stater) NewState() *State {
	return New(s.db, s.cache)
}

// CacheStats returns the account cache hits, misses and hit rate.
func (s *Stater) CacheStats() (hit, miss int64, rate float64) {
	hit, miss = s.cache.Stats.Snapshot()
	return hit, miss, s.cache.Stats.HitRate()
}
