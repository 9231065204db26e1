// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>
package cache

import "sync/atomic"

// Stats counts cache lookups. The zero value is ready to use.
type Stats struct {
	hit, miss atomic.Int64
}

// Hit records a hit and returns the running total.
func (cs *Stats) Hit() int64 { return cs.hit.Add(1) }

// Miss records a miss and returns the running total.
func (cs *Stats) Miss() int64 { return cs.miss.Add(1) }

// Snapshot returns the hits and misses so far.
func (cs *Stats) Snapshot() (hit, miss int64) {
	return cs.hit.Load(), cs.miss.Load()
}

// HitRate returns hits over lookups, 0 before the first lookup.
func (cs *Stats) HitRate() float64 {
	hit, miss := cs.Snapshot()
	if hit+miss == 0 {
		return 0
	}
	return float64(hit) / float64(hit+miss)
}
