// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import "github.com/stakepool/stsol/metrics"

var (
	metricInstructionCount    = metrics.LazyLoadCounterVec("instruction_count", []string{"instruction", "outcome"})
	metricInstructionDuration = metrics.LazyLoadHistogramVec("instruction_duration_us", []string{"instruction"}, metrics.BucketInstructionMicros)
	metricMintedStLamports    = metrics.LazyLoadCounterVec("minted_st_lamports", []string{"recipient"})
	metricPoolValue           = metrics.LazyLoadGaugeVec("pool_value", []string{"pool", "unit"})
)
