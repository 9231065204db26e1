// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package perf

import (
	"github.com/pkg/errors"

	"github.com/stakepool/stsol/per64"
	"github.com/stakepool/stsol/program/reverts"
)

// MaxCommission is the highest commission a validator can charge, in percent.
const MaxCommission uint8 = 100

// Criteria are the pool wide thresholds a validator has to meet. A validator
// violating any of them gets deactivated.
type Criteria struct {
	MaxCommission          uint8       `json:"maxCommission" yaml:"max-commission"`
	MinBlockProductionRate per64.Ratio `json:"minBlockProductionRate" yaml:"min-block-production-rate"`
	MinVoteSuccessRate     per64.Ratio `json:"minVoteSuccessRate" yaml:"min-vote-success-rate"`
	MinUptime              per64.Ratio `json:"minUptime" yaml:"min-uptime"`
}

// DefaultCriteria accepts every validator.
func DefaultCriteria() Criteria {
	return Criteria{MaxCommission: MaxCommission}
}

func (c *Criteria) Validate() error {
	if c.MaxCommission > MaxCommission {
		return errors.Wrapf(reverts.ErrValidationCommissionOutOfBounds, "max commission %d%%", c.MaxCommission)
	}
	return nil
}

// CommissionExceeds reports whether commission is above the maximum.
func (c *Criteria) CommissionExceeds(commission uint8) bool {
	return commission > c.MaxCommission
}

// MeetsCriteria reports whether the recorded performance satisfies c. A
// missing off-chain bundle counts as no evidence of a violation.
func (p *ValidatorPerf) MeetsCriteria(c *Criteria) bool {
	if c.CommissionExceeds(p.Commission) {
		return false
	}
	if p.Offchain == nil {
		return true
	}
	return p.Offchain.BlockProductionRate >= c.MinBlockProductionRate &&
		p.Offchain.VoteSuccessRate >= c.MinVoteSuccessRate &&
		p.Offchain.Uptime >= c.MinUptime
}
