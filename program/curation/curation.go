// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package curation decides which validators should stop or resume receiving
// stake, based on their live commission and recorded performance.
package curation

import (
	"github.com/stakepool/stsol/log"
	"github.com/stakepool/stsol/metrics"
	"github.com/stakepool/stsol/program/perf"
	"github.com/stakepool/stsol/program/validator"
	"github.com/stakepool/stsol/sol"
)

const (
	// VoteCommissionOffset is the position of the commission byte in vote
	// account data.
	VoteCommissionOffset = 68
)

var (
	logger = log.WithContext("pkg", "curation")

	metricTransitions = metrics.LazyLoadCounterVec("curation_transitions_count", []string{"transition"})
)

// ReadVoteCommission extracts the commission from vote account data. It
// reports false when the data is too short, which means the vote account was
// closed.
func ReadVoteCommission(data []byte) (uint8, bool) {
	if len(data) <= VoteCommissionOffset {
		return 0, false
	}
	return data[VoteCommissionOffset], true
}

// CommissionReader returns the live commission of a vote account. ok is false
// when the vote account no longer exists.
type CommissionReader interface {
	Commission(vote sol.Pubkey) (commission uint8, ok bool, err error)
}

// Reason explains a violation.
type Reason string

const (
	ReasonCommission    Reason = "commission-exceeds-maximum"
	ReasonVoteClosed    Reason = "vote-account-closed"
	ReasonNoPerformance Reason = "no-performance-record"
	ReasonPerformance   Reason = "performance-below-criteria"
)

// Violation describes why a validator does not meet the criteria.
type Violation struct {
	Vote       sol.Pubkey `json:"vote"`
	Commission uint8      `json:"commission"`
	Reason     Reason     `json:"reason"`
}

// EvaluateDeactivation checks the live commission of an accepting validator
// against the maximum. It returns nil when the validator should keep
// receiving stake.
func EvaluateDeactivation(v *validator.Validator, commission uint8, live bool, criteria *perf.Criteria) *Violation {
	if !live {
		return &Violation{Vote: v.VoteAccount, Reason: ReasonVoteClosed}
	}
	if criteria.CommissionExceeds(commission) {
		return &Violation{Vote: v.VoteAccount, Commission: commission, Reason: ReasonCommission}
	}
	return nil
}

// EvaluateReactivation is stricter than EvaluateDeactivation: besides a live
// commission within bounds, it needs a performance record meeting all
// criteria.
func EvaluateReactivation(v *validator.Validator, p *perf.ValidatorPerf, commission uint8, live bool, criteria *perf.Criteria) *Violation {
	if violation := EvaluateDeactivation(v, commission, live, criteria); violation != nil {
		return violation
	}
	if p == nil {
		return &Violation{Vote: v.VoteAccount, Commission: commission, Reason: ReasonNoPerformance}
	}
	if !p.MeetsCriteria(criteria) {
		return &Violation{Vote: v.VoteAccount, Commission: commission, Reason: ReasonPerformance}
	}
	return nil
}

// DeactivateIfViolates suspends v when it accepts stakes and its live
// commission exceeds the maximum. It returns the violation that caused the
// transition, or nil when nothing changed.
func DeactivateIfViolates(v *validator.Validator, commission uint8, live bool, criteria *perf.Criteria) *Violation {
	if !v.IsAcceptingStakes() {
		return nil
	}
	violation := EvaluateDeactivation(v, commission, live, criteria)
	if violation == nil {
		return nil
	}
	if v.Deactivate() {
		metricTransitions().AddWithLabel(1, map[string]string{"transition": "deactivate"})
		logger.Info("validator deactivated", "vote", v.VoteAccount, "reason", violation.Reason, "commission", violation.Commission)
	}
	return violation
}

// ReactivateIfComplies lets a suspended validator receive stake again when it
// meets the full criteria. It reports whether the validator was reactivated.
func ReactivateIfComplies(v *validator.Validator, p *perf.ValidatorPerf, commission uint8, live bool, criteria *perf.Criteria) (bool, *Violation) {
	if v.Status != validator.StatusStakesSuspended {
		return false, nil
	}
	if violation := EvaluateReactivation(v, p, commission, live, criteria); violation != nil {
		logger.Debug("validator stays suspended", "vote", v.VoteAccount, "reason", violation.Reason)
		return false, violation
	}
	if !v.Activate() {
		return false, nil
	}
	metricTransitions().AddWithLabel(1, map[string]string{"transition": "reactivate"})
	return true, nil
}

// ScanViolations lists the accepting validators that DeactivateIfViolates
// would suspend, without changing anything.
func ScanViolations(list *validator.List, reader CommissionReader, criteria *perf.Criteria) ([]Violation, error) {
	var violations []Violation
	for v, err := range list.All() {
		if err != nil {
			return nil, err
		}
		if !v.IsAcceptingStakes() {
			continue
		}
		commission, live, err := reader.Commission(v.VoteAccount)
		if err != nil {
			return nil, err
		}
		if violation := EvaluateDeactivation(v, commission, live, criteria); violation != nil {
			violations = append(violations, *violation)
		}
	}
	return violations, nil
}
