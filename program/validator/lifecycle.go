// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validator

import (
	"github.com/pkg/errors"

	"github.com/stakepool/stsol/program/reverts"
	"github.com/stakepool/stsol/token"
)

func (v *Validator) IsAcceptingStakes() bool {
	return v.Status == StatusAcceptingStakes
}

func (v *Validator) HasStakeAccounts() bool {
	return !v.StakeSeeds.IsEmpty()
}

func (v *Validator) HasUnstakeAccounts() bool {
	return !v.UnstakeSeeds.IsEmpty()
}

// Deactivate stops new stake from reaching the validator. It only acts on a
// validator that is accepting stakes and is a no-op otherwise.
func (v *Validator) Deactivate() bool {
	if v.Status != StatusAcceptingStakes {
		logger.Debug("deactivate ignored", "vote", v.VoteAccount, "status", v.Status)
		return false
	}
	v.Status = StatusStakesSuspended
	logger.Info("stakes suspended", "vote", v.VoteAccount)
	return true
}

// Activate lets a suspended validator receive stake again. It is a no-op from
// any other status.
func (v *Validator) Activate() bool {
	if v.Status != StatusStakesSuspended {
		logger.Debug("activate ignored", "vote", v.VoteAccount, "status", v.Status)
		return false
	}
	v.Status = StatusAcceptingStakes
	logger.Info("accepting stakes", "vote", v.VoteAccount)
	return true
}

// EnqueueForRemoval moves the validator to PendingRemoval from any status.
func (v *Validator) EnqueueForRemoval() {
	if v.Status != StatusPendingRemoval {
		logger.Info("pending removal", "vote", v.VoteAccount, "from", v.Status)
	}
	v.Status = StatusPendingRemoval
}

// CheckCanBeRemoved reports the first unmet removal precondition.
func (v *Validator) CheckCanBeRemoved() error {
	if v.Status != StatusPendingRemoval {
		return errors.Wrapf(reverts.ErrValidatorIsStillActive, "validator %v is %v, enqueue it for removal first", v.VoteAccount, v.Status)
	}
	if v.HasStakeAccounts() {
		return errors.Wrapf(reverts.ErrValidatorShouldHaveNoStakeAccounts, "validator %v has stake seeds %d..%d, unstake them first",
			v.VoteAccount, v.StakeSeeds.Begin, v.StakeSeeds.End)
	}
	if v.HasUnstakeAccounts() {
		return errors.Wrapf(reverts.ErrValidatorShouldHaveNoUnstakeAccounts, "validator %v has unstake seeds %d..%d, withdraw them first",
			v.VoteAccount, v.UnstakeSeeds.Begin, v.UnstakeSeeds.End)
	}
	if v.StakeAccountsBalance != 0 {
		panic("validator without stake accounts tracks a stake balance")
	}
	return nil
}

// ComputeEffectiveStakeBalance returns the balance of the stake accounts,
// excluding the unstake accounts.
func (v *Validator) ComputeEffectiveStakeBalance() token.Lamports {
	effective, err := v.StakeAccountsBalance.Sub(v.UnstakeAccountsBalance)
	if err != nil {
		panic("unstake balance exceeds the validator's total stake balance")
	}
	return effective
}

// RefreshEffectiveStakeBalance recomputes the cached effective balance.
func (v *Validator) RefreshEffectiveStakeBalance() {
	v.EffectiveStakeBalance = v.ComputeEffectiveStakeBalance()
}

// ObserveBalance fails when an externally observed balance is below the
// tracked one. Tracked balances only drop through explicit withdrawals.
func ObserveBalance(observed, tracked token.Lamports, what string) error {
	if observed < tracked {
		logger.Error("observed balance below tracked balance", "what", what, "observed", observed, "tracked", tracked)
		return errors.Wrapf(reverts.ErrValidatorBalanceDecreased, "%s: observed %v, tracked %v", what, observed, tracked)
	}
	return nil
}
