// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"github.com/pkg/errors"

	"github.com/stakepool/stsol/program/reverts"
	"github.com/stakepool/stsol/sol"
)

// ExchangeRate is the stSOL/SOL ratio snapshotted once per epoch.
type ExchangeRate struct {
	ComputedInEpoch sol.Epoch  `json:"computedInEpoch"`
	StSolSupply     StLamports `json:"stSolSupply"`
	SolBalance      Lamports   `json:"solBalance"`
}

// ExchangeSol converts SOL into the amount of stSOL it is worth.
// Before the first snapshot, or while either side is empty, the rate is 1:1.
func (x *ExchangeRate) ExchangeSol(amount Lamports) (StLamports, error) {
	if x.StSolSupply == 0 || x.SolBalance == 0 {
		return StLamports(amount), nil
	}
	v, err := MulRational(uint64(amount), Rational{
		Numerator:   uint64(x.StSolSupply),
		Denominator: uint64(x.SolBalance),
	})
	return StLamports(v), err
}

// ExchangeStSol converts stSOL into the amount of SOL it is worth.
func (x *ExchangeRate) ExchangeStSol(amount StLamports) (Lamports, error) {
	if x.StSolSupply == 0 {
		return 0, errors.Wrap(reverts.ErrCalculationFailure, "stSOL supply is zero")
	}
	v, err := MulRational(uint64(amount), Rational{
		Numerator:   uint64(x.SolBalance),
		Denominator: uint64(x.StSolSupply),
	})
	return Lamports(v), err
}

// RewardDistribution holds the relative shares of validation rewards.
type RewardDistribution struct {
	TreasuryFee       uint32 `json:"treasuryFee" yaml:"treasury-fee"`
	DeveloperFee      uint32 `json:"developerFee" yaml:"developer-fee"`
	StSolAppreciation uint32 `json:"stSolAppreciation" yaml:"st-sol-appreciation"`
}

// SumAll returns the total of the shares.
func (d *RewardDistribution) SumAll() uint64 {
	return uint64(d.TreasuryFee) + uint64(d.DeveloperFee) + uint64(d.StSolAppreciation)
}

// Validate rejects distributions that cannot be used as a denominator.
func (d *RewardDistribution) Validate() error {
	if d.SumAll() == 0 {
		return reverts.ErrInvalidRewardDistribution
	}
	return nil
}

// Fees is a split of rewards. The three parts always add up to the split amount.
type Fees struct {
	Treasury     Lamports
	Developer    Lamports
	Appreciation Lamports
}

// Split divides rewards proportionally to the shares. Rounding dust goes to
// stSOL appreciation.
func (d *RewardDistribution) Split(rewards Lamports) (Fees, error) {
	if err := d.Validate(); err != nil {
		return Fees{}, err
	}
	total := d.SumAll()
	treasury, err := MulRational(uint64(rewards), Rational{uint64(d.TreasuryFee), total})
	if err != nil {
		return Fees{}, err
	}
	developer, err := MulRational(uint64(rewards), Rational{uint64(d.DeveloperFee), total})
	if err != nil {
		return Fees{}, err
	}
	fees := Fees{Treasury: Lamports(treasury), Developer: Lamports(developer)}
	rest, err := rewards.Sub(fees.Treasury)
	if err != nil {
		return Fees{}, err
	}
	if fees.Appreciation, err = rest.Sub(fees.Developer); err != nil {
		return Fees{}, err
	}
	return fees, nil
}
