// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/stakepool/stsol/program/reverts"
	"github.com/stakepool/stsol/sol"
)

// Lamports is an amount of SOL in its smallest unit.
type Lamports uint64

// StLamports is an amount of stSOL in its smallest unit.
type StLamports uint64

func formatAmount(v uint64, unit string) string {
	return fmt.Sprintf("%d.%09d %s", v/sol.LamportsPerSol, v%sol.LamportsPerSol, unit)
}

func (l Lamports) String() string { return formatAmount(uint64(l), "SOL") }

func (l StLamports) String() string { return formatAmount(uint64(l), "stSOL") }

func (l Lamports) Add(other Lamports) (Lamports, error) {
	sum, overflow := math.SafeAdd(uint64(l), uint64(other))
	if overflow {
		return 0, errors.Wrapf(reverts.ErrCalculationFailure, "%d + %d", l, other)
	}
	return Lamports(sum), nil
}

func (l Lamports) Sub(other Lamports) (Lamports, error) {
	diff, underflow := math.SafeSub(uint64(l), uint64(other))
	if underflow {
		return 0, errors.Wrapf(reverts.ErrCalculationFailure, "%d - %d", l, other)
	}
	return Lamports(diff), nil
}

func (l StLamports) Add(other StLamports) (StLamports, error) {
	sum, overflow := math.SafeAdd(uint64(l), uint64(other))
	if overflow {
		return 0, errors.Wrapf(reverts.ErrCalculationFailure, "%d + %d", l, other)
	}
	return StLamports(sum), nil
}

func (l StLamports) Sub(other StLamports) (StLamports, error) {
	diff, underflow := math.SafeSub(uint64(l), uint64(other))
	if underflow {
		return 0, errors.Wrapf(reverts.ErrCalculationFailure, "%d - %d", l, other)
	}
	return StLamports(diff), nil
}

// Rational is a non-negative fraction.
type Rational struct {
	Numerator   uint64
	Denominator uint64
}

// MulRational returns floor(amount * r). The product is taken on 256 bits,
// the result must fit in 64.
func MulRational(amount uint64, r Rational) (uint64, error) {
	if r.Denominator == 0 {
		return 0, errors.Wrap(reverts.ErrCalculationFailure, "zero denominator")
	}
	n := uint256.NewInt(amount)
	n.Mul(n, uint256.NewInt(r.Numerator))
	n.Div(n, uint256.NewInt(r.Denominator))
	if !n.IsUint64() {
		return 0, errors.Wrapf(reverts.ErrCalculationFailure, "%d * %d / %d", amount, r.Numerator, r.Denominator)
	}
	return n.Uint64(), nil
}
