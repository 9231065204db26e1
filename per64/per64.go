// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package per64 stores fractions in [0, 1] as an unsigned 64 bit integer
// scaled to [0, math.MaxUint64].
package per64

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// RangeMax is the value representing a fraction of exactly one.
const RangeMax = math.MaxUint64

var (
	ErrInvalidFormat = errors.New("percentage is not a number")
	ErrOutOfRange    = errors.New("percentage out of range [0, 100]")

	rangeMax    = uint256.NewInt(RangeMax)
	rangeMaxBig = new(big.Int).SetUint64(RangeMax)
	hundredRat  = big.NewRat(100, 1)
)

// Ratio is a fraction scaled to the range of [0..RangeMax].
type Ratio uint64

// Per64 scales numerator/denominator to the range of [0..RangeMax] and returns
// the floor of the scaled numerator. The intermediate product is computed on
// 256 bits so it never overflows. It panics when denominator is zero or when
// numerator exceeds denominator.
func Per64(numerator, denominator uint64) Ratio {
	if denominator == 0 {
		panic("per64: zero denominator")
	}
	n := uint256.NewInt(numerator)
	n.Mul(n, rangeMax)
	n.Div(n, uint256.NewInt(denominator))
	if !n.IsUint64() {
		panic(fmt.Sprintf("per64: %d/%d exceeds range", numerator, denominator))
	}
	return Ratio(n.Uint64())
}

// FromPercentage converts a whole percentage in [0, 100] into a Ratio.
func FromPercentage(p uint8) Ratio {
	return Per64(uint64(p), 100)
}

// ParsePercentage parses a decimal percentage such as "97.5" into a Ratio.
// The conversion is exact up to the final floor, so equal inputs always map
// to equal ratios.
func ParsePercentage(text string) (Ratio, error) {
	s := strings.TrimSpace(text)
	if s == "" || strings.ContainsAny(s, "/") {
		return 0, errors.Wrapf(ErrInvalidFormat, "%q", text)
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return 0, errors.Wrapf(ErrInvalidFormat, "%q", text)
	}
	if r.Sign() < 0 || r.Cmp(hundredRat) > 0 {
		return 0, errors.Wrapf(ErrOutOfRange, "%q", text)
	}

	num := new(big.Int).Mul(r.Num(), rangeMaxBig)
	den := new(big.Int).Mul(r.Denom(), big.NewInt(100))
	num.Quo(num, den)
	return Ratio(num.Uint64()), nil
}

// Fraction returns the ratio as a float in [0, 1]. It is meant for display
// only and must never feed a decision, floats differ between platforms.
func (r Ratio) Fraction() float64 {
	return float64(r) / float64(RangeMax)
}

// Percentage returns the ratio as a float in [0, 100], for display only.
func (r Ratio) Percentage() float64 {
	return r.Fraction() * 100
}

// String implements stringer.
func (r Ratio) String() string {
	return fmt.Sprintf("%.2f%%", r.Percentage())
}

// MarshalText renders the ratio as a decimal percentage with six fractional
// digits, which ParsePercentage reads back to within 1e-8 of a percent.
func (r Ratio) MarshalText() ([]byte, error) {
	pct := new(big.Rat).SetFrac(new(big.Int).SetUint64(uint64(r)), rangeMaxBig)
	pct.Mul(pct, hundredRat)
	return []byte(pct.FloatString(6)), nil
}

// UnmarshalText parses a decimal percentage.
func (r *Ratio) UnmarshalText(text []byte) error {
	parsed, err := ParsePercentage(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
