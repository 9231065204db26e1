// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package per64

import (
	"math"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPer64Bounds(t *testing.T) {
	assert.Equal(t, Ratio(0), Per64(0, 7))
	assert.Equal(t, Ratio(RangeMax), Per64(7, 7))
	assert.Equal(t, Ratio(RangeMax), Per64(math.MaxUint64, math.MaxUint64))
	assert.Equal(t, Ratio(RangeMax/2), Per64(1, 2))
	assert.Equal(t, Ratio(RangeMax/100), Per64(1, 100))
}

func TestPer64NeverExceedsRange(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for i := 0; i < 1000; i++ {
		var a, b uint64
		f.Fuzz(&a)
		f.Fuzz(&b)
		if b == 0 {
			continue
		}
		if a > b {
			a, b = b, a
		}
		r := Per64(a, b)
		assert.LessOrEqual(t, uint64(r), uint64(RangeMax))
		assert.Equal(t, Ratio(RangeMax), Per64(b, b))
		assert.Equal(t, Ratio(0), Per64(0, b))
	}
}

func TestPer64Panics(t *testing.T) {
	assert.Panics(t, func() { Per64(1, 0) })
	assert.Panics(t, func() { Per64(2, 1) })
	assert.Panics(t, func() { FromPercentage(101) })
}

func TestFromPercentage(t *testing.T) {
	assert.Equal(t, Ratio(0), FromPercentage(0))
	assert.Equal(t, Ratio(RangeMax), FromPercentage(100))
	assert.Equal(t, Per64(5, 100), FromPercentage(5))
}

func TestPercentageRoundTrip(t *testing.T) {
	for p := 0; p <= 100; p++ {
		r := FromPercentage(uint8(p))
		assert.InDelta(t, float64(p)/100, r.Fraction(), 1e-12)
	}
}

func TestParsePercentage(t *testing.T) {
	r, err := ParsePercentage("50")
	require.NoError(t, err)
	assert.Equal(t, Per64(1, 2), r)

	r, err = ParsePercentage(" 100 ")
	require.NoError(t, err)
	assert.Equal(t, Ratio(RangeMax), r)

	r, err = ParsePercentage("0.0")
	require.NoError(t, err)
	assert.Equal(t, Ratio(0), r)

	r, err = ParsePercentage("97.5")
	require.NoError(t, err)
	assert.InDelta(t, 0.975, r.Fraction(), 1e-12)

	for _, bad := range []string{"", "abc", "1/2", "12%", "--1"} {
		_, err := ParsePercentage(bad)
		assert.True(t, errors.Is(err, ErrInvalidFormat), bad)
	}
	for _, bad := range []string{"-0.001", "100.0001", "1e3"} {
		_, err := ParsePercentage(bad)
		assert.True(t, errors.Is(err, ErrOutOfRange), bad)
	}
}

func TestRatioText(t *testing.T) {
	r, err := ParsePercentage("12.5")
	require.NoError(t, err)

	text, err := r.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "12.500000", string(text))

	var back Ratio
	require.NoError(t, back.UnmarshalText(text))
	assert.InDelta(t, r.Fraction(), back.Fraction(), 1e-10)
	assert.Equal(t, "12.50%", r.String())

	assert.Error(t, back.UnmarshalText([]byte("nope")))
}
