// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validator

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakepool/stsol/program/reverts"
	"github.com/stakepool/stsol/sol"
	"github.com/stakepool/stsol/test/datagen"
	"github.com/stakepool/stsol/token"
)

func newValidator() *Validator {
	v := new(Validator)
	v.Reset(datagen.RandomPubkey())
	return v
}

func TestEncodeLayout(t *testing.T) {
	v := &Validator{
		VoteAccount:            sol.Pubkey{0xaa},
		StakeSeeds:             SeedRange{1, 2},
		UnstakeSeeds:           SeedRange{3, 4},
		StakeAccountsBalance:   5,
		UnstakeAccountsBalance: 6,
		EffectiveStakeBalance:  7,
		Status:                 StatusPendingRemoval,
	}
	buf := make([]byte, EncodedSize)
	v.Encode(buf)

	assert.Equal(t, byte(0xaa), buf[0])
	for i, want := range []byte{1, 2, 3, 4, 5, 6, 7} {
		assert.Equal(t, want, buf[32+8*i], "field %d", i)
	}
	assert.Equal(t, byte(2), buf[88])

	var decoded Validator
	require.NoError(t, decoded.Decode(buf))
	assert.Equal(t, *v, decoded)

	buf[88] = 3
	assert.Error(t, decoded.Decode(buf))
	assert.Error(t, decoded.Decode(buf[:EncodedSize-1]))
}

func TestListOfValidators(t *testing.T) {
	assert.Equal(t, 10+2*EncodedSize, RequiredSize(2))

	buf := make([]byte, RequiredSize(2))
	list, err := Init(buf, 2)
	require.NoError(t, err)

	vote := datagen.RandomPubkey()
	added, err := list.Append(vote)
	require.NoError(t, err)
	assert.Equal(t, StatusAcceptingStakes, added.Status)

	require.NoError(t, list.Update(vote, func(v *Validator) error {
		v.Deactivate()
		return nil
	}))

	// a corrupted status byte surfaces as invalid account data
	buf[10+88] = 9
	_, err = list.Get(vote)
	assert.True(t, errors.Is(err, reverts.ErrInvalidAccountData))
}

func TestDecodeRejectsReversedSeedRanges(t *testing.T) {
	for name, offset := range map[string]int{"stake": 32, "unstake": 48} {
		t.Run(name, func(t *testing.T) {
			buf := make([]byte, RequiredSize(1))
			list, err := Init(buf, 1)
			require.NoError(t, err)
			vote := datagen.RandomPubkey()
			_, err = list.Append(vote)
			require.NoError(t, err)

			// begin 5, end 2
			buf[10+offset] = 5
			buf[10+offset+8] = 2

			var v Validator
			assert.Error(t, v.Decode(buf[10:]))
			_, err = list.Get(vote)
			assert.True(t, errors.Is(err, reverts.ErrInvalidAccountData))
		})
	}
}

func TestDeactivateActivate(t *testing.T) {
	v := newValidator()
	v.StakeSeeds = SeedRange{2, 5}
	v.StakeAccountsBalance = 10
	before := *v

	assert.True(t, v.Deactivate())
	assert.Equal(t, StatusStakesSuspended, v.Status)
	assert.False(t, v.Deactivate())
	assert.Equal(t, StatusStakesSuspended, v.Status)

	assert.True(t, v.Activate())
	assert.Equal(t, before, *v)
	assert.False(t, v.Activate())
	assert.Equal(t, before, *v)
}

func TestPendingRemovalIsTerminal(t *testing.T) {
	v := newValidator()
	v.EnqueueForRemoval()
	assert.Equal(t, StatusPendingRemoval, v.Status)

	assert.False(t, v.Activate())
	assert.False(t, v.Deactivate())
	assert.Equal(t, StatusPendingRemoval, v.Status)

	v.EnqueueForRemoval()
	assert.Equal(t, StatusPendingRemoval, v.Status)

	suspended := newValidator()
	suspended.Deactivate()
	suspended.EnqueueForRemoval()
	assert.Equal(t, StatusPendingRemoval, suspended.Status)
}

func TestCheckCanBeRemoved(t *testing.T) {
	v := newValidator()
	assert.True(t, errors.Is(v.CheckCanBeRemoved(), reverts.ErrValidatorIsStillActive))

	v.Deactivate()
	assert.True(t, errors.Is(v.CheckCanBeRemoved(), reverts.ErrValidatorIsStillActive))

	v.EnqueueForRemoval()
	v.StakeSeeds = SeedRange{0, 1}
	v.UnstakeSeeds = SeedRange{0, 1}
	v.StakeAccountsBalance = 1
	assert.True(t, errors.Is(v.CheckCanBeRemoved(), reverts.ErrValidatorShouldHaveNoStakeAccounts))

	v.StakeSeeds = SeedRange{1, 1}
	assert.True(t, errors.Is(v.CheckCanBeRemoved(), reverts.ErrValidatorShouldHaveNoUnstakeAccounts))

	v.UnstakeSeeds = SeedRange{1, 1}
	v.StakeAccountsBalance = 0
	assert.NoError(t, v.CheckCanBeRemoved())
}

func TestEffectiveStakeBalance(t *testing.T) {
	v := newValidator()
	v.StakeAccountsBalance = 100
	v.UnstakeAccountsBalance = 30
	v.EffectiveStakeBalance = 999
	v.RefreshEffectiveStakeBalance()
	assert.Equal(t, token.Lamports(70), v.EffectiveStakeBalance)

	v.UnstakeAccountsBalance = 101
	assert.Panics(t, func() { v.ComputeEffectiveStakeBalance() })
}

func TestObserveBalance(t *testing.T) {
	assert.NoError(t, ObserveBalance(10, 10, "stake"))
	assert.NoError(t, ObserveBalance(11, 10, "stake"))

	err := ObserveBalance(9, 10, "stake")
	assert.True(t, errors.Is(err, reverts.ErrValidatorBalanceDecreased))
	assert.Equal(t, reverts.InvariantBreach, reverts.ErrValidatorBalanceDecreased.Category())
}

func TestStakeAccountData(t *testing.T) {
	vote := datagen.RandomPubkey()
	s := NewStakeAccount(vote, 4)
	assert.False(t, s.IsDeactivated())
	assert.False(t, s.IsInactive(100))

	s.DeactivationEpoch = 6
	assert.False(t, s.IsInactive(6))
	assert.True(t, s.IsInactive(7))

	decoded, err := DecodeStakeAccount(s.Encode())
	require.NoError(t, err)
	assert.Equal(t, s, decoded)

	_, err = DecodeStakeAccount(make([]byte, 10))
	assert.True(t, errors.Is(err, reverts.ErrInvalidStakeAccount))
}

func TestJSON(t *testing.T) {
	v := newValidator()
	v.Deactivate()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"StakesSuspended"`)
	assert.Contains(t, string(data), v.VoteAccount.String())
}
