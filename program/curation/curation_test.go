// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package curation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakepool/stsol/per64"
	"github.com/stakepool/stsol/program/perf"
	"github.com/stakepool/stsol/program/validator"
	"github.com/stakepool/stsol/sol"
	"github.com/stakepool/stsol/test/datagen"
)

type commissions map[sol.Pubkey]uint8

func (c commissions) Commission(vote sol.Pubkey) (uint8, bool, error) {
	v, ok := c[vote]
	return v, ok, nil
}

func criteria() *perf.Criteria {
	return &perf.Criteria{
		MaxCommission:          5,
		MinBlockProductionRate: per64.FromPercentage(80),
		MinVoteSuccessRate:     per64.FromPercentage(90),
	}
}

func TestReadVoteCommission(t *testing.T) {
	data := make([]byte, 80)
	data[VoteCommissionOffset] = 7
	c, ok := ReadVoteCommission(data)
	assert.True(t, ok)
	assert.Equal(t, uint8(7), c)

	_, ok = ReadVoteCommission(data[:VoteCommissionOffset])
	assert.False(t, ok)
	_, ok = ReadVoteCommission(nil)
	assert.False(t, ok)
}

func TestDeactivateIfViolates(t *testing.T) {
	tests := []struct {
		name       string
		status     validator.Status
		commission uint8
		live       bool
		reason     Reason
		after      validator.Status
	}{
		{"within bounds", validator.StatusAcceptingStakes, 5, true, "", validator.StatusAcceptingStakes},
		{"commission too high", validator.StatusAcceptingStakes, 6, true, ReasonCommission, validator.StatusStakesSuspended},
		{"vote account closed", validator.StatusAcceptingStakes, 0, false, ReasonVoteClosed, validator.StatusStakesSuspended},
		{"already suspended", validator.StatusStakesSuspended, 50, true, "", validator.StatusStakesSuspended},
		{"pending removal", validator.StatusPendingRemoval, 50, true, "", validator.StatusPendingRemoval},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validator.Validator{VoteAccount: datagen.RandomPubkey(), Status: tt.status}
			violation := DeactivateIfViolates(v, tt.commission, tt.live, criteria())
			if tt.reason == "" {
				assert.Nil(t, violation)
			} else {
				require.NotNil(t, violation)
				assert.Equal(t, tt.reason, violation.Reason)
				assert.Equal(t, v.VoteAccount, violation.Vote)
			}
			assert.Equal(t, tt.after, v.Status)
		})
	}
}

func TestReactivateIfComplies(t *testing.T) {
	good := func(vote sol.Pubkey) *perf.ValidatorPerf {
		return &perf.ValidatorPerf{
			VoteAccount: vote,
			Commission:  3,
			Offchain: &perf.OffchainValidatorPerf{
				BlockProductionRate: per64.FromPercentage(95),
				VoteSuccessRate:     per64.FromPercentage(95),
			},
		}
	}

	t.Run("complies", func(t *testing.T) {
		v := &validator.Validator{VoteAccount: datagen.RandomPubkey(), Status: validator.StatusStakesSuspended}
		ok, violation := ReactivateIfComplies(v, good(v.VoteAccount), 3, true, criteria())
		assert.True(t, ok)
		assert.Nil(t, violation)
		assert.Equal(t, validator.StatusAcceptingStakes, v.Status)
	})

	t.Run("no perf record", func(t *testing.T) {
		v := &validator.Validator{VoteAccount: datagen.RandomPubkey(), Status: validator.StatusStakesSuspended}
		ok, violation := ReactivateIfComplies(v, nil, 3, true, criteria())
		assert.False(t, ok)
		require.NotNil(t, violation)
		assert.Equal(t, ReasonNoPerformance, violation.Reason)
		assert.Equal(t, validator.StatusStakesSuspended, v.Status)
	})

	t.Run("poor block production", func(t *testing.T) {
		v := &validator.Validator{VoteAccount: datagen.RandomPubkey(), Status: validator.StatusStakesSuspended}
		p := good(v.VoteAccount)
		p.Offchain.BlockProductionRate = per64.FromPercentage(10)
		ok, violation := ReactivateIfComplies(v, p, 3, true, criteria())
		assert.False(t, ok)
		require.NotNil(t, violation)
		assert.Equal(t, ReasonPerformance, violation.Reason)
	})

	t.Run("live commission too high", func(t *testing.T) {
		v := &validator.Validator{VoteAccount: datagen.RandomPubkey(), Status: validator.StatusStakesSuspended}
		ok, violation := ReactivateIfComplies(v, good(v.VoteAccount), 9, true, criteria())
		assert.False(t, ok)
		require.NotNil(t, violation)
		assert.Equal(t, ReasonCommission, violation.Reason)
	})

	t.Run("only suspended validators", func(t *testing.T) {
		v := &validator.Validator{VoteAccount: datagen.RandomPubkey(), Status: validator.StatusPendingRemoval}
		ok, violation := ReactivateIfComplies(v, good(v.VoteAccount), 3, true, criteria())
		assert.False(t, ok)
		assert.Nil(t, violation)
		assert.Equal(t, validator.StatusPendingRemoval, v.Status)
	})
}

func TestScanViolations(t *testing.T) {
	buf := make([]byte, validator.RequiredSize(4))
	list, err := validator.Init(buf, 4)
	require.NoError(t, err)

	keys := datagen.RandomPubkeys(4)
	for _, k := range keys {
		_, err := list.Append(k)
		require.NoError(t, err)
	}
	require.NoError(t, list.Update(keys[3], func(v *validator.Validator) error {
		v.Deactivate()
		return nil
	}))

	reader := commissions{
		keys[0]: 1,
		keys[1]: 20,
		keys[3]: 90,
	}
	violations, err := ScanViolations(list, reader, criteria())
	require.NoError(t, err)
	assert.ElementsMatch(t, []Violation{
		{Vote: keys[1], Commission: 20, Reason: ReasonCommission},
		{Vote: keys[2], Reason: ReasonVoteClosed},
	}, violations)

	// scanning is read-only
	v, err := list.Get(keys[1])
	require.NoError(t, err)
	assert.True(t, v.IsAcceptingStakes())
}
