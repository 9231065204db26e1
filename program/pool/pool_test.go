// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakepool/stsol/per64"
	"github.com/stakepool/stsol/program/accountlist"
	"github.com/stakepool/stsol/program/perf"
	"github.com/stakepool/stsol/program/reverts"
	"github.com/stakepool/stsol/test/datagen"
	"github.com/stakepool/stsol/token"
)

func newPool() *Pool {
	return &Pool{
		Version:            Version,
		Manager:            datagen.RandomPubkey(),
		StSolMint:          datagen.RandomPubkey(),
		ExchangeRate:       token.ExchangeRate{ComputedInEpoch: 3, StSolSupply: 10, SolBalance: 11},
		RewardDistribution: token.RewardDistribution{TreasuryFee: 3, DeveloperFee: 2, StSolAppreciation: 95},
		FeeRecipients:      FeeRecipients{datagen.RandomPubkey(), datagen.RandomPubkey()},
		Criteria: perf.Criteria{
			MaxCommission:      5,
			MinVoteSuccessRate: per64.FromPercentage(90),
		},
		ValidatorList:     datagen.RandomPubkey(),
		ValidatorPerfList: datagen.RandomPubkey(),
		MaintainerList:    datagen.RandomPubkey(),
	}
}

func TestEncodeDecode(t *testing.T) {
	p := newPool()
	data, err := p.Encode()
	require.NoError(t, err)
	assert.Equal(t, byte(accountlist.Pool), data[0])

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
}

func TestDecodeRejects(t *testing.T) {
	_, err := Decode(nil)
	assert.True(t, errors.Is(err, reverts.ErrInvalidAccountData))

	_, err = Decode([]byte{byte(accountlist.Validator), 0xc0})
	assert.True(t, errors.Is(err, reverts.ErrInvalidAccountData))

	_, err = Decode([]byte{byte(accountlist.Pool), 0xff})
	assert.True(t, errors.Is(err, reverts.ErrInvalidAccountData))

	p := newPool()
	p.Version = 9
	data, err := p.Encode()
	require.NoError(t, err)
	_, err = Decode(data)
	assert.True(t, errors.Is(err, reverts.ErrInvalidAccountData))
}

func TestCheckManager(t *testing.T) {
	p := newPool()
	assert.NoError(t, p.CheckManager(p.Manager))
	assert.True(t, errors.Is(p.CheckManager(datagen.RandomPubkey()), reverts.ErrInvalidManager))
}

func TestObserveFees(t *testing.T) {
	var m Metrics
	require.NoError(t, m.ObserveFees(token.Fees{Treasury: 1, Developer: 2, Appreciation: 3}, 4, 5))
	require.NoError(t, m.ObserveFees(token.Fees{Treasury: 1, Developer: 2, Appreciation: 3}, 4, 5))
	assert.Equal(t, Metrics{
		TreasurySolTotal:          2,
		TreasuryStSolTotal:        8,
		DeveloperSolTotal:         4,
		DeveloperStSolTotal:       10,
		StSolAppreciationSolTotal: 6,
	}, m)
}

func TestDeriveAddresses(t *testing.T) {
	program, pool := datagen.RandomPubkey(), datagen.RandomPubkey()
	a := DeriveAddresses(program, pool)
	assert.NotEqual(t, a.Reserve, a.MintAuthority)
	assert.NotEqual(t, a.Reserve, a.StakeAuthority)
	assert.Equal(t, a, DeriveAddresses(program, pool))
}
