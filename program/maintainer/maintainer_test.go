// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package maintainer

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakepool/stsol/program/reverts"
	"github.com/stakepool/stsol/test/datagen"
)

func TestMaintainerList(t *testing.T) {
	assert.Equal(t, 10+2*32, RequiredSize(2))

	buf := make([]byte, RequiredSize(2))
	list, err := Init(buf, 2)
	require.NoError(t, err)

	alice, bob := datagen.RandomPubkey(), datagen.RandomPubkey()
	assert.True(t, errors.Is(Check(list, alice), reverts.ErrInvalidMaintainer))

	_, err = list.Append(alice)
	require.NoError(t, err)
	assert.NoError(t, Check(list, alice))

	reopened, err := Open(buf)
	require.NoError(t, err)
	_, err = reopened.Append(bob)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Len())
	assert.Equal(t, bob[:], buf[10+32:10+64])

	require.NoError(t, list.Remove(alice))
	assert.True(t, errors.Is(Check(list, alice), reverts.ErrInvalidMaintainer))
	assert.NoError(t, Check(list, bob))
}

func TestOpenRejectsOtherLists(t *testing.T) {
	buf := make([]byte, RequiredSize(1))
	buf[0] = 2
	buf[1] = 1
	buf[2] = 1
	_, err := Open(buf)
	assert.True(t, errors.Is(err, reverts.ErrInvalidAccountData))
}
