// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakepool/stsol/lvldb"
	"github.com/stakepool/stsol/sol"
	"github.com/stakepool/stsol/test/datagen"
)

func newStater(t *testing.T) *Stater {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stater, err := NewStater(db, 16)
	require.NoError(t, err)
	return stater
}

func TestStateReadWrite(t *testing.T) {
	st := newStater(t).NewState()
	addr := datagen.RandomPubkey()

	exists, err := st.Exists(addr)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, st.SetLamports(addr, 10))
	require.NoError(t, st.SetData(addr, []byte{1, 2, 3}))

	lamports, err := st.GetLamports(addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), lamports)

	data, err := st.GetData(addr)
	require.NoError(t, err)
	data[0] = 9
	again, _ := st.GetData(addr)
	assert.Equal(t, []byte{1, 2, 3}, again, "returned data is a copy")

	owner := datagen.RandomPubkey()
	st.SetAccount(addr, &Account{Lamports: 1, Owner: owner})
	got, err := st.GetOwner(addr)
	require.NoError(t, err)
	assert.Equal(t, owner, got)

	st.Delete(addr)
	exists, _ = st.Exists(addr)
	assert.False(t, exists)
}

func TestStateRevert(t *testing.T) {
	st := newStater(t).NewState()
	addr := datagen.RandomPubkey()

	require.NoError(t, st.SetLamports(addr, 1))
	chk := st.NewCheckpoint()
	require.NoError(t, st.SetLamports(addr, 2))
	require.NoError(t, st.SetData(addr, []byte("x")))

	inner := st.NewCheckpoint()
	require.NoError(t, st.SetLamports(addr, 3))
	st.RevertTo(inner)
	lamports, _ := st.GetLamports(addr)
	assert.Equal(t, uint64(2), lamports)

	st.RevertTo(chk)
	a, err := st.GetAccount(addr)
	require.NoError(t, err)
	assert.Equal(t, &Account{Lamports: 1}, a)

	assert.Panics(t, func() { st.RevertTo(100) })
}

func TestStageCommit(t *testing.T) {
	stater := newStater(t)
	st := stater.NewState()
	a, b := datagen.RandomPubkey(), datagen.RandomPubkey()

	require.NoError(t, st.SetLamports(a, 5))
	require.NoError(t, st.SetData(b, []byte("data")))
	require.NoError(t, st.SetLamports(a, 6))

	stage, err := st.Stage()
	require.NoError(t, err)
	assert.Equal(t, 2, stage.Len())
	hash := stage.Hash()

	other := stater.NewState()
	require.NoError(t, other.SetData(b, []byte("data")))
	require.NoError(t, other.SetLamports(a, 6))
	otherStage, _ := other.Stage()
	assert.Equal(t, hash, otherStage.Hash(), "digest ignores write order")

	require.NoError(t, stage.Commit())

	fresh := stater.NewState()
	lamports, err := fresh.GetLamports(a)
	require.NoError(t, err)
	assert.Equal(t, uint64(6), lamports)
	data, err := fresh.GetData(b)
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), data)

	// deleting an account removes it from the store
	fresh.Delete(a)
	stage, _ = fresh.Stage()
	require.NoError(t, stage.Commit())
	exists, err := New(stater.db, nil).Exists(a)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestClock(t *testing.T) {
	st := newStater(t).NewState()
	epoch, err := st.Epoch()
	require.NoError(t, err)
	assert.Equal(t, sol.Epoch(0), epoch)

	st.SetEpoch(42)
	epoch, err = st.Epoch()
	require.NoError(t, err)
	assert.Equal(t, sol.Epoch(42), epoch)

	require.NoError(t, st.SetData(sol.SysvarClockID, []byte{1}))
	_, err = st.Epoch()
	assert.Error(t, err)
}

func TestStaterSharesCache(t *testing.T) {
	stater := newStater(t)
	addr := datagen.RandomPubkey()

	_, err := stater.NewState().Exists(addr)
	require.NoError(t, err)
	_, err = stater.NewState().Exists(addr)
	require.NoError(t, err)

	hit, miss, rate := stater.CacheStats()
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(1), miss)
	assert.Equal(t, 0.5, rate)
}
