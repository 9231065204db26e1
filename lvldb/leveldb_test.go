// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakepool/stsol/kv"
)

func TestLevelDB(t *testing.T) {
	var (
		key        = []byte("123")
		value      = []byte("456")
		inValidKey = []byte("abc")
	)

	persistent, err := New(t.TempDir(), Options{16, 16})
	require.NoError(t, err)
	defer persistent.Close()

	mem, err := NewMem()
	require.NoError(t, err)
	defer mem.Close()

	for _, db := range []*LevelDB{persistent, mem} {
		require.NoError(t, db.Put(key, value))

		got, err := db.Get(key)
		require.NoError(t, err)
		assert.Equal(t, value, got)

		has, err := db.Has(key)
		require.NoError(t, err)
		assert.True(t, has)

		has, err = db.Has(inValidKey)
		require.NoError(t, err)
		assert.False(t, has)

		require.NoError(t, db.Delete(key))
		_, err = db.Get(key)
		assert.True(t, db.IsNotFound(err))
	}
}

func TestLevelDBBulk(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	bulk := db.Bulk()
	require.NoError(t, bulk.Put([]byte("a"), []byte("1")))
	require.NoError(t, bulk.Put([]byte("b"), []byte("2")))
	require.NoError(t, bulk.Delete([]byte("a")))
	assert.Equal(t, 3, bulk.Len())

	// nothing visible before write
	has, err := db.Has([]byte("b"))
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, bulk.Write())
	has, _ = db.Has([]byte("a"))
	assert.False(t, has)
	got, err := db.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), got)
}

func TestBucketOverLevelDB(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	accounts := kv.Bucket("a").NewStore(db)
	other := kv.Bucket("b").NewStore(db)

	bulk := accounts.Bulk()
	require.NoError(t, bulk.Put([]byte("1"), []byte("x")))
	require.NoError(t, bulk.Put([]byte("2"), []byte("y")))
	require.NoError(t, bulk.Write())
	require.NoError(t, other.Put([]byte("3"), []byte("z")))

	raw, err := db.Get([]byte("a1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), raw)

	iter := accounts.Iterate(kv.Range{})
	defer iter.Release()
	var keys []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	require.NoError(t, iter.Error())
	assert.Equal(t, []string{"1", "2"}, keys)
}

func TestOptionsFloor(t *testing.T) {
	o := Options{}.leveldbOptions()
	assert.Equal(t, minTuning, o.OpenFilesCacheCapacity)
	assert.Equal(t, minTuning/2*1024*1024, o.BlockCacheCapacity)

	o = Options{CacheSize: 128, OpenFilesCacheCapacity: 64}.leveldbOptions()
	assert.Equal(t, 64, o.OpenFilesCacheCapacity)
	assert.Equal(t, 64*1024*1024, o.BlockCacheCapacity)
	assert.Equal(t, 32*1024*1024, o.WriteBuffer)
}
