// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accountlist

import (
	"encoding/binary"
	"errors"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakepool/stsol/program/reverts"
	"github.com/stakepool/stsol/sol"
	"github.com/stakepool/stsol/test/datagen"
)

type counter struct {
	key   sol.Pubkey
	value uint64
}

const counterSize = sol.PubkeyLength + 8

func (c *counter) AccountType() AccountType { return Maintainer }
func (c *counter) EncodedSize() int         { return counterSize }
func (c *counter) Key() sol.Pubkey          { return c.key }
func (c *counter) Reset(key sol.Pubkey)     { *c = counter{key: key} }

func (c *counter) Encode(dst []byte) {
	copy(dst, c.key[:])
	binary.LittleEndian.PutUint64(dst[sol.PubkeyLength:], c.value)
}

func (c *counter) Decode(src []byte) error {
	if len(src) < counterSize {
		return errors.New("short")
	}
	copy(c.key[:], src)
	c.value = binary.LittleEndian.Uint64(src[sol.PubkeyLength:])
	return nil
}

func newCounterList(t *testing.T, capacity uint32) *List[counter, *counter] {
	buf := make([]byte, RequiredSize[counter](capacity))
	l, err := Init[counter](buf, capacity)
	require.NoError(t, err)
	return l
}

func key(b byte) sol.Pubkey {
	return sol.Pubkey{b}
}

func TestRequiredSize(t *testing.T) {
	assert.Equal(t, HeaderSize, RequiredSize[counter](0))
	assert.Equal(t, HeaderSize+3*counterSize, RequiredSize[counter](3))
}

func TestInitAndOpen(t *testing.T) {
	l := newCounterList(t, 3)
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, 3, l.MaxEntries())
	assert.Equal(t, Maintainer, PeekType(l.Bytes()))

	reopened, err := Open[counter](l.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 3, reopened.MaxEntries())

	_, err = Init[counter](l.Bytes(), 3)
	assert.True(t, errors.Is(err, reverts.ErrAlreadyInUse))

	_, err = Init[counter](make([]byte, 11), 3)
	assert.True(t, errors.Is(err, reverts.ErrInvalidAccountData))
}

func TestOpenRejectsCorruptHeaders(t *testing.T) {
	good := newCounterList(t, 2).Bytes()

	tests := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{"short", func(b []byte) []byte { return b[:HeaderSize-1] }},
		{"wrong type", func(b []byte) []byte { b[0] = byte(Validator); return b }},
		{"wrong version", func(b []byte) []byte { b[1] = Version + 1; return b }},
		{"size mismatch", func(b []byte) []byte { return b[:len(b)-1] }},
		{"count above capacity", func(b []byte) []byte { binary.LittleEndian.PutUint32(b[6:], 3); return b }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := tt.mutate(append([]byte(nil), good...))
			_, err := Open[counter](buf)
			assert.True(t, errors.Is(err, reverts.ErrInvalidAccountData), "got %v", err)
		})
	}
}

func TestAppendFindRemove(t *testing.T) {
	l := newCounterList(t, 3)

	for i := byte(1); i <= 3; i++ {
		entry, err := l.Append(key(i))
		require.NoError(t, err)
		assert.Equal(t, key(i), entry.key)
		assert.Zero(t, entry.value)
	}
	assert.Equal(t, 3, l.Len())

	_, err := l.Append(key(4))
	assert.True(t, errors.Is(err, reverts.ErrListIsFull))
	assert.Equal(t, 3, l.Len())

	require.NoError(t, l.Remove(key(1)))
	assert.Equal(t, 2, l.Len())

	// the last entry moved into the freed slot
	first, err := l.At(0)
	require.NoError(t, err)
	assert.Equal(t, key(3), first.key)

	_, err = l.Append(key(2))
	assert.True(t, errors.Is(err, reverts.ErrDuplicateKey))
	assert.Equal(t, 2, l.Len())

	missing, err := l.Find(key(1))
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = l.Get(key(1))
	assert.True(t, errors.Is(err, reverts.ErrKeyNotFound))
	assert.True(t, errors.Is(l.Remove(key(1)), reverts.ErrKeyNotFound))

	// removed slot is zeroed
	tail := l.Bytes()[HeaderSize+2*counterSize:]
	assert.Equal(t, make([]byte, counterSize), tail)
}

func TestUpdateAndPut(t *testing.T) {
	l := newCounterList(t, 2)
	_, err := l.Append(key(7))
	require.NoError(t, err)

	require.NoError(t, l.Update(key(7), func(c *counter) error {
		c.value = 42
		return nil
	}))
	got, err := l.Get(key(7))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), got.value)

	failing := errors.New("nope")
	assert.Equal(t, failing, l.Update(key(7), func(c *counter) error {
		c.value = 1
		return failing
	}))
	got, _ = l.Get(key(7))
	assert.Equal(t, uint64(42), got.value)

	assert.True(t, errors.Is(l.Put(&counter{key: key(8)}), reverts.ErrKeyNotFound))
	require.NoError(t, l.Put(&counter{key: key(7), value: 9}))
	got, _ = l.Get(key(7))
	assert.Equal(t, uint64(9), got.value)
}

func TestIterationIsRestartable(t *testing.T) {
	l := newCounterList(t, 4)
	keys := datagen.RandomPubkeys(4)
	for _, k := range keys {
		_, err := l.Append(k)
		require.NoError(t, err)
	}

	for range 2 {
		var seen []sol.Pubkey
		for entry, err := range l.All() {
			require.NoError(t, err)
			seen = append(seen, entry.key)
		}
		assert.Equal(t, keys, seen)
	}

	entries, err := l.Entries()
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestMigrateTo(t *testing.T) {
	l := newCounterList(t, 2)
	_, err := l.Append(key(1))
	require.NoError(t, err)
	_, err = l.Append(key(2))
	require.NoError(t, err)

	_, err = l.MigrateTo(make([]byte, RequiredSize[counter](1)), 1)
	assert.True(t, errors.Is(err, reverts.ErrListIsFull))

	bigger, err := l.MigrateTo(make([]byte, RequiredSize[counter](5)), 5)
	require.NoError(t, err)
	assert.Equal(t, 2, bigger.Len())
	assert.Equal(t, 5, bigger.MaxEntries())
	_, err = bigger.Append(key(3))
	require.NoError(t, err)
}

// TestListMatchesModel runs random operation sequences against a map.
func TestListMatchesModel(t *testing.T) {
	f := fuzz.New().NilChance(0)
	const capacity = 8

	for round := 0; round < 200; round++ {
		l := newCounterList(t, capacity)
		model := map[sol.Pubkey]uint64{}

		for step := 0; step < 64; step++ {
			var op, k uint8
			var v uint64
			f.Fuzz(&op)
			f.Fuzz(&k)
			f.Fuzz(&v)
			id := key(k % 12)

			switch op % 3 {
			case 0:
				_, err := l.Append(id)
				_, present := model[id]
				switch {
				case len(model) == capacity:
					assert.True(t, errors.Is(err, reverts.ErrListIsFull))
				case present:
					assert.True(t, errors.Is(err, reverts.ErrDuplicateKey))
				default:
					require.NoError(t, err)
					model[id] = 0
				}
			case 1:
				err := l.Remove(id)
				if _, present := model[id]; present {
					require.NoError(t, err)
					delete(model, id)
				} else {
					assert.True(t, errors.Is(err, reverts.ErrKeyNotFound))
				}
			case 2:
				err := l.Update(id, func(c *counter) error {
					c.value = v
					return nil
				})
				if _, present := model[id]; present {
					require.NoError(t, err)
					model[id] = v
				} else {
					assert.True(t, errors.Is(err, reverts.ErrKeyNotFound))
				}
			}

			require.Equal(t, len(model), l.Len())
			require.LessOrEqual(t, l.Len(), l.MaxEntries())
		}

		got := map[sol.Pubkey]uint64{}
		for entry, err := range l.All() {
			require.NoError(t, err)
			_, dup := got[entry.key]
			require.False(t, dup)
			got[entry.key] = entry.value
		}
		assert.Equal(t, model, got)
	}
}
