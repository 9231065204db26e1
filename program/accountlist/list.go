// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accountlist

import (
	"bytes"
	"encoding/binary"
	"iter"

	"github.com/pkg/errors"

	"github.com/stakepool/stsol/program/reverts"
	"github.com/stakepool/stsol/sol"
)

// Record is the capability an entry type needs to live in a List.
// Encode must write the key into the first sol.PubkeyLength bytes of dst so
// lookups can compare keys in place without decoding entries.
type Record[T any] interface {
	*T
	AccountType() AccountType
	EncodedSize() int
	Key() sol.Pubkey
	// Reset turns the receiver into a freshly defaulted entry for key.
	Reset(key sol.Pubkey)
	Encode(dst []byte)
	Decode(src []byte) error
}

func layoutOf[T any, P Record[T]]() (AccountType, int) {
	var zero T
	p := P(&zero)
	return p.AccountType(), p.EncodedSize()
}

// RequiredSize returns the exact byte length of a list holding up to maxEntries.
func RequiredSize[T any, P Record[T]](maxEntries uint32) int {
	_, size := layoutOf[T, P]()
	return HeaderSize + int(maxEntries)*size
}

// List is a fixed capacity collection of entries laid out in place in an
// account buffer. All methods read and write the buffer directly.
//
// Entry positions are not stable: Remove moves the last entry into the
// freed slot, so any index obtained before a mutation must be re-resolved.
type List[T any, P Record[T]] struct {
	buf         []byte
	accountType AccountType
	size        int
}

// Init formats an all-zero buffer as an empty list of capacity maxEntries.
func Init[T any, P Record[T]](buf []byte, maxEntries uint32) (*List[T, P], error) {
	accountType, size := layoutOf[T, P]()
	if want := HeaderSize + int(maxEntries)*size; len(buf) != want {
		return nil, errors.Wrapf(reverts.ErrInvalidAccountData, "%v list of %d entries needs %d bytes, got %d", accountType, maxEntries, want, len(buf))
	}
	if PeekType(buf) != Uninitialized {
		return nil, errors.Wrapf(reverts.ErrAlreadyInUse, "account already holds a %v", PeekType(buf))
	}
	clear(buf)
	header{accountType: accountType, version: Version, maxEntries: maxEntries}.write(buf)
	return &List[T, P]{buf: buf, accountType: accountType, size: size}, nil
}

// Open validates the header of buf and returns a view over it.
func Open[T any, P Record[T]](buf []byte) (*List[T, P], error) {
	accountType, size := layoutOf[T, P]()
	h, err := readHeader(buf)
	if err != nil {
		return nil, err
	}
	if h.accountType != accountType {
		return nil, errors.Wrapf(reverts.ErrInvalidAccountData, "expected a %v list, found %v", accountType, h.accountType)
	}
	if h.version != Version {
		return nil, errors.Wrapf(reverts.ErrInvalidAccountData, "unsupported list version %d", h.version)
	}
	if want := HeaderSize + int(h.maxEntries)*size; len(buf) != want {
		return nil, errors.Wrapf(reverts.ErrInvalidAccountData, "%v list declares %d entries, needs %d bytes, got %d", accountType, h.maxEntries, want, len(buf))
	}
	if h.count > h.maxEntries {
		return nil, errors.Wrapf(reverts.ErrInvalidAccountData, "%v list holds %d entries but capacity is %d", accountType, h.count, h.maxEntries)
	}
	return &List[T, P]{buf: buf, accountType: accountType, size: size}, nil
}

// Bytes returns the underlying buffer.
func (l *List[T, P]) Bytes() []byte {
	return l.buf
}

// Len returns the number of live entries.
func (l *List[T, P]) Len() int {
	return int(binary.LittleEndian.Uint32(l.buf[offCount:]))
}

// MaxEntries returns the capacity fixed at Init.
func (l *List[T, P]) MaxEntries() int {
	return int(binary.LittleEndian.Uint32(l.buf[offMax:]))
}

func (l *List[T, P]) setLen(n int) {
	binary.LittleEndian.PutUint32(l.buf[offCount:], uint32(n))
}

func (l *List[T, P]) slot(i int) []byte {
	start := HeaderSize + i*l.size
	return l.buf[start : start+l.size]
}

// At decodes the entry at index i.
func (l *List[T, P]) At(i int) (*T, error) {
	if i < 0 || i >= l.Len() {
		return nil, errors.Wrapf(reverts.ErrKeyNotFound, "index %d out of %d", i, l.Len())
	}
	entry := new(T)
	if err := P(entry).Decode(l.slot(i)); err != nil {
		return nil, errors.Wrapf(reverts.ErrInvalidAccountData, "%v entry %d: %v", l.accountType, i, err)
	}
	return entry, nil
}

// Position returns the index of the entry with key.
func (l *List[T, P]) Position(key sol.Pubkey) (int, bool) {
	n := l.Len()
	for i := 0; i < n; i++ {
		if bytes.Equal(l.slot(i)[:sol.PubkeyLength], key[:]) {
			return i, true
		}
	}
	return 0, false
}

// Find returns the entry with key, or nil if there is none.
func (l *List[T, P]) Find(key sol.Pubkey) (*T, error) {
	i, ok := l.Position(key)
	if !ok {
		return nil, nil
	}
	return l.At(i)
}

// Get returns the entry with key, failing with KeyNotFound if there is none.
func (l *List[T, P]) Get(key sol.Pubkey) (*T, error) {
	i, ok := l.Position(key)
	if !ok {
		return nil, errors.Wrapf(reverts.ErrKeyNotFound, "%v %v", l.accountType, key)
	}
	return l.At(i)
}

// Append writes a defaulted entry for key past the last live one.
func (l *List[T, P]) Append(key sol.Pubkey) (*T, error) {
	n := l.Len()
	if n >= l.MaxEntries() {
		return nil, errors.Wrapf(reverts.ErrListIsFull, "%v list capacity %d", l.accountType, l.MaxEntries())
	}
	if _, ok := l.Position(key); ok {
		return nil, errors.Wrapf(reverts.ErrDuplicateKey, "%v %v", l.accountType, key)
	}
	entry := new(T)
	P(entry).Reset(key)
	P(entry).Encode(l.slot(n))
	l.setLen(n + 1)
	return entry, nil
}

// Put writes entry back over the live entry with the same key.
func (l *List[T, P]) Put(entry *T) error {
	key := P(entry).Key()
	i, ok := l.Position(key)
	if !ok {
		return errors.Wrapf(reverts.ErrKeyNotFound, "%v %v", l.accountType, key)
	}
	P(entry).Encode(l.slot(i))
	return nil
}

// Update decodes the entry with key, applies fn and writes the result back.
// Nothing is written when fn fails.
func (l *List[T, P]) Update(key sol.Pubkey, fn func(*T) error) error {
	i, ok := l.Position(key)
	if !ok {
		return errors.Wrapf(reverts.ErrKeyNotFound, "%v %v", l.accountType, key)
	}
	entry, err := l.At(i)
	if err != nil {
		return err
	}
	if err := fn(entry); err != nil {
		return err
	}
	if P(entry).Key() != key {
		panic("accountlist: update changed the entry key")
	}
	P(entry).Encode(l.slot(i))
	return nil
}

// Remove deletes the entry with key by moving the last live entry into its
// slot. Order is not preserved.
func (l *List[T, P]) Remove(key sol.Pubkey) error {
	i, ok := l.Position(key)
	if !ok {
		return errors.Wrapf(reverts.ErrKeyNotFound, "%v %v", l.accountType, key)
	}
	last := l.Len() - 1
	if i != last {
		copy(l.slot(i), l.slot(last))
	}
	clear(l.slot(last))
	l.setLen(last)
	return nil
}

// All yields the live entries in storage order. Iteration stops after the
// first entry that fails to decode.
func (l *List[T, P]) All() iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		for i := 0; i < l.Len(); i++ {
			entry, err := l.At(i)
			if !yield(entry, err) || err != nil {
				return
			}
		}
	}
}

// Entries decodes every live entry.
func (l *List[T, P]) Entries() ([]*T, error) {
	entries := make([]*T, 0, l.Len())
	for entry, err := range l.All() {
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// MigrateTo formats buf as a list of capacity maxEntries holding a copy of
// every live entry. Capacity only changes this way.
func (l *List[T, P]) MigrateTo(buf []byte, maxEntries uint32) (*List[T, P], error) {
	if int(maxEntries) < l.Len() {
		return nil, errors.Wrapf(reverts.ErrListIsFull, "%d entries do not fit in %d", l.Len(), maxEntries)
	}
	dst, err := Init[T, P](buf, maxEntries)
	if err != nil {
		return nil, err
	}
	n := l.Len()
	copy(dst.buf[HeaderSize:], l.buf[HeaderSize:HeaderSize+n*l.size])
	dst.setLen(n)
	return dst, nil
}
