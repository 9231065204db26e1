// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accountlist

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"

	"github.com/stakepool/stsol/program/reverts"
)

// AccountType tags the content of a program owned account.
type AccountType uint8

const (
	Uninitialized AccountType = iota
	Pool
	Validator
	Maintainer
	ValidatorPerf
)

func (t AccountType) String() string {
	switch t {
	case Uninitialized:
		return "uninitialized"
	case Pool:
		return "pool"
	case Validator:
		return "validator"
	case Maintainer:
		return "maintainer"
	case ValidatorPerf:
		return "validator-perf"
	}
	return fmt.Sprintf("account-type(%d)", uint8(t))
}

// Version of the list layout.
const Version uint8 = 1

// HeaderSize is the byte length of the list header:
//
//	account_type u8 | version u8 | max_entries u32 | count u32
const HeaderSize = 10

const (
	offType    = 0
	offVersion = 1
	offMax     = 2
	offCount   = 6
)

type header struct {
	accountType AccountType
	version     uint8
	maxEntries  uint32
	count       uint32
}

func readHeader(buf []byte) (header, error) {
	if len(buf) < HeaderSize {
		return header{}, errors.Wrapf(reverts.ErrInvalidAccountData, "buffer of %d bytes is shorter than the list header", len(buf))
	}
	return header{
		accountType: AccountType(buf[offType]),
		version:     buf[offVersion],
		maxEntries:  binary.LittleEndian.Uint32(buf[offMax:]),
		count:       binary.LittleEndian.Uint32(buf[offCount:]),
	}, nil
}

func (h header) write(buf []byte) {
	buf[offType] = byte(h.accountType)
	buf[offVersion] = h.version
	binary.LittleEndian.PutUint32(buf[offMax:], h.maxEntries)
	binary.LittleEndian.PutUint32(buf[offCount:], h.count)
}

// PeekType returns the account type tag of a raw account buffer.
func PeekType(buf []byte) AccountType {
	if len(buf) == 0 {
		return Uninitialized
	}
	return AccountType(buf[offType])
}
