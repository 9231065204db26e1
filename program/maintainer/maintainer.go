// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package maintainer

import (
	"github.com/pkg/errors"

	"github.com/stakepool/stsol/program/accountlist"
	"github.com/stakepool/stsol/program/reverts"
	"github.com/stakepool/stsol/sol"
)

// EncodedSize is the byte length of a maintainer entry.
const EncodedSize = sol.PubkeyLength

// Maintainer is an identity allowed to submit bookkeeping instructions.
type Maintainer struct {
	PubKey sol.Pubkey
}

// List is the maintainer list of a pool.
type List = accountlist.List[Maintainer, *Maintainer]

func (m *Maintainer) AccountType() accountlist.AccountType { return accountlist.Maintainer }
func (m *Maintainer) EncodedSize() int                     { return EncodedSize }
func (m *Maintainer) Key() sol.Pubkey                      { return m.PubKey }
func (m *Maintainer) Reset(key sol.Pubkey)                 { m.PubKey = key }

func (m *Maintainer) Encode(dst []byte) {
	copy(dst[:EncodedSize], m.PubKey[:])
}

func (m *Maintainer) Decode(src []byte) error {
	if len(src) < EncodedSize {
		return errors.Errorf("maintainer entry needs %d bytes, got %d", EncodedSize, len(src))
	}
	copy(m.PubKey[:], src)
	return nil
}

// RequiredSize returns the buffer size of a maintainer list of capacity n.
func RequiredSize(n uint32) int {
	return accountlist.RequiredSize[Maintainer](n)
}

// Init formats buf as an empty maintainer list.
func Init(buf []byte, n uint32) (*List, error) {
	return accountlist.Init[Maintainer](buf, n)
}

// Open returns a view over an existing maintainer list.
func Open(buf []byte) (*List, error) {
	return accountlist.Open[Maintainer](buf)
}

// Check fails with InvalidMaintainer unless key is in the list.
func Check(list *List, key sol.Pubkey) error {
	if _, ok := list.Position(key); !ok {
		return errors.Wrapf(reverts.ErrInvalidMaintainer, "%v", key)
	}
	return nil
}
