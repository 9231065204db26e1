// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/stakepool/stsol/sol"
)

const clockSize = 8

// Epoch returns the current epoch kept in the clock sysvar, zero if unset.
func (s *State) Epoch() (sol.Epoch, error) {
	a, err := s.getAccount(sol.SysvarClockID)
	if err != nil {
		return 0, err
	}
	switch len(a.Data) {
	case 0:
		return 0, nil
	case clockSize:
		return binary.LittleEndian.Uint64(a.Data), nil
	}
	return 0, &Error{errors.Errorf("clock sysvar holds %d bytes", len(a.Data))}
}

// SetEpoch advances the clock sysvar.
func (s *State) SetEpoch(epoch sol.Epoch) {
	data := make([]byte, clockSize)
	binary.LittleEndian.PutUint64(data, epoch)
	s.updateAccount(sol.SysvarClockID, &Account{Owner: sol.SysvarClockID, Data: data})
}
