// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validator

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/stakepool/stsol/program/reverts"
	"github.com/stakepool/stsol/sol"
)

// StakeAccountSize is the data length of a stake account.
const StakeAccountSize = 48

// StakeAccount is the delegation record held in a stake account's data.
type StakeAccount struct {
	Vote              sol.Pubkey `json:"vote"`
	ActivationEpoch   sol.Epoch  `json:"activationEpoch"`
	DeactivationEpoch sol.Epoch  `json:"deactivationEpoch"`
}

// NewStakeAccount returns a delegation to vote activated at epoch.
func NewStakeAccount(vote sol.Pubkey, epoch sol.Epoch) *StakeAccount {
	return &StakeAccount{Vote: vote, ActivationEpoch: epoch, DeactivationEpoch: sol.NoEpoch}
}

func (s *StakeAccount) IsDeactivated() bool {
	return s.DeactivationEpoch != sol.NoEpoch
}

// IsInactive reports whether the stake has fully cooled down at epoch and can
// be withdrawn.
func (s *StakeAccount) IsInactive(epoch sol.Epoch) bool {
	return s.IsDeactivated() && s.DeactivationEpoch < epoch
}

func (s *StakeAccount) Encode() []byte {
	data := make([]byte, StakeAccountSize)
	copy(data[0:32], s.Vote[:])
	binary.LittleEndian.PutUint64(data[32:], s.ActivationEpoch)
	binary.LittleEndian.PutUint64(data[40:], s.DeactivationEpoch)
	return data
}

// DecodeStakeAccount parses stake account data.
func DecodeStakeAccount(data []byte) (*StakeAccount, error) {
	if len(data) != StakeAccountSize {
		return nil, errors.Wrapf(reverts.ErrInvalidStakeAccount, "stake account data of %d bytes", len(data))
	}
	s := &StakeAccount{
		ActivationEpoch:   binary.LittleEndian.Uint64(data[32:]),
		DeactivationEpoch: binary.LittleEndian.Uint64(data[40:]),
	}
	copy(s.Vote[:], data[0:32])
	return s, nil
}
