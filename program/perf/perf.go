// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package perf

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/stakepool/stsol/per64"
	"github.com/stakepool/stsol/program/accountlist"
	"github.com/stakepool/stsol/program/reverts"
	"github.com/stakepool/stsol/sol"
)

// EncodedSize is the byte length of a validator perf entry.
const EncodedSize = 74

// OffchainValidatorPerf is the part of a validator's performance collected
// outside the ledger.
type OffchainValidatorPerf struct {
	UpdatedAt           sol.Epoch   `json:"updatedAt"`
	BlockProductionRate per64.Ratio `json:"blockProductionRate"`
	VoteSuccessRate     per64.Ratio `json:"voteSuccessRate"`
	Uptime              per64.Ratio `json:"uptime"`
}

// ValidatorPerf holds the observed performance of a validator. The validator
// it refers to may already be gone from the validator list.
type ValidatorPerf struct {
	VoteAccount sol.Pubkey `json:"pubkey"`

	Commission uint8 `json:"commission"`
	// CommissionUpdatedAt is sol.NoEpoch until the first commission reading.
	CommissionUpdatedAt sol.Epoch `json:"commissionUpdatedAt"`

	Offchain *OffchainValidatorPerf `json:"offchain,omitempty"`
}

// List is the validator perf list of a pool.
type List = accountlist.List[ValidatorPerf, *ValidatorPerf]

func (p *ValidatorPerf) AccountType() accountlist.AccountType { return accountlist.ValidatorPerf }
func (p *ValidatorPerf) EncodedSize() int                     { return EncodedSize }
func (p *ValidatorPerf) Key() sol.Pubkey                      { return p.VoteAccount }

func (p *ValidatorPerf) Reset(key sol.Pubkey) {
	*p = ValidatorPerf{VoteAccount: key, CommissionUpdatedAt: sol.NoEpoch}
}

func (p *ValidatorPerf) Encode(dst []byte) {
	_ = dst[EncodedSize-1]
	copy(dst[0:32], p.VoteAccount[:])
	dst[32] = p.Commission
	binary.LittleEndian.PutUint64(dst[33:], p.CommissionUpdatedAt)
	clear(dst[41:EncodedSize])
	if p.Offchain != nil {
		dst[41] = 1
		binary.LittleEndian.PutUint64(dst[42:], p.Offchain.UpdatedAt)
		binary.LittleEndian.PutUint64(dst[50:], uint64(p.Offchain.BlockProductionRate))
		binary.LittleEndian.PutUint64(dst[58:], uint64(p.Offchain.VoteSuccessRate))
		binary.LittleEndian.PutUint64(dst[66:], uint64(p.Offchain.Uptime))
	}
}

func (p *ValidatorPerf) Decode(src []byte) error {
	if len(src) < EncodedSize {
		return errors.Errorf("validator perf entry needs %d bytes, got %d", EncodedSize, len(src))
	}
	var offchain *OffchainValidatorPerf
	switch src[41] {
	case 0:
	case 1:
		offchain = &OffchainValidatorPerf{
			UpdatedAt:           binary.LittleEndian.Uint64(src[42:]),
			BlockProductionRate: per64.Ratio(binary.LittleEndian.Uint64(src[50:])),
			VoteSuccessRate:     per64.Ratio(binary.LittleEndian.Uint64(src[58:])),
			Uptime:              per64.Ratio(binary.LittleEndian.Uint64(src[66:])),
		}
	default:
		return errors.Errorf("invalid offchain presence flag %d", src[41])
	}
	copy(p.VoteAccount[:], src[0:32])
	p.Commission = src[32]
	p.CommissionUpdatedAt = binary.LittleEndian.Uint64(src[33:])
	p.Offchain = offchain
	return nil
}

// HasCommission reports whether the commission was ever observed.
func (p *ValidatorPerf) HasCommission() bool {
	return p.CommissionUpdatedAt != sol.NoEpoch
}

// UpdateCommission records the commission observed at epoch, at most once per epoch.
func (p *ValidatorPerf) UpdateCommission(commission uint8, epoch sol.Epoch) error {
	if p.HasCommission() && p.CommissionUpdatedAt >= epoch {
		return errors.Wrapf(reverts.ErrAlreadyUpdatedForEpoch, "commission of %v updated at epoch %d", p.VoteAccount, p.CommissionUpdatedAt)
	}
	p.Commission = commission
	p.CommissionUpdatedAt = epoch
	return nil
}

// UpdateOffchain replaces the off-chain bundle with one stamped at epoch, at
// most once per epoch.
func (p *ValidatorPerf) UpdateOffchain(offchain OffchainValidatorPerf, epoch sol.Epoch) error {
	if p.Offchain != nil && p.Offchain.UpdatedAt >= epoch {
		return errors.Wrapf(reverts.ErrAlreadyUpdatedForEpoch, "offchain perf of %v updated at epoch %d", p.VoteAccount, p.Offchain.UpdatedAt)
	}
	offchain.UpdatedAt = epoch
	p.Offchain = &offchain
	return nil
}

// RequiredSize returns the buffer size of a perf list of capacity n.
func RequiredSize(n uint32) int {
	return accountlist.RequiredSize[ValidatorPerf](n)
}

// Init formats buf as an empty perf list.
func Init(buf []byte, n uint32) (*List, error) {
	return accountlist.Init[ValidatorPerf](buf, n)
}

// Open returns a view over an existing perf list.
func Open(buf []byte) (*List, error) {
	return accountlist.Open[ValidatorPerf](buf)
}
