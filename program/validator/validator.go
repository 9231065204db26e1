// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validator

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"

	"github.com/stakepool/stsol/log"
	"github.com/stakepool/stsol/program/accountlist"
	"github.com/stakepool/stsol/sol"
	"github.com/stakepool/stsol/token"
)

var logger = log.WithContext("pkg", "validator")

// EncodedSize is the byte length of a validator entry.
const EncodedSize = 89

type Status uint8

const (
	StatusAcceptingStakes Status = iota // receives new stake
	StatusStakesSuspended               // keeps its stake, receives none
	StatusPendingRemoval                // stake is being drained, no way back
)

func (s Status) String() string {
	switch s {
	case StatusAcceptingStakes:
		return "AcceptingStakes"
	case StatusStakesSuspended:
		return "StakesSuspended"
	case StatusPendingRemoval:
		return "PendingRemoval"
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

func (s Status) valid() bool {
	return s <= StatusPendingRemoval
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, errors.Errorf("invalid validator status %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// SeedRange is the half open interval [Begin, End) of generation numbers of
// the derived accounts that currently exist.
type SeedRange struct {
	Begin uint64 `json:"begin"`
	End   uint64 `json:"end"`
}

func (r SeedRange) IsEmpty() bool {
	return r.Begin == r.End
}

func (r SeedRange) Len() uint64 {
	return r.End - r.Begin
}

// Validator is the pool's view of a stake delegation target.
type Validator struct {
	// VoteAccount identifies the validator and never changes.
	VoteAccount  sol.Pubkey `json:"pubkey"`
	StakeSeeds   SeedRange  `json:"stakeSeeds"`
	UnstakeSeeds SeedRange  `json:"unstakeSeeds"`

	// StakeAccountsBalance sums the balances of the stake and unstake accounts.
	StakeAccountsBalance token.Lamports `json:"stakeAccountsBalance"`
	// UnstakeAccountsBalance sums the balances of the unstake accounts.
	UnstakeAccountsBalance token.Lamports `json:"unstakeAccountsBalance"`
	// EffectiveStakeBalance caches StakeAccountsBalance - UnstakeAccountsBalance.
	EffectiveStakeBalance token.Lamports `json:"effectiveStakeBalance"`

	Status Status `json:"status"`
}

// List is the validator list of a pool.
type List = accountlist.List[Validator, *Validator]

func (v *Validator) AccountType() accountlist.AccountType { return accountlist.Validator }
func (v *Validator) EncodedSize() int                     { return EncodedSize }
func (v *Validator) Key() sol.Pubkey                      { return v.VoteAccount }

func (v *Validator) Reset(key sol.Pubkey) {
	*v = Validator{VoteAccount: key, Status: StatusAcceptingStakes}
}

func (v *Validator) Encode(dst []byte) {
	_ = dst[EncodedSize-1]
	copy(dst[0:32], v.VoteAccount[:])
	binary.LittleEndian.PutUint64(dst[32:], v.StakeSeeds.Begin)
	binary.LittleEndian.PutUint64(dst[40:], v.StakeSeeds.End)
	binary.LittleEndian.PutUint64(dst[48:], v.UnstakeSeeds.Begin)
	binary.LittleEndian.PutUint64(dst[56:], v.UnstakeSeeds.End)
	binary.LittleEndian.PutUint64(dst[64:], uint64(v.StakeAccountsBalance))
	binary.LittleEndian.PutUint64(dst[72:], uint64(v.UnstakeAccountsBalance))
	binary.LittleEndian.PutUint64(dst[80:], uint64(v.EffectiveStakeBalance))
	dst[88] = byte(v.Status)
}

func (v *Validator) Decode(src []byte) error {
	if len(src) < EncodedSize {
		return errors.Errorf("validator entry needs %d bytes, got %d", EncodedSize, len(src))
	}
	status := Status(src[88])
	if !status.valid() {
		return errors.Errorf("invalid validator status %d", src[88])
	}
	stakeSeeds := SeedRange{binary.LittleEndian.Uint64(src[32:]), binary.LittleEndian.Uint64(src[40:])}
	unstakeSeeds := SeedRange{binary.LittleEndian.Uint64(src[48:]), binary.LittleEndian.Uint64(src[56:])}
	if stakeSeeds.Begin > stakeSeeds.End {
		return errors.Errorf("invalid stake seed range %d..%d", stakeSeeds.Begin, stakeSeeds.End)
	}
	if unstakeSeeds.Begin > unstakeSeeds.End {
		return errors.Errorf("invalid unstake seed range %d..%d", unstakeSeeds.Begin, unstakeSeeds.End)
	}
	copy(v.VoteAccount[:], src[0:32])
	v.StakeSeeds = stakeSeeds
	v.UnstakeSeeds = unstakeSeeds
	v.StakeAccountsBalance = token.Lamports(binary.LittleEndian.Uint64(src[64:]))
	v.UnstakeAccountsBalance = token.Lamports(binary.LittleEndian.Uint64(src[72:]))
	v.EffectiveStakeBalance = token.Lamports(binary.LittleEndian.Uint64(src[80:]))
	v.Status = status
	return nil
}

// RequiredSize returns the buffer size of a validator list of capacity n.
func RequiredSize(n uint32) int {
	return accountlist.RequiredSize[Validator](n)
}

// Init formats buf as an empty validator list.
func Init(buf []byte, n uint32) (*List, error) {
	return accountlist.Init[Validator](buf, n)
}

// Open returns a view over an existing validator list.
func Open(buf []byte) (*List, error) {
	return accountlist.Open[Validator](buf)
}
