// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stakeaddr derives the addresses of the accounts a pool owns.
package stakeaddr

import (
	"encoding/binary"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/stakepool/stsol/sol"
)

// Purpose tells stake accounts from unstake accounts.
type Purpose uint8

const (
	PurposeStake Purpose = iota
	PurposeUnstake
)

var (
	accountDomain   = []byte("stsol/stake-account")
	authorityDomain = []byte("stsol/authority")
)

func (p Purpose) String() string {
	switch p {
	case PurposeStake:
		return "stake"
	case PurposeUnstake:
		return "unstake"
	}
	return "unknown"
}

// ParsePurpose parses "stake" or "unstake".
func ParsePurpose(s string) (Purpose, error) {
	switch strings.ToLower(s) {
	case "stake":
		return PurposeStake, nil
	case "unstake":
		return PurposeUnstake, nil
	}
	return 0, errors.Errorf("unknown purpose %q", s)
}

func (p Purpose) seed() ([]byte, error) {
	switch p {
	case PurposeStake:
		return sol.SeedValidatorStakeAccount, nil
	case PurposeUnstake:
		return sol.SeedValidatorUnstakeAccount, nil
	}
	return nil, errors.Errorf("unknown purpose %d", uint8(p))
}

// Derive returns the address of the account of the given purpose and seed
// that pool keeps with vote. A non nil epoch scopes the address to that epoch;
// only stake accounts have an epoch scoped variant, used for temporary
// accounts that are merged right after creation.
func Derive(program, pool, vote sol.Pubkey, purpose Purpose, seed uint64, epoch *sol.Epoch) (sol.Pubkey, error) {
	authority, err := purpose.seed()
	if err != nil {
		return sol.Pubkey{}, err
	}
	if epoch != nil {
		if purpose != PurposeStake {
			return sol.Pubkey{}, errors.New("only stake accounts can be epoch scoped")
		}
		authority = binary.LittleEndian.AppendUint64(append([]byte(nil), authority...), *epoch)
	}
	return deriveWithAuthority(program, pool, vote, authority, seed), nil
}

func deriveWithAuthority(program, pool, vote sol.Pubkey, authority []byte, seed uint64) sol.Pubkey {
	return sol.Blake2bFn(func(w io.Writer) {
		writeChunk(w, accountDomain)
		w.Write(program[:])
		w.Write(pool[:])
		w.Write(vote[:])
		writeChunk(w, authority)
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], seed)
		w.Write(b[:])
	})
}

// writeChunk length prefixes variable sized input so concatenations stay unambiguous.
func writeChunk(w io.Writer, b []byte) {
	var n [2]byte
	binary.LittleEndian.PutUint16(n[:], uint16(len(b)))
	w.Write(n[:])
	w.Write(b)
}

// StakeAccount returns the address of the stake account with seed.
func StakeAccount(program, pool, vote sol.Pubkey, seed uint64) sol.Pubkey {
	addr, _ := Derive(program, pool, vote, PurposeStake, seed, nil)
	return addr
}

// UnstakeAccount returns the address of the unstake account with seed.
func UnstakeAccount(program, pool, vote sol.Pubkey, seed uint64) sol.Pubkey {
	addr, _ := Derive(program, pool, vote, PurposeUnstake, seed, nil)
	return addr
}

// TemporaryStakeAccount returns the address of the stake account staged at
// epoch for merging into the stake account with seed.
func TemporaryStakeAccount(program, pool, vote sol.Pubkey, seed uint64, epoch sol.Epoch) sol.Pubkey {
	addr, _ := Derive(program, pool, vote, PurposeStake, seed, &epoch)
	return addr
}

// Authority returns the program owned address acting as the named authority
// of pool, such as the reserve or the stSOL mint authority.
func Authority(program, pool sol.Pubkey, name []byte) sol.Pubkey {
	return sol.Blake2bFn(func(w io.Writer) {
		writeChunk(w, authorityDomain)
		w.Write(program[:])
		w.Write(pool[:])
		writeChunk(w, name)
	})
}
