// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/stakepool/stsol/program/pool"
	"github.com/stakepool/stsol/program/reverts"
	"github.com/stakepool/stsol/program/stakeaddr"
	"github.com/stakepool/stsol/sol"
	"github.com/stakepool/stsol/state"
	"github.com/stakepool/stsol/token"
)

// stSOL mint data is the supply. A holder account stores its owner followed
// by its balance.
const (
	mintSize         = 8
	tokenAccountSize = sol.PubkeyLength + 8
)

// TokenAccount returns the address of the stSOL account of owner in a pool.
func (p *Program) TokenAccount(poolAddr, owner sol.Pubkey) sol.Pubkey {
	name := make([]byte, 0, len(sol.SeedStSolAccount)+sol.PubkeyLength)
	name = append(name, sol.SeedStSolAccount...)
	name = append(name, owner[:]...)
	return stakeaddr.Authority(p.id, poolAddr, name)
}

func (p *Program) createMint(addr sol.Pubkey) error {
	if err := p.checkUnused(addr); err != nil {
		return err
	}
	p.st.SetAccount(addr, &state.Account{Owner: p.id, Data: make([]byte, mintSize)})
	return nil
}

// StSolSupply returns the amount of stSOL in circulation for pl.
func (p *Program) StSolSupply(pl *pool.Pool) (token.StLamports, error) {
	a, err := p.loadOwned(pl.StSolMint, "mint")
	if err != nil {
		return 0, err
	}
	if len(a.Data) != mintSize {
		return 0, errors.Wrapf(reverts.ErrInvalidAccountData, "mint holds %d bytes", len(a.Data))
	}
	return token.StLamports(binary.LittleEndian.Uint64(a.Data)), nil
}

// StSolBalance returns the stSOL held by owner in the pool at poolAddr.
func (p *Program) StSolBalance(poolAddr, owner sol.Pubkey) (token.StLamports, error) {
	addr := p.TokenAccount(poolAddr, owner)
	a, err := p.st.GetAccount(addr)
	if err != nil {
		return 0, err
	}
	if a.IsEmpty() {
		return 0, nil
	}
	if a.Owner != p.id || len(a.Data) != tokenAccountSize {
		return 0, errors.Wrapf(reverts.ErrInvalidAccountData, "token account %v", addr)
	}
	return token.StLamports(binary.LittleEndian.Uint64(a.Data[sol.PubkeyLength:])), nil
}

// mint credits amount stSOL to owner and grows the supply.
func (p *Program) mint(poolAddr sol.Pubkey, pl *pool.Pool, owner sol.Pubkey, amount token.StLamports) error {
	supply, err := p.StSolSupply(pl)
	if err != nil {
		return err
	}
	if supply, err = supply.Add(amount); err != nil {
		return err
	}
	balance, err := p.StSolBalance(poolAddr, owner)
	if err != nil {
		return err
	}
	if balance, err = balance.Add(amount); err != nil {
		return err
	}

	data := make([]byte, tokenAccountSize)
	copy(data, owner[:])
	binary.LittleEndian.PutUint64(data[sol.PubkeyLength:], uint64(balance))
	addr := p.TokenAccount(poolAddr, owner)
	a, err := p.st.GetAccount(addr)
	if err != nil {
		return err
	}
	a.Owner = p.id
	a.Data = data
	p.st.SetAccount(addr, a)

	return p.st.SetData(pl.StSolMint, binary.LittleEndian.AppendUint64(nil, uint64(supply)))
}
