// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"github.com/pkg/errors"

	"github.com/stakepool/stsol/program/accountlist"
	"github.com/stakepool/stsol/program/curation"
	"github.com/stakepool/stsol/program/maintainer"
	"github.com/stakepool/stsol/program/perf"
	"github.com/stakepool/stsol/program/pool"
	"github.com/stakepool/stsol/program/reverts"
	"github.com/stakepool/stsol/program/validator"
	"github.com/stakepool/stsol/sol"
	"github.com/stakepool/stsol/state"
	"github.com/stakepool/stsol/token"
)

func (p *Program) loadOwned(addr sol.Pubkey, what string) (*state.Account, error) {
	a, err := p.st.GetAccount(addr)
	if err != nil {
		return nil, err
	}
	if a.Owner != p.id {
		return nil, errors.Wrapf(reverts.ErrInvalidOwner, "%s %v is owned by %v", what, addr, a.Owner)
	}
	return a, nil
}

// LoadPool reads the pool record at addr.
func (p *Program) LoadPool(addr sol.Pubkey) (*pool.Pool, error) {
	a, err := p.loadOwned(addr, "pool")
	if err != nil {
		return nil, err
	}
	return pool.Decode(a.Data)
}

func (p *Program) savePool(addr sol.Pubkey, pl *pool.Pool) error {
	data, err := pl.Encode()
	if err != nil {
		return err
	}
	return p.st.SetData(addr, data)
}

func loadList[T any, P accountlist.Record[T]](p *Program, addr sol.Pubkey) (*accountlist.List[T, P], error) {
	a, err := p.loadOwned(addr, "list")
	if err != nil {
		return nil, err
	}
	l, err := accountlist.Open[T, P](a.Data)
	if err != nil {
		return nil, errors.WithMessagef(err, "open list %v", addr)
	}
	return l, nil
}

func storeList[T any, P accountlist.Record[T]](p *Program, addr sol.Pubkey, l *accountlist.List[T, P]) error {
	return p.st.SetData(addr, l.Bytes())
}

// Validators opens the validator list of pl.
func (p *Program) Validators(pl *pool.Pool) (*validator.List, error) {
	return loadList[validator.Validator](p, pl.ValidatorList)
}

// ValidatorPerfs opens the validator performance list of pl.
func (p *Program) ValidatorPerfs(pl *pool.Pool) (*perf.List, error) {
	return loadList[perf.ValidatorPerf](p, pl.ValidatorPerfList)
}

// Maintainers opens the maintainer list of pl.
func (p *Program) Maintainers(pl *pool.Pool) (*maintainer.List, error) {
	return loadList[maintainer.Maintainer](p, pl.MaintainerList)
}

func (p *Program) checkMaintainer(pl *pool.Pool, signer sol.Pubkey) error {
	maintainers, err := p.Maintainers(pl)
	if err != nil {
		return err
	}
	return maintainer.Check(maintainers, signer)
}

// Commission reads the live commission of a vote account. ok is false when
// the account is not a live vote account.
func (p *Program) Commission(vote sol.Pubkey) (commission uint8, ok bool, err error) {
	a, err := p.st.GetAccount(vote)
	if err != nil {
		return 0, false, err
	}
	if a.Owner != sol.VoteProgramID {
		return 0, false, nil
	}
	commission, ok = curation.ReadVoteCommission(a.Data)
	return commission, ok, nil
}

// SetVoteAccount installs a vote account with the given commission.
func SetVoteAccount(st *state.State, vote sol.Pubkey, commission uint8) error {
	data := make([]byte, curation.VoteCommissionOffset+1)
	data[curation.VoteCommissionOffset] = commission
	a, err := st.GetAccount(vote)
	if err != nil {
		return err
	}
	a.Owner = sol.VoteProgramID
	a.Data = data
	st.SetAccount(vote, a)
	return nil
}

func (p *Program) readStakeAccount(addr sol.Pubkey) (token.Lamports, *validator.StakeAccount, error) {
	a, err := p.st.GetAccount(addr)
	if err != nil {
		return 0, nil, err
	}
	if a.Owner != sol.StakeProgramID {
		return 0, nil, errors.Wrapf(reverts.ErrInvalidStakeAccount, "account %v is owned by %v", addr, a.Owner)
	}
	sa, err := validator.DecodeStakeAccount(a.Data)
	if err != nil {
		return 0, nil, errors.WithMessagef(err, "stake account %v", addr)
	}
	return token.Lamports(a.Lamports), sa, nil
}

func (p *Program) createStakeAccount(addr sol.Pubkey, lamports token.Lamports, sa *validator.StakeAccount) error {
	if err := p.checkUnused(addr); err != nil {
		return err
	}
	p.st.SetAccount(addr, &state.Account{
		Lamports: uint64(lamports),
		Owner:    sol.StakeProgramID,
		Data:     sa.Encode(),
	})
	return nil
}

func (p *Program) checkUnused(addr sol.Pubkey) error {
	exists, err := p.st.Exists(addr)
	if err != nil {
		return err
	}
	if exists {
		return errors.Wrapf(reverts.ErrAlreadyInUse, "account %v", addr)
	}
	return nil
}

// transfer moves lamports between two accounts.
func (p *Program) transfer(from, to sol.Pubkey, amount token.Lamports) error {
	balance, err := p.st.GetLamports(from)
	if err != nil {
		return err
	}
	left, err := token.Lamports(balance).Sub(amount)
	if err != nil {
		return errors.Wrapf(reverts.ErrInsufficientFunds, "%v holds %v, needs %v", from, token.Lamports(balance), amount)
	}
	if err := p.st.SetLamports(from, uint64(left)); err != nil {
		return err
	}
	return p.credit(to, amount)
}

func (p *Program) credit(to sol.Pubkey, amount token.Lamports) error {
	balance, err := p.st.GetLamports(to)
	if err != nil {
		return err
	}
	sum, err := token.Lamports(balance).Add(amount)
	if err != nil {
		return err
	}
	return p.st.SetLamports(to, uint64(sum))
}
