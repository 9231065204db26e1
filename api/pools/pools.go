// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/stakepool/stsol/api/utils"
	"github.com/stakepool/stsol/program"
	"github.com/stakepool/stsol/program/pool"
	"github.com/stakepool/stsol/program/stakeaddr"
	"github.com/stakepool/stsol/sol"
	"github.com/stakepool/stsol/state"
	"github.com/stakepool/stsol/token"
)

type Pools struct {
	programID sol.Pubkey
	stater    *state.Stater
}

func New(programID sol.Pubkey, stater *state.Stater) *Pools {
	return &Pools{programID, stater}
}

// program returns a processor over a fresh view of the ledger.
func (p *Pools) program() *program.Program {
	return program.New(p.programID, p.stater.NewState())
}

func pubkeyVar(req *http.Request, name string) (sol.Pubkey, error) {
	key, err := sol.ParsePubkey(mux.Vars(req)[name])
	if err != nil {
		return sol.Pubkey{}, utils.BadRequest(errors.WithMessage(err, name))
	}
	return key, nil
}

func (p *Pools) handleGetPool(w http.ResponseWriter, req *http.Request) error {
	addr, err := pubkeyVar(req, "pool")
	if err != nil {
		return err
	}
	prog := p.program()
	pl, err := prog.LoadPool(addr)
	if err != nil {
		return utils.FromRevert(err)
	}
	supply, err := prog.StSolSupply(pl)
	if err != nil {
		return utils.FromRevert(err)
	}
	reserve, err := prog.State().GetLamports(prog.Reserve(addr))
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Pool{
		Pool:        pl,
		Addresses:   pool.DeriveAddresses(p.programID, addr),
		Reserve:     token.Lamports(reserve),
		StSolSupply: supply,
	})
}

func (p *Pools) handleGetValidators(w http.ResponseWriter, req *http.Request) error {
	addr, err := pubkeyVar(req, "pool")
	if err != nil {
		return err
	}
	prog := p.program()
	pl, err := prog.LoadPool(addr)
	if err != nil {
		return utils.FromRevert(err)
	}
	validators, err := prog.Validators(pl)
	if err != nil {
		return utils.FromRevert(err)
	}
	perfs, err := prog.ValidatorPerfs(pl)
	if err != nil {
		return utils.FromRevert(err)
	}

	result := make([]*Validator, 0, validators.Len())
	for v, err := range validators.All() {
		if err != nil {
			return utils.FromRevert(err)
		}
		record, err := perfs.Find(v.VoteAccount)
		if err != nil {
			return utils.FromRevert(err)
		}
		item := &Validator{
			Validator:       v,
			Perf:            record,
			StakeAccounts:   make([]sol.Pubkey, 0, v.StakeSeeds.Len()),
			UnstakeAccounts: make([]sol.Pubkey, 0, v.UnstakeSeeds.Len()),
		}
		commission, live, err := prog.Commission(v.VoteAccount)
		if err != nil {
			return err
		}
		if live {
			item.LiveCommission = &commission
		}
		for seed := v.StakeSeeds.Begin; seed < v.StakeSeeds.End; seed++ {
			item.StakeAccounts = append(item.StakeAccounts, stakeaddr.StakeAccount(p.programID, addr, v.VoteAccount, seed))
		}
		for seed := v.UnstakeSeeds.Begin; seed < v.UnstakeSeeds.End; seed++ {
			item.UnstakeAccounts = append(item.UnstakeAccounts, stakeaddr.UnstakeAccount(p.programID, addr, v.VoteAccount, seed))
		}
		result = append(result, item)
	}
	return utils.WriteJSON(w, result)
}

func (p *Pools) handleGetMaintainers(w http.ResponseWriter, req *http.Request) error {
	addr, err := pubkeyVar(req, "pool")
	if err != nil {
		return err
	}
	prog := p.program()
	pl, err := prog.LoadPool(addr)
	if err != nil {
		return utils.FromRevert(err)
	}
	maintainers, err := prog.Maintainers(pl)
	if err != nil {
		return utils.FromRevert(err)
	}
	keys := make([]sol.Pubkey, 0, maintainers.Len())
	for m, err := range maintainers.All() {
		if err != nil {
			return utils.FromRevert(err)
		}
		keys = append(keys, m.PubKey)
	}
	return utils.WriteJSON(w, keys)
}

func (p *Pools) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	addr, err := pubkeyVar(req, "pool")
	if err != nil {
		return err
	}
	owner, err := pubkeyVar(req, "owner")
	if err != nil {
		return err
	}
	prog := p.program()
	pl, err := prog.LoadPool(addr)
	if err != nil {
		return utils.FromRevert(err)
	}
	balance, err := prog.StSolBalance(addr, owner)
	if err != nil {
		return utils.FromRevert(err)
	}
	worth, err := pl.ExchangeRate.ExchangeStSol(balance)
	if err != nil {
		// no stSOL minted yet
		worth = 0
	}
	return utils.WriteJSON(w, &Balance{
		Owner:   owner,
		Account: prog.TokenAccount(addr, owner),
		StSol:   balance,
		Sol:     worth,
	})
}

func (p *Pools) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{pool}").
		Methods(http.MethodGet).
		Name("pools_get_pool").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPool))
	sub.Path("/{pool}/validators").
		Methods(http.MethodGet).
		Name("pools_get_validators").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetValidators))
	sub.Path("/{pool}/maintainers").
		Methods(http.MethodGet).
		Name("pools_get_maintainers").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetMaintainers))
	sub.Path("/{pool}/balances/{owner}").
		Methods(http.MethodGet).
		Name("pools_get_balance").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetBalance))
}
