// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package derive

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/stakepool/stsol/api/utils"
	"github.com/stakepool/stsol/program/stakeaddr"
	"github.com/stakepool/stsol/sol"
)

// Address is a derived stake account address with its inputs.
type Address struct {
	Pool    sol.Pubkey `json:"pool"`
	Vote    sol.Pubkey `json:"vote"`
	Purpose string     `json:"purpose"`
	Seed    uint64     `json:"seed"`
	Epoch   *sol.Epoch `json:"epoch,omitempty"`
	Address sol.Pubkey `json:"address"`
}

type Derive struct {
	programID sol.Pubkey
}

func New(programID sol.Pubkey) *Derive {
	return &Derive{programID}
}

func (d *Derive) handleDerive(w http.ResponseWriter, req *http.Request) error {
	vars := mux.Vars(req)
	pool, err := sol.ParsePubkey(vars["pool"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "pool"))
	}
	vote, err := sol.ParsePubkey(vars["vote"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "vote"))
	}
	purpose, err := stakeaddr.ParsePurpose(vars["purpose"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "purpose"))
	}
	seed, err := strconv.ParseUint(vars["seed"], 10, 64)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "seed"))
	}

	var epoch *sol.Epoch
	if s := req.URL.Query().Get("epoch"); s != "" {
		e, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return utils.BadRequest(errors.WithMessage(err, "epoch"))
		}
		epoch = &e
	}

	addr, err := stakeaddr.Derive(d.programID, pool, vote, purpose, seed, epoch)
	if err != nil {
		return utils.BadRequest(err)
	}
	return utils.WriteJSON(w, &Address{
		Pool:    pool,
		Vote:    vote,
		Purpose: purpose.String(),
		Seed:    seed,
		Epoch:   epoch,
		Address: addr,
	})
}

func (d *Derive) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{pool}/{vote}/{purpose}/{seed}").
		Methods(http.MethodGet).
		Name("derive_stake_account").
		HandlerFunc(utils.WrapHandlerFunc(d.handleDerive))
}
