// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"github.com/stakepool/stsol/program/perf"
	"github.com/stakepool/stsol/program/pool"
	"github.com/stakepool/stsol/program/validator"
	"github.com/stakepool/stsol/sol"
	"github.com/stakepool/stsol/token"
)

// Pool is the pool record along with its derived accounts.
type Pool struct {
	*pool.Pool
	Addresses   pool.Addresses   `json:"addresses"`
	Reserve     token.Lamports   `json:"reserve"`
	StSolSupply token.StLamports `json:"stSolSupply"`
}

// Validator is a validator entry with its performance record, live
// commission and stake accounts.
type Validator struct {
	*validator.Validator
	Perf            *perf.ValidatorPerf `json:"perf,omitempty"`
	LiveCommission  *uint8              `json:"liveCommission,omitempty"`
	StakeAccounts   []sol.Pubkey        `json:"stakeAccounts"`
	UnstakeAccounts []sol.Pubkey        `json:"unstakeAccounts"`
}

// Balance is the stSOL held by an owner.
type Balance struct {
	Owner   sol.Pubkey       `json:"owner"`
	Account sol.Pubkey       `json:"account"`
	StSol   token.StLamports `json:"stSol"`
	Sol     token.Lamports   `json:"sol"`
}
