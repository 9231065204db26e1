// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package program processes the instructions of staking pools over an
// account ledger. Every instruction is all or nothing: a failed instruction
// leaves the ledger untouched.
package program

import (
	"time"

	"github.com/stakepool/stsol/log"
	"github.com/stakepool/stsol/program/reverts"
	"github.com/stakepool/stsol/sol"
	"github.com/stakepool/stsol/state"
)

var logger = log.WithContext("pkg", "program")

// Program executes instructions for the pools it owns.
type Program struct {
	id sol.Pubkey
	st *state.State
}

// New returns a program with the given address operating on st.
func New(id sol.Pubkey, st *state.State) *Program {
	return &Program{id: id, st: st}
}

// ID returns the program address. Pools and lists it creates are owned by it.
func (p *Program) ID() sol.Pubkey {
	return p.id
}

// State returns the ledger the program operates on.
func (p *Program) State() *state.State {
	return p.st
}

// exec runs fn as one instruction. Changes made by fn are reverted when it
// fails.
func (p *Program) exec(name string, fn func() error) error {
	start := time.Now()
	checkpoint := p.st.NewCheckpoint()

	err := fn()

	outcome := "ok"
	if err != nil {
		p.st.RevertTo(checkpoint)
		outcome = "failed"
		if code, ok := reverts.CodeOf(err); ok {
			outcome = code.String()
		}
		logger.Debug("instruction failed", "name", name, "err", err)
	} else {
		logger.Debug("instruction executed", "name", name, "elapsed", time.Since(start))
	}
	metricInstructionCount().AddWithLabel(1, map[string]string{"instruction": name, "outcome": outcome})
	metricInstructionDuration().ObserveWithLabels(time.Since(start).Microseconds(), map[string]string{"instruction": name})
	return err
}

// epoch reads the current epoch from the clock sysvar.
func (p *Program) epoch() (sol.Epoch, error) {
	return p.st.Epoch()
}
