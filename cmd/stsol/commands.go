// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/stakepool/stsol/api/pools"
	"github.com/stakepool/stsol/program"
	"github.com/stakepool/stsol/program/curation"
	"github.com/stakepool/stsol/program/perf"
	"github.com/stakepool/stsol/program/pool"
	"github.com/stakepool/stsol/program/stakeaddr"
	"github.com/stakepool/stsol/program/validator"
	"github.com/stakepool/stsol/sol"
	"github.com/stakepool/stsol/token"
)

func findValidator(p *program.Program, poolAddr, vote sol.Pubkey) (*validator.Validator, error) {
	pl, err := p.LoadPool(poolAddr)
	if err != nil {
		return nil, err
	}
	validators, err := p.Validators(pl)
	if err != nil {
		return nil, err
	}
	return validators.Get(vote)
}

// managerVoteAction builds the action of a command signed by the manager
// that targets a single validator. The updated entry is printed.
func managerVoteAction(fn func(p *program.Program, poolAddr, manager, vote sol.Pubkey) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		poolAddr, err := requirePubkey(ctx, poolFlag)
		if err != nil {
			return err
		}
		manager, err := requirePubkey(ctx, managerFlag)
		if err != nil {
			return err
		}
		vote, err := requirePubkey(ctx, voteFlag)
		if err != nil {
			return err
		}
		return withProgram(ctx, func(p *program.Program) (any, error) {
			if err := fn(p, poolAddr, manager, vote); err != nil {
				return nil, err
			}
			return findValidator(p, poolAddr, vote)
		})
	}
}

func createPoolAction(ctx *cli.Context) error {
	poolAddr, err := requirePubkey(ctx, poolFlag)
	if err != nil {
		return err
	}
	path := ctx.String(configFlag.Name)
	if path == "" {
		return errors.Errorf("missing --%s", configFlag.Name)
	}
	cfg, err := loadPoolConfig(path)
	if err != nil {
		return err
	}
	return withProgram(ctx, func(p *program.Program) (any, error) {
		if err := p.Initialize(poolAddr, cfg); err != nil {
			return nil, err
		}
		return describePool(p, poolAddr)
	})
}

func removeValidatorAction(ctx *cli.Context) error {
	poolAddr, err := requirePubkey(ctx, poolFlag)
	if err != nil {
		return err
	}
	vote, err := requirePubkey(ctx, voteFlag)
	if err != nil {
		return err
	}
	return withProgram(ctx, func(p *program.Program) (any, error) {
		if err := p.RemoveValidator(poolAddr, vote); err != nil {
			return nil, err
		}
		return map[string]sol.Pubkey{"removed": vote}, nil
	})
}

func maintainerAction(add bool) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		poolAddr, err := requirePubkey(ctx, poolFlag)
		if err != nil {
			return err
		}
		manager, err := requirePubkey(ctx, managerFlag)
		if err != nil {
			return err
		}
		key, err := requirePubkey(ctx, keyFlag)
		if err != nil {
			return err
		}
		return withProgram(ctx, func(p *program.Program) (any, error) {
			if add {
				err = p.AddMaintainer(poolAddr, manager, key)
			} else {
				err = p.RemoveMaintainer(poolAddr, manager, key)
			}
			if err != nil {
				return nil, err
			}
			return listMaintainers(p, poolAddr)
		})
	}
}

func changeCriteriaAction(ctx *cli.Context) error {
	poolAddr, err := requirePubkey(ctx, poolFlag)
	if err != nil {
		return err
	}
	manager, err := requirePubkey(ctx, managerFlag)
	if err != nil {
		return err
	}
	criteria := perf.Criteria{MaxCommission: uint8(min(ctx.Uint(maxCommissionFlag.Name), 255))}
	if criteria.MinBlockProductionRate, err = requirePercentage(ctx, minBlockProductionFlag); err != nil {
		return err
	}
	if criteria.MinVoteSuccessRate, err = requirePercentage(ctx, minVoteSuccessFlag); err != nil {
		return err
	}
	if criteria.MinUptime, err = requirePercentage(ctx, minUptimeFlag); err != nil {
		return err
	}
	return withProgram(ctx, func(p *program.Program) (any, error) {
		if err := p.ChangeCriteria(poolAddr, manager, criteria); err != nil {
			return nil, err
		}
		return &criteria, nil
	})
}

// updatePerfAction records on-chain performance, and off-chain performance
// as well when a maintainer and the three rates are given.
func updatePerfAction(ctx *cli.Context) error {
	poolAddr, err := requirePubkey(ctx, poolFlag)
	if err != nil {
		return err
	}
	vote, err := requirePubkey(ctx, voteFlag)
	if err != nil {
		return err
	}

	var (
		offchain   *perf.OffchainValidatorPerf
		maintainer sol.Pubkey
	)
	if ctx.String(maintainerFlag.Name) != "" {
		if maintainer, err = requirePubkey(ctx, maintainerFlag); err != nil {
			return err
		}
		offchain = &perf.OffchainValidatorPerf{}
		if offchain.BlockProductionRate, err = requirePercentage(ctx, blockProductionFlag); err != nil {
			return err
		}
		if offchain.VoteSuccessRate, err = requirePercentage(ctx, voteSuccessFlag); err != nil {
			return err
		}
		if offchain.Uptime, err = requirePercentage(ctx, uptimeFlag); err != nil {
			return err
		}
	}

	return withProgram(ctx, func(p *program.Program) (any, error) {
		if offchain != nil {
			if err := p.UpdateOffchainValidatorPerf(poolAddr, maintainer, vote, *offchain); err != nil {
				return nil, err
			}
		} else if err := p.UpdateOnchainValidatorPerf(poolAddr, vote); err != nil {
			return nil, err
		}
		pl, err := p.LoadPool(poolAddr)
		if err != nil {
			return nil, err
		}
		perfs, err := p.ValidatorPerfs(pl)
		if err != nil {
			return nil, err
		}
		return perfs.Get(vote)
	})
}

type curationResult struct {
	Vote      sol.Pubkey          `json:"vote"`
	Changed   bool                `json:"changed"`
	Violation *curation.Violation `json:"violation,omitempty"`
}

func deactivateIfViolatesAction(ctx *cli.Context) error {
	poolAddr, err := requirePubkey(ctx, poolFlag)
	if err != nil {
		return err
	}
	vote, err := requirePubkey(ctx, voteFlag)
	if err != nil {
		return err
	}
	return withProgram(ctx, func(p *program.Program) (any, error) {
		violation, err := p.DeactivateIfViolates(poolAddr, vote)
		if err != nil {
			return nil, err
		}
		return &curationResult{Vote: vote, Changed: violation != nil, Violation: violation}, nil
	})
}

func reactivateIfCompliesAction(ctx *cli.Context) error {
	poolAddr, err := requirePubkey(ctx, poolFlag)
	if err != nil {
		return err
	}
	vote, err := requirePubkey(ctx, voteFlag)
	if err != nil {
		return err
	}
	return withProgram(ctx, func(p *program.Program) (any, error) {
		reactivated, violation, err := p.ReactivateIfComplies(poolAddr, vote)
		if err != nil {
			return nil, err
		}
		return &curationResult{Vote: vote, Changed: reactivated, Violation: violation}, nil
	})
}

func depositAction(ctx *cli.Context) error {
	poolAddr, err := requirePubkey(ctx, poolFlag)
	if err != nil {
		return err
	}
	user, err := requirePubkey(ctx, userFlag)
	if err != nil {
		return err
	}
	amount, err := requireAmount(ctx)
	if err != nil {
		return err
	}
	return withProgram(ctx, func(p *program.Program) (any, error) {
		minted, err := p.Deposit(poolAddr, user, amount)
		if err != nil {
			return nil, err
		}
		return &pools.Balance{Owner: user, Account: p.TokenAccount(poolAddr, user), StSol: minted, Sol: amount}, nil
	})
}

type stakeResult struct {
	Vote    sol.Pubkey     `json:"vote"`
	Account sol.Pubkey     `json:"account"`
	Amount  token.Lamports `json:"amount"`
}

// stakeAction builds stake-deposit and unstake, both signed by a
// maintainer and moving amount between the reserve and a validator.
func stakeAction(fn func(p *program.Program, poolAddr, signer, vote sol.Pubkey, amount token.Lamports) (sol.Pubkey, error)) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		poolAddr, err := requirePubkey(ctx, poolFlag)
		if err != nil {
			return err
		}
		signer, err := requirePubkey(ctx, maintainerFlag)
		if err != nil {
			return err
		}
		vote, err := requirePubkey(ctx, voteFlag)
		if err != nil {
			return err
		}
		amount, err := requireAmount(ctx)
		if err != nil {
			return err
		}
		return withProgram(ctx, func(p *program.Program) (any, error) {
			account, err := fn(p, poolAddr, signer, vote, amount)
			if err != nil {
				return nil, err
			}
			return &stakeResult{Vote: vote, Account: account, Amount: amount}, nil
		})
	}
}

func updateBalanceAction(ctx *cli.Context) error {
	poolAddr, err := requirePubkey(ctx, poolFlag)
	if err != nil {
		return err
	}
	vote, err := requirePubkey(ctx, voteFlag)
	if err != nil {
		return err
	}
	return withProgram(ctx, func(p *program.Program) (any, error) {
		return p.UpdateStakeAccountBalance(poolAddr, vote)
	})
}

func updateExchangeRateAction(ctx *cli.Context) error {
	poolAddr, err := requirePubkey(ctx, poolFlag)
	if err != nil {
		return err
	}
	return withProgram(ctx, func(p *program.Program) (any, error) {
		return p.UpdateExchangeRate(poolAddr)
	})
}

func setEpochAction(ctx *cli.Context) error {
	if !ctx.IsSet(epochFlag.Name) {
		return errors.Errorf("missing --%s", epochFlag.Name)
	}
	epoch := ctx.Uint64(epochFlag.Name)
	return withProgram(ctx, func(p *program.Program) (any, error) {
		current, err := p.State().Epoch()
		if err != nil {
			return nil, err
		}
		if epoch < current {
			return nil, errors.Errorf("epoch %d is behind the current epoch %d", epoch, current)
		}
		p.State().SetEpoch(epoch)
		return map[string]sol.Epoch{"epoch": epoch}, nil
	})
}

func setVoteAccountAction(ctx *cli.Context) error {
	vote, err := requirePubkey(ctx, voteFlag)
	if err != nil {
		return err
	}
	commission := ctx.Uint(commissionFlag.Name)
	if commission > 100 {
		return errors.Errorf("commission %d exceeds 100", commission)
	}
	return withProgram(ctx, func(p *program.Program) (any, error) {
		if err := program.SetVoteAccount(p.State(), vote, uint8(commission)); err != nil {
			return nil, err
		}
		return map[string]any{"vote": vote, "commission": commission}, nil
	})
}

// fundAction credits an account with lamports out of thin air, for local
// ledgers only.
func fundAction(ctx *cli.Context) error {
	user, err := requirePubkey(ctx, userFlag)
	if err != nil {
		return err
	}
	amount, err := requireAmount(ctx)
	if err != nil {
		return err
	}
	return withProgram(ctx, func(p *program.Program) (any, error) {
		balance, err := p.State().GetLamports(user)
		if err != nil {
			return nil, err
		}
		total, err := token.Lamports(balance).Add(amount)
		if err != nil {
			return nil, err
		}
		if err := p.State().SetLamports(user, uint64(total)); err != nil {
			return nil, err
		}
		return map[string]any{"account": user, "lamports": total}, nil
	})
}

type poolView struct {
	*pools.Pool
	Validators  []*validator.Validator `json:"validators"`
	Maintainers []sol.Pubkey           `json:"maintainers"`
}

func describePool(p *program.Program, poolAddr sol.Pubkey) (*poolView, error) {
	pl, err := p.LoadPool(poolAddr)
	if err != nil {
		return nil, err
	}
	supply, err := p.StSolSupply(pl)
	if err != nil {
		return nil, err
	}
	reserve, err := p.State().GetLamports(p.Reserve(poolAddr))
	if err != nil {
		return nil, err
	}
	validators, err := p.Validators(pl)
	if err != nil {
		return nil, err
	}
	entries, err := validators.Entries()
	if err != nil {
		return nil, err
	}
	maintainers, err := listMaintainers(p, poolAddr)
	if err != nil {
		return nil, err
	}
	return &poolView{
		Pool: &pools.Pool{
			Pool:        pl,
			Addresses:   pool.DeriveAddresses(p.ID(), poolAddr),
			Reserve:     token.Lamports(reserve),
			StSolSupply: supply,
		},
		Validators:  entries,
		Maintainers: maintainers,
	}, nil
}

func listMaintainers(p *program.Program, poolAddr sol.Pubkey) ([]sol.Pubkey, error) {
	pl, err := p.LoadPool(poolAddr)
	if err != nil {
		return nil, err
	}
	maintainers, err := p.Maintainers(pl)
	if err != nil {
		return nil, err
	}
	keys := make([]sol.Pubkey, 0, maintainers.Len())
	for m, err := range maintainers.All() {
		if err != nil {
			return nil, err
		}
		keys = append(keys, m.PubKey)
	}
	return keys, nil
}

func showAction(ctx *cli.Context) error {
	poolAddr, err := requirePubkey(ctx, poolFlag)
	if err != nil {
		return err
	}
	id, err := programID(ctx)
	if err != nil {
		return err
	}
	l, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer l.Close()

	view, err := describePool(program.New(id, l.st), poolAddr)
	if err != nil {
		return err
	}
	return newPrinter(ctx).print(view)
}

func deriveAction(ctx *cli.Context) error {
	id, err := programID(ctx)
	if err != nil {
		return err
	}
	poolAddr, err := requirePubkey(ctx, poolFlag)
	if err != nil {
		return err
	}
	vote, err := requirePubkey(ctx, voteFlag)
	if err != nil {
		return err
	}
	purpose, err := stakeaddr.ParsePurpose(ctx.String(purposeFlag.Name))
	if err != nil {
		return err
	}
	var epoch *sol.Epoch
	if ctx.IsSet(epochFlag.Name) {
		e := ctx.Uint64(epochFlag.Name)
		epoch = &e
	}
	seed := ctx.Uint64(seedFlag.Name)
	addr, err := stakeaddr.Derive(id, poolAddr, vote, purpose, seed, epoch)
	if err != nil {
		return err
	}
	return newPrinter(ctx).print(map[string]any{
		"pool":    poolAddr,
		"vote":    vote,
		"purpose": purpose.String(),
		"seed":    seed,
		"epoch":   epoch,
		"address": addr,
	})
}
