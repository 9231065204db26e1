// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"github.com/pkg/errors"

	"github.com/stakepool/stsol/program/maintainer"
	"github.com/stakepool/stsol/program/perf"
	"github.com/stakepool/stsol/program/pool"
	"github.com/stakepool/stsol/program/reverts"
	"github.com/stakepool/stsol/program/stakeaddr"
	"github.com/stakepool/stsol/program/validator"
	"github.com/stakepool/stsol/sol"
	"github.com/stakepool/stsol/state"
	"github.com/stakepool/stsol/token"
)

// Config holds the parameters of a new pool.
type Config struct {
	Manager            sol.Pubkey
	Treasury           sol.Pubkey
	Developer          sol.Pubkey
	RewardDistribution token.RewardDistribution
	Criteria           perf.Criteria
	MaxValidators      uint32
	MaxMaintainers     uint32
}

func (c *Config) validate() error {
	if err := c.Criteria.Validate(); err != nil {
		return err
	}
	if err := c.RewardDistribution.Validate(); err != nil {
		return err
	}
	if c.MaxValidators == 0 || c.MaxValidators > sol.MaxListEntries {
		return errors.Wrapf(reverts.ErrInvalidAmount, "validator list capacity %d", c.MaxValidators)
	}
	if c.MaxMaintainers == 0 || c.MaxMaintainers > sol.MaxListEntries {
		return errors.Wrapf(reverts.ErrInvalidAmount, "maintainer list capacity %d", c.MaxMaintainers)
	}
	return nil
}

// Initialize creates a pool at poolAddr together with its empty lists and
// its stSOL mint.
func (p *Program) Initialize(poolAddr sol.Pubkey, cfg *Config) error {
	return p.exec("initialize", func() error {
		data, err := p.st.GetData(poolAddr)
		if err != nil {
			return err
		}
		if len(data) != 0 {
			return errors.Wrapf(reverts.ErrAlreadyInUse, "pool %v", poolAddr)
		}
		if err := cfg.validate(); err != nil {
			return err
		}
		epoch, err := p.epoch()
		if err != nil {
			return err
		}

		pl := &pool.Pool{
			Version:            pool.Version,
			Manager:            cfg.Manager,
			StSolMint:          stakeaddr.Authority(p.id, poolAddr, sol.SeedStSolMint),
			ExchangeRate:       token.ExchangeRate{ComputedInEpoch: epoch},
			RewardDistribution: cfg.RewardDistribution,
			FeeRecipients:      pool.FeeRecipients{Treasury: cfg.Treasury, Developer: cfg.Developer},
			Criteria:           cfg.Criteria,
			ValidatorList:      stakeaddr.Authority(p.id, poolAddr, sol.SeedValidatorList),
			ValidatorPerfList:  stakeaddr.Authority(p.id, poolAddr, sol.SeedValidatorPerfList),
			MaintainerList:     stakeaddr.Authority(p.id, poolAddr, sol.SeedMaintainerList),
		}

		validators, err := validator.Init(make([]byte, validator.RequiredSize(cfg.MaxValidators)), cfg.MaxValidators)
		if err != nil {
			return err
		}
		perfs, err := perf.Init(make([]byte, perf.RequiredSize(cfg.MaxValidators)), cfg.MaxValidators)
		if err != nil {
			return err
		}
		maintainers, err := maintainer.Init(make([]byte, maintainer.RequiredSize(cfg.MaxMaintainers)), cfg.MaxMaintainers)
		if err != nil {
			return err
		}
		for addr, buf := range map[sol.Pubkey][]byte{
			pl.ValidatorList:     validators.Bytes(),
			pl.ValidatorPerfList: perfs.Bytes(),
			pl.MaintainerList:    maintainers.Bytes(),
		} {
			if err := p.checkUnused(addr); err != nil {
				return err
			}
			p.st.SetAccount(addr, &state.Account{Owner: p.id, Data: buf})
		}
		if err := p.createMint(pl.StSolMint); err != nil {
			return err
		}

		a, err := p.st.GetAccount(poolAddr)
		if err != nil {
			return err
		}
		a.Owner = p.id
		p.st.SetAccount(poolAddr, a)
		if err := p.savePool(poolAddr, pl); err != nil {
			return err
		}
		logger.Info("pool initialized", "pool", poolAddr, "manager", cfg.Manager,
			"validators", cfg.MaxValidators, "maintainers", cfg.MaxMaintainers)
		return nil
	})
}

// managed loads the pool at poolAddr and checks that signer manages it.
func (p *Program) managed(poolAddr, signer sol.Pubkey) (*pool.Pool, error) {
	pl, err := p.LoadPool(poolAddr)
	if err != nil {
		return nil, err
	}
	if err := pl.CheckManager(signer); err != nil {
		return nil, err
	}
	return pl, nil
}

// updateValidator applies fn to the validator with key vote and stores the
// list.
func (p *Program) updateValidator(pl *pool.Pool, vote sol.Pubkey, fn func(*validator.Validator) error) error {
	validators, err := p.Validators(pl)
	if err != nil {
		return err
	}
	if err := validators.Update(vote, fn); err != nil {
		return err
	}
	return storeList(p, pl.ValidatorList, validators)
}

// AddValidator appends the validator voting with vote. The validator starts
// accepting stakes.
func (p *Program) AddValidator(poolAddr, manager, vote sol.Pubkey) error {
	return p.exec("add_validator", func() error {
		pl, err := p.managed(poolAddr, manager)
		if err != nil {
			return err
		}
		owner, err := p.st.GetOwner(vote)
		if err != nil {
			return err
		}
		if owner != sol.VoteProgramID {
			return errors.Wrapf(reverts.ErrInvalidOwner, "vote account %v is owned by %v", vote, owner)
		}
		validators, err := p.Validators(pl)
		if err != nil {
			return err
		}
		if _, err := validators.Append(vote); err != nil {
			return err
		}
		logger.Info("validator added", "pool", poolAddr, "vote", vote)
		return storeList(p, pl.ValidatorList, validators)
	})
}

// DeactivateValidator stops new stake from reaching a validator.
func (p *Program) DeactivateValidator(poolAddr, manager, vote sol.Pubkey) error {
	return p.exec("deactivate_validator", func() error {
		pl, err := p.managed(poolAddr, manager)
		if err != nil {
			return err
		}
		return p.updateValidator(pl, vote, func(v *validator.Validator) error {
			v.Deactivate()
			return nil
		})
	})
}

// ActivateValidator lets a suspended validator receive stake again.
func (p *Program) ActivateValidator(poolAddr, manager, vote sol.Pubkey) error {
	return p.exec("activate_validator", func() error {
		pl, err := p.managed(poolAddr, manager)
		if err != nil {
			return err
		}
		return p.updateValidator(pl, vote, func(v *validator.Validator) error {
			v.Activate()
			return nil
		})
	})
}

// EnqueueValidatorForRemoval marks a validator for removal. It keeps its
// stake until unstaked.
func (p *Program) EnqueueValidatorForRemoval(poolAddr, manager, vote sol.Pubkey) error {
	return p.exec("enqueue_validator_for_removal", func() error {
		pl, err := p.managed(poolAddr, manager)
		if err != nil {
			return err
		}
		return p.updateValidator(pl, vote, func(v *validator.Validator) error {
			v.EnqueueForRemoval()
			return nil
		})
	})
}

// RemoveValidator drops a validator pending removal that holds no stake,
// along with its performance record.
func (p *Program) RemoveValidator(poolAddr, vote sol.Pubkey) error {
	return p.exec("remove_validator", func() error {
		pl, err := p.LoadPool(poolAddr)
		if err != nil {
			return err
		}
		validators, err := p.Validators(pl)
		if err != nil {
			return err
		}
		v, err := validators.Get(vote)
		if err != nil {
			return err
		}
		if err := v.CheckCanBeRemoved(); err != nil {
			return err
		}
		if err := validators.Remove(vote); err != nil {
			return err
		}
		if err := storeList(p, pl.ValidatorList, validators); err != nil {
			return err
		}
		logger.Info("validator removed", "pool", poolAddr, "vote", vote)

		perfs, err := p.ValidatorPerfs(pl)
		if err != nil {
			return err
		}
		if err := perfs.Remove(vote); err != nil {
			if errors.Is(err, reverts.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		return storeList(p, pl.ValidatorPerfList, perfs)
	})
}

// AddMaintainer authorizes key to run maintenance instructions.
func (p *Program) AddMaintainer(poolAddr, manager, key sol.Pubkey) error {
	return p.exec("add_maintainer", func() error {
		pl, err := p.managed(poolAddr, manager)
		if err != nil {
			return err
		}
		maintainers, err := p.Maintainers(pl)
		if err != nil {
			return err
		}
		if _, err := maintainers.Append(key); err != nil {
			return err
		}
		return storeList(p, pl.MaintainerList, maintainers)
	})
}

// RemoveMaintainer revokes key.
func (p *Program) RemoveMaintainer(poolAddr, manager, key sol.Pubkey) error {
	return p.exec("remove_maintainer", func() error {
		pl, err := p.managed(poolAddr, manager)
		if err != nil {
			return err
		}
		maintainers, err := p.Maintainers(pl)
		if err != nil {
			return err
		}
		if err := maintainers.Remove(key); err != nil {
			return err
		}
		return storeList(p, pl.MaintainerList, maintainers)
	})
}

// ChangeCriteria replaces the curation thresholds of the pool.
func (p *Program) ChangeCriteria(poolAddr, manager sol.Pubkey, criteria perf.Criteria) error {
	return p.exec("change_criteria", func() error {
		pl, err := p.managed(poolAddr, manager)
		if err != nil {
			return err
		}
		if err := criteria.Validate(); err != nil {
			return err
		}
		pl.Criteria = criteria
		return p.savePool(poolAddr, pl)
	})
}

// ChangeRewardDistribution replaces the fee shares of the pool.
func (p *Program) ChangeRewardDistribution(poolAddr, manager sol.Pubkey, d token.RewardDistribution) error {
	return p.exec("change_reward_distribution", func() error {
		pl, err := p.managed(poolAddr, manager)
		if err != nil {
			return err
		}
		if err := d.Validate(); err != nil {
			return err
		}
		pl.RewardDistribution = d
		return p.savePool(poolAddr, pl)
	})
}
