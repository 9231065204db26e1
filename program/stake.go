// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"github.com/pkg/errors"

	"github.com/stakepool/stsol/program/pool"
	"github.com/stakepool/stsol/program/reverts"
	"github.com/stakepool/stsol/program/stakeaddr"
	"github.com/stakepool/stsol/program/validator"
	"github.com/stakepool/stsol/sol"
	"github.com/stakepool/stsol/token"
)

// Reserve returns the address of the account holding undelegated SOL.
func (p *Program) Reserve(poolAddr sol.Pubkey) sol.Pubkey {
	return pool.DeriveAddresses(p.id, poolAddr).Reserve
}

// Deposit moves amount lamports from user to the reserve and mints stSOL to
// user at the current exchange rate.
func (p *Program) Deposit(poolAddr, user sol.Pubkey, amount token.Lamports) (token.StLamports, error) {
	var minted token.StLamports
	err := p.exec("deposit", func() error {
		if amount == 0 {
			return errors.Wrap(reverts.ErrInvalidAmount, "deposit of zero lamports")
		}
		pl, err := p.LoadPool(poolAddr)
		if err != nil {
			return err
		}
		if err := p.transfer(user, p.Reserve(poolAddr), amount); err != nil {
			return err
		}
		if minted, err = pl.ExchangeRate.ExchangeSol(amount); err != nil {
			return err
		}
		if err := p.mint(poolAddr, pl, user, minted); err != nil {
			return err
		}
		if pl.Metrics.DepositAmount, err = pl.Metrics.DepositAmount.Add(amount); err != nil {
			return err
		}
		metricMintedStLamports().AddWithLabel(int64(minted), map[string]string{"recipient": "depositor"})
		return p.savePool(poolAddr, pl)
	})
	if err != nil {
		return 0, err
	}
	return minted, nil
}

// StakeDeposit delegates amount lamports from the reserve to a validator and
// returns the stake account credited.
//
// A new stake account is created at the end of the validator's stake seeds,
// unless the newest one was activated in the current epoch. Then the lamports
// go through a temporary account merged into the newest one, so at most one
// stake account is created per validator and epoch.
func (p *Program) StakeDeposit(poolAddr, signer, vote sol.Pubkey, amount token.Lamports) (sol.Pubkey, error) {
	var credited sol.Pubkey
	err := p.exec("stake_deposit", func() error {
		pl, err := p.LoadPool(poolAddr)
		if err != nil {
			return err
		}
		if err := p.checkMaintainer(pl, signer); err != nil {
			return err
		}
		if uint64(amount) < sol.MinimumStakeAccountBalance {
			return errors.Wrapf(reverts.ErrInvalidAmount, "stake of %v is below the minimum of %v", amount, token.Lamports(sol.MinimumStakeAccountBalance))
		}
		epoch, err := p.epoch()
		if err != nil {
			return err
		}
		return p.updateValidator(pl, vote, func(v *validator.Validator) error {
			if !v.IsAcceptingStakes() {
				return errors.Wrapf(reverts.ErrStakeToInactiveValidator, "validator %v is %v", vote, v.Status)
			}
			merged, err := p.mergeableStakeAccount(poolAddr, v, epoch)
			if err != nil {
				return err
			}
			reserve := p.Reserve(poolAddr)
			if merged != nil {
				temp := stakeaddr.TemporaryStakeAccount(p.id, poolAddr, vote, v.StakeSeeds.End, epoch)
				if err := p.createStakeAccount(temp, 0, validator.NewStakeAccount(vote, epoch)); err != nil {
					return err
				}
				if err := p.transfer(reserve, temp, amount); err != nil {
					return err
				}
				if err := p.transfer(temp, *merged, amount); err != nil {
					return err
				}
				p.st.Delete(temp)
				credited = *merged
				logger.Debug("stake merged", "vote", vote, "into", credited, "via", temp, "amount", amount)
			} else {
				credited = stakeaddr.StakeAccount(p.id, poolAddr, vote, v.StakeSeeds.End)
				if err := p.createStakeAccount(credited, 0, validator.NewStakeAccount(vote, epoch)); err != nil {
					return err
				}
				if err := p.transfer(reserve, credited, amount); err != nil {
					return err
				}
				v.StakeSeeds.End++
				logger.Debug("stake account created", "vote", vote, "account", credited, "amount", amount)
			}
			if v.StakeAccountsBalance, err = v.StakeAccountsBalance.Add(amount); err != nil {
				return err
			}
			v.RefreshEffectiveStakeBalance()
			return nil
		})
	})
	if err != nil {
		return sol.Pubkey{}, err
	}
	return credited, nil
}

// mergeableStakeAccount returns the newest stake account of v when it was
// activated in epoch.
func (p *Program) mergeableStakeAccount(poolAddr sol.Pubkey, v *validator.Validator, epoch sol.Epoch) (*sol.Pubkey, error) {
	if !v.HasStakeAccounts() {
		return nil, nil
	}
	last := stakeaddr.StakeAccount(p.id, poolAddr, v.VoteAccount, v.StakeSeeds.End-1)
	_, sa, err := p.readStakeAccount(last)
	if err != nil {
		return nil, err
	}
	if sa.ActivationEpoch != epoch || sa.IsDeactivated() {
		return nil, nil
	}
	return &last, nil
}

// Unstake splits amount lamports off the oldest stake account of a validator
// into a new unstake account, deactivated in the current epoch. It returns
// the unstake account.
func (p *Program) Unstake(poolAddr, signer, vote sol.Pubkey, amount token.Lamports) (sol.Pubkey, error) {
	var target sol.Pubkey
	err := p.exec("unstake", func() error {
		pl, err := p.LoadPool(poolAddr)
		if err != nil {
			return err
		}
		if err := p.checkMaintainer(pl, signer); err != nil {
			return err
		}
		epoch, err := p.epoch()
		if err != nil {
			return err
		}
		return p.updateValidator(pl, vote, func(v *validator.Validator) error {
			if !v.HasStakeAccounts() {
				return errors.Wrapf(reverts.ErrValidatorHasNoStakeAccounts, "validator %v", vote)
			}
			source := stakeaddr.StakeAccount(p.id, poolAddr, vote, v.StakeSeeds.Begin)
			balance, sa, err := p.readStakeAccount(source)
			if err != nil {
				return err
			}
			if uint64(amount) < sol.MinimumStakeAccountBalance || amount > balance {
				return errors.Wrapf(reverts.ErrInvalidAmount, "cannot unstake %v from an account holding %v", amount, balance)
			}
			if amount > v.EffectiveStakeBalance {
				return errors.Wrapf(reverts.ErrInvalidAmount, "cannot unstake %v, validator %v tracks %v of effective stake, update its balance first",
					amount, vote, v.EffectiveStakeBalance)
			}
			remainder := balance - amount
			if remainder != 0 && uint64(remainder) < sol.MinimumStakeAccountBalance {
				return errors.Wrapf(reverts.ErrInvalidAmount, "unstake would leave %v in %v", remainder, source)
			}

			target = stakeaddr.UnstakeAccount(p.id, poolAddr, vote, v.UnstakeSeeds.End)
			deactivated := *sa
			deactivated.DeactivationEpoch = epoch
			if err := p.createStakeAccount(target, 0, &deactivated); err != nil {
				return err
			}
			if err := p.transfer(source, target, amount); err != nil {
				return err
			}
			if remainder == 0 {
				p.st.Delete(source)
				v.StakeSeeds.Begin++
			}
			v.UnstakeSeeds.End++
			if v.UnstakeAccountsBalance, err = v.UnstakeAccountsBalance.Add(amount); err != nil {
				return err
			}
			v.RefreshEffectiveStakeBalance()
			logger.Debug("unstaked", "vote", vote, "from", source, "to", target, "amount", amount)
			return nil
		})
	})
	if err != nil {
		return sol.Pubkey{}, err
	}
	return target, nil
}

// sumStakeAccounts adds the balances of the accounts derived from seeds.
func (p *Program) sumStakeAccounts(seeds validator.SeedRange, derive func(seed uint64) sol.Pubkey) (token.Lamports, error) {
	var sum token.Lamports
	for seed := seeds.Begin; seed < seeds.End; seed++ {
		balance, _, err := p.readStakeAccount(derive(seed))
		if err != nil {
			return 0, err
		}
		if sum, err = sum.Add(balance); err != nil {
			return 0, err
		}
	}
	return sum, nil
}

// BalanceUpdate summarizes an UpdateStakeAccountBalance run.
type BalanceUpdate struct {
	Rewards   token.Lamports `json:"rewards"`
	Withdrawn token.Lamports `json:"withdrawn"`
	Fees      token.Fees     `json:"fees"`
}

// UpdateStakeAccountBalance reconciles the tracked balances of a validator
// with its stake and unstake accounts. Growth is paid out as rewards: fees are
// minted as stSOL to the fee recipients, the rest appreciates stSOL. Unstake
// accounts that have cooled down are withdrawn to the reserve.
func (p *Program) UpdateStakeAccountBalance(poolAddr, vote sol.Pubkey) (*BalanceUpdate, error) {
	update := &BalanceUpdate{}
	err := p.exec("update_stake_account_balance", func() error {
		pl, err := p.LoadPool(poolAddr)
		if err != nil {
			return err
		}
		epoch, err := p.epoch()
		if err != nil {
			return err
		}
		err = p.updateValidator(pl, vote, func(v *validator.Validator) error {
			stake, err := p.sumStakeAccounts(v.StakeSeeds, func(seed uint64) sol.Pubkey {
				return stakeaddr.StakeAccount(p.id, poolAddr, vote, seed)
			})
			if err != nil {
				return err
			}
			unstake, err := p.sumStakeAccounts(v.UnstakeSeeds, func(seed uint64) sol.Pubkey {
				return stakeaddr.UnstakeAccount(p.id, poolAddr, vote, seed)
			})
			if err != nil {
				return err
			}
			total, err := stake.Add(unstake)
			if err != nil {
				return err
			}
			if err := validator.ObserveBalance(unstake, v.UnstakeAccountsBalance, "unstake accounts"); err != nil {
				return err
			}
			if err := validator.ObserveBalance(total, v.StakeAccountsBalance, "stake accounts"); err != nil {
				return err
			}
			update.Rewards = total - v.StakeAccountsBalance
			v.StakeAccountsBalance = total
			v.UnstakeAccountsBalance = unstake

			if update.Withdrawn, err = p.withdrawInactive(poolAddr, v, epoch); err != nil {
				return err
			}
			v.RefreshEffectiveStakeBalance()
			return nil
		})
		if err != nil {
			return err
		}
		if update.Rewards == 0 {
			return nil
		}
		if update.Fees, err = p.distributeFees(poolAddr, pl, update.Rewards); err != nil {
			return err
		}
		return p.savePool(poolAddr, pl)
	})
	if err != nil {
		return nil, err
	}
	return update, nil
}

// withdrawInactive moves the cooled down unstake accounts of v to the
// reserve, oldest first, and stops at the first one still cooling down.
func (p *Program) withdrawInactive(poolAddr sol.Pubkey, v *validator.Validator, epoch sol.Epoch) (token.Lamports, error) {
	var withdrawn token.Lamports
	reserve := p.Reserve(poolAddr)
	for v.HasUnstakeAccounts() {
		addr := stakeaddr.UnstakeAccount(p.id, poolAddr, v.VoteAccount, v.UnstakeSeeds.Begin)
		balance, sa, err := p.readStakeAccount(addr)
		if err != nil {
			return 0, err
		}
		if !sa.IsInactive(epoch) {
			break
		}
		if err := p.transfer(addr, reserve, balance); err != nil {
			return 0, err
		}
		p.st.Delete(addr)
		v.UnstakeSeeds.Begin++
		if v.UnstakeAccountsBalance, err = v.UnstakeAccountsBalance.Sub(balance); err != nil {
			return 0, err
		}
		if v.StakeAccountsBalance, err = v.StakeAccountsBalance.Sub(balance); err != nil {
			return 0, err
		}
		if withdrawn, err = withdrawn.Add(balance); err != nil {
			return 0, err
		}
	}
	return withdrawn, nil
}

// distributeFees splits rewards and mints the treasury and developer parts
// as stSOL at the current exchange rate.
func (p *Program) distributeFees(poolAddr sol.Pubkey, pl *pool.Pool, rewards token.Lamports) (token.Fees, error) {
	fees, err := pl.RewardDistribution.Split(rewards)
	if err != nil {
		return token.Fees{}, err
	}
	treasury, err := pl.ExchangeRate.ExchangeSol(fees.Treasury)
	if err != nil {
		return token.Fees{}, err
	}
	developer, err := pl.ExchangeRate.ExchangeSol(fees.Developer)
	if err != nil {
		return token.Fees{}, err
	}
	if err := p.mint(poolAddr, pl, pl.FeeRecipients.Treasury, treasury); err != nil {
		return token.Fees{}, err
	}
	if err := p.mint(poolAddr, pl, pl.FeeRecipients.Developer, developer); err != nil {
		return token.Fees{}, err
	}
	if err := pl.Metrics.ObserveFees(fees, treasury, developer); err != nil {
		return token.Fees{}, err
	}
	metricMintedStLamports().AddWithLabel(int64(treasury), map[string]string{"recipient": "treasury"})
	metricMintedStLamports().AddWithLabel(int64(developer), map[string]string{"recipient": "developer"})
	logger.Info("rewards distributed", "pool", poolAddr, "rewards", rewards,
		"treasury", fees.Treasury, "developer", fees.Developer, "appreciation", fees.Appreciation)
	return fees, nil
}

// UpdateExchangeRate recomputes the stSOL exchange rate once per epoch.
func (p *Program) UpdateExchangeRate(poolAddr sol.Pubkey) (*token.ExchangeRate, error) {
	var rate token.ExchangeRate
	err := p.exec("update_exchange_rate", func() error {
		pl, err := p.LoadPool(poolAddr)
		if err != nil {
			return err
		}
		epoch, err := p.epoch()
		if err != nil {
			return err
		}
		if pl.ExchangeRate.ComputedInEpoch == epoch {
			return errors.Wrapf(reverts.ErrExchangeRateAlreadyUpToDate, "computed in epoch %d", epoch)
		}
		reserve, err := p.st.GetLamports(p.Reserve(poolAddr))
		if err != nil {
			return err
		}
		balance := token.Lamports(reserve)
		validators, err := p.Validators(pl)
		if err != nil {
			return err
		}
		for v, err := range validators.All() {
			if err != nil {
				return err
			}
			if balance, err = balance.Add(v.StakeAccountsBalance); err != nil {
				return err
			}
		}
		supply, err := p.StSolSupply(pl)
		if err != nil {
			return err
		}
		rate = token.ExchangeRate{ComputedInEpoch: epoch, StSolSupply: supply, SolBalance: balance}
		pl.ExchangeRate = rate
		logger.Info("exchange rate updated", "pool", poolAddr, "epoch", epoch, "supply", supply, "balance", balance)
		metricPoolValue().SetWithLabel(int64(balance), map[string]string{"pool": poolAddr.AbbrevString(), "unit": "lamports"})
		metricPoolValue().SetWithLabel(int64(supply), map[string]string{"pool": poolAddr.AbbrevString(), "unit": "st_lamports"})
		return p.savePool(poolAddr, pl)
	})
	if err != nil {
		return nil, err
	}
	return &rate, nil
}
