// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"github.com/pkg/errors"

	"github.com/stakepool/stsol/program/curation"
	"github.com/stakepool/stsol/program/perf"
	"github.com/stakepool/stsol/program/pool"
	"github.com/stakepool/stsol/program/reverts"
	"github.com/stakepool/stsol/program/validator"
	"github.com/stakepool/stsol/sol"
)

// updatePerf applies fn to the performance record of vote, creating the
// record when the validator has none yet.
func (p *Program) updatePerf(pl *pool.Pool, vote sol.Pubkey, fn func(*perf.ValidatorPerf) error) error {
	validators, err := p.Validators(pl)
	if err != nil {
		return err
	}
	if _, ok := validators.Position(vote); !ok {
		return errors.Wrapf(reverts.ErrKeyNotFound, "validator %v", vote)
	}
	perfs, err := p.ValidatorPerfs(pl)
	if err != nil {
		return err
	}
	record, err := perfs.Find(vote)
	if err != nil {
		return err
	}
	if record == nil {
		if record, err = perfs.Append(vote); err != nil {
			return err
		}
	}
	if err := fn(record); err != nil {
		return err
	}
	if err := perfs.Put(record); err != nil {
		return err
	}
	return storeList(p, pl.ValidatorPerfList, perfs)
}

// UpdateOnchainValidatorPerf records the live commission of a validator. It
// runs at most once per epoch for each validator.
func (p *Program) UpdateOnchainValidatorPerf(poolAddr, vote sol.Pubkey) error {
	return p.exec("update_onchain_validator_perf", func() error {
		pl, err := p.LoadPool(poolAddr)
		if err != nil {
			return err
		}
		epoch, err := p.epoch()
		if err != nil {
			return err
		}
		commission, live, err := p.Commission(vote)
		if err != nil {
			return err
		}
		if !live {
			return errors.Wrapf(reverts.ErrInvalidAccountData, "vote account %v is closed", vote)
		}
		return p.updatePerf(pl, vote, func(record *perf.ValidatorPerf) error {
			return record.UpdateCommission(commission, epoch)
		})
	})
}

// UpdateOffchainValidatorPerf records performance measured off chain. Only
// maintainers may submit it, at most once per epoch for each validator.
func (p *Program) UpdateOffchainValidatorPerf(poolAddr, signer, vote sol.Pubkey, offchain perf.OffchainValidatorPerf) error {
	return p.exec("update_offchain_validator_perf", func() error {
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
		return p.updatePerf(pl, vote, func(record *perf.ValidatorPerf) error {
			return record.UpdateOffchain(offchain, epoch)
		})
	})
}

// DeactivateIfViolates suspends an accepting validator whose live commission
// exceeds the pool maximum. It returns the violation found, if any.
func (p *Program) DeactivateIfViolates(poolAddr, vote sol.Pubkey) (*curation.Violation, error) {
	var violation *curation.Violation
	err := p.exec("deactivate_if_violates", func() error {
		pl, err := p.LoadPool(poolAddr)
		if err != nil {
			return err
		}
		commission, live, err := p.Commission(vote)
		if err != nil {
			return err
		}
		return p.updateValidator(pl, vote, func(v *validator.Validator) error {
			violation = curation.DeactivateIfViolates(v, commission, live, &pl.Criteria)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return violation, nil
}

// ReactivateIfComplies lets a suspended validator receive stake again when its
// live commission and recorded performance meet the pool criteria.
func (p *Program) ReactivateIfComplies(poolAddr, vote sol.Pubkey) (bool, *curation.Violation, error) {
	var (
		activated bool
		violation *curation.Violation
	)
	err := p.exec("reactivate_if_complies", func() error {
		pl, err := p.LoadPool(poolAddr)
		if err != nil {
			return err
		}
		commission, live, err := p.Commission(vote)
		if err != nil {
			return err
		}
		perfs, err := p.ValidatorPerfs(pl)
		if err != nil {
			return err
		}
		record, err := perfs.Find(vote)
		if err != nil {
			return err
		}
		return p.updateValidator(pl, vote, func(v *validator.Validator) error {
			activated, violation = curation.ReactivateIfComplies(v, record, commission, live, &pl.Criteria)
			return nil
		})
	})
	if err != nil {
		return false, nil, err
	}
	return activated, violation, nil
}

// ScanViolations lists the accepting validators of a pool whose live
// commission exceeds the maximum, without changing them.
func (p *Program) ScanViolations(poolAddr sol.Pubkey) ([]curation.Violation, error) {
	pl, err := p.LoadPool(poolAddr)
	if err != nil {
		return nil, err
	}
	validators, err := p.Validators(pl)
	if err != nil {
		return nil, err
	}
	return curation.ScanViolations(validators, p, &pl.Criteria)
}
