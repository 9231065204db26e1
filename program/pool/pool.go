// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package pool defines the header record of a staking pool.
package pool

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/stakepool/stsol/program/accountlist"
	"github.com/stakepool/stsol/program/perf"
	"github.com/stakepool/stsol/program/reverts"
	"github.com/stakepool/stsol/program/stakeaddr"
	"github.com/stakepool/stsol/sol"
	"github.com/stakepool/stsol/token"
)

// Version of the pool record.
const Version uint8 = 1

// FeeRecipients own the stSOL accounts receiving fees.
type FeeRecipients struct {
	Treasury  sol.Pubkey `json:"treasury"`
	Developer sol.Pubkey `json:"developer"`
}

// Metrics are cumulative totals kept for reporting.
type Metrics struct {
	TreasurySolTotal          token.Lamports   `json:"treasurySolTotal"`
	TreasuryStSolTotal        token.StLamports `json:"treasuryStSolTotal"`
	DeveloperSolTotal         token.Lamports   `json:"developerSolTotal"`
	DeveloperStSolTotal       token.StLamports `json:"developerStSolTotal"`
	StSolAppreciationSolTotal token.Lamports   `json:"stSolAppreciationSolTotal"`
	DepositAmount             token.Lamports   `json:"depositAmount"`
}

// ObserveFees adds a fee payout to the totals.
func (m *Metrics) ObserveFees(fees token.Fees, treasury, developer token.StLamports) error {
	var err error
	if m.TreasurySolTotal, err = m.TreasurySolTotal.Add(fees.Treasury); err != nil {
		return err
	}
	if m.TreasuryStSolTotal, err = m.TreasuryStSolTotal.Add(treasury); err != nil {
		return err
	}
	if m.DeveloperSolTotal, err = m.DeveloperSolTotal.Add(fees.Developer); err != nil {
		return err
	}
	if m.DeveloperStSolTotal, err = m.DeveloperStSolTotal.Add(developer); err != nil {
		return err
	}
	m.StSolAppreciationSolTotal, err = m.StSolAppreciationSolTotal.Add(fees.Appreciation)
	return err
}

// Pool is the header record of a staking pool.
type Pool struct {
	Version            uint8                    `json:"version"`
	Manager            sol.Pubkey               `json:"manager"`
	StSolMint          sol.Pubkey               `json:"stSolMint"`
	ExchangeRate       token.ExchangeRate       `json:"exchangeRate"`
	RewardDistribution token.RewardDistribution `json:"rewardDistribution"`
	FeeRecipients      FeeRecipients            `json:"feeRecipients"`
	Criteria           perf.Criteria            `json:"criteria"`
	ValidatorList      sol.Pubkey               `json:"validatorList"`
	ValidatorPerfList  sol.Pubkey               `json:"validatorPerfList"`
	MaintainerList     sol.Pubkey               `json:"maintainerList"`
	Metrics            Metrics                  `json:"metrics"`
}

// Encode returns the account data of the record.
func (p *Pool) Encode() ([]byte, error) {
	body, err := rlp.EncodeToBytes(p)
	if err != nil {
		return nil, errors.Wrap(err, "encode pool")
	}
	return append([]byte{byte(accountlist.Pool)}, body...), nil
}

// Decode parses pool account data.
func Decode(data []byte) (*Pool, error) {
	if accountlist.PeekType(data) != accountlist.Pool {
		return nil, errors.Wrapf(reverts.ErrInvalidAccountData, "expected a pool, found %v", accountlist.PeekType(data))
	}
	var p Pool
	if err := rlp.DecodeBytes(data[1:], &p); err != nil {
		return nil, errors.Wrapf(reverts.ErrInvalidAccountData, "decode pool: %v", err)
	}
	if p.Version != Version {
		return nil, errors.Wrapf(reverts.ErrInvalidAccountData, "unsupported pool version %d", p.Version)
	}
	return &p, nil
}

// CheckManager fails with InvalidManager unless signer manages the pool.
func (p *Pool) CheckManager(signer sol.Pubkey) error {
	if signer != p.Manager {
		return errors.Wrapf(reverts.ErrInvalidManager, "%v", signer)
	}
	return nil
}

// Addresses are the program owned accounts a pool keeps besides its lists.
type Addresses struct {
	Reserve        sol.Pubkey `json:"reserve"`
	MintAuthority  sol.Pubkey `json:"mintAuthority"`
	StakeAuthority sol.Pubkey `json:"stakeAuthority"`
}

// DeriveAddresses returns the authority addresses of pool under program.
func DeriveAddresses(program, pool sol.Pubkey) Addresses {
	return Addresses{
		Reserve:        stakeaddr.Authority(program, pool, sol.SeedReserveAccount),
		MintAuthority:  stakeaddr.Authority(program, pool, sol.SeedMintAuthority),
		StakeAuthority: stakeaddr.Authority(program, pool, sol.SeedStakeAuthority),
	}
}
