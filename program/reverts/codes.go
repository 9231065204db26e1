// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import "fmt"

// Code identifies a revert reason. Values are stable, they are reported to
// operator tooling.
type Code uint16

const (
	InvalidAccountData Code = iota + 1
	AlreadyInUse
	InvalidOwner
	ListIsFull
	DuplicateKey
	KeyNotFound
	InvalidManager
	InvalidMaintainer
	ValidatorIsStillActive
	ValidatorShouldHaveNoStakeAccounts
	ValidatorShouldHaveNoUnstakeAccounts
	ValidatorBalanceDecreased
	AlreadyUpdatedForEpoch
	ExchangeRateAlreadyUpToDate
	ValidationCommissionOutOfBounds
	InvalidRewardDistribution
	StakeToInactiveValidator
	InvalidAmount
	InsufficientFunds
	ValidatorHasNoStakeAccounts
	InvalidStakeAccount
	CalculationFailure
)

var codeInfo = map[Code]struct {
	name     string
	category Category
}{
	InvalidAccountData:                   {"InvalidAccountData", DataIntegrity},
	AlreadyInUse:                         {"AlreadyInUse", DataIntegrity},
	InvalidOwner:                         {"InvalidOwner", DataIntegrity},
	ListIsFull:                           {"ListIsFull", DataIntegrity},
	DuplicateKey:                         {"DuplicateKey", Precondition},
	KeyNotFound:                          {"KeyNotFound", Precondition},
	InvalidManager:                       {"InvalidManager", Precondition},
	InvalidMaintainer:                    {"InvalidMaintainer", Precondition},
	ValidatorIsStillActive:               {"ValidatorIsStillActive", Precondition},
	ValidatorShouldHaveNoStakeAccounts:   {"ValidatorShouldHaveNoStakeAccounts", Precondition},
	ValidatorShouldHaveNoUnstakeAccounts: {"ValidatorShouldHaveNoUnstakeAccounts", Precondition},
	ValidatorBalanceDecreased:            {"ValidatorBalanceDecreased", InvariantBreach},
	AlreadyUpdatedForEpoch:               {"AlreadyUpdatedForEpoch", RateLimit},
	ExchangeRateAlreadyUpToDate:          {"ExchangeRateAlreadyUpToDate", RateLimit},
	ValidationCommissionOutOfBounds:      {"ValidationCommissionOutOfBounds", Precondition},
	InvalidRewardDistribution:            {"InvalidRewardDistribution", Precondition},
	StakeToInactiveValidator:             {"StakeToInactiveValidator", Precondition},
	InvalidAmount:                        {"InvalidAmount", Precondition},
	InsufficientFunds:                    {"InsufficientFunds", Precondition},
	ValidatorHasNoStakeAccounts:          {"ValidatorHasNoStakeAccounts", Precondition},
	InvalidStakeAccount:                  {"InvalidStakeAccount", DataIntegrity},
	CalculationFailure:                   {"CalculationFailure", InvariantBreach},
}

func (c Code) String() string {
	if info, ok := codeInfo[c]; ok {
		return info.name
	}
	return fmt.Sprintf("code(%d)", uint16(c))
}

// Category returns the class of the code, zero for unknown codes.
func (c Code) Category() Category {
	return codeInfo[c].category
}

// Sentinels, compared by code with errors.Is.
var (
	ErrInvalidAccountData                   = New(InvalidAccountData, "account data is malformed")
	ErrAlreadyInUse                         = New(AlreadyInUse, "account is already initialized")
	ErrInvalidOwner                         = New(InvalidOwner, "account has an unexpected owner")
	ErrListIsFull                           = New(ListIsFull, "account list is full")
	ErrDuplicateKey                         = New(DuplicateKey, "key is already in the list")
	ErrKeyNotFound                          = New(KeyNotFound, "key is not in the list")
	ErrInvalidManager                       = New(InvalidManager, "signer is not the pool manager")
	ErrInvalidMaintainer                    = New(InvalidMaintainer, "signer is not a maintainer")
	ErrValidatorIsStillActive               = New(ValidatorIsStillActive, "validator is still active, enqueue it for removal first")
	ErrValidatorShouldHaveNoStakeAccounts   = New(ValidatorShouldHaveNoStakeAccounts, "validator still has stake accounts, unstake them first")
	ErrValidatorShouldHaveNoUnstakeAccounts = New(ValidatorShouldHaveNoUnstakeAccounts, "validator still has unstake accounts, withdraw them first")
	ErrValidatorBalanceDecreased            = New(ValidatorBalanceDecreased, "observed balance is less than tracked balance")
	ErrAlreadyUpdatedForEpoch               = New(AlreadyUpdatedForEpoch, "already updated in this epoch")
	ErrExchangeRateAlreadyUpToDate          = New(ExchangeRateAlreadyUpToDate, "exchange rate is already up to date")
	ErrValidationCommissionOutOfBounds      = New(ValidationCommissionOutOfBounds, "commission must be within [0, 100]")
	ErrInvalidRewardDistribution            = New(InvalidRewardDistribution, "reward distribution shares sum to zero")
	ErrStakeToInactiveValidator             = New(StakeToInactiveValidator, "validator does not accept stake")
	ErrInvalidAmount                        = New(InvalidAmount, "amount is out of bounds")
	ErrInsufficientFunds                    = New(InsufficientFunds, "not enough lamports available")
	ErrValidatorHasNoStakeAccounts          = New(ValidatorHasNoStakeAccounts, "validator has no stake accounts")
	ErrInvalidStakeAccount                  = New(InvalidStakeAccount, "stake account is missing or malformed")
	ErrCalculationFailure                   = New(CalculationFailure, "arithmetic overflow or division by zero")
)
