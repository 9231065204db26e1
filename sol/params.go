// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sol

import "math"

// Epoch is the ledger epoch number.
type Epoch = uint64

// Constants of the pool program.
const (
	LamportsPerSol uint64 = 1_000_000_000

	// MinimumStakeAccountBalance is the smallest amount a stake account may be created with.
	MinimumStakeAccountBalance uint64 = LamportsPerSol

	// MaxListEntries bounds the capacity of any account list.
	MaxListEntries uint32 = 10_000

	// NoEpoch marks a stake account that was never deactivated.
	NoEpoch Epoch = math.MaxUint64
)

// Seeds used to derive program owned addresses.
var (
	SeedValidatorStakeAccount   = []byte("validator_stake_account")
	SeedValidatorUnstakeAccount = []byte("validator_unstake_account")
	SeedReserveAccount          = []byte("reserve_account")
	SeedMintAuthority           = []byte("mint_authority")
	SeedStakeAuthority          = []byte("stake_authority")
	SeedStSolMint               = []byte("st_sol_mint")
	SeedStSolAccount            = []byte("st_sol_account")
	SeedValidatorList           = []byte("validator_list")
	SeedValidatorPerfList       = []byte("validator_perf_list")
	SeedMaintainerList          = []byte("maintainer_list")
)

// Well known program and sysvar addresses.
var (
	SystemProgramID = Pubkey{}
	StakeProgramID  = BytesToPubkey([]byte("Stake11111111111111111111111111"))
	VoteProgramID   = BytesToPubkey([]byte("Vote111111111111111111111111111"))
	SysvarClockID   = BytesToPubkey([]byte("SysvarC1ock11111111111111111111"))
)
