// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/stakepool/stsol/program"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	envFile := os.Getenv("STSOL_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := loadEnvFile(envFile); err != nil {
		fmt.Fprintln(os.Stderr, "load env file:", err)
		os.Exit(1)
	}

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Version:  fullVersion(),
		Name:     "stsol",
		HelpName: "stsol",
		Usage:    "Liquid staking pool ledger",
		Flags: []cli.Flag{
			dataDirFlag,
			programFlag,
			verbosityFlag,
			jsonLogsFlag,
			jsonFlag,
			cacheFlag,
		},
		Before: func(ctx *cli.Context) error {
			initLogger(ctx)
			return nil
		},
		Commands: []cli.Command{
			{
				Name:   "create-pool",
				Usage:  "initialize a pool from a YAML config",
				Flags:  []cli.Flag{poolFlag, configFlag},
				Action: createPoolAction,
			},
			{
				Name:   "add-validator",
				Usage:  "add a validator to the pool",
				Flags:  []cli.Flag{poolFlag, managerFlag, voteFlag},
				Action: managerVoteAction((*program.Program).AddValidator),
			},
			{
				Name:   "deactivate-validator",
				Usage:  "stop new stake from going to a validator",
				Flags:  []cli.Flag{poolFlag, managerFlag, voteFlag},
				Action: managerVoteAction((*program.Program).DeactivateValidator),
			},
			{
				Name:   "activate-validator",
				Usage:  "let a suspended validator accept stake again",
				Flags:  []cli.Flag{poolFlag, managerFlag, voteFlag},
				Action: managerVoteAction((*program.Program).ActivateValidator),
			},
			{
				Name:   "enqueue-validator-removal",
				Usage:  "mark a validator for removal once drained",
				Flags:  []cli.Flag{poolFlag, managerFlag, voteFlag},
				Action: managerVoteAction((*program.Program).EnqueueValidatorForRemoval),
			},
			{
				Name:   "remove-validator",
				Usage:  "remove a drained validator queued for removal",
				Flags:  []cli.Flag{poolFlag, voteFlag},
				Action: removeValidatorAction,
			},
			{
				Name:   "add-maintainer",
				Usage:  "grant a key the maintainer role",
				Flags:  []cli.Flag{poolFlag, managerFlag, keyFlag},
				Action: maintainerAction(true),
			},
			{
				Name:   "remove-maintainer",
				Usage:  "revoke the maintainer role of a key",
				Flags:  []cli.Flag{poolFlag, managerFlag, keyFlag},
				Action: maintainerAction(false),
			},
			{
				Name:  "change-criteria",
				Usage: "replace the validator criteria",
				Flags: []cli.Flag{
					poolFlag,
					managerFlag,
					maxCommissionFlag,
					minBlockProductionFlag,
					minVoteSuccessFlag,
					minUptimeFlag,
				},
				Action: changeCriteriaAction,
			},
			{
				Name:  "update-perf",
				Usage: "record validator performance, off-chain rates need --maintainer",
				Flags: []cli.Flag{
					poolFlag,
					voteFlag,
					maintainerFlag,
					blockProductionFlag,
					voteSuccessFlag,
					uptimeFlag,
				},
				Action: updatePerfAction,
			},
			{
				Name:   "deactivate-if-violates",
				Usage:  "deactivate a validator that violates the criteria",
				Flags:  []cli.Flag{poolFlag, voteFlag},
				Action: deactivateIfViolatesAction,
			},
			{
				Name:   "reactivate-if-complies",
				Usage:  "reactivate a suspended validator that meets the criteria",
				Flags:  []cli.Flag{poolFlag, voteFlag},
				Action: reactivateIfCompliesAction,
			},
			{
				Name:   "deposit",
				Usage:  "deposit SOL and receive stSOL",
				Flags:  []cli.Flag{poolFlag, userFlag, amountFlag},
				Action: depositAction,
			},
			{
				Name:   "stake-deposit",
				Usage:  "move SOL from the reserve to a validator",
				Flags:  []cli.Flag{poolFlag, maintainerFlag, voteFlag, amountFlag},
				Action: stakeAction((*program.Program).StakeDeposit),
			},
			{
				Name:   "unstake",
				Usage:  "deactivate stake of a validator",
				Flags:  []cli.Flag{poolFlag, maintainerFlag, voteFlag, amountFlag},
				Action: stakeAction((*program.Program).Unstake),
			},
			{
				Name:   "update-balance",
				Usage:  "collect rewards and withdraw inactive stake of a validator",
				Flags:  []cli.Flag{poolFlag, voteFlag},
				Action: updateBalanceAction,
			},
			{
				Name:   "update-exchange-rate",
				Usage:  "recompute the stSOL exchange rate for the current epoch",
				Flags:  []cli.Flag{poolFlag},
				Action: updateExchangeRateAction,
			},
			{
				Name:   "set-epoch",
				Usage:  "advance the ledger clock",
				Flags:  []cli.Flag{epochFlag},
				Action: setEpochAction,
			},
			{
				Name:   "set-vote-account",
				Usage:  "create or update a vote account",
				Flags:  []cli.Flag{voteFlag, commissionFlag},
				Action: setVoteAccountAction,
			},
			{
				Name:   "fund",
				Usage:  "credit lamports to an account",
				Flags:  []cli.Flag{userFlag, amountFlag},
				Action: fundAction,
			},
			{
				Name:   "show",
				Usage:  "print a pool with its validators and maintainers",
				Flags:  []cli.Flag{poolFlag},
				Action: showAction,
			},
			{
				Name:   "derive",
				Usage:  "derive a stake or unstake account address",
				Flags:  []cli.Flag{poolFlag, voteFlag, purposeFlag, seedFlag, epochFlag},
				Action: deriveAction,
			},
			{
				Name:  "serve",
				Usage: "serve the read only HTTP API",
				Flags: []cli.Flag{
					apiAddrFlag,
					apiCorsFlag,
					apiSlowQueriesThresholdFlag,
					apiLog5xxErrorsFlag,
					enableAPILogsFlag,
					enableMetricsFlag,
					adminAddrFlag,
				},
				Action: serveAction,
			},
		},
	}
}
