// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:   "data-dir",
		Value:  defaultDataDir(),
		EnvVar: "STSOL_DATA_DIR",
		Usage:  "directory for the ledger database",
	}
	programFlag = cli.StringFlag{
		Name:   "program",
		Value:  defaultProgramID.String(),
		EnvVar: "STSOL_PROGRAM",
		Usage:  "address of the pool program",
	}
	verbosityFlag = cli.IntFlag{
		Name:   "verbosity",
		Value:  3,
		EnvVar: "STSOL_VERBOSITY",
		Usage:  "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	jsonFlag = cli.BoolFlag{
		Name:  "json",
		Usage: "print command results as JSON",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Value: 4096,
		Usage: "number of accounts kept in the state cache",
	}

	poolFlag = cli.StringFlag{
		Name:   "pool",
		EnvVar: "STSOL_POOL",
		Usage:  "address of the pool account",
	}
	managerFlag = cli.StringFlag{
		Name:   "manager",
		EnvVar: "STSOL_MANAGER",
		Usage:  "manager key signing the instruction",
	}
	maintainerFlag = cli.StringFlag{
		Name:   "maintainer",
		EnvVar: "STSOL_MAINTAINER",
		Usage:  "maintainer key signing the instruction",
	}
	voteFlag = cli.StringFlag{
		Name:  "vote",
		Usage: "vote account of the validator",
	}
	keyFlag = cli.StringFlag{
		Name:  "key",
		Usage: "maintainer key to add or remove",
	}
	userFlag = cli.StringFlag{
		Name:  "user",
		Usage: "depositor or holder address",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount",
		Usage: "amount in SOL, up to 9 decimals",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "YAML pool configuration file",
	}
	epochFlag = cli.Uint64Flag{
		Name:  "epoch",
		Usage: "epoch number",
	}
	commissionFlag = cli.UintFlag{
		Name:  "commission",
		Usage: "commission percentage of the vote account",
	}
	maxCommissionFlag = cli.UintFlag{
		Name:  "max-commission",
		Usage: "maximum validator commission percentage",
	}
	minBlockProductionFlag = cli.StringFlag{
		Name:  "min-block-production-rate",
		Value: "0",
		Usage: "minimum block production rate, as a percentage",
	}
	minVoteSuccessFlag = cli.StringFlag{
		Name:  "min-vote-success-rate",
		Value: "0",
		Usage: "minimum vote success rate, as a percentage",
	}
	minUptimeFlag = cli.StringFlag{
		Name:  "min-uptime",
		Value: "0",
		Usage: "minimum uptime, as a percentage",
	}
	blockProductionFlag = cli.StringFlag{
		Name:  "block-production-rate",
		Usage: "observed block production rate, as a percentage",
	}
	voteSuccessFlag = cli.StringFlag{
		Name:  "vote-success-rate",
		Usage: "observed vote success rate, as a percentage",
	}
	uptimeFlag = cli.StringFlag{
		Name:  "uptime",
		Usage: "observed uptime, as a percentage",
	}
	purposeFlag = cli.StringFlag{
		Name:  "purpose",
		Value: "stake",
		Usage: "address purpose (stake|unstake)",
	}
	seedFlag = cli.Uint64Flag{
		Name:  "seed",
		Usage: "seed of the derived account",
	}

	apiAddrFlag = cli.StringFlag{
		Name:   "api-addr",
		Value:  "localhost:8670",
		EnvVar: "STSOL_API_ADDR",
		Usage:  "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiSlowQueriesThresholdFlag = cli.DurationFlag{
		Name:  "api-slow-queries-threshold",
		Usage: "log requests slower than this duration, 0 disables",
	}
	apiLog5xxErrorsFlag = cli.BoolFlag{
		Name:  "api-log-5xx-errors",
		Usage: "log requests answered with a 5xx status",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	adminAddrFlag = cli.StringFlag{
		Name:  "admin-addr",
		Usage: "admin service listening address, disabled when empty",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection, served under /metrics",
	}
)
