// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/stakepool/stsol/log"
	"github.com/stakepool/stsol/lvldb"
	"github.com/stakepool/stsol/per64"
	"github.com/stakepool/stsol/program"
	"github.com/stakepool/stsol/sol"
	"github.com/stakepool/stsol/state"
	"github.com/stakepool/stsol/token"
)

var defaultProgramID = sol.BytesToPubkey([]byte("StSo1Pool1111111111111111111111"))

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".stsol")
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// loadEnvFile reads defaults for flags that carry an EnvVar. Variables
// already present in the environment win.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// logLevel is shared by the installed handler and the admin server.
var logLevel slog.LevelVar

func initLogger(ctx *cli.Context) {
	logLevel.Set(log.FromVerbosity(ctx.GlobalInt(verbosityFlag.Name)))
	if ctx.GlobalBool(jsonLogsFlag.Name) {
		log.SetDefault(log.NewJSONHandler(os.Stderr, &logLevel))
		return
	}
	useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	log.SetDefault(log.NewTerminalHandler(os.Stderr, &logLevel, useColor))
}

func requirePubkey(ctx *cli.Context, flag cli.StringFlag) (sol.Pubkey, error) {
	s := ctx.String(flag.Name)
	if s == "" {
		return sol.Pubkey{}, errors.Errorf("missing --%s", flag.Name)
	}
	key, err := sol.ParsePubkey(s)
	if err != nil {
		return sol.Pubkey{}, errors.WithMessagef(err, "--%s", flag.Name)
	}
	return key, nil
}

func requireAmount(ctx *cli.Context) (token.Lamports, error) {
	s := ctx.String(amountFlag.Name)
	if s == "" {
		return 0, errors.Errorf("missing --%s", amountFlag.Name)
	}
	amount, err := parseSol(s)
	if err != nil {
		return 0, errors.WithMessagef(err, "--%s", amountFlag.Name)
	}
	return amount, nil
}

func requirePercentage(ctx *cli.Context, flag cli.StringFlag) (per64.Ratio, error) {
	r, err := per64.ParsePercentage(ctx.String(flag.Name))
	if err != nil {
		return 0, errors.WithMessagef(err, "--%s", flag.Name)
	}
	return r, nil
}

// parseSol parses a decimal SOL amount with at most nine fractional digits
// into lamports.
func parseSol(s string) (token.Lamports, error) {
	s = strings.TrimSpace(s)
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" && (!hasFrac || frac == "") {
		return 0, errors.Errorf("invalid amount %q", s)
	}
	if len(frac) > 9 || (hasFrac && frac == "") {
		return 0, errors.Errorf("invalid amount %q", s)
	}

	var w uint64
	if whole != "" {
		v, err := strconv.ParseUint(whole, 10, 64)
		if err != nil {
			return 0, errors.Errorf("invalid amount %q", s)
		}
		w = v
	}
	var f uint64
	if frac != "" {
		v, err := strconv.ParseUint(frac+strings.Repeat("0", 9-len(frac)), 10, 64)
		if err != nil {
			return 0, errors.Errorf("invalid amount %q", s)
		}
		f = v
	}

	if w > (^uint64(0)-f)/sol.LamportsPerSol {
		return 0, errors.Errorf("amount %q overflows", s)
	}
	return token.Lamports(w*sol.LamportsPerSol + f), nil
}

// ledger is an open database with a state view on top.
type ledger struct {
	db *lvldb.LevelDB
	st *state.State
}

func openLedger(ctx *cli.Context) (*ledger, error) {
	dir := ctx.GlobalString(dataDirFlag.Name)
	if dir == "" {
		return nil, errors.New("unable to infer default data dir, use --data-dir")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	db, err := lvldb.New(filepath.Join(dir, "ledger"), lvldb.Options{
		CacheSize:              64,
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		return nil, err
	}
	stater, err := state.NewStater(db, ctx.GlobalInt(cacheFlag.Name))
	if err != nil {
		db.Close()
		return nil, err
	}
	return &ledger{db: db, st: stater.NewState()}, nil
}

func (l *ledger) Close() error {
	return l.db.Close()
}

func (l *ledger) commit() error {
	stage, err := l.st.Stage()
	if err != nil {
		return err
	}
	if err := stage.Commit(); err != nil {
		return err
	}
	log.WithContext("pkg", "cmd").Debug("committed", "accounts", stage.Len())
	return nil
}

func programID(ctx *cli.Context) (sol.Pubkey, error) {
	id, err := sol.ParsePubkey(ctx.GlobalString(programFlag.Name))
	if err != nil {
		return sol.Pubkey{}, errors.WithMessage(err, "--program")
	}
	return id, nil
}

// withProgram runs fn against the ledger and persists its changes when fn
// succeeds. The result of fn is printed.
func withProgram(ctx *cli.Context, fn func(p *program.Program) (any, error)) error {
	id, err := programID(ctx)
	if err != nil {
		return err
	}
	l, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer l.Close()

	out, err := fn(program.New(id, l.st))
	if err != nil {
		return err
	}
	if err := l.commit(); err != nil {
		return err
	}
	return newPrinter(ctx).print(out)
}
