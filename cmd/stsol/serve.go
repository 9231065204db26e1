// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/stakepool/stsol/admin"
	"github.com/stakepool/stsol/api"
	"github.com/stakepool/stsol/log"
	"github.com/stakepool/stsol/lvldb"
	"github.com/stakepool/stsol/metrics"
	"github.com/stakepool/stsol/state"
)

// startAPIServer listens on addr and serves handler until ctx is done.
func startAPIServer(ctx context.Context, g *errgroup.Group, addr string, handler http.Handler) (string, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", errors.Wrapf(err, "listen API addr [%v]", addr)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}

	g.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return "http://" + listener.Addr().String() + "/", nil
}

func serveAction(ctx *cli.Context) error {
	id, err := programID(ctx)
	if err != nil {
		return err
	}
	dir := ctx.GlobalString(dataDirFlag.Name)
	if dir == "" {
		return errors.New("unable to infer default data dir, use --data-dir")
	}
	db, err := lvldb.New(filepath.Join(dir, "ledger"), lvldb.Options{
		CacheSize:              128,
		OpenFilesCacheCapacity: 128,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	stater, err := state.NewStater(db, ctx.GlobalInt(cacheFlag.Name))
	if err != nil {
		return err
	}

	enableMetrics := ctx.Bool(enableMetricsFlag.Name)
	if enableMetrics {
		metrics.InitializePrometheusMetrics()
	}
	var enableReqLogger atomic.Bool
	enableReqLogger.Store(ctx.Bool(enableAPILogsFlag.Name))

	handler := api.New(id, stater, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		EnableReqLogger:      &enableReqLogger,
		SlowQueriesThreshold: ctx.Duration(apiSlowQueriesThresholdFlag.Name),
		Log5xxErrors:         ctx.Bool(apiLog5xxErrorsFlag.Name),
		EnableMetrics:        enableMetrics,
	})

	exitCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(exitCtx)
	url, err := startAPIServer(gctx, g, ctx.String(apiAddrFlag.Name), handler)
	if err != nil {
		return err
	}
	logger := log.WithContext("pkg", "cmd")
	logger.Info("API server started", "url", url, "program", id, "metrics", enableMetrics)

	if addr := ctx.String(adminAddrFlag.Name); addr != "" {
		adminURL, err := startAPIServer(gctx, g, addr, admin.HTTPHandler(&logLevel, &enableReqLogger))
		if err != nil {
			stop()
			g.Wait()
			return err
		}
		logger.Info("admin server started", "url", adminURL+"admin")
	}

	err = g.Wait()
	hit, miss, rate := stater.CacheStats()
	logger.Info("exited", "cacheHit", hit, "cacheMiss", miss, "cacheHitRate", fmt.Sprintf("%.3f", rate))
	return err
}
