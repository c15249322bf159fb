// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/votesandwich/api"
	"github.com/vechain/votesandwich/api/sandwiches"
	"github.com/vechain/votesandwich/cmd/sandwich/httpserver"
	"github.com/vechain/votesandwich/log"
	"github.com/vechain/votesandwich/metrics"
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
	app := cli.App{
		Version: fullVersion(),
		Name:    "sandwich",
		Usage:   "Keeps governance votes alive across stake-reducing actions",
		Commands: []cli.Command{
			{
				Name:  "serve",
				Usage: "serve the sandwich REST API",
				Flags: append(commonFlags,
					apiAddrFlag,
					apiCorsFlag,
					apiTimeoutFlag,
					enableAPILogsFlag,
					enableMetricsFlag,
					metricsAddrFlag,
				),
				Action: serveAction,
			},
			{
				Name:   "build",
				Usage:  "wrap a JSON array of messages and print the result",
				Flags:  append(commonFlags, userFlag, inputFlag),
				Action: buildAction,
			},
			{
				Name:   "power",
				Usage:  "print the current voting power of a user",
				Flags:  append(commonFlags, userFlag),
				Action: powerAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveAction(ctx *cli.Context) error {
	defer func() { log.Info("exited") }()

	if err := initLogger(ctx); err != nil {
		return err
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	if cfg.Metrics.Enabled {
		metrics.InitializePrometheusMetrics()
		url, closeFunc, err := httpserver.StartMetricsServer(cfg.Metrics.Addr)
		if err != nil {
			return err
		}
		defer func() { log.Info("stopping metrics server..."); closeFunc() }()
		log.Info("metrics server started", "url", url)
	}

	handler := api.New(newBuilder(cfg), api.Options{
		AllowedOrigins:  cfg.API.CORS,
		EnableReqLogger: cfg.API.EnableReqLogger,
		EnableMetrics:   cfg.Metrics.Enabled,
	})
	url, closeFunc, err := httpserver.StartAPIServer(cfg.API.Addr, handler, cfg.API.Timeout)
	if err != nil {
		return err
	}
	defer func() { log.Info("stopping API server..."); closeFunc() }()

	log.Info("API server started", "url", url, "lcd", cfg.LCD, "governance", cfg.Contracts.Governance)

	<-handleExitSignal().Done()
	return nil
}

func buildAction(ctx *cli.Context) error {
	if err := initLogger(ctx); err != nil {
		return err
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	user := ctx.String(userFlag.Name)
	if user == "" {
		return errors.New("--user required")
	}
	clauses, err := readClauses(ctx.String(inputFlag.Name), os.Stdin)
	if err != nil {
		return err
	}

	res := newBuilder(cfg).Build(handleExitSignal(), user, clauses)
	return writeJSON(os.Stdout, sandwiches.NewBuildResponse(res))
}

func powerAction(ctx *cli.Context) error {
	if err := initLogger(ctx); err != nil {
		return err
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	user := ctx.String(userFlag.Name)
	p, err := newBuilder(cfg).Power(handleExitSignal(), user)
	if err != nil {
		return errors.WithMessage(err, "power")
	}
	log.Debug("power fetched", "user", user, "elapsed", time.Since(start))
	return writeJSON(os.Stdout, &sandwiches.Power{User: user, Power: p})
}
