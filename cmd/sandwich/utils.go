// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/votesandwich/clause"
	"github.com/vechain/votesandwich/config"
	"github.com/vechain/votesandwich/lcd"
	"github.com/vechain/votesandwich/lcd/builtin"
	"github.com/vechain/votesandwich/log"
	"github.com/vechain/votesandwich/sandwich"
)

const (
	logFormatTerminal = "terminal"
	logFormatJSON     = "json"
	logFormatLogfmt   = "logfmt"
)

func newLogHandler(format string, w *os.File, lvl *slog.LevelVar) (slog.Handler, error) {
	switch format {
	case logFormatTerminal, "":
		useColor := isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd())
		return log.NewTerminalHandlerWithLevel(w, lvl, useColor), nil
	case logFormatJSON:
		return log.JSONHandlerWithLevel(w, lvl), nil
	case logFormatLogfmt:
		return log.LogfmtHandlerWithLevel(w, lvl), nil
	default:
		return nil, errors.Errorf("unknown log format %q", format)
	}
}

func initLogger(ctx *cli.Context) error {
	lvl := &slog.LevelVar{}
	lvl.Set(log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)))

	handler, err := newLogHandler(ctx.String(logFormatFlag.Name), os.Stderr, lvl)
	if err != nil {
		return err
	}
	log.SetDefault(log.NewLogger(handler))
	return nil
}

// loadConfig reads the config file, then applies every flag explicitly set
// on the command line or through its environment variable.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx.String(configFlag.Name))
	if err != nil {
		return nil, err
	}

	strs := []struct {
		flag cli.StringFlag
		dst  *string
	}{
		{lcdFlag, &cfg.LCD},
		{governanceFlag, &cfg.Contracts.Governance},
		{vaultsFlag, &cfg.Contracts.Vaults},
		{stakingFlag, &cfg.Contracts.Staking},
		{apiAddrFlag, &cfg.API.Addr},
		{apiCorsFlag, &cfg.API.CORS},
		{metricsAddrFlag, &cfg.Metrics.Addr},
	}
	for _, s := range strs {
		if ctx.IsSet(s.flag.Name) {
			*s.dst = ctx.String(s.flag.Name)
		}
	}
	if ctx.IsSet(queryTimeoutFlag.Name) {
		cfg.QueryTimeout = ctx.Duration(queryTimeoutFlag.Name)
	}
	if ctx.IsSet(apiTimeoutFlag.Name) {
		cfg.API.Timeout = ctx.Duration(apiTimeoutFlag.Name)
	}
	if ctx.IsSet(enableAPILogsFlag.Name) {
		cfg.API.EnableReqLogger = ctx.Bool(enableAPILogsFlag.Name)
	}
	if ctx.IsSet(enableMetricsFlag.Name) {
		cfg.Metrics.Enabled = ctx.Bool(enableMetricsFlag.Name)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.WithMessage(err, "config")
	}
	return cfg, nil
}

func newBuilder(cfg *config.Config) *sandwich.Builder {
	client := lcd.NewWithHTTP(cfg.LCD, &http.Client{Timeout: cfg.QueryTimeout})
	querier := builtin.NewQuerier(client, cfg.Contracts)
	voter := querier.Voter()
	if voter == nil {
		log.Warn("no governance contract configured, messages will pass through unchanged")
	}
	return sandwich.New(querier, voter)
}

// readClauses decodes a JSON array of messages from path, or from stdin
// when path is empty.
func readClauses(path string, stdin io.Reader) ([]*clause.Clause, error) {
	r := stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "open input")
		}
		defer f.Close()
		r = f
	}

	var clauses []*clause.Clause
	if err := json.NewDecoder(r).Decode(&clauses); err != nil {
		return nil, errors.Wrap(err, "decode messages")
	}
	for i, c := range clauses {
		if c == nil {
			return nil, errors.Errorf("messages[%d]: null", i)
		}
	}
	return clauses, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		log.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}
