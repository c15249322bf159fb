// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/votesandwich/log"
)

func newContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range append(commonFlags, apiAddrFlag, apiTimeoutFlag, enableMetricsFlag, metricsAddrFlag) {
		f.Apply(set)
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(nil, set, nil)
}

func TestLoadConfigFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandwich.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lcd: http://file:1317\ncontracts:\n  governance: osmo1file\n  vaults: osmo1vaults\n"), 0o600))

	cfg, err := loadConfig(newContext(t,
		"--config", path,
		"--governance", "osmo1flag",
		"--query-timeout", "2s",
		"--enable-metrics",
	))
	require.NoError(t, err)

	assert.Equal(t, "http://file:1317", cfg.LCD, "file value kept when flag unset")
	assert.Equal(t, "osmo1flag", cfg.Contracts.Governance, "flag overrides file")
	assert.Equal(t, "osmo1vaults", cfg.Contracts.Vaults)
	assert.Equal(t, 2*time.Second, cfg.QueryTimeout)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadConfigInvalid(t *testing.T) {
	_, err := loadConfig(newContext(t, "--lcd", "ftp://nowhere"))
	assert.ErrorContains(t, err, "config")

	_, err = loadConfig(newContext(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestReadClauses(t *testing.T) {
	clauses, err := readClauses("", strings.NewReader(`[{"contract":"osmo1staking","msg":{"unstake":{}}}]`))
	require.NoError(t, err)
	require.Len(t, clauses, 1)
	assert.Equal(t, "osmo1staking", clauses[0].Contract)
	assert.JSONEq(t, `{"unstake":{}}`, string(clauses[0].Msg))

	path := filepath.Join(t.TempDir(), "msgs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o600))
	clauses, err = readClauses(path, strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Empty(t, clauses)

	_, err = readClauses("", strings.NewReader(`[null]`))
	assert.Error(t, err)
	_, err = readClauses("", strings.NewReader(`{}`))
	assert.Error(t, err)
	_, err = readClauses(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)
}

func TestNewLogHandler(t *testing.T) {
	lvl := &slog.LevelVar{}
	lvl.Set(log.LevelInfo)

	for _, tt := range []struct {
		format string
		want   string
	}{
		{logFormatLogfmt, "lvl=INFO msg=started user=osmo1user"},
		{logFormatJSON, `"msg":"started","user":"osmo1user"`},
		{logFormatTerminal, "user=osmo1user"},
	} {
		t.Run(tt.format, func(t *testing.T) {
			f, err := os.CreateTemp(t.TempDir(), "log")
			require.NoError(t, err)
			defer f.Close()

			h, err := newLogHandler(tt.format, f, lvl)
			require.NoError(t, err)
			l := log.NewLogger(h)
			l.Debug("hidden")
			l.Info("started", "user", "osmo1user")

			out, err := os.ReadFile(f.Name())
			require.NoError(t, err)
			assert.Contains(t, string(out), tt.want)
			assert.NotContains(t, string(out), "hidden")
		})
	}

	_, err := newLogHandler("xml", os.Stderr, lvl)
	assert.Error(t, err)
}
