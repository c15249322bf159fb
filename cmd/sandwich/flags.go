// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/votesandwich/config"
	"github.com/vechain/votesandwich/log"
)

var (
	configFlag = cli.StringFlag{
		Name:   "config",
		EnvVar: "SANDWICH_CONFIG",
		Usage:  "path to a YAML config file",
	}
	lcdFlag = cli.StringFlag{
		Name:   "lcd",
		Value:  config.DefaultLCDURL,
		EnvVar: "SANDWICH_LCD",
		Usage:  "LCD REST endpoint of the chain",
	}
	queryTimeoutFlag = cli.DurationFlag{
		Name:   "query-timeout",
		Value:  config.DefaultQueryTimeout,
		EnvVar: "SANDWICH_QUERY_TIMEOUT",
		Usage:  "timeout of a single LCD query",
	}
	governanceFlag = cli.StringFlag{
		Name:   "governance",
		EnvVar: "SANDWICH_GOVERNANCE",
		Usage:  "governance contract address",
	}
	vaultsFlag = cli.StringFlag{
		Name:   "vaults",
		EnvVar: "SANDWICH_VAULTS",
		Usage:  "vaults contract address",
	}
	stakingFlag = cli.StringFlag{
		Name:   "staking",
		EnvVar: "SANDWICH_STAKING",
		Usage:  "staking contract address",
	}
	verbosityFlag = cli.IntFlag{
		Name:   "verbosity",
		Value:  log.LegacyLevelInfo,
		EnvVar: "SANDWICH_VERBOSITY",
		Usage:  "log verbosity (0-5)",
	}
	logFormatFlag = cli.StringFlag{
		Name:   "log-format",
		Value:  logFormatTerminal,
		EnvVar: "SANDWICH_LOG_FORMAT",
		Usage:  "log output format (terminal|json|logfmt)",
	}

	apiAddrFlag = cli.StringFlag{
		Name:   "api-addr",
		Value:  config.DefaultAPIAddr,
		EnvVar: "SANDWICH_API_ADDR",
		Usage:  "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:   "api-cors",
		EnvVar: "SANDWICH_API_CORS",
		Usage:  "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiTimeoutFlag = cli.DurationFlag{
		Name:   "api-timeout",
		Value:  config.DefaultAPITimeout,
		EnvVar: "SANDWICH_API_TIMEOUT",
		Usage:  "API request timeout",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:   "enable-api-logs",
		EnvVar: "SANDWICH_ENABLE_API_LOGS",
		Usage:  "enables API requests logging",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:   "enable-metrics",
		EnvVar: "SANDWICH_ENABLE_METRICS",
		Usage:  "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:   "metrics-addr",
		Value:  config.DefaultMetricsAddr,
		EnvVar: "SANDWICH_METRICS_ADDR",
		Usage:  "metrics service listening address",
	}

	userFlag = cli.StringFlag{
		Name:  "user",
		Usage: "address of the user submitting the messages",
	}
	inputFlag = cli.StringFlag{
		Name:  "input",
		Usage: "file holding a JSON array of messages, stdin when omitted",
	}
)

var commonFlags = []cli.Flag{
	configFlag,
	lcdFlag,
	queryTimeoutFlag,
	governanceFlag,
	vaultsFlag,
	stakingFlag,
	verbosityFlag,
	logFormatFlag,
}
