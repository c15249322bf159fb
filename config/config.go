// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package config loads the service configuration from YAML.
package config

import (
	"bytes"
	"net/url"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/votesandwich/lcd/builtin"
)

const (
	DefaultLCDURL       = "http://localhost:1317"
	DefaultAPIAddr      = "localhost:8680"
	DefaultMetricsAddr  = "localhost:2112"
	DefaultQueryTimeout = 10 * time.Second
	DefaultAPITimeout   = 30 * time.Second
)

// API configures the HTTP service.
type API struct {
	Addr            string        `yaml:"addr"`
	CORS            string        `yaml:"cors"`
	Timeout         time.Duration `yaml:"timeout"`
	EnableReqLogger bool          `yaml:"enable_req_logger"`
}

// Metrics configures the prometheus endpoint.
type Metrics struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Config is the whole service configuration.
type Config struct {
	LCD          string            `yaml:"lcd"`
	QueryTimeout time.Duration     `yaml:"query_timeout"`
	Contracts    builtin.Addresses `yaml:"contracts"`
	API          API               `yaml:"api"`
	Metrics      Metrics           `yaml:"metrics"`
}

// Default returns a config with every optional field populated.
func Default() *Config {
	return &Config{
		LCD:          DefaultLCDURL,
		QueryTimeout: DefaultQueryTimeout,
		API: API{
			Addr:    DefaultAPIAddr,
			Timeout: DefaultAPITimeout,
		},
		Metrics: Metrics{
			Addr: DefaultMetricsAddr,
		},
	}
}

// Load reads path and overlays it onto Default. An empty path yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := Parse(buf, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML content into cfg. Unknown keys are rejected.
func Parse(content []byte, cfg *Config) error {
	if len(content) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return errors.Wrap(err, "parse config")
	}
	return nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.LCD)
	if err != nil {
		return errors.Wrap(err, "lcd")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Errorf("lcd: unsupported scheme %q", u.Scheme)
	}
	if c.QueryTimeout < 0 {
		return errors.New("query_timeout: negative")
	}
	if c.API.Timeout < 0 {
		return errors.New("api.timeout: negative")
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return errors.New("metrics.addr: required when enabled")
	}
	return nil
}
