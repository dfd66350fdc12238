// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/specimenvm/consts"
	"github.com/ava-labs/specimenvm/trace"
)

const (
	defaultLogLevel    = "info"
	defaultDatabaseDir = ".specimen-cli"
	defaultRPCAddress  = "127.0.0.1:9650"
)

type Config struct {
	// Logging
	LogLevel string `json:"logLevel" yaml:"logLevel"`

	// Storage
	DatabaseDir string `json:"databaseDir" yaml:"databaseDir"`
	GenesisPath string `json:"genesisPath" yaml:"genesisPath"` // defaults are used if empty

	// RPC
	RPCAddress     string   `json:"rpcAddress"     yaml:"rpcAddress"`
	AllowedOrigins []string `json:"allowedOrigins" yaml:"allowedOrigins"`

	// Metrics
	MetricsEnabled bool `json:"metricsEnabled" yaml:"metricsEnabled"`

	// Tracing
	Trace trace.Config `json:"trace" yaml:"trace"`
}

func New(b []byte) (*Config, error) {
	c := &Config{}
	c.setDefault()
	if len(b) > 0 {
		if err := json.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %s: %w", string(b), err)
		}
	}
	if err := c.verify(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the config at [path]. Files ending in .yaml or .yml are read as
// YAML, anything else as JSON.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		c := &Config{}
		c.setDefault()
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
		}
		if err := c.verify(); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return New(b)
	}
}

func (c *Config) setDefault() {
	c.LogLevel = defaultLogLevel
	c.DatabaseDir = defaultDatabaseDir
	c.RPCAddress = defaultRPCAddress
	c.AllowedOrigins = []string{"*"}
	c.Trace = trace.Config{
		SampleRate:  1,
		Endpoint:    trace.DefaultEndpoint,
		ServiceName: consts.Name,
	}
}

func (c *Config) verify() error {
	if _, err := c.GetLogLevel(); err != nil {
		return err
	}
	return c.Trace.Verify()
}

func (c *Config) GetLogLevel() (logging.Level, error) {
	return logging.ToLevel(c.LogLevel)
}

func (c *Config) GetDatabaseDir() string       { return c.DatabaseDir }
func (c *Config) GetGenesisPath() string       { return c.GenesisPath }
func (c *Config) GetRPCAddress() string        { return c.RPCAddress }
func (c *Config) GetAllowedOrigins() []string  { return c.AllowedOrigins }
func (c *Config) GetMetricsEnabled() bool      { return c.MetricsEnabled }
func (c *Config) GetTraceConfig() trace.Config { return c.Trace }
