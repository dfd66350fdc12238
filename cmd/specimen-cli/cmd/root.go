// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ava-labs/specimenvm/config"
)

const fsModeWrite = 0o600

var (
	configFile string
	actorName  string
	seedHex    string

	genesisFile string

	rootCmd = &cobra.Command{
		Use:        "specimen-cli",
		Short:      "Specimen registry CLI",
		SuggestFor: []string{"specimen-cli", "specimencli"},
	}
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.PersistentFlags().StringVar(
		&configFile,
		"config",
		"",
		"config file path (json or yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&actorName,
		"actor",
		"",
		"name or address of the caller",
	)
	rootCmd.PersistentFlags().StringVar(
		&seedHex,
		"seed",
		"",
		"hex encoded 32 byte seed (random if empty)",
	)

	rootCmd.AddCommand(
		genesisCmd,
		addressCmd,

		createCmd,
		breedCmd,
		transferCmd,

		specimenCmd,
		inventoryCmd,
		balanceCmd,

		claimCmd,

		serveCmd,
	)

	// genesis
	genesisCmd.AddCommand(
		genGenesisCmd,
	)
	genGenesisCmd.PersistentFlags().StringVar(
		&genesisFile,
		"genesis-file",
		"genesis.json",
		"genesis file path",
	)
	genGenesisCmd.PersistentFlags().Uint64Var(
		&stakePrice,
		"stake-price",
		0,
		"stake reserved per owned specimen (default if 0)",
	)
	genGenesisCmd.PersistentFlags().IntVar(
		&maxOwned,
		"max-owned",
		0,
		"most specimens a single address can own (default if 0)",
	)

	// claim
	claimCmd.AddCommand(
		createClaimCmd,
		revokeClaimCmd,
		transferClaimCmd,
		getClaimCmd,
	)
}

func loadConfig() (*config.Config, error) {
	if len(configFile) == 0 {
		return config.New(nil)
	}
	c, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	// Relative paths are resolved against the config file.
	if dir := c.GetDatabaseDir(); !filepath.IsAbs(dir) {
		c.DatabaseDir = filepath.Join(filepath.Dir(configFile), dir)
	}
	if p := c.GetGenesisPath(); len(p) > 0 && !filepath.IsAbs(p) {
		c.GenesisPath = filepath.Join(filepath.Dir(configFile), p)
	}
	return c, nil
}

func Execute() error {
	return rootCmd.Execute()
}
