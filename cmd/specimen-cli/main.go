// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "specimen-cli" drives a local specimen registry.
package main

import (
	"os"

	"github.com/ava-labs/specimenvm/cmd/specimen-cli/cmd"
	"github.com/ava-labs/specimenvm/utils"
)

func main() {
	if err := cmd.Execute(); err != nil {
		utils.Outf("{{red}}specimen-cli exited with error:{{/}} %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
