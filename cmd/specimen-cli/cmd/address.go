// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/specimenvm/utils"
)

var addressCmd = &cobra.Command{
	Use:   "address [name]",
	Short: "Prints the address derived from a name",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		utils.Outf("{{yellow}}%s:{{/}} %s\n", args[0], utils.AddressFromName(args[0]))
		return nil
	},
}
