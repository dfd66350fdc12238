// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/specimenvm/actions"
	"github.com/ava-labs/specimenvm/storage"
	"github.com/ava-labs/specimenvm/utils"
)

var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Proof of existence claims",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var createClaimCmd = &cobra.Command{
	Use:   "create [hex or file]",
	Short: "Claims a digest or file for the actor",
	RunE: func(cmd *cobra.Command, args []string) error {
		claim, err := argOrPrompt(args, 0, "claim (hex or file)", utils.DecodeFileOrHex, promptClaim)
		if err != nil {
			return err
		}
		return withHandler(cmd.Context(), func(h *Handler) error {
			result, err := h.Execute(cmd.Context(), &actions.CreateClaim{Claim: claim})
			if err != nil {
				return err
			}
			utils.Outf("{{green}}claimed at height{{/}} %d\n", result.Env.Height)
			return nil
		})
	},
}

var revokeClaimCmd = &cobra.Command{
	Use:   "revoke [hex or file]",
	Short: "Revokes a claim owned by the actor",
	RunE: func(cmd *cobra.Command, args []string) error {
		claim, err := argOrPrompt(args, 0, "claim (hex or file)", utils.DecodeFileOrHex, promptClaim)
		if err != nil {
			return err
		}
		return withHandler(cmd.Context(), func(h *Handler) error {
			if _, err := h.Execute(cmd.Context(), &actions.RevokeClaim{Claim: claim}); err != nil {
				return err
			}
			utils.Outf("{{green}}revoked claim{{/}}\n")
			return nil
		})
	},
}

var transferClaimCmd = &cobra.Command{
	Use:   "transfer [hex or file] [recipient]",
	Short: "Transfers a claim owned by the actor",
	RunE: func(cmd *cobra.Command, args []string) error {
		claim, err := argOrPrompt(args, 0, "claim (hex or file)", utils.DecodeFileOrHex, promptClaim)
		if err != nil {
			return err
		}
		to, err := argOrPrompt(args, 1, "recipient", utils.ParseAddressOrName, promptAddress)
		if err != nil {
			return err
		}
		return withHandler(cmd.Context(), func(h *Handler) error {
			if _, err := h.Execute(cmd.Context(), &actions.TransferClaim{Claim: claim, To: to}); err != nil {
				return err
			}
			utils.Outf("{{green}}transferred claim to{{/}} %s\n", to)
			return nil
		})
	},
}

var getClaimCmd = &cobra.Command{
	Use:   "get [hex or file]",
	Short: "Prints the owner of a claim",
	RunE: func(cmd *cobra.Command, args []string) error {
		claim, err := argOrPrompt(args, 0, "claim (hex or file)", utils.DecodeFileOrHex, promptClaim)
		if err != nil {
			return err
		}
		return withHandler(cmd.Context(), func(h *Handler) error {
			owner, height, exists, err := storage.GetClaim(cmd.Context(), h.State(), claim)
			if err != nil {
				return err
			}
			if !exists {
				utils.Outf("{{red}}claim does not exist{{/}}\n")
				return nil
			}
			utils.Outf("{{yellow}}owner:{{/}} %s {{yellow}}height:{{/}} %d\n", owner, height)
			return nil
		})
	},
}
