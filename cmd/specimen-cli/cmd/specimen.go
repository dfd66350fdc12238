// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ava-labs/specimenvm/actions"
	"github.com/ava-labs/specimenvm/chain"
	"github.com/ava-labs/specimenvm/codec"
	"github.com/ava-labs/specimenvm/identifier"
	"github.com/ava-labs/specimenvm/storage"
	"github.com/ava-labs/specimenvm/utils"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Creates a specimen owned by the actor",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withHandler(cmd.Context(), func(h *Handler) error {
			result, err := h.Execute(cmd.Context(), &actions.CreateSpecimen{})
			if err != nil {
				return err
			}
			return printSpecimenResult("created", result)
		})
	},
}

var breedCmd = &cobra.Command{
	Use:   "breed [parent1] [parent2]",
	Short: "Breeds two specimens owned by the actor",
	RunE: func(cmd *cobra.Command, args []string) error {
		p1, err := argOrPrompt(args, 0, "first parent", parseSpecimenID, promptSpecimenID)
		if err != nil {
			return err
		}
		p2, err := argOrPrompt(args, 1, "second parent", parseSpecimenID, promptSpecimenID)
		if err != nil {
			return err
		}
		return withHandler(cmd.Context(), func(h *Handler) error {
			result, err := h.Execute(cmd.Context(), &actions.BreedSpecimen{
				Parent1: p1,
				Parent2: p2,
			})
			if err != nil {
				return err
			}
			return printSpecimenResult("bred", result)
		})
	},
}

var transferCmd = &cobra.Command{
	Use:   "transfer [id] [recipient]",
	Short: "Transfers a specimen owned by the actor",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := argOrPrompt(args, 0, "specimen", parseSpecimenID, promptSpecimenID)
		if err != nil {
			return err
		}
		to, err := argOrPrompt(args, 1, "recipient", utils.ParseAddressOrName, promptAddress)
		if err != nil {
			return err
		}
		return withHandler(cmd.Context(), func(h *Handler) error {
			if _, err := h.Execute(cmd.Context(), &actions.TransferSpecimen{ID: id, To: to}); err != nil {
				return err
			}
			utils.Outf("{{green}}transferred{{/}} %d {{green}}to{{/}} %s\n", id, to)
			return nil
		})
	},
}

var specimenCmd = &cobra.Command{
	Use:   "specimen [id]",
	Short: "Prints the genome and owner of a specimen",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := argOrPrompt(args, 0, "specimen", parseSpecimenID, promptSpecimenID)
		if err != nil {
			return err
		}
		return withHandler(cmd.Context(), func(h *Handler) error {
			ctx := cmd.Context()
			g, exists, err := storage.GetSpecimen(ctx, h.State(), id)
			if err != nil {
				return err
			}
			if !exists {
				next, err := nextID(ctx, h)
				if err != nil {
					return err
				}
				utils.Outf("{{red}}specimen %d does not exist{{/}} (next id: %d)\n", id, next)
				return nil
			}
			owner, _, err := storage.GetOwner(ctx, h.State(), id)
			if err != nil {
				return err
			}
			utils.Outf(
				"{{yellow}}id:{{/}} %d {{yellow}}genome:{{/}} %s {{yellow}}owner:{{/}} %s\n",
				id, g, owner,
			)
			return nil
		})
	},
}

var inventoryCmd = &cobra.Command{
	Use:   "inventory [address]",
	Short: "Lists the specimens owned by an address (the actor by default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := addressOrActor(args)
		if err != nil {
			return err
		}
		return withHandler(cmd.Context(), func(h *Handler) error {
			owned, err := storage.GetInventory(cmd.Context(), h.State(), addr)
			if err != nil {
				return err
			}
			utils.Outf("{{yellow}}%s owns %d specimens:{{/}} %v\n", addr, len(owned), owned)
			return nil
		})
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Prints the free and reserved balance of an address (the actor by default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := addressOrActor(args)
		if err != nil {
			return err
		}
		return withHandler(cmd.Context(), func(h *Handler) error {
			free, reserved, err := storage.GetBalance(cmd.Context(), h.State(), addr)
			if err != nil {
				return err
			}
			utils.Outf(
				"{{yellow}}free:{{/}} %d {{yellow}}reserved:{{/}} %d {{yellow}}stake price:{{/}} %d\n",
				free, reserved, h.Genesis().GetStakePrice(),
			)
			return nil
		})
	},
}

func addressOrActor(args []string) (codec.Address, error) {
	if len(args) > 0 {
		return utils.ParseAddressOrName(args[0])
	}
	return GetActor()
}

func nextID(ctx context.Context, h *Handler) (storage.SpecimenID, error) {
	limit, err := identifier.Narrow[storage.SpecimenID](h.Genesis().GetMaxIdentifier())
	if err != nil {
		return 0, err
	}
	return identifier.New(storage.NextIDKey(), limit).Peek(ctx, h.State())
}

func printSpecimenResult(verb string, result *chain.Result) error {
	out, ok := result.Output.(*actions.SpecimenResult)
	if !ok {
		return ErrUnexpectedOutput
	}
	utils.Outf(
		"{{green}}%s specimen{{/}} %d {{green}}with genome{{/}} %s {{green}}(events: %d){{/}}\n",
		verb, out.ID, out.Genome, len(result.Events),
	)
	return nil
}
