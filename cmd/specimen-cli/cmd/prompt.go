// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ava-labs/specimenvm/codec"
	"github.com/ava-labs/specimenvm/storage"
	"github.com/ava-labs/specimenvm/utils"
)

func promptAddress(label string) (codec.Address, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if len(input) == 0 {
				return ErrInputEmpty
			}
			_, err := utils.ParseAddressOrName(input)
			return err
		},
	}
	recipient, err := promptText.Run()
	if err != nil {
		return codec.EmptyAddress, err
	}
	return utils.ParseAddressOrName(strings.TrimSpace(recipient))
}

func promptSpecimenID(label string) (storage.SpecimenID, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if len(input) == 0 {
				return ErrInputEmpty
			}
			_, err := parseSpecimenID(input)
			return err
		},
	}
	rawID, err := promptText.Run()
	if err != nil {
		return 0, err
	}
	return parseSpecimenID(strings.TrimSpace(rawID))
}

func promptClaim(label string) ([]byte, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if len(input) == 0 {
				return ErrInputEmpty
			}
			_, err := utils.DecodeFileOrHex(input)
			return err
		},
	}
	raw, err := promptText.Run()
	if err != nil {
		return nil, err
	}
	return utils.DecodeFileOrHex(strings.TrimSpace(raw))
}

func parseSpecimenID(s string) (storage.SpecimenID, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return storage.SpecimenID(id), nil
}

// argOrPrompt resolves the positional argument at [i], asking for it when it
// was not provided.
func argOrPrompt[T any](
	args []string,
	i int,
	label string,
	parse func(string) (T, error),
	prompt func(string) (T, error),
) (T, error) {
	if len(args) > i {
		return parse(args[i])
	}
	return prompt(label)
}
