// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import "errors"

var (
	ErrInputEmpty        = errors.New("input is empty")
	ErrInvalidArgs       = errors.New("invalid args")
	ErrMissingSubcommand = errors.New("must specify a subcommand")
	ErrMissingActor      = errors.New("must specify an actor")
	ErrInvalidSeed       = errors.New("seed must be 32 hex encoded bytes")
	ErrUnexpectedOutput  = errors.New("unexpected output")
)
