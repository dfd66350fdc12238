// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	ErrNilAction      = errors.New("action cannot be nil")
	ErrEmptyActor     = errors.New("actor cannot be empty")
	ErrProcessorClose = errors.New("processor closed")
)
