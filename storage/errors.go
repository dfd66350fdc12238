// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrInvalidValue     = errors.New("invalid value")
	ErrInventoryTooLong = errors.New("inventory too long")
)
