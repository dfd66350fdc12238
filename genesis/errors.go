// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import "errors"

var (
	ErrInvalidMaxIdentifier  = errors.New("max identifier must be in [1, 2^32-1]")
	ErrInvalidMaxOwned       = errors.New("max owned out of range")
	ErrInvalidMaxClaimLength = errors.New("max claim length out of range")
	ErrInvalidAllocation     = errors.New("invalid allocation")
)
