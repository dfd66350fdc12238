// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import "errors"

var (
	ErrSpecimenNotFound = errors.New("specimen not found")
	ErrClaimNotFound    = errors.New("claim not found")
)
