// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"errors"

	"github.com/ava-labs/specimenvm/identifier"
	"github.com/ava-labs/specimenvm/stake"
)

var (
	ErrInvalidSpecimenID   = errors.New("specimen does not exist")
	ErrIDOverflow          = identifier.ErrIDOverflow
	ErrNotOwner            = errors.New("not the owner of the specimen")
	ErrDuplicateSpecimenID = errors.New("cannot breed a specimen with itself")
	ErrInsufficientBalance = stake.ErrInsufficientBalance
	ErrTooManyOwned        = errors.New("too many specimens owned")

	// Reserved for listings, which no operation acts on yet.
	ErrSelfTrade  = errors.New("cannot trade with self")
	ErrNotForSale = errors.New("specimen is not for sale")

	// ErrInventoryCorrupt is raised as a panic when an owner's inventory
	// does not hold a specimen it owns.
	ErrInventoryCorrupt = errors.New("inventory does not match ownership")
)
