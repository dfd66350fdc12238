// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

// Typed is any value that identifies itself with a one byte type ID.
type Typed interface {
	GetTypeID() uint8
}
