// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import "context"

// Immutable is a read-only view of state. Missing keys return
// [database.ErrNotFound].
type Immutable interface {
	GetValue(ctx context.Context, key []byte) (value []byte, err error)
}

type Mutable interface {
	Immutable

	Insert(ctx context.Context, key []byte, value []byte) error
	Remove(ctx context.Context, key []byte) error
}

// Batch stages writes until Write is called. Reads observe staged writes.
type Batch interface {
	Mutable

	Write() error
}

// Batcher is implemented by stores that can apply a set of changes
// atomically.
type Batcher interface {
	NewBatch() Batch
}
