// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package identifier issues unique, strictly increasing identifiers from a
// counter kept in state.
package identifier

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"golang.org/x/exp/constraints"

	"github.com/ava-labs/specimenvm/consts"
	"github.com/ava-labs/specimenvm/state"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var (
	ErrIDOverflow     = errors.New("identifier overflow")
	ErrInvalidCounter = errors.New("invalid counter")
)

// Allocator hands out identifiers of type [I] starting at 0.
//
// The counter is rejected once it reaches [max], so [max] itself is never
// issued and the identifier space holds exactly [max] values.
type Allocator[I constraints.Unsigned] struct {
	key []byte
	max I
}

// New returns an allocator that stores its counter under [key].
func New[I constraints.Unsigned](key []byte, max I) *Allocator[I] {
	return &Allocator[I]{key: key, max: max}
}

func (a *Allocator[I]) Max() I {
	return a.max
}

func (a *Allocator[I]) Key() []byte {
	return a.key
}

// Peek returns the next identifier that would be allocated.
func (a *Allocator[I]) Peek(ctx context.Context, im state.Immutable) (I, error) {
	v, err := im.GetValue(ctx, a.key)
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(v) != consts.Uint64Len {
		return 0, fmt.Errorf("%w: expected %d bytes but got %d", ErrInvalidCounter, consts.Uint64Len, len(v))
	}
	return Narrow[I](binary.BigEndian.Uint64(v))
}

// Allocate returns the current counter and advances it by one.
func (a *Allocator[I]) Allocate(ctx context.Context, mu state.Mutable) (I, error) {
	current, err := a.Peek(ctx, mu)
	if err != nil {
		return 0, err
	}
	if current >= a.max {
		return 0, fmt.Errorf("%w: next=%d max=%d", ErrIDOverflow, current, a.max)
	}
	next, err := smath.Add(current, 1)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIDOverflow, err)
	}
	if err := mu.Insert(ctx, a.key, binary.BigEndian.AppendUint64(nil, uint64(next))); err != nil {
		return 0, err
	}
	return current, nil
}

// Narrow converts [v] to [I], failing instead of truncating.
func Narrow[I constraints.Unsigned](v uint64) (I, error) {
	var zero I
	if v > uint64(^zero) {
		return 0, fmt.Errorf("%w: %d does not fit in %T", ErrIDOverflow, v, zero)
	}
	return I(v), nil
}
