// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package identifier

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/specimenvm/chaintesting"
	"github.com/ava-labs/specimenvm/keys"
)

var counterKey = keys.EncodeChunks([]byte{0x1}, 1)

func TestAllocateMonotonic(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	mu := chaintesting.NewInMemoryStore()
	a := New[uint32](counterKey, 1000)

	next, err := a.Peek(ctx, mu)
	require.NoError(err)
	require.Zero(next)

	for i := uint32(0); i < 10; i++ {
		id, err := a.Allocate(ctx, mu)
		require.NoError(err)
		require.Equal(i, id)
	}
	next, err = a.Peek(ctx, mu)
	require.NoError(err)
	require.Equal(uint32(10), next)
}

func TestAllocateNeverIssuesMax(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	mu := chaintesting.NewInMemoryStore()
	a := New[uint8](counterKey, 2)

	id, err := a.Allocate(ctx, mu)
	require.NoError(err)
	require.Equal(uint8(0), id)
	id, err = a.Allocate(ctx, mu)
	require.NoError(err)
	require.Equal(uint8(1), id)

	_, err = a.Allocate(ctx, mu)
	require.ErrorIs(err, ErrIDOverflow)

	// A failed allocation does not move the counter
	next, err := a.Peek(ctx, mu)
	require.NoError(err)
	require.Equal(uint8(2), next)
}

func TestAllocateFullWidth(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	mu := chaintesting.NewInMemoryStore()
	a := New[uint8](counterKey, ^uint8(0))

	require.NoError(mu.Insert(ctx, counterKey, binary.BigEndian.AppendUint64(nil, 254)))
	id, err := a.Allocate(ctx, mu)
	require.NoError(err)
	require.Equal(uint8(254), id)

	_, err = a.Allocate(ctx, mu)
	require.ErrorIs(err, ErrIDOverflow)
}

func TestPeekInvalidCounter(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	mu := chaintesting.NewInMemoryStore()
	a := New[uint16](counterKey, 10)

	require.NoError(mu.Insert(ctx, counterKey, []byte{1}))
	_, err := a.Peek(ctx, mu)
	require.ErrorIs(err, ErrInvalidCounter)

	require.NoError(mu.Insert(ctx, counterKey, binary.BigEndian.AppendUint64(nil, 1<<20)))
	_, err = a.Peek(ctx, mu)
	require.ErrorIs(err, ErrIDOverflow)
}

func TestNarrow(t *testing.T) {
	require := require.New(t)

	v, err := Narrow[uint32](1000)
	require.NoError(err)
	require.Equal(uint32(1000), v)

	_, err = Narrow[uint32](1 << 32)
	require.ErrorIs(err, ErrIDOverflow)
}
