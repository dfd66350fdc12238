// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stake

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ava-labs/specimenvm/chaintesting"
	"github.com/ava-labs/specimenvm/codec"
	"github.com/ava-labs/specimenvm/ledger"
)

var errStorage = errors.New("storage failure")

func TestReserveMapsInsufficientBalance(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	ctx := context.TODO()
	mu := chaintesting.NewInMemoryStore()
	addr := codec.CreateAddress(0, ids.GenerateTestID())

	l := NewMockLedger(ctrl)
	c := NewCoordinator(logging.NoLog{}, l, 10)
	require.Equal(uint64(10), c.Price())

	l.EXPECT().Reserve(ctx, mu, addr, uint64(10)).Return(fmt.Errorf("%w: free=0", ledger.ErrInsufficientBalance))
	require.ErrorIs(c.Reserve(ctx, mu, addr, 10), ErrInsufficientBalance)

	// Other failures are surfaced as-is
	l.EXPECT().Reserve(ctx, mu, addr, uint64(10)).Return(errStorage)
	err := c.Reserve(ctx, mu, addr, 10)
	require.ErrorIs(err, errStorage)
	require.NotErrorIs(err, ErrInsufficientBalance)

	l.EXPECT().Reserve(ctx, mu, addr, uint64(10)).Return(nil)
	require.NoError(c.Reserve(ctx, mu, addr, 10))
}

func TestRelease(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	ctx := context.TODO()
	mu := chaintesting.NewInMemoryStore()
	addr := codec.CreateAddress(0, ids.GenerateTestID())

	l := NewMockLedger(ctrl)
	c := NewCoordinator(logging.NoLog{}, l, 10)

	// A shortfall is not an error
	l.EXPECT().Unreserve(ctx, mu, addr, uint64(10)).Return(uint64(4), nil)
	require.NoError(c.Release(ctx, mu, addr, 10))

	l.EXPECT().Unreserve(ctx, mu, addr, uint64(10)).Return(uint64(0), errStorage)
	require.ErrorIs(c.Release(ctx, mu, addr, 10), errStorage)
}

func TestCoordinatorWithStateLedger(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	mu := chaintesting.NewInMemoryStore()
	addr := codec.CreateAddress(0, ids.GenerateTestID())

	l := ledger.New()
	_, err := l.Deposit(ctx, mu, addr, 15)
	require.NoError(err)

	c := NewCoordinator(logging.NoLog{}, l, 10)
	require.NoError(c.Reserve(ctx, mu, addr, c.Price()))
	require.ErrorIs(c.Reserve(ctx, mu, addr, c.Price()), ErrInsufficientBalance)
	require.NoError(c.Release(ctx, mu, addr, c.Price()))

	free, reserved, err := l.Balance(ctx, mu, addr)
	require.NoError(err)
	require.Equal(uint64(15), free)
	require.Zero(reserved)
}
