// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/specimenvm/chaintesting"
	"github.com/ava-labs/specimenvm/codec"
	"github.com/ava-labs/specimenvm/consts"
)

func TestReserveUnreserve(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	mu := chaintesting.NewInMemoryStore()
	addr := codec.CreateAddress(0, ids.GenerateTestID())
	l := New()

	free, err := l.Deposit(ctx, mu, addr, 100)
	require.NoError(err)
	require.Equal(uint64(100), free)

	ok, err := l.CanReserve(ctx, mu, addr, 100)
	require.NoError(err)
	require.True(ok)

	require.NoError(l.Reserve(ctx, mu, addr, 30))
	free, reserved, err := l.Balance(ctx, mu, addr)
	require.NoError(err)
	require.Equal(uint64(70), free)
	require.Equal(uint64(30), reserved)

	require.ErrorIs(l.Reserve(ctx, mu, addr, 71), ErrInsufficientBalance)

	shortfall, err := l.Unreserve(ctx, mu, addr, 10)
	require.NoError(err)
	require.Zero(shortfall)

	// Only what is reserved can be released
	shortfall, err = l.Unreserve(ctx, mu, addr, 50)
	require.NoError(err)
	require.Equal(uint64(30), shortfall)

	free, reserved, err = l.Balance(ctx, mu, addr)
	require.NoError(err)
	require.Equal(uint64(100), free)
	require.Zero(reserved)
}

func TestWithdraw(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	mu := chaintesting.NewInMemoryStore()
	addr := codec.CreateAddress(0, ids.GenerateTestID())
	l := New()

	_, err := l.Withdraw(ctx, mu, addr, 1)
	require.ErrorIs(err, ErrInsufficientBalance)

	_, err = l.Deposit(ctx, mu, addr, 5)
	require.NoError(err)
	free, err := l.Withdraw(ctx, mu, addr, 5)
	require.NoError(err)
	require.Zero(free)
	require.Empty(mu.Storage)
}

func TestDepositOverflow(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	mu := chaintesting.NewInMemoryStore()
	addr := codec.CreateAddress(0, ids.GenerateTestID())
	l := New()

	_, err := l.Deposit(ctx, mu, addr, consts.MaxUint64)
	require.NoError(err)
	_, err = l.Deposit(ctx, mu, addr, 1)
	require.ErrorIs(err, ErrBalanceOverflow)
}
