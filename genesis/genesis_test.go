// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/specimenvm/chaintesting"
	"github.com/ava-labs/specimenvm/codec"
	"github.com/ava-labs/specimenvm/storage"
)

func TestDefaultIsValid(t *testing.T) {
	require := require.New(t)
	g, err := New(nil)
	require.NoError(err)
	require.Equal(Default(), g)
}

func TestNewOverridesDefaults(t *testing.T) {
	require := require.New(t)
	addr := codec.CreateAddress(0, ids.GenerateTestID())
	b := []byte(`{"stakePrice":10,"maxIdentifier":1000,"maxOwned":2,"customAllocation":[{"address":"` + addr.String() + `","balance":100}]}`)

	g, err := New(b)
	require.NoError(err)
	require.Equal(uint64(10), g.GetStakePrice())
	require.Equal(uint64(1000), g.GetMaxIdentifier())
	require.Equal(2, g.GetMaxOwned())
	require.Equal(Default().MaxClaimLength, g.GetMaxClaimLength())
	require.Len(g.CustomAllocation, 1)
	require.Equal(addr, g.CustomAllocation[0].Address)

	b, err = g.Marshal()
	require.NoError(err)
	parsed, err := New(b)
	require.NoError(err)
	require.Equal(g, parsed)
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Genesis)
		err    error
	}{
		{
			name:   "zero max identifier",
			modify: func(g *Genesis) { g.MaxIdentifier = 0 },
			err:    ErrInvalidMaxIdentifier,
		},
		{
			name:   "max identifier too wide",
			modify: func(g *Genesis) { g.MaxIdentifier = 1 << 32 },
			err:    ErrInvalidMaxIdentifier,
		},
		{
			name:   "zero max owned",
			modify: func(g *Genesis) { g.MaxOwned = 0 },
			err:    ErrInvalidMaxOwned,
		},
		{
			name:   "max owned exceeds inventory",
			modify: func(g *Genesis) { g.MaxOwned = storage.MaxOwnedLimit + 1 },
			err:    ErrInvalidMaxOwned,
		},
		{
			name:   "claim length exceeds key",
			modify: func(g *Genesis) { g.MaxClaimLength = storage.MaxClaimLimit + 1 },
			err:    ErrInvalidMaxClaimLength,
		},
		{
			name: "allocation without address",
			modify: func(g *Genesis) {
				g.CustomAllocation = []*CustomAllocation{{Balance: 1}}
			},
			err: ErrInvalidAllocation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Default()
			tt.modify(g)
			require.ErrorIs(t, g.Verify(), tt.err)
		})
	}
}

func TestNewInvalidJSON(t *testing.T) {
	_, err := New([]byte("{"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	mu := chaintesting.NewInMemoryStore()
	a := codec.CreateAddress(0, ids.GenerateTestID())
	b := codec.CreateAddress(0, ids.GenerateTestID())

	g := Default()
	g.CustomAllocation = []*CustomAllocation{
		{Address: a, Balance: 100},
		{Address: b, Balance: 5},
		{Address: a, Balance: 1},
	}
	require.NoError(g.Load(ctx, trace.Noop, mu))

	free, reserved, err := storage.GetBalance(ctx, mu, a)
	require.NoError(err)
	require.Equal(uint64(101), free)
	require.Zero(reserved)
	free, _, err = storage.GetBalance(ctx, mu, b)
	require.NoError(err)
	require.Equal(uint64(5), free)
}
