// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/specimenvm/chaintesting"
	"github.com/ava-labs/specimenvm/codec"
	"github.com/ava-labs/specimenvm/genesis"
	"github.com/ava-labs/specimenvm/genome"
	"github.com/ava-labs/specimenvm/identifier"
	"github.com/ava-labs/specimenvm/server"
	"github.com/ava-labs/specimenvm/state"
	"github.com/ava-labs/specimenvm/storage"
)

type testController struct {
	g     *genesis.Genesis
	store *chaintesting.InMemoryStore
}

func (c *testController) Genesis() *genesis.Genesis { return c.g }
func (*testController) Tracer() trace.Tracer         { return trace.Noop }
func (c *testController) State() state.Immutable     { return c.store }

func newTestClient(t *testing.T, c Controller) *JSONRPCClient {
	handler, err := server.NewJSONRPCHandler(Name, NewJSONRPCServer(c))
	require.NoError(t, err)
	mux := http.NewServeMux()
	mux.Handle(JSONRPCEndpoint, handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewJSONRPCClient(srv.URL)
}

func TestJSONRPC(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	store := chaintesting.NewInMemoryStore()
	owner := codec.CreateAddress(0, ids.GenerateTestID())
	g := genome.Generate(owner, ids.GenerateTestID(), 0)

	require.NoError(storage.SetSpecimen(ctx, store, 0, g))
	require.NoError(storage.SetOwner(ctx, store, 0, owner))
	require.NoError(storage.SetInventory(ctx, store, owner, []storage.SpecimenID{0}))
	require.NoError(storage.SetBalance(ctx, store, owner, 90, 10))
	require.NoError(storage.SetClaim(ctx, store, []byte("proof"), owner, 4))
	id, err := identifier.New(storage.NextIDKey(), storage.SpecimenID(genesis.Default().MaxIdentifier)).Allocate(ctx, store)
	require.NoError(err)
	require.Zero(id)

	cli := newTestClient(t, &testController{g: genesis.Default(), store: store})

	gen, err := cli.Genesis(ctx)
	require.NoError(err)
	require.Equal(genesis.Default(), gen)

	sg, so, err := cli.Specimen(ctx, 0)
	require.NoError(err)
	require.Equal(g, sg)
	require.Equal(owner, so)
	_, _, err = cli.Specimen(ctx, 1)
	require.ErrorContains(err, ErrSpecimenNotFound.Error())

	inv, err := cli.Inventory(ctx, owner)
	require.NoError(err)
	require.Equal([]storage.SpecimenID{0}, inv)

	free, reserved, err := cli.Balance(ctx, owner)
	require.NoError(err)
	require.Equal(uint64(90), free)
	require.Equal(uint64(10), reserved)

	next, err := cli.NextID(ctx)
	require.NoError(err)
	require.Equal(storage.SpecimenID(1), next)

	co, height, err := cli.Claim(ctx, []byte("proof"))
	require.NoError(err)
	require.Equal(owner, co)
	require.Equal(uint64(4), height)
	_, _, err = cli.Claim(ctx, []byte("missing"))
	require.ErrorContains(err, ErrClaimNotFound.Error())
}
