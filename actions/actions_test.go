// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/specimenvm/chain"
	"github.com/ava-labs/specimenvm/chaintesting"
	"github.com/ava-labs/specimenvm/claims"
	"github.com/ava-labs/specimenvm/codec"
	"github.com/ava-labs/specimenvm/genesis"
	"github.com/ava-labs/specimenvm/genome"
	"github.com/ava-labs/specimenvm/registry"
	"github.com/ava-labs/specimenvm/storage"
)

type testVM struct {
	t       *testing.T
	ctx     context.Context
	store   *chaintesting.InMemoryStore
	proc    *chain.Processor
	metrics *Metrics
}

func newTestVM(t *testing.T, allocations ...*genesis.CustomAllocation) *testVM {
	require := require.New(t)
	ctx := context.TODO()

	g := genesis.Default()
	g.StakePrice = 10
	g.MaxIdentifier = 1000
	g.MaxOwned = 2
	g.MaxClaimLength = 8
	g.CustomAllocation = allocations

	store := chaintesting.NewInMemoryStore()
	require.NoError(g.Load(ctx, trace.Noop, store))

	r := prometheus.NewRegistry()
	m, err := NewMetrics(r)
	require.NoError(err)
	proc, err := chain.NewProcessor(logging.NoLog{}, trace.Noop, r, g, store, m)
	require.NoError(err)
	return &testVM{t: t, ctx: ctx, store: store, proc: proc, metrics: m}
}

func (vm *testVM) execute(actor codec.Address, action chain.Action) (*chain.Result, error) {
	return vm.proc.Execute(vm.ctx, vm.proc.NextEnv(ids.GenerateTestID()), actor, action)
}

func (vm *testVM) balance(addr codec.Address) (uint64, uint64) {
	free, reserved, err := storage.GetBalance(vm.ctx, vm.store, addr)
	require.NoError(vm.t, err)
	return free, reserved
}

func (vm *testVM) inventory(addr codec.Address) []storage.SpecimenID {
	inv, err := storage.GetInventory(vm.ctx, vm.store, addr)
	require.NoError(vm.t, err)
	return inv
}

func newAddress() codec.Address {
	return codec.CreateAddress(0, ids.GenerateTestID())
}

func TestCreateLimitIsAtomic(t *testing.T) {
	require := require.New(t)
	x := newAddress()
	vm := newTestVM(t, &genesis.CustomAllocation{Address: x, Balance: 100})

	for i := 0; i < 2; i++ {
		result, err := vm.execute(x, &CreateSpecimen{})
		require.NoError(err)
		output, ok := result.Output.(*SpecimenResult)
		require.True(ok)
		require.Equal(storage.SpecimenID(i), output.ID)
		require.Equal(genome.Generate(x, result.Env.Seed, result.Env.InvocationIndex), output.Genome)
		require.Len(result.Events, 1)
	}
	require.Equal([]storage.SpecimenID{0, 1}, vm.inventory(x))
	free, reserved := vm.balance(x)
	require.Equal(uint64(80), free)
	require.Equal(uint64(20), reserved)

	before := vm.store.Snapshot()
	_, err := vm.execute(x, &CreateSpecimen{})
	require.ErrorIs(err, registry.ErrTooManyOwned)
	require.Equal(before, vm.store.Storage)
	_, reserved = vm.balance(x)
	require.Equal(uint64(20), reserved)

	require.InDelta(2, testutil.ToFloat64(vm.metrics.specimenCreated), 0)
}

func TestTransferSpecimen(t *testing.T) {
	require := require.New(t)
	x, y := newAddress(), newAddress()
	vm := newTestVM(t,
		&genesis.CustomAllocation{Address: x, Balance: 100},
		&genesis.CustomAllocation{Address: y, Balance: 10},
	)

	for i := 0; i < 2; i++ {
		_, err := vm.execute(x, &CreateSpecimen{})
		require.NoError(err)
	}
	result, err := vm.execute(x, &TransferSpecimen{ID: 0, To: y})
	require.NoError(err)
	require.Nil(result.Output)
	require.Equal([]chain.Event{&registry.Transferred{From: x, To: y, ID: 0}}, result.Events)

	owner, exists, err := storage.GetOwner(vm.ctx, vm.store, 0)
	require.NoError(err)
	require.True(exists)
	require.Equal(y, owner)
	_, reserved := vm.balance(x)
	require.Equal(uint64(10), reserved)
	free, reserved := vm.balance(y)
	require.Zero(free)
	require.Equal(uint64(10), reserved)
	require.Equal([]storage.SpecimenID{1}, vm.inventory(x))
	require.Equal([]storage.SpecimenID{0}, vm.inventory(y))

	// y has nothing left to stake with
	_, err = vm.execute(x, &TransferSpecimen{ID: 1, To: y})
	require.ErrorIs(err, registry.ErrInsufficientBalance)
	_, err = vm.execute(x, &TransferSpecimen{ID: 0, To: x})
	require.ErrorIs(err, registry.ErrNotOwner)

	require.InDelta(1, testutil.ToFloat64(vm.metrics.specimenTransferred), 0)
}

func TestBreedSpecimen(t *testing.T) {
	require := require.New(t)
	x, y := newAddress(), newAddress()
	vm := newTestVM(t,
		&genesis.CustomAllocation{Address: x, Balance: 100},
		&genesis.CustomAllocation{Address: y, Balance: 100},
	)

	created := make([]*SpecimenResult, 2)
	for i := range created {
		result, err := vm.execute(x, &CreateSpecimen{})
		require.NoError(err)
		created[i] = result.Output.(*SpecimenResult)
	}

	result, err := vm.execute(y, &BreedSpecimen{Parent1: 0, Parent2: 1})
	require.NoError(err)
	child := result.Output.(*SpecimenResult)
	require.Equal(storage.SpecimenID(2), child.ID)
	mask := genome.Generate(y, result.Env.Seed, result.Env.InvocationIndex)
	require.Equal(genome.Combine(created[0].Genome, created[1].Genome, mask), child.Genome)
	require.Equal([]chain.Event{&registry.Created{Owner: y, ID: 2, Genome: child.Genome}}, result.Events)

	before := vm.store.Snapshot()
	_, err = vm.execute(y, &BreedSpecimen{Parent1: 1, Parent2: 1})
	require.ErrorIs(err, registry.ErrDuplicateSpecimenID)
	_, err = vm.execute(y, &BreedSpecimen{Parent1: 1, Parent2: 9})
	require.ErrorIs(err, registry.ErrInvalidSpecimenID)
	require.Equal(before, vm.store.Storage)

	require.InDelta(1, testutil.ToFloat64(vm.metrics.specimenBred), 0)
}

func TestClaims(t *testing.T) {
	require := require.New(t)
	alice, bob := newAddress(), newAddress()
	vm := newTestVM(t)
	vm.proc.SetHeight(5)
	claim := []byte{0, 1}

	_, err := vm.execute(alice, &CreateClaim{Claim: claim})
	require.NoError(err)
	_, err = vm.execute(alice, &CreateClaim{Claim: claim})
	require.ErrorIs(err, claims.ErrClaimExists)
	_, err = vm.execute(alice, &CreateClaim{Claim: make([]byte, 9)})
	require.ErrorIs(err, claims.ErrClaimTooLong)

	_, err = vm.execute(bob, &TransferClaim{Claim: claim, To: bob})
	require.ErrorIs(err, claims.ErrNotClaimOwner)
	vm.proc.SetHeight(6)
	_, err = vm.execute(alice, &TransferClaim{Claim: claim, To: bob})
	require.NoError(err)
	owner, height, exists, err := storage.GetClaim(vm.ctx, vm.store, claim)
	require.NoError(err)
	require.True(exists)
	require.Equal(bob, owner)
	require.Equal(uint64(6), height)

	_, err = vm.execute(alice, &RevokeClaim{Claim: claim})
	require.ErrorIs(err, claims.ErrNotClaimOwner)
	_, err = vm.execute(bob, &RevokeClaim{Claim: claim})
	require.NoError(err)
	_, err = vm.execute(bob, &RevokeClaim{Claim: claim})
	require.ErrorIs(err, claims.ErrClaimMissing)

	require.InDelta(1, testutil.ToFloat64(vm.metrics.claimCreated), 0)
	require.InDelta(1, testutil.ToFloat64(vm.metrics.claimTransferred), 0)
	require.InDelta(1, testutil.ToFloat64(vm.metrics.claimRevoked), 0)
}
