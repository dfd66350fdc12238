// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package registry implements the specimen state machine. Every operation
// assumes it runs inside a call whose changes are discarded on error; see
// [chain.Processor].
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/specimenvm/chain"
	"github.com/ava-labs/specimenvm/codec"
	"github.com/ava-labs/specimenvm/event"
	"github.com/ava-labs/specimenvm/genome"
	"github.com/ava-labs/specimenvm/identifier"
	"github.com/ava-labs/specimenvm/inventory"
	"github.com/ava-labs/specimenvm/state"
	"github.com/ava-labs/specimenvm/storage"
	"github.com/ava-labs/specimenvm/stake"
)

// Registry owns specimen creation, breeding and transfer.
type Registry struct {
	stake    *stake.Coordinator
	ids      *identifier.Allocator[storage.SpecimenID]
	maxOwned int
}

func New(
	coordinator *stake.Coordinator,
	maxIdentifier storage.SpecimenID,
	maxOwned int,
) *Registry {
	return &Registry{
		stake:    coordinator,
		ids:      identifier.New(storage.NextIDKey(), maxIdentifier),
		maxOwned: maxOwned,
	}
}

// Create mints a specimen with a fresh genome owned by [caller].
func (r *Registry) Create(
	ctx context.Context,
	mu state.Mutable,
	env chain.Env,
	caller codec.Address,
	events event.Emitter[chain.Event],
) (storage.SpecimenID, genome.Genome, error) {
	return r.mint(ctx, mu, caller, func() genome.Genome {
		return genome.Generate(caller, env.Seed, env.InvocationIndex)
	}, events)
}

// Breed mints a specimen owned by [caller] whose genome mixes the genomes
// of [parent1] and [parent2]. Owning the parents is not required.
func (r *Registry) Breed(
	ctx context.Context,
	mu state.Mutable,
	env chain.Env,
	caller codec.Address,
	parent1 storage.SpecimenID,
	parent2 storage.SpecimenID,
	events event.Emitter[chain.Event],
) (storage.SpecimenID, genome.Genome, error) {
	if parent1 == parent2 {
		return 0, genome.Empty, fmt.Errorf("%w: %d", ErrDuplicateSpecimenID, parent1)
	}
	g1, err := r.mustSpecimen(ctx, mu, parent1)
	if err != nil {
		return 0, genome.Empty, err
	}
	g2, err := r.mustSpecimen(ctx, mu, parent2)
	if err != nil {
		return 0, genome.Empty, err
	}
	mask := genome.Generate(caller, env.Seed, env.InvocationIndex)
	child := genome.Combine(g1, g2, mask)
	return r.mint(ctx, mu, caller, func() genome.Genome { return child }, events)
}

// mint reserves the stake, derives the genome, allocates the id and records
// the new specimen, in that order.
func (r *Registry) mint(
	ctx context.Context,
	mu state.Mutable,
	owner codec.Address,
	derive func() genome.Genome,
	events event.Emitter[chain.Event],
) (storage.SpecimenID, genome.Genome, error) {
	if err := r.stake.Reserve(ctx, mu, owner, r.stake.Price()); err != nil {
		return 0, genome.Empty, err
	}
	g := derive()
	id, err := r.ids.Allocate(ctx, mu)
	if err != nil {
		return 0, genome.Empty, err
	}
	if err := storage.SetSpecimen(ctx, mu, id, g); err != nil {
		return 0, genome.Empty, err
	}
	if err := storage.SetOwner(ctx, mu, id, owner); err != nil {
		return 0, genome.Empty, err
	}
	if err := r.pushInventory(ctx, mu, owner, id); err != nil {
		return 0, genome.Empty, err
	}
	events.Emit(&Created{Owner: owner, ID: id, Genome: g})
	return id, g, nil
}

// Transfer moves [id] and the stake held for it from [caller] to [to].
func (r *Registry) Transfer(
	ctx context.Context,
	mu state.Mutable,
	caller codec.Address,
	id storage.SpecimenID,
	to codec.Address,
	events event.Emitter[chain.Event],
) error {
	owner, exists, err := storage.GetOwner(ctx, mu, id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %d", ErrInvalidSpecimenID, id)
	}
	if owner != caller {
		return fmt.Errorf("%w: %d is owned by %s", ErrNotOwner, id, owner)
	}

	price := r.stake.Price()
	if err := r.stake.Reserve(ctx, mu, to, price); err != nil {
		return err
	}
	if err := r.stake.Release(ctx, mu, caller, price); err != nil {
		return err
	}
	if err := storage.SetOwner(ctx, mu, id, to); err != nil {
		return err
	}
	if err := r.removeInventory(ctx, mu, caller, id); err != nil {
		return err
	}
	if err := r.pushInventory(ctx, mu, to, id); err != nil {
		return err
	}
	events.Emit(&Transferred{From: caller, To: to, ID: id})
	return nil
}

func (*Registry) mustSpecimen(ctx context.Context, im state.Immutable, id storage.SpecimenID) (genome.Genome, error) {
	g, exists, err := storage.GetSpecimen(ctx, im, id)
	if err != nil {
		return genome.Empty, err
	}
	if !exists {
		return genome.Empty, fmt.Errorf("%w: %d", ErrInvalidSpecimenID, id)
	}
	return g, nil
}

func (r *Registry) pushInventory(ctx context.Context, mu state.Mutable, owner codec.Address, id storage.SpecimenID) error {
	items, err := storage.GetInventory(ctx, mu, owner)
	if err != nil {
		return err
	}
	inv, err := inventory.FromSlice(items, r.maxOwned)
	if err == nil {
		err = inv.TryPush(id)
	}
	if errors.Is(err, inventory.ErrCapacityExceeded) {
		return fmt.Errorf("%w: %s holds %d", ErrTooManyOwned, owner, len(items))
	}
	if err != nil {
		return err
	}
	return storage.SetInventory(ctx, mu, owner, inv.Items())
}

func (r *Registry) removeInventory(ctx context.Context, mu state.Mutable, owner codec.Address, id storage.SpecimenID) error {
	items, err := storage.GetInventory(ctx, mu, owner)
	if err != nil {
		return err
	}
	// Stored inventories may predate a lower capacity, so removal is not
	// bounded by it.
	inv, err := inventory.FromSlice(items, max(len(items), 1))
	if err != nil {
		return err
	}
	if !inv.Remove(id) {
		panic(fmt.Errorf("%w: %d missing from %s", ErrInventoryCorrupt, id, owner))
	}
	return storage.SetInventory(ctx, mu, owner, inv.Items())
}

// Specimen returns the genome of [id], if it exists.
func (*Registry) Specimen(ctx context.Context, im state.Immutable, id storage.SpecimenID) (genome.Genome, bool, error) {
	return storage.GetSpecimen(ctx, im, id)
}

// Owner returns the owner of [id], if it exists.
func (*Registry) Owner(ctx context.Context, im state.Immutable, id storage.SpecimenID) (codec.Address, bool, error) {
	return storage.GetOwner(ctx, im, id)
}

// Inventory returns the specimens owned by [owner] in the order received.
func (*Registry) Inventory(ctx context.Context, im state.Immutable, owner codec.Address) ([]storage.SpecimenID, error) {
	return storage.GetInventory(ctx, im, owner)
}

// NextID is the id the next create or breed would be assigned.
func (r *Registry) NextID(ctx context.Context, im state.Immutable) (storage.SpecimenID, error) {
	return r.ids.Peek(ctx, im)
}

// ListingPrice returns the listing price of [id], if one is set.
func (*Registry) ListingPrice(ctx context.Context, im state.Immutable, id storage.SpecimenID) (uint64, bool, error) {
	return storage.GetListingPrice(ctx, im, id)
}
