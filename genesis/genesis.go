// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ava-labs/avalanchego/trace"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ava-labs/specimenvm/codec"
	"github.com/ava-labs/specimenvm/consts"
	"github.com/ava-labs/specimenvm/ledger"
	"github.com/ava-labs/specimenvm/state"
	"github.com/ava-labs/specimenvm/storage"

	oteltrace "go.opentelemetry.io/otel/trace"
)

type CustomAllocation struct {
	Address codec.Address `json:"address"`
	Balance uint64        `json:"balance"`
}

type Genesis struct {
	// Stake Parameters
	StakePrice uint64 `json:"stakePrice"` // reserved per owned specimen

	// Registry Parameters
	MaxIdentifier uint64 `json:"maxIdentifier"` // ids issued are < MaxIdentifier
	MaxOwned      int    `json:"maxOwned"`

	// Claim Parameters
	MaxClaimLength int `json:"maxClaimLength"`

	// Allocations
	CustomAllocation []*CustomAllocation `json:"customAllocation"`
}

func Default() *Genesis {
	return &Genesis{
		StakePrice: 1_000,

		MaxIdentifier: uint64(consts.MaxUint32),
		MaxOwned:      64,

		MaxClaimLength: 512,
	}
}

func New(b []byte) (*Genesis, error) {
	g := Default()
	if len(b) > 0 {
		if err := json.Unmarshal(b, g); err != nil {
			return nil, fmt.Errorf("failed to unmarshal genesis %s: %w", string(b), err)
		}
	}
	if err := g.Verify(); err != nil {
		return nil, err
	}
	return g, nil
}

// Verify checks the parameters can be honored by the state layout.
func (g *Genesis) Verify() error {
	if g.MaxIdentifier == 0 || g.MaxIdentifier > uint64(consts.MaxUint32) {
		return fmt.Errorf("%w: %d", ErrInvalidMaxIdentifier, g.MaxIdentifier)
	}
	if g.MaxOwned < 1 || g.MaxOwned > storage.MaxOwnedLimit {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidMaxOwned, g.MaxOwned, storage.MaxOwnedLimit)
	}
	if g.MaxClaimLength < 0 || g.MaxClaimLength > storage.MaxClaimLimit {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidMaxClaimLength, g.MaxClaimLength, storage.MaxClaimLimit)
	}
	for i, alloc := range g.CustomAllocation {
		if alloc == nil || alloc.Address == codec.EmptyAddress {
			return fmt.Errorf("%w: allocation %d has no address", ErrInvalidAllocation, i)
		}
	}
	return nil
}

func (g *Genesis) Marshal() ([]byte, error) {
	return json.Marshal(g)
}

// Load credits every allocation to the free balance of its address.
func (g *Genesis) Load(ctx context.Context, tracer trace.Tracer, mu state.Mutable) error {
	ctx, span := tracer.Start(
		ctx, "Genesis.Load",
		oteltrace.WithAttributes(
			attribute.Int("allocations", len(g.CustomAllocation)),
		),
	)
	defer span.End()

	if err := g.Verify(); err != nil {
		return err
	}
	l := ledger.New()
	for _, alloc := range g.CustomAllocation {
		if _, err := l.Deposit(ctx, mu, alloc.Address, alloc.Balance); err != nil {
			return fmt.Errorf("%w: addr=%s, bal=%d", err, alloc.Address, alloc.Balance)
		}
	}
	return nil
}
