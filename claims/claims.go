// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package claims records proofs of existence: opaque byte strings bound to
// an owner and the height they were last written at.
package claims

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/specimenvm/chain"
	"github.com/ava-labs/specimenvm/codec"
	"github.com/ava-labs/specimenvm/consts"
	"github.com/ava-labs/specimenvm/event"
	"github.com/ava-labs/specimenvm/state"
	"github.com/ava-labs/specimenvm/storage"
)

var (
	ErrClaimTooLong  = errors.New("claim too long")
	ErrClaimExists   = errors.New("claim already exists")
	ErrClaimMissing  = errors.New("claim does not exist")
	ErrNotClaimOwner = errors.New("not the owner of the claim")
)

var (
	_ chain.Event = (*Created)(nil)
	_ chain.Event = (*Revoked)(nil)
	_ chain.Event = (*Transferred)(nil)
)

type Created struct {
	Owner codec.Address `json:"owner"`
	Claim []byte        `json:"claim"`
}

func (*Created) GetTypeID() uint8 {
	return consts.ClaimCreatedID
}

type Revoked struct {
	Owner codec.Address `json:"owner"`
	Claim []byte        `json:"claim"`
}

func (*Revoked) GetTypeID() uint8 {
	return consts.ClaimRevokedID
}

type Transferred struct {
	From  codec.Address `json:"from"`
	To    codec.Address `json:"to"`
	Claim []byte        `json:"claim"`
}

func (*Transferred) GetTypeID() uint8 {
	return consts.ClaimTransferredID
}

type Claims struct {
	maxLength int
}

func New(maxLength int) *Claims {
	return &Claims{maxLength: maxLength}
}

// Create binds [claim] to [caller] at the current height.
func (c *Claims) Create(
	ctx context.Context,
	mu state.Mutable,
	env chain.Env,
	caller codec.Address,
	claim []byte,
	events event.Emitter[chain.Event],
) error {
	if len(claim) > c.maxLength {
		return fmt.Errorf("%w: %d > %d", ErrClaimTooLong, len(claim), c.maxLength)
	}
	_, _, exists, err := storage.GetClaim(ctx, mu, claim)
	if err != nil {
		return err
	}
	if exists {
		return ErrClaimExists
	}
	if err := storage.SetClaim(ctx, mu, claim, caller, env.Height); err != nil {
		return err
	}
	events.Emit(&Created{Owner: caller, Claim: claim})
	return nil
}

func (c *Claims) Revoke(
	ctx context.Context,
	mu state.Mutable,
	caller codec.Address,
	claim []byte,
	events event.Emitter[chain.Event],
) error {
	if err := c.checkOwner(ctx, mu, caller, claim); err != nil {
		return err
	}
	if err := storage.DeleteClaim(ctx, mu, claim); err != nil {
		return err
	}
	events.Emit(&Revoked{Owner: caller, Claim: claim})
	return nil
}

// Transfer rebinds [claim] to [to] at the current height.
func (c *Claims) Transfer(
	ctx context.Context,
	mu state.Mutable,
	env chain.Env,
	caller codec.Address,
	claim []byte,
	to codec.Address,
	events event.Emitter[chain.Event],
) error {
	if err := c.checkOwner(ctx, mu, caller, claim); err != nil {
		return err
	}
	if err := storage.SetClaim(ctx, mu, claim, to, env.Height); err != nil {
		return err
	}
	events.Emit(&Transferred{From: caller, To: to, Claim: claim})
	return nil
}

// Get returns the owner of [claim] and the height it was last written at.
func (*Claims) Get(ctx context.Context, im state.Immutable, claim []byte) (codec.Address, uint64, bool, error) {
	return storage.GetClaim(ctx, im, claim)
}

func (*Claims) checkOwner(ctx context.Context, im state.Immutable, caller codec.Address, claim []byte) error {
	owner, _, exists, err := storage.GetClaim(ctx, im, claim)
	if err != nil {
		return err
	}
	if !exists {
		return ErrClaimMissing
	}
	if owner != caller {
		return fmt.Errorf("%w: owned by %s", ErrNotClaimOwner, owner)
	}
	return nil
}
