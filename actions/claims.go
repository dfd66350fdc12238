// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/specimenvm/chain"
	"github.com/ava-labs/specimenvm/codec"
	"github.com/ava-labs/specimenvm/consts"
	"github.com/ava-labs/specimenvm/state"
)

var (
	_ chain.Action = (*CreateClaim)(nil)
	_ chain.Action = (*RevokeClaim)(nil)
	_ chain.Action = (*TransferClaim)(nil)
)

type CreateClaim struct {
	Claim []byte `json:"claim"`
}

func (*CreateClaim) GetTypeID() uint8 {
	return consts.CreateClaimID
}

func (c *CreateClaim) Execute(
	ctx context.Context,
	rt chain.Runtime,
	mu state.Mutable,
	env chain.Env,
	actor codec.Address,
) (codec.Typed, error) {
	return nil, NewClaims(rt).Create(ctx, mu, env, actor, c.Claim, rt)
}

func (c *CreateClaim) Marshal(p *codec.Packer) {
	p.PackBytes(c.Claim)
}

func UnmarshalCreateClaim(p *codec.Packer) (chain.Action, error) {
	var create CreateClaim
	p.UnpackBytes(MaxClaimSize, false, &create.Claim)
	return &create, p.Err()
}

type RevokeClaim struct {
	Claim []byte `json:"claim"`
}

func (*RevokeClaim) GetTypeID() uint8 {
	return consts.RevokeClaimID
}

func (r *RevokeClaim) Execute(
	ctx context.Context,
	rt chain.Runtime,
	mu state.Mutable,
	_ chain.Env,
	actor codec.Address,
) (codec.Typed, error) {
	return nil, NewClaims(rt).Revoke(ctx, mu, actor, r.Claim, rt)
}

func (r *RevokeClaim) Marshal(p *codec.Packer) {
	p.PackBytes(r.Claim)
}

func UnmarshalRevokeClaim(p *codec.Packer) (chain.Action, error) {
	var revoke RevokeClaim
	p.UnpackBytes(MaxClaimSize, false, &revoke.Claim)
	return &revoke, p.Err()
}

type TransferClaim struct {
	Claim []byte        `json:"claim"`
	To    codec.Address `json:"to"`
}

func (*TransferClaim) GetTypeID() uint8 {
	return consts.TransferClaimID
}

func (t *TransferClaim) Execute(
	ctx context.Context,
	rt chain.Runtime,
	mu state.Mutable,
	env chain.Env,
	actor codec.Address,
) (codec.Typed, error) {
	return nil, NewClaims(rt).Transfer(ctx, mu, env, actor, t.Claim, t.To, rt)
}

func (t *TransferClaim) Marshal(p *codec.Packer) {
	p.PackBytes(t.Claim)
	p.PackAddress(t.To)
}

func UnmarshalTransferClaim(p *codec.Packer) (chain.Action, error) {
	var transfer TransferClaim
	p.UnpackBytes(MaxClaimSize, false, &transfer.Claim)
	p.UnpackAddress(&transfer.To)
	return &transfer, p.Err()
}
