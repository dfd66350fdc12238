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

var _ chain.Action = (*CreateSpecimen)(nil)

// CreateSpecimen mints a specimen with a random genome for the actor.
type CreateSpecimen struct{}

func (*CreateSpecimen) GetTypeID() uint8 {
	return consts.CreateSpecimenID
}

func (*CreateSpecimen) Execute(
	ctx context.Context,
	rt chain.Runtime,
	mu state.Mutable,
	env chain.Env,
	actor codec.Address,
) (codec.Typed, error) {
	reg, err := NewRegistry(rt)
	if err != nil {
		return nil, err
	}
	id, g, err := reg.Create(ctx, mu, env, actor, rt)
	if err != nil {
		return nil, err
	}
	return &SpecimenResult{ID: id, Genome: g}, nil
}

func (*CreateSpecimen) Marshal(*codec.Packer) {}

func UnmarshalCreateSpecimen(*codec.Packer) (chain.Action, error) {
	return &CreateSpecimen{}, nil
}
