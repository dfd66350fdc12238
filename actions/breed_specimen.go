// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/specimenvm/chain"
	"github.com/ava-labs/specimenvm/codec"
	"github.com/ava-labs/specimenvm/consts"
	"github.com/ava-labs/specimenvm/state"
	"github.com/ava-labs/specimenvm/storage"
)

var _ chain.Action = (*BreedSpecimen)(nil)

type BreedSpecimen struct {
	Parent1 storage.SpecimenID `json:"parent1"`
	Parent2 storage.SpecimenID `json:"parent2"`
}

func (*BreedSpecimen) GetTypeID() uint8 {
	return consts.BreedSpecimenID
}

func (b *BreedSpecimen) Execute(
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
	id, g, err := reg.Breed(ctx, mu, env, actor, b.Parent1, b.Parent2, rt)
	if err != nil {
		return nil, err
	}
	return &SpecimenResult{ID: id, Genome: g}, nil
}

func (b *BreedSpecimen) Marshal(p *codec.Packer) {
	p.PackInt(b.Parent1)
	p.PackInt(b.Parent2)
}

func UnmarshalBreedSpecimen(p *codec.Packer) (chain.Action, error) {
	var breed BreedSpecimen
	breed.Parent1 = p.UnpackInt(false)
	breed.Parent2 = p.UnpackInt(false)
	return &breed, p.Err()
}
