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

var _ chain.Action = (*TransferSpecimen)(nil)

type TransferSpecimen struct {
	// ID is the specimen to move.
	ID storage.SpecimenID `json:"id"`

	// To receives the specimen and must be able to cover its stake.
	To codec.Address `json:"to"`
}

func (*TransferSpecimen) GetTypeID() uint8 {
	return consts.TransferSpecimenID
}

func (t *TransferSpecimen) Execute(
	ctx context.Context,
	rt chain.Runtime,
	mu state.Mutable,
	_ chain.Env,
	actor codec.Address,
) (codec.Typed, error) {
	reg, err := NewRegistry(rt)
	if err != nil {
		return nil, err
	}
	return nil, reg.Transfer(ctx, mu, actor, t.ID, t.To, rt)
}

func (t *TransferSpecimen) Marshal(p *codec.Packer) {
	p.PackInt(t.ID)
	p.PackAddress(t.To)
}

func UnmarshalTransferSpecimen(p *codec.Packer) (chain.Action, error) {
	var transfer TransferSpecimen
	transfer.ID = p.UnpackInt(false)
	p.UnpackAddress(&transfer.To)
	return &transfer, p.Err()
}
