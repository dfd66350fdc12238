// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/ava-labs/specimenvm/chain"
	"github.com/ava-labs/specimenvm/codec"
)

// Parser decodes every action of the VM.
type Parser struct {
	actions *codec.TypeParser[chain.Action]
}

func NewParser() (*Parser, error) {
	actions := codec.NewTypeParser[chain.Action]()
	errs := &wrappers.Errs{}
	errs.Add(
		actions.Register(&CreateSpecimen{}, UnmarshalCreateSpecimen),
		actions.Register(&BreedSpecimen{}, UnmarshalBreedSpecimen),
		actions.Register(&TransferSpecimen{}, UnmarshalTransferSpecimen),
		actions.Register(&CreateClaim{}, UnmarshalCreateClaim),
		actions.Register(&RevokeClaim{}, UnmarshalRevokeClaim),
		actions.Register(&TransferClaim{}, UnmarshalTransferClaim),
	)
	if errs.Errored() {
		return nil, errs.Err
	}
	return &Parser{actions: actions}, nil
}

func (p *Parser) Unmarshal(b []byte) (chain.Action, error) {
	return p.actions.Unmarshal(b, MaxActionSize)
}

func Marshal(a chain.Action) ([]byte, error) {
	return codec.MarshalTyped(a, MaxActionSize)
}
