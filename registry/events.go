// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"github.com/ava-labs/specimenvm/chain"
	"github.com/ava-labs/specimenvm/codec"
	"github.com/ava-labs/specimenvm/consts"
	"github.com/ava-labs/specimenvm/genome"
	"github.com/ava-labs/specimenvm/storage"
)

var (
	_ chain.Event = (*Created)(nil)
	_ chain.Event = (*Transferred)(nil)
)

// Created is emitted by create and breed.
type Created struct {
	Owner  codec.Address      `json:"owner"`
	ID     storage.SpecimenID `json:"id"`
	Genome genome.Genome      `json:"genome"`
}

func (*Created) GetTypeID() uint8 {
	return consts.SpecimenCreatedID
}

type Transferred struct {
	From codec.Address      `json:"from"`
	To   codec.Address      `json:"to"`
	ID   storage.SpecimenID `json:"id"`
}

func (*Transferred) GetTypeID() uint8 {
	return consts.SpecimenTransferredID
}
