// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"github.com/ava-labs/specimenvm/codec"
	"github.com/ava-labs/specimenvm/consts"
	"github.com/ava-labs/specimenvm/genome"
	"github.com/ava-labs/specimenvm/storage"
)

var _ codec.Typed = (*SpecimenResult)(nil)

// SpecimenResult is returned by actions that mint a specimen.
type SpecimenResult struct {
	ID     storage.SpecimenID `json:"id"`
	Genome genome.Genome      `json:"genome"`
}

func (*SpecimenResult) GetTypeID() uint8 {
	return consts.SpecimenResultID
}

func (r *SpecimenResult) Marshal(p *codec.Packer) {
	p.PackInt(r.ID)
	p.PackFixedBytes(r.Genome[:])
}

func UnmarshalSpecimenResult(p *codec.Packer) (*SpecimenResult, error) {
	var r SpecimenResult
	r.ID = p.UnpackInt(false)
	copy(r.Genome[:], p.UnpackFixedBytes(consts.GenomeLen))
	return &r, p.Err()
}
