// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"net/http"

	"github.com/ava-labs/specimenvm/codec"
	"github.com/ava-labs/specimenvm/genesis"
	"github.com/ava-labs/specimenvm/genome"
	"github.com/ava-labs/specimenvm/identifier"
	"github.com/ava-labs/specimenvm/storage"
)

type JSONRPCServer struct {
	c Controller
}

func NewJSONRPCServer(c Controller) *JSONRPCServer {
	return &JSONRPCServer{c}
}

type GenesisReply struct {
	Genesis *genesis.Genesis `json:"genesis"`
}

func (j *JSONRPCServer) Genesis(_ *http.Request, _ *struct{}, reply *GenesisReply) (err error) {
	reply.Genesis = j.c.Genesis()
	return nil
}

type SpecimenArgs struct {
	ID storage.SpecimenID `json:"id"`
}

type SpecimenReply struct {
	Genome genome.Genome `json:"genome"`
	Owner  codec.Address `json:"owner"`
	Listed bool          `json:"listed"`
	Price  uint64        `json:"price"`
}

func (j *JSONRPCServer) Specimen(req *http.Request, args *SpecimenArgs, reply *SpecimenReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.Specimen")
	defer span.End()

	im := j.c.State()
	g, exists, err := storage.GetSpecimen(ctx, im, args.ID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrSpecimenNotFound
	}
	owner, _, err := storage.GetOwner(ctx, im, args.ID)
	if err != nil {
		return err
	}
	price, listed, err := storage.GetListingPrice(ctx, im, args.ID)
	if err != nil {
		return err
	}
	reply.Genome = g
	reply.Owner = owner
	reply.Listed = listed
	reply.Price = price
	return nil
}

type AddressArgs struct {
	Address codec.Address `json:"address"`
}

type InventoryReply struct {
	IDs []storage.SpecimenID `json:"ids"`
}

func (j *JSONRPCServer) Inventory(req *http.Request, args *AddressArgs, reply *InventoryReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.Inventory")
	defer span.End()

	inv, err := storage.GetInventory(ctx, j.c.State(), args.Address)
	if err != nil {
		return err
	}
	reply.IDs = inv
	return nil
}

type BalanceReply struct {
	Free     uint64 `json:"free"`
	Reserved uint64 `json:"reserved"`
}

func (j *JSONRPCServer) Balance(req *http.Request, args *AddressArgs, reply *BalanceReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.Balance")
	defer span.End()

	free, reserved, err := storage.GetBalance(ctx, j.c.State(), args.Address)
	if err != nil {
		return err
	}
	reply.Free = free
	reply.Reserved = reserved
	return nil
}

type NextIDReply struct {
	ID storage.SpecimenID `json:"id"`
}

func (j *JSONRPCServer) NextID(req *http.Request, _ *struct{}, reply *NextIDReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.NextID")
	defer span.End()

	ids := identifier.New(storage.NextIDKey(), storage.SpecimenID(j.c.Genesis().MaxIdentifier))
	next, err := ids.Peek(ctx, j.c.State())
	if err != nil {
		return err
	}
	reply.ID = next
	return nil
}

type ClaimArgs struct {
	Claim []byte `json:"claim"`
}

type ClaimReply struct {
	Owner  codec.Address `json:"owner"`
	Height uint64        `json:"height"`
}

func (j *JSONRPCServer) Claim(req *http.Request, args *ClaimArgs, reply *ClaimReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.Claim")
	defer span.End()

	owner, height, exists, err := storage.GetClaim(ctx, j.c.State(), args.Claim)
	if err != nil {
		return err
	}
	if !exists {
		return ErrClaimNotFound
	}
	reply.Owner = owner
	reply.Height = height
	return nil
}
