// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"strings"

	"github.com/ava-labs/specimenvm/codec"
	"github.com/ava-labs/specimenvm/genesis"
	"github.com/ava-labs/specimenvm/genome"
	"github.com/ava-labs/specimenvm/requester"
	"github.com/ava-labs/specimenvm/storage"
)

type JSONRPCClient struct {
	requester *requester.EndpointRequester

	g *genesis.Genesis
}

// New creates a new client object.
func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += JSONRPCEndpoint
	req := requester.New(uri, Name)
	return &JSONRPCClient{requester: req}
}

func (cli *JSONRPCClient) Genesis(ctx context.Context) (*genesis.Genesis, error) {
	if cli.g != nil {
		return cli.g, nil
	}

	resp := new(GenesisReply)
	err := cli.requester.SendRequest(
		ctx,
		"genesis",
		nil,
		resp,
	)
	if err != nil {
		return nil, err
	}
	cli.g = resp.Genesis
	return resp.Genesis, nil
}

func (cli *JSONRPCClient) Specimen(ctx context.Context, id storage.SpecimenID) (genome.Genome, codec.Address, error) {
	resp := new(SpecimenReply)
	err := cli.requester.SendRequest(
		ctx,
		"specimen",
		&SpecimenArgs{ID: id},
		resp,
	)
	return resp.Genome, resp.Owner, err
}

func (cli *JSONRPCClient) Inventory(ctx context.Context, addr codec.Address) ([]storage.SpecimenID, error) {
	resp := new(InventoryReply)
	err := cli.requester.SendRequest(
		ctx,
		"inventory",
		&AddressArgs{Address: addr},
		resp,
	)
	return resp.IDs, err
}

// Balance returns the free and reserved balance of [addr].
func (cli *JSONRPCClient) Balance(ctx context.Context, addr codec.Address) (uint64, uint64, error) {
	resp := new(BalanceReply)
	err := cli.requester.SendRequest(
		ctx,
		"balance",
		&AddressArgs{Address: addr},
		resp,
	)
	return resp.Free, resp.Reserved, err
}

func (cli *JSONRPCClient) NextID(ctx context.Context) (storage.SpecimenID, error) {
	resp := new(NextIDReply)
	err := cli.requester.SendRequest(
		ctx,
		"nextID",
		nil,
		resp,
	)
	return resp.ID, err
}

func (cli *JSONRPCClient) Claim(ctx context.Context, claim []byte) (codec.Address, uint64, error) {
	resp := new(ClaimReply)
	err := cli.requester.SendRequest(
		ctx,
		"claim",
		&ClaimArgs{Claim: claim},
		resp,
	)
	return resp.Owner, resp.Height, err
}
