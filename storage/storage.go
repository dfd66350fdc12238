// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/specimenvm/codec"
	"github.com/ava-labs/specimenvm/consts"
	"github.com/ava-labs/specimenvm/genome"
	"github.com/ava-labs/specimenvm/keys"
	"github.com/ava-labs/specimenvm/state"
)

// State
// 0x0/ (balance)
//   -> [address] => free|reserved
// 0x1/ (next specimen id)
//   -> counter
// 0x2/ (specimens)
//   -> [id] => genome
// 0x3/ (owners)
//   -> [id] => address
// 0x4/ (inventories)
//   -> [address] => count|id...
// 0x5/ (listing prices)
//   -> [id] => price
// 0x6/ (claims)
//   -> [claim] => owner|height
// 0x7/ (height)
//   -> height

const (
	balancePrefix byte = iota
	nextIDPrefix
	specimenPrefix
	ownerPrefix
	inventoryPrefix
	listingPrefix
	claimPrefix
	heightPrefix
)

const (
	BalanceChunks   uint16 = 1
	CounterChunks   uint16 = 1
	SpecimenChunks  uint16 = 1
	OwnerChunks     uint16 = 1
	InventoryChunks uint16 = 16
	ListingChunks   uint16 = 1
	ClaimChunks     uint16 = 1

	// MaxOwnedLimit is the largest inventory that fits in [InventoryChunks].
	MaxOwnedLimit = (int(InventoryChunks)*64 - 1 - consts.Uint16Len) / consts.Uint32Len

	// MaxClaimLimit is the longest claim that may be used as a key.
	MaxClaimLimit = 1024

	balanceLen = 2 * consts.Uint64Len
	claimLen   = codec.AddressLen + consts.Uint64Len
)

// SpecimenID identifies a specimen. Ids are issued from 0 and never reused.
type SpecimenID = uint32

var (
	nextIDKey = keys.EncodeChunks([]byte{nextIDPrefix}, CounterChunks)
	heightKey = keys.EncodeChunks([]byte{heightPrefix}, CounterChunks)
)

// [balancePrefix] + [address]
func BalanceKey(addr codec.Address) (k []byte) {
	k = make([]byte, 1+codec.AddressLen+consts.Uint16Len)
	k[0] = balancePrefix
	copy(k[1:], addr[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen:], BalanceChunks)
	return
}

// GetBalance returns the free and reserved balance of [addr]. Missing
// accounts have zero balances.
func GetBalance(
	ctx context.Context,
	im state.Immutable,
	addr codec.Address,
) (uint64, uint64, error) {
	return innerGetBalance(im.GetValue(ctx, BalanceKey(addr)))
}

func innerGetBalance(v []byte, err error) (uint64, uint64, error) {
	if errors.Is(err, database.ErrNotFound) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, err
	}
	if len(v) != balanceLen {
		return 0, 0, fmt.Errorf("%w: balance has %d bytes", ErrInvalidValue, len(v))
	}
	return binary.BigEndian.Uint64(v), binary.BigEndian.Uint64(v[consts.Uint64Len:]), nil
}

func SetBalance(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	free uint64,
	reserved uint64,
) error {
	k := BalanceKey(addr)
	if free == 0 && reserved == 0 {
		// If there is no balance left, we should delete the record instead of
		// setting it to 0.
		return mu.Remove(ctx, k)
	}
	v := make([]byte, balanceLen)
	binary.BigEndian.PutUint64(v, free)
	binary.BigEndian.PutUint64(v[consts.Uint64Len:], reserved)
	return mu.Insert(ctx, k, v)
}

// NextIDKey is the key of the specimen id counter.
func NextIDKey() []byte {
	return nextIDKey
}

func idKey(prefix byte, id SpecimenID, chunks uint16) (k []byte) {
	k = make([]byte, 1+consts.Uint32Len+consts.Uint16Len)
	k[0] = prefix
	binary.BigEndian.PutUint32(k[1:], id)
	binary.BigEndian.PutUint16(k[1+consts.Uint32Len:], chunks)
	return
}

// [specimenPrefix] + [id]
func SpecimenKey(id SpecimenID) []byte {
	return idKey(specimenPrefix, id, SpecimenChunks)
}

func GetSpecimen(
	ctx context.Context,
	im state.Immutable,
	id SpecimenID,
) (genome.Genome, bool, error) {
	v, err := im.GetValue(ctx, SpecimenKey(id))
	if errors.Is(err, database.ErrNotFound) {
		return genome.Empty, false, nil
	}
	if err != nil {
		return genome.Empty, false, err
	}
	if len(v) != consts.GenomeLen {
		return genome.Empty, false, fmt.Errorf("%w: genome has %d bytes", ErrInvalidValue, len(v))
	}
	return genome.Genome(v), true, nil
}

func SetSpecimen(
	ctx context.Context,
	mu state.Mutable,
	id SpecimenID,
	g genome.Genome,
) error {
	return mu.Insert(ctx, SpecimenKey(id), g[:])
}

// [ownerPrefix] + [id]
func OwnerKey(id SpecimenID) []byte {
	return idKey(ownerPrefix, id, OwnerChunks)
}

func GetOwner(
	ctx context.Context,
	im state.Immutable,
	id SpecimenID,
) (codec.Address, bool, error) {
	v, err := im.GetValue(ctx, OwnerKey(id))
	if errors.Is(err, database.ErrNotFound) {
		return codec.EmptyAddress, false, nil
	}
	if err != nil {
		return codec.EmptyAddress, false, err
	}
	if len(v) != codec.AddressLen {
		return codec.EmptyAddress, false, fmt.Errorf("%w: owner has %d bytes", ErrInvalidValue, len(v))
	}
	return codec.Address(v), true, nil
}

func SetOwner(
	ctx context.Context,
	mu state.Mutable,
	id SpecimenID,
	owner codec.Address,
) error {
	return mu.Insert(ctx, OwnerKey(id), owner[:])
}

// [inventoryPrefix] + [address]
func InventoryKey(addr codec.Address) (k []byte) {
	k = make([]byte, 1+codec.AddressLen+consts.Uint16Len)
	k[0] = inventoryPrefix
	copy(k[1:], addr[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen:], InventoryChunks)
	return
}

// GetInventory returns the ids owned by [addr] in insertion order.
func GetInventory(
	ctx context.Context,
	im state.Immutable,
	addr codec.Address,
) ([]SpecimenID, error) {
	v, err := im.GetValue(ctx, InventoryKey(addr))
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(v) < consts.Uint16Len {
		return nil, fmt.Errorf("%w: inventory has %d bytes", ErrInvalidValue, len(v))
	}
	count := int(binary.BigEndian.Uint16(v))
	if len(v) != consts.Uint16Len+count*consts.Uint32Len {
		return nil, fmt.Errorf("%w: inventory of %d ids has %d bytes", ErrInvalidValue, count, len(v))
	}
	owned := make([]SpecimenID, count)
	for i := range owned {
		owned[i] = binary.BigEndian.Uint32(v[consts.Uint16Len+i*consts.Uint32Len:])
	}
	return owned, nil
}

func SetInventory(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	owned []SpecimenID,
) error {
	k := InventoryKey(addr)
	if len(owned) == 0 {
		return mu.Remove(ctx, k)
	}
	if len(owned) > MaxOwnedLimit {
		return fmt.Errorf("%w: %d ids", ErrInventoryTooLong, len(owned))
	}
	v := make([]byte, consts.Uint16Len, consts.Uint16Len+len(owned)*consts.Uint32Len)
	binary.BigEndian.PutUint16(v, uint16(len(owned)))
	for _, id := range owned {
		v = binary.BigEndian.AppendUint32(v, id)
	}
	return mu.Insert(ctx, k, v)
}

// [listingPrefix] + [id]
func ListingKey(id SpecimenID) []byte {
	return idKey(listingPrefix, id, ListingChunks)
}

// GetListingPrice returns the asking price of [id] and whether one is set.
func GetListingPrice(
	ctx context.Context,
	im state.Immutable,
	id SpecimenID,
) (uint64, bool, error) {
	v, err := im.GetValue(ctx, ListingKey(id))
	if errors.Is(err, database.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if len(v) != consts.Uint64Len {
		return 0, false, fmt.Errorf("%w: listing has %d bytes", ErrInvalidValue, len(v))
	}
	return binary.BigEndian.Uint64(v), true, nil
}

func SetListingPrice(
	ctx context.Context,
	mu state.Mutable,
	id SpecimenID,
	price uint64,
) error {
	return mu.Insert(ctx, ListingKey(id), binary.BigEndian.AppendUint64(nil, price))
}

func ClearListingPrice(
	ctx context.Context,
	mu state.Mutable,
	id SpecimenID,
) error {
	return mu.Remove(ctx, ListingKey(id))
}

// [claimPrefix] + [claim]
func ClaimKey(claim []byte) (k []byte) {
	k = make([]byte, 1+len(claim)+consts.Uint16Len)
	k[0] = claimPrefix
	copy(k[1:], claim)
	binary.BigEndian.PutUint16(k[1+len(claim):], ClaimChunks)
	return
}

// GetClaim returns the owner of [claim] and the height it was last
// written at.
func GetClaim(
	ctx context.Context,
	im state.Immutable,
	claim []byte,
) (codec.Address, uint64, bool, error) {
	v, err := im.GetValue(ctx, ClaimKey(claim))
	if errors.Is(err, database.ErrNotFound) {
		return codec.EmptyAddress, 0, false, nil
	}
	if err != nil {
		return codec.EmptyAddress, 0, false, err
	}
	if len(v) != claimLen {
		return codec.EmptyAddress, 0, false, fmt.Errorf("%w: claim has %d bytes", ErrInvalidValue, len(v))
	}
	return codec.Address(v[:codec.AddressLen]), binary.BigEndian.Uint64(v[codec.AddressLen:]), true, nil
}

func SetClaim(
	ctx context.Context,
	mu state.Mutable,
	claim []byte,
	owner codec.Address,
	height uint64,
) error {
	v := make([]byte, claimLen)
	copy(v, owner[:])
	binary.BigEndian.PutUint64(v[codec.AddressLen:], height)
	return mu.Insert(ctx, ClaimKey(claim), v)
}

func DeleteClaim(
	ctx context.Context,
	mu state.Mutable,
	claim []byte,
) error {
	return mu.Remove(ctx, ClaimKey(claim))
}

func HeightKey() []byte {
	return heightKey
}

// GetHeight returns the number of calls committed by the local host. The
// second return value is false if the store was never initialized.
func GetHeight(
	ctx context.Context,
	im state.Immutable,
) (uint64, bool, error) {
	v, err := im.GetValue(ctx, heightKey)
	if errors.Is(err, database.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if len(v) != consts.Uint64Len {
		return 0, false, fmt.Errorf("%w: height has %d bytes", ErrInvalidValue, len(v))
	}
	return binary.BigEndian.Uint64(v), true, nil
}

func SetHeight(
	ctx context.Context,
	mu state.Mutable,
	height uint64,
) error {
	return mu.Insert(ctx, heightKey, binary.BigEndian.AppendUint64(nil, height))
}
