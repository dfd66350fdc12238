// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/specimenvm/consts"
)

func TestPackerRoundTrip(t *testing.T) {
	require := require.New(t)

	addr := CreateAddress(0, ids.GenerateTestID())
	id := ids.GenerateTestID()

	wp := NewWriter(64, consts.MaxInt)
	wp.PackByte(7)
	wp.PackBool(true)
	wp.PackInt(42)
	wp.PackUint64(1 << 40)
	wp.PackAddress(addr)
	wp.PackID(id)
	wp.PackBytes([]byte("claim"))
	require.NoError(wp.Err())

	rp := NewReader(wp.Bytes(), consts.MaxInt)
	require.Equal(byte(7), rp.UnpackByte())
	require.True(rp.UnpackBool())
	require.Equal(uint32(42), rp.UnpackInt(true))
	require.Equal(uint64(1<<40), rp.UnpackUint64(true))
	var unpackedAddr Address
	rp.UnpackAddress(&unpackedAddr)
	require.Equal(addr, unpackedAddr)
	var unpackedID ids.ID
	rp.UnpackID(true, &unpackedID)
	require.Equal(id, unpackedID)
	var b []byte
	rp.UnpackBytes(16, true, &b)
	require.Equal([]byte("claim"), b)
	require.True(rp.Empty())
	require.NoError(rp.Err())
}

func TestPackerLimits(t *testing.T) {
	require := require.New(t)

	wp := NewWriter(8, consts.MaxInt)
	wp.PackBytes([]byte("too long"))

	rp := NewReader(wp.Bytes(), consts.MaxInt)
	var b []byte
	rp.UnpackBytes(2, false, &b)
	require.ErrorIs(rp.Err(), ErrTooManyItems)
	require.Nil(b)

	rp = NewReader([]byte{0, 0, 0, 0}, consts.MaxInt)
	rp.UnpackInt(true)
	require.ErrorIs(rp.Err(), ErrFieldNotPopulated)

	var addr Address
	rp = NewReader(make([]byte, AddressLen), consts.MaxInt)
	rp.UnpackAddress(&addr)
	require.ErrorIs(rp.Err(), ErrFieldNotPopulated)

	// Writers refuse to exceed their limit
	wp = NewWriter(1, 1)
	wp.PackInt(1)
	require.Error(wp.Err())
}
