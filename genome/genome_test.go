// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genome

import (
	"encoding/json"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/specimenvm/codec"
)

func TestGenerateDeterministic(t *testing.T) {
	require := require.New(t)

	caller := codec.CreateAddress(0, ids.GenerateTestID())
	seed := ids.GenerateTestID()

	g1 := Generate(caller, seed, 0)
	require.Equal(g1, Generate(caller, seed, 0))
	require.NotEqual(Empty, g1)

	// Every input participates in the hash
	require.NotEqual(g1, Generate(caller, seed, 1))
	require.NotEqual(g1, Generate(caller, ids.GenerateTestID(), 0))
	require.NotEqual(g1, Generate(codec.CreateAddress(0, ids.GenerateTestID()), seed, 0))
}

func TestCombine(t *testing.T) {
	require := require.New(t)

	a := Genome{0xff, 0x0f, 0xaa}
	b := Genome{0x00, 0xf0, 0x55}
	mask := Genome{0xf0, 0xff, 0x0f}

	child := Combine(a, b, mask)
	require.Equal(byte(0xf0), child[0])
	require.Equal(byte(0x0f), child[1])
	require.Equal(byte(0x55&0xf0|0xaa&0x0f), child[2])
	for i := 3; i < len(child); i++ {
		require.Zero(child[i])
	}

	// Pure function
	require.Equal(child, Combine(a, b, mask))
}

func TestCombineLaw(t *testing.T) {
	require := require.New(t)

	caller := codec.CreateAddress(0, ids.GenerateTestID())
	a := Generate(caller, ids.GenerateTestID(), 0)
	b := Generate(caller, ids.GenerateTestID(), 1)
	mask := Generate(caller, ids.GenerateTestID(), 2)

	child := Combine(a, b, mask)
	for i := range child {
		require.Equal((a[i]&mask[i])|(b[i]&^mask[i]), child[i])
	}

	// A full mask selects [a], an empty one selects [b]
	var full Genome
	for i := range full {
		full[i] = 0xff
	}
	require.Equal(a, Combine(a, b, full))
	require.Equal(b, Combine(a, b, Empty))
}

func TestGenomeText(t *testing.T) {
	require := require.New(t)

	g := Generate(codec.EmptyAddress, ids.Empty, 0)
	b, err := json.Marshal(g)
	require.NoError(err)

	var parsed Genome
	require.NoError(json.Unmarshal(b, &parsed))
	require.Equal(g, parsed)

	require.ErrorIs(parsed.UnmarshalText([]byte("0x0102")), codec.ErrInsufficientLength)
}
