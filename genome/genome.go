// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package genome derives and combines the fixed-width genomes carried by
// specimens.
package genome

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ava-labs/avalanchego/ids"
	"golang.org/x/crypto/blake2b"

	"github.com/ava-labs/specimenvm/codec"
	"github.com/ava-labs/specimenvm/consts"
)

// Genome is an opaque trait vector. It carries no meaning beyond its bytes.
type Genome [consts.GenomeLen]byte

var Empty = Genome{}

const seedInputLen = consts.IDLen + codec.AddressLen + consts.Uint32Len

// Generate hashes (seed, caller, invocationIndex) into a genome. The same
// inputs always produce the same genome; the host is expected to supply a
// fresh seed and invocation index per call.
func Generate(caller codec.Address, seed ids.ID, invocationIndex uint32) Genome {
	input := make([]byte, 0, seedInputLen)
	input = append(input, seed[:]...)
	input = append(input, caller[:]...)
	input = binary.BigEndian.AppendUint32(input, invocationIndex)

	// blake2b only errors for invalid sizes or oversized keys
	h, err := blake2b.New(consts.GenomeLen, nil)
	if err != nil {
		panic(err)
	}
	_, _ = h.Write(input)

	var g Genome
	copy(g[:], h.Sum(nil))
	return g
}

// Combine takes each bit from [a] where [mask] is set and from [b] where it
// is not.
func Combine(a, b, mask Genome) Genome {
	var child Genome
	for i := range child {
		child[i] = (a[i] & mask[i]) | (b[i] &^ mask[i])
	}
	return child
}

func (g Genome) String() string {
	return "0x" + hex.EncodeToString(g[:])
}

func (g Genome) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Genome) UnmarshalText(input []byte) error {
	b, err := hex.DecodeString(strings.TrimPrefix(string(input), "0x"))
	if err != nil {
		return err
	}
	if len(b) != consts.GenomeLen {
		return fmt.Errorf("%w: expected %d bytes but got %d", codec.ErrInsufficientLength, consts.GenomeLen, len(b))
	}
	copy(g[:], b)
	return nil
}
