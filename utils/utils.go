// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/avalanchego/utils/perms"

	"github.com/ava-labs/specimenvm/codec"

	formatter "github.com/onsi/ginkgo/v2/formatter"
)

// NamedAddressType tags addresses derived from a human readable name.
const NamedAddressType uint8 = 0

var ErrInvalidSize = errors.New("invalid size")

func ToID(bytes []byte) ids.ID {
	return ids.ID(hashing.ComputeHash256Array(bytes))
}

// RandomID returns an id read from the system entropy source.
func RandomID() (ids.ID, error) {
	var id ids.ID
	if _, err := rand.Read(id[:]); err != nil {
		return ids.Empty, err
	}
	return id, nil
}

// AddressFromName derives a stable address for [name].
func AddressFromName(name string) codec.Address {
	return codec.CreateAddress(NamedAddressType, ToID([]byte(name)))
}

// ParseAddressOrName accepts either an encoded address or a name to derive an
// address from.
func ParseAddressOrName(s string) (codec.Address, error) {
	if addr, err := codec.ParseAddress(s); err == nil {
		return addr, nil
	}
	if len(strings.TrimSpace(s)) == 0 {
		return codec.EmptyAddress, errors.New("empty address")
	}
	return AddressFromName(s), nil
}

func InitSubDirectory(rootPath string, name string) (string, error) {
	p := path.Join(rootPath, name)
	return p, os.MkdirAll(p, perms.ReadWriteExecute)
}

// LoadBytes reads [filename] and checks it holds exactly [expectedSize] bytes
// (any size if [expectedSize] < 0).
func LoadBytes(filename string, expectedSize int) ([]byte, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if expectedSize != -1 && len(bytes) != expectedSize {
		return nil, ErrInvalidSize
	}
	return bytes, nil
}

// DecodeFileOrHex returns the bytes of [input] decoded as hex, falling back to
// the contents of the file it names.
func DecodeFileOrHex(input string) ([]byte, error) {
	if decoded, err := hex.DecodeString(strings.TrimPrefix(input, "0x")); err == nil {
		return decoded, nil
	}
	if contents, err := LoadBytes(input, -1); err == nil {
		return contents, nil
	}
	return nil, fmt.Errorf("unable to decode %q as hex, or read it as a file", input)
}

// Outf writes to stdout.
//
// e.g.,
//
//	Outf("{{green}}{{bold}}created %d{{/}}\n", id)
//	Outf("{{red}}rejected:{{/}} %v\n", err)
func Outf(format string, args ...interface{}) {
	s := formatter.F(format, args...)
	fmt.Fprint(formatter.ColorableStdOut, s)
}
