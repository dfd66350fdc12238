// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"github.com/ava-labs/avalanchego/trace"

	"github.com/ava-labs/specimenvm/genesis"
	"github.com/ava-labs/specimenvm/state"
)

type Controller interface {
	Genesis() *genesis.Genesis
	Tracer() trace.Tracer
	State() state.Immutable
}
