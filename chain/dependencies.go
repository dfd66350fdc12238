// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/specimenvm/codec"
	"github.com/ava-labs/specimenvm/event"
	"github.com/ava-labs/specimenvm/state"
)

// Env is the per-call execution environment supplied by the host.
//
// [Seed] is unpredictable entropy and [InvocationIndex] advances with every
// call, so two committed calls never observe the same pair. Hosts that
// restart resume the index from their persisted progress.
type Env struct {
	Seed            ids.ID `json:"seed"`
	InvocationIndex uint32 `json:"invocationIndex"`
	Height          uint64 `json:"height"`
}

// Rules are the chain parameters actions execute against.
type Rules interface {
	GetStakePrice() uint64
	GetMaxIdentifier() uint64
	GetMaxOwned() int
	GetMaxClaimLength() int
}

// Event is emitted by an action and delivered only if its call commits.
type Event interface {
	codec.Typed
}

// Runtime is what an executing action is given access to besides state.
type Runtime interface {
	event.Emitter[Event]

	Rules() Rules
	Logger() logging.Logger
}

type Action interface {
	codec.Typed

	// Marshal writes the action's fields. The type ID is written by the
	// caller.
	Marshal(p *codec.Packer)

	// Execute applies the action to [mu]. If Execute returns an error, every
	// change it made to [mu] and every event it emitted is discarded.
	Execute(
		ctx context.Context,
		rt Runtime,
		mu state.Mutable,
		env Env,
		actor codec.Address,
	) (codec.Typed, error)
}
