// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/specimenvm/codec"
	"github.com/ava-labs/specimenvm/state"
)

// Result describes a committed call. It is handed to subscriptions after the
// call's changes have been written to the store.
type Result struct {
	Env    Env
	Actor  codec.Address
	Action Action
	Output codec.Typed
	Events []Event

	// Keys touched by the call and the permissions it needed on them.
	StateKeys state.Keys
	Changes   int
}
