// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"slices"
	"sync"

	"github.com/ava-labs/avalanchego/utils/maybe"
	"golang.org/x/exp/maps"

	"github.com/ava-labs/specimenvm/state"
)

// TState defines a struct for storing temporary state.
//
// Changes only reach it through [TStateView.Commit], so a view that is
// dropped (or rolled back) leaves no trace.
type TState struct {
	l           sync.Mutex
	changedKeys map[string]maybe.Maybe[[]byte]
	ops         int
}

// New returns a new instance of TState.
//
// [changedSize] is an estimate of the number of keys that will be changed.
func New(changedSize int) *TState {
	return &TState{
		changedKeys: make(map[string]maybe.Maybe[[]byte], changedSize),
	}
}

func (ts *TState) getChangedValue(key string) ([]byte, bool, bool) {
	ts.l.Lock()
	defer ts.l.Unlock()

	if v, ok := ts.changedKeys[key]; ok {
		if v.IsNothing() {
			return nil, true, false
		}
		return v.Value(), true, true
	}
	return nil, false, false
}

// PendingChanges returns the number of keys changed by committed views.
func (ts *TState) PendingChanges() int {
	ts.l.Lock()
	defer ts.l.Unlock()

	return len(ts.changedKeys)
}

// OpIndex returns the number of operations committed to [ts].
func (ts *TState) OpIndex() int {
	ts.l.Lock()
	defer ts.l.Unlock()

	return ts.ops
}

// Export writes every committed change to [mu] in key order and returns the
// number of keys written.
//
// Once [Export] is called, [TState] should not be used again.
func (ts *TState) Export(ctx context.Context, mu state.Mutable) (int, error) {
	ts.l.Lock()
	defer ts.l.Unlock()

	changed := maps.Keys(ts.changedKeys)
	slices.Sort(changed)
	for _, k := range changed {
		v := ts.changedKeys[k]
		if v.IsNothing() {
			if err := mu.Remove(ctx, []byte(k)); err != nil {
				return 0, err
			}
			continue
		}
		if err := mu.Insert(ctx, []byte(k), v.Value()); err != nil {
			return 0, err
		}
	}
	return len(changed), nil
}
