// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"

	"github.com/ava-labs/specimenvm/keys"
	"github.com/ava-labs/specimenvm/state"
)

const defaultOps = 4

var _ state.Mutable = (*TStateView)(nil)

type op struct {
	k string

	// pastV is the pending value of [k] before this op, only meaningful
	// if [pastChanged] is set.
	pastV       maybe.Maybe[[]byte]
	pastChanged bool
}

type TStateView struct {
	ts    *TState
	base  state.Immutable
	scope state.Scope

	pendingChangedKeys map[string]maybe.Maybe[[]byte]

	// Ops is a record of all operations performed on the view. Tracking
	// operations allows for reverting state to a certain point-in-time.
	ops []*op

	canAllocate bool
}

// NewView returns a view over [ts] that falls back to [base] for keys that
// have not been changed. Every access is checked against [scope].
func (ts *TState) NewView(scope state.Scope, base state.Immutable) *TStateView {
	return &TStateView{
		ts:    ts,
		base:  base,
		scope: scope,

		pendingChangedKeys: make(map[string]maybe.Maybe[[]byte], scope.Len()),

		ops: make([]*op, 0, defaultOps),

		canAllocate: true, // default to allowing allocation
	}
}

// Rollback restores the view to the ts.op[restorePoint] operation.
func (ts *TStateView) Rollback(_ context.Context, restorePoint int) {
	for i := len(ts.ops) - 1; i >= restorePoint; i-- {
		op := ts.ops[i]
		if !op.pastChanged {
			delete(ts.pendingChangedKeys, op.k)
			continue
		}
		ts.pendingChangedKeys[op.k] = op.pastV
	}
	ts.ops = ts.ops[:restorePoint]
}

// OpIndex returns the number of operations done on ts.
func (ts *TStateView) OpIndex() int {
	return len(ts.ops)
}

// DisableAllocation causes [Insert] to return an error if it would create
// a new key.
func (ts *TStateView) DisableAllocation() {
	ts.canAllocate = false
}

func (ts *TStateView) EnableAllocation() {
	ts.canAllocate = true
}

// GetValue returns the value associated with [key]. If [key] is not in
// scope [ErrInvalidKeyOrPermission] is returned, if it does not exist
// [database.ErrNotFound] is returned.
func (ts *TStateView) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	if !ts.scope.Has(key, state.Read) {
		return nil, ErrInvalidKeyOrPermission
	}
	v, exists, err := ts.getValue(ctx, string(key))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, database.ErrNotFound
	}
	return v, nil
}

func (ts *TStateView) getValue(ctx context.Context, key string) ([]byte, bool, error) {
	if v, ok := ts.pendingChangedKeys[key]; ok {
		if v.IsNothing() {
			return nil, false, nil
		}
		return v.Value(), true, nil
	}
	if v, changed, exists := ts.ts.getChangedValue(key); changed {
		return v, exists, nil
	}
	v, err := ts.base.GetValue(ctx, []byte(key))
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// Insert sets or updates [key] to [value].
//
// Any bytes passed into [Insert] will be consumed by [TState] and should
// not be modified/referenced after this call.
func (ts *TStateView) Insert(ctx context.Context, key []byte, value []byte) error {
	if !keys.VerifyValue(key, value) {
		return ErrInvalidKeyValue
	}
	k := string(key)
	_, exists, err := ts.getValue(ctx, k)
	if err != nil {
		return err
	}
	if exists {
		if !ts.scope.Has(key, state.Write) {
			return ErrInvalidKeyOrPermission
		}
	} else {
		if !ts.scope.Has(key, state.Allocate|state.Write) {
			return ErrInvalidKeyOrPermission
		}
		if !ts.canAllocate {
			return ErrAllocationDisabled
		}
	}
	ts.record(k)
	ts.pendingChangedKeys[k] = maybe.Some(value)
	return nil
}

// Remove deletes [key]. Removing a key that does not exist is a no-op.
func (ts *TStateView) Remove(ctx context.Context, key []byte) error {
	if !ts.scope.Has(key, state.Write) {
		return ErrInvalidKeyOrPermission
	}
	k := string(key)
	_, exists, err := ts.getValue(ctx, k)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	ts.record(k)
	ts.pendingChangedKeys[k] = maybe.Nothing[[]byte]()
	return nil
}

func (ts *TStateView) record(k string) {
	past, changed := ts.pendingChangedKeys[k]
	ts.ops = append(ts.ops, &op{
		k:           k,
		pastV:       past,
		pastChanged: changed,
	})
}

// PendingChanges returns the number of keys changed in the view.
func (ts *TStateView) PendingChanges() int {
	return len(ts.pendingChangedKeys)
}

// Commit moves all pending changes into the parent [TState].
func (ts *TStateView) Commit() {
	ts.ts.l.Lock()
	defer ts.ts.l.Unlock()

	for k, v := range ts.pendingChangedKeys {
		ts.ts.changedKeys[k] = v
	}
	ts.ts.ops += len(ts.ops)
}
