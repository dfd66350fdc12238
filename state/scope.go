// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import "golang.org/x/exp/maps"

var (
	_ Scope = (*DefaultScope)(nil)
	_ Scope = (*SimulatedScope)(nil)
)

// Scope decides which keys a view may touch and how.
type Scope interface {
	Has(key []byte, perm Permissions) bool
	Len() int
}

// DefaultScope only allows access to a fixed, declared set of keys.
type DefaultScope struct {
	keys Keys
}

func NewDefaultScope(keys Keys) *DefaultScope {
	return &DefaultScope{keys: keys}
}

func (d *DefaultScope) Has(key []byte, perm Permissions) bool {
	return d.keys[string(key)].Has(perm)
}

func (d *DefaultScope) Len() int {
	return len(d.keys)
}

// SimulatedScope allows every access and records what was requested. It is
// used when the keys a call touches cannot be known before it runs (the id
// assigned by a create depends on the counter it reads).
type SimulatedScope struct {
	keys Keys
}

func NewSimulatedScope() *SimulatedScope {
	return &SimulatedScope{keys: make(Keys)}
}

func (d *SimulatedScope) Has(key []byte, perm Permissions) bool {
	d.keys.Add(string(key), perm)
	return true
}

func (d *SimulatedScope) Len() int {
	return len(d.keys)
}

// StateKeys returns a copy of every key accessed so far.
func (d *SimulatedScope) StateKeys() Keys {
	return maps.Clone(d.keys)
}

// Flush clears the keys in the scope
func (d *SimulatedScope) Flush() {
	clear(d.keys)
}
