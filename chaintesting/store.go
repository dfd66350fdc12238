// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaintesting

import (
	"context"
	"slices"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/specimenvm/state"
)

var _ state.Mutable = (*InMemoryStore)(nil)

// InMemoryStore is a storage that acts as a wrapper around a map and implements state.Mutable.
type InMemoryStore struct {
	Storage map[string][]byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		Storage: make(map[string][]byte),
	}
}

func (s *InMemoryStore) GetValue(_ context.Context, key []byte) ([]byte, error) {
	val, ok := s.Storage[string(key)]
	if !ok {
		return nil, database.ErrNotFound
	}
	return val, nil
}

func (s *InMemoryStore) Insert(_ context.Context, key []byte, value []byte) error {
	s.Storage[string(key)] = slices.Clone(value)
	return nil
}

func (s *InMemoryStore) Remove(_ context.Context, key []byte) error {
	delete(s.Storage, string(key))
	return nil
}

// Snapshot returns a deep copy of the stored values. Tests compare snapshots
// to assert a failed call left state untouched.
func (s *InMemoryStore) Snapshot() map[string][]byte {
	snapshot := make(map[string][]byte, len(s.Storage))
	for k, v := range s.Storage {
		snapshot[k] = slices.Clone(v)
	}
	return snapshot
}
