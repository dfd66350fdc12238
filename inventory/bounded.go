// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package inventory

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrInvalidCapacity  = errors.New("capacity must be greater than 0")
)

// Bounded is an insertion-ordered sequence that never holds more than
// [capacity] items. Appending to a full sequence fails instead of evicting.
//
// Bounded is not thread-safe and requires the caller synchronize usage.
type Bounded[T comparable] struct {
	items    []T
	capacity int
}

func New[T comparable](capacity int) (*Bounded[T], error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	return &Bounded[T]{
		items:    make([]T, 0, min(capacity, 16)),
		capacity: capacity,
	}, nil
}

// FromSlice wraps [items], failing if they already exceed [capacity].
func FromSlice[T comparable](items []T, capacity int) (*Bounded[T], error) {
	b, err := New[T](capacity)
	if err != nil {
		return nil, err
	}
	if len(items) > capacity {
		return nil, fmt.Errorf("%w: %d items with capacity %d", ErrCapacityExceeded, len(items), capacity)
	}
	b.items = append(b.items, items...)
	return b, nil
}

// TryPush appends [v] or returns [ErrCapacityExceeded] if the sequence is full.
func (b *Bounded[T]) TryPush(v T) error {
	if len(b.items) >= b.capacity {
		return fmt.Errorf("%w: capacity %d", ErrCapacityExceeded, b.capacity)
	}
	b.items = append(b.items, v)
	return nil
}

// Position returns the index of the first [v], if any.
func (b *Bounded[T]) Position(v T) (int, bool) {
	i := slices.Index(b.items, v)
	return i, i >= 0
}

func (b *Bounded[T]) Contains(v T) bool {
	return slices.Contains(b.items, v)
}

// RemoveAt removes the item at [i], keeping the order of the rest.
func (b *Bounded[T]) RemoveAt(i int) T {
	v := b.items[i]
	b.items = slices.Delete(b.items, i, i+1)
	return v
}

// Remove removes the first [v] and reports whether it was present.
func (b *Bounded[T]) Remove(v T) bool {
	i, ok := b.Position(v)
	if !ok {
		return false
	}
	b.RemoveAt(i)
	return true
}

func (b *Bounded[T]) Len() int {
	return len(b.items)
}

func (b *Bounded[T]) Cap() int {
	return b.capacity
}

func (b *Bounded[T]) Full() bool {
	return len(b.items) >= b.capacity
}

// Items returns a copy of the items, oldest first.
func (b *Bounded[T]) Items() []T {
	return slices.Clone(b.items)
}
