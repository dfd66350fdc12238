// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package event

// Emitter accepts events produced while a call executes.
type Emitter[T any] interface {
	Emit(T)
}

// Recorder buffers events for a single call. Events are only handed to
// subscribers once the call's state changes are committed; a failed call
// drops its recorder.
type Recorder[T any] struct {
	events []T
}

func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{}
}

func (r *Recorder[T]) Emit(e T) {
	r.events = append(r.events, e)
}

// Events returns the events recorded so far, in emission order.
func (r *Recorder[T]) Events() []T {
	return r.events
}

func (r *Recorder[T]) Len() int {
	return len(r.events)
}

// Reset clears the recorder so it can be reused.
func (r *Recorder[T]) Reset() {
	clear(r.events)
	r.events = r.events[:0]
}
