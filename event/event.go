// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package event

import (
	"context"
	"errors"
	"fmt"
)

var _ Subscription[struct{}] = SubscriptionFunc[struct{}]{}

// Subscription consumes the results of committed calls.
type Subscription[T any] interface {
	// Accept is called once per committed call, in commit order.
	Accept(ctx context.Context, t T) error
	Close() error
}

// SubscriptionFunc adapts plain functions to a [Subscription]. A nil CloseF
// is a no-op.
type SubscriptionFunc[T any] struct {
	AcceptF func(ctx context.Context, t T) error
	CloseF  func() error
}

func (s SubscriptionFunc[T]) Accept(ctx context.Context, t T) error {
	return s.AcceptF(ctx, t)
}

func (s SubscriptionFunc[_]) Close() error {
	if s.CloseF == nil {
		return nil
	}
	return s.CloseF()
}

// NotifyAll delivers [e] to every subscription, even after one fails.
func NotifyAll[T any](ctx context.Context, e T, subs ...Subscription[T]) error {
	var errs []error
	for i, sub := range subs {
		if err := sub.Accept(ctx, e); err != nil {
			errs = append(errs, fmt.Errorf("subscription %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// CloseAll closes every subscription and joins their errors.
func CloseAll[T any](subs ...Subscription[T]) error {
	errs := make([]error, 0, len(subs))
	for _, sub := range subs {
		errs = append(errs, sub.Close())
	}
	return errors.Join(errs...)
}
