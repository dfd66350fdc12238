// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ledger keeps per-account free and reserved balances in state.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/specimenvm/codec"
	"github.com/ava-labs/specimenvm/state"
	"github.com/ava-labs/specimenvm/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBalanceOverflow     = errors.New("balance overflow")
)

// Ledger is a reservable balance ledger. A reservation moves funds from the
// free balance to the reserved balance of the same account; it is never
// spendable until unreserved.
type Ledger struct{}

func New() *Ledger {
	return &Ledger{}
}

// Balance returns the free and reserved balance of [addr].
func (*Ledger) Balance(ctx context.Context, im state.Immutable, addr codec.Address) (uint64, uint64, error) {
	return storage.GetBalance(ctx, im, addr)
}

// Deposit adds [amount] to the free balance of [addr].
func (*Ledger) Deposit(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) (uint64, error) {
	free, reserved, err := storage.GetBalance(ctx, mu, addr)
	if err != nil {
		return 0, err
	}
	nfree, err := smath.Add(free, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not add balance (bal=%d, addr=%s, amount=%d)",
			ErrBalanceOverflow,
			free,
			addr,
			amount,
		)
	}
	return nfree, storage.SetBalance(ctx, mu, addr, nfree, reserved)
}

// Withdraw removes [amount] from the free balance of [addr].
func (*Ledger) Withdraw(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) (uint64, error) {
	free, reserved, err := storage.GetBalance(ctx, mu, addr)
	if err != nil {
		return 0, err
	}
	nfree, err := smath.Sub(free, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not subtract balance (bal=%d, addr=%s, amount=%d)",
			ErrInsufficientBalance,
			free,
			addr,
			amount,
		)
	}
	return nfree, storage.SetBalance(ctx, mu, addr, nfree, reserved)
}

// CanReserve returns true if [addr] has at least [amount] free.
func (*Ledger) CanReserve(ctx context.Context, im state.Immutable, addr codec.Address, amount uint64) (bool, error) {
	free, _, err := storage.GetBalance(ctx, im, addr)
	if err != nil {
		return false, err
	}
	return free >= amount, nil
}

// Reserve moves [amount] from the free to the reserved balance of [addr].
func (*Ledger) Reserve(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) error {
	free, reserved, err := storage.GetBalance(ctx, mu, addr)
	if err != nil {
		return err
	}
	nfree, err := smath.Sub(free, amount)
	if err != nil {
		return fmt.Errorf(
			"%w: could not reserve (free=%d, addr=%s, amount=%d)",
			ErrInsufficientBalance,
			free,
			addr,
			amount,
		)
	}
	nreserved, err := smath.Add(reserved, amount)
	if err != nil {
		return fmt.Errorf("%w: reserved=%d amount=%d", ErrBalanceOverflow, reserved, amount)
	}
	return storage.SetBalance(ctx, mu, addr, nfree, nreserved)
}

// Unreserve moves up to [amount] from the reserved to the free balance of
// [addr] and returns the part of [amount] that was not reserved.
func (*Ledger) Unreserve(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) (uint64, error) {
	free, reserved, err := storage.GetBalance(ctx, mu, addr)
	if err != nil {
		return 0, err
	}
	actual := min(amount, reserved)
	nfree, err := smath.Add(free, actual)
	if err != nil {
		return 0, fmt.Errorf("%w: free=%d amount=%d", ErrBalanceOverflow, free, actual)
	}
	if err := storage.SetBalance(ctx, mu, addr, nfree, reserved-actual); err != nil {
		return 0, err
	}
	return amount - actual, nil
}
