// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stake

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/specimenvm/codec"
	"github.com/ava-labs/specimenvm/ledger"
	"github.com/ava-labs/specimenvm/state"
)

var ErrInsufficientBalance = errors.New("insufficient balance to stake")

// Ledger is the balance ledger stakes are reserved against. Reserve must
// return an error wrapping [ledger.ErrInsufficientBalance] when [addr]
// cannot cover [amount].
type Ledger interface {
	Reserve(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) error
	Unreserve(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) (uint64, error)
}

var _ Ledger = (*ledger.Ledger)(nil)

// Coordinator reserves and releases the fixed stake held for every owned
// specimen.
type Coordinator struct {
	log    logging.Logger
	ledger Ledger
	price  uint64
}

func NewCoordinator(log logging.Logger, l Ledger, price uint64) *Coordinator {
	return &Coordinator{
		log:    log,
		ledger: l,
		price:  price,
	}
}

// Price is the stake held per specimen.
func (c *Coordinator) Price() uint64 {
	return c.price
}

// Reserve locks [amount] of [addr]'s balance.
func (c *Coordinator) Reserve(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) error {
	err := c.ledger.Reserve(ctx, mu, addr, amount)
	if errors.Is(err, ledger.ErrInsufficientBalance) {
		return fmt.Errorf("%w: addr=%s amount=%d", ErrInsufficientBalance, addr, amount)
	}
	return err
}

// Release unlocks [amount] of [addr]'s balance. Releasing more than is
// reserved is the ledger's concern; the shortfall is only logged.
func (c *Coordinator) Release(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) error {
	shortfall, err := c.ledger.Unreserve(ctx, mu, addr, amount)
	if err != nil {
		return err
	}
	if shortfall > 0 {
		c.log.Warn("released more stake than reserved",
			zap.Stringer("addr", addr),
			zap.Uint64("amount", amount),
			zap.Uint64("shortfall", shortfall),
		)
	}
	return nil
}
