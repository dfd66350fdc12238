// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import "github.com/ava-labs/specimenvm/chain"

var _ chain.Rules = (*Genesis)(nil)

func (g *Genesis) GetStakePrice() uint64 {
	return g.StakePrice
}

func (g *Genesis) GetMaxIdentifier() uint64 {
	return g.MaxIdentifier
}

func (g *Genesis) GetMaxOwned() int {
	return g.MaxOwned
}

func (g *Genesis) GetMaxClaimLength() int {
	return g.MaxClaimLength
}
