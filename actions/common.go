// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"github.com/ava-labs/specimenvm/chain"
	"github.com/ava-labs/specimenvm/claims"
	"github.com/ava-labs/specimenvm/identifier"
	"github.com/ava-labs/specimenvm/ledger"
	"github.com/ava-labs/specimenvm/registry"
	"github.com/ava-labs/specimenvm/stake"
	"github.com/ava-labs/specimenvm/storage"
)

// NewRegistry builds the registry described by the runtime's rules on top
// of the state ledger.
func NewRegistry(rt chain.Runtime) (*registry.Registry, error) {
	r := rt.Rules()
	maxIdentifier, err := identifier.Narrow[storage.SpecimenID](r.GetMaxIdentifier())
	if err != nil {
		return nil, err
	}
	coordinator := stake.NewCoordinator(rt.Logger(), ledger.New(), r.GetStakePrice())
	return registry.New(coordinator, maxIdentifier, r.GetMaxOwned()), nil
}

func NewClaims(rt chain.Runtime) *claims.Claims {
	return claims.New(rt.Rules().GetMaxClaimLength())
}
