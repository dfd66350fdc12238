// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import "github.com/ava-labs/specimenvm/storage"

// MaxClaimSize bounds the claim accepted by any decoded action. Genesis
// may only lower it.
const MaxClaimSize = storage.MaxClaimLimit

// MaxActionSize bounds an encoded action.
const MaxActionSize = 2048
