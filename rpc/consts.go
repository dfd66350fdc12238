// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import "github.com/ava-labs/specimenvm/consts"

const (
	Name            = consts.Name
	JSONRPCEndpoint = "/specimenapi"
)
