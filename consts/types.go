// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	// Action TypeIDs
	CreateSpecimenID uint8 = iota
	BreedSpecimenID
	TransferSpecimenID
	CreateClaimID
	RevokeClaimID
	TransferClaimID
)

const (
	// Event TypeIDs
	SpecimenCreatedID uint8 = iota
	SpecimenTransferredID
	ClaimCreatedID
	ClaimRevokedID
	ClaimTransferredID
)

const (
	// Output TypeIDs
	SpecimenResultID uint8 = iota
)
