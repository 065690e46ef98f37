package domain

import (
	interfaces "pogo/internal/domain/interfaces"
	types "pogo/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	RequestType      = types.RequestType
	StatusCode       = types.StatusCode
	Coordinates      = types.Coordinates
	Provider         = types.Provider
	Phase            = types.Phase
	AuthTicket       = types.AuthTicket
	AuthInfo         = types.AuthInfo
	Credential       = types.Credential
	Unauthenticated  = types.Unauthenticated
	Authenticated    = types.Authenticated
	SubRequest       = types.SubRequest
	RequestBatch     = types.RequestBatch
	RequestEnvelope  = types.RequestEnvelope
	ResponseEnvelope = types.ResponseEnvelope
	SignatureRecord  = types.SignatureRecord
	Profile          = types.Profile
	HatchedEggs      = types.HatchedEggs
	InventoryItem    = types.InventoryItem
	InventoryDelta   = types.InventoryDelta
	AwardedBadges    = types.AwardedBadges
	Settings         = types.Settings
	Credentials      = types.Credentials
	Snapshot         = types.Snapshot
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Signer            = interfaces.Signer
	AuthSession       = interfaces.AuthSession
	Location          = interfaces.Location
	InventoryView     = interfaces.InventoryView
	InventoryViewFunc = interfaces.InventoryViewFunc
	Transport         = interfaces.Transport
	CredentialStore   = interfaces.CredentialStore
	SnapshotStore     = interfaces.SnapshotStore
)

// Re-exported constants.
const (
	RequestTypeGetPlayer          = types.RequestTypeGetPlayer
	RequestTypeGetInventory       = types.RequestTypeGetInventory
	RequestTypeDownloadSettings   = types.RequestTypeDownloadSettings
	RequestTypeGetMapObjects      = types.RequestTypeGetMapObjects
	RequestTypeGetHatchedEggs     = types.RequestTypeGetHatchedEggs
	RequestTypeCheckAwardedBadges = types.RequestTypeCheckAwardedBadges

	StatusUnknown        = types.StatusUnknown
	StatusOK             = types.StatusOK
	StatusOKWithEndpoint = types.StatusOKWithEndpoint
	StatusBadRequest     = types.StatusBadRequest
	StatusRateLimited    = types.StatusRateLimited
	StatusRedirect       = types.StatusRedirect

	ProviderGoogle = types.ProviderGoogle
	ProviderPTC    = types.ProviderPTC

	PhaseFresh            = types.PhaseFresh
	PhaseBootstrapping    = types.PhaseBootstrapping
	PhaseAuthenticated    = types.PhaseAuthenticated
	PhaseEndpointMigrated = types.PhaseEndpointMigrated
	PhaseDegraded         = types.PhaseDegraded
)
