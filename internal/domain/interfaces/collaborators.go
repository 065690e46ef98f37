package interfaces

import domaintypes "pogo/internal/domain/types"

// Signer turns a serialised signature record into the final signed bytes. The
// algorithm is opaque to the session engine.
type Signer interface {
	Sign(record []byte) ([]byte, error)
}

// AuthSession is the already-authenticated identity a session runs as.
type AuthSession interface {
	AccessToken() string
	Provider() domaintypes.Provider
	// Signer returns nil when no signer is configured.
	Signer() Signer
}

// Location supplies the coordinates reported with every envelope.
type Location interface {
	Coordinates() domaintypes.Coordinates
	SetCoordinates(latitude, longitude float64)
	// IsNoop reports whether no real position is known. Signing is skipped then.
	IsNoop() bool
}

// InventoryView is the usable view over a raw inventory item list.
type InventoryView interface {
	Len() int
	Items() []domaintypes.InventoryItem
}

// InventoryViewFunc constructs an InventoryView from decoded delta items.
type InventoryViewFunc func(items []domaintypes.InventoryItem) InventoryView
