package types

// Credentials are what the CLI keeps on disk to start sessions.
type Credentials struct {
	Provider  Provider `json:"provider"`
	Token     string   `json:"token"`
	SignerKey []byte   `json:"signer_key,omitempty"`
}

// Snapshot is a non-secret summary of the last session, for display.
type Snapshot struct {
	Endpoint          string `json:"endpoint"`
	Phase             string `json:"phase"`
	TicketExpiresMs   uint64 `json:"ticket_expires_ms"`
	Username          string `json:"username,omitempty"`
	InventoryItems    int    `json:"inventory_items"`
	UpdatedUnixMillis int64  `json:"updated_unix_millis"`
}
