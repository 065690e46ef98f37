package types

// Profile is the decoded player record returned for GET_PLAYER.
type Profile struct {
	Success             bool   `json:"success"`
	Username            string `json:"username"`
	CreationTimestampMs uint64 `json:"creation_timestamp_ms"`
	Team                int32  `json:"team"`
	MaxPokemonStorage   int32  `json:"max_pokemon_storage"`
	MaxItemStorage      int32  `json:"max_item_storage"`
}

// HatchedEggs is the decoded GET_HATCHED_EGGS response.
type HatchedEggs struct {
	Success           bool     `json:"success"`
	PokemonIDs        []uint64 `json:"pokemon_ids"`
	ExperienceAwarded []int32  `json:"experience_awarded"`
	CandyAwarded      []int32  `json:"candy_awarded"`
	StardustAwarded   []int32  `json:"stardust_awarded"`
}

// InventoryItem is one raw entry of an inventory delta. Data stays opaque.
type InventoryItem struct {
	ModifiedTimestampMs uint64 `json:"modified_timestamp_ms"`
	DeletedItemKey      []byte `json:"deleted_item_key,omitempty"`
	Data                []byte `json:"data,omitempty"`
}

// InventoryDelta is the decoded GET_INVENTORY response.
type InventoryDelta struct {
	Success             bool            `json:"success"`
	OriginalTimestampMs uint64          `json:"original_timestamp_ms"`
	NewTimestampMs      uint64          `json:"new_timestamp_ms"`
	Items               []InventoryItem `json:"items"`
}

// AwardedBadges is the decoded CHECK_AWARDED_BADGES response.
type AwardedBadges struct {
	Success bool    `json:"success"`
	Badges  []int32 `json:"badges"`
	Levels  []int32 `json:"levels"`
}

// Settings is the decoded DOWNLOAD_SETTINGS response. The settings body itself is
// kept opaque.
type Settings struct {
	Error string `json:"error,omitempty"`
	Hash  string `json:"hash"`
	Body  []byte `json:"body,omitempty"`
}
