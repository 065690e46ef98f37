package payload

import (
	"fmt"

	"pogo/internal/domain"
	"pogo/internal/protocol/wirefmt"
)

// DefaultSettingsHash is the settings version the client reports it already has.
const DefaultSettingsHash = "4a2e9bc330dae60e7b74fc85b98868ab4700802e"

// GetInventoryRequest encodes the GET_INVENTORY payload for changes since
// lastTimestampMs (0 asks for the full inventory).
func GetInventoryRequest(lastTimestampMs int64) []byte {
	return wirefmt.AppendInt64(nil, 1, lastTimestampMs)
}

// DownloadSettingsRequest encodes the DOWNLOAD_SETTINGS payload.
func DownloadSettingsRequest(hash string) []byte {
	return wirefmt.AppendString(nil, 1, hash)
}

// DecodeProfile decodes a GET_PLAYER response.
func DecodeProfile(b []byte) (domain.Profile, error) {
	var p domain.Profile
	err := wirefmt.Walk(b, func(f wirefmt.Field) error {
		switch {
		case f.Num == 1 && f.IsVarint():
			p.Success = f.Bool()
		case f.Num == 2 && f.IsBytes():
			return wirefmt.Walk(f.Message(), func(pf wirefmt.Field) error {
				switch {
				case pf.Num == 1 && pf.IsVarint():
					p.CreationTimestampMs = pf.Uint64()
				case pf.Num == 2 && pf.IsBytes():
					p.Username = pf.String()
				case pf.Num == 5 && pf.IsVarint():
					p.Team = pf.Int32()
				case pf.Num == 7 && pf.IsVarint():
					p.MaxPokemonStorage = pf.Int32()
				case pf.Num == 8 && pf.IsVarint():
					p.MaxItemStorage = pf.Int32()
				}
				return nil
			})
		}
		return nil
	})
	if err != nil {
		return domain.Profile{}, fmt.Errorf("profile: %w", err)
	}
	return p, nil
}

// EncodeProfile is the inverse of DecodeProfile.
func EncodeProfile(p domain.Profile) []byte {
	var data []byte
	data = wirefmt.AppendVarint(data, 1, p.CreationTimestampMs)
	data = wirefmt.AppendString(data, 2, p.Username)
	data = wirefmt.AppendInt64(data, 5, int64(p.Team))
	data = wirefmt.AppendInt64(data, 7, int64(p.MaxPokemonStorage))
	data = wirefmt.AppendInt64(data, 8, int64(p.MaxItemStorage))

	var b []byte
	b = wirefmt.AppendBool(b, 1, p.Success)
	b = wirefmt.AppendMessage(b, 2, data)
	return b
}

// DecodeHatchedEggs decodes a GET_HATCHED_EGGS response.
func DecodeHatchedEggs(b []byte) (domain.HatchedEggs, error) {
	var e domain.HatchedEggs
	err := wirefmt.Walk(b, func(f wirefmt.Field) error {
		var err error
		var ints []int32
		switch f.Num {
		case 1:
			e.Success = f.Bool()
		case 2:
			var ids []uint64
			ids, err = f.Fixed64s()
			e.PokemonIDs = append(e.PokemonIDs, ids...)
		case 3:
			ints, err = f.Int32s()
			e.ExperienceAwarded = append(e.ExperienceAwarded, ints...)
		case 4:
			ints, err = f.Int32s()
			e.CandyAwarded = append(e.CandyAwarded, ints...)
		case 5:
			ints, err = f.Int32s()
			e.StardustAwarded = append(e.StardustAwarded, ints...)
		}
		return err
	})
	if err != nil {
		return domain.HatchedEggs{}, fmt.Errorf("hatched eggs: %w", err)
	}
	return e, nil
}

// EncodeHatchedEggs is the inverse of DecodeHatchedEggs.
func EncodeHatchedEggs(e domain.HatchedEggs) []byte {
	var b []byte
	b = wirefmt.AppendBool(b, 1, e.Success)
	b = wirefmt.AppendPackedFixed64s(b, 2, e.PokemonIDs)
	b = wirefmt.AppendPackedInt32s(b, 3, e.ExperienceAwarded)
	b = wirefmt.AppendPackedInt32s(b, 4, e.CandyAwarded)
	b = wirefmt.AppendPackedInt32s(b, 5, e.StardustAwarded)
	return b
}

// DecodeInventory decodes a GET_INVENTORY response.
func DecodeInventory(b []byte) (domain.InventoryDelta, error) {
	var d domain.InventoryDelta
	err := wirefmt.Walk(b, func(f wirefmt.Field) error {
		switch {
		case f.Num == 1 && f.IsVarint():
			d.Success = f.Bool()
		case f.Num == 2 && f.IsBytes():
			return wirefmt.Walk(f.Message(), func(df wirefmt.Field) error {
				switch {
				case df.Num == 1 && df.IsVarint():
					d.OriginalTimestampMs = df.Uint64()
				case df.Num == 2 && df.IsVarint():
					d.NewTimestampMs = df.Uint64()
				case df.Num == 3 && df.IsBytes():
					item, err := decodeInventoryItem(df.Message())
					if err != nil {
						return err
					}
					d.Items = append(d.Items, item)
				}
				return nil
			})
		}
		return nil
	})
	if err != nil {
		return domain.InventoryDelta{}, fmt.Errorf("inventory: %w", err)
	}
	return d, nil
}

func decodeInventoryItem(b []byte) (domain.InventoryItem, error) {
	var it domain.InventoryItem
	err := wirefmt.Walk(b, func(f wirefmt.Field) error {
		switch {
		case f.Num == 1 && f.IsVarint():
			it.ModifiedTimestampMs = f.Uint64()
		case f.Num == 2 && f.IsBytes():
			it.DeletedItemKey = f.Bytes()
		case f.Num == 3 && f.IsBytes():
			it.Data = f.Bytes()
		}
		return nil
	})
	return it, err
}

// EncodeInventory is the inverse of DecodeInventory.
func EncodeInventory(d domain.InventoryDelta) []byte {
	var delta []byte
	delta = wirefmt.AppendVarint(delta, 1, d.OriginalTimestampMs)
	delta = wirefmt.AppendVarint(delta, 2, d.NewTimestampMs)
	for _, it := range d.Items {
		var item []byte
		item = wirefmt.AppendVarint(item, 1, it.ModifiedTimestampMs)
		item = wirefmt.AppendBytes(item, 2, it.DeletedItemKey)
		item = wirefmt.AppendBytes(item, 3, it.Data)
		delta = wirefmt.AppendMessage(delta, 3, item)
	}

	var b []byte
	b = wirefmt.AppendBool(b, 1, d.Success)
	b = wirefmt.AppendMessage(b, 2, delta)
	return b
}

// DecodeBadges decodes a CHECK_AWARDED_BADGES response.
func DecodeBadges(b []byte) (domain.AwardedBadges, error) {
	var a domain.AwardedBadges
	err := wirefmt.Walk(b, func(f wirefmt.Field) error {
		var err error
		var ints []int32
		switch f.Num {
		case 1:
			a.Success = f.Bool()
		case 2:
			ints, err = f.Int32s()
			a.Badges = append(a.Badges, ints...)
		case 3:
			ints, err = f.Int32s()
			a.Levels = append(a.Levels, ints...)
		}
		return err
	})
	if err != nil {
		return domain.AwardedBadges{}, fmt.Errorf("badges: %w", err)
	}
	return a, nil
}

// EncodeBadges is the inverse of DecodeBadges.
func EncodeBadges(a domain.AwardedBadges) []byte {
	var b []byte
	b = wirefmt.AppendBool(b, 1, a.Success)
	b = wirefmt.AppendPackedInt32s(b, 2, a.Badges)
	b = wirefmt.AppendPackedInt32s(b, 3, a.Levels)
	return b
}

// DecodeSettings decodes a DOWNLOAD_SETTINGS response.
func DecodeSettings(b []byte) (domain.Settings, error) {
	var s domain.Settings
	err := wirefmt.Walk(b, func(f wirefmt.Field) error {
		switch {
		case f.Num == 1 && f.IsBytes():
			s.Error = f.String()
		case f.Num == 2 && f.IsBytes():
			s.Hash = f.String()
		case f.Num == 3 && f.IsBytes():
			s.Body = f.Bytes()
		}
		return nil
	})
	if err != nil {
		return domain.Settings{}, fmt.Errorf("settings: %w", err)
	}
	return s, nil
}

// EncodeSettings is the inverse of DecodeSettings.
func EncodeSettings(s domain.Settings) []byte {
	var b []byte
	b = wirefmt.AppendString(b, 1, s.Error)
	b = wirefmt.AppendString(b, 2, s.Hash)
	b = wirefmt.AppendBytes(b, 3, s.Body)
	return b
}
