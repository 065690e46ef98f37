package payload

import "pogo/internal/domain"

// Inventory is the usable view over the item list of an inventory delta.
type Inventory struct {
	items  []domain.InventoryItem
	latest uint64
}

// NewInventory builds an Inventory from raw delta items. It satisfies
// domain.InventoryViewFunc.
func NewInventory(items []domain.InventoryItem) domain.InventoryView {
	inv := &Inventory{items: make([]domain.InventoryItem, 0, len(items))}
	for _, it := range items {
		if it.ModifiedTimestampMs > inv.latest {
			inv.latest = it.ModifiedTimestampMs
		}
		inv.items = append(inv.items, it)
	}
	return inv
}

// Len returns the number of entries, deletions included.
func (inv *Inventory) Len() int { return len(inv.items) }

// Items returns a copy of the entries in delta order.
func (inv *Inventory) Items() []domain.InventoryItem {
	return append([]domain.InventoryItem(nil), inv.items...)
}

// Live returns the entries that are not deletions.
func (inv *Inventory) Live() []domain.InventoryItem {
	out := make([]domain.InventoryItem, 0, len(inv.items))
	for _, it := range inv.items {
		if len(it.DeletedItemKey) == 0 {
			out = append(out, it)
		}
	}
	return out
}

// LatestTimestampMs is the newest modification time seen, suitable as the next
// GET_INVENTORY baseline.
func (inv *Inventory) LatestTimestampMs() uint64 { return inv.latest }

var _ domain.InventoryViewFunc = NewInventory
