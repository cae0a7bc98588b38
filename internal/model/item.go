package model

// ItemStatus tracks where an inventory item sits in its lifecycle.
type ItemStatus string

const (
	// ItemAvailable means the part is in stock and free to attach or sell.
	ItemAvailable ItemStatus = "available"
	// ItemUsed means the part is attached to exactly one building build.
	ItemUsed ItemStatus = "used"
	// ItemSold means the part left the inventory through a sale, either
	// directly or as part of a sold build.
	ItemSold ItemStatus = "sold"
)

// Valid reports whether s is a known item status.
func (s ItemStatus) Valid() bool {
	switch s {
	case ItemAvailable, ItemUsed, ItemSold:
		return true
	}
	return false
}

// InventoryItem is a purchased PC part. The ID is a millisecond timestamp
// assigned at creation and never changes. Dates are stored as strings
// (YYYY-MM-DD or RFC 3339) exactly as entered, since they are display data.
type InventoryItem struct {
	ID          int64      `json:"id"`
	Category    string     `json:"category"`
	Brand       string     `json:"brand"`
	Model       string     `json:"model"`
	Price       float64    `json:"price"`
	MarketValue float64    `json:"marketValue,omitempty"`
	Date        string     `json:"date,omitempty"`
	Source      string     `json:"source,omitempty"`
	Status      ItemStatus `json:"status"`
}
