package model

// BuildStatus tracks a build's lifecycle.
type BuildStatus string

const (
	// BuildBuilding means components may still be attached or detached.
	BuildBuilding BuildStatus = "building"
	// BuildSold is terminal; a sold build is frozen.
	BuildSold BuildStatus = "sold"
)

// Component is a point-in-time snapshot of an inventory item taken when it is
// attached to a build. Later edits to the canonical item do not flow into the
// snapshot; the composition of a build reflects the part as it was attached.
type Component struct {
	ID          int64   `json:"id"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	Price       float64 `json:"price"`
	MarketValue float64 `json:"marketValue,omitempty"`
}

// Build is a named set of components assembled for resale as a unit.
type Build struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Created     string      `json:"created"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	Budget      float64     `json:"budget,omitempty"`
	TargetPrice float64     `json:"targetPrice,omitempty"`
	Components  []Component `json:"components"`
	Status      BuildStatus `json:"status"`
}

// ComponentIndex returns the position of the component with the given item id,
// or -1 if the item is not part of the build.
func (b *Build) ComponentIndex(itemID int64) int {
	for i, c := range b.Components {
		if c.ID == itemID {
			return i
		}
	}
	return -1
}

// SnapshotOf copies the attachable fields of an item into a component.
func SnapshotOf(item InventoryItem) Component {
	return Component{
		ID:          item.ID,
		Category:    item.Category,
		Brand:       item.Brand,
		Model:       item.Model,
		Price:       item.Price,
		MarketValue: item.MarketValue,
	}
}
