package model

// Snapshot is the full store state: the persistence unit, and also the
// export/import document (three top-level keys, nothing else).
type Snapshot struct {
	Inventory []InventoryItem `json:"inventory"`
	Builds    []Build         `json:"builds"`
	Sales     []SaleRecord    `json:"sales"`
}

// Clone returns a deep copy. Component slices are the only nested mutable
// state, so those are copied element-wise.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Inventory: make([]InventoryItem, len(s.Inventory)),
		Builds:    make([]Build, len(s.Builds)),
		Sales:     make([]SaleRecord, len(s.Sales)),
	}
	copy(out.Inventory, s.Inventory)
	copy(out.Sales, s.Sales)
	for i, b := range s.Builds {
		cb := b
		cb.Components = make([]Component, len(b.Components))
		copy(cb.Components, b.Components)
		out.Builds[i] = cb
	}
	return out
}
