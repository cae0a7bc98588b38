package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		op   Op
		from ItemStatus
		to   ItemStatus
		want bool
	}{
		{OpAttach, ItemAvailable, ItemUsed, true},
		{OpAttach, ItemUsed, ItemUsed, false},
		{OpAttach, ItemSold, ItemUsed, false},
		{OpDetach, ItemUsed, ItemAvailable, true},
		{OpDetach, ItemAvailable, ItemAvailable, false},
		{OpRelease, ItemUsed, ItemAvailable, true},
		{OpSellItem, ItemAvailable, ItemSold, true},
		{OpSellItem, ItemUsed, ItemSold, false},
		{OpSellItem, ItemSold, ItemSold, false},
		{OpSellBuild, ItemUsed, ItemSold, true},
		{OpSellBuild, ItemAvailable, ItemSold, false},
	}
	for _, tt := range tests {
		got := CanTransition(tt.op, tt.from, tt.to)
		assert.Equal(t, tt.want, got, "%s: %s -> %s", tt.op, tt.from, tt.to)
	}
}

func TestEditNeedsForce(t *testing.T) {
	assert.False(t, EditNeedsForce(ItemAvailable, ItemAvailable))
	assert.False(t, EditNeedsForce(ItemUsed, ItemUsed))
	assert.False(t, EditNeedsForce(ItemAvailable, ItemUsed))
	assert.False(t, EditNeedsForce(ItemAvailable, ItemSold))

	assert.True(t, EditNeedsForce(ItemUsed, ItemAvailable))
	assert.True(t, EditNeedsForce(ItemSold, ItemAvailable))
	assert.True(t, EditNeedsForce(ItemSold, ItemUsed))
}

func TestStatusValid(t *testing.T) {
	for _, s := range []ItemStatus{ItemAvailable, ItemUsed, ItemSold} {
		assert.True(t, s.Valid())
	}
	assert.False(t, ItemStatus("broken").Valid())
	assert.False(t, ItemStatus("").Valid())
}

func TestComponentIndex(t *testing.T) {
	b := Build{Components: []Component{{ID: 5}, {ID: 9}}}
	assert.Equal(t, 0, b.ComponentIndex(5))
	assert.Equal(t, 1, b.ComponentIndex(9))
	assert.Equal(t, -1, b.ComponentIndex(7))
}

func TestSnapshotOf(t *testing.T) {
	item := InventoryItem{
		ID: 3, Category: "GPU", Brand: "NVIDIA", Model: "RTX 3060",
		Price: 450, MarketValue: 520, Status: ItemAvailable,
		Source: "eBay", Date: "2025-02-02",
	}
	c := SnapshotOf(item)
	assert.Equal(t, item.ID, c.ID)
	assert.Equal(t, item.Price, c.Price)
	assert.Equal(t, item.MarketValue, c.MarketValue)
	assert.Equal(t, item.Brand, c.Brand)
}

func TestSnapshotClone(t *testing.T) {
	snap := &Snapshot{
		Inventory: []InventoryItem{{ID: 1, Category: "CPU", Price: 180}},
		Builds:    []Build{{ID: 2, Components: []Component{{ID: 1, Price: 180}}}},
		Sales:     []SaleRecord{{ID: 3, SoldPrice: 220}},
	}
	clone := snap.Clone()

	clone.Inventory[0].Price = 1
	clone.Builds[0].Components[0].Price = 1
	clone.Sales[0].SoldPrice = 1

	assert.Equal(t, 180.0, snap.Inventory[0].Price)
	assert.Equal(t, 180.0, snap.Builds[0].Components[0].Price)
	assert.Equal(t, 220.0, snap.Sales[0].SoldPrice)
}
