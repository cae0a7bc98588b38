package store

import (
	"context"
	"testing"

	"flipdeck-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedQueryItems(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	fields := []ItemFields{
		{Category: "CPU", Brand: "AMD", Model: "Ryzen 5 3600", Price: 180, Date: "2025-01-10"},
		{Category: "GPU", Brand: "NVIDIA", Model: "RTX 3060", Price: 450, Date: "2025-02-02"},
		{Category: "CPU", Brand: "Intel", Model: "i5-12400F", Price: 180, Date: "2025-01-20"},
		{Category: "RAM", Brand: "Corsair", Model: "Vengeance 16GB", Price: 60, Date: "2025-03-05"},
	}
	for _, f := range fields {
		_, warn, err := s.AddItem(ctx, f)
		require.NoError(t, err)
		require.NoError(t, warn)
	}
}

func TestItemsFilter(t *testing.T) {
	s, _ := newTestStore(t)
	seedQueryItems(t, s)

	cpus := s.Items(ItemQuery{Category: "cpu"})
	assert.Len(t, cpus, 2, "category filter is case-insensitive")

	hits := s.Items(ItemQuery{Search: "ryzen"})
	require.Len(t, hits, 1)
	assert.Equal(t, "AMD", hits[0].Brand)

	available := s.Items(ItemQuery{Status: model.ItemAvailable})
	assert.Len(t, available, 4)
	assert.Empty(t, s.Items(ItemQuery{Status: model.ItemSold}))
}

func TestItemsSortStable(t *testing.T) {
	s, _ := newTestStore(t)
	seedQueryItems(t, s)

	byPrice := s.Items(ItemQuery{SortKey: "price"})
	require.Len(t, byPrice, 4)
	assert.Equal(t, 60.0, byPrice[0].Price)
	// Two items share price 180; stable sort keeps insertion order.
	assert.Equal(t, "AMD", byPrice[1].Brand)
	assert.Equal(t, "Intel", byPrice[2].Brand)
	assert.Equal(t, 450.0, byPrice[3].Price)

	desc := s.Items(ItemQuery{SortKey: "price", Desc: true})
	assert.Equal(t, 450.0, desc[0].Price)
}

func TestItemsReturnsSnapshot(t *testing.T) {
	s, _ := newTestStore(t)
	seedQueryItems(t, s)

	items := s.Items(ItemQuery{})
	items[0].Price = 1

	fresh := s.Items(ItemQuery{})
	assert.Equal(t, 180.0, fresh[0].Price, "mutating the listing must not touch the store")
}

func TestBuildsFilterAndCopy(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	item := addItem(t, s, "CPU", 180)
	build := addBuild(t, s, "Rig")
	_, _, err := s.AttachComponent(ctx, build.ID, item.ID)
	require.NoError(t, err)
	sold := addBuild(t, s, "Done")
	_, _, err = s.SellBuild(ctx, sold.ID, SaleFields{SoldPrice: 100})
	require.NoError(t, err)

	building := s.Builds(BuildQuery{Status: model.BuildBuilding})
	require.Len(t, building, 1)
	assert.Equal(t, "Rig", building[0].Name)

	building[0].Components[0].Price = 1
	fresh, err := s.Build(build.ID)
	require.NoError(t, err)
	assert.Equal(t, 180.0, fresh.Components[0].Price)
}

func TestSalesFilterAndSort(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	cpu := addItem(t, s, "CPU", 180)
	gpu := addItem(t, s, "GPU", 450)
	_, _, err := s.SellItem(ctx, cpu.ID, SaleFields{SoldPrice: 220, Date: "2025-03-01"})
	require.NoError(t, err)
	_, _, err = s.SellItem(ctx, gpu.ID, SaleFields{SoldPrice: 500, Date: "2025-02-01"})
	require.NoError(t, err)
	build := addBuild(t, s, "Rig")
	_, _, err = s.SellBuild(ctx, build.ID, SaleFields{SoldPrice: 50, Date: "2025-04-01"})
	require.NoError(t, err)

	itemSales := s.Sales(SaleQuery{Type: model.SaleItem})
	assert.Len(t, itemSales, 2)

	byDate := s.Sales(SaleQuery{SortKey: "date"})
	require.Len(t, byDate, 3)
	assert.Equal(t, "2025-02-01", byDate[0].Date)
	assert.Equal(t, "2025-04-01", byDate[2].Date)

	byProfit := s.Sales(SaleQuery{SortKey: "netProfit", Desc: true})
	assert.Equal(t, 50.0, byProfit[0].NetProfit)
}

func TestSingleGettersNotFound(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Item(1)
	assert.Error(t, err)
	_, err = s.Build(1)
	assert.Error(t, err)
	_, err = s.Sale(1)
	assert.Error(t, err)
}
