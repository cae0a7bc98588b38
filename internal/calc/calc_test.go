package calc

import (
	"testing"

	"flipdeck-api/internal/model"

	"github.com/stretchr/testify/assert"
)

func rig(components ...model.Component) model.Build {
	return model.Build{ID: 1, Name: "Rig", Status: model.BuildBuilding, Components: components}
}

func TestBuildCost(t *testing.T) {
	assert.Zero(t, BuildCost(rig()))

	b := rig(
		model.Component{ID: 1, Price: 180},
		model.Component{ID: 2, Price: 450},
	)
	assert.Equal(t, 630.0, BuildCost(b))
}

func TestEstimatedValue(t *testing.T) {
	b := rig(
		model.Component{ID: 1, Price: 100, MarketValue: 160}, // appraised value wins
		model.Component{ID: 2, Price: 100},                   // falls back to markup
	)
	assert.InDelta(t, 160+100*DefaultMarkup, EstimatedValue(b), 0.0001)
}

func TestExpectedProfitAndMargin(t *testing.T) {
	b := rig(model.Component{ID: 1, Price: 200, MarketValue: 300})
	assert.InDelta(t, 100.0, ExpectedProfit(b), 0.0001)
	assert.InDelta(t, 50.0, Margin(b), 0.0001)

	assert.Zero(t, Margin(rig()), "empty build has no margin")
}

func TestPortfolio(t *testing.T) {
	snap := &model.Snapshot{
		Inventory: []model.InventoryItem{
			{ID: 1, Category: "CPU", Price: 180, Status: model.ItemAvailable},
			{ID: 2, Category: "GPU", Price: 450, Status: model.ItemUsed},
			{ID: 3, Category: "RAM", Price: 60, Status: model.ItemSold},
		},
		Builds: []model.Build{
			{ID: 10, Status: model.BuildBuilding},
			{ID: 11, Status: model.BuildSold},
		},
		Sales: []model.SaleRecord{
			{ID: 20, Type: model.SaleItem, CostBasis: 60, SoldPrice: 90, NetProfit: 30},
			{ID: 21, Type: model.SaleBuild, CostBasis: 500, SoldPrice: 610, NetProfit: 110},
		},
	}

	got := Portfolio(snap)

	// 180 + 450 still held, plus 60 + 500 of sold cost bases.
	assert.InDelta(t, 1190.0, got.Invested, 0.0001)
	assert.InDelta(t, 700.0, got.Revenue, 0.0001)
	assert.InDelta(t, 140.0, got.NetProfit, 0.0001)
	assert.InDelta(t, 20.0, got.Margin, 0.0001)
	assert.Equal(t, 1, got.AvailableItems)
	assert.Equal(t, 1, got.ActiveBuilds)
	assert.Equal(t, 3, got.ItemCount)
	assert.Equal(t, 2, got.BuildCount)
	assert.Equal(t, 2, got.SaleCount)
}

func TestPortfolioEmpty(t *testing.T) {
	got := Portfolio(&model.Snapshot{})
	assert.Zero(t, got.Invested)
	assert.Zero(t, got.Margin, "no revenue means no margin, not a division by zero")
}
