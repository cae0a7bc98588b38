// Package calc computes derived monetary figures from a store snapshot. All
// functions are pure; nothing here caches or mutates.
package calc

import "flipdeck-api/internal/model"

// DefaultMarkup estimates a component's resale value when no appraised market
// value was recorded: listed purchase price times this factor.
const DefaultMarkup = 1.3

// BuildCost is the sum of the build's component snapshot prices.
func BuildCost(b model.Build) float64 {
	total := 0.0
	for _, c := range b.Components {
		total += c.Price
	}
	return total
}

// EstimatedValue is the expected resale value of the build: each component
// contributes its market value if one was recorded, otherwise its price with
// the default markup applied.
func EstimatedValue(b model.Build) float64 {
	total := 0.0
	for _, c := range b.Components {
		if c.MarketValue > 0 {
			total += c.MarketValue
		} else {
			total += c.Price * DefaultMarkup
		}
	}
	return total
}

// ExpectedProfit is the estimated value minus cost.
func ExpectedProfit(b model.Build) float64 {
	return EstimatedValue(b) - BuildCost(b)
}

// Margin is the expected profit as a percentage of cost, 0 for an empty or
// zero-cost build.
func Margin(b model.Build) float64 {
	cost := BuildCost(b)
	if cost == 0 {
		return 0
	}
	return ExpectedProfit(b) / cost * 100
}

// PortfolioTotals aggregates the whole tracker into the dashboard figures.
type PortfolioTotals struct {
	Invested       float64 `json:"invested"`
	Revenue        float64 `json:"revenue"`
	NetProfit      float64 `json:"netProfit"`
	Margin         float64 `json:"margin"`
	AvailableItems int     `json:"availableItems"`
	ActiveBuilds   int     `json:"activeBuilds"`
	ItemCount      int     `json:"itemCount"`
	BuildCount     int     `json:"buildCount"`
	SaleCount      int     `json:"saleCount"`
}

// Portfolio computes the aggregate figures. Invested capital counts every
// non-sold item at its current price plus the fixed cost basis of everything
// already sold; the overall margin is profit over revenue.
func Portfolio(snap *model.Snapshot) PortfolioTotals {
	t := PortfolioTotals{
		ItemCount:  len(snap.Inventory),
		BuildCount: len(snap.Builds),
		SaleCount:  len(snap.Sales),
	}

	for _, item := range snap.Inventory {
		if item.Status != model.ItemSold {
			t.Invested += item.Price
		}
		if item.Status == model.ItemAvailable {
			t.AvailableItems++
		}
	}
	for _, b := range snap.Builds {
		if b.Status == model.BuildBuilding {
			t.ActiveBuilds++
		}
	}
	for _, sale := range snap.Sales {
		t.Invested += sale.CostBasis
		t.Revenue += sale.SoldPrice
		t.NetProfit += sale.NetProfit
	}
	if t.Revenue != 0 {
		t.Margin = t.NetProfit / t.Revenue * 100
	}
	return t
}
