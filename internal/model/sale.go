package model

// SaleType says whether a sale covers a single item or a whole build.
type SaleType string

const (
	SaleItem  SaleType = "item"
	SaleBuild SaleType = "build"
)

// SaleRecord captures a completed sale. CostBasis is copied from the item or
// build at the moment of sale and never changes afterwards; NetProfit is
// always SoldPrice minus CostBasis and is recomputed whenever SoldPrice is
// edited.
type SaleRecord struct {
	ID        int64    `json:"id"`
	Type      SaleType `json:"type"`
	RefID     int64    `json:"refId"`
	RefName   string   `json:"refName"`
	CostBasis float64  `json:"costBasis"`
	SoldPrice float64  `json:"soldPrice"`
	NetProfit float64  `json:"netProfit"`
	Buyer     string   `json:"buyer,omitempty"`
	Date      string   `json:"date,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}
