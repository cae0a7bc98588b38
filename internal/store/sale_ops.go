package store

import (
	"context"

	"flipdeck-api/internal/model"
	"flipdeck-api/pkg/apierror"
)

// SaleUpdate carries the editable fields of a sale record. The cost basis is
// fixed at creation and cannot be edited.
type SaleUpdate struct {
	SoldPrice float64
	Buyer     string
	Date      string
	Notes     string
}

// UpdateSale edits a sale record and recomputes its net profit against the
// original cost basis.
func (s *Store) UpdateSale(ctx context.Context, id int64, u SaleUpdate) (model.SaleRecord, error, error) {
	if u.SoldPrice <= 0 {
		return model.SaleRecord{}, nil, apierror.Validation("sold price must be greater than zero",
			apierror.FieldError{Field: "soldPrice", Message: "must be greater than zero"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.saleIndexLocked(id)
	if idx < 0 {
		return model.SaleRecord{}, nil, apierror.NotFound("sale not found")
	}
	sale := &s.sales[idx]
	sale.SoldPrice = u.SoldPrice
	sale.NetProfit = u.SoldPrice - sale.CostBasis
	sale.Buyer = u.Buyer
	sale.Date = u.Date
	sale.Notes = u.Notes

	return *sale, s.commitLocked(ctx), nil
}

// DeleteSale removes the record only. The underlying item or build stays
// sold: deleting a sale corrects a data-entry mistake, it does not undo a
// real-world sale.
func (s *Store) DeleteSale(ctx context.Context, id int64) (error, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.saleIndexLocked(id)
	if idx < 0 {
		return nil, apierror.NotFound("sale not found")
	}
	s.sales = append(s.sales[:idx], s.sales[idx+1:]...)

	return s.commitLocked(ctx), nil
}
