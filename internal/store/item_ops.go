package store

import (
	"context"
	"strings"

	"flipdeck-api/internal/model"
	"flipdeck-api/pkg/apierror"
	"flipdeck-api/pkg/uid"
)

// ItemFields carries the assignable fields of an inventory item.
type ItemFields struct {
	Category    string
	Brand       string
	Model       string
	Price       float64
	MarketValue float64
	Date        string
	Source      string
}

func (f ItemFields) validate() error {
	var details []apierror.FieldError
	if strings.TrimSpace(f.Category) == "" {
		details = append(details, apierror.FieldError{Field: "category", Message: "category is required"})
	}
	if f.Price <= 0 {
		details = append(details, apierror.FieldError{Field: "price", Message: "price must be greater than zero"})
	}
	if f.MarketValue < 0 {
		details = append(details, apierror.FieldError{Field: "marketValue", Message: "market value cannot be negative"})
	}
	if len(details) > 0 {
		return apierror.Validation("invalid item fields", details...)
	}
	return nil
}

// ItemUpdate carries a full item edit. Force acknowledges a status change
// that bypasses build/sale bookkeeping (used->available, sold->anything);
// without it such an edit is rejected.
type ItemUpdate struct {
	ItemFields
	Status model.ItemStatus
	Force  bool
}

// AddItem records a newly purchased part with status "available".
func (s *Store) AddItem(ctx context.Context, f ItemFields) (model.InventoryItem, error, error) {
	if err := f.validate(); err != nil {
		return model.InventoryItem{}, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := model.InventoryItem{
		ID:          uid.Next(),
		Category:    f.Category,
		Brand:       f.Brand,
		Model:       f.Model,
		Price:       f.Price,
		MarketValue: f.MarketValue,
		Date:        f.Date,
		Source:      f.Source,
		Status:      model.ItemAvailable,
	}
	s.items = append(s.items, item)

	return item, s.commitLocked(ctx), nil
}

// UpdateItem replaces an item's assignable fields. Status edits that would
// silently break build or sale bookkeeping require the Force flag.
func (s *Store) UpdateItem(ctx context.Context, id int64, u ItemUpdate) (model.InventoryItem, error, error) {
	if err := u.validate(); err != nil {
		return model.InventoryItem{}, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.itemIndexLocked(id)
	if idx < 0 {
		return model.InventoryItem{}, nil, apierror.NotFound("item not found")
	}
	item := s.items[idx]

	status := u.Status
	if status == "" {
		status = item.Status
	}
	if !status.Valid() {
		return model.InventoryItem{}, nil, apierror.Validation("unknown item status: " + string(u.Status))
	}
	if model.EditNeedsForce(item.Status, status) && !u.Force {
		return model.InventoryItem{}, nil, apierror.Conflict(
			"changing status from " + string(item.Status) + " to " + string(status) +
				" bypasses build/sale bookkeeping; set force to confirm")
	}

	item.Category = u.Category
	item.Brand = u.Brand
	item.Model = u.Model
	item.Price = u.Price
	item.MarketValue = u.MarketValue
	item.Date = u.Date
	item.Source = u.Source
	item.Status = status
	s.items[idx] = item

	return item, s.commitLocked(ctx), nil
}

// DeleteItem removes an item that is not built into anything. As defensive
// cleanup, any stale reference to it in a still-building build is purged too;
// sold builds keep their historical component list.
func (s *Store) DeleteItem(ctx context.Context, id int64) (error, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.itemIndexLocked(id)
	if idx < 0 {
		return nil, apierror.NotFound("item not found")
	}
	if s.items[idx].Status == model.ItemUsed {
		return nil, apierror.Conflict("item is built into a build; detach it or delete the build first")
	}

	s.items = append(s.items[:idx], s.items[idx+1:]...)

	for bi := range s.builds {
		b := &s.builds[bi]
		if b.Status != model.BuildBuilding {
			continue
		}
		if ci := b.ComponentIndex(id); ci >= 0 {
			b.Components = append(b.Components[:ci], b.Components[ci+1:]...)
		}
	}

	return s.commitLocked(ctx), nil
}

// SaleFields carries the details of a sell operation.
type SaleFields struct {
	SoldPrice float64
	Buyer     string
	Date      string
	Notes     string
}

func (f SaleFields) validate() error {
	if f.SoldPrice <= 0 {
		return apierror.Validation("sold price must be greater than zero",
			apierror.FieldError{Field: "soldPrice", Message: "must be greater than zero"})
	}
	return nil
}

// SellItem sells a single available item. The item's current price becomes
// the sale's fixed cost basis and the item moves to "sold".
func (s *Store) SellItem(ctx context.Context, id int64, f SaleFields) (model.SaleRecord, error, error) {
	if err := f.validate(); err != nil {
		return model.SaleRecord{}, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.itemIndexLocked(id)
	if idx < 0 {
		return model.SaleRecord{}, nil, apierror.NotFound("item not found")
	}
	item := &s.items[idx]
	if !model.CanTransition(model.OpSellItem, item.Status, model.ItemSold) {
		return model.SaleRecord{}, nil, apierror.Conflict("item is " + string(item.Status) + ", only available items can be sold")
	}

	sale := model.SaleRecord{
		ID:        uid.Next(),
		Type:      model.SaleItem,
		RefID:     item.ID,
		RefName:   itemDisplayName(*item),
		CostBasis: item.Price,
		SoldPrice: f.SoldPrice,
		NetProfit: f.SoldPrice - item.Price,
		Buyer:     f.Buyer,
		Date:      f.Date,
		Notes:     f.Notes,
	}
	s.sales = append(s.sales, sale)
	item.Status = model.ItemSold

	return sale, s.commitLocked(ctx), nil
}

func itemDisplayName(item model.InventoryItem) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{item.Category, item.Brand, item.Model} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
