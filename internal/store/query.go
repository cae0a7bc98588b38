package store

import (
	"sort"
	"strings"

	"flipdeck-api/internal/model"
	"flipdeck-api/pkg/apierror"
)

// ItemQuery filters and sorts the inventory listing. Zero values mean "no
// filter"; the default order is creation order. Sorting is stable so equal
// keys keep their prior relative order.
type ItemQuery struct {
	Status   model.ItemStatus
	Category string
	Search   string
	SortKey  string // id, price, date, category, brand
	Desc     bool
}

// Items returns a filtered, sorted copy of the inventory. The returned slice
// is a snapshot; mutating it does not touch the store.
func (s *Store) Items(q ItemQuery) []model.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.InventoryItem, 0, len(s.items))
	search := strings.ToLower(q.Search)
	for _, item := range s.items {
		if q.Status != "" && item.Status != q.Status {
			continue
		}
		if q.Category != "" && !strings.EqualFold(item.Category, q.Category) {
			continue
		}
		if search != "" && !itemMatches(item, search) {
			continue
		}
		out = append(out, item)
	}

	less := itemLess(q.SortKey)
	if less != nil {
		sort.SliceStable(out, func(a, b int) bool {
			if q.Desc {
				return less(out[b], out[a])
			}
			return less(out[a], out[b])
		})
	}
	return out
}

func itemMatches(item model.InventoryItem, search string) bool {
	for _, field := range []string{item.Category, item.Brand, item.Model, item.Source} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func itemLess(key string) func(a, b model.InventoryItem) bool {
	switch key {
	case "price":
		return func(a, b model.InventoryItem) bool { return a.Price < b.Price }
	case "date":
		return func(a, b model.InventoryItem) bool { return a.Date < b.Date }
	case "category":
		return func(a, b model.InventoryItem) bool {
			return strings.ToLower(a.Category) < strings.ToLower(b.Category)
		}
	case "brand":
		return func(a, b model.InventoryItem) bool {
			return strings.ToLower(a.Brand) < strings.ToLower(b.Brand)
		}
	case "id":
		return func(a, b model.InventoryItem) bool { return a.ID < b.ID }
	}
	return nil
}

// BuildQuery filters and sorts the build listing.
type BuildQuery struct {
	Status  model.BuildStatus
	SortKey string // id, name, created
	Desc    bool
}

// Builds returns a filtered, sorted deep copy of the builds.
func (s *Store) Builds(q BuildQuery) []model.Build {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Build, 0, len(s.builds))
	for _, b := range s.builds {
		if q.Status != "" && b.Status != q.Status {
			continue
		}
		cb := b
		cb.Components = make([]model.Component, len(b.Components))
		copy(cb.Components, b.Components)
		out = append(out, cb)
	}

	var less func(a, b model.Build) bool
	switch q.SortKey {
	case "name":
		less = func(a, b model.Build) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case "created":
		less = func(a, b model.Build) bool { return a.Created < b.Created }
	case "id":
		less = func(a, b model.Build) bool { return a.ID < b.ID }
	}
	if less != nil {
		sort.SliceStable(out, func(a, b int) bool {
			if q.Desc {
				return less(out[b], out[a])
			}
			return less(out[a], out[b])
		})
	}
	return out
}

// SaleQuery filters and sorts the sales listing.
type SaleQuery struct {
	Type    model.SaleType
	SortKey string // id, date, soldPrice, netProfit
	Desc    bool
}

// Sales returns a filtered, sorted copy of the sale records.
func (s *Store) Sales(q SaleQuery) []model.SaleRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.SaleRecord, 0, len(s.sales))
	for _, sale := range s.sales {
		if q.Type != "" && sale.Type != q.Type {
			continue
		}
		out = append(out, sale)
	}

	var less func(a, b model.SaleRecord) bool
	switch q.SortKey {
	case "date":
		less = func(a, b model.SaleRecord) bool { return a.Date < b.Date }
	case "soldPrice":
		less = func(a, b model.SaleRecord) bool { return a.SoldPrice < b.SoldPrice }
	case "netProfit":
		less = func(a, b model.SaleRecord) bool { return a.NetProfit < b.NetProfit }
	case "id":
		less = func(a, b model.SaleRecord) bool { return a.ID < b.ID }
	}
	if less != nil {
		sort.SliceStable(out, func(a, b int) bool {
			if q.Desc {
				return less(out[b], out[a])
			}
			return less(out[a], out[b])
		})
	}
	return out
}

// Item returns a single item by id.
func (s *Store) Item(id int64) (model.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.itemIndexLocked(id)
	if idx < 0 {
		return model.InventoryItem{}, apierror.NotFound("item not found")
	}
	return s.items[idx], nil
}

// Build returns a single build by id, with its components deep-copied.
func (s *Store) Build(id int64) (model.Build, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.buildIndexLocked(id)
	if idx < 0 {
		return model.Build{}, apierror.NotFound("build not found")
	}
	b := s.builds[idx]
	b.Components = append([]model.Component(nil), b.Components...)
	return b, nil
}

// Sale returns a single sale record by id.
func (s *Store) Sale(id int64) (model.SaleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.saleIndexLocked(id)
	if idx < 0 {
		return model.SaleRecord{}, apierror.NotFound("sale not found")
	}
	return s.sales[idx], nil
}
