package store

import (
	"context"
	"sort"

	"flipdeck-api/internal/model"
	"flipdeck-api/pkg/apierror"

	"github.com/shopspring/decimal"
)

var cent = decimal.New(1, -2)

// ComboSplit redistributes a combined purchase price across the selected
// available items proportionally to their current price shares. Allocation is
// done in exact cents with a largest-remainder pass, so the new prices always
// sum to the target and each pair keeps its original price ratio to within a
// cent.
func (s *Store) ComboSplit(ctx context.Context, itemIDs []int64, targetTotal float64) ([]model.InventoryItem, error, error) {
	if len(itemIDs) == 0 {
		return nil, nil, apierror.Validation("no items selected")
	}
	if targetTotal <= 0 {
		return nil, nil, apierror.Validation("combined price must be greater than zero",
			apierror.FieldError{Field: "targetTotal", Message: "must be greater than zero"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[int64]bool, len(itemIDs))
	indexes := make([]int, 0, len(itemIDs))
	for _, id := range itemIDs {
		if seen[id] {
			return nil, nil, apierror.Validation("duplicate item in selection")
		}
		seen[id] = true

		idx := s.itemIndexLocked(id)
		if idx < 0 {
			return nil, nil, apierror.NotFound("item not found")
		}
		if s.items[idx].Status != model.ItemAvailable {
			return nil, nil, apierror.Conflict("only available items can be split")
		}
		indexes = append(indexes, idx)
	}

	total := decimal.Zero
	prices := make([]decimal.Decimal, len(indexes))
	for i, idx := range indexes {
		prices[i] = decimal.NewFromFloat(s.items[idx].Price)
		total = total.Add(prices[i])
	}
	if total.IsZero() {
		return nil, nil, apierror.Validation("selected items have no price base to redistribute from")
	}

	target := decimal.NewFromFloat(targetTotal).Round(2)

	// Floor each proportional share to whole cents, then hand the leftover
	// cents to the largest fractional remainders.
	type remainder struct {
		pos  int
		frac decimal.Decimal
	}
	shares := make([]decimal.Decimal, len(indexes))
	remainders := make([]remainder, len(indexes))
	allocated := decimal.Zero
	for i := range indexes {
		raw := prices[i].Mul(target).Div(total)
		shares[i] = raw.RoundFloor(2)
		allocated = allocated.Add(shares[i])
		remainders[i] = remainder{pos: i, frac: raw.Sub(shares[i])}
	}

	leftoverCents := target.Sub(allocated).Div(cent).IntPart()
	sort.SliceStable(remainders, func(a, b int) bool {
		return remainders[a].frac.GreaterThan(remainders[b].frac)
	})
	for c := int64(0); c < leftoverCents; c++ {
		pos := remainders[c%int64(len(remainders))].pos
		shares[pos] = shares[pos].Add(cent)
	}

	updated := make([]model.InventoryItem, len(indexes))
	for i, idx := range indexes {
		s.items[idx].Price = shares[i].InexactFloat64()
		updated[i] = s.items[idx]
	}

	return updated, s.commitLocked(ctx), nil
}
