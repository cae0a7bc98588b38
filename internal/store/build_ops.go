package store

import (
	"context"
	"strings"
	"time"

	"flipdeck-api/internal/model"
	"flipdeck-api/pkg/apierror"
	"flipdeck-api/pkg/uid"
)

// BuildFields carries the assignable metadata of a build. Components are
// never assigned directly; they only change through attach/detach.
type BuildFields struct {
	Name        string
	TargetPrice float64
	Budget      float64
	ImageURL    string
}

func (f BuildFields) validate() error {
	var details []apierror.FieldError
	if strings.TrimSpace(f.Name) == "" {
		details = append(details, apierror.FieldError{Field: "name", Message: "name is required"})
	}
	if f.TargetPrice < 0 {
		details = append(details, apierror.FieldError{Field: "targetPrice", Message: "target price cannot be negative"})
	}
	if f.Budget < 0 {
		details = append(details, apierror.FieldError{Field: "budget", Message: "budget cannot be negative"})
	}
	if len(details) > 0 {
		return apierror.Validation("invalid build fields", details...)
	}
	return nil
}

// AddBuild creates an empty build in "building" state.
func (s *Store) AddBuild(ctx context.Context, f BuildFields) (model.Build, error, error) {
	if err := f.validate(); err != nil {
		return model.Build{}, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	build := model.Build{
		ID:          uid.Next(),
		Name:        f.Name,
		Created:     time.Now().UTC().Format(time.RFC3339),
		ImageURL:    f.ImageURL,
		Budget:      f.Budget,
		TargetPrice: f.TargetPrice,
		Components:  []model.Component{},
		Status:      model.BuildBuilding,
	}
	s.builds = append(s.builds, build)

	return build, s.commitLocked(ctx), nil
}

// UpdateBuild replaces a build's metadata. Component membership and status
// are untouched; a sold build's name or image may still be corrected.
func (s *Store) UpdateBuild(ctx context.Context, id int64, f BuildFields) (model.Build, error, error) {
	if err := f.validate(); err != nil {
		return model.Build{}, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.buildIndexLocked(id)
	if idx < 0 {
		return model.Build{}, nil, apierror.NotFound("build not found")
	}
	b := &s.builds[idx]
	b.Name = f.Name
	b.TargetPrice = f.TargetPrice
	b.Budget = f.Budget
	b.ImageURL = f.ImageURL

	return *b, s.commitLocked(ctx), nil
}

// AttachComponent snapshots an available item into a building build and marks
// the item "used".
func (s *Store) AttachComponent(ctx context.Context, buildID, itemID int64) (model.Build, error, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bi := s.buildIndexLocked(buildID)
	if bi < 0 {
		return model.Build{}, nil, apierror.NotFound("build not found")
	}
	b := &s.builds[bi]
	if b.Status != model.BuildBuilding {
		return model.Build{}, nil, apierror.Conflict("build is sold; components are frozen")
	}

	ii := s.itemIndexLocked(itemID)
	if ii < 0 {
		return model.Build{}, nil, apierror.NotFound("item not found")
	}
	item := &s.items[ii]
	if !model.CanTransition(model.OpAttach, item.Status, model.ItemUsed) {
		return model.Build{}, nil, apierror.Conflict("item is " + string(item.Status) + ", only available items can be attached")
	}

	b.Components = append(b.Components, model.SnapshotOf(*item))
	item.Status = model.ItemUsed

	return *b, s.commitLocked(ctx), nil
}

// DetachComponent removes a component from a building build and releases the
// matching inventory item back to "available".
func (s *Store) DetachComponent(ctx context.Context, buildID, itemID int64) (model.Build, error, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bi := s.buildIndexLocked(buildID)
	if bi < 0 {
		return model.Build{}, nil, apierror.NotFound("build not found")
	}
	b := &s.builds[bi]
	if b.Status != model.BuildBuilding {
		return model.Build{}, nil, apierror.Conflict("build is sold; components are frozen")
	}

	ci := b.ComponentIndex(itemID)
	if ci < 0 {
		return model.Build{}, nil, apierror.NotFound("component not part of this build")
	}
	b.Components = append(b.Components[:ci], b.Components[ci+1:]...)

	if ii := s.itemIndexLocked(itemID); ii >= 0 {
		if model.CanTransition(model.OpDetach, s.items[ii].Status, model.ItemAvailable) {
			s.items[ii].Status = model.ItemAvailable
		}
	}

	return *b, s.commitLocked(ctx), nil
}

// DeleteBuild removes a building build and returns all its components to
// "available". A sold build cannot be deleted; its components stay sold and
// its sale record stays valid.
func (s *Store) DeleteBuild(ctx context.Context, id int64) (error, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.buildIndexLocked(id)
	if idx < 0 {
		return nil, apierror.NotFound("build not found")
	}
	b := s.builds[idx]
	if b.Status == model.BuildSold {
		return nil, apierror.Conflict("sold builds cannot be deleted")
	}

	for _, comp := range b.Components {
		if ii := s.itemIndexLocked(comp.ID); ii >= 0 {
			if model.CanTransition(model.OpRelease, s.items[ii].Status, model.ItemAvailable) {
				s.items[ii].Status = model.ItemAvailable
			}
		}
	}
	s.builds = append(s.builds[:idx], s.builds[idx+1:]...)

	return s.commitLocked(ctx), nil
}

// SellBuild sells a build as a unit. The cost basis is the component price
// sum at sale time; the build and every referenced item move to "sold". The
// transition is irreversible.
func (s *Store) SellBuild(ctx context.Context, id int64, f SaleFields) (model.SaleRecord, error, error) {
	if err := f.validate(); err != nil {
		return model.SaleRecord{}, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.buildIndexLocked(id)
	if idx < 0 {
		return model.SaleRecord{}, nil, apierror.NotFound("build not found")
	}
	b := &s.builds[idx]
	if b.Status == model.BuildSold {
		return model.SaleRecord{}, nil, apierror.Conflict("build is already sold")
	}

	costBasis := 0.0
	for _, comp := range b.Components {
		costBasis += comp.Price
	}

	sale := model.SaleRecord{
		ID:        uid.Next(),
		Type:      model.SaleBuild,
		RefID:     b.ID,
		RefName:   b.Name,
		CostBasis: costBasis,
		SoldPrice: f.SoldPrice,
		NetProfit: f.SoldPrice - costBasis,
		Buyer:     f.Buyer,
		Date:      f.Date,
		Notes:     f.Notes,
	}
	s.sales = append(s.sales, sale)

	for _, comp := range b.Components {
		if ii := s.itemIndexLocked(comp.ID); ii >= 0 {
			if model.CanTransition(model.OpSellBuild, s.items[ii].Status, model.ItemSold) {
				s.items[ii].Status = model.ItemSold
			}
		}
	}
	b.Status = model.BuildSold

	return sale, s.commitLocked(ctx), nil
}
