package store

import (
	"context"
	"encoding/json"
	"fmt"

	"flipdeck-api/internal/model"
	"flipdeck-api/pkg/apierror"
)

// exportKeys are the exact top-level keys of the export document. Import
// refuses payloads missing any of them.
var exportKeys = []string{"inventory", "builds", "sales"}

// Export returns a deep copy of the full store state as the three-key export
// document.
func (s *Store) Export() *model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.currentLocked().Clone()
	if snap.Inventory == nil {
		snap.Inventory = []model.InventoryItem{}
	}
	if snap.Builds == nil {
		snap.Builds = []model.Build{}
	}
	if snap.Sales == nil {
		snap.Sales = []model.SaleRecord{}
	}
	return snap
}

// Import replaces the whole store with the given export document. This is a
// full overwrite, not a merge; on any format error the existing state is left
// untouched.
func (s *Store) Import(ctx context.Context, data []byte) (error, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, apierror.Format("import payload is not valid JSON")
	}
	for _, key := range exportKeys {
		if _, ok := raw[key]; !ok {
			return nil, apierror.Format(fmt.Sprintf("import payload is missing the %q key", key))
		}
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, apierror.Format("import payload does not match the expected record shapes")
	}
	if snap.Inventory == nil {
		snap.Inventory = []model.InventoryItem{}
	}
	if snap.Builds == nil {
		snap.Builds = []model.Build{}
	}
	if snap.Sales == nil {
		snap.Sales = []model.SaleRecord{}
	}
	for i := range snap.Builds {
		if snap.Builds[i].Components == nil {
			snap.Builds[i].Components = []model.Component{}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = snap.Inventory
	s.builds = snap.Builds
	s.sales = snap.Sales

	return s.commitLocked(ctx), nil
}

// ResetAll wipes all three collections.
func (s *Store) ResetAll(ctx context.Context) (error, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.builds = nil
	s.sales = nil

	return s.commitLocked(ctx), nil
}
