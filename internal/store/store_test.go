package store

import (
	"context"
	"errors"
	"testing"

	"flipdeck-api/internal/model"
	"flipdeck-api/pkg/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memPersister is an in-memory SnapshotStore for tests.
type memPersister struct {
	saved    *model.Snapshot
	loadErr  error
	failSave bool
	saves    int
}

func (p *memPersister) Load(ctx context.Context) (*model.Snapshot, error) {
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	return p.saved, nil
}

func (p *memPersister) Save(ctx context.Context, snap *model.Snapshot) error {
	if p.failSave {
		return errors.New("disk full")
	}
	p.saved = snap.Clone()
	p.saves++
	return nil
}

func (p *memPersister) Close() error { return nil }

func newTestStore(t *testing.T) (*Store, *memPersister) {
	t.Helper()
	p := &memPersister{}
	return Open(context.Background(), p), p
}

func addItem(t *testing.T, s *Store, category string, price float64) model.InventoryItem {
	t.Helper()
	item, warn, err := s.AddItem(context.Background(), ItemFields{
		Category: category,
		Brand:    "TestBrand",
		Model:    "TestModel",
		Price:    price,
		Date:     "2025-01-10",
		Source:   "eBay",
	})
	require.NoError(t, err)
	require.NoError(t, warn)
	return item
}

func addBuild(t *testing.T, s *Store, name string) model.Build {
	t.Helper()
	build, warn, err := s.AddBuild(context.Background(), BuildFields{Name: name, TargetPrice: 800})
	require.NoError(t, err)
	require.NoError(t, warn)
	return build
}

func TestAddItemAssignsIDAndStatus(t *testing.T) {
	s, p := newTestStore(t)

	item := addItem(t, s, "CPU", 180)
	assert.NotZero(t, item.ID)
	assert.Equal(t, model.ItemAvailable, item.Status)
	assert.Equal(t, 1, p.saves, "write-through save after mutation")

	second := addItem(t, s, "GPU", 450)
	assert.Greater(t, second.ID, item.ID)
}

func TestAddItemValidation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, _, err := s.AddItem(ctx, ItemFields{Category: "", Price: 100})
	assert.True(t, apierror.IsValidation(err))

	_, _, err = s.AddItem(ctx, ItemFields{Category: "CPU", Price: 0})
	assert.True(t, apierror.IsValidation(err))

	_, _, err = s.AddItem(ctx, ItemFields{Category: "CPU", Price: -5})
	assert.True(t, apierror.IsValidation(err))

	assert.Empty(t, s.Items(ItemQuery{}), "failed adds leave no partial state")
}

func TestSellSingleItem(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	item := addItem(t, s, "CPU", 180)

	sale, warn, err := s.SellItem(ctx, item.ID, SaleFields{SoldPrice: 220, Buyer: "max", Date: "2025-03-01"})
	require.NoError(t, err)
	require.NoError(t, warn)

	assert.Equal(t, model.SaleItem, sale.Type)
	assert.Equal(t, item.ID, sale.RefID)
	assert.Equal(t, 180.0, sale.CostBasis)
	assert.Equal(t, 40.0, sale.NetProfit)

	got, err := s.Item(item.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ItemSold, got.Status)
}

func TestSellItemNotAvailable(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	item := addItem(t, s, "CPU", 180)
	_, warn, err := s.SellItem(ctx, item.ID, SaleFields{SoldPrice: 220})
	require.NoError(t, err)
	require.NoError(t, warn)

	// Selling the same item twice must conflict.
	_, _, err = s.SellItem(ctx, item.ID, SaleFields{SoldPrice: 300})
	assert.True(t, apierror.IsConflict(err))
	assert.Len(t, s.Sales(SaleQuery{}), 1)
}

func TestSellItemValidation(t *testing.T) {
	s, _ := newTestStore(t)
	item := addItem(t, s, "CPU", 180)

	_, _, err := s.SellItem(context.Background(), item.ID, SaleFields{SoldPrice: 0})
	assert.True(t, apierror.IsValidation(err))

	_, _, err = s.SellItem(context.Background(), 999, SaleFields{SoldPrice: 100})
	assert.True(t, apierror.IsNotFound(err))
}

func TestBuildLifecycle(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	cpu := addItem(t, s, "CPU", 180)
	gpu := addItem(t, s, "GPU", 450)
	build := addBuild(t, s, "Gaming Rig")
	assert.Equal(t, model.BuildBuilding, build.Status)
	assert.Empty(t, build.Components)

	build, warn, err := s.AttachComponent(ctx, build.ID, cpu.ID)
	require.NoError(t, err)
	require.NoError(t, warn)
	build, _, err = s.AttachComponent(ctx, build.ID, gpu.ID)
	require.NoError(t, err)
	assert.Len(t, build.Components, 2)

	gotCPU, _ := s.Item(cpu.ID)
	assert.Equal(t, model.ItemUsed, gotCPU.Status)

	cost := 0.0
	for _, c := range build.Components {
		cost += c.Price
	}
	assert.Equal(t, 630.0, cost)

	sale, warn, err := s.SellBuild(ctx, build.ID, SaleFields{SoldPrice: 740, Buyer: "anna", Date: "2025-04-01"})
	require.NoError(t, err)
	require.NoError(t, warn)
	assert.Equal(t, model.SaleBuild, sale.Type)
	assert.Equal(t, 630.0, sale.CostBasis)
	assert.Equal(t, 110.0, sale.NetProfit)

	gotBuild, err := s.Build(build.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BuildSold, gotBuild.Status)
	for _, id := range []int64{cpu.ID, gpu.ID} {
		item, err := s.Item(id)
		require.NoError(t, err)
		assert.Equal(t, model.ItemSold, item.Status)
	}
}

func TestAttachConflicts(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	item := addItem(t, s, "CPU", 180)
	first := addBuild(t, s, "First")
	second := addBuild(t, s, "Second")

	_, _, err := s.AttachComponent(ctx, first.ID, item.ID)
	require.NoError(t, err)

	// An already-used item cannot be attached again, not even to the same build.
	_, _, err = s.AttachComponent(ctx, second.ID, item.ID)
	assert.True(t, apierror.IsConflict(err))
	_, _, err = s.AttachComponent(ctx, first.ID, item.ID)
	assert.True(t, apierror.IsConflict(err))

	spare := addItem(t, s, "RAM", 60)
	_, _, err = s.SellBuild(ctx, first.ID, SaleFields{SoldPrice: 400})
	require.NoError(t, err)
	_, _, err = s.AttachComponent(ctx, first.ID, spare.ID)
	assert.True(t, apierror.IsConflict(err), "sold builds are frozen")
}

func TestDetachComponent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	item := addItem(t, s, "CPU", 180)
	build := addBuild(t, s, "Rig")
	_, _, err := s.AttachComponent(ctx, build.ID, item.ID)
	require.NoError(t, err)

	got, warn, err := s.DetachComponent(ctx, build.ID, item.ID)
	require.NoError(t, err)
	require.NoError(t, warn)
	assert.Empty(t, got.Components)

	released, _ := s.Item(item.ID)
	assert.Equal(t, model.ItemAvailable, released.Status)

	_, _, err = s.DetachComponent(ctx, build.ID, item.ID)
	assert.True(t, apierror.IsNotFound(err))
}

func TestDeleteUsedItemConflict(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	item := addItem(t, s, "CPU", 180)
	build := addBuild(t, s, "Rig")
	_, _, err := s.AttachComponent(ctx, build.ID, item.ID)
	require.NoError(t, err)

	_, err = s.DeleteItem(ctx, item.ID)
	assert.True(t, apierror.IsConflict(err))

	got, err := s.Item(item.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ItemUsed, got.Status, "item unchanged after failed delete")
}

func TestDeleteBuildReleasesComponents(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	cpu := addItem(t, s, "CPU", 180)
	gpu := addItem(t, s, "GPU", 450)
	build := addBuild(t, s, "Rig")
	_, _, err := s.AttachComponent(ctx, build.ID, cpu.ID)
	require.NoError(t, err)
	_, _, err = s.AttachComponent(ctx, build.ID, gpu.ID)
	require.NoError(t, err)

	warn, err := s.DeleteBuild(ctx, build.ID)
	require.NoError(t, err)
	require.NoError(t, warn)

	items := s.Items(ItemQuery{})
	assert.Len(t, items, 2, "inventory count unchanged")
	for _, item := range items {
		assert.Equal(t, model.ItemAvailable, item.Status)
	}
	assert.Empty(t, s.Builds(BuildQuery{}))
}

func TestDeleteSoldBuildConflict(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	item := addItem(t, s, "CPU", 180)
	build := addBuild(t, s, "Rig")
	_, _, err := s.AttachComponent(ctx, build.ID, item.ID)
	require.NoError(t, err)
	_, _, err = s.SellBuild(ctx, build.ID, SaleFields{SoldPrice: 300})
	require.NoError(t, err)

	_, err = s.DeleteBuild(ctx, build.ID)
	assert.True(t, apierror.IsConflict(err))

	got, _ := s.Item(item.ID)
	assert.Equal(t, model.ItemSold, got.Status, "components of a sold build stay sold")
}

func TestSellBuildTwiceConflict(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	build := addBuild(t, s, "Rig")
	_, _, err := s.SellBuild(ctx, build.ID, SaleFields{SoldPrice: 100})
	require.NoError(t, err)

	_, _, err = s.SellBuild(ctx, build.ID, SaleFields{SoldPrice: 100})
	assert.True(t, apierror.IsConflict(err))
	assert.Len(t, s.Sales(SaleQuery{}), 1)
}

func TestUpdateItemGuardedStatusEdits(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	item := addItem(t, s, "CPU", 180)
	build := addBuild(t, s, "Rig")
	_, _, err := s.AttachComponent(ctx, build.ID, item.ID)
	require.NoError(t, err)

	update := ItemUpdate{
		ItemFields: ItemFields{Category: "CPU", Price: 180},
		Status:     model.ItemAvailable,
	}
	_, _, err = s.UpdateItem(ctx, item.ID, update)
	assert.True(t, apierror.IsConflict(err), "used->available without force is rejected")

	update.Force = true
	got, warn, err := s.UpdateItem(ctx, item.ID, update)
	require.NoError(t, err)
	require.NoError(t, warn)
	assert.Equal(t, model.ItemAvailable, got.Status)
}

func TestUpdateItemKeepsStatusWhenOmitted(t *testing.T) {
	s, _ := newTestStore(t)

	item := addItem(t, s, "CPU", 180)
	got, _, err := s.UpdateItem(context.Background(), item.ID, ItemUpdate{
		ItemFields: ItemFields{Category: "CPU", Brand: "AMD", Model: "Ryzen 5 3600", Price: 150},
	})
	require.NoError(t, err)
	assert.Equal(t, model.ItemAvailable, got.Status)
	assert.Equal(t, 150.0, got.Price)
	assert.Equal(t, "AMD", got.Brand)
}

func TestComponentSnapshotIsImmutable(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	item := addItem(t, s, "CPU", 180)
	build := addBuild(t, s, "Rig")
	_, _, err := s.AttachComponent(ctx, build.ID, item.ID)
	require.NoError(t, err)

	// Force-release the item and reprice it; the build keeps the attach-time copy.
	_, _, err = s.UpdateItem(ctx, item.ID, ItemUpdate{
		ItemFields: ItemFields{Category: "CPU", Price: 999},
		Status:     model.ItemAvailable,
		Force:      true,
	})
	require.NoError(t, err)

	got, err := s.Build(build.ID)
	require.NoError(t, err)
	require.Len(t, got.Components, 1)
	assert.Equal(t, 180.0, got.Components[0].Price)
}

func TestUpdateSaleRecomputesProfit(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	item := addItem(t, s, "CPU", 180)
	sale, _, err := s.SellItem(ctx, item.ID, SaleFields{SoldPrice: 220})
	require.NoError(t, err)

	updated, warn, err := s.UpdateSale(ctx, sale.ID, SaleUpdate{SoldPrice: 250, Buyer: "kim"})
	require.NoError(t, err)
	require.NoError(t, warn)
	assert.Equal(t, 180.0, updated.CostBasis, "cost basis is immutable")
	assert.Equal(t, 70.0, updated.NetProfit)

	_, _, err = s.UpdateSale(ctx, sale.ID, SaleUpdate{SoldPrice: 0})
	assert.True(t, apierror.IsValidation(err))
}

func TestDeleteSaleKeepsStatuses(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	item := addItem(t, s, "CPU", 180)
	sale, _, err := s.SellItem(ctx, item.ID, SaleFields{SoldPrice: 220})
	require.NoError(t, err)

	warn, err := s.DeleteSale(ctx, sale.ID)
	require.NoError(t, err)
	require.NoError(t, warn)

	assert.Empty(t, s.Sales(SaleQuery{}))
	got, _ := s.Item(item.ID)
	assert.Equal(t, model.ItemSold, got.Status, "deleting a sale record does not unsell the item")
}

func TestUsedItemsAppearInExactlyOneBuild(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	items := []model.InventoryItem{
		addItem(t, s, "CPU", 180),
		addItem(t, s, "GPU", 450),
		addItem(t, s, "RAM", 60),
	}
	first := addBuild(t, s, "First")
	second := addBuild(t, s, "Second")
	_, _, err := s.AttachComponent(ctx, first.ID, items[0].ID)
	require.NoError(t, err)
	_, _, err = s.AttachComponent(ctx, second.ID, items[1].ID)
	require.NoError(t, err)

	builds := s.Builds(BuildQuery{})
	for _, item := range s.Items(ItemQuery{}) {
		refs := 0
		for _, b := range builds {
			if b.ComponentIndex(item.ID) >= 0 {
				refs++
			}
		}
		if item.Status == model.ItemUsed {
			assert.Equal(t, 1, refs, "used item %d", item.ID)
		} else {
			assert.Zero(t, refs, "non-used item %d", item.ID)
		}
	}
}

func TestPersistenceFailureIsWarningNotRollback(t *testing.T) {
	s, p := newTestStore(t)
	p.failSave = true

	item, warn, err := s.AddItem(context.Background(), ItemFields{Category: "CPU", Price: 180})
	require.NoError(t, err, "mutation itself succeeds")
	require.Error(t, warn)
	assert.True(t, apierror.IsPersistence(warn))

	got, err := s.Item(item.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ItemAvailable, got.Status, "memory stays authoritative")
}

func TestOpenWithCorruptSnapshotStartsEmpty(t *testing.T) {
	p := &memPersister{loadErr: errors.New("parse failure")}
	s := Open(context.Background(), p)

	assert.Empty(t, s.Items(ItemQuery{}))
	assert.Empty(t, s.Builds(BuildQuery{}))
	assert.Empty(t, s.Sales(SaleQuery{}))
}

func TestOpenRestoresSavedState(t *testing.T) {
	first, p := newTestStore(t)
	addItem(t, first, "CPU", 180)
	addBuild(t, first, "Rig")

	second := Open(context.Background(), p)
	assert.Len(t, second.Items(ItemQuery{}), 1)
	assert.Len(t, second.Builds(BuildQuery{}), 1)
}
