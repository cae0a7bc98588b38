package store

import (
	"context"
	"testing"

	"flipdeck-api/internal/model"
	"flipdeck-api/pkg/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComboSplitProportional(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	cpu := addItem(t, s, "CPU", 100)
	gpu := addItem(t, s, "GPU", 300)

	updated, warn, err := s.ComboSplit(ctx, []int64{cpu.ID, gpu.ID}, 500)
	require.NoError(t, err)
	require.NoError(t, warn)
	require.Len(t, updated, 2)

	assert.Equal(t, 125.0, updated[0].Price)
	assert.Equal(t, 375.0, updated[1].Price)

	// The split is persisted on the items themselves.
	got, _ := s.Item(cpu.ID)
	assert.Equal(t, 125.0, got.Price)
}

func TestComboSplitExactSum(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	ids := []int64{
		addItem(t, s, "CPU", 10).ID,
		addItem(t, s, "GPU", 10).ID,
		addItem(t, s, "RAM", 10).ID,
	}

	// 100/3 does not divide into cents evenly; the leftover cent goes to one
	// item so the total still matches exactly.
	updated, warn, err := s.ComboSplit(ctx, ids, 100)
	require.NoError(t, err)
	require.NoError(t, warn)

	sum := 0.0
	for _, item := range updated {
		sum += item.Price
	}
	assert.InDelta(t, 100.0, sum, 0.0001)
	for _, item := range updated {
		assert.InDelta(t, 33.33, item.Price, 0.011)
	}
}

func TestComboSplitValidation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	item := addItem(t, s, "CPU", 100)

	_, _, err := s.ComboSplit(ctx, nil, 500)
	assert.True(t, apierror.IsValidation(err))

	_, _, err = s.ComboSplit(ctx, []int64{item.ID}, 0)
	assert.True(t, apierror.IsValidation(err))

	_, _, err = s.ComboSplit(ctx, []int64{item.ID, item.ID}, 500)
	assert.True(t, apierror.IsValidation(err))

	_, _, err = s.ComboSplit(ctx, []int64{item.ID, 999}, 500)
	assert.True(t, apierror.IsNotFound(err))

	got, _ := s.Item(item.ID)
	assert.Equal(t, 100.0, got.Price, "failed splits leave prices untouched")
}

func TestComboSplitRequiresAvailableItems(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	cpu := addItem(t, s, "CPU", 100)
	gpu := addItem(t, s, "GPU", 300)
	build := addBuild(t, s, "Rig")
	_, _, err := s.AttachComponent(ctx, build.ID, gpu.ID)
	require.NoError(t, err)

	_, _, err = s.ComboSplit(ctx, []int64{cpu.ID, gpu.ID}, 500)
	assert.True(t, apierror.IsConflict(err))
}

func TestComboSplitZeroPriceBase(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	// Zero-price items cannot be created through the normal operations, but an
	// imported dataset may contain them.
	doc := `{
		"inventory": [
			{"id": 1, "category": "CPU", "price": 0, "status": "available"},
			{"id": 2, "category": "GPU", "price": 0, "status": "available"}
		],
		"builds": [],
		"sales": []
	}`
	warn, err := s.Import(ctx, []byte(doc))
	require.NoError(t, err)
	require.NoError(t, warn)

	_, _, err = s.ComboSplit(ctx, []int64{1, 2}, 500)
	assert.True(t, apierror.IsValidation(err))

	for _, item := range s.Items(ItemQuery{}) {
		assert.Equal(t, model.ItemAvailable, item.Status)
		assert.Zero(t, item.Price)
	}
}
