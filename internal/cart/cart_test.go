package cart

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sneakshop/backend/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.CartItem{}))

	return &Store{Repo: &GormRepo{DB: db}}
}

func sampleItem() *models.CartItem {
	return &models.CartItem{
		CartKey:   "client@example.com",
		ProductID: "prod-1",
		Title:     "Air Jordan 1 Retro High OG",
		Brand:     "Air Jordan",
		Price:     59.9,
		Size:      "42",
		Color:     "Blanc",
		Quantity:  1,
	}
}

func TestStore_AddAndGet(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, sampleItem()))

	items, err := store.Get(ctx, "client@example.com")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "prod-1", items[0].ProductID)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestStore_AddSameVariantBumpsQuantity(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, sampleItem()))
	second := sampleItem()
	second.Quantity = 2
	require.NoError(t, store.Add(ctx, second))

	items, err := store.Get(ctx, "client@example.com")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestStore_DifferentSizeIsNewLine(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, sampleItem()))
	other := sampleItem()
	other.Size = "43"
	require.NoError(t, store.Add(ctx, other))

	items, err := store.Get(ctx, "client@example.com")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestStore_AddValidation(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.CartItem)
	}{
		{name: "missing cart key", mutate: func(i *models.CartItem) { i.CartKey = "" }},
		{name: "missing product", mutate: func(i *models.CartItem) { i.ProductID = "" }},
		{name: "zero quantity", mutate: func(i *models.CartItem) { i.Quantity = 0 }},
		{name: "negative price", mutate: func(i *models.CartItem) { i.Price = -1 }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			item := sampleItem()
			tt.mutate(item)

			err := store.Add(ctx, item)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestStore_RemoveOne(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	item := sampleItem()
	item.Quantity = 2
	require.NoError(t, store.Add(ctx, item))

	deleted, left, err := store.RemoveOne(ctx, "client@example.com", "prod-1", "42", "Blanc")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 1, left.Quantity)

	deleted, _, err = store.RemoveOne(ctx, "client@example.com", "prod-1", "42", "Blanc")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, _, err = store.RemoveOne(ctx, "client@example.com", "prod-1", "42", "Blanc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ClearAndLines(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, sampleItem()))
	other := sampleItem()
	other.ProductID = "prod-2"
	other.Quantity = 2
	require.NoError(t, store.Add(ctx, other))

	lines, err := store.Lines(ctx, "client@example.com")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Air Jordan 1 Retro High OG", lines[0].Title)

	require.NoError(t, store.Clear(ctx, "client@example.com"))

	lines, err = store.Lines(ctx, "client@example.com")
	require.NoError(t, err)
	assert.Empty(t, lines)
}
