package catalog

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sneakshop/backend/internal/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.ProductVariant{}))

	svc := &Service{Repo: &GormRepo{DB: db}}

	products := []models.Product{
		{ID: "prod-1", Slug: "air-jordan-1-retro", Title: "Air Jordan 1 Retro High OG", Brand: "Air Jordan", Price: 59.9},
		{ID: "prod-2", Slug: "air-max-90", Title: "Nike Air Max 90 Essential", Brand: "Nike", Price: 69.5},
		{ID: "prod-3", Slug: "dunk-low", Title: "Nike Dunk Low", Brand: "Nike", Price: 89.9},
	}
	require.NoError(t, db.Create(&products).Error)
	require.NoError(t, db.Create(&models.ProductVariant{ProductID: "prod-1", Size: "42", Color: "Blanc", Stock: 4}).Error)

	return svc
}

func TestService_List(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	all, err := svc.List(context.Background(), "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	nike, err := svc.List(context.Background(), "Nike", 20, 0)
	require.NoError(t, err)
	assert.Len(t, nike, 2)
}

func TestService_BySlug(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	p, err := svc.BySlug(context.Background(), "air-jordan-1-retro")
	require.NoError(t, err)
	assert.Equal(t, "prod-1", p.ID)

	_, err = svc.BySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.BySlug(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Variants(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	variants, err := svc.Variants(context.Background(), "prod-1")
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, 4, variants[0].Stock)
}
