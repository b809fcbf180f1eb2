// Package catalog serves product reads for the storefront.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sneakshop/backend/internal/models"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
)

type Service struct {
	Repo *GormRepo
}

func (s *Service) List(ctx context.Context, brand string, limit, offset int) ([]models.Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.List(ctx, brand, limit, offset)
}

func (s *Service) BySlug(ctx context.Context, slug string) (*models.Product, error) {
	if slug == "" {
		return nil, fmt.Errorf("%w: slug required", ErrValidation)
	}
	return s.Repo.BySlug(ctx, slug)
}

// Variants lists the sellable size/color combinations of a product
// with their current stock.
func (s *Service) Variants(ctx context.Context, productID string) ([]models.ProductVariant, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: product id required", ErrValidation)
	}
	return s.Repo.Variants(ctx, productID)
}

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) List(ctx context.Context, brand string, limit, offset int) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if brand != "" {
		q = q.Where("brand = ?", brand)
	}

	var products []models.Product
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormRepo) BySlug(ctx context.Context, slug string) (*models.Product, error) {
	var p models.Product
	if err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) Variants(ctx context.Context, productID string) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	if err := r.DB.WithContext(ctx).Where("product_id = ?", productID).Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}
