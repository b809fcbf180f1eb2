// Package cart is the server-side cart. Contents are owned by an
// explicit Store keyed by a cart key (customer id or anonymous
// session), passed to whoever needs them — there is no ambient
// global cart state.
package cart

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

type Store struct {
	Repo *GormRepo
}

func (s *Store) Get(ctx context.Context, cartKey string) ([]models.CartItem, error) {
	if cartKey == "" {
		return nil, fmt.Errorf("%w: cart key required", ErrValidation)
	}
	return s.Repo.Items(ctx, cartKey)
}

func (s *Store) Add(ctx context.Context, item *models.CartItem) error {
	if item.CartKey == "" {
		return fmt.Errorf("%w: cart key required", ErrValidation)
	}
	if item.ProductID == "" {
		return fmt.Errorf("%w: product_id required", ErrValidation)
	}
	if item.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}
	if item.Price < 0 {
		return fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	return s.Repo.Upsert(ctx, item)
}

// RemoveOne decrements a line by one unit, deleting it at zero. The
// returned bool reports whether the line was deleted entirely.
func (s *Store) RemoveOne(ctx context.Context, cartKey, productID, size, color string) (bool, *models.CartItem, error) {
	if productID == "" {
		return false, nil, fmt.Errorf("%w: product_id required", ErrValidation)
	}
	deleted, item, err := s.Repo.DecrementOrDelete(ctx, cartKey, productID, size, color)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil, fmt.Errorf("cart line not found: %w", ErrNotFound)
	}
	return deleted, item, err
}

func (s *Store) Clear(ctx context.Context, cartKey string) error {
	if cartKey == "" {
		return fmt.Errorf("%w: cart key required", ErrValidation)
	}
	return s.Repo.Clear(ctx, cartKey)
}

// Lines snapshots the cart as checkout input.
func (s *Store) Lines(ctx context.Context, cartKey string) ([]models.CartLine, error) {
	items, err := s.Get(ctx, cartKey)
	if err != nil {
		return nil, err
	}
	lines := make([]models.CartLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, models.CartLine{
			ProductID: it.ProductID,
			Title:     it.Title,
			Brand:     it.Brand,
			Price:     it.Price,
			Image:     it.Image,
			Size:      it.Size,
			Color:     it.Color,
			Quantity:  it.Quantity,
		})
	}
	return lines, nil
}
