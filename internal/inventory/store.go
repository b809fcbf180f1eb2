package inventory

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/sneakshop/backend/internal/models"
)

// GormStore keeps stock in the product_variants table. The decrement
// is a single conditional UPDATE, so concurrent checkouts cannot both
// take the last unit.
type GormStore struct {
	DB *gorm.DB
}

func (s *GormStore) Available(ctx context.Context, productID, size, color string) (int, error) {
	var v models.ProductVariant
	err := s.DB.WithContext(ctx).
		Where("product_id = ? AND size = ? AND color = ?", productID, size, color).
		First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return v.Stock, nil
}

func (s *GormStore) Reserve(ctx context.Context, productID, size, color string, quantity int) error {
	res := s.DB.WithContext(ctx).Model(&models.ProductVariant{}).
		Where("product_id = ? AND size = ? AND color = ? AND stock >= ?", productID, size, color, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficient
	}
	return nil
}

func (s *GormStore) Release(ctx context.Context, productID, size, color string, quantity int) error {
	return s.DB.WithContext(ctx).Model(&models.ProductVariant{}).
		Where("product_id = ? AND size = ? AND color = ?", productID, size, color).
		Update("stock", gorm.Expr("stock + ?", quantity)).Error
}

// MemoryStore is an in-process inventory used in tests and local runs
// without a database.
type MemoryStore struct {
	mu    sync.Mutex
	stock map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{stock: make(map[string]int)}
}

func variantKey(productID, size, color string) string {
	return productID + "|" + size + "|" + color
}

func (s *MemoryStore) Set(productID, size, color string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock[variantKey(productID, size, color)] = quantity
}

func (s *MemoryStore) Available(_ context.Context, productID, size, color string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stock[variantKey(productID, size, color)], nil
}

func (s *MemoryStore) Reserve(_ context.Context, productID, size, color string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := variantKey(productID, size, color)
	if s.stock[key] < quantity {
		return ErrInsufficient
	}
	s.stock[key] -= quantity
	return nil
}

func (s *MemoryStore) Release(_ context.Context, productID, size, color string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock[variantKey(productID, size, color)] += quantity
	return nil
}
