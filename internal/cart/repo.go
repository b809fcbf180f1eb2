package cart

import (
	"context"

	"gorm.io/gorm"

	"github.com/sneakshop/backend/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) Items(ctx context.Context, cartKey string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).Where("cart_key = ?", cartKey).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Upsert bumps the quantity of an existing line or inserts a new one.
func (r *GormRepo) Upsert(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("cart_key = ? AND product_id = ? AND size = ? AND color = ?", item.CartKey, item.ProductID, item.Size, item.Color).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Where("cart_key = ? AND product_id = ? AND size = ? AND color = ?", item.CartKey, item.ProductID, item.Size, item.Color).
				First(item).Error
		}
		return tx.Create(item).Error
	})
}

func (r *GormRepo) DecrementOrDelete(ctx context.Context, cartKey, productID, size, color string) (bool, *models.CartItem, error) {
	var item models.CartItem
	deleted := false

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_key = ? AND product_id = ? AND size = ? AND color = ?", cartKey, productID, size, color).
			First(&item).Error; err != nil {
			return err
		}
		if item.Quantity > 1 {
			if err := tx.Model(&item).Update("quantity", gorm.Expr("quantity - 1")).Error; err != nil {
				return err
			}
			return tx.Where("id = ?", item.ID).First(&item).Error
		}
		deleted = true
		return tx.Delete(&item).Error
	})
	if err != nil {
		return false, nil, err
	}
	return deleted, &item, nil
}

func (r *GormRepo) Clear(ctx context.Context, cartKey string) error {
	return r.DB.WithContext(ctx).Where("cart_key = ?", cartKey).Delete(&models.CartItem{}).Error
}
