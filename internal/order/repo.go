package order

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sneakshop/backend/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) Create(ctx context.Context, o *models.Order) (*models.Order, error) {
	if err := r.DB.WithContext(ctx).Create(o).Error; err != nil {
		return nil, err
	}
	return o, nil
}

func (r *GormRepo) ByID(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	err := r.DB.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *GormRepo) ByCustomer(ctx context.Context, email string, limit, offset int) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).Preload("Items").
		Where("customer_email = ?", email).
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.ByID(ctx, id)
}
