// Package coupon validates discount codes and looks them up by code.
// Validation is advisory: the pricing calculator re-checks the
// minimum spend on its own, so an invalid coupon silently prices as
// zero discount. The explicit error here is for the "apply coupon"
// action, surfaced to the customer at input time.
package coupon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sneakshop/backend/internal/models"
)

var (
	// ErrExpired is returned when the coupon's expiry is in the past.
	ErrExpired = errors.New("coupon expiré")
	// ErrBelowMinimum is returned when the subtotal does not reach the
	// coupon's minimum spend.
	ErrBelowMinimum = errors.New("montant minimum requis")
)

// Validate checks a coupon against a subtotal at the given time.
// A nil return means the coupon is applicable.
func Validate(c *models.Coupon, subtotal float64, now time.Time) error {
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return ErrExpired
	}
	if c.MinAmount != nil && subtotal < *c.MinAmount {
		return fmt.Errorf("%w: montant minimum de %.2f€ requis", ErrBelowMinimum, *c.MinAmount)
	}
	return nil
}

type GormRepo struct {
	DB *gorm.DB
}

// GetCoupon resolves a code to its coupon, or nil when the code is
// unknown. Lookup errors other than not-found are surfaced.
func (r *GormRepo) GetCoupon(ctx context.Context, code string) (*models.Coupon, error) {
	var c models.Coupon
	if err := r.DB.WithContext(ctx).Where("code = ?", code).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
