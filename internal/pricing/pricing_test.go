package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sneakshop/backend/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func testItems() []models.CartLine {
	return []models.CartLine{
		{ProductID: "prod-1", Title: "Air Jordan 1 Retro High OG", Brand: "Air Jordan", Price: 59.9, Size: "42", Color: "Blanc", Quantity: 1},
		{ProductID: "prod-2", Title: "Nike Air Max 90 Essential", Brand: "Nike", Price: 69.5, Size: "43", Color: "Noir", Quantity: 2},
	}
}

func TestCalculateCartTotal_NoCoupon(t *testing.T) {
	t.Parallel()

	got := CalculateCartTotal(testItems(), DefaultOptions())

	assert.InDelta(t, 198.9, got.Subtotal, 0.001)
	assert.InDelta(t, 39.78, got.VAT, 0.001)
	assert.Zero(t, got.Shipping, "subtotal above threshold ships free")
	assert.Zero(t, got.Discount)
	assert.InDelta(t, 238.68, got.Total, 0.001)
	assert.Equal(t, "eur", got.Currency)
}

func TestCalculateCartTotal_FixedCoupon(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.Coupon = &models.Coupon{Code: "WELCOME10", Kind: models.CouponFixed, Value: 10, MinAmount: floatPtr(50)}

	got := CalculateCartTotal(testItems(), opts)

	assert.InDelta(t, 198.9, got.Subtotal, 0.001)
	assert.InDelta(t, 10, got.Discount, 0.001)
	assert.InDelta(t, 228.68, got.Total, 0.001)
}

func TestCalculateCartTotal_PercentageCouponCappedAtMaxDiscount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		maxDiscount *float64
		want        float64
	}{
		{name: "below cap", maxDiscount: floatPtr(50), want: 39.78},
		{name: "clamped to cap", maxDiscount: floatPtr(20), want: 20},
		{name: "no cap", maxDiscount: nil, want: 39.78},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := DefaultOptions()
			opts.Coupon = &models.Coupon{Code: "SAVE20", Kind: models.CouponPercentage, Value: 20, MinAmount: floatPtr(100), MaxDiscount: tt.maxDiscount}

			got := CalculateCartTotal(testItems(), opts)
			assert.InDelta(t, tt.want, got.Discount, 0.001)
		})
	}
}

func TestCalculateCartTotal_CouponBelowMinimumIsZeroDiscount(t *testing.T) {
	t.Parallel()

	items := []models.CartLine{{ProductID: "prod-1", Price: 30, Quantity: 1}}
	opts := DefaultOptions()
	opts.Coupon = &models.Coupon{Code: "WELCOME10", Kind: models.CouponFixed, Value: 10, MinAmount: floatPtr(50)}

	got := CalculateCartTotal(items, opts)

	assert.Zero(t, got.Discount, "ineligible coupon contributes nothing, no error")
	assert.InDelta(t, 30, got.Subtotal, 0.001)
}

func TestCalculateCartTotal_FixedCouponClampedToSubtotal(t *testing.T) {
	t.Parallel()

	items := []models.CartLine{{ProductID: "prod-1", Price: 5, Quantity: 1}}
	opts := DefaultOptions()
	opts.Coupon = &models.Coupon{Code: "TENOFF", Kind: models.CouponFixed, Value: 10}

	got := CalculateCartTotal(items, opts)

	assert.InDelta(t, 5, got.Discount, 0.001)
	require.GreaterOrEqual(t, got.Total, 0.0)
}

func TestCalculateCartTotal_DecimalHeavyRounding(t *testing.T) {
	t.Parallel()

	items := []models.CartLine{{ProductID: "prod-1", Price: 33.33, Quantity: 3}}

	got := CalculateCartTotal(items, DefaultOptions())

	// 99.99 * 0.20 = 19.998, rounds up to 20.00.
	assert.InDelta(t, 99.99, got.Subtotal, 0.001)
	assert.InDelta(t, 20.00, got.VAT, 0.001)
	assert.InDelta(t, 9.99, got.Shipping, 0.001, "below the free-shipping threshold")
	assert.InDelta(t, 129.98, got.Total, 0.001)
}

func TestCalculateCartTotal_ShippingThresholdBoundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		price float64
		want  float64
	}{
		{name: "exactly at threshold", price: 150, want: 0},
		{name: "just below threshold", price: 149.99, want: 9.99},
		{name: "above threshold", price: 200, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			items := []models.CartLine{{ProductID: "prod-1", Price: tt.price, Quantity: 1}}
			got := CalculateCartTotal(items, DefaultOptions())
			assert.InDelta(t, tt.want, got.Shipping, 0.001)
		})
	}
}

func TestCalculateCartTotal_EmptyCartIsZero(t *testing.T) {
	t.Parallel()

	got := CalculateCartTotal(nil, DefaultOptions())

	assert.Zero(t, got.Subtotal)
	assert.Zero(t, got.VAT)
	assert.Zero(t, got.Discount)
	assert.InDelta(t, 9.99, got.Shipping, 0.001)
	assert.InDelta(t, 9.99, got.Total, 0.001)
}

func TestCalculateCartTotal_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	items := testItems()
	opts := DefaultOptions()
	expired := time.Now().Add(-time.Hour)
	opts.Coupon = &models.Coupon{Code: "SAVE20", Kind: models.CouponPercentage, Value: 20, ExpiresAt: &expired}

	_ = CalculateCartTotal(items, opts)

	assert.Equal(t, testItems(), items)
}

func TestMinorUnits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(22868), MinorUnits(228.68))
	assert.Equal(t, int64(12998), MinorUnits(129.98))
	assert.Equal(t, int64(0), MinorUnits(0))
}
