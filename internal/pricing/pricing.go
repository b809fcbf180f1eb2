// Package pricing computes the checkout price breakdown: subtotal,
// VAT, shipping, coupon discount and final total. It is pure and
// deterministic; eligibility failures never surface as errors here,
// an ineligible coupon simply contributes a zero discount.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/sneakshop/backend/internal/models"
)

// Options configures one calculation. The zero value is not useful;
// start from DefaultOptions and override what differs.
type Options struct {
	VATRate               float64
	ShippingCost          float64
	FreeShippingThreshold float64
	Coupon                *models.Coupon
	Currency              string
}

// DefaultOptions returns the storefront defaults: 20% French VAT,
// 9.99 shipping free from 150 up, amounts in euros.
func DefaultOptions() Options {
	return Options{
		VATRate:               0.20,
		ShippingCost:          9.99,
		FreeShippingThreshold: 150,
		Currency:              "eur",
	}
}

type Breakdown struct {
	Subtotal float64 `json:"subtotal"`
	VATRate  float64 `json:"vat_rate"`
	VAT      float64 `json:"vat_amount"`
	Shipping float64 `json:"shipping"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

// CalculateCartTotal prices a cart. Amounts are rounded to two
// decimals half away from zero; the subtotal is rounded once and that
// value drives the VAT, shipping threshold and discount rules, so the
// components always reconcile with the final total. An empty cart
// yields an all-zero breakdown; rejecting it is the caller's job.
func CalculateCartTotal(items []models.CartLine, opts Options) Breakdown {
	currency := opts.Currency
	if currency == "" {
		currency = "eur"
	}

	subtotal := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		subtotal = subtotal.Add(line)
	}
	subtotal = subtotal.Round(2)

	vat := subtotal.Mul(decimal.NewFromFloat(opts.VATRate)).Round(2)

	shipping := decimal.NewFromFloat(opts.ShippingCost)
	if subtotal.GreaterThanOrEqual(decimal.NewFromFloat(opts.FreeShippingThreshold)) {
		shipping = decimal.Zero
	}

	discount := couponDiscount(opts.Coupon, subtotal)

	total := subtotal.Add(vat).Add(shipping).Sub(discount).Round(2)

	sub, _ := subtotal.Float64()
	vatF, _ := vat.Float64()
	shipF, _ := shipping.Float64()
	discF, _ := discount.Float64()
	totF, _ := total.Float64()

	return Breakdown{
		Subtotal: sub,
		VATRate:  opts.VATRate,
		VAT:      vatF,
		Shipping: shipF,
		Discount: discF,
		Total:    totF,
		Currency: currency,
	}
}

// couponDiscount applies the coupon against the rounded subtotal. A
// coupon below its own minimum spend is silently worth zero; the
// user-facing eligibility error belongs to the coupon validator.
func couponDiscount(c *models.Coupon, subtotal decimal.Decimal) decimal.Decimal {
	if c == nil {
		return decimal.Zero
	}
	if c.MinAmount != nil && subtotal.LessThan(decimal.NewFromFloat(*c.MinAmount)) {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch c.Kind {
	case models.CouponPercentage:
		discount = subtotal.Mul(decimal.NewFromFloat(c.Value)).Div(decimal.NewFromInt(100)).Round(2)
		if c.MaxDiscount != nil {
			discount = decimal.Min(discount, decimal.NewFromFloat(*c.MaxDiscount))
		}
	case models.CouponFixed:
		discount = decimal.Min(decimal.NewFromFloat(c.Value), subtotal)
	default:
		return decimal.Zero
	}

	// The discount never exceeds the subtotal and never goes negative.
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	return discount
}

// MinorUnits converts a major-unit amount to integer minor units
// (cents), the representation the payment provider expects.
func MinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
