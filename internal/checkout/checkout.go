// Package checkout sequences a purchase attempt: price the cart,
// hold the stock, open a payment intent, persist the order. Each
// stage's failure short-circuits the pipeline; nothing after a failed
// stage runs, and the caller gets a single tagged result.
package checkout

import (
	"context"
	"strconv"
	"strings"

	"github.com/sneakshop/backend/internal/inventory"
	"github.com/sneakshop/backend/internal/models"
	"github.com/sneakshop/backend/internal/order"
	"github.com/sneakshop/backend/internal/payment"
	"github.com/sneakshop/backend/internal/pricing"
	"github.com/sneakshop/backend/pkg/logging"
)

// Kind tags failures so callers can branch without matching on the
// human-readable message.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindStock       Kind = "stock"
	KindPayment     Kind = "payment"
	KindPersistence Kind = "persistence"
)

const (
	msgEmptyCart       = "Panier vide"
	msgEmailRequired   = "Email client requis"
	msgBillingRequired = "Adresse de facturation requise"
	msgStock           = "Stock insuffisant pour certains articles"
)

type Params struct {
	Items           []models.CartLine `json:"items"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerID      *string           `json:"customer_id,omitempty"`
	CouponCode      string            `json:"coupon_code,omitempty"`
	Currency        string            `json:"currency,omitempty"`
	BillingAddress  *models.Address   `json:"billing_address"`
	ShippingAddress *models.Address   `json:"shipping_address,omitempty"`
}

type Result struct {
	Success      bool   `json:"success"`
	ClientSecret string `json:"client_secret,omitempty"`
	OrderID      string `json:"order_id,omitempty"`
	Error        string `json:"error,omitempty"`
	Kind         Kind   `json:"error_kind,omitempty"`
}

type CouponLookup interface {
	GetCoupon(ctx context.Context, code string) (*models.Coupon, error)
}

type StockReserver interface {
	CheckAndReserve(ctx context.Context, items []inventory.Item) (bool, error)
	Release(ctx context.Context, items []inventory.Item) error
}

type IntentCreator interface {
	CreateIntent(ctx context.Context, params payment.CreateIntentParams) (*payment.Intent, error)
}

type OrderCreator interface {
	Create(ctx context.Context, p order.CreateParams) (*models.Order, error)
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, key string, event any) error
}

type Service struct {
	Coupons  CouponLookup
	Stock    StockReserver
	Payments IntentCreator
	Orders   OrderCreator
	Events   EventPublisher

	// Pricing holds the storefront defaults; the per-attempt coupon
	// and currency are filled in from Params.
	Pricing pricing.Options

	// ReleaseOnFailure frees the stock holds when the payment or
	// persistence stage fails afterwards. Off by default: historically
	// those holds were left in place (see DESIGN.md), so freeing them
	// is opt-in hardening.
	ReleaseOnFailure bool
}

func failure(kind Kind, msg string) Result {
	return Result{Success: false, Error: msg, Kind: kind}
}

// ValidateParams checks the input shape. It runs before any side
// effect, so a bad request never touches stock, payment or storage.
func ValidateParams(p Params) *Result {
	if len(p.Items) == 0 {
		r := failure(KindValidation, msgEmptyCart)
		return &r
	}
	if p.CustomerEmail == "" {
		r := failure(KindValidation, msgEmailRequired)
		return &r
	}
	if p.BillingAddress == nil {
		r := failure(KindValidation, msgBillingRequired)
		return &r
	}
	return nil
}

func (s *Service) Checkout(ctx context.Context, p Params) Result {
	l := logging.FromContext(ctx).With("handler", "checkout")

	if r := ValidateParams(p); r != nil {
		return *r
	}

	currency := p.Currency
	if currency == "" {
		currency = s.Pricing.Currency
	}
	if currency == "" {
		currency = "eur"
	}

	opts := s.Pricing
	opts.Currency = currency
	if p.CouponCode != "" {
		c, err := s.Coupons.GetCoupon(ctx, p.CouponCode)
		if err != nil {
			// An unreachable coupon store prices the cart without a
			// discount rather than blocking the purchase.
			l.Warn("coupon_lookup_failed", "code", p.CouponCode, "error", err)
		}
		opts.Coupon = c
	}

	breakdown := pricing.CalculateCartTotal(p.Items, opts)

	stockItems := make([]inventory.Item, 0, len(p.Items))
	for _, it := range p.Items {
		stockItems = append(stockItems, inventory.Item{
			ProductID: it.ProductID,
			Size:      it.Size,
			Color:     it.Color,
			Quantity:  it.Quantity,
		})
	}

	reserved, err := s.Stock.CheckAndReserve(ctx, stockItems)
	if err != nil || !reserved {
		if err != nil {
			l.Error("stock_reservation_failed", "error", err)
		}
		return failure(KindStock, msgStock)
	}

	intent, err := s.Payments.CreateIntent(ctx, payment.CreateIntentParams{
		Amount:   pricing.MinorUnits(breakdown.Total),
		Currency: strings.ToUpper(currency),
		Metadata: map[string]string{
			"customer_email": p.CustomerEmail,
			"order_items":    strconv.Itoa(len(p.Items)),
		},
	})
	if err != nil {
		l.Error("payment_intent_failed", "error", err)
		s.compensate(ctx, stockItems)
		return failure(KindPayment, err.Error())
	}

	items := make([]models.OrderItem, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, models.OrderItem{
			ProductID: it.ProductID,
			Title:     it.Title,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Size:      it.Size,
			Color:     it.Color,
		})
	}

	o, err := s.Orders.Create(ctx, order.CreateParams{
		CustomerEmail:   p.CustomerEmail,
		CustomerID:      p.CustomerID,
		Items:           items,
		Subtotal:        breakdown.Subtotal,
		Shipping:        breakdown.Shipping,
		Tax:             breakdown.VAT,
		Total:           breakdown.Total,
		PaymentIntentID: intent.ID,
		BillingAddress:  p.BillingAddress,
		ShippingAddress: p.ShippingAddress,
	})
	if err != nil {
		l.Error("order_persist_failed", "error", err)
		s.compensate(ctx, stockItems)
		return failure(KindPersistence, err.Error())
	}

	s.publish(ctx, o)

	l.Info("checkout_success", "order_id", o.ID, "order_number", o.OrderNumber, "total", o.Total)
	return Result{Success: true, ClientSecret: intent.ClientSecret, OrderID: o.ID}
}

func (s *Service) compensate(ctx context.Context, items []inventory.Item) {
	if !s.ReleaseOnFailure {
		return
	}
	if err := s.Stock.Release(ctx, items); err != nil {
		logging.FromContext(ctx).Error("stock_release_failed", "error", err)
	}
}

func (s *Service) publish(ctx context.Context, o *models.Order) {
	if s.Events == nil {
		return
	}
	event := map[string]any{
		"type":         "order_created",
		"order_id":     o.ID,
		"order_number": o.OrderNumber,
		"email":        o.CustomerEmail,
		"total":        o.Total,
	}
	if err := s.Events.PublishEvent(ctx, o.ID, event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "error", err)
	}
}
