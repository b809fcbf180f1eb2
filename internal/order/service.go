// Package order creates and mutates the durable order record. An
// order is written once at the end of a successful checkout in
// pending status; after that only status transitions driven by the
// payment processor's callbacks touch it.
package order

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/sneakshop/backend/internal/models"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
	ErrTransition = errors.New("invalid status transition")
)

// transitions lists the allowed next statuses. delivered, cancelled
// and failed are terminal.
var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending: {models.OrderStatusPaid, models.OrderStatusCancelled, models.OrderStatusFailed},
	models.OrderStatusPaid:    {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped: {models.OrderStatusDelivered},
}

type CreateParams struct {
	CustomerEmail   string
	CustomerID      *string
	Items           []models.OrderItem
	Subtotal        float64
	Shipping        float64
	Tax             float64
	Total           float64
	PaymentIntentID string
	BillingAddress  *models.Address
	ShippingAddress *models.Address
}

type Service struct {
	Repo *GormRepo

	// Now is swappable in tests; defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) Create(ctx context.Context, p CreateParams) (*models.Order, error) {
	if p.CustomerEmail == "" {
		return nil, fmt.Errorf("%w: customer email required", ErrValidation)
	}
	if len(p.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	for i := range p.Items {
		if p.Items[i].Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
		if p.Items[i].Price < 0 {
			return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}
	}

	o := &models.Order{
		ID:              uuid.NewString(),
		OrderNumber:     NewOrderNumber(s.now()),
		CustomerEmail:   p.CustomerEmail,
		CustomerID:      p.CustomerID,
		Items:           p.Items,
		Subtotal:        p.Subtotal,
		Shipping:        p.Shipping,
		Tax:             p.Tax,
		Total:           p.Total,
		Status:          models.OrderStatusPending,
		PaymentIntentID: p.PaymentIntentID,
		BillingAddress:  p.BillingAddress,
		ShippingAddress: p.ShippingAddress,
	}

	return s.Repo.Create(ctx, o)
}

func (s *Service) ByID(ctx context.Context, id string) (*models.Order, error) {
	return s.Repo.ByID(ctx, id)
}

func (s *Service) ByCustomer(ctx context.Context, email string, limit, offset int) ([]models.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.ByCustomer(ctx, email, limit, offset)
}

// UpdateStatus transitions the order, refusing moves the lifecycle
// does not allow (terminal states never change again).
func (s *Service) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	current, err := s.Repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == status {
		return current, nil
	}
	if !allowed(current.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrTransition, current.Status, status)
	}
	return s.Repo.UpdateStatus(ctx, id, status)
}

func allowed(from, to models.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

const orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderNumber builds a CMD-<millis>-<suffix> number. Timestamp
// plus a random suffix avoids collisions without a central sequence.
func NewOrderNumber(now time.Time) string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = orderNumberAlphabet[rand.Intn(len(orderNumberAlphabet))]
	}
	return fmt.Sprintf("CMD-%d-%s", now.UnixMilli(), suffix)
}
