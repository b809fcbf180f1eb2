// Package inventory holds stock during a checkout attempt. A
// reservation is all-or-nothing: when any line cannot be covered,
// every hold taken in the same attempt is released again.
package inventory

import (
	"context"
	"errors"

	"github.com/sneakshop/backend/pkg/logging"
)

// ErrInsufficient is returned by a Store when the conditional
// decrement finds less stock than requested.
var ErrInsufficient = errors.New("insufficient stock")

type Item struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// Reservation records the outcome for one line of an attempt.
type Reservation struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
	Reserved  bool   `json:"reserved"`
}

// Store is the inventory backend. Reserve must decrement atomically,
// returning ErrInsufficient rather than going negative; two attempts
// competing for the last unit must not both succeed.
type Store interface {
	Available(ctx context.Context, productID, size, color string) (int, error)
	Reserve(ctx context.Context, productID, size, color string, quantity int) error
	Release(ctx context.Context, productID, size, color string, quantity int) error
}

type Service struct {
	Store Store
}

// CheckAndReserve tries to hold stock for every item. It returns true
// only when every line was reserved; on any shortfall or backend
// error the holds already taken are released and the result is false.
func (s *Service) CheckAndReserve(ctx context.Context, items []Item) (bool, error) {
	l := logging.FromContext(ctx)

	results := make([]Reservation, 0, len(items))
	var firstErr error

	for _, it := range items {
		available, err := s.Store.Available(ctx, it.ProductID, it.Size, it.Color)
		if err != nil {
			firstErr = err
			break
		}

		res := Reservation{
			ProductID: it.ProductID,
			Size:      it.Size,
			Color:     it.Color,
			Requested: it.Quantity,
			Available: available,
		}

		if available >= it.Quantity {
			err := s.Store.Reserve(ctx, it.ProductID, it.Size, it.Color, it.Quantity)
			if err == nil {
				res.Reserved = true
			} else if !errors.Is(err, ErrInsufficient) {
				firstErr = err
				results = append(results, res)
				break
			}
			// ErrInsufficient here means another attempt won the race
			// between the availability read and the decrement; the
			// line simply stays unreserved.
		}
		results = append(results, res)
	}

	allReserved := firstErr == nil && len(results) == len(items)
	for _, r := range results {
		if !r.Reserved {
			allReserved = false
		}
	}

	if !allReserved {
		s.rollback(ctx, results)
		if firstErr != nil {
			l.Error("stock_check_failed", "error", firstErr)
			return false, firstErr
		}
		return false, nil
	}
	return true, nil
}

// Release frees previously reserved quantities, used by callers that
// compensate after a failure later in the checkout pipeline.
func (s *Service) Release(ctx context.Context, items []Item) error {
	var firstErr error
	for _, it := range items {
		if err := s.Store.Release(ctx, it.ProductID, it.Size, it.Color, it.Quantity); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *Service) rollback(ctx context.Context, results []Reservation) {
	l := logging.FromContext(ctx)
	for _, r := range results {
		if !r.Reserved {
			continue
		}
		if err := s.Store.Release(ctx, r.ProductID, r.Size, r.Color, r.Requested); err != nil {
			l.Error("stock_release_failed", "product_id", r.ProductID, "size", r.Size, "color", r.Color, "error", err)
		}
	}
}
