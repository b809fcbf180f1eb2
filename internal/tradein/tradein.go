// Package tradein handles buy-back requests: a customer describes a
// pair, attaches photos and gets a reference number; the shop then
// moves the request through its evaluation lifecycle.
package tradein

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sneakshop/backend/internal/models"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
	ErrTransition = errors.New("invalid status transition")
)

// MinPhotos is the number of photos a request must carry so the shop
// can evaluate the pair's condition remotely.
const MinPhotos = 4

var conditions = map[string]bool{
	"neuf_etiquette":      true,
	"neuf_sans_etiquette": true,
	"tres_bon_etat":       true,
	"bon_etat":            true,
	"etat_correct":        true,
	"use":                 true,
}

var transitions = map[models.TradeInStatus][]models.TradeInStatus{
	models.TradeInPending:    {models.TradeInEvaluating, models.TradeInCancelled},
	models.TradeInEvaluating: {models.TradeInAccepted, models.TradeInRejected, models.TradeInCancelled},
	models.TradeInAccepted:   {models.TradeInShipped, models.TradeInCancelled},
	models.TradeInShipped:    {models.TradeInReceived},
	models.TradeInReceived:   {models.TradeInPaid},
}

type SubmitParams struct {
	CustomerEmail   string
	CustomerPhone   string
	CustomerID      *string
	Brand           string
	Model           string
	Size            string
	Color           string
	Condition       string
	PurchasePrice   float64
	OriginalBox     bool
	OriginalReceipt bool
	Photos          []string
	ShippingAddress *models.Address
}

type Service struct {
	Repo *GormRepo
	Now  func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) Submit(ctx context.Context, p SubmitParams) (*models.TradeIn, error) {
	if p.CustomerEmail == "" {
		return nil, fmt.Errorf("%w: customer email required", ErrValidation)
	}
	if p.Brand == "" || p.Model == "" || p.Size == "" {
		return nil, fmt.Errorf("%w: brand, model and size required", ErrValidation)
	}
	if !conditions[p.Condition] {
		return nil, fmt.Errorf("%w: unknown condition %q", ErrValidation, p.Condition)
	}
	if len(p.Photos) < MinPhotos {
		return nil, fmt.Errorf("%w: au moins %d photos sont requises", ErrValidation, MinPhotos)
	}

	ti := &models.TradeIn{
		ID:              uuid.NewString(),
		Reference:       NewReference(s.now()),
		CustomerEmail:   p.CustomerEmail,
		CustomerPhone:   p.CustomerPhone,
		CustomerID:      p.CustomerID,
		Brand:           p.Brand,
		Model:           p.Model,
		Size:            p.Size,
		Color:           p.Color,
		Condition:       p.Condition,
		PurchasePrice:   p.PurchasePrice,
		OriginalBox:     p.OriginalBox,
		OriginalReceipt: p.OriginalReceipt,
		Photos:          p.Photos,
		Status:          models.TradeInPending,
		ShippingAddress: p.ShippingAddress,
	}
	return s.Repo.Create(ctx, ti)
}

func (s *Service) ByReference(ctx context.Context, reference string) (*models.TradeIn, error) {
	return s.Repo.ByReference(ctx, reference)
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status models.TradeInStatus) (*models.TradeIn, error) {
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

func allowed(from, to models.TradeInStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NewReference builds REP-YYYYMMDD-HHMMSS-XXXX, readable enough to
// quote over the phone and unique enough without a sequence.
func NewReference(now time.Time) string {
	return fmt.Sprintf("REP-%s-%s-%04d",
		now.Format("20060102"), now.Format("150405"), rand.Intn(10000))
}

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) Create(ctx context.Context, ti *models.TradeIn) (*models.TradeIn, error) {
	if err := r.DB.WithContext(ctx).Create(ti).Error; err != nil {
		return nil, err
	}
	return ti, nil
}

func (r *GormRepo) ByID(ctx context.Context, id string) (*models.TradeIn, error) {
	var ti models.TradeIn
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&ti).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ti, nil
}

func (r *GormRepo) ByReference(ctx context.Context, reference string) (*models.TradeIn, error) {
	var ti models.TradeIn
	if err := r.DB.WithContext(ctx).Where("reference = ?", reference).First(&ti).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ti, nil
}

func (r *GormRepo) UpdateStatus(ctx context.Context, id string, status models.TradeInStatus) (*models.TradeIn, error) {
	res := r.DB.WithContext(ctx).Model(&models.TradeIn{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.ByID(ctx, id)
}
