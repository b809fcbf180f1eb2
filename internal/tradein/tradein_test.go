package tradein

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sneakshop/backend/internal/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.TradeIn{}))

	return &Service{Repo: &GormRepo{DB: db}}
}

func submitParams() SubmitParams {
	return SubmitParams{
		CustomerEmail: "client@example.com",
		CustomerPhone: "+33612345678",
		Brand:         "Air Jordan",
		Model:         "1 Retro High OG",
		Size:          "42",
		Color:         "Chicago",
		Condition:     "tres_bon_etat",
		PurchasePrice: 179.99,
		OriginalBox:   true,
		Photos:        []string{"p1.jpg", "p2.jpg", "p3.jpg", "p4.jpg"},
		ShippingAddress: &models.Address{
			FirstName: "Jean", LastName: "Dupont",
			Address: "1 rue de Rivoli", City: "Paris", PostalCode: "75001", Country: "FR",
		},
	}
}

func TestService_Submit(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	ti, err := svc.Submit(ctx, submitParams())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ti.Reference, "REP-"))
	assert.Equal(t, models.TradeInPending, ti.Status)
	assert.Len(t, ti.Photos, 4)

	stored, err := svc.ByReference(ctx, ti.Reference)
	require.NoError(t, err)
	assert.Equal(t, ti.ID, stored.ID)
	assert.Equal(t, "tres_bon_etat", stored.Condition)
	assert.Equal(t, []string{"p1.jpg", "p2.jpg", "p3.jpg", "p4.jpg"}, stored.Photos)
}

func TestService_Submit_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*SubmitParams)
	}{
		{name: "missing email", mutate: func(p *SubmitParams) { p.CustomerEmail = "" }},
		{name: "missing brand", mutate: func(p *SubmitParams) { p.Brand = "" }},
		{name: "missing model", mutate: func(p *SubmitParams) { p.Model = "" }},
		{name: "unknown condition", mutate: func(p *SubmitParams) { p.Condition = "comme_neuf" }},
		{name: "too few photos", mutate: func(p *SubmitParams) { p.Photos = p.Photos[:3] }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := submitParams()
			tt.mutate(&p)

			_, err := svc.Submit(ctx, p)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestService_UpdateStatus_Lifecycle(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	ti, err := svc.Submit(ctx, submitParams())
	require.NoError(t, err)

	for _, status := range []models.TradeInStatus{
		models.TradeInEvaluating,
		models.TradeInAccepted,
		models.TradeInShipped,
		models.TradeInReceived,
		models.TradeInPaid,
	} {
		ti, err = svc.UpdateStatus(ctx, ti.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, ti.Status)
	}
}

func TestService_UpdateStatus_RefusesSkippingEvaluation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	ti, err := svc.Submit(ctx, submitParams())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, ti.ID, models.TradeInPaid)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransition)
}

func TestNewReference(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 15, 9, 30, 45, 0, time.UTC)
	ref := NewReference(now)

	assert.True(t, strings.HasPrefix(ref, "REP-20260315-093045-"))
	assert.Len(t, ref, len("REP-20260315-093045-0000"))
}
