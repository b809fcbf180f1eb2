// Package payment requests authorization handles from the external
// payment processor. Provider failures pass through opaque: the
// checkout treats any of them as terminal for the attempt.
package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type CreateIntentParams struct {
	// Amount is in integer minor units (cents).
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type Provider interface {
	CreateIntent(ctx context.Context, params CreateIntentParams) (*Intent, error)
}

// Adapter bounds every provider call with a timeout so a hung
// processor cannot block a checkout attempt indefinitely.
type Adapter struct {
	Provider Provider
	Timeout  time.Duration
}

func (a *Adapter) CreateIntent(ctx context.Context, params CreateIntentParams) (*Intent, error) {
	timeout := a.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	intent, err := a.Provider.CreateIntent(ctx, params)
	if err != nil {
		return nil, err
	}
	return intent, nil
}

// SimulatedProvider stands in for the hosted processor in tests and
// local runs. Handles look like the real provider's test-mode ids.
type SimulatedProvider struct {
	// Delay approximates the round trip to the processor.
	Delay time.Duration
}

func (p *SimulatedProvider) CreateIntent(ctx context.Context, params CreateIntentParams) (*Intent, error) {
	if p.Delay > 0 {
		select {
		case <-time.After(p.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if params.Amount <= 0 {
		return nil, fmt.Errorf("invalid amount: %d", params.Amount)
	}

	suffix := randomHex(9)
	return &Intent{
		ID:           fmt.Sprintf("pi_test_%d_%s", time.Now().UnixMilli(), suffix),
		ClientSecret: fmt.Sprintf("pi_test_%d_secret_%s", time.Now().UnixMilli(), randomHex(9)),
		Status:       "requires_payment_method",
		Amount:       params.Amount,
		Currency:     params.Currency,
	}, nil
}

func randomHex(n int) string {
	buf := make([]byte, (n+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)[:n]
}
