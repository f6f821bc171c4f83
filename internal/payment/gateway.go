package payment

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/text/currency"
)

var (
	// ErrAmountTooSmall rejects intents below one minor unit before any
	// network call is made.
	ErrAmountTooSmall = errors.New("amount must be at least 1")

	ErrBadSignature = errors.New("webhook signature verification failed")
)

// Intent is a processor handle for an in-progress payment attempt.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// WebhookEvent is a verified asynchronous notification from a processor.
type WebhookEvent struct {
	Type        string
	PaymentRef  string
	AmountCents int64
	OrderNumber string
}

// Gateway abstracts the card processor: both the synchronous confirmation
// path and the asynchronous webhook path go through it, so order creation
// has a single idempotency anchor (the payment reference).
type Gateway interface {
	CreateIntent(ctx context.Context, amountCents int64, cur string, idempotencyKey string) (*Intent, error)
	VerifyWebhook(payload []byte, signatureHeader string) (*WebhookEvent, error)
}

// ValidateCurrency rejects configuration typos at startup rather than at the
// first checkout.
func ValidateCurrency(code string) error {
	if _, err := currency.ParseISO(code); err != nil {
		return fmt.Errorf("currency %q is not a valid ISO code: %w", code, err)
	}
	return nil
}
