package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	stripeAPIBase = "https://api.stripe.com"

	// Webhook timestamps older than this are rejected to limit replay.
	signatureTolerance = 5 * time.Minute
)

// StripeGateway talks to the Stripe REST API directly: form-encoded
// requests, bearer auth, Idempotency-Key header. The request/response
// shapes are the documented public ones.
type StripeGateway struct {
	secretKey     string
	webhookSecret string
	baseURL       string
	client        *http.Client
	now           func() time.Time
}

func NewStripeGateway(secretKey, webhookSecret string) *StripeGateway {
	return &StripeGateway{
		secretKey:     secretKey,
		webhookSecret: webhookSecret,
		baseURL:       stripeAPIBase,
		client:        &http.Client{Timeout: 15 * time.Second},
		now:           time.Now,
	}
}

// WithBaseURL points the gateway at a test server.
func (g *StripeGateway) WithBaseURL(base string) *StripeGateway {
	g.baseURL = base
	return g
}

type stripeIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amountCents int64, cur string, idempotencyKey string) (*Intent, error) {
	if amountCents < 1 {
		return nil, ErrAmountTooSmall
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", strings.ToLower(cur))
	form.Set("automatic_payment_methods[enabled]", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build intent request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read intent response: %w", err)
	}

	var parsed stripeIntentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode intent response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return nil, fmt.Errorf("stripe rejected intent: %s", parsed.Error.Message)
		}
		return nil, fmt.Errorf("stripe rejected intent: status %d", resp.StatusCode)
	}

	return &Intent{
		ID:           parsed.ID,
		ClientSecret: parsed.ClientSecret,
		AmountCents:  parsed.Amount,
		Currency:     parsed.Currency,
		Status:       parsed.Status,
	}, nil
}

type stripeEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string `json:"id"`
			Amount   int64  `json:"amount"`
			Metadata struct {
				OrderNumber string `json:"order_number"`
			} `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// VerifyWebhook checks the Stripe-Signature header (t=...,v1=... scheme)
// against the shared signing secret before trusting the payload. The signed
// message is "<timestamp>.<raw body>" under HMAC-SHA256.
func (g *StripeGateway) VerifyWebhook(payload []byte, signatureHeader string) (*WebhookEvent, error) {
	timestamp, signatures, err := parseSignatureHeader(signatureHeader)
	if err != nil {
		return nil, err
	}

	age := g.now().Sub(time.Unix(timestamp, 0))
	if age > signatureTolerance || age < -signatureTolerance {
		return nil, fmt.Errorf("%w: timestamp outside tolerance", ErrBadSignature)
	}

	mac := hmac.New(sha256.New, []byte(g.webhookSecret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	expected := mac.Sum(nil)

	var match bool
	for _, sig := range signatures {
		decoded, err := hex.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			match = true
			break
		}
	}
	if !match {
		return nil, ErrBadSignature
	}

	var event stripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("decode webhook payload: %w", err)
	}

	return &WebhookEvent{
		Type:        event.Type,
		PaymentRef:  event.Data.Object.ID,
		AmountCents: event.Data.Object.Amount,
		OrderNumber: event.Data.Object.Metadata.OrderNumber,
	}, nil
}

func parseSignatureHeader(header string) (int64, []string, error) {
	if header == "" {
		return 0, nil, fmt.Errorf("%w: missing signature header", ErrBadSignature)
	}

	var timestamp int64
	var signatures []string

	for _, part := range strings.Split(header, ",") {
		k, v, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch k {
		case "t":
			ts, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("%w: bad timestamp", ErrBadSignature)
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, v)
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return 0, nil, fmt.Errorf("%w: malformed signature header", ErrBadSignature)
	}

	return timestamp, signatures, nil
}

// SignPayload produces a valid Stripe-Signature header for a payload; used
// by tests and local tooling to exercise the webhook path.
func SignPayload(secret string, timestamp time.Time, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp.Unix())
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", timestamp.Unix(), hex.EncodeToString(mac.Sum(nil)))
}
