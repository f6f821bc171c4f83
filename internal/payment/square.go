package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const squareAPIBase = "https://connect.squareup.com"

// SquareClient mints hosted checkout links and proxies order lookups. Tax
// and shipping ride on the order as order-level charges, not per line item;
// order persistence for this path happens only via the processor webhook.
type SquareClient struct {
	accessToken string
	locationID  string
	redirectURL string
	baseURL     string
	client      *http.Client
}

func NewSquareClient(accessToken, locationID, redirectURL string) *SquareClient {
	return &SquareClient{
		accessToken: accessToken,
		locationID:  locationID,
		redirectURL: redirectURL,
		baseURL:     squareAPIBase,
		client:      &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBaseURL points the client at a test server.
func (c *SquareClient) WithBaseURL(base string) *SquareClient {
	c.baseURL = base
	return c
}

type LinkItem struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	AmountCents int64  `json:"amount_cents"`
}

type PaymentLinkRequest struct {
	Items          []LinkItem
	TaxRatePercent decimal.Decimal
	ShippingCents  int64
	Currency       string
}

type PaymentLink struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	OrderID string `json:"order_id"`
}

type squareMoney struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type squareLineItem struct {
	Name           string      `json:"name"`
	Quantity       string      `json:"quantity"`
	BasePriceMoney squareMoney `json:"base_price_money"`
}

type squareTax struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Percentage string `json:"percentage"`
	Scope      string `json:"scope"`
}

type squareServiceCharge struct {
	Name             string      `json:"name"`
	AmountMoney      squareMoney `json:"amount_money"`
	CalculationPhase string      `json:"calculation_phase"`
}

type squareOrderBody struct {
	LocationID     string                `json:"location_id"`
	LineItems      []squareLineItem      `json:"line_items"`
	Taxes          []squareTax           `json:"taxes,omitempty"`
	ServiceCharges []squareServiceCharge `json:"service_charges,omitempty"`
}

type squareLinkRequest struct {
	IdempotencyKey  string          `json:"idempotency_key"`
	Order           squareOrderBody `json:"order"`
	CheckoutOptions struct {
		RedirectURL string `json:"redirect_url,omitempty"`
	} `json:"checkout_options"`
}

type squareLinkResponse struct {
	PaymentLink *PaymentLink `json:"payment_link"`
	Errors      []struct {
		Detail string `json:"detail"`
	} `json:"errors"`
}

func (c *SquareClient) CreatePaymentLink(ctx context.Context, req PaymentLinkRequest) (*PaymentLink, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("payment link needs at least one item")
	}

	body := squareLinkRequest{
		IdempotencyKey: uuid.NewString(),
		Order: squareOrderBody{
			LocationID: c.locationID,
		},
	}
	body.CheckoutOptions.RedirectURL = c.redirectURL

	for _, item := range req.Items {
		if item.AmountCents < 1 {
			return nil, ErrAmountTooSmall
		}
		body.Order.LineItems = append(body.Order.LineItems, squareLineItem{
			Name:     item.Name,
			Quantity: strconv.Itoa(item.Quantity),
			BasePriceMoney: squareMoney{
				Amount:   item.AmountCents,
				Currency: req.Currency,
			},
		})
	}

	if req.TaxRatePercent.IsPositive() {
		body.Order.Taxes = append(body.Order.Taxes, squareTax{
			Name:       "Sales Tax",
			Type:       "ADDITIVE",
			Percentage: req.TaxRatePercent.String(),
			Scope:      "ORDER",
		})
	}

	if req.ShippingCents > 0 {
		body.Order.ServiceCharges = append(body.Order.ServiceCharges, squareServiceCharge{
			Name:             "Shipping",
			AmountMoney:      squareMoney{Amount: req.ShippingCents, Currency: req.Currency},
			CalculationPhase: "TOTAL_PHASE",
		})
	}

	var parsed squareLinkResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v2/online-checkout/payment-links", body, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("square rejected payment link: %s", parsed.Errors[0].Detail)
	}
	if parsed.PaymentLink == nil {
		return nil, fmt.Errorf("square returned no payment link")
	}

	return parsed.PaymentLink, nil
}

type squareOrderResponse struct {
	Order *struct {
		TotalMoney squareMoney `json:"total_money"`
	} `json:"order"`
	Errors []struct {
		Detail string `json:"detail"`
	} `json:"errors"`
}

// GetOrder returns the total amount and currency of a Square order.
func (c *SquareClient) GetOrder(ctx context.Context, orderID string) (int64, string, error) {
	if orderID == "" {
		return 0, "", fmt.Errorf("orderId is required")
	}

	var parsed squareOrderResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v2/orders/"+orderID, nil, &parsed); err != nil {
		return 0, "", err
	}
	if len(parsed.Errors) > 0 {
		return 0, "", fmt.Errorf("square order lookup: %s", parsed.Errors[0].Detail)
	}
	if parsed.Order == nil {
		return 0, "", fmt.Errorf("square returned no order")
	}

	return parsed.Order.TotalMoney.Amount, parsed.Order.TotalMoney.Currency, nil
}

func (c *SquareClient) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("square request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read square response: %w", err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode square response (status %d): %w", resp.StatusCode, err)
	}

	return nil
}
