package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaymentLink(t *testing.T) {
	var captured squareLinkRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/online-checkout/payment-links", r.URL.Path)
		assert.Equal(t, "Bearer sq_token", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"payment_link": map[string]string{
				"id":       "plink_1",
				"url":      "https://square.link/u/abc",
				"order_id": "sq_order_1",
			},
		})
	}))
	defer srv.Close()

	client := NewSquareClient("sq_token", "loc_1", "https://shop.example.com/confirmed").WithBaseURL(srv.URL)

	link, err := client.CreatePaymentLink(context.Background(), PaymentLinkRequest{
		Items: []LinkItem{
			{Name: "Boxy Tee", Quantity: 2, AmountCents: 3000},
			{Name: "Wool Beanie", Quantity: 1, AmountCents: 2200},
		},
		TaxRatePercent: decimal.NewFromInt(8),
		ShippingCents:  1000,
		Currency:       "USD",
	})
	require.NoError(t, err)

	assert.Equal(t, "plink_1", link.ID)
	assert.Equal(t, "sq_order_1", link.OrderID)

	// tax and shipping are order-level, not per item
	require.Len(t, captured.Order.LineItems, 2)
	assert.Equal(t, "2", captured.Order.LineItems[0].Quantity)
	require.Len(t, captured.Order.Taxes, 1)
	assert.Equal(t, "8", captured.Order.Taxes[0].Percentage)
	assert.Equal(t, "ORDER", captured.Order.Taxes[0].Scope)
	require.Len(t, captured.Order.ServiceCharges, 1)
	assert.Equal(t, int64(1000), captured.Order.ServiceCharges[0].AmountMoney.Amount)
	assert.Equal(t, "loc_1", captured.Order.LocationID)
	assert.NotEmpty(t, captured.IdempotencyKey)
	assert.Equal(t, "https://shop.example.com/confirmed", captured.CheckoutOptions.RedirectURL)
}

func TestCreatePaymentLinkValidation(t *testing.T) {
	client := NewSquareClient("sq_token", "loc_1", "")

	_, err := client.CreatePaymentLink(context.Background(), PaymentLinkRequest{Currency: "USD"})
	assert.Error(t, err)

	_, err = client.CreatePaymentLink(context.Background(), PaymentLinkRequest{
		Items:    []LinkItem{{Name: "Free?", Quantity: 1, AmountCents: 0}},
		Currency: "USD",
	})
	assert.ErrorIs(t, err, ErrAmountTooSmall)
}

func TestGetOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/orders/sq_order_1", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"order": map[string]interface{}{
				"total_money": map[string]interface{}{"amount": 9664, "currency": "USD"},
			},
		})
	}))
	defer srv.Close()

	client := NewSquareClient("sq_token", "loc_1", "").WithBaseURL(srv.URL)

	amount, cur, err := client.GetOrder(context.Background(), "sq_order_1")
	require.NoError(t, err)
	assert.Equal(t, int64(9664), amount)
	assert.Equal(t, "USD", cur)

	_, _, err = client.GetOrder(context.Background(), "")
	assert.Error(t, err)
}
