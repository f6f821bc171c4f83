package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/nicheclub/storefront/internal/payment"
	"github.com/shopspring/decimal"
)

type paymentLinkRequest struct {
	Item              *payment.LinkItem  `json:"item,omitempty"`
	Items             []payment.LinkItem `json:"items,omitempty"`
	TaxRatePercent    decimal.Decimal    `json:"taxRatePercent"`
	TaxRatePercentAlt decimal.Decimal    `json:"tax_rate_percent"`
	Shipping          decimal.Decimal    `json:"shipping"`
	Currency          string             `json:"currency,omitempty"`
}

// handleCreatePaymentLink accepts either a single item or an item list plus
// order-level tax and shipping, and returns the hosted checkout URL.
func (s *Server) handleCreatePaymentLink(w http.ResponseWriter, r *http.Request) {
	var req paymentLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := req.Items
	if req.Item != nil {
		items = append(items, *req.Item)
	}
	if len(items) == 0 {
		respondError(w, http.StatusBadRequest, "item or items is required")
		return
	}

	cur := req.Currency
	if cur == "" {
		cur = s.currency
	}

	taxRate := req.TaxRatePercent
	if taxRate.IsZero() {
		taxRate = req.TaxRatePercentAlt
	}

	link, err := s.square.CreatePaymentLink(r.Context(), payment.PaymentLinkRequest{
		Items:          items,
		TaxRatePercent: taxRate,
		ShippingCents:  req.Shipping.Mul(decimal.NewFromInt(100)).Round(0).IntPart(),
		Currency:       cur,
	})
	if err != nil {
		if errors.Is(err, payment.ErrAmountTooSmall) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("create payment link failed: %v", err)
		respondError(w, http.StatusBadGateway, "payment processor unavailable")
		return
	}

	respondJSON(w, http.StatusOK, link)
}

func (s *Server) handleGetSquareOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("orderId")
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "orderId is required")
		return
	}

	amount, cur, err := s.square.GetOrder(r.Context(), orderID)
	if err != nil {
		log.Printf("square order lookup %s failed: %v", orderID, err)
		respondError(w, http.StatusBadGateway, "failed to fetch order")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"order_id":     orderID,
		"amount":       amount,
		"amount_cents": amount,
		"currency":     cur,
	})
}
