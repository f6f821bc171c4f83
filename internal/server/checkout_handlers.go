package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nicheclub/storefront/internal/cart"
	"github.com/nicheclub/storefront/internal/catalog"
	"github.com/nicheclub/storefront/internal/checkout"
	"github.com/nicheclub/storefront/internal/database"
	"github.com/nicheclub/storefront/internal/models"
	"github.com/nicheclub/storefront/internal/payment"
	"github.com/nicheclub/storefront/internal/store"
	"github.com/shopspring/decimal"
)

type checkoutRequest struct {
	Items    []checkout.ItemRef  `json:"items"`
	Shipping models.ShippingInfo `json:"shipping"`
}

// handleCheckout is the unified path: validate, re-price against the catalog,
// create the payment intent and record the pending order in one call.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.checkout.PlaceOrder(r.Context(), req.Items, req.Shipping)
	if err != nil {
		var vErr *checkout.ValidationError
		switch {
		case errors.As(err, &vErr):
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  vErr.Error(),
				"fields": vErr.Fields,
			})
		case errors.Is(err, catalog.ErrProductNotFound),
			errors.Is(err, cart.ErrOutOfStock),
			errors.Is(err, cart.ErrInvalidQuantity):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("checkout failed: %v", err)
			respondError(w, http.StatusInternalServerError, "checkout failed")
		}
		return
	}

	// The cart served its purpose once the order exists.
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		s.carts.Clear(r.Context(), cookie.Value)
	}

	respondJSON(w, http.StatusOK, result)
}

// The public contract uses camelCase keys ({amount} in, {clientSecret} out);
// snake_case aliases are accepted and emitted alongside for internal callers.
type createIntentRequest struct {
	Amount      int64  `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

func (s *Server) handleCreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req createIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount := req.Amount
	if amount == 0 {
		amount = req.AmountCents
	}

	cur := req.Currency
	if cur == "" {
		cur = s.currency
	}

	intent, err := s.gateway.CreateIntent(r.Context(), amount, cur, uuid.NewString())
	if err != nil {
		if errors.Is(err, payment.ErrAmountTooSmall) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("create payment intent failed: %v", err)
		respondError(w, http.StatusBadGateway, "payment processor unavailable")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"clientSecret":  intent.ClientSecret,
		"client_secret": intent.ClientSecret,
		"payment_ref":   intent.ID,
	})
}

type saveOrderRequest struct {
	Customer   models.ShippingInfo       `json:"customer"`
	Items      []store.OrderItemSnapshot `json:"items"`
	Subtotal   decimal.Decimal           `json:"subtotal"`
	Shipping   decimal.Decimal           `json:"shipping"`
	Tax        decimal.Decimal           `json:"tax"`
	Total      decimal.Decimal           `json:"total"`
	PaymentRef string                    `json:"payment_ref"`
	Processor  string                    `json:"processor"`
}

// handleSaveOrder persists a snapshot the client already priced. It funnels
// into the same idempotent entry point as the unified checkout, keyed on the
// payment reference.
func (s *Server) handleSaveOrder(w http.ResponseWriter, r *http.Request) {
	var req saveOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if fieldErrs := checkout.ValidateShipping(req.Customer); fieldErrs != nil {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "invalid shipping details",
			"fields": fieldErrs,
		})
		return
	}
	if len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "order needs at least one item")
		return
	}

	order, err := s.checkout.SaveOrder(r.Context(), store.CreateOrderRequest{
		Contact:     req.Customer,
		Items:       req.Items,
		Subtotal:    req.Subtotal,
		ShippingFee: req.Shipping,
		Tax:         req.Tax,
		Total:       req.Total,
		PaymentRef:  req.PaymentRef,
		Processor:   req.Processor,
	})
	if err != nil {
		log.Printf("save order failed: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to save order")
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

// Same contract split: {orderNumber, paymentIntentId, status, paymentStatus}
// is the documented shape, snake_case aliases are accepted too.
type updateStatusRequest struct {
	OrderNumber      string `json:"orderNumber"`
	OrderNumberAlt   string `json:"order_number"`
	PaymentIntentID  string `json:"paymentIntentId"`
	PaymentRef       string `json:"payment_ref"`
	Status           string `json:"status"`
	PaymentStatus    string `json:"paymentStatus"`
	PaymentStatusAlt string `json:"payment_status"`
}

func coalesce(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	orderNumber := coalesce(req.OrderNumber, req.OrderNumberAlt)
	if orderNumber == "" {
		respondError(w, http.StatusBadRequest, "orderNumber is required")
		return
	}
	paymentRef := coalesce(req.PaymentIntentID, req.PaymentRef)
	paymentStatus := coalesce(req.PaymentStatus, req.PaymentStatusAlt)

	err := s.checkout.ConfirmPayment(r.Context(), orderNumber, paymentRef, req.Status, paymentStatus)
	if err != nil {
		if errors.Is(err, database.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "order not found")
			return
		}
		log.Printf("update order status failed: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to update order")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"orderNumber": orderNumber, "status": "updated"})
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderNumber := chi.URLParam(r, "orderNumber")

	order, err := store.GetOrderByNumber(r.Context(), s.db, orderNumber)
	if err != nil {
		if errors.Is(err, database.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "order not found")
			return
		}
		log.Printf("get order %s failed: %v", orderNumber, err)
		respondError(w, http.StatusInternalServerError, "failed to fetch order")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// handleStripeWebhook verifies the signature over the raw body before
// anything else; an unverifiable payload is rejected without side effects.
func (s *Server) handleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	event, err := s.gateway.VerifyWebhook(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		log.Printf("webhook rejected: %v", err)
		respondError(w, http.StatusBadRequest, "signature verification failed")
		return
	}

	if err := s.checkout.HandleWebhookEvent(r.Context(), event); err != nil {
		log.Printf("webhook %s failed: %v", event.Type, err)
		respondError(w, http.StatusInternalServerError, "failed to process event")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"received": true})
}
