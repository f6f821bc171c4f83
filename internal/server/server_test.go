package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nicheclub/storefront/internal/cart"
	"github.com/nicheclub/storefront/internal/catalog"
	"github.com/nicheclub/storefront/internal/checkout"
	"github.com/nicheclub/storefront/internal/models"
	"github.com/nicheclub/storefront/internal/notify"
	"github.com/nicheclub/storefront/internal/payment"
	"github.com/nicheclub/storefront/internal/reviews"
	"github.com/nicheclub/storefront/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	products map[string]catalog.Product
}

func (f *fakeCatalog) Product(_ context.Context, id string) (*catalog.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return &p, nil
}

type fakeGateway struct {
	calls int
	err   error
}

func (f *fakeGateway) CreateIntent(_ context.Context, amountCents int64, cur string, _ string) (*payment.Intent, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if amountCents < 1 {
		return nil, payment.ErrAmountTooSmall
	}
	return &payment.Intent{
		ID:           fmt.Sprintf("pi_test_%d", f.calls),
		ClientSecret: fmt.Sprintf("pi_test_%d_secret", f.calls),
		AmountCents:  amountCents,
		Currency:     cur,
		Status:       "requires_payment_method",
	}, nil
}

func (f *fakeGateway) VerifyWebhook([]byte, string) (*payment.WebhookEvent, error) {
	return nil, payment.ErrBadSignature
}

type statusUpdate struct {
	orderNumber, paymentRef, status, paymentStatus string
}

type fakeOrders struct {
	created []store.CreateOrderRequest
	updates []statusUpdate
}

func (f *fakeOrders) CreateOrder(_ context.Context, req store.CreateOrderRequest) (*models.Order, error) {
	f.created = append(f.created, req)
	return &models.Order{
		ID:            int64(len(f.created)),
		OrderNumber:   fmt.Sprintf("ORD-%d", len(f.created)),
		CustomerEmail: req.Contact.Email,
		Total:         req.Total,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		PaymentRef:    req.PaymentRef,
	}, nil
}

func (f *fakeOrders) UpdateOrderStatus(_ context.Context, orderNumber, paymentRef, status, paymentStatus string) error {
	f.updates = append(f.updates, statusUpdate{orderNumber, paymentRef, status, paymentStatus})
	return nil
}

func (f *fakeOrders) MarkOrderPaidByRef(_ context.Context, paymentRef string) error {
	f.updates = append(f.updates, statusUpdate{paymentRef: paymentRef, status: models.OrderStatusProcessing, paymentStatus: models.PaymentStatusPaid})
	return nil
}

func (f *fakeOrders) UpsertCustomer(_ context.Context, email, name, phone string, _ decimal.Decimal) (*models.Customer, error) {
	return &models.Customer{Email: email, Name: name, Phone: phone}, nil
}

func testProducts() *fakeCatalog {
	return &fakeCatalog{products: map[string]catalog.Product{
		"jacket-1": {ID: "jacket-1", Name: "Denim Jacket", Price: decimal.NewFromInt(120), InStock: true},
		"tee-1":    {ID: "tee-1", Name: "Boxy Tee", Price: decimal.NewFromInt(30), InStock: true},
		"sold-out": {ID: "sold-out", Name: "Gone", Price: decimal.NewFromInt(50), InStock: false},
	}}
}

func newTestServer(gw payment.Gateway, orders *fakeOrders) *Server {
	orch := checkout.NewOrchestrator(testProducts(), gw, orders, notify.NewNoopMailer(), cart.DefaultPricing(), "USD")
	carts := cart.NewStore(cart.NewMemoryRepository(), cart.DefaultPricing())
	return New(nil, orch, gw, nil, carts, reviews.Default(), "USD")
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestHealth(t *testing.T) {
	router := newTestServer(&fakeGateway{}, &fakeOrders{}).Router()

	rec := doJSON(t, router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func validShipping() models.ShippingInfo {
	return models.ShippingInfo{
		Name:    "Jamie Rivera",
		Email:   "jamie@example.com",
		Phone:   "555-0101",
		Address: "1 Main St",
		City:    "Austin",
		State:   "TX",
		Zip:     "78701",
	}
}

func TestCheckoutEndpoint(t *testing.T) {
	orders := &fakeOrders{}
	router := newTestServer(&fakeGateway{}, orders).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/checkout", checkoutRequest{
		Items:    []checkout.ItemRef{{ProductID: "jacket-1", Size: "M", Quantity: 2}},
		Shipping: validShipping(),
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result checkout.Result
	decodeBody(t, rec, &result)
	assert.Equal(t, "ORD-1", result.OrderNumber)
	assert.NotEmpty(t, result.ClientSecret)
	assert.Equal(t, int64(25920), result.AmountCents)
	require.Len(t, orders.created, 1)
	assert.Equal(t, result.PaymentRef, orders.created[0].PaymentRef)
}

func TestCheckoutEndpointValidation(t *testing.T) {
	router := newTestServer(&fakeGateway{}, &fakeOrders{}).Router()

	shipping := validShipping()
	shipping.Email = "not-an-email"

	rec := doJSON(t, router, http.MethodPost, "/api/checkout", checkoutRequest{
		Items:    []checkout.ItemRef{{ProductID: "tee-1", Quantity: 1}},
		Shipping: shipping,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	decodeBody(t, rec, &resp)
	assert.Contains(t, resp.Fields, "email")
}

func TestCheckoutEndpointOutOfStock(t *testing.T) {
	router := newTestServer(&fakeGateway{}, &fakeOrders{}).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/checkout", checkoutRequest{
		Items:    []checkout.ItemRef{{ProductID: "sold-out", Quantity: 1}},
		Shipping: validShipping(),
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreatePaymentIntent(t *testing.T) {
	router := newTestServer(&fakeGateway{}, &fakeOrders{}).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/create-payment-intent",
		createIntentRequest{AmountCents: 25920})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	decodeBody(t, rec, &resp)
	assert.NotEmpty(t, resp["client_secret"])
	assert.NotEmpty(t, resp["payment_ref"])
}

func TestCreatePaymentIntentDocumentedShape(t *testing.T) {
	router := newTestServer(&fakeGateway{}, &fakeOrders{}).Router()

	// the public contract: {amount} in, {clientSecret} out
	rec := doJSON(t, router, http.MethodPost, "/api/create-payment-intent",
		map[string]interface{}{"amount": 5000})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]string
	decodeBody(t, rec, &resp)
	assert.NotEmpty(t, resp["clientSecret"])
	assert.Equal(t, resp["clientSecret"], resp["client_secret"])
}

func TestCreatePaymentIntentAmountTooSmall(t *testing.T) {
	router := newTestServer(&fakeGateway{}, &fakeOrders{}).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/create-payment-intent",
		createIntentRequest{AmountCents: 0})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveOrder(t *testing.T) {
	orders := &fakeOrders{}
	router := newTestServer(&fakeGateway{}, orders).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/save-order", saveOrderRequest{
		Customer: validShipping(),
		Items: []store.OrderItemSnapshot{
			{ProductID: "tee-1", Name: "Boxy Tee", UnitPrice: decimal.NewFromInt(30), Quantity: 1},
		},
		Subtotal:   decimal.NewFromInt(30),
		Shipping:   decimal.NewFromInt(10),
		Tax:        decimal.NewFromFloat(2.40),
		Total:      decimal.NewFromFloat(42.40),
		PaymentRef: "pi_abc",
		Processor:  models.ProcessorStripe,
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, orders.created, 1)
	assert.Equal(t, "pi_abc", orders.created[0].PaymentRef)
}

func TestSaveOrderRejectsBadShipping(t *testing.T) {
	orders := &fakeOrders{}
	router := newTestServer(&fakeGateway{}, orders).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/save-order", saveOrderRequest{
		Customer: models.ShippingInfo{Name: "Only Name"},
		Items: []store.OrderItemSnapshot{
			{ProductID: "tee-1", Name: "Boxy Tee", UnitPrice: decimal.NewFromInt(30), Quantity: 1},
		},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, orders.created)
}

func TestSaveOrderRejectsEmptyItems(t *testing.T) {
	router := newTestServer(&fakeGateway{}, &fakeOrders{}).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/save-order", saveOrderRequest{
		Customer: validShipping(),
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	orders := &fakeOrders{}
	router := newTestServer(&fakeGateway{}, orders).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/update-order-status", updateStatusRequest{
		OrderNumber: "ORD-1",
		PaymentRef:  "pi_abc",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, orders.updates, 1)
	// empty status and payment_status default to a confirmed payment
	assert.Equal(t, models.OrderStatusProcessing, orders.updates[0].status)
	assert.Equal(t, models.PaymentStatusPaid, orders.updates[0].paymentStatus)
}

func TestUpdateOrderStatusDocumentedShape(t *testing.T) {
	orders := &fakeOrders{}
	router := newTestServer(&fakeGateway{}, orders).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/update-order-status", map[string]interface{}{
		"orderNumber":     "ORD-7",
		"paymentIntentId": "pi_doc",
		"status":          models.OrderStatusProcessing,
		"paymentStatus":   models.PaymentStatusPaid,
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, orders.updates, 1)
	assert.Equal(t, "ORD-7", orders.updates[0].orderNumber)
	assert.Equal(t, "pi_doc", orders.updates[0].paymentRef)
	assert.Equal(t, models.PaymentStatusPaid, orders.updates[0].paymentStatus)
}

func TestUpdateOrderStatusRequiresOrderNumber(t *testing.T) {
	router := newTestServer(&fakeGateway{}, &fakeOrders{}).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/update-order-status", updateStatusRequest{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStripeWebhook(t *testing.T) {
	orders := &fakeOrders{}
	gw := payment.NewStripeGateway("sk_test", "whsec_test")
	orch := checkout.NewOrchestrator(testProducts(), gw, orders, notify.NewNoopMailer(), cart.DefaultPricing(), "USD")
	carts := cart.NewStore(cart.NewMemoryRepository(), cart.DefaultPricing())
	router := New(nil, orch, gw, nil, carts, reviews.Default(), "USD").Router()

	payload := []byte(`{
		"type": "payment_intent.succeeded",
		"data": {"object": {"id": "pi_hook", "amount": 4240, "metadata": {"order_number": "ORD-9"}}}
	}`)
	sig := payment.SignPayload("whsec_test", time.Now(), payload)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", sig)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "received")
	require.Len(t, orders.updates, 1)
	assert.Equal(t, "ORD-9", orders.updates[0].orderNumber)
	assert.Equal(t, models.PaymentStatusPaid, orders.updates[0].paymentStatus)
}

func TestStripeWebhookBadSignature(t *testing.T) {
	orders := &fakeOrders{}
	gw := payment.NewStripeGateway("sk_test", "whsec_test")
	orch := checkout.NewOrchestrator(testProducts(), gw, orders, notify.NewNoopMailer(), cart.DefaultPricing(), "USD")
	carts := cart.NewStore(cart.NewMemoryRepository(), cart.DefaultPricing())
	router := New(nil, orch, gw, nil, carts, reviews.Default(), "USD").Router()

	payload := []byte(`{"type": "payment_intent.succeeded"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", "t=123,v1=deadbeef")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, orders.updates)
}

func TestCartFlow(t *testing.T) {
	router := newTestServer(&fakeGateway{}, &fakeOrders{}).Router()
	session := &http.Cookie{Name: sessionCookie, Value: "session-1"}

	item := models.LineItem{
		ProductID: "tee-1",
		Name:      "Boxy Tee",
		UnitPrice: decimal.NewFromInt(30),
		Quantity:  2,
		Size:      "M",
	}

	rec := doJSON(t, router, http.MethodPost, "/api/cart/items", item, session)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var view cartView
	decodeBody(t, rec, &view)
	assert.Equal(t, 2, view.Count)
	assert.True(t, view.Totals.Subtotal.Equal(decimal.NewFromInt(60)))

	rec = doJSON(t, router, http.MethodGet, "/api/cart", nil, session)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &view)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)

	rec = doJSON(t, router, http.MethodDelete, "/api/cart/items?product_id=tee-1&size=M", nil, session)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &view)
	assert.Equal(t, 1, view.Count)

	rec = doJSON(t, router, http.MethodDelete, "/api/cart", nil, session)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/cart", nil, session)
	decodeBody(t, rec, &view)
	assert.Empty(t, view.Items)
}

func TestCartSetsSessionCookie(t *testing.T) {
	router := newTestServer(&fakeGateway{}, &fakeOrders{}).Router()

	rec := doJSON(t, router, http.MethodGet, "/api/cart", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, sessionCookie, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestAddCartItemWithoutStockFlag(t *testing.T) {
	router := newTestServer(&fakeGateway{}, &fakeOrders{}).Router()
	session := &http.Cookie{Name: sessionCookie, Value: "session-minimal"}

	// a payload that never mentions stock is addable; only an explicit
	// out_of_stock flag blocks the add
	rec := doJSON(t, router, http.MethodPost, "/api/cart/items", map[string]interface{}{
		"product_id": "tee-1",
		"name":       "Boxy Tee",
		"unit_price": "30",
		"quantity":   1,
	}, session)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var view cartView
	decodeBody(t, rec, &view)
	assert.Equal(t, 1, view.Count)
}

func TestCartRejectsInvalidItems(t *testing.T) {
	router := newTestServer(&fakeGateway{}, &fakeOrders{}).Router()
	session := &http.Cookie{Name: sessionCookie, Value: "session-2"}

	rec := doJSON(t, router, http.MethodPost, "/api/cart/items", models.LineItem{
		ProductID: "tee-1", UnitPrice: decimal.NewFromInt(30), Quantity: 0,
	}, session)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/cart/items", models.LineItem{
		ProductID: "sold-out", UnitPrice: decimal.NewFromInt(50), Quantity: 1, OutOfStock: true,
	}, session)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/cart/items", nil, session)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListReviewsServesSampleContent(t *testing.T) {
	router := newTestServer(&fakeGateway{}, &fakeOrders{}).Router()

	rec := doJSON(t, router, http.MethodGet, "/api/products/denim-jacket/reviews", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp reviewsResponse
	decodeBody(t, rec, &resp)
	assert.GreaterOrEqual(t, len(resp.Sample), 11)
	assert.LessOrEqual(t, len(resp.Sample), 30)
	assert.NotNil(t, resp.Live)

	// same key, same content
	rec2 := doJSON(t, router, http.MethodGet, "/api/products/denim-jacket/reviews", nil)
	assert.Equal(t, rec.Body.String(), rec2.Body.String())
}

func TestCreateReviewRejectsBadRating(t *testing.T) {
	router := newTestServer(&fakeGateway{}, &fakeOrders{}).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/products/denim-jacket/reviews",
		createReviewRequest{CustomerName: "Sam", Message: "Great", Rating: 6})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateReviewRequiresNameAndMessage(t *testing.T) {
	router := newTestServer(&fakeGateway{}, &fakeOrders{}).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/products/denim-jacket/reviews",
		createReviewRequest{Rating: 5})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreatePaymentLink(t *testing.T) {
	var captured map[string]interface{}
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		fmt.Fprint(w, `{"payment_link": {"id": "plink_1", "url": "https://square.link/abc", "order_id": "sq_ord_1"}}`)
	}))
	defer backend.Close()

	square := payment.NewSquareClient("token", "loc_1", "https://shop.example.com/thanks").WithBaseURL(backend.URL)
	srv := newTestServer(&fakeGateway{}, &fakeOrders{})
	srv.square = square
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/square/create-payment-link", paymentLinkRequest{
		Item:           &payment.LinkItem{Name: "Denim Jacket", Quantity: 1, AmountCents: 12000},
		TaxRatePercent: decimal.NewFromInt(8),
		Shipping:       decimal.NewFromInt(10),
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "https://square.link/abc")

	order := captured["order"].(map[string]interface{})
	assert.Equal(t, "loc_1", order["location_id"])
	charges := order["service_charges"].([]interface{})
	require.Len(t, charges, 1)
	money := charges[0].(map[string]interface{})["amount_money"].(map[string]interface{})
	assert.Equal(t, float64(1000), money["amount"])
}

func TestCreatePaymentLinkSnakeCaseTaxAlias(t *testing.T) {
	var captured map[string]interface{}
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		fmt.Fprint(w, `{"payment_link": {"id": "plink_2", "url": "https://square.link/def", "order_id": "sq_ord_2"}}`)
	}))
	defer backend.Close()

	srv := newTestServer(&fakeGateway{}, &fakeOrders{})
	srv.square = payment.NewSquareClient("token", "loc_1", "").WithBaseURL(backend.URL)
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/square/create-payment-link", map[string]interface{}{
		"items":            []map[string]interface{}{{"name": "Boxy Tee", "quantity": 1, "amount_cents": 3000}},
		"tax_rate_percent": "8",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	order := captured["order"].(map[string]interface{})
	taxes := order["taxes"].([]interface{})
	require.Len(t, taxes, 1)
	assert.Equal(t, "8", taxes[0].(map[string]interface{})["percentage"])
}

func TestCreatePaymentLinkRequiresItems(t *testing.T) {
	srv := newTestServer(&fakeGateway{}, &fakeOrders{})
	srv.square = payment.NewSquareClient("token", "loc_1", "")
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/square/create-payment-link", paymentLinkRequest{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSquareOrder(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/v2/orders/"))
		fmt.Fprint(w, `{"order": {"total_money": {"amount": 14040, "currency": "USD"}}}`)
	}))
	defer backend.Close()

	srv := newTestServer(&fakeGateway{}, &fakeOrders{})
	srv.square = payment.NewSquareClient("token", "loc_1", "").WithBaseURL(backend.URL)
	router := srv.Router()

	rec := doJSON(t, router, http.MethodGet, "/api/square/get-order?orderId=sq_ord_1", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	decodeBody(t, rec, &resp)
	assert.Equal(t, float64(14040), resp["amount"])
	assert.Equal(t, float64(14040), resp["amount_cents"])
	assert.Equal(t, "USD", resp["currency"])
}

func TestGetSquareOrderRequiresID(t *testing.T) {
	srv := newTestServer(&fakeGateway{}, &fakeOrders{})
	srv.square = payment.NewSquareClient("token", "loc_1", "")
	router := srv.Router()

	rec := doJSON(t, router, http.MethodGet, "/api/square/get-order", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
