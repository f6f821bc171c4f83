package checkout

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/nicheclub/storefront/internal/cart"
	"github.com/nicheclub/storefront/internal/catalog"
	"github.com/nicheclub/storefront/internal/database"
	"github.com/nicheclub/storefront/internal/models"
	"github.com/nicheclub/storefront/internal/notify"
	"github.com/nicheclub/storefront/internal/payment"
	"github.com/nicheclub/storefront/internal/store"
	"github.com/shopspring/decimal"
)

// ProductSource resolves current price and availability; the cart's copied
// values are never trusted at checkout time.
type ProductSource interface {
	Product(ctx context.Context, productID string) (*catalog.Product, error)
}

// ItemRef is what the client submits: a reference plus quantity. Everything
// else is re-resolved server side.
type ItemRef struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Quantity  int    `json:"quantity"`
}

// Result hands the client what it needs to confirm the card payment.
type Result struct {
	OrderNumber  string      `json:"order_number"`
	ClientSecret string      `json:"client_secret"`
	PaymentRef   string      `json:"payment_ref"`
	Totals       cart.Totals `json:"totals"`
	AmountCents  int64       `json:"amount_cents"`
	Currency     string      `json:"currency"`
}

// Orchestrator turns a cart into a payment attempt and a pending order.
// Both the synchronous confirmation path and the asynchronous webhook path
// run through it, so every order is anchored to one payment reference.
type Orchestrator struct {
	products ProductSource
	gateway  payment.Gateway
	orders   OrderWriter
	mailer   notify.Mailer
	pricing  cart.Pricing
	currency string
}

func NewOrchestrator(products ProductSource, gateway payment.Gateway, orders OrderWriter, mailer notify.Mailer, pricing cart.Pricing, currency string) *Orchestrator {
	return &Orchestrator{
		products: products,
		gateway:  gateway,
		orders:   orders,
		mailer:   mailer,
		pricing:  pricing,
		currency: currency,
	}
}

// PlaceOrder validates the form, re-prices every item against the catalog,
// requests a payment intent and records the pending order in one pass. The
// order row carries the intent id, which makes later confirmation attempts
// from either path collapse into a single record.
func (o *Orchestrator) PlaceOrder(ctx context.Context, items []ItemRef, shipping models.ShippingInfo) (*Result, error) {
	if fieldErrs := ValidateShipping(shipping); fieldErrs != nil {
		return nil, &ValidationError{Fields: fieldErrs}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	c := &cart.Cart{}
	var snapshot []store.OrderItemSnapshot

	for _, ref := range items {
		product, err := o.products.Product(ctx, ref.ProductID)
		if err != nil {
			return nil, fmt.Errorf("resolve product %s: %w", ref.ProductID, err)
		}

		line := models.LineItem{
			ProductID:  product.ID,
			Name:       product.Name,
			UnitPrice:  product.Price,
			Quantity:   ref.Quantity,
			Size:       ref.Size,
			Color:      ref.Color,
			ImageURL:   product.ImageURL,
			OutOfStock: !product.InStock,
		}
		if err := c.Add(line); err != nil {
			return nil, fmt.Errorf("item %s: %w", ref.ProductID, err)
		}

		snapshot = append(snapshot, store.OrderItemSnapshot{
			ProductID: product.ID,
			Name:      product.Name,
			Size:      ref.Size,
			Color:     ref.Color,
			UnitPrice: product.Price,
			Quantity:  ref.Quantity,
			ImageURL:  product.ImageURL,
		})
	}

	totals := o.pricing.Totals(c)
	amountCents := totals.Total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	intent, err := o.gateway.CreateIntent(ctx, amountCents, o.currency, uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	order, err := o.createAndNotify(ctx, store.CreateOrderRequest{
		Contact:     shipping,
		Items:       snapshot,
		Subtotal:    totals.Subtotal,
		ShippingFee: totals.Shipping,
		Tax:         totals.Tax,
		Total:       totals.Total,
		PaymentRef:  intent.ID,
		Processor:   models.ProcessorStripe,
	})
	if err != nil {
		// The charge is not confirmed yet, so the client sees a clean
		// failure with nothing half-placed.
		return nil, fmt.Errorf("record order: %w", err)
	}

	return &Result{
		OrderNumber:  order.OrderNumber,
		ClientSecret: intent.ClientSecret,
		PaymentRef:   intent.ID,
		Totals:       totals,
		AmountCents:  amountCents,
		Currency:     o.currency,
	}, nil
}

// SaveOrder is the direct persistence path for snapshots computed by the
// client. It funnels into the same idempotent entry point as PlaceOrder.
func (o *Orchestrator) SaveOrder(ctx context.Context, req store.CreateOrderRequest) (*models.Order, error) {
	return o.createAndNotify(ctx, req)
}

func (o *Orchestrator) createAndNotify(ctx context.Context, req store.CreateOrderRequest) (*models.Order, error) {
	order, err := o.orders.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	// Customer aggregate and confirmation email are best-effort: the order
	// row is already durable and is never rolled back for these.
	if _, err := o.orders.UpsertCustomer(ctx, req.Contact.Email, req.Contact.Name, req.Contact.Phone, req.Total); err != nil {
		log.Printf("upsert customer %s failed: %v", req.Contact.Email, err)
	}
	if err := o.mailer.OrderConfirmation(order); err != nil {
		log.Printf("confirmation email for %s failed: %v", order.OrderNumber, err)
	}

	return order, nil
}

// ConfirmPayment is called by the client after the card confirmation
// succeeds. Repeating it is harmless.
func (o *Orchestrator) ConfirmPayment(ctx context.Context, orderNumber, paymentRef, status, paymentStatus string) error {
	if status == "" {
		status = models.OrderStatusProcessing
	}
	if paymentStatus == "" {
		paymentStatus = models.PaymentStatusPaid
	}
	return o.orders.UpdateOrderStatus(ctx, orderNumber, paymentRef, status, paymentStatus)
}

// HandleWebhookEvent processes a verified processor event. Successful
// payments confirm the order created by PlaceOrder; because both paths key
// on the payment reference, a webhook racing the client confirm just
// overwrites the same fields.
func (o *Orchestrator) HandleWebhookEvent(ctx context.Context, event *payment.WebhookEvent) error {
	switch event.Type {
	case "payment_intent.succeeded":
		if event.OrderNumber != "" {
			err := o.orders.UpdateOrderStatus(ctx, event.OrderNumber,
				event.PaymentRef, models.OrderStatusProcessing, models.PaymentStatusPaid)
			if err != nil && err != database.ErrOrderNotFound {
				return err
			}
			if err == nil {
				return nil
			}
		}

		err := o.orders.MarkOrderPaidByRef(ctx, event.PaymentRef)
		if err == database.ErrOrderNotFound {
			// A payment we have no order for: surfaced in logs rather than
			// invented from a payload that carries no line items.
			log.Printf("webhook: no order found for payment %s", event.PaymentRef)
			return nil
		}
		return err

	case "payment_intent.payment_failed":
		return o.markFailed(ctx, event)

	default:
		// Unhandled event types are acknowledged without side effects.
		return nil
	}
}

func (o *Orchestrator) markFailed(ctx context.Context, event *payment.WebhookEvent) error {
	if event.OrderNumber == "" {
		return nil
	}
	err := o.orders.UpdateOrderStatus(ctx, event.OrderNumber,
		event.PaymentRef, models.OrderStatusCancelled, models.PaymentStatusFailed)
	if err == database.ErrOrderNotFound {
		return nil
	}
	return err
}
