package cart

import (
	"errors"
	"time"

	"github.com/nicheclub/storefront/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrOutOfStock      = errors.New("item is out of stock")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// Cart holds the line items a customer intends to buy. Items are keyed by
// (product id, size, color); totals are derived from the items on every read
// and never stored.
type Cart struct {
	Items []models.LineItem `json:"items"`
}

// Add merges the item into the cart. An existing entry with the same key has
// its quantity increased; otherwise the item is appended. Out-of-stock items
// are rejected outright; this is a convenience check, the catalog remains
// the source of truth at checkout.
func (c *Cart) Add(item models.LineItem) error {
	if item.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if item.OutOfStock {
		return ErrOutOfStock
	}

	key := item.Key()
	for i := range c.Items {
		if c.Items[i].Key() == key {
			c.Items[i].Quantity += item.Quantity
			return nil
		}
	}

	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}
	c.Items = append(c.Items, item)
	return nil
}

// Remove decrements the matching item's quantity by one and deletes the
// entry when it reaches zero. Removing an absent key is a no-op.
func (c *Cart) Remove(productID, size, color string) {
	key := models.LineItemKey{ProductID: productID, Size: size, Color: color}
	for i := range c.Items {
		if c.Items[i].Key() != key {
			continue
		}
		c.Items[i].Quantity--
		if c.Items[i].Quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		}
		return
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Count returns the total quantity across all items.
func (c *Cart) Count() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// Subtotal is recomputed from the items on every call.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c.Items {
		sum = sum.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

// Pricing derives shipping, tax and total from a subtotal. Shipping is free
// only when the subtotal strictly exceeds the threshold.
type Pricing struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	TaxRate               decimal.Decimal
}

func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: decimal.NewFromInt(100),
		FlatShippingFee:       decimal.NewFromInt(10),
		TaxRate:               decimal.NewFromFloat(0.08),
	}
}

func (p Pricing) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.FlatShippingFee
}

func (p Pricing) Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(p.TaxRate).Round(2)
}

// Totals is a point-in-time computation; it is never cached apart from the
// items that produced it.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

func (p Pricing) Totals(c *Cart) Totals {
	subtotal := c.Subtotal()
	shipping := p.Shipping(subtotal)
	tax := p.Tax(subtotal)
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}
