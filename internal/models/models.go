package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one product/variant/quantity entry in a cart. Two entries with
// the same product id but different size or color are distinct items.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
	ImageURL  string          `json:"image_url,omitempty"`
	// OutOfStock is copied from the catalog at add time. The zero value means
	// addable, so a payload that omits the flag is not rejected.
	OutOfStock bool      `json:"out_of_stock,omitempty"`
	AddedAt    time.Time `json:"added_at"`
}

// Key identifies a line item within a cart.
func (li LineItem) Key() LineItemKey {
	return LineItemKey{ProductID: li.ProductID, Size: li.Size, Color: li.Color}
}

type LineItemKey struct {
	ProductID string
	Size      string
	Color     string
}

// ShippingInfo is the contact and address block collected at checkout.
type ShippingInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

// Order is the persisted record of a placed order. Items are a denormalized
// snapshot of the cart at purchase time; later cart mutations never touch it.
type Order struct {
	ID            int64           `json:"id"`
	OrderNumber   string          `json:"order_number"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	State         string          `json:"state"`
	Zip           string          `json:"zip"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Shipping      decimal.Decimal `json:"shipping"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	PaymentRef    string          `json:"payment_ref,omitempty"`
	Processor     string          `json:"processor,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Items         []OrderItem     `json:"items,omitempty"`
}

// OrderItem is a snapshot row; it copies name and price so catalog edits do
// not retroactively change placed orders.
type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Customer is upserted by email; repeat purchases update the same row.
type Customer struct {
	ID          int64           `json:"id"`
	Email       string          `json:"email"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone,omitempty"`
	TotalOrders int             `json:"total_orders"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Review is a customer-submitted product review, distinct from the
// deterministic sample reviews used as placeholder content.
type Review struct {
	ID           int64     `json:"id"`
	ProductID    string    `json:"product_id"`
	CustomerName string    `json:"customer_name"`
	Message      string    `json:"message"`
	Rating       int       `json:"rating"`
	CreatedAt    time.Time `json:"created_at"`
}

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

const (
	ProcessorStripe = "stripe"
	ProcessorSquare = "square"
)
