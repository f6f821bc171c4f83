package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nicheclub/storefront/internal/database"
	"github.com/nicheclub/storefront/internal/models"
	"github.com/shopspring/decimal"
)

// OrderItemSnapshot is the denormalized copy of a cart line frozen at
// purchase time.
type OrderItemSnapshot struct {
	ProductID string
	Name      string
	Size      string
	Color     string
	UnitPrice decimal.Decimal
	Quantity  int
	ImageURL  string
}

type CreateOrderRequest struct {
	Contact     models.ShippingInfo
	Items       []OrderItemSnapshot
	Subtotal    decimal.Decimal
	ShippingFee decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
	PaymentRef  string
	Processor   string
}

func generateOrderNumber() string {
	return fmt.Sprintf("ORD-%d", time.Now().UnixNano())
}

// CreateOrder writes the order row and its item snapshot in one transaction.
// When a payment reference is present the write is idempotent: a second
// attempt with the same reference (client confirm racing the webhook)
// returns the already-created order instead of a duplicate.
func CreateOrder(ctx context.Context, db *sql.DB, req CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order needs at least one item")
	}

	if req.PaymentRef != "" {
		existing, err := GetOrderByPaymentRef(ctx, db, req.PaymentRef)
		if err == nil {
			return existing, nil
		}
		if err != database.ErrOrderNotFound {
			return nil, err
		}
	}

	var order *models.Order

	err := database.WithRetry(ctx, db, database.TxOptions{
		IsolationLevel: sql.LevelSerializable,
		MaxRetries:     3,
	}, func(tx *sql.Tx) error {
		orderNumber := generateOrderNumber()

		var paymentRef sql.NullString
		if req.PaymentRef != "" {
			paymentRef = sql.NullString{String: req.PaymentRef, Valid: true}
		}

		var orderID int64
		err := tx.QueryRowContext(ctx,
			`INSERT INTO orders (order_number, customer_name, customer_email, customer_phone,
			                     address, city, state, zip,
			                     subtotal, shipping, tax, total,
			                     status, payment_status, payment_ref, processor,
			                     created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
			 RETURNING id`,
			orderNumber, req.Contact.Name, req.Contact.Email, req.Contact.Phone,
			req.Contact.Address, req.Contact.City, req.Contact.State, req.Contact.Zip,
			req.Subtotal, req.ShippingFee, req.Tax, req.Total,
			models.OrderStatusPending, models.PaymentStatusPending, paymentRef, req.Processor,
		).Scan(&orderID)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, item := range req.Items {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO order_items (order_id, product_id, name, size, color, unit_price, quantity, image_url, created_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())`,
				orderID, item.ProductID, item.Name, item.Size, item.Color,
				item.UnitPrice, item.Quantity, item.ImageURL)
			if err != nil {
				return fmt.Errorf("create order item: %w", err)
			}
		}

		order = &models.Order{ID: orderID}
		err = tx.QueryRowContext(ctx,
			`SELECT order_number, customer_name, customer_email, customer_phone,
			        address, city, state, zip,
			        subtotal, shipping, tax, total,
			        status, payment_status, COALESCE(payment_ref, ''), processor,
			        created_at, updated_at
			 FROM orders WHERE id = $1`,
			orderID).Scan(
			&order.OrderNumber, &order.CustomerName, &order.CustomerEmail, &order.CustomerPhone,
			&order.Address, &order.City, &order.State, &order.Zip,
			&order.Subtotal, &order.Shipping, &order.Tax, &order.Total,
			&order.Status, &order.PaymentStatus, &order.PaymentRef, &order.Processor,
			&order.CreatedAt, &order.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("fetch created order: %w", err)
		}

		return nil
	})

	if err != nil {
		// The unique index on payment_ref is the last line of defense when
		// both creation paths insert at the same instant.
		if database.IsUniqueViolation(err) && req.PaymentRef != "" {
			return GetOrderByPaymentRef(ctx, db, req.PaymentRef)
		}
		return nil, err
	}

	return order, nil
}

// UpdateOrderStatus is a direct idempotent-by-key update, shared by the
// client confirmation path and the processor webhook. Repeated deliveries
// overwrite the same fields.
func UpdateOrderStatus(ctx context.Context, db *sql.DB, orderNumber, paymentRef, status, paymentStatus string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE orders
		 SET status = $1,
		     payment_status = $2,
		     payment_ref = COALESCE(NULLIF($3, ''), payment_ref),
		     updated_at = NOW()
		 WHERE order_number = $4`,
		status, paymentStatus, paymentRef, orderNumber)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrOrderNotFound
	}

	return nil
}

// MarkOrderPaidByRef confirms payment for the order holding a payment
// reference; used by the webhook when the event carries no order number.
func MarkOrderPaidByRef(ctx context.Context, db *sql.DB, paymentRef string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE orders
		 SET status = $1, payment_status = $2, updated_at = NOW()
		 WHERE payment_ref = $3`,
		models.OrderStatusProcessing, models.PaymentStatusPaid, paymentRef)
	if err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrOrderNotFound
	}

	return nil
}

func GetOrderByNumber(ctx context.Context, db *sql.DB, orderNumber string) (*models.Order, error) {
	return getOrder(ctx, db, `order_number = $1`, orderNumber)
}

func GetOrderByPaymentRef(ctx context.Context, db *sql.DB, paymentRef string) (*models.Order, error) {
	return getOrder(ctx, db, `payment_ref = $1`, paymentRef)
}

func getOrder(ctx context.Context, db *sql.DB, where string, arg interface{}) (*models.Order, error) {
	order := &models.Order{}

	query := `
		SELECT id, order_number, customer_name, customer_email, customer_phone,
		       address, city, state, zip,
		       subtotal, shipping, tax, total,
		       status, payment_status, COALESCE(payment_ref, ''), processor,
		       created_at, updated_at
		FROM orders
		WHERE ` + where

	err := db.QueryRowContext(ctx, query, arg).Scan(
		&order.ID, &order.OrderNumber, &order.CustomerName, &order.CustomerEmail, &order.CustomerPhone,
		&order.Address, &order.City, &order.State, &order.Zip,
		&order.Subtotal, &order.Shipping, &order.Tax, &order.Total,
		&order.Status, &order.PaymentStatus, &order.PaymentRef, &order.Processor,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	items, err := getOrderItems(ctx, db, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

func getOrderItems(ctx context.Context, db *sql.DB, orderID int64) ([]models.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, name, size, color, unit_price, quantity, image_url, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`

	rows, err := db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Name,
			&item.Size, &item.Color, &item.UnitPrice, &item.Quantity,
			&item.ImageURL, &item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return items, nil
}

// ListOrdersCursor pages through orders newest-first for the admin views.
func ListOrdersCursor(ctx context.Context, db *sql.DB, cursor string, limit int) (*CursorPage, error) {
	cursorData, err := DecodeCursor(cursor)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}

	query := `
		SELECT id, order_number, customer_name, customer_email,
		       subtotal, shipping, tax, total,
		       status, payment_status, COALESCE(payment_ref, ''), processor,
		       created_at, updated_at
		FROM orders
		WHERE (created_at, id) < ($1, $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3`

	rows, err := db.QueryContext(ctx, query, cursorData.CreatedAt, cursorData.ID, limit+1)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID, &order.OrderNumber, &order.CustomerName, &order.CustomerEmail,
			&order.Subtotal, &order.Shipping, &order.Tax, &order.Total,
			&order.Status, &order.PaymentStatus, &order.PaymentRef, &order.Processor,
			&order.CreatedAt, &order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	hasMore := len(orders) > limit
	if hasMore {
		orders = orders[:limit]
	}

	var nextCursor string
	if hasMore && len(orders) > 0 {
		lastOrder := orders[len(orders)-1]
		nextCursor = EncodeCursor(OrderCursor{
			CreatedAt: lastOrder.CreatedAt,
			ID:        lastOrder.ID,
		})
	}

	return &CursorPage{
		Items:      orders,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

// ListOrdersWithItems fetches orders created at or after since, items
// included, for the admin aggregations.
func ListOrdersWithItems(ctx context.Context, db *sql.DB, since time.Time) ([]models.Order, error) {
	query := `
		SELECT id, order_number, customer_name, customer_email,
		       subtotal, shipping, tax, total,
		       status, payment_status, COALESCE(payment_ref, ''), processor,
		       created_at, updated_at
		FROM orders
		WHERE created_at >= $1
		ORDER BY created_at DESC, id DESC`

	rows, err := db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID, &order.OrderNumber, &order.CustomerName, &order.CustomerEmail,
			&order.Subtotal, &order.Shipping, &order.Tax, &order.Total,
			&order.Status, &order.PaymentStatus, &order.PaymentRef, &order.Processor,
			&order.CreatedAt, &order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	for i := range orders {
		items, err := getOrderItems(ctx, db, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}
