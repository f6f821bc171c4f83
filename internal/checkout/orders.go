package checkout

import (
	"context"
	"database/sql"

	"github.com/nicheclub/storefront/internal/models"
	"github.com/nicheclub/storefront/internal/store"
	"github.com/shopspring/decimal"
)

// OrderWriter is the persistence boundary of the orchestrator; tests swap
// in an in-memory fake, production delegates to the store functions.
type OrderWriter interface {
	CreateOrder(ctx context.Context, req store.CreateOrderRequest) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderNumber, paymentRef, status, paymentStatus string) error
	MarkOrderPaidByRef(ctx context.Context, paymentRef string) error
	UpsertCustomer(ctx context.Context, email, name, phone string, orderTotal decimal.Decimal) (*models.Customer, error)
}

type dbOrderWriter struct {
	db *sql.DB
}

func NewOrderWriter(db *sql.DB) OrderWriter {
	return &dbOrderWriter{db: db}
}

func (w *dbOrderWriter) CreateOrder(ctx context.Context, req store.CreateOrderRequest) (*models.Order, error) {
	return store.CreateOrder(ctx, w.db, req)
}

func (w *dbOrderWriter) UpdateOrderStatus(ctx context.Context, orderNumber, paymentRef, status, paymentStatus string) error {
	return store.UpdateOrderStatus(ctx, w.db, orderNumber, paymentRef, status, paymentStatus)
}

func (w *dbOrderWriter) MarkOrderPaidByRef(ctx context.Context, paymentRef string) error {
	return store.MarkOrderPaidByRef(ctx, w.db, paymentRef)
}

func (w *dbOrderWriter) UpsertCustomer(ctx context.Context, email, name, phone string, orderTotal decimal.Decimal) (*models.Customer, error) {
	return store.UpsertCustomer(ctx, w.db, email, name, phone, orderTotal)
}
