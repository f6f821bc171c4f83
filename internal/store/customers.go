package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nicheclub/storefront/internal/database"
	"github.com/nicheclub/storefront/internal/models"
	"github.com/shopspring/decimal"
)

// UpsertCustomer records a purchase against the customer keyed by email:
// first purchase inserts the row, repeat purchases bump the aggregates on
// the same record.
func UpsertCustomer(ctx context.Context, db *sql.DB, email, name, phone string, orderTotal decimal.Decimal) (*models.Customer, error) {
	if email == "" {
		return nil, fmt.Errorf("email is empty")
	}

	customer := &models.Customer{}

	query := `
		INSERT INTO customers (email, name, phone, total_orders, total_spent, created_at, updated_at)
		VALUES ($1, $2, $3, 1, $4, NOW(), NOW())
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name,
		    phone = COALESCE(NULLIF(EXCLUDED.phone, ''), customers.phone),
		    total_orders = customers.total_orders + 1,
		    total_spent = customers.total_spent + EXCLUDED.total_spent,
		    updated_at = NOW()
		RETURNING id, email, name, phone, total_orders, total_spent, created_at, updated_at`

	err := db.QueryRowContext(ctx, query, email, name, phone, orderTotal).Scan(
		&customer.ID,
		&customer.Email,
		&customer.Name,
		&customer.Phone,
		&customer.TotalOrders,
		&customer.TotalSpent,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert customer: %w", err)
	}

	return customer, nil
}

func GetCustomerByEmail(ctx context.Context, db *sql.DB, email string) (*models.Customer, error) {
	customer := &models.Customer{}

	query := `
		SELECT id, email, name, phone, total_orders, total_spent, created_at, updated_at
		FROM customers
		WHERE email = $1`

	err := db.QueryRowContext(ctx, query, email).Scan(
		&customer.ID,
		&customer.Email,
		&customer.Name,
		&customer.Phone,
		&customer.TotalOrders,
		&customer.TotalSpent,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	return customer, nil
}

func ListCustomers(ctx context.Context, db *sql.DB) ([]models.Customer, error) {
	query := `
		SELECT id, email, name, phone, total_orders, total_spent, created_at, updated_at
		FROM customers
		ORDER BY total_spent DESC, created_at DESC`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var customer models.Customer
		err := rows.Scan(
			&customer.ID,
			&customer.Email,
			&customer.Name,
			&customer.Phone,
			&customer.TotalOrders,
			&customer.TotalSpent,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return customers, nil
}
