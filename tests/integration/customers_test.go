package integration

import (
	"context"
	"testing"

	"github.com/nicheclub/storefront/internal/database"
	"github.com/nicheclub/storefront/internal/store"
	"github.com/shopspring/decimal"
)

func TestUpsertCustomerAggregates(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	first, err := store.UpsertCustomer(ctx, db, "jamie@example.com", "Jamie Rivera", "555-0101", decimal.NewFromFloat(42.40))
	if err != nil {
		t.Fatalf("Upsert customer: %v", err)
	}
	if first.TotalOrders != 1 {
		t.Errorf("Expected 1 order, got %d", first.TotalOrders)
	}
	if !first.TotalSpent.Equal(decimal.NewFromFloat(42.40)) {
		t.Errorf("Expected total spent 42.40, got %s", first.TotalSpent)
	}

	second, err := store.UpsertCustomer(ctx, db, "jamie@example.com", "Jamie Rivera", "", decimal.NewFromFloat(259.20))
	if err != nil {
		t.Fatalf("Upsert customer again: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("Expected same customer row, got ids %d and %d", first.ID, second.ID)
	}
	if second.TotalOrders != 2 {
		t.Errorf("Expected 2 orders, got %d", second.TotalOrders)
	}
	if !second.TotalSpent.Equal(decimal.NewFromFloat(301.60)) {
		t.Errorf("Expected total spent 301.60, got %s", second.TotalSpent)
	}
	// empty phone on a repeat purchase keeps the one on file
	if second.Phone != "555-0101" {
		t.Errorf("Expected phone preserved, got %q", second.Phone)
	}
}

func TestGetCustomerByEmail(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	if _, err := store.UpsertCustomer(ctx, db, "sam@example.com", "Sam Ortiz", "", decimal.NewFromInt(100)); err != nil {
		t.Fatalf("Upsert customer: %v", err)
	}

	customer, err := store.GetCustomerByEmail(ctx, db, "sam@example.com")
	if err != nil {
		t.Fatalf("Get customer: %v", err)
	}
	if customer.Name != "Sam Ortiz" {
		t.Errorf("Expected Sam Ortiz, got %s", customer.Name)
	}

	if _, err := store.GetCustomerByEmail(ctx, db, "nobody@example.com"); err != database.ErrCustomerNotFound {
		t.Errorf("Expected ErrCustomerNotFound, got %v", err)
	}
}
