package cart

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nicheclub/storefront/internal/database"
	"github.com/nicheclub/storefront/internal/models"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository stores session carts in the cart_items table. Save
// replaces the whole item list in one transaction, mirroring the
// write-through contract of the Store.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Load(ctx context.Context, sessionID string) ([]models.LineItem, error) {
	query := `
		SELECT product_id, name, size, color, unit_price, quantity, image_url, added_at
		FROM cart_items
		WHERE session_id = $1
		ORDER BY added_at`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	defer rows.Close()

	var items []models.LineItem
	for rows.Next() {
		var item models.LineItem
		err := rows.Scan(
			&item.ProductID,
			&item.Name,
			&item.Size,
			&item.Color,
			&item.UnitPrice,
			&item.Quantity,
			&item.ImageURL,
			&item.AddedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return items, nil
}

func (r *postgresRepository) Save(ctx context.Context, sessionID string, items []models.LineItem) error {
	return database.WithTransaction(ctx, r.db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM cart_items WHERE session_id = $1`, sessionID); err != nil {
			return fmt.Errorf("clear cart items: %w", err)
		}

		for _, item := range items {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO cart_items (session_id, product_id, name, size, color, unit_price, quantity, image_url, added_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				sessionID, item.ProductID, item.Name, item.Size, item.Color,
				item.UnitPrice, item.Quantity, item.ImageURL, item.AddedAt)
			if err != nil {
				return fmt.Errorf("insert cart item: %w", err)
			}
		}

		return nil
	})
}

func (r *postgresRepository) Clear(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
