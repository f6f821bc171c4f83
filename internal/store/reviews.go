package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nicheclub/storefront/internal/models"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// CreateReview persists a live customer review, distinct from the
// deterministic sample reviews which never touch the database.
func CreateReview(ctx context.Context, db *sql.DB, productID, customerName, message string, rating int) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if productID == "" {
		return nil, fmt.Errorf("product id is empty")
	}

	review := &models.Review{}

	query := `
		INSERT INTO reviews (product_id, customer_name, message, rating, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, product_id, customer_name, message, rating, created_at`

	err := db.QueryRowContext(ctx, query, productID, customerName, message, rating).Scan(
		&review.ID,
		&review.ProductID,
		&review.CustomerName,
		&review.Message,
		&review.Rating,
		&review.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	return review, nil
}

func ListProductReviews(ctx context.Context, db *sql.DB, productID string) ([]models.Review, error) {
	query := `
		SELECT id, product_id, customer_name, message, rating, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC`

	rows, err := db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		err := rows.Scan(
			&review.ID,
			&review.ProductID,
			&review.CustomerName,
			&review.Message,
			&review.Rating,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return reviews, nil
}
