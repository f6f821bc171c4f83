package cart

import (
	"context"
	"log"

	"github.com/nicheclub/storefront/internal/models"
)

// Store front-ends a Repository with write-through persistence: every
// mutation saves the full item list so the cart survives a reload. Storage
// failures are logged and swallowed; the cart keeps working in memory for
// the rest of the session.
type Store struct {
	repo    Repository
	pricing Pricing
}

func NewStore(repo Repository, pricing Pricing) *Store {
	return &Store{repo: repo, pricing: pricing}
}

func (s *Store) Get(ctx context.Context, sessionID string) *Cart {
	items, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		log.Printf("cart load failed for session %s: %v", sessionID, err)
		return &Cart{}
	}
	return &Cart{Items: items}
}

func (s *Store) Add(ctx context.Context, sessionID string, item models.LineItem) (*Cart, error) {
	c := s.Get(ctx, sessionID)
	if err := c.Add(item); err != nil {
		return c, err
	}
	s.persist(ctx, sessionID, c)
	return c, nil
}

func (s *Store) Remove(ctx context.Context, sessionID, productID, size, color string) *Cart {
	c := s.Get(ctx, sessionID)
	c.Remove(productID, size, color)
	s.persist(ctx, sessionID, c)
	return c
}

func (s *Store) Clear(ctx context.Context, sessionID string) {
	if err := s.repo.Clear(ctx, sessionID); err != nil {
		log.Printf("cart clear failed for session %s: %v", sessionID, err)
	}
}

func (s *Store) Totals(c *Cart) Totals {
	return s.pricing.Totals(c)
}

func (s *Store) persist(ctx context.Context, sessionID string, c *Cart) {
	if err := s.repo.Save(ctx, sessionID, c.Items); err != nil {
		log.Printf("cart save failed for session %s: %v", sessionID, err)
	}
}
