package cart

import (
	"context"
	"sync"

	"github.com/nicheclub/storefront/internal/models"
)

// Repository is the durable-storage port for session carts. Backends can be
// swapped without touching cart logic: the in-memory implementation serves
// tests and storage outages, Postgres serves production sessions.
type Repository interface {
	Load(ctx context.Context, sessionID string) ([]models.LineItem, error)
	Save(ctx context.Context, sessionID string, items []models.LineItem) error
	Clear(ctx context.Context, sessionID string) error
}

type memoryRepository struct {
	mu    sync.RWMutex
	carts map[string][]models.LineItem
}

func NewMemoryRepository() Repository {
	return &memoryRepository{carts: make(map[string][]models.LineItem)}
}

func (r *memoryRepository) Load(_ context.Context, sessionID string) ([]models.LineItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.carts[sessionID]
	out := make([]models.LineItem, len(items))
	copy(out, items)
	return out, nil
}

func (r *memoryRepository) Save(_ context.Context, sessionID string, items []models.LineItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]models.LineItem, len(items))
	copy(stored, items)
	r.carts[sessionID] = stored
	return nil
}

func (r *memoryRepository) Clear(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, sessionID)
	return nil
}
