package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

var ErrProductNotFound = errors.New("product not found")

// Product is the CMS view of a product: the source of truth for price and
// availability. The cart only carries copies; checkout re-validates against
// this before charging.
type Product struct {
	ID       string          `json:"id"`
	Slug     string          `json:"slug"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	InStock  bool            `json:"in_stock"`
	ImageURL string          `json:"image_url"`
}

type cachedProduct struct {
	product Product
	expires time.Time
}

// Client fetches product data from the headless CMS. Concurrent lookups for
// the same product collapse into one request via singleflight, and results
// are held for a short TTL so a checkout with many line items does not
// hammer the CMS.
type Client struct {
	baseURL string
	ttl     time.Duration
	client  *http.Client
	group   singleflight.Group

	mu    sync.RWMutex
	cache map[string]cachedProduct
}

func NewClient(baseURL string, ttl time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		ttl:     ttl,
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   make(map[string]cachedProduct),
	}
}

func (c *Client) Product(ctx context.Context, productID string) (*Product, error) {
	if productID == "" {
		return nil, fmt.Errorf("productID is empty")
	}

	c.mu.RLock()
	if entry, ok := c.cache[productID]; ok && time.Now().Before(entry.expires) {
		c.mu.RUnlock()
		p := entry.product
		return &p, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do(productID, func() (interface{}, error) {
		// The fetch outlives the triggering caller: coalesced waiters must
		// not fail because the first request was cancelled.
		return c.fetch(context.WithoutCancel(ctx), productID)
	})
	if err != nil {
		return nil, err
	}

	p := v.(Product)
	return &p, nil
}

func (c *Client) fetch(ctx context.Context, productID string) (Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/products/"+productID, nil)
	if err != nil {
		return Product{}, fmt.Errorf("build product request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Product{}, fmt.Errorf("fetch product %s: %w", productID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Product{}, ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return Product{}, fmt.Errorf("fetch product %s: status %d", productID, resp.StatusCode)
	}

	var product Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return Product{}, fmt.Errorf("decode product %s: %w", productID, err)
	}

	c.mu.Lock()
	c.cache[productID] = cachedProduct{product: product, expires: time.Now().Add(c.ttl)}
	c.mu.Unlock()

	return product, nil
}
