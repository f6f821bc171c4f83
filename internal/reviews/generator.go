package reviews

import (
	"fmt"
	"hash/fnv"
	"sort"
	"sync"
	"time"
)

// SampleReview is deterministic placeholder content for product pages. It is
// never persisted; the live review feature uses models.Review instead.
type SampleReview struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customer_name"`
	Message      string    `json:"message"`
	Rating       int       `json:"rating"`
	LateDelivery bool      `json:"late_delivery"`
	CreatedAt    time.Time `json:"created_at"`
}

const (
	poolSize     = 650
	latePoolSize = 40

	minPerProduct = 11
	maxPerProduct = 30

	poolSeedKey = "storefront-sample-reviews-v1"
)

// Timestamps are offsets from a fixed date so output never depends on the
// wall clock.
var poolEpoch = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

// lcg is a linear-congruential generator; the constants are the common
// 64-bit Knuth multiplier/increment pair.
type lcg struct {
	state uint64
}

func newLCG(seed uint64) *lcg {
	if seed == 0 {
		seed = 1
	}
	return &lcg{state: seed}
}

func (r *lcg) next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

func (r *lcg) intn(n int) int {
	return int(r.next() % uint64(n))
}

func hashKey(key string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	return h.Sum64()
}

// Generator synthesizes a bounded, varied review set per product key. The
// same key always yields byte-identical output; different keys see
// different subsets of the shared pool.
type Generator struct {
	pool []SampleReview // first latePoolSize entries are late-delivery
}

var (
	defaultGen  *Generator
	defaultOnce sync.Once
)

// Default returns the process-wide generator, building its pool on first use.
func Default() *Generator {
	defaultOnce.Do(func() {
		defaultGen = NewGenerator()
	})
	return defaultGen
}

func NewGenerator() *Generator {
	rng := newLCG(hashKey(poolSeedKey))
	pool := make([]SampleReview, 0, poolSize)

	for i := 0; i < poolSize; i++ {
		late := i < latePoolSize

		var rating int
		var message string
		if late {
			rating = 3
			message = lateOpeners[rng.intn(len(lateOpeners))] + " " + lateDetails[rng.intn(len(lateDetails))]
		} else {
			rating = 4 + rng.intn(2)
			message = positiveOpeners[rng.intn(len(positiveOpeners))] + " " + positiveDetails[rng.intn(len(positiveDetails))]
		}

		daysAgo := rng.intn(540)
		minuteOfDay := rng.intn(24 * 60)

		pool = append(pool, SampleReview{
			ID:           fmt.Sprintf("sample-%04d", i),
			CustomerName: firstNames[rng.intn(len(firstNames))] + " " + lastInitials[rng.intn(len(lastInitials))] + ".",
			Message:      message,
			Rating:       rating,
			LateDelivery: late,
			CreatedAt:    poolEpoch.AddDate(0, 0, -daysAgo).Add(time.Duration(minuteOfDay) * time.Minute),
		})
	}

	// Deterministic Fisher-Yates within each sub-pool so the late/positive
	// partition boundary stays fixed.
	for i := latePoolSize - 1; i > 0; i-- {
		j := rng.intn(i + 1)
		pool[i], pool[j] = pool[j], pool[i]
	}
	for i := poolSize - 1; i > latePoolSize; i-- {
		j := latePoolSize + rng.intn(i-latePoolSize+1)
		pool[i], pool[j] = pool[j], pool[i]
	}

	return &Generator{pool: pool}
}

// ForProduct returns the review set for a product key (slug or id), sorted
// newest-first. Quantity is 11-30 with a rare 0-2 late-delivery inclusions,
// both seeded from the key.
func (g *Generator) ForProduct(productKey string) []SampleReview {
	rng := newLCG(hashKey(productKey))

	total := minPerProduct + rng.intn(maxPerProduct-minPerProduct+1)

	var lateCount int
	switch roll := rng.intn(10); {
	case roll >= 9:
		lateCount = 2
	case roll >= 7:
		lateCount = 1
	}
	if lateCount > total {
		lateCount = total
	}

	out := make([]SampleReview, 0, total)
	out = append(out, g.pick(rng, 0, latePoolSize, lateCount)...)
	out = append(out, g.pick(rng, latePoolSize, poolSize, total-lateCount)...)

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out
}

// pick walks the [lo, hi) sub-pool with a seed-derived stride, skipping
// already-used entries, until the quota is filled.
func (g *Generator) pick(rng *lcg, lo, hi, quota int) []SampleReview {
	n := hi - lo
	if quota > n {
		quota = n
	}
	if quota <= 0 {
		return nil
	}

	stride := 1 + rng.intn(n)
	idx := rng.intn(n)
	used := make(map[int]bool, quota)

	out := make([]SampleReview, 0, quota)
	for len(out) < quota {
		for used[idx] {
			idx = (idx + 1) % n
		}
		used[idx] = true
		out = append(out, g.pool[lo+idx])
		idx = (idx + stride) % n
	}

	return out
}
