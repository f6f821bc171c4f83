package reviews

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForProductIsDeterministic(t *testing.T) {
	gen := NewGenerator()

	first := gen.ForProduct("linen-overshirt")
	second := gen.ForProduct("linen-overshirt")

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("same key produced different reviews (-first +second):\n%s", diff)
	}

	// a freshly built generator must agree as well: no process state leaks in
	other := NewGenerator().ForProduct("linen-overshirt")
	if diff := cmp.Diff(first, other); diff != "" {
		t.Errorf("fresh generator disagreed (-first +other):\n%s", diff)
	}
}

func TestDifferentKeysDiffer(t *testing.T) {
	gen := NewGenerator()

	x := gen.ForProduct("x")
	y := gen.ForProduct("y")

	if cmp.Equal(x, y) {
		t.Error("distinct product keys produced identical review sets")
	}
}

func TestForProductBounds(t *testing.T) {
	gen := NewGenerator()

	keys := []string{
		"linen-overshirt", "boxy-tee", "cargo-pant", "wool-beanie",
		"oversized-hoodie", "denim-jacket", "x", "y", "z", "prod-123",
	}

	for _, key := range keys {
		got := gen.ForProduct(key)

		require.GreaterOrEqual(t, len(got), minPerProduct, "key %q", key)
		require.LessOrEqual(t, len(got), maxPerProduct, "key %q", key)

		var late int
		for _, r := range got {
			assert.GreaterOrEqual(t, r.Rating, 3)
			assert.LessOrEqual(t, r.Rating, 5)
			if r.LateDelivery {
				late++
				assert.Equal(t, 3, r.Rating, "late-delivery reviews are 3 stars")
			} else {
				assert.GreaterOrEqual(t, r.Rating, 4, "positive reviews are 4-5 stars")
			}
		}
		assert.LessOrEqual(t, late, 2, "key %q", key)
	}
}

func TestForProductSortedNewestFirst(t *testing.T) {
	got := NewGenerator().ForProduct("boxy-tee")

	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].CreatedAt.After(got[i-1].CreatedAt),
			"reviews out of order at %d", i)
	}
}

func TestForProductNoDuplicates(t *testing.T) {
	got := NewGenerator().ForProduct("cargo-pant")

	seen := make(map[string]bool, len(got))
	for _, r := range got {
		assert.False(t, seen[r.ID], "duplicate pool entry %s", r.ID)
		seen[r.ID] = true
	}
}

func TestPoolPartition(t *testing.T) {
	gen := NewGenerator()

	require.Len(t, gen.pool, poolSize)

	for i, r := range gen.pool {
		if i < latePoolSize {
			assert.True(t, r.LateDelivery, "pool[%d] should be late-delivery", i)
		} else {
			assert.False(t, r.LateDelivery, "pool[%d] should be positive", i)
		}
	}
}

func TestDefaultIsSharedInstance(t *testing.T) {
	assert.Same(t, Default(), Default())
}
