package cache

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetOrFetch_CachesResult(t *testing.T) {
	s := New()
	calls := 0
	fetch := func(ctx context.Context) ([]string, error) {
		calls++
		return []string{"matte", "gloss"}, nil
	}

	v1, err := Fetch(context.Background(), s, Brands, "all", fetch)
	require.NoError(t, err)
	v2, err := Fetch(context.Background(), s, Brands, "all", fetch)
	require.NoError(t, err)

	assert.Equal(t, []string{"matte", "gloss"}, v1)
	assert.Equal(t, v1, v2)
	assert.Equal(t, 1, calls, "second read must be served from cache")
}

func TestStore_GetOrFetch_ErrorNotCached(t *testing.T) {
	s := New()
	calls := 0
	_, err := Fetch(context.Background(), s, Sizes, "all", func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("connection refused")
	})
	require.Error(t, err)

	v, err := Fetch(context.Background(), s, Sizes, "all", func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 2, calls)
}

func TestStore_Invalidate_WalksDependents(t *testing.T) {
	s := New()
	seed := func(coll Collection, key string) {
		_, err := Fetch(context.Background(), s, coll, key, func(ctx context.Context) (string, error) {
			return "cached", nil
		})
		require.NoError(t, err)
	}
	seed(Brands, "all")
	seed(Products, "active")
	seed(Categories, "all")
	seed(Sizes, "all")
	seed(CustomerCatalog, "pricelist-1")

	// A sub-brand write embeds into brand listings and product refs, and
	// brands cascade into the customer catalog.
	s.Invalidate(SubBrands)

	assert.Equal(t, 1, s.Len())
	v, err := Fetch(context.Background(), s, Sizes, "all", func(ctx context.Context) (string, error) {
		return "refetched", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "cached", v, "sizes must survive a sub-brand invalidation")
}

func TestStore_Invalidate_ProductWriteDropsCategoryCounts(t *testing.T) {
	s := New()
	for _, c := range []Collection{Categories, Products, ProductVariants, CustomerCatalog, Pricelists} {
		_, err := Fetch(context.Background(), s, c, "all", func(ctx context.Context) (bool, error) {
			return true, nil
		})
		require.NoError(t, err)
	}

	s.Invalidate(Products)

	// Category listings derive product counts, variants and the customer
	// catalog embed product rows; pricelists are unrelated to product writes.
	assert.Equal(t, 1, s.Len())
	_, err := Fetch(context.Background(), s, Pricelists, "all", func(ctx context.Context) (bool, error) {
		t.Fatal("pricelists entry should still be cached")
		return false, nil
	})
	require.NoError(t, err)
}

func TestStore_Invalidate_TerminatesOnCycles(t *testing.T) {
	s := New()
	done := make(chan struct{})
	go func() {
		// products -> categories -> products is a cycle in the graph.
		s.Invalidate(Categories)
		close(done)
	}()
	<-done
}

func TestStore_Invalidate_DuringInFlightFetch(t *testing.T) {
	s := New()
	fetchStarted := make(chan struct{})
	releaseFetch := make(chan struct{})
	fetchDone := make(chan struct{})

	go func() {
		defer close(fetchDone)
		v, err := Fetch(context.Background(), s, Brands, "all", func(ctx context.Context) (string, error) {
			close(fetchStarted)
			<-releaseFetch
			return "pre-write rows", nil
		})
		// The in-flight caller still gets its result; it just must not
		// be stored past the write.
		assert.NoError(t, err)
		assert.Equal(t, "pre-write rows", v)
	}()

	<-fetchStarted
	s.Invalidate(Brands)
	close(releaseFetch)
	<-fetchDone

	v, err := Fetch(context.Background(), s, Brands, "all", func(ctx context.Context) (string, error) {
		return "post-write rows", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "post-write rows", v, "a fetch that started before the write must not fill the cache")
}

func TestStore_InvalidateKey_BlocksInFlightRestore(t *testing.T) {
	s := New()
	fetchStarted := make(chan struct{})
	releaseFetch := make(chan struct{})
	fetchDone := make(chan struct{})

	go func() {
		defer close(fetchDone)
		_, err := Fetch(context.Background(), s, CustomerCatalog, "user-1", func(ctx context.Context) (string, error) {
			close(fetchStarted)
			<-releaseFetch
			return "stale catalog", nil
		})
		assert.NoError(t, err)
	}()

	<-fetchStarted
	s.InvalidateKey(CustomerCatalog, "user-1")
	close(releaseFetch)
	<-fetchDone

	assert.Equal(t, 0, s.Len(), "sign-out must not race with an in-flight catalog fetch")
}

func TestStore_InvalidateKey_DropsSingleEntry(t *testing.T) {
	s := New()
	for _, key := range []string{"pricelist-1", "pricelist-2"} {
		_, err := Fetch(context.Background(), s, CustomerCatalog, key, func(ctx context.Context) (string, error) {
			return key, nil
		})
		require.NoError(t, err)
	}

	s.InvalidateKey(CustomerCatalog, "pricelist-1")
	assert.Equal(t, 1, s.Len())
}

func TestStore_GetOrFetch_ConcurrentReadersSingleFetch(t *testing.T) {
	s := New()
	var mu sync.Mutex
	calls := 0

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := Fetch(context.Background(), s, Customers, "all", func(ctx context.Context) (string, error) {
				mu.Lock()
				calls++
				mu.Unlock()
				return "rows", nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls, "concurrent misses must collapse to one fetch")
}
