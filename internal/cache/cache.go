// Package cache holds process-local copies of listing query results.
// Entries live for the lifetime of the process and are invalidated, never
// patched, after a successful mutation. Which entries a write invalidates is
// declared as an explicit dependency graph rather than by naming convention:
// each collection lists the collections whose cached views embed or derive
// from it, and Invalidate walks that graph transitively.
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Collection names one cached entity collection.
type Collection string

const (
	Brands          Collection = "brands"
	SubBrands       Collection = "sub_brands"
	Categories      Collection = "categories"
	Sizes           Collection = "sizes"
	Products        Collection = "products"
	ProductVariants Collection = "product_variants"
	Pricelists      Collection = "pricelists"
	PriceEntries    Collection = "pricelist_items"
	Customers       Collection = "customers"
	CustomerCatalog Collection = "customer_catalog"
)

// dependents maps a collection to the collections whose cached listings
// embed rows (or derived values, such as counts) of it. A write to the key
// collection makes every listed dependent stale. The graph may contain
// cycles (products embed category names, category listings count products);
// the walk carries a visited set.
var dependents = map[Collection][]Collection{
	SubBrands:       {Brands, Products},
	Brands:          {Products, CustomerCatalog},
	Categories:      {Products, CustomerCatalog},
	Sizes:           {ProductVariants, CustomerCatalog},
	Products:        {Categories, ProductVariants, CustomerCatalog},
	ProductVariants: {Products, CustomerCatalog},
	PriceEntries:    {CustomerCatalog},
	Pricelists:      {Customers, CustomerCatalog},
	Customers:       {CustomerCatalog},
}

// Store is a read-through cache keyed by (collection, key). Concurrent
// fetches of the same key after an invalidation are collapsed to a single
// remote query via singleflight. gens counts invalidations per collection:
// a fetch that was already in flight when an invalidation ran carries
// pre-mutation data, and its result is returned to its callers but never
// stored.
type Store struct {
	mu      sync.RWMutex
	entries map[string]interface{}
	gens    map[Collection]uint64
	group   singleflight.Group
}

// New creates an empty cache store.
func New() *Store {
	return &Store{
		entries: make(map[string]interface{}),
		gens:    make(map[Collection]uint64),
	}
}

func entryKey(coll Collection, key string) string {
	return string(coll) + ":" + key
}

// GetOrFetch returns the cached value for (coll, key), fetching and storing
// it on a miss. A fetch error is returned to the caller and nothing is
// cached.
func (s *Store) GetOrFetch(ctx context.Context, coll Collection, key string, fetch func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	ek := entryKey(coll, key)

	s.mu.RLock()
	v, ok := s.entries[ek]
	s.mu.RUnlock()
	if ok {
		return v, nil
	}

	v, err, _ := s.group.Do(ek, func() (interface{}, error) {
		// Re-check under the group: another caller may have filled the
		// entry between the read-lock release and this call.
		s.mu.RLock()
		v, ok := s.entries[ek]
		gen := s.gens[coll]
		s.mu.RUnlock()
		if ok {
			return v, nil
		}

		fetched, err := fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("cache: fetch %s failed: %w", ek, err)
		}
		s.mu.Lock()
		// An invalidation during the fetch means this result predates a
		// mutation; hand it back but leave the cache empty so the next
		// read refetches.
		if s.gens[coll] == gen {
			s.entries[ek] = fetched
		}
		s.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Invalidate drops every entry of coll and, transitively, of every
// collection whose cached views depend on coll.
func (s *Store) Invalidate(coll Collection) {
	visited := make(map[Collection]bool)
	s.invalidate(coll, visited)
}

func (s *Store) invalidate(coll Collection, visited map[Collection]bool) {
	if visited[coll] {
		return
	}
	visited[coll] = true
	s.dropCollection(coll)
	for _, dep := range dependents[coll] {
		s.invalidate(dep, visited)
	}
}

func (s *Store) dropCollection(coll Collection) {
	prefix := string(coll) + ":"
	s.mu.Lock()
	s.gens[coll]++
	for k := range s.entries {
		if strings.HasPrefix(k, prefix) {
			delete(s.entries, k)
		}
	}
	s.mu.Unlock()
}

// InvalidateKey drops a single entry without walking the graph. Used for
// identity-scoped views such as one customer's catalog on sign-out. The
// collection generation still moves so an in-flight fetch of the key
// cannot restore the dropped entry.
func (s *Store) InvalidateKey(coll Collection, key string) {
	s.mu.Lock()
	s.gens[coll]++
	delete(s.entries, entryKey(coll, key))
	s.mu.Unlock()
}

// Len reports the number of live entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Fetch is the typed convenience wrapper around Store.GetOrFetch.
func Fetch[T any](ctx context.Context, s *Store, coll Collection, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := s.GetOrFetch(ctx, coll, key, func(ctx context.Context) (interface{}, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
