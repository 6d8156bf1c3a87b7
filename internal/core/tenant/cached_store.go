package tenant

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// CachedStore is a read-through Store. Misses and errors are never cached.
type CachedStore struct {
	store   Store
	cache   Cache
	lookups *prometheus.CounterVec
}

// NewCachedStore wraps store with cache. lookups, when set, is incremented
// with a "result" label of hit, miss, not_found or error.
func NewCachedStore(store Store, cache Cache, lookups *prometheus.CounterVec) *CachedStore {
	return &CachedStore{store: store, cache: cache, lookups: lookups}
}

func (s *CachedStore) FetchTenant(ctx context.Context, clientID string) (*Record, error) {
	if rec, ok := s.cache.Get(ctx, clientID); ok {
		s.count("hit")
		return rec, nil
	}

	rec, err := s.store.FetchTenant(ctx, clientID)
	switch {
	case errors.Is(err, ErrNotFound):
		s.count("not_found")
		return nil, err
	case err != nil:
		s.count("error")
		return nil, err
	}

	s.count("miss")
	s.cache.Set(ctx, clientID, rec)
	return rec, nil
}

func (s *CachedStore) count(result string) {
	if s.lookups != nil {
		s.lookups.WithLabelValues(result).Inc()
	}
}
