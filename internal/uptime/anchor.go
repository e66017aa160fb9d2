package uptime

import (
	"context"
	"storemon/internal/repository"
	"storemon/internal/structures"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// AnchorResolver fixes the "current time" for a report run: the maximum
// observation timestamp across all stores. The value is cached with a TTL
// to bound repeated full-table scans; concurrent misses collapse into a
// single query via singleflight. When no observations exist at all, the
// wall clock is returned as a fallback and not cached.
type AnchorResolver struct {
	obs repository.ObservationRepository
	ttl time.Duration
	now func() time.Time

	mu        sync.RWMutex
	cached    time.Time
	fetchedAt time.Time
	group     singleflight.Group
}

func NewAnchorResolver(repos *repository.Set, conf *structures.Config) *AnchorResolver {
	return &AnchorResolver{obs: repos.Observations, ttl: conf.Reports.AnchorTTL, now: time.Now}
}

func (r *AnchorResolver) Anchor(ctx context.Context) (time.Time, error) {
	r.mu.RLock()
	if !r.cached.IsZero() && r.now().Sub(r.fetchedAt) < r.ttl {
		cached := r.cached
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	v, err, _ := r.group.Do("anchor", func() (interface{}, error) {
		ts, ok, err := r.obs.MaxTimestamp(ctx)
		if err != nil {
			return time.Time{}, err
		}
		if !ok {
			return r.now().UTC(), nil
		}
		r.mu.Lock()
		r.cached = ts
		r.fetchedAt = r.now()
		r.mu.Unlock()
		return ts, nil
	})
	if err != nil {
		return time.Time{}, err
	}
	return v.(time.Time), nil
}
