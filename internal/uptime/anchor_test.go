package uptime

import (
	"context"
	"errors"
	"storemon/internal/models"
	"storemon/internal/repository"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingObsRepo wraps MemoryData and counts MaxTimestamp queries.
type countingObsRepo struct {
	*repository.MemoryData
	mu      sync.Mutex
	queries int
	err     error
}

func (c *countingObsRepo) MaxTimestamp(ctx context.Context) (time.Time, bool, error) {
	c.mu.Lock()
	c.queries++
	err := c.err
	c.mu.Unlock()
	if err != nil {
		return time.Time{}, false, err
	}
	return c.MemoryData.MaxTimestamp(ctx)
}

func (c *countingObsRepo) queryCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queries
}

func newAnchorResolver(obs repository.ObservationRepository, ttl time.Duration) *AnchorResolver {
	return &AnchorResolver{obs: obs, ttl: ttl, now: time.Now}
}

func TestAnchor_ReturnsMaxObservationTimestamp(t *testing.T) {
	mem := repository.NewMemoryData()
	latest := time.Date(2024, 1, 8, 20, 0, 0, 0, time.UTC)
	mem.AddObservation(models.Observation{StoreID: "a", Timestamp: latest.Add(-time.Hour), Status: models.StatusActive})
	mem.AddObservation(models.Observation{StoreID: "b", Timestamp: latest, Status: models.StatusInactive})

	r := newAnchorResolver(mem, 5*time.Minute)
	anchor, err := r.Anchor(context.Background())

	require.NoError(t, err)
	assert.True(t, anchor.Equal(latest))
}

func TestAnchor_CachedWithinTTL(t *testing.T) {
	repo := &countingObsRepo{MemoryData: repository.NewMemoryData()}
	repo.AddObservation(models.Observation{StoreID: "a", Timestamp: time.Date(2024, 1, 8, 20, 0, 0, 0, time.UTC), Status: models.StatusActive})

	r := newAnchorResolver(repo, 5*time.Minute)
	first, err := r.Anchor(context.Background())
	require.NoError(t, err)

	// Newer data arrives, but the cache still answers.
	repo.AddObservation(models.Observation{StoreID: "a", Timestamp: time.Date(2024, 1, 8, 21, 0, 0, 0, time.UTC), Status: models.StatusActive})
	second, err := r.Anchor(context.Background())
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Equal(t, 1, repo.queryCount())
}

func TestAnchor_RefreshAfterTTL(t *testing.T) {
	repo := &countingObsRepo{MemoryData: repository.NewMemoryData()}
	repo.AddObservation(models.Observation{StoreID: "a", Timestamp: time.Date(2024, 1, 8, 20, 0, 0, 0, time.UTC), Status: models.StatusActive})

	r := newAnchorResolver(repo, time.Nanosecond)
	_, err := r.Anchor(context.Background())
	require.NoError(t, err)

	newer := time.Date(2024, 1, 8, 22, 0, 0, 0, time.UTC)
	repo.AddObservation(models.Observation{StoreID: "a", Timestamp: newer, Status: models.StatusActive})
	time.Sleep(time.Millisecond)

	anchor, err := r.Anchor(context.Background())
	require.NoError(t, err)
	assert.True(t, anchor.Equal(newer))
	assert.Equal(t, 2, repo.queryCount())
}

func TestAnchor_FallbackToWallClockWhenEmpty(t *testing.T) {
	r := newAnchorResolver(repository.NewMemoryData(), 5*time.Minute)

	before := time.Now().UTC()
	anchor, err := r.Anchor(context.Background())
	after := time.Now().UTC()

	require.NoError(t, err)
	assert.False(t, anchor.Before(before))
	assert.False(t, anchor.After(after))
}

func TestAnchor_PropagatesError(t *testing.T) {
	repo := &countingObsRepo{MemoryData: repository.NewMemoryData(), err: errors.New("db down")}
	r := newAnchorResolver(repo, 5*time.Minute)

	_, err := r.Anchor(context.Background())
	assert.Error(t, err)
}

func TestAnchor_ConcurrentMissesSingleQuery(t *testing.T) {
	repo := &countingObsRepo{MemoryData: repository.NewMemoryData()}
	repo.AddObservation(models.Observation{StoreID: "a", Timestamp: time.Date(2024, 1, 8, 20, 0, 0, 0, time.UTC), Status: models.StatusActive})

	r := newAnchorResolver(repo, 5*time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Anchor(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Concurrent misses coalesce; allow a rare second flight but never one
	// query per caller.
	assert.LessOrEqual(t, repo.queryCount(), 2)
}
