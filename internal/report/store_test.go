package report

import (
	"storemon/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoreAt(now time.Time) *Store {
	return &Store{jobs: make(map[string]models.ReportJob), now: func() time.Time { return now }}
}

func runningJob(id string) models.ReportJob {
	return models.ReportJob{ID: id, Status: models.ReportRunning, CreatedAt: time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)}
}

func TestStore_CreateAndGet(t *testing.T) {
	s := NewStore()
	s.Create(runningJob("r1"))

	job, ok := s.Get("r1")
	require.True(t, ok)
	assert.Equal(t, models.ReportRunning, job.Status)

	_, ok = s.Get("r2")
	assert.False(t, ok)
}

func TestStore_Complete(t *testing.T) {
	now := time.Date(2024, 1, 8, 13, 0, 0, 0, time.UTC)
	s := newStoreAt(now)
	s.Create(runningJob("r1"))

	s.Complete("r1", "/reports/r1.csv")

	job, ok := s.Get("r1")
	require.True(t, ok)
	assert.Equal(t, models.ReportComplete, job.Status)
	assert.Equal(t, "/reports/r1.csv", job.OutputPath)
	require.NotNil(t, job.CompletedAt)
	assert.True(t, job.CompletedAt.Equal(now))
}

func TestStore_Fail(t *testing.T) {
	s := newStoreAt(time.Date(2024, 1, 8, 13, 0, 0, 0, time.UTC))
	s.Create(runningJob("r1"))

	s.Fail("r1", "report queue full")

	job, _ := s.Get("r1")
	assert.Equal(t, models.ReportFailed, job.Status)
	assert.Equal(t, "report queue full", job.Error)
	assert.NotNil(t, job.CompletedAt)
}

func TestStore_TerminalStateNeverRevisited(t *testing.T) {
	s := newStoreAt(time.Date(2024, 1, 8, 13, 0, 0, 0, time.UTC))
	s.Create(runningJob("r1"))
	s.Complete("r1", "/reports/r1.csv")

	s.Fail("r1", "late failure")
	job, _ := s.Get("r1")
	assert.Equal(t, models.ReportComplete, job.Status)
	assert.Empty(t, job.Error)

	s.Create(runningJob("r2"))
	s.Fail("r2", "broken")
	s.Complete("r2", "/reports/r2.csv")
	job, _ = s.Get("r2")
	assert.Equal(t, models.ReportFailed, job.Status)
	assert.Empty(t, job.OutputPath)
}

func TestStore_CompleteUnknownIdIsNoop(t *testing.T) {
	s := NewStore()
	s.Complete("missing", "/reports/missing.csv")
	s.Fail("missing", "nope")
	assert.Equal(t, 0, s.Len())
}

func TestStore_RunningAndLen(t *testing.T) {
	s := newStoreAt(time.Date(2024, 1, 8, 13, 0, 0, 0, time.UTC))
	s.Create(runningJob("r1"))
	s.Create(runningJob("r2"))
	s.Create(runningJob("r3"))
	s.Complete("r2", "/reports/r2.csv")
	s.Fail("r3", "boom")

	assert.Equal(t, 1, s.Running())
	assert.Equal(t, 3, s.Len())
}

func TestStore_SnapshotIsCopy(t *testing.T) {
	s := newStoreAt(time.Date(2024, 1, 8, 13, 0, 0, 0, time.UTC))
	s.Create(runningJob("r1"))

	snap := s.Snapshot()
	delete(snap, "r1")

	_, ok := s.Get("r1")
	assert.True(t, ok)
}

func TestStore_PutMerges(t *testing.T) {
	s := NewStore()
	s.Create(runningJob("r1"))
	s.Put(map[string]models.ReportJob{
		"r2": {ID: "r2", Status: models.ReportComplete},
	})

	assert.Equal(t, 2, s.Len())
	job, ok := s.Get("r2")
	require.True(t, ok)
	assert.Equal(t, models.ReportComplete, job.Status)
}

func TestStore_PruneDropsOnlyExpiredTerminal(t *testing.T) {
	now := time.Date(2024, 1, 8, 13, 0, 0, 0, time.UTC)
	old := now.Add(-48 * time.Hour)
	recent := now.Add(-time.Hour)
	s := NewStore().(*Store)

	s.Put(map[string]models.ReportJob{
		"expired": {ID: "expired", Status: models.ReportComplete, CompletedAt: &old, OutputPath: "/reports/expired.csv"},
		"fresh":   {ID: "fresh", Status: models.ReportComplete, CompletedAt: &recent},
		"active":  {ID: "active", Status: models.ReportRunning},
	})

	removed := s.Prune(now.Add(-24 * time.Hour))

	require.Len(t, removed, 1)
	assert.Equal(t, "expired", removed[0].ID)
	assert.Equal(t, 2, s.Len())
	_, ok := s.Get("active")
	assert.True(t, ok)
}
