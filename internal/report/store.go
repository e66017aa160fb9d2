package report

import (
	"storemon/internal/models"
	"sync"
	"time"
)

// StoreInterface is the report-status store: a shared keyed map with one
// writer per key (the generation task for that id) and atomic reads for
// concurrent status polling.
type StoreInterface interface {
	Create(job models.ReportJob)
	Get(id string) (models.ReportJob, bool)
	Complete(id, outputPath string)
	Fail(id, message string)
	Running() int
	Len() int
	Snapshot() map[string]models.ReportJob
	Put(jobs map[string]models.ReportJob)
	Prune(olderThan time.Time) []models.ReportJob
}

type Store struct {
	mu   sync.RWMutex
	jobs map[string]models.ReportJob
	now  func() time.Time
}

func NewStore() StoreInterface {
	return &Store{jobs: make(map[string]models.ReportJob), now: time.Now}
}

func (s *Store) Create(job models.ReportJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *Store) Get(id string) (models.ReportJob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	return job, ok
}

// Complete transitions Running → Complete. Terminal states are never
// revisited, so a late writer cannot clobber an earlier outcome.
func (s *Store) Complete(id, outputPath string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok || job.Terminal() {
		return
	}
	done := s.now().UTC()
	job.Status = models.ReportComplete
	job.OutputPath = outputPath
	job.CompletedAt = &done
	s.jobs[id] = job
}

// Fail transitions Running → Failed with a diagnostic message.
func (s *Store) Fail(id, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok || job.Terminal() {
		return
	}
	done := s.now().UTC()
	job.Status = models.ReportFailed
	job.Error = message
	job.CompletedAt = &done
	s.jobs[id] = job
}

func (s *Store) Running() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, job := range s.jobs {
		if job.Status == models.ReportRunning {
			n++
		}
	}
	return n
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

func (s *Store) Snapshot() map[string]models.ReportJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]models.ReportJob, len(s.jobs))
	for id, job := range s.jobs {
		out[id] = job
	}
	return out
}

func (s *Store) Put(jobs map[string]models.ReportJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, job := range jobs {
		s.jobs[id] = job
	}
}

// Prune drops terminal jobs finished before the cutoff and returns them so
// the caller can remove their output files. Running jobs are never pruned.
func (s *Store) Prune(olderThan time.Time) []models.ReportJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed []models.ReportJob
	for id, job := range s.jobs {
		if job.Terminal() && job.CompletedAt != nil && job.CompletedAt.Before(olderThan) {
			removed = append(removed, job)
			delete(s.jobs, id)
		}
	}
	return removed
}
