package report

import (
	"os"
	"storemon/internal/providers"
	"storemon/internal/report/interfaces"
	"storemon/internal/structures"
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

// Scheduler owns the periodic background maintenance: persisting the report
// index and sweeping expired report files.
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	store       StoreInterface
	fileManager *FileManager
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting report index: %s", err)
			return
		}
		s.logger.Infof(providers.TypeApp, "Persisted report index to file %s", s.config.Persistence.FilePath)
	})

	s.cron.AddFunc(gron.Every(s.config.Reports.SweepInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()
		s.sweep()
	})

	s.cron.Start()
}

// sweep drops report jobs past the retention TTL and deletes their files.
func (s *Scheduler) sweep() {
	cutoff := time.Now().Add(-s.config.Reports.RetentionTTL)
	removed := s.store.Prune(cutoff)
	if len(removed) == 0 {
		return
	}
	for _, job := range removed {
		if job.OutputPath == "" {
			continue
		}
		if err := os.Remove(job.OutputPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warnf(providers.TypeApp, "Sweep could not remove %s: %s", job.OutputPath, err)
		}
	}
	s.logger.Infof(providers.TypeApp, "Swept %d expired report(s)", len(removed))
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	err := s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
	if err != nil {
		return err
	}
	return nil
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting report index to file...")
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting report index: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, store StoreInterface, fileManager *FileManager) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		store:       store,
		fileManager: fileManager,
	}
}
