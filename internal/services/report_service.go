package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"storemon/internal/models"
	"storemon/internal/providers"
	"storemon/internal/report"
	"storemon/internal/repository"
	"storemon/internal/structures"
	"storemon/internal/uptime"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// ReportServiceInterface is the orchestrator surface exposed to transport.
type ReportServiceInterface interface {
	TriggerReport() string
	GetReport(id string) (models.ReportJob, bool)
	RunningReports() int
	TotalReports() int
	InFlightStores() int
	Start()
	Stop()
}

// storeTask is one store's metrics computation, fanned out to the pool.
type storeTask struct {
	ctx     context.Context
	storeID string
	anchor  time.Time
	out     chan<- models.MetricsRow
}

// generationJob carries the state snapshotted at trigger time: the store
// set and the anchor, so every row of a run shares one "now" even while
// new observations keep arriving.
type generationJob struct {
	id       string
	anchor   time.Time
	storeIDs []string
}

// ReportService owns the report lifecycle: trigger allocates a Running job
// and returns its id immediately; a background runner picks the job up and
// fans the per-store computation out across a persistent, bounded worker
// pool reused across runs. Run-level failures surface only through the
// job's terminal Failed state.
type ReportService struct {
	conf    *structures.Config
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	obs     repository.ObservationRepository
	anchors *uptime.AnchorResolver
	engine  *uptime.MetricsEngine
	store   report.StoreInterface
	sink    report.Sink

	jobs     chan generationJob
	tasks    chan storeTask
	quit     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
	inFlight atomic.Int64
}

func NewReportService(
	conf *structures.Config,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
	repos *repository.Set,
	anchors *uptime.AnchorResolver,
	engine *uptime.MetricsEngine,
	store report.StoreInterface,
	sink report.Sink,
) ReportServiceInterface {
	return &ReportService{
		conf:    conf,
		logger:  logger,
		metrics: metrics,
		obs:     repos.Observations,
		anchors: anchors,
		engine:  engine,
		store:   store,
		sink:    sink,
		jobs:    make(chan generationJob, conf.Reports.QueueSize),
		tasks:   make(chan storeTask),
		quit:    make(chan struct{}),
	}
}

// Start launches the worker pool and the job runner. The pool outlives any
// single trigger call; generation does not depend on the request that
// started it.
func (rs *ReportService) Start() {
	for i := 0; i < rs.conf.Reports.Workers; i++ {
		rs.wg.Add(1)
		go rs.worker()
	}
	rs.wg.Add(1)
	go rs.run()
	rs.logger.Infof(providers.TypeApp, "Report service started: %d workers, queue %d",
		rs.conf.Reports.Workers, rs.conf.Reports.QueueSize)
}

func (rs *ReportService) Stop() {
	rs.stopOnce.Do(func() {
		close(rs.quit)
	})
	rs.wg.Wait()
}

// TriggerReport allocates a fresh report id, records it as Running and
// hands generation off to the background runner. It never blocks on
// generation; snapshot failures land in the job's Failed state, not here.
func (rs *ReportService) TriggerReport() string {
	id := uuid.NewString()
	rs.store.Create(models.ReportJob{
		ID:        id,
		Status:    models.ReportRunning,
		CreatedAt: time.Now().UTC(),
	})
	rs.metrics.IncReportsTriggered()

	ctx, cancel := context.WithTimeout(context.Background(), rs.conf.Reports.MaxDuration)
	defer cancel()

	storeIDs, err := rs.obs.StoreIDs(ctx)
	if err != nil {
		rs.fail(id, fmt.Errorf("enumerate stores: %w", err))
		return id
	}
	anchor, err := rs.anchors.Anchor(ctx)
	if err != nil {
		rs.fail(id, fmt.Errorf("resolve anchor time: %w", err))
		return id
	}

	select {
	case rs.jobs <- generationJob{id: id, anchor: anchor, storeIDs: storeIDs}:
	default:
		rs.fail(id, errors.New("report queue full"))
	}
	return id
}

func (rs *ReportService) GetReport(id string) (models.ReportJob, bool) {
	return rs.store.Get(id)
}

func (rs *ReportService) RunningReports() int {
	return rs.store.Running()
}

func (rs *ReportService) TotalReports() int {
	return rs.store.Len()
}

// InFlightStores reports how many per-store computations the pool is working
// on right now.
func (rs *ReportService) InFlightStores() int {
	return int(rs.inFlight.Load())
}

func (rs *ReportService) run() {
	defer rs.wg.Done()
	for {
		select {
		case <-rs.quit:
			return
		case job := <-rs.jobs:
			rs.generate(job)
		}
	}
}

func (rs *ReportService) worker() {
	defer rs.wg.Done()
	for {
		select {
		case <-rs.quit:
			return
		case task := <-rs.tasks:
			rs.inFlight.Inc()
			task.out <- rs.engine.ComputeStore(task.ctx, task.storeID, task.anchor)
			rs.inFlight.Dec()
		}
	}
}

func (rs *ReportService) generate(job generationJob) {
	ctx, cancel := context.WithTimeout(context.Background(), rs.conf.Reports.MaxDuration)
	defer cancel()

	started := time.Now()
	rs.logger.Infof(providers.TypeApp, "Report %s: processing %d stores, anchor %s",
		job.id, len(job.storeIDs), job.anchor.Format(time.RFC3339))

	// Buffered to the full fan-out so workers never block on a slow or
	// timed-out collector.
	out := make(chan models.MetricsRow, len(job.storeIDs))
	dispatched := 0
dispatch:
	for _, storeID := range job.storeIDs {
		select {
		case rs.tasks <- storeTask{ctx: ctx, storeID: storeID, anchor: job.anchor, out: out}:
			dispatched++
		case <-ctx.Done():
			break dispatch
		case <-rs.quit:
			// Workers are draining; a blocked send here would pin Stop
			// until the generation timeout.
			rs.fail(job.id, errors.New("interrupted by shutdown"))
			return
		}
	}

	rows := make([]models.MetricsRow, 0, dispatched)
collect:
	for i := 0; i < dispatched; i++ {
		select {
		case row := <-out:
			if row.Err != "" {
				rs.metrics.IncStoreComputeErrors()
			}
			rows = append(rows, row)
		case <-ctx.Done():
			break collect
		}
	}

	if ctx.Err() != nil {
		rs.fail(job.id, fmt.Errorf("generation exceeded %s", rs.conf.Reports.MaxDuration))
		return
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].StoreID < rows[j].StoreID
	})

	path, err := rs.sink.Write(job.id, rows)
	if err != nil {
		rs.fail(job.id, fmt.Errorf("write report output: %w", err))
		return
	}

	rs.store.Complete(job.id, path)
	rs.metrics.IncReportsCompleted()
	rs.metrics.ObserveGenerationDuration(time.Since(started))
	rs.logger.Infof(providers.TypeApp, "Report %s: complete, %d rows in %s",
		job.id, len(rows), time.Since(started).Round(time.Millisecond))
}

func (rs *ReportService) fail(id string, err error) {
	rs.logger.Errorf(providers.TypeApp, "Report %s: failed: %s", id, err)
	rs.store.Fail(id, err.Error())
	rs.metrics.IncReportsFailed()
}
