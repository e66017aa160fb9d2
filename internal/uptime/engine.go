package uptime

import (
	"context"
	"fmt"
	"math"
	"storemon/internal/models"
	"storemon/internal/providers"
	"storemon/internal/repository"
	"storemon/internal/structures"
	"time"
)

// MetricsEngine computes one store's uptime/downtime for the three trailing
// windows off a shared anchor time. Failures are isolated per store: a
// lookup or timezone error degrades that store's row to zeros (with an
// error marker) instead of aborting the batch.
type MetricsEngine struct {
	obs       repository.ObservationRepository
	hours     repository.BusinessHoursRepository
	zones     repository.TimezoneRepository
	defaultTZ string
	logger    providers.Logger
}

func NewMetricsEngine(repos *repository.Set, conf *structures.Config, logger providers.Logger) *MetricsEngine {
	return &MetricsEngine{
		obs:       repos.Observations,
		hours:     repos.Hours,
		zones:     repos.Zones,
		defaultTZ: conf.Reports.DefaultTimezone,
		logger:    logger,
	}
}

func (e *MetricsEngine) ComputeStore(ctx context.Context, storeID string, anchor time.Time) models.MetricsRow {
	row, err := e.compute(ctx, storeID, anchor)
	if err != nil {
		e.logger.Errorf(providers.TypeApp, "store %s: metrics computation degraded: %s", storeID, err)
		return models.MetricsRow{StoreID: storeID, Err: err.Error()}
	}
	return row
}

func (e *MetricsEngine) compute(ctx context.Context, storeID string, anchor time.Time) (models.MetricsRow, error) {
	tzName, err := e.zones.Timezone(ctx, storeID)
	if err != nil {
		return models.MetricsRow{}, fmt.Errorf("timezone lookup: %w", err)
	}
	if tzName == "" {
		tzName = e.defaultTZ
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return models.MetricsRow{}, fmt.Errorf("load location %q: %w", tzName, err)
	}

	sched, err := e.hours.Schedule(ctx, storeID)
	if err != nil {
		return models.MetricsRow{}, fmt.Errorf("schedule lookup: %w", err)
	}

	row := models.MetricsRow{StoreID: storeID}

	hourUp, hourDown, err := e.windowMinutes(ctx, storeID, anchor, time.Hour, sched, loc)
	if err != nil {
		return models.MetricsRow{}, err
	}
	dayUp, dayDown, err := e.windowMinutes(ctx, storeID, anchor, 24*time.Hour, sched, loc)
	if err != nil {
		return models.MetricsRow{}, err
	}
	weekUp, weekDown, err := e.windowMinutes(ctx, storeID, anchor, 7*24*time.Hour, sched, loc)
	if err != nil {
		return models.MetricsRow{}, err
	}

	// Hour window reported in minutes, day and week windows in hours.
	row.UptimeLastHour = round2(hourUp)
	row.DowntimeLastHour = round2(hourDown)
	row.UptimeLastDay = round2(dayUp / 60)
	row.DowntimeLastDay = round2(dayDown / 60)
	row.UptimeLastWeek = round2(weekUp / 60)
	row.DowntimeLastWeek = round2(weekDown / 60)

	return row, nil
}

func (e *MetricsEngine) windowMinutes(ctx context.Context, storeID string, anchor time.Time, window time.Duration, sched models.Schedule, loc *time.Location) (float64, float64, error) {
	start := anchor.Add(-window)

	observations, err := e.obs.Range(ctx, storeID, start, anchor)
	if err != nil {
		return 0, 0, fmt.Errorf("observations %s window: %w", window, err)
	}
	// The look-back for subintervals without in-range readings spans the
	// store's entire history, not just this window.
	prev, ok, err := e.obs.LatestBefore(ctx, storeID, start)
	if err != nil {
		return 0, 0, fmt.Errorf("latest observation before %s window: %w", window, err)
	}
	if ok {
		observations = append([]models.Observation{prev}, observations...)
	}

	periods := BusinessWindows(start, anchor, sched, loc)
	up, down := Interpolate(observations, periods)
	return up, down, nil
}

// round2 rounds half-up to two decimals; metric values are never negative.
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
