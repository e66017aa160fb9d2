package repository

import (
	"context"
	"storemon/internal/models"
	"time"
)

// ObservationRepository reads the store_status poll history.
type ObservationRepository interface {
	// Range returns a store's observations with start <= timestamp <= end,
	// ascending by timestamp.
	Range(ctx context.Context, storeID string, start, end time.Time) ([]models.Observation, error)
	// LatestBefore returns the most recent observation strictly before t,
	// across the store's entire history.
	LatestBefore(ctx context.Context, storeID string, t time.Time) (models.Observation, bool, error)
	// MaxTimestamp returns the latest observation timestamp across all
	// stores; ok is false when no observations exist at all.
	MaxTimestamp(ctx context.Context) (time.Time, bool, error)
	// StoreIDs returns the distinct set of store ids with observations.
	StoreIDs(ctx context.Context) ([]string, error)
}

// BusinessHoursRepository reads per-store weekly schedules. A nil or empty
// schedule means the store never declared hours (treated as 24/7).
type BusinessHoursRepository interface {
	Schedule(ctx context.Context, storeID string) (models.Schedule, error)
}

// TimezoneRepository reads per-store IANA zone names. An empty string means
// no zone is recorded (the caller substitutes the configured default).
type TimezoneRepository interface {
	Timezone(ctx context.Context, storeID string) (string, error)
}

// Set bundles the three readers so the wiring stays flat.
type Set struct {
	Observations ObservationRepository
	Hours        BusinessHoursRepository
	Zones        TimezoneRepository
}
