package repository

import (
	"context"
	"database/sql"
	"fmt"
	"storemon/internal/models"
	"time"
)

// Postgres implementations over the original ingestion schema:
// store_status(store_id, timestamp_utc, status),
// business_hours(store_id, day_of_week, start_time_local, end_time_local),
// store_timezones(store_id, timezone_str).

type PostgresObservationsRepo struct {
	db *sql.DB
}

func NewPostgresObservationsRepo(db *sql.DB) *PostgresObservationsRepo {
	return &PostgresObservationsRepo{db: db}
}

func (r *PostgresObservationsRepo) Range(ctx context.Context, storeID string, start, end time.Time) ([]models.Observation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT store_id, timestamp_utc, status
		FROM store_status
		WHERE store_id = $1 AND timestamp_utc >= $2 AND timestamp_utc <= $3
		ORDER BY timestamp_utc`, storeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query observations for %s: %w", storeID, err)
	}
	defer rows.Close()

	var out []models.Observation
	for rows.Next() {
		o, err := scanObservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PostgresObservationsRepo) LatestBefore(ctx context.Context, storeID string, t time.Time) (models.Observation, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT store_id, timestamp_utc, status
		FROM store_status
		WHERE store_id = $1 AND timestamp_utc < $2
		ORDER BY timestamp_utc DESC
		LIMIT 1`, storeID, t)

	o, err := scanObservation(row)
	if err == sql.ErrNoRows {
		return models.Observation{}, false, nil
	}
	if err != nil {
		return models.Observation{}, false, err
	}
	return o, true, nil
}

func (r *PostgresObservationsRepo) MaxTimestamp(ctx context.Context) (time.Time, bool, error) {
	var ts sql.NullTime
	err := r.db.QueryRowContext(ctx, `SELECT MAX(timestamp_utc) FROM store_status`).Scan(&ts)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("query max timestamp: %w", err)
	}
	if !ts.Valid {
		return time.Time{}, false, nil
	}
	return ts.Time.UTC(), true, nil
}

func (r *PostgresObservationsRepo) StoreIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT store_id FROM store_status ORDER BY store_id`)
	if err != nil {
		return nil, fmt.Errorf("query store ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanObservation(row scannable) (models.Observation, error) {
	var (
		o      models.Observation
		status string
	)
	if err := row.Scan(&o.StoreID, &o.Timestamp, &status); err != nil {
		return models.Observation{}, err
	}
	st, err := models.ParseStatus(status)
	if err != nil {
		return models.Observation{}, err
	}
	o.Timestamp = o.Timestamp.UTC()
	o.Status = st
	return o, nil
}

type PostgresBusinessHoursRepo struct {
	db *sql.DB
}

func NewPostgresBusinessHoursRepo(db *sql.DB) *PostgresBusinessHoursRepo {
	return &PostgresBusinessHoursRepo{db: db}
}

func (r *PostgresBusinessHoursRepo) Schedule(ctx context.Context, storeID string) (models.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT day_of_week, start_time_local::text, end_time_local::text
		FROM business_hours
		WHERE store_id = $1`, storeID)
	if err != nil {
		return nil, fmt.Errorf("query business hours for %s: %w", storeID, err)
	}
	defer rows.Close()

	var sched models.Schedule
	for rows.Next() {
		var (
			day        int
			start, end string
		)
		if err := rows.Scan(&day, &start, &end); err != nil {
			return nil, err
		}
		startLT, err := models.ParseLocalTime(start)
		if err != nil {
			return nil, err
		}
		endLT, err := models.ParseLocalTime(end)
		if err != nil {
			return nil, err
		}
		if sched == nil {
			sched = make(models.Schedule)
		}
		sched[day] = models.HoursRange{Start: startLT, End: endLT}
	}
	return sched, rows.Err()
}

type PostgresTimezonesRepo struct {
	db *sql.DB
}

func NewPostgresTimezonesRepo(db *sql.DB) *PostgresTimezonesRepo {
	return &PostgresTimezonesRepo{db: db}
}

func (r *PostgresTimezonesRepo) Timezone(ctx context.Context, storeID string) (string, error) {
	var tz string
	err := r.db.QueryRowContext(ctx, `
		SELECT timezone_str FROM store_timezones WHERE store_id = $1`, storeID).Scan(&tz)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query timezone for %s: %w", storeID, err)
	}
	return tz, nil
}
