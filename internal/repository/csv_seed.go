package repository

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"storemon/internal/models"
	"storemon/internal/providers"
	"storemon/internal/structures"
	"time"

	"github.com/spf13/cast"
)

// Timestamp layouts seen in the source exports.
var seedTimeLayouts = []string{
	"2006-01-02 15:04:05.999999 UTC",
	"2006-01-02 15:04:05 UTC",
	"2006-01-02 15:04:05.999999-07",
	time.RFC3339,
}

// LoadSeedData fills the in-memory repositories from the CSV exports.
// Missing file paths are skipped; malformed rows are skipped with a warning
// so one bad line does not sink the whole load.
func LoadSeedData(data *MemoryData, conf structures.SeedConfig, logger providers.Logger) error {
	if conf.StatusFile != "" {
		n, err := loadCSV(conf.StatusFile, func(rec []string) error {
			if len(rec) < 3 {
				return fmt.Errorf("want 3 columns, got %d", len(rec))
			}
			ts, err := parseSeedTime(rec[1])
			if err != nil {
				return err
			}
			status, err := models.ParseStatus(rec[2])
			if err != nil {
				return err
			}
			data.AddObservation(models.Observation{StoreID: rec[0], Timestamp: ts, Status: status})
			return nil
		}, logger)
		if err != nil {
			return fmt.Errorf("load store status: %w", err)
		}
		logger.Infof(providers.TypeApp, "Seeded %d observations from %s", n, conf.StatusFile)
	}

	if conf.HoursFile != "" {
		n, err := loadCSV(conf.HoursFile, func(rec []string) error {
			if len(rec) < 4 {
				return fmt.Errorf("want 4 columns, got %d", len(rec))
			}
			day := cast.ToInt(rec[1])
			if day < 0 || day > 6 {
				return fmt.Errorf("day of week %q out of range", rec[1])
			}
			start, err := models.ParseLocalTime(rec[2])
			if err != nil {
				return err
			}
			end, err := models.ParseLocalTime(rec[3])
			if err != nil {
				return err
			}
			data.SetHours(rec[0], day, models.HoursRange{Start: start, End: end})
			return nil
		}, logger)
		if err != nil {
			return fmt.Errorf("load business hours: %w", err)
		}
		logger.Infof(providers.TypeApp, "Seeded %d business-hours rules from %s", n, conf.HoursFile)
	}

	if conf.TimezonesFile != "" {
		n, err := loadCSV(conf.TimezonesFile, func(rec []string) error {
			if len(rec) < 2 {
				return fmt.Errorf("want 2 columns, got %d", len(rec))
			}
			data.SetTimezone(rec[0], rec[1])
			return nil
		}, logger)
		if err != nil {
			return fmt.Errorf("load timezones: %w", err)
		}
		logger.Infof(providers.TypeApp, "Seeded %d timezones from %s", n, conf.TimezonesFile)
	}

	return nil
}

func loadCSV(path string, apply func(rec []string) error, logger providers.Logger) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	loaded, line := 0, 0
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			return loaded, nil
		}
		if err != nil {
			return loaded, err
		}
		line++
		if line == 1 {
			// header row
			continue
		}
		if err := apply(rec); err != nil {
			logger.Warnf(providers.TypeApp, "%s line %d skipped: %s", path, line, err)
			continue
		}
		loaded++
	}
}

func parseSeedTime(s string) (time.Time, error) {
	for _, layout := range seedTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// NewSet picks the Postgres repositories when a database connection exists,
// otherwise the CSV-seeded in-memory ones.
func NewSet(conf *structures.Config, db *sql.DB, logger providers.Logger) (*Set, error) {
	if db != nil {
		return &Set{
			Observations: NewPostgresObservationsRepo(db),
			Hours:        NewPostgresBusinessHoursRepo(db),
			Zones:        NewPostgresTimezonesRepo(db),
		}, nil
	}
	mem := NewMemoryData()
	if err := LoadSeedData(mem, conf.Seed, logger); err != nil {
		return nil, err
	}
	return &Set{Observations: mem, Hours: mem, Zones: mem}, nil
}
