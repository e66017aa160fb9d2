package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"storemon/internal/models"
	"storemon/internal/structures"
	"strconv"
)

// Sink accepts one report's assembled rows and returns the location handle
// of the serialized output.
type Sink interface {
	Write(reportID string, rows []models.MetricsRow) (string, error)
}

var reportHeader = []string{
	"store_id",
	"uptime_last_hour",
	"downtime_last_hour",
	"uptime_last_day",
	"downtime_last_day",
	"uptime_last_week",
	"downtime_last_week",
}

// CSVWriter serializes report rows to <dir>/<reportID>.csv, written to a
// temp file and renamed so readers never see a partial report.
type CSVWriter struct {
	dir string
}

func NewCSVWriter(conf *structures.Config) Sink {
	return &CSVWriter{dir: conf.Reports.Dir}
}

func (w *CSVWriter) Write(reportID string, rows []models.MetricsRow) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(w.dir, reportID+".csv")
	tmpPath := path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return "", err
	}

	cw := csv.NewWriter(file)
	if err := cw.Write(reportHeader); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return "", err
	}
	for _, row := range rows {
		record := []string{
			row.StoreID,
			formatMetric(row.UptimeLastHour),
			formatMetric(row.DowntimeLastHour),
			formatMetric(row.UptimeLastDay),
			formatMetric(row.DowntimeLastDay),
			formatMetric(row.UptimeLastWeek),
			formatMetric(row.DowntimeLastWeek),
		}
		if err := cw.Write(record); err != nil {
			file.Close()
			os.Remove(tmpPath)
			return "", err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return "", err
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return "", err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("finalize report file: %w", err)
	}
	return path, nil
}

// formatMetric pins the output contract: exactly two decimal places.
func formatMetric(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
