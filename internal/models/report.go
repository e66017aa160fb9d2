package models

import "time"

type ReportState string

const (
	ReportRunning  ReportState = "Running"
	ReportComplete ReportState = "Complete"
	ReportFailed   ReportState = "Failed"
)

// ReportJob is one asynchronous report run addressable by its opaque id.
// A job leaves Running exactly once, into Complete or Failed, and the
// terminal state is never revisited.
type ReportJob struct {
	ID          string      `json:"id"`
	Status      ReportState `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	OutputPath  string      `json:"output_path,omitempty"`
	Error       string      `json:"error,omitempty"`
}

func (j ReportJob) Terminal() bool {
	return j.Status == ReportComplete || j.Status == ReportFailed
}

// MetricsRow is one store's line in the report table. The hour window is
// reported in minutes, the day and week windows in hours, all rounded to
// two decimals. Err marks a degraded row (all metrics zero) and never
// reaches the CSV output.
type MetricsRow struct {
	StoreID          string  `json:"store_id"`
	UptimeLastHour   float64 `json:"uptime_last_hour"`
	DowntimeLastHour float64 `json:"downtime_last_hour"`
	UptimeLastDay    float64 `json:"uptime_last_day"`
	DowntimeLastDay  float64 `json:"downtime_last_day"`
	UptimeLastWeek   float64 `json:"uptime_last_week"`
	DowntimeLastWeek float64 `json:"downtime_last_week"`
	Err              string  `json:"-"`
}
