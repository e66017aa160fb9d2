package controllers

import (
	"net/http"
	"os"
	"storemon/internal/models"
	"storemon/internal/providers"
	"storemon/internal/services"

	json "github.com/goccy/go-json"
)

type ReportController struct {
	logger  providers.Logger
	service services.ReportServiceInterface
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
}

func NewReportController(logger providers.Logger, service services.ReportServiceInterface, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) *ReportController {
	return &ReportController{
		logger:  logger,
		service: service,
		cache:   cache,
		metrics: metrics,
	}
}

type triggerResponse struct {
	ReportID string `json:"report_id"`
}

type statusResponse struct {
	ReportID string `json:"report_id"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// TriggerReport starts a report run and returns its id without waiting for
// generation.
func (rc *ReportController) TriggerReport(w http.ResponseWriter, r *http.Request) {
	id := rc.service.TriggerReport()
	rc.logger.Infof(providers.GetLogTypeByRequestType(r.Method), "Triggered report %s", id)
	writeJSON(w, http.StatusOK, triggerResponse{ReportID: id})
}

// GetReport polls a report's state. Unknown ids are 404 (distinct from
// Failed); Complete responses carry the CSV itself.
func (rc *ReportController) GetReport(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("report_id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "report_id is required"})
		return
	}

	job, ok := rc.service.GetReport(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "report not found"})
		return
	}

	switch job.Status {
	case models.ReportComplete:
		rc.serveReportFile(w, job)
	case models.ReportFailed:
		writeJSON(w, http.StatusOK, statusResponse{ReportID: job.ID, Status: string(job.Status), Error: job.Error})
	default:
		writeJSON(w, http.StatusOK, statusResponse{ReportID: job.ID, Status: string(job.Status)})
	}
}

// serveReportFile streams the completed CSV. Completed files are immutable,
// so the bytes are served through the cache.
func (rc *ReportController) serveReportFile(w http.ResponseWriter, job models.ReportJob) {
	cacheKey := "report:" + job.ID
	data, ok := rc.cache.Get(cacheKey)
	if ok {
		rc.metrics.IncCacheHits()
	} else {
		rc.metrics.IncCacheMisses()
		var err error
		data, err = os.ReadFile(job.OutputPath)
		if err != nil {
			rc.logger.Errorf(providers.TypeGet, "Report %s file missing: %s", job.ID, err)
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "report file not found"})
			return
		}
		rc.cache.Set(cacheKey, data)
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="report_`+job.ID+`.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
