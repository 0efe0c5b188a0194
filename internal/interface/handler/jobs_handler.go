package handler

import (
	"context"
	"errors"
	"net/http"

	"vandra-service/internal/domain/entity"
	"vandra-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AlertMonitor runs the monitoring pass
type AlertMonitor interface {
	ProcessAlert(ctx context.Context, alertID string) entity.MonitoringResult
	ProcessAllActiveAlerts(ctx context.Context, trigger string) (entity.BatchSummary, error)
	ProcessAlertBatch(ctx context.Context, alertIDs []string) []entity.MonitoringResult
	LatestRun(ctx context.Context) (*entity.MonitorRun, error)
}

// JobsHandler exposes the monitoring job for cron callers
type JobsHandler struct {
	monitor AlertMonitor
	logger  logger.Logger
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(monitor AlertMonitor, logger logger.Logger) *JobsHandler {
	return &JobsHandler{
		monitor: monitor,
		logger:  logger,
	}
}

type monitorRequest struct {
	AlertID  string   `json:"alertId"`
	AlertIDs []string `json:"alertIds"`
}

// MonitorAlerts handles POST /api/jobs/monitor-alerts. A body naming one alert
// or a list of alerts narrows the run; anything else processes every active
// alert.
func (h *JobsHandler) MonitorAlerts(c *gin.Context) {
	var req monitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Ignoring job request body", "error", err)
	}

	switch {
	case req.AlertID != "":
		h.logger.Info("Processing single alert", "alertId", req.AlertID)
		result := h.monitor.ProcessAlert(c.Request.Context(), req.AlertID)
		c.JSON(http.StatusOK, gin.H{
			"success": result.Error == "",
			"result":  result,
		})
	case len(req.AlertIDs) > 0:
		h.logger.Info("Processing alert batch", "count", len(req.AlertIDs))
		results := h.monitor.ProcessAlertBatch(c.Request.Context(), req.AlertIDs)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"results": results,
		})
	default:
		h.runAll(c, "Job failed")
	}
}

// MonitorAllAlerts handles GET /api/jobs/monitor-alerts
func (h *JobsHandler) MonitorAllAlerts(c *gin.Context) {
	h.runAll(c, "Cron job failed")
}

// LatestRun handles GET /api/jobs/monitor-alerts/latest
func (h *JobsHandler) LatestRun(c *gin.Context) {
	run, err := h.monitor.LatestRun(c.Request.Context())
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			respondError(c, http.StatusNotFound, CodeNotFound, "No monitoring runs recorded")
			return
		}
		h.logger.Error("Failed to load latest run", "error", err)
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Something went wrong")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": run})
}

func (h *JobsHandler) runAll(c *gin.Context, failure string) {
	summary, err := h.monitor.ProcessAllActiveAlerts(c.Request.Context(), entity.TriggerAPI)
	if err != nil {
		h.logger.Error("Monitor alerts job failed", "error", err)
		respondError(c, http.StatusInternalServerError, CodeInternalError, failure)
		return
	}

	h.logger.Info("Monitor alerts job complete",
		"processed", summary.Processed,
		"totalDeals", summary.TotalDeals,
		"errors", summary.Errors)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"processed":  summary.Processed,
		"totalDeals": summary.TotalDeals,
		"errors":     summary.Errors,
	})
}
