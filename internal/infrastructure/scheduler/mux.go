package scheduler

import (
	"context"
	"encoding/json"
	"fmt"

	"vandra-service/internal/domain/entity"
	"vandra-service/pkg/logger"

	"github.com/hibiken/asynq"
)

// Monitor is the part of the alert monitor the background jobs drive
type Monitor interface {
	ProcessAlert(ctx context.Context, alertID string) entity.MonitoringResult
	ProcessAllActiveAlerts(ctx context.Context, trigger string) (entity.BatchSummary, error)
}

func NewMux(monitor Monitor, log logger.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskMonitorAllAlerts, newMonitorAllAlertsHandler(monitor, log))
	mux.HandleFunc(TaskMonitorAlert, newMonitorAlertHandler(monitor, log))
	return mux
}

func newMonitorAllAlertsHandler(monitor Monitor, log logger.Logger) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		summary, err := monitor.ProcessAllActiveAlerts(ctx, entity.TriggerSchedule)
		if err != nil {
			log.Error("Scheduled monitoring failed", "error", err)
			return err
		}
		log.Info("Scheduled monitoring complete",
			"processed", summary.Processed,
			"totalDeals", summary.TotalDeals,
			"errors", summary.Errors)
		return nil
	}
}

// A single alert failing is recorded on its result and never retried.
func newMonitorAlertHandler(monitor Monitor, log logger.Logger) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		var p MonitorAlertPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil || p.AlertID == "" {
			return fmt.Errorf("invalid %s payload %q: %w", TaskMonitorAlert, t.Payload(), asynq.SkipRetry)
		}

		result := monitor.ProcessAlert(ctx, p.AlertID)
		if result.Error != "" {
			log.Warn("Alert task finished with error", "alertId", p.AlertID, "error", result.Error)
			return nil
		}
		log.Info("Alert task complete", "alertId", p.AlertID, "goodDeals", len(result.GoodDeals))
		return nil
	}
}
