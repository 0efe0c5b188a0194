package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TaskMonitorAllAlerts = "monitor:all_alerts"
	TaskMonitorAlert     = "monitor:alert"
)

type MonitorAlertPayload struct {
	AlertID string `json:"alert_id"`
}

// NewMonitorAllAlertsTask builds the task that runs one full monitoring pass.
func NewMonitorAllAlertsTask() *asynq.Task {
	return asynq.NewTask(TaskMonitorAllAlerts, nil)
}

// NewMonitorAlertTask builds the task that processes a single alert.
func NewMonitorAlertTask(alertID string) (*asynq.Task, error) {
	payload, err := json.Marshal(MonitorAlertPayload{AlertID: alertID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMonitorAlert, payload), nil
}
