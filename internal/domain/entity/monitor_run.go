package entity

import (
	"time"
)

// Monitor run status
const (
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
)

// Monitor run triggers
const (
	TriggerSchedule = "schedule"
	TriggerAPI      = "api"
	TriggerBatch    = "batch"
)

// MonitorRun is the audit document for one pass over the alerts.
type MonitorRun struct {
	RunID      string             `bson:"runId" json:"runId"`
	Trigger    string             `bson:"trigger" json:"trigger"`
	Status     string             `bson:"status" json:"status"`
	StartedAt  time.Time          `bson:"startedAt" json:"startedAt"`
	FinishedAt time.Time          `bson:"finishedAt,omitempty" json:"finishedAt,omitempty"`
	Processed  int                `bson:"processed" json:"processed"`
	TotalDeals int                `bson:"totalDeals" json:"totalDeals"`
	Errors     int                `bson:"errors" json:"errors"`
	Results    []MonitoringResult `bson:"results" json:"results"`
	ErrorText  string             `bson:"errorDetail,omitempty" json:"errorDetail,omitempty"`
}
