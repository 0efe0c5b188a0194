package usecase

import (
	"context"
	"errors"
	"time"

	"vandra-service/internal/domain/entity"
	"vandra-service/internal/domain/repository"
	"vandra-service/pkg/logger"
	"vandra-service/pkg/metrics"

	"github.com/google/uuid"
)

const errAlertInactive = "Alert not found or not active"

// Notifier delivers good deals for an alert
type Notifier interface {
	NotifyDeals(ctx context.Context, alert *entity.FlightAlert, deals []entity.DealResult) error
}

// MonitorConfig holds the pacing policy between alerts
type MonitorConfig struct {
	AlertDelay      time.Duration
	BatchAlertDelay time.Duration
}

// AlertMonitor searches flights for alerts and surfaces deals
type AlertMonitor struct {
	alertRepo        repository.AlertRepository
	notificationRepo repository.NotificationRepository
	runRepo          repository.MonitorRunRepository
	search           *FlightSearch
	detector         *DealDetector
	notifier         Notifier
	metrics          *metrics.Metrics
	logger           logger.Logger
	cfg              MonitorConfig

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewAlertMonitor creates a new alert monitor. runRepo and notifier may be nil.
func NewAlertMonitor(
	alertRepo repository.AlertRepository,
	notificationRepo repository.NotificationRepository,
	runRepo repository.MonitorRunRepository,
	search *FlightSearch,
	detector *DealDetector,
	notifier Notifier,
	metrics *metrics.Metrics,
	logger logger.Logger,
	cfg MonitorConfig,
) *AlertMonitor {
	return &AlertMonitor{
		alertRepo:        alertRepo,
		notificationRepo: notificationRepo,
		runRepo:          runRepo,
		search:           search,
		detector:         detector,
		notifier:         notifier,
		metrics:          metrics,
		logger:           logger,
		cfg:              cfg,
		now:              time.Now,
		sleep:            sleepContext,
	}
}

// ProcessAlert searches every destination and date for one alert and rates
// what it finds. Failures are reported in the result, never returned.
func (m *AlertMonitor) ProcessAlert(ctx context.Context, alertID string) entity.MonitoringResult {
	started := m.now()
	result := entity.MonitoringResult{
		AlertID:   alertID,
		GoodDeals: []entity.DealResult{},
	}

	alert, err := m.alertRepo.GetByID(ctx, alertID)
	if err != nil || !alert.IsActive() {
		if err != nil && !errors.Is(err, entity.ErrNotFound) {
			m.logger.Error("Failed to load alert", "alertId", alertID, "error", err)
			m.metrics.Error("load_alert")
			result.Error = err.Error()
			return result
		}
		result.Error = errAlertInactive
		return result
	}

	destinations := DestinationsForAlert(alert)
	result.SearchedRoutes = len(destinations)

	var maxPrice *float64
	if alert.HasMaxPrice() {
		maxPrice = alert.MaxPrice
	}

	var flights []entity.Flight
	for _, date := range SearchDates(alert, m.now()) {
		flights = append(flights, m.search.SearchMultipleDestinations(ctx, alert.OriginCode, destinations, date, maxPrice)...)
	}
	result.FlightsFound = len(flights)

	if len(flights) == 0 {
		m.metrics.ObserveAlert(m.now().Sub(started), 0)
		return result
	}

	if err := m.detector.RecordPrices(ctx, flights); err != nil {
		m.logger.Warn("Failed to record prices", "alertId", alertID, "error", err)
		m.metrics.Error("record_prices")
	}

	deals, err := m.detector.DetectDeals(ctx, flights, alert)
	if err != nil {
		m.logger.Error("Failed to detect deals", "alertId", alertID, "error", err)
		m.metrics.Error("detect_deals")
		result.Error = err.Error()
		return result
	}
	result.DealsFound = len(deals)
	result.GoodDeals = FilterGoodDeals(deals)

	m.logger.Info("Alert processed",
		"alertId", alertID,
		"flights", len(flights),
		"deals", len(deals),
		"goodDeals", len(result.GoodDeals))

	if m.notifier != nil && len(result.GoodDeals) > 0 {
		if err := m.notifier.NotifyDeals(ctx, alert, result.GoodDeals); err != nil {
			m.logger.Warn("Deal notification incomplete", "alertId", alertID, "error", err)
		}
	}

	m.metrics.ObserveAlert(m.now().Sub(started), len(result.GoodDeals))
	return result
}

// ProcessAllActiveAlerts processes every active alert, oldest first, pausing
// between alerts. A cancelled context stops the loop between alerts.
func (m *AlertMonitor) ProcessAllActiveAlerts(ctx context.Context, trigger string) (entity.BatchSummary, error) {
	var summary entity.BatchSummary

	ids, err := m.alertRepo.ListActiveIDs(ctx)
	if err != nil {
		m.metrics.Error("list_alerts")
		return summary, err
	}

	run := m.startRun(ctx, trigger)
	m.logger.Info("Processing active alerts", "count", len(ids), "trigger", trigger)

	for i, id := range ids {
		if i > 0 {
			if err := m.sleep(ctx, m.cfg.AlertDelay); err != nil {
				m.logger.Warn("Alert processing interrupted", "processed", summary.Processed, "error", err)
				break
			}
		}

		result := m.ProcessAlert(ctx, id)
		summary.Processed++
		if result.Error != "" {
			summary.Errors++
		} else {
			summary.TotalDeals += len(result.GoodDeals)
		}
		if run != nil {
			run.Results = append(run.Results, result)
		}
	}

	m.finishRun(ctx, run, summary, ctx.Err())

	m.logger.Info("Active alerts processed",
		"processed", summary.Processed,
		"totalDeals", summary.TotalDeals,
		"errors", summary.Errors)
	return summary, nil
}

// ProcessAlertBatch processes the given alerts in order and returns each result.
func (m *AlertMonitor) ProcessAlertBatch(ctx context.Context, alertIDs []string) []entity.MonitoringResult {
	results := make([]entity.MonitoringResult, 0, len(alertIDs))
	run := m.startRun(ctx, entity.TriggerBatch)

	var summary entity.BatchSummary
	for i, id := range alertIDs {
		if i > 0 {
			if err := m.sleep(ctx, m.cfg.BatchAlertDelay); err != nil {
				break
			}
		}

		result := m.ProcessAlert(ctx, id)
		results = append(results, result)

		summary.Processed++
		if result.Error != "" {
			summary.Errors++
		} else {
			summary.TotalDeals += len(result.GoodDeals)
		}
	}

	if run != nil {
		run.Results = results
	}
	m.finishRun(ctx, run, summary, ctx.Err())
	return results
}

// RecordDealNotification logs that a deal was sent to the alert owner.
func (m *AlertMonitor) RecordDealNotification(ctx context.Context, alertID string, deal entity.DealResult, channel string) error {
	return m.notificationRepo.Create(ctx, &entity.FlightNotification{
		AlertID: alertID,
		Flight:  entity.NewFlightSnapshot(deal),
		Channel: channel,
		Status:  entity.NotificationSent,
	})
}

// LatestRun returns the most recent monitoring run, if a run log is configured.
func (m *AlertMonitor) LatestRun(ctx context.Context) (*entity.MonitorRun, error) {
	if m.runRepo == nil {
		return nil, entity.ErrNotFound
	}
	return m.runRepo.Latest(ctx)
}

func (m *AlertMonitor) startRun(ctx context.Context, trigger string) *entity.MonitorRun {
	if m.runRepo == nil {
		return nil
	}

	run := &entity.MonitorRun{
		RunID:     uuid.NewString(),
		Trigger:   trigger,
		Status:    entity.StatusProcessing,
		StartedAt: m.now().UTC(),
	}
	if err := m.runRepo.Start(ctx, run); err != nil {
		m.logger.Warn("Failed to start monitor run log", "error", err)
		return nil
	}
	return run
}

func (m *AlertMonitor) finishRun(ctx context.Context, run *entity.MonitorRun, summary entity.BatchSummary, runErr error) {
	if run == nil {
		return
	}

	run.FinishedAt = m.now().UTC()
	run.Processed = summary.Processed
	run.TotalDeals = summary.TotalDeals
	run.Errors = summary.Errors
	run.Status = entity.StatusCompleted
	if runErr != nil {
		run.Status = entity.StatusFailed
		run.ErrorText = runErr.Error()
	}

	// The run context may already be cancelled; the log write should still land.
	if err := m.runRepo.Finish(context.WithoutCancel(ctx), run); err != nil {
		m.logger.Warn("Failed to finish monitor run log", "runId", run.RunID, "error", err)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
