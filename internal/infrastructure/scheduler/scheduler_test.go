package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"vandra-service/internal/domain/entity"
	"vandra-service/pkg/logger"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMonitor struct {
	mu       sync.Mutex
	alertIDs []string
	triggers []string
	result   entity.MonitoringResult
	err      error
}

func (m *fakeMonitor) ProcessAlert(ctx context.Context, alertID string) entity.MonitoringResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alertIDs = append(m.alertIDs, alertID)
	return m.result
}

func (m *fakeMonitor) ProcessAllActiveAlerts(ctx context.Context, trigger string) (entity.BatchSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.triggers = append(m.triggers, trigger)
	return entity.BatchSummary{Processed: 1}, m.err
}

func TestNewMonitorAlertTask(t *testing.T) {
	task, err := NewMonitorAlertTask("alert-42")
	require.NoError(t, err)
	assert.Equal(t, TaskMonitorAlert, task.Type())
	assert.JSONEq(t, `{"alert_id":"alert-42"}`, string(task.Payload()))

	all := NewMonitorAllAlertsTask()
	assert.Equal(t, TaskMonitorAllAlerts, all.Type())
	assert.Empty(t, all.Payload())
}

func TestMonitorAllAlertsHandler(t *testing.T) {
	monitor := &fakeMonitor{}
	handle := newMonitorAllAlertsHandler(monitor, logger.NewNopLogger())

	require.NoError(t, handle(context.Background(), NewMonitorAllAlertsTask()))
	assert.Equal(t, []string{entity.TriggerSchedule}, monitor.triggers)

	monitor.err = errors.New("redis down")
	assert.EqualError(t, handle(context.Background(), NewMonitorAllAlertsTask()), "redis down")
}

func TestMonitorAlertHandler(t *testing.T) {
	monitor := &fakeMonitor{}
	handle := newMonitorAlertHandler(monitor, logger.NewNopLogger())

	task, err := NewMonitorAlertTask("a1")
	require.NoError(t, err)
	require.NoError(t, handle(context.Background(), task))
	assert.Equal(t, []string{"a1"}, monitor.alertIDs)

	monitor.result.Error = "Alert not found or not active"
	assert.NoError(t, handle(context.Background(), task))

	for _, payload := range [][]byte{nil, []byte("nope"), []byte(`{"alert_id":""}`)} {
		err := handle(context.Background(), asynq.NewTask(TaskMonitorAlert, payload))
		assert.ErrorIs(t, err, asynq.SkipRetry, string(payload))
	}
	assert.Len(t, monitor.alertIDs, 2)
}

func TestRunTicker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticks := make(chan struct{}, 8)
	done := make(chan struct{})
	go func() {
		RunTicker(ctx, 5*time.Millisecond, func(context.Context) { ticks <- struct{}{} }, logger.NewNopLogger())
		close(done)
	}()

	for i := 0; i < 2; i++ {
		select {
		case <-ticks:
		case <-time.After(time.Second):
			t.Fatal("ticker did not fire")
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ticker did not stop after cancel")
	}
}
