package scheduler

import (
	"context"
	"fmt"
	"time"

	"vandra-service/pkg/logger"

	"github.com/hibiken/asynq"
)

// Config holds the background job settings
type Config struct {
	RedisAddr string
	// Cron is a five-field expression evaluated in UTC, e.g. "0 */6 * * *".
	Cron        string
	Concurrency int
	// Timeout bounds one monitoring pass.
	Timeout time.Duration
}

// Start registers the periodic monitoring task and starts the worker.
// The returned func stops both.
func Start(cfg Config, monitor Monitor, log logger.Logger) (func(), error) {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.RedisAddr}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
	})

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{Location: time.UTC})
	opts := []asynq.Option{asynq.MaxRetry(0)}
	if cfg.Timeout > 0 {
		opts = append(opts, asynq.Timeout(cfg.Timeout))
	}
	entryID, err := scheduler.Register(cfg.Cron, NewMonitorAllAlertsTask(), opts...)
	if err != nil {
		return nil, fmt.Errorf("register monitor schedule %q: %w", cfg.Cron, err)
	}

	if err := srv.Start(NewMux(monitor, log)); err != nil {
		return nil, fmt.Errorf("start task server: %w", err)
	}
	if err := scheduler.Start(); err != nil {
		srv.Shutdown()
		return nil, fmt.Errorf("start scheduler: %w", err)
	}
	log.Info("Monitor schedule registered", "cron", cfg.Cron, "entryId", entryID)

	return func() {
		scheduler.Shutdown()
		srv.Shutdown()
	}, nil
}

// RunTicker calls fn every interval until ctx is cancelled. It is the
// fallback when no Redis is configured.
func RunTicker(ctx context.Context, interval time.Duration, fn func(context.Context), log logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Monitor ticker stopped")
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}
