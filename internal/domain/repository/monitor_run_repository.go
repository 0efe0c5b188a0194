package repository

import (
	"context"

	"vandra-service/internal/domain/entity"
)

// MonitorRunRepository defines the interface for the monitoring audit log
type MonitorRunRepository interface {
	Start(ctx context.Context, run *entity.MonitorRun) error
	Finish(ctx context.Context, run *entity.MonitorRun) error
	Latest(ctx context.Context) (*entity.MonitorRun, error)
}
