package repository

import (
	"context"

	"vandra-service/internal/domain/entity"
)

// NotificationRepository defines the interface for the notification log
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.FlightNotification) error
	ListByAlert(ctx context.Context, alertID string) ([]*entity.FlightNotification, error)
}
