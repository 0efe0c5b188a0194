package repository

import (
	"context"

	"vandra-service/internal/domain/entity"
)

// AlertRepository defines the interface for flight alert storage
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.FlightAlert) error
	// GetByID loads the alert with its origin airport and owner.
	// Returns entity.ErrNotFound when no alert matches.
	GetByID(ctx context.Context, id string) (*entity.FlightAlert, error)
	// ListActiveIDs returns active alert ids, oldest first.
	ListActiveIDs(ctx context.Context) ([]string, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.FlightAlert, error)
}
