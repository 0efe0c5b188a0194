package repository

import (
	"context"

	"vandra-service/internal/domain/entity"
)

// AirportRepository defines the interface for airport reference data
type AirportRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Airport, error)
	Exists(ctx context.Context, code string) (bool, error)
	Upsert(ctx context.Context, airports []entity.Airport) error
}
