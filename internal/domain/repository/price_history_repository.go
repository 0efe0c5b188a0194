package repository

import (
	"context"
	"time"

	"vandra-service/internal/domain/entity"
)

// PriceQuery selects observations for one route inside a travel-date window,
// recorded no earlier than RecordedSince.
type PriceQuery struct {
	Origin        string
	Destination   string
	TravelFrom    time.Time
	TravelTo      time.Time
	RecordedSince time.Time
}

// PriceStats is the aggregate over a PriceQuery.
type PriceStats struct {
	Count   int64
	Average float64
}

// PriceHistoryRepository defines the interface for price observations
type PriceHistoryRepository interface {
	// RecordMany inserts observations, silently skipping duplicates.
	// It returns the number of rows actually written.
	RecordMany(ctx context.Context, prices []entity.PriceHistory) (int64, error)
	Stats(ctx context.Context, q PriceQuery) (PriceStats, error)
}
