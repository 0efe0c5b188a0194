package repository

import (
	"context"
	"fmt"
	"time"

	"vandra-service/internal/domain/entity"
	"vandra-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const priceHistoryBatchSize = 100

// GormPriceHistoryRepository implements the PriceHistoryRepository interface
type GormPriceHistoryRepository struct {
	db *gorm.DB
}

// NewGormPriceHistoryRepository creates a new GORM price history repository
func NewGormPriceHistoryRepository(db *gorm.DB) repository.PriceHistoryRepository {
	return &GormPriceHistoryRepository{
		db: db,
	}
}

// PriceHistory GORM model for database mapping.
// The composite unique index makes re-recording the same observation a no-op.
type PriceHistory struct {
	ID          string    `gorm:"column:id;primaryKey;size:36"`
	Origin      string    `gorm:"column:origin;size:3;not null;uniqueIndex:idx_price_observation,priority:1;index:idx_price_route,priority:1"`
	Destination string    `gorm:"column:destination;size:3;not null;uniqueIndex:idx_price_observation,priority:2;index:idx_price_route,priority:2"`
	TravelDate  time.Time `gorm:"column:travel_date;not null;uniqueIndex:idx_price_observation,priority:3;index:idx_price_route,priority:3"`
	Airline     string    `gorm:"column:airline;uniqueIndex:idx_price_observation,priority:4"`
	Price       float64   `gorm:"column:price;not null;uniqueIndex:idx_price_observation,priority:5"`
	RecordedAt  time.Time `gorm:"column:recorded_at;not null;uniqueIndex:idx_price_observation,priority:6"`
}

// TableName overrides the default table name
func (PriceHistory) TableName() string {
	return "price_history"
}

// RecordMany batch-inserts observations, skipping duplicates
func (r *GormPriceHistoryRepository) RecordMany(ctx context.Context, prices []entity.PriceHistory) (int64, error) {
	if len(prices) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	models := make([]PriceHistory, 0, len(prices))
	for _, p := range prices {
		recordedAt := p.RecordedAt
		if recordedAt.IsZero() {
			recordedAt = now
		}
		id := p.ID
		if id == "" {
			id = uuid.NewString()
		}
		models = append(models, PriceHistory{
			ID:          id,
			Origin:      p.Origin,
			Destination: p.Destination,
			TravelDate:  p.TravelDate.UTC(),
			Airline:     p.Airline,
			Price:       p.Price,
			RecordedAt:  recordedAt.UTC(),
		})
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&models, priceHistoryBatchSize)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to record prices: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Stats counts and averages observations matching the query
func (r *GormPriceHistoryRepository) Stats(ctx context.Context, q repository.PriceQuery) (repository.PriceStats, error) {
	var row struct {
		Count   int64
		Average float64
	}

	err := r.db.WithContext(ctx).
		Model(&PriceHistory{}).
		Select("COUNT(*) AS count, COALESCE(AVG(price), 0) AS average").
		Where("origin = ? AND destination = ?", q.Origin, q.Destination).
		Where("travel_date >= ? AND travel_date <= ?", q.TravelFrom.UTC(), q.TravelTo.UTC()).
		Where("recorded_at >= ?", q.RecordedSince.UTC()).
		Scan(&row).Error
	if err != nil {
		return repository.PriceStats{}, fmt.Errorf("failed to aggregate prices: %w", err)
	}

	return repository.PriceStats{Count: row.Count, Average: row.Average}, nil
}
