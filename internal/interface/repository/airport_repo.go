package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vandra-service/internal/domain/entity"
	"vandra-service/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAirportRepository implements the AirportRepository interface
type GormAirportRepository struct {
	db *gorm.DB
}

// NewGormAirportRepository creates a new GORM airport repository
func NewGormAirportRepository(db *gorm.DB) repository.AirportRepository {
	return &GormAirportRepository{
		db: db,
	}
}

// Airport GORM model for database mapping
type Airport struct {
	Code      string  `gorm:"column:code;primaryKey;size:3"`
	Name      string  `gorm:"column:name"`
	City      string  `gorm:"column:city"`
	Country   string  `gorm:"column:country"`
	Latitude  float64 `gorm:"column:latitude"`
	Longitude float64 `gorm:"column:longitude"`
	Timezone  string  `gorm:"column:timezone"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Airport) TableName() string {
	return "airports"
}

func (a Airport) toEntity() *entity.Airport {
	return &entity.Airport{
		Code:      a.Code,
		Name:      a.Name,
		City:      a.City,
		Country:   a.Country,
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
		Timezone:  a.Timezone,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// GetByCode finds an airport by IATA code
func (r *GormAirportRepository) GetByCode(ctx context.Context, code string) (*entity.Airport, error) {
	var airport Airport
	result := r.db.WithContext(ctx).Where("code = ?", code).First(&airport)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, result.Error
	}

	return airport.toEntity(), nil
}

// Exists reports whether the airport code is known
func (r *GormAirportRepository) Exists(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Airport{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Upsert inserts airports or refreshes existing rows by code
func (r *GormAirportRepository) Upsert(ctx context.Context, airports []entity.Airport) error {
	if len(airports) == 0 {
		return nil
	}

	models := make([]Airport, 0, len(airports))
	for _, a := range airports {
		models = append(models, Airport{
			Code:      a.Code,
			Name:      a.Name,
			City:      a.City,
			Country:   a.Country,
			Latitude:  a.Latitude,
			Longitude: a.Longitude,
			Timezone:  a.Timezone,
		})
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "city", "country", "latitude", "longitude", "timezone", "updated_at"}),
	}).Create(&models).Error
	if err != nil {
		return fmt.Errorf("failed to upsert airports: %w", err)
	}
	return nil
}
