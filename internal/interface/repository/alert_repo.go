package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vandra-service/internal/domain/entity"
	"vandra-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAlertRepository implements the AlertRepository interface
type GormAlertRepository struct {
	db *gorm.DB
}

// NewGormAlertRepository creates a new GORM flight alert repository
func NewGormAlertRepository(db *gorm.DB) repository.AlertRepository {
	return &GormAlertRepository{
		db: db,
	}
}

// FlightAlert GORM model for database mapping
type FlightAlert struct {
	ID              string     `gorm:"column:id;primaryKey;size:36"`
	UserID          string     `gorm:"column:user_id;index;not null"`
	OriginCode      string     `gorm:"column:origin_code;index;size:3;not null"`
	DestinationCode *string    `gorm:"column:destination_code;size:3"`
	DestinationText *string    `gorm:"column:destination_text"`
	MaxPrice        *float64   `gorm:"column:max_price"`
	MinDiscount     *float64   `gorm:"column:min_discount"`
	DepartureAfter  *time.Time `gorm:"column:departure_after"`
	DepartureBefore *time.Time `gorm:"column:departure_before"`
	TimingText      *string    `gorm:"column:timing_text"`
	PriceText       *string    `gorm:"column:price_text"`
	Summary         *string    `gorm:"column:summary"`
	Status          string     `gorm:"column:status;index;default:active"`
	CreatedAt       time.Time  `gorm:"index"`
	UpdatedAt       time.Time

	Origin *Airport `gorm:"foreignKey:OriginCode;references:Code"`
	User   *User    `gorm:"foreignKey:UserID;references:ID"`
}

// TableName overrides the default table name
func (FlightAlert) TableName() string {
	return "flight_alerts"
}

func (a FlightAlert) toEntity() *entity.FlightAlert {
	alert := &entity.FlightAlert{
		ID:              a.ID,
		UserID:          a.UserID,
		OriginCode:      a.OriginCode,
		DestinationCode: deref(a.DestinationCode),
		DestinationText: deref(a.DestinationText),
		MaxPrice:        a.MaxPrice,
		MinDiscount:     a.MinDiscount,
		DepartureAfter:  a.DepartureAfter,
		DepartureBefore: a.DepartureBefore,
		TimingText:      deref(a.TimingText),
		PriceText:       deref(a.PriceText),
		Summary:         deref(a.Summary),
		Status:          a.Status,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
	if a.Origin != nil && a.Origin.Code != "" {
		alert.Origin = a.Origin.toEntity()
	}
	if a.User != nil && a.User.ID != "" {
		alert.User = a.User.toEntity()
	}
	return alert
}

// Create inserts a new alert. Missing id and status are filled in.
func (r *GormAlertRepository) Create(ctx context.Context, alert *entity.FlightAlert) error {
	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}
	if alert.Status == "" {
		alert.Status = entity.AlertStatusActive
	}

	model := FlightAlert{
		ID:              alert.ID,
		UserID:          alert.UserID,
		OriginCode:      alert.OriginCode,
		DestinationCode: nullable(alert.DestinationCode),
		DestinationText: nullable(alert.DestinationText),
		MaxPrice:        alert.MaxPrice,
		MinDiscount:     alert.MinDiscount,
		DepartureAfter:  alert.DepartureAfter,
		DepartureBefore: alert.DepartureBefore,
		TimingText:      nullable(alert.TimingText),
		PriceText:       nullable(alert.PriceText),
		Summary:         nullable(alert.Summary),
		Status:          alert.Status,
		CreatedAt:       alert.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Omit("Origin", "User").Create(&model).Error; err != nil {
		return fmt.Errorf("failed to create flight alert: %w", err)
	}

	alert.CreatedAt = model.CreatedAt
	alert.UpdatedAt = model.UpdatedAt
	return nil
}

// GetByID loads an alert with its origin airport and owner
func (r *GormAlertRepository) GetByID(ctx context.Context, id string) (*entity.FlightAlert, error) {
	var alert FlightAlert
	err := r.db.WithContext(ctx).
		Preload("Origin").
		Preload("User").
		Where("id = ?", id).
		First(&alert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return alert.toEntity(), nil
}

// ListActiveIDs returns the ids of active alerts, oldest first
func (r *GormAlertRepository) ListActiveIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&FlightAlert{}).
		Where("status = ?", entity.AlertStatusActive).
		Order("created_at ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active alerts: %w", err)
	}
	return ids, nil
}

// ListByUser returns a user's alerts, newest first
func (r *GormAlertRepository) ListByUser(ctx context.Context, userID string) ([]*entity.FlightAlert, error) {
	var models []FlightAlert
	err := r.db.WithContext(ctx).
		Preload("Origin").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	alerts := make([]*entity.FlightAlert, 0, len(models))
	for _, m := range models {
		alerts = append(alerts, m.toEntity())
	}
	return alerts, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
