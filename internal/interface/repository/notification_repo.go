package repository

import (
	"context"
	"fmt"
	"time"

	"vandra-service/internal/domain/entity"
	"vandra-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormNotificationRepository implements the NotificationRepository interface
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM notification repository
func NewGormNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &GormNotificationRepository{
		db: db,
	}
}

// FlightNotification GORM model for database mapping
type FlightNotification struct {
	ID         string                                    `gorm:"column:id;primaryKey;size:36"`
	AlertID    string                                    `gorm:"column:alert_id;index;not null"`
	FlightData datatypes.JSONType[entity.FlightSnapshot] `gorm:"column:flight_data"`
	Channel    string                                    `gorm:"column:channel;size:16"`
	Status     string                                    `gorm:"column:status;size:16"`
	Error      string                                    `gorm:"column:error"`
	CreatedAt  time.Time
}

// TableName overrides the default table name
func (FlightNotification) TableName() string {
	return "flight_notifications"
}

// Create appends a notification row
func (r *GormNotificationRepository) Create(ctx context.Context, n *entity.FlightNotification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	model := FlightNotification{
		ID:         n.ID,
		AlertID:    n.AlertID,
		FlightData: datatypes.NewJSONType(n.Flight),
		Channel:    n.Channel,
		Status:     n.Status,
		Error:      n.Error,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}

	n.CreatedAt = model.CreatedAt
	return nil
}

// ListByAlert returns an alert's notifications in creation order
func (r *GormNotificationRepository) ListByAlert(ctx context.Context, alertID string) ([]*entity.FlightNotification, error) {
	var models []FlightNotification
	if err := r.db.WithContext(ctx).Where("alert_id = ?", alertID).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]*entity.FlightNotification, 0, len(models))
	for _, m := range models {
		out = append(out, &entity.FlightNotification{
			ID:        m.ID,
			AlertID:   m.AlertID,
			Flight:    m.FlightData.Data(),
			Channel:   m.Channel,
			Status:    m.Status,
			Error:     m.Error,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}
