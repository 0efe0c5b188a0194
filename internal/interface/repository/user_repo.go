package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"vandra-service/internal/domain/entity"
	"vandra-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository implements the UserRepository interface
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository
func NewGormUserRepository(db *gorm.DB) repository.UserRepository {
	return &GormUserRepository{
		db: db,
	}
}

// User GORM model for database mapping
type User struct {
	ID            string `gorm:"column:id;primaryKey;size:36"`
	Name          string `gorm:"column:name"`
	Email         string `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash  string `gorm:"column:password_hash"`
	Phone         string `gorm:"column:phone"`
	PhoneVerified bool   `gorm:"column:phone_verified;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides the default table name
func (User) TableName() string {
	return "users"
}

func (u User) toEntity() *entity.User {
	return &entity.User{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		Phone:         u.Phone,
		PhoneVerified: u.PhoneVerified,
		CreatedAt:     u.CreatedAt,
	}
}

// Create inserts a new user; emails are stored lower-cased
func (r *GormUserRepository) Create(ctx context.Context, user *entity.User) error {
	email := strings.ToLower(strings.TrimSpace(user.Email))

	var count int64
	if err := r.db.WithContext(ctx).Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return entity.ErrUserExists
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	model := User{
		ID:            user.ID,
		Name:          user.Name,
		Email:         email,
		PasswordHash:  user.PasswordHash,
		Phone:         user.Phone,
		PhoneVerified: user.PhoneVerified,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entity.ErrUserExists
		}
		return err
	}

	user.Email = model.Email
	user.CreatedAt = model.CreatedAt
	return nil
}

// GetByEmail finds a user by email address
func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

// GetByID finds a user by id
func (r *GormUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *GormUserRepository) first(ctx context.Context, query string, arg interface{}) (*entity.User, error) {
	var user User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return user.toEntity(), nil
}
