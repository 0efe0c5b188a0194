package repository

import (
	"context"

	"vandra-service/internal/domain/entity"
)

// UserRepository defines the interface for user accounts
type UserRepository interface {
	// Create returns entity.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
