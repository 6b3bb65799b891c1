package repositories

import (
	"context"

	"github.com/farmersguild/backend/internal/domain/entities"
)

// UserRepository defines the interface for user lookups.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}
