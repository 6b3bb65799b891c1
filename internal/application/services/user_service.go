package services

import (
	"context"
	"strings"

	"github.com/farmersguild/backend/internal/domain/entities"
	"github.com/farmersguild/backend/internal/domain/repositories"
	apperrors "github.com/farmersguild/backend/pkg/errors"
)

// UserService handles user records. Authentication is out of scope; users
// exist to own crops.
type UserService struct {
	users repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

// Create validates and stores a user
func (s *UserService) Create(ctx context.Context, user *entities.User) error {
	if user.Email == "" || !strings.Contains(user.Email, "@") {
		return apperrors.NewValidationError("a valid email is required")
	}
	if user.Name == "" {
		return apperrors.NewValidationError("name is required")
	}
	return s.users.Create(ctx, user)
}

// GetByID retrieves a user by id
func (s *UserService) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return s.users.GetByID(ctx, id)
}
