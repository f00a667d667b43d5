package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	bookingDomain "github.com/shareit-rentals/service-booking/internal/domain/booking"
	userDomain "github.com/shareit-rentals/service-booking/internal/domain/user"
	"go.uber.org/zap"
)

// CreateUserRequest is the request DTO for registering a user.
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// UpdateUserRequest is the request DTO for a partial profile update.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// UserDTO is the API response representation of a user.
type UserDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// cacheInvalidator drops cached lookups after a profile change.
type cacheInvalidator interface {
	Invalidate(id uuid.UUID)
}

// UserService implements use cases for user management.
type UserService struct {
	repo   userDomain.UserRepository
	cache  cacheInvalidator
	clock  bookingDomain.Clock
	logger *zap.Logger
}

// NewUserService creates a new UserService. cache may be nil.
func NewUserService(repo userDomain.UserRepository, cache cacheInvalidator, clock bookingDomain.Clock, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, cache: cache, clock: clock, logger: logger}
}

// CreateUser registers a user with a unique e-mail.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserDTO, error) {
	u, err := userDomain.NewUser(req.Name, req.Email, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.String("user_id", u.ID().String()))
	result := toUserDTO(u)
	return &result, nil
}

// UpdateUser applies a partial update to a user profile.
func (s *UserService) UpdateUser(ctx context.Context, userID uuid.UUID, req UpdateUserRequest) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := u.Update(req.Name, req.Email, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(userID)
	}

	s.logger.Info("user updated", zap.String("user_id", userID.String()))
	result := toUserDTO(u)
	return &result, nil
}

// GetUser returns a single user.
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := toUserDTO(u)
	return &result, nil
}

// ListUsers returns all users in registration order.
func (s *UserService) ListUsers(ctx context.Context) ([]UserDTO, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	result := make([]UserDTO, len(users))
	for i, u := range users {
		result[i] = toUserDTO(u)
	}
	return result, nil
}

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{ID: u.ID(), Name: u.Name(), Email: u.Email()}
}
