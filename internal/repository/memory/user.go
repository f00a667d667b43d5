package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	userDomain "github.com/shareit-rentals/service-booking/internal/domain/user"
	"github.com/shareit-rentals/service-booking/pkg/domain"
)

// UserRepository keeps users in process memory and enforces e-mail
// uniqueness the way the users table does.
type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*userDomain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]*userDomain.User)}
}

func (r *UserRepository) FindByID(_ context.Context, id uuid.UUID) (*userDomain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("User", id.String())
	}
	return copyUser(u), nil
}

func (r *UserRepository) FindAll(_ context.Context) ([]*userDomain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*userDomain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, copyUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().Before(out[j].CreatedAt()) })
	return out, nil
}

func (r *UserRepository) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[id]
	return ok, nil
}

func (r *UserRepository) Save(_ context.Context, u *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkEmail(u); err != nil {
		return err
	}
	r.users[u.ID()] = copyUser(u)
	return nil
}

func (r *UserRepository) Update(_ context.Context, u *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[u.ID()]
	if !ok || stored.Version() != u.Version()-1 {
		return domain.NewConflictError("user was modified by another transaction")
	}
	if err := r.checkEmail(u); err != nil {
		return err
	}
	r.users[u.ID()] = copyUser(u)
	return nil
}

func (r *UserRepository) checkEmail(u *userDomain.User) error {
	for id, other := range r.users {
		if id != u.ID() && strings.EqualFold(other.Email(), u.Email()) {
			return domain.NewConflictError("User with email " + u.Email() + " already exists")
		}
	}
	return nil
}

func copyUser(u *userDomain.User) *userDomain.User {
	return userDomain.Reconstruct(u.ID(), u.Name(), u.Email(), u.Version(), u.CreatedAt(), u.UpdatedAt())
}
