package booking

//go:generate mockgen -source=directory.go -destination=mocks/directory_mock.go -package=mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shareit-rentals/service-booking/pkg/domain"
)

// User is the read-only view of a user the booking domain needs.
type User struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// Item is the read-only view of an item the booking domain needs.
type Item struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	Available   bool
}

// UserDirectory resolves users. Get returns a NotFoundError for unknown ids.
type UserDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Get(ctx context.Context, id uuid.UUID) (*User, error)
}

// ItemDirectory resolves items. Get returns a NotFoundError for unknown ids.
type ItemDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Get(ctx context.Context, id uuid.UUID) (*Item, error)
}

// EnsureUserExists returns a NotFoundError when the user is unknown.
func EnsureUserExists(ctx context.Context, users UserDirectory, id uuid.UUID) error {
	ok, err := users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewNotFoundError("User", id.String())
	}
	return nil
}

// EnsureItemExists returns a NotFoundError when the item is unknown.
func EnsureItemExists(ctx context.Context, items ItemDirectory, id uuid.UUID) error {
	ok, err := items.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewNotFoundError("Item", id.String())
	}
	return nil
}
