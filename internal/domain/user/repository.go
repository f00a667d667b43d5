package user

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for users. Save and Update
// return a ConflictError when the e-mail is already taken.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindAll(ctx context.Context) ([]*User, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Save(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
}
