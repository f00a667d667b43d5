package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shareit-rentals/service-booking/pkg/domain"
)

// User is the aggregate root for a registered sharer.
type User struct {
	id        uuid.UUID
	name      string
	email     string
	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a user with a required name and e-mail.
func NewUser(name, email string, now time.Time) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	return &User{
		id:        uuid.New(),
		name:      name,
		email:     email,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id uuid.UUID, name, email string, version int64, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) Version() int64       { return u.version }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Update applies a partial update; nil fields are left unchanged.
func (u *User) Update(name, email *string, now time.Time) error {
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return domain.NewValidationError("name must not be blank")
		}
		u.name = n
	}
	if email != nil {
		e := strings.TrimSpace(*email)
		if err := validateEmail(e); err != nil {
			return err
		}
		u.email = e
	}
	u.version++
	u.updatedAt = now
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return domain.NewValidationError("email is required")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.Count(email, "@") != 1 {
		return domain.NewValidationError("email is not valid")
	}
	return nil
}
