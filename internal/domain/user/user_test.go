package user_test

import (
	"testing"
	"time"

	"github.com/shareit-rentals/service-booking/internal/domain/user"
	"github.com/shareit-rentals/service-booking/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func TestNewUser(t *testing.T) {
	u, err := user.NewUser(" Alice ", "alice@example.com", now)
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name())
	assert.Equal(t, int64(1), u.Version())

	tests := []struct {
		name, userName, email string
	}{
		{"blank name", " ", "a@b.c"},
		{"missing email", "Bob", ""},
		{"no at sign", "Bob", "bob.example.com"},
		{"trailing at", "Bob", "bob@"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := user.NewUser(tt.userName, tt.email, now)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestUpdate(t *testing.T) {
	u, err := user.NewUser("Alice", "alice@example.com", now)
	require.NoError(t, err)

	later := now.Add(time.Hour)
	require.NoError(t, u.Update(nil, strPtr("alice@shareit.io"), later))
	assert.Equal(t, "Alice", u.Name())
	assert.Equal(t, "alice@shareit.io", u.Email())
	assert.Equal(t, int64(2), u.Version())
	assert.Equal(t, later, u.UpdatedAt())

	err = u.Update(strPtr(""), nil, later)
	assert.True(t, domain.IsValidation(err))
}
