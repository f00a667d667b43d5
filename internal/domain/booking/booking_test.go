package booking_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shareit-rentals/service-booking/internal/domain/booking"
	"github.com/shareit-rentals/service-booking/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newWaiting(t *testing.T) *booking.Booking {
	t.Helper()
	b, err := booking.NewBooking(uuid.New(), uuid.New(), uuid.New(),
		baseTime.Add(time.Hour), baseTime.Add(2*time.Hour), baseTime)
	require.NoError(t, err)
	return b
}

func TestNewBooking(t *testing.T) {
	t.Run("starts waiting", func(t *testing.T) {
		b := newWaiting(t)
		assert.Equal(t, booking.StatusWaiting, b.Status())
		assert.Equal(t, int64(1), b.Version())
		assert.NotEqual(t, uuid.Nil, b.ID())
		assert.Equal(t, baseTime, b.CreatedAt())
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := booking.NewBooking(uuid.New(), uuid.New(), uuid.New(),
			baseTime.Add(2*time.Hour), baseTime.Add(time.Hour), baseTime)
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
		assert.Equal(t, "The end of the booking should not be before it starts", err.Error())
	})

	t.Run("zero length period allowed", func(t *testing.T) {
		_, err := booking.NewBooking(uuid.New(), uuid.New(), uuid.New(),
			baseTime.Add(time.Hour), baseTime.Add(time.Hour), baseTime)
		require.NoError(t, err)
	})

	t.Run("missing item", func(t *testing.T) {
		_, err := booking.NewBooking(uuid.Nil, uuid.New(), uuid.New(), baseTime, baseTime, baseTime)
		assert.True(t, domain.IsValidation(err))
	})
}

func TestDecide(t *testing.T) {
	t.Run("approve waiting", func(t *testing.T) {
		b := newWaiting(t)
		later := baseTime.Add(time.Minute)
		require.NoError(t, b.Decide(true, later))
		assert.Equal(t, booking.StatusApproved, b.Status())
		assert.Equal(t, int64(2), b.Version())
		assert.Equal(t, later, b.UpdatedAt())
	})

	t.Run("reject then approve", func(t *testing.T) {
		b := newWaiting(t)
		require.NoError(t, b.Decide(false, baseTime))
		assert.Equal(t, booking.StatusRejected, b.Status())
		require.NoError(t, b.Decide(true, baseTime))
		assert.Equal(t, booking.StatusApproved, b.Status())
	})

	t.Run("reject twice", func(t *testing.T) {
		b := newWaiting(t)
		require.NoError(t, b.Decide(false, baseTime))
		require.NoError(t, b.Decide(false, baseTime))
		assert.Equal(t, booking.StatusRejected, b.Status())
	})

	t.Run("approved is final", func(t *testing.T) {
		for _, approved := range []bool{true, false} {
			b := newWaiting(t)
			require.NoError(t, b.Decide(true, baseTime))
			err := b.Decide(approved, baseTime)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
			assert.Contains(t, err.Error(), "has already been confirmed")
			assert.Equal(t, booking.StatusApproved, b.Status())
		}
	})
}

func TestIsVisibleTo(t *testing.T) {
	owner, booker := uuid.New(), uuid.New()
	b, err := booking.NewBooking(uuid.New(), owner, booker, baseTime, baseTime, baseTime)
	require.NoError(t, err)

	assert.True(t, b.IsVisibleTo(owner))
	assert.True(t, b.IsVisibleTo(booker))
	assert.False(t, b.IsVisibleTo(uuid.New()))
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to booking.Status
		allowed  bool
	}{
		{booking.StatusWaiting, booking.StatusApproved, true},
		{booking.StatusWaiting, booking.StatusRejected, true},
		{booking.StatusRejected, booking.StatusApproved, true},
		{booking.StatusRejected, booking.StatusRejected, true},
		{booking.StatusApproved, booking.StatusRejected, false},
		{booking.StatusApproved, booking.StatusApproved, false},
		{booking.StatusApproved, booking.StatusWaiting, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}

	assert.True(t, booking.StatusApproved.IsTerminal())
	assert.False(t, booking.StatusRejected.IsTerminal())

	_, err := booking.ParseStatus("CANCELED")
	assert.Error(t, err)
	s, err := booking.ParseStatus("WAITING")
	require.NoError(t, err)
	assert.Equal(t, booking.StatusWaiting, s)
}
