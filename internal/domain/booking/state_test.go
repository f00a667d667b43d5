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

func TestParseState(t *testing.T) {
	for _, token := range []string{"ALL", "CURRENT", "PAST", "FUTURE", "WAITING", "REJECTED"} {
		st, err := booking.ParseState(token)
		require.NoError(t, err)
		assert.Equal(t, booking.State(token), st)
	}

	st, err := booking.ParseState("")
	require.NoError(t, err)
	assert.Equal(t, booking.StateAll, st)

	for _, token := range []string{"UNSUPPORTED", "all", "APPROVED"} {
		_, err := booking.ParseState(token)
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
		assert.Equal(t, "Unknown state: "+token, err.Error())
	}
}

func TestCriteriaMatches(t *testing.T) {
	now := baseTime
	booker, owner := uuid.New(), uuid.New()

	mk := func(start, end time.Time, status booking.Status) *booking.Booking {
		return booking.Reconstruct(uuid.New(), uuid.New(), owner, booker, start, end, status, 1, now, now)
	}
	past := mk(now.Add(-3*time.Hour), now.Add(-2*time.Hour), booking.StatusApproved)
	current := mk(now.Add(-time.Hour), now.Add(time.Hour), booking.StatusWaiting)
	future := mk(now.Add(time.Hour), now.Add(2*time.Hour), booking.StatusRejected)
	edgeEnd := mk(now.Add(-time.Hour), now, booking.StatusWaiting)
	edgeStart := mk(now, now.Add(time.Hour), booking.StatusWaiting)

	tests := []struct {
		state booking.State
		want  map[*booking.Booking]bool
	}{
		{booking.StateAll, map[*booking.Booking]bool{past: true, current: true, future: true, edgeEnd: true, edgeStart: true}},
		{booking.StateCurrent, map[*booking.Booking]bool{current: true, edgeEnd: true, edgeStart: true}},
		{booking.StatePast, map[*booking.Booking]bool{past: true}},
		{booking.StateFuture, map[*booking.Booking]bool{future: true}},
		{booking.StateWaiting, map[*booking.Booking]bool{current: true, edgeEnd: true, edgeStart: true}},
		{booking.StateRejected, map[*booking.Booking]bool{future: true}},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			c := tt.state.Criteria(booking.RoleBooker, booker, now)
			for _, b := range []*booking.Booking{past, current, future, edgeEnd, edgeStart} {
				assert.Equal(t, tt.want[b], c.Matches(b), "start=%s end=%s", b.Start(), b.End())
			}
		})
	}

	t.Run("role selects the party", func(t *testing.T) {
		byOwner := booking.StateAll.Criteria(booking.RoleOwner, owner, now)
		assert.True(t, byOwner.Matches(past))
		wrongRole := booking.StateAll.Criteria(booking.RoleOwner, booker, now)
		assert.False(t, wrongRole.Matches(past))
	})
}
