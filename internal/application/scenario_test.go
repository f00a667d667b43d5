package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shareit-rentals/service-booking/internal/application"
	"github.com/shareit-rentals/service-booking/internal/directory"
	bookingDomain "github.com/shareit-rentals/service-booking/internal/domain/booking"
	"github.com/shareit-rentals/service-booking/internal/repository/memory"
	"github.com/shareit-rentals/service-booking/pkg/domain"
	"github.com/shareit-rentals/service-booking/pkg/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// world wires every service over the in-memory store with a movable clock.
type world struct {
	ctx      context.Context
	now      time.Time
	bookings *application.BookingService
	users    *application.UserService
	items    *application.ItemService
}

func newWorld(t *testing.T) *world {
	t.Helper()
	w := &world{ctx: context.Background(), now: fixedNow}
	clock := bookingDomain.ClockFunc(func() time.Time { return w.now })
	log := zap.NewNop()

	userRepo := memory.NewUserRepository()
	itemRepo := memory.NewItemRepository()
	bookingRepo := memory.NewBookingRepository()
	commentRepo := memory.NewCommentRepository()
	userDir := directory.NewUsers(userRepo, time.Minute, log)
	itemDir := directory.NewItems(itemRepo)

	w.users = application.NewUserService(userRepo, userDir, clock, log)
	w.items = application.NewItemService(itemRepo, commentRepo, bookingRepo, userDir, clock, log)
	w.bookings = application.NewBookingService(bookingRepo, userDir, itemDir, clock, kafka.DiscardPublisher{}, log)
	return w
}

func (w *world) user(t *testing.T, name string) uuid.UUID {
	t.Helper()
	u, err := w.users.CreateUser(w.ctx, application.CreateUserRequest{Name: name, Email: name + "@example.com"})
	require.NoError(t, err)
	return u.ID
}

func (w *world) item(t *testing.T, owner uuid.UUID, name string, available bool) uuid.UUID {
	t.Helper()
	it, err := w.items.CreateItem(w.ctx, owner, application.CreateItemRequest{Name: name, Description: name + " for rent", Available: &available})
	require.NoError(t, err)
	return it.ID
}

func (w *world) book(t *testing.T, booker, item uuid.UUID, start, end time.Duration) *application.BookingDTO {
	t.Helper()
	b, err := w.bookings.AddBooking(w.ctx, booker, bookingRequest(item, w.now.Add(start), w.now.Add(end)))
	require.NoError(t, err)
	return b
}

func TestBookingLifecycleScenarios(t *testing.T) {
	w := newWorld(t)
	a := w.user(t, "alice")
	b := w.user(t, "bob")
	i := w.item(t, a, "drill", true)
	day := 24 * time.Hour

	// 1. B books A's item.
	booking := w.book(t, b, i, day, 5*day)
	assert.Equal(t, "WAITING", booking.Status)
	assert.Equal(t, "bob", booking.Booker.Name)

	// 2. Owner approves.
	decided, err := w.bookings.Decide(w.ctx, a, booking.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", decided.Status)

	// 3. Approved is final.
	_, err = w.bookings.Decide(w.ctx, a, booking.ID, false)
	require.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "already been confirmed")

	// 4. Owner cannot book own item.
	_, err = w.bookings.AddBooking(w.ctx, a, bookingRequest(i, w.now.Add(day), w.now.Add(2*day)))
	require.True(t, domain.IsNotFound(err))
	assert.Contains(t, err.Error(), "impossible to book a thing if you are its owner")

	// 5. End before start.
	_, err = w.bookings.AddBooking(w.ctx, b, bookingRequest(i, w.now.Add(5*day), w.now.Add(day)))
	assert.True(t, domain.IsValidation(err))

	// start == end is accepted.
	w.book(t, b, i, 2*day, 2*day)

	// Stored state agrees with the returned view.
	got, err := w.bookings.GetBooking(w.ctx, b, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", got.Status)
}

func TestRejectedCanBeDecidedAgain(t *testing.T) {
	w := newWorld(t)
	a, b := w.user(t, "alice"), w.user(t, "bob")
	i := w.item(t, a, "drill", true)
	booking := w.book(t, b, i, time.Hour, 2*time.Hour)

	for _, step := range []struct {
		approved bool
		want     string
	}{{false, "REJECTED"}, {false, "REJECTED"}, {true, "APPROVED"}} {
		got, err := w.bookings.Decide(w.ctx, a, booking.ID, step.approved)
		require.NoError(t, err)
		assert.Equal(t, step.want, got.Status)
	}
}

func TestOwnerCurrentListing(t *testing.T) {
	w := newWorld(t)
	a, b := w.user(t, "alice"), w.user(t, "bob")
	i := w.item(t, a, "drill", true)
	j := w.item(t, a, "saw", true)

	// Created in the future, then the clock moves forward.
	w.book(t, b, i, time.Hour, 2*time.Hour)           // past at T
	cur1 := w.book(t, b, i, 3*time.Hour, 10*time.Hour) // current at T
	cur2 := w.book(t, b, j, 4*time.Hour, 6*time.Hour)  // current at T
	w.book(t, b, j, 20*time.Hour, 30*time.Hour)        // future at T
	w.now = w.now.Add(5 * time.Hour)
	at := w.now

	current, err := w.bookings.ListForOwner(w.ctx, a, "CURRENT", nil)
	require.NoError(t, err)
	require.Len(t, current, 2)
	assert.Equal(t, cur2.ID, current[0].ID)
	assert.Equal(t, cur1.ID, current[1].ID)
	for _, bk := range current {
		assert.False(t, bk.Start.After(at))
		assert.False(t, bk.End.Before(at))
	}

	past, err := w.bookings.ListForOwner(w.ctx, a, "PAST", nil)
	require.NoError(t, err)
	require.Len(t, past, 1)
	assert.True(t, past[0].End.Before(at))

	future, err := w.bookings.ListForBooker(w.ctx, b, "FUTURE", nil)
	require.NoError(t, err)
	require.Len(t, future, 1)
	assert.True(t, future[0].Start.After(at))

	none, err := w.bookings.ListForBooker(w.ctx, a, "ALL", nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPaginationMatchesUnpaginatedPages(t *testing.T) {
	w := newWorld(t)
	a, b := w.user(t, "alice"), w.user(t, "bob")
	i := w.item(t, a, "drill", true)
	for n := 1; n <= 7; n++ {
		w.book(t, b, i, time.Duration(n)*time.Hour, time.Duration(n+1)*time.Hour)
	}

	all, err := w.bookings.ListForBooker(w.ctx, b, "ALL", nil)
	require.NoError(t, err)
	require.Len(t, all, 7)
	for k := 1; k < len(all); k++ {
		assert.True(t, all[k-1].Start.After(all[k].Start.Time), "ordered by start descending")
	}

	for _, size := range []int{1, 2, 3, 5, 10} {
		for from := 0; from < 9; from++ {
			page, err := bookingDomain.NewPage(&from, &size)
			require.NoError(t, err)
			got, err := w.bookings.ListForBooker(w.ctx, b, "ALL", page)
			require.NoError(t, err)

			assert.LessOrEqual(t, len(got), size)
			assert.Equal(t, bookingDomain.Apply(page, all), got, "from=%d size=%d", from, size)
		}
	}
}

func TestUnknownUserCannotList(t *testing.T) {
	w := newWorld(t)
	_, err := w.bookings.ListForOwner(w.ctx, uuid.New(), "ALL", nil)
	assert.True(t, domain.IsNotFound(err))
}
