package application

import (
	"context"

	"github.com/google/uuid"
	bookingDomain "github.com/shareit-rentals/service-booking/internal/domain/booking"
)

// ListBookings resolves a state token into a query over the caller's
// bookings as booker or as item owner, newest start first. "now" is read
// once per call.
func (s *BookingService) ListBookings(
	ctx context.Context,
	callerID uuid.UUID,
	role bookingDomain.Role,
	stateToken string,
	page *bookingDomain.Page,
) ([]BookingDTO, error) {
	if err := bookingDomain.EnsureUserExists(ctx, s.users, callerID); err != nil {
		return nil, err
	}
	state, err := bookingDomain.ParseState(stateToken)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.Find(ctx, state.Criteria(role, callerID, s.clock.Now()), page)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, bookings)
}

// ListForBooker lists bookings made by callerID.
func (s *BookingService) ListForBooker(ctx context.Context, callerID uuid.UUID, stateToken string, page *bookingDomain.Page) ([]BookingDTO, error) {
	return s.ListBookings(ctx, callerID, bookingDomain.RoleBooker, stateToken, page)
}

// ListForOwner lists bookings of items owned by callerID.
func (s *BookingService) ListForOwner(ctx context.Context, callerID uuid.UUID, stateToken string, page *bookingDomain.Page) ([]BookingDTO, error) {
	return s.ListBookings(ctx, callerID, bookingDomain.RoleOwner, stateToken, page)
}

// enrich resolves each distinct item and booker once per listing.
func (s *BookingService) enrich(ctx context.Context, bookings []*bookingDomain.Booking) ([]BookingDTO, error) {
	items := make(map[uuid.UUID]*bookingDomain.Item)
	bookers := make(map[uuid.UUID]*bookingDomain.User)

	result := make([]BookingDTO, 0, len(bookings))
	for _, bk := range bookings {
		item, ok := items[bk.ItemID()]
		if !ok {
			var err error
			if item, err = s.items.Get(ctx, bk.ItemID()); err != nil {
				return nil, err
			}
			items[bk.ItemID()] = item
		}
		booker, ok := bookers[bk.BookerID()]
		if !ok {
			var err error
			if booker, err = s.users.Get(ctx, bk.BookerID()); err != nil {
				return nil, err
			}
			bookers[bk.BookerID()] = booker
		}
		result = append(result, toBookingDTO(bk, item, booker))
	}
	return result, nil
}
