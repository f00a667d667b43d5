package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	bookingDomain "github.com/shareit-rentals/service-booking/internal/domain/booking"
	"github.com/shareit-rentals/service-booking/pkg/domain"
)

// BookingRepository keeps bookings in process memory. Stored values are
// copied on the way in and out.
type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]*bookingDomain.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{bookings: make(map[uuid.UUID]*bookingDomain.Booking)}
}

func (r *BookingRepository) Save(_ context.Context, b *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.bookings[b.ID()]; exists {
		return domain.NewConflictError("booking " + b.ID().String() + " already exists")
	}
	r.bookings[b.ID()] = b.Clone()
	return nil
}

func (r *BookingRepository) Update(_ context.Context, b *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.bookings[b.ID()]
	if !ok || stored.Version() != b.Version()-1 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	r.bookings[b.ID()] = b.Clone()
	return nil
}

func (r *BookingRepository) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("Booking", id.String())
	}
	return b.Clone(), nil
}

func (r *BookingRepository) Find(_ context.Context, c bookingDomain.Criteria, page *bookingDomain.Page) ([]*bookingDomain.Booking, error) {
	matched := r.collect(c.Matches)
	sortByStartDesc(matched)
	return bookingDomain.Apply(page, matched), nil
}

func (r *BookingRepository) FindLastForItem(_ context.Context, itemID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	var last *bookingDomain.Booking
	for _, b := range r.collect(func(b *bookingDomain.Booking) bool {
		return b.ItemID() == itemID && b.Start().Before(now)
	}) {
		if last == nil || b.Start().After(last.Start()) {
			last = b
		}
	}
	return last, nil
}

func (r *BookingRepository) FindNextForItem(_ context.Context, itemID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	var next *bookingDomain.Booking
	for _, b := range r.collect(func(b *bookingDomain.Booking) bool {
		return b.ItemID() == itemID && b.Start().After(now)
	}) {
		if next == nil || b.Start().Before(next.Start()) {
			next = b
		}
	}
	return next, nil
}

func (r *BookingRepository) FindFinished(_ context.Context, itemID, bookerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	finished := r.collect(func(b *bookingDomain.Booking) bool {
		return b.ItemID() == itemID && b.BookerID() == bookerID && b.End().Before(now)
	})
	sort.SliceStable(finished, func(i, j int) bool { return finished[i].End().After(finished[j].End()) })
	return finished, nil
}

func (r *BookingRepository) collect(keep func(*bookingDomain.Booking) bool) []*bookingDomain.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*bookingDomain.Booking, 0)
	for _, b := range r.bookings {
		if keep(b) {
			out = append(out, b.Clone())
		}
	}
	return out
}

// sortByStartDesc orders by start descending, breaking ties by creation
// time so repeated calls page consistently.
func sortByStartDesc(bs []*bookingDomain.Booking) {
	sort.Slice(bs, func(i, j int) bool {
		if !bs[i].Start().Equal(bs[j].Start()) {
			return bs[i].Start().After(bs[j].Start())
		}
		if !bs[i].CreatedAt().Equal(bs[j].CreatedAt()) {
			return bs[i].CreatedAt().After(bs[j].CreatedAt())
		}
		return bs[i].ID().String() < bs[j].ID().String()
	})
}
