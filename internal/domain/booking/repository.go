package booking

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingRepository defines the persistence interface for bookings.
type BookingRepository interface {
	Save(ctx context.Context, booking *Booking) error
	// Update persists a status change. It fails with a ConflictError when the
	// stored version no longer matches the one the booking was loaded with.
	Update(ctx context.Context, booking *Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	// Find returns bookings matching c ordered by start descending, windowed
	// by page when it is non-nil.
	Find(ctx context.Context, c Criteria, page *Page) ([]*Booking, error)
	// FindLastForItem returns the booking with the latest start strictly
	// before now, or nil.
	FindLastForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*Booking, error)
	// FindNextForItem returns the booking with the earliest start strictly
	// after now, or nil.
	FindNextForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*Booking, error)
	// FindFinished returns the booker's bookings of the item that ended
	// before now, regardless of status.
	FindFinished(ctx context.Context, itemID, bookerID uuid.UUID, now time.Time) ([]*Booking, error)
}
