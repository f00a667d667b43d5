package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shareit-rentals/service-booking/pkg/domain"
)

// Booking is the aggregate root for the booking domain. Only its status
// changes after creation, through Decide.
type Booking struct {
	id       uuid.UUID
	itemID   uuid.UUID
	ownerID  uuid.UUID
	bookerID uuid.UUID
	start    time.Time
	end      time.Time
	status   Status

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// ValidatePeriod checks that a reservation does not end before it starts.
// A zero-length period is accepted.
func ValidatePeriod(start, end time.Time) error {
	if start.After(end) {
		return domain.NewValidationError("The end of the booking should not be before it starts")
	}
	return nil
}

// NewBooking creates a booking in the WAITING status. ownerID is the item
// owner at the time of booking.
func NewBooking(itemID, ownerID, bookerID uuid.UUID, start, end, now time.Time) (*Booking, error) {
	if itemID == uuid.Nil {
		return nil, domain.NewValidationError("item ID is required")
	}
	if bookerID == uuid.Nil {
		return nil, domain.NewValidationError("booker ID is required")
	}
	if err := ValidatePeriod(start, end); err != nil {
		return nil, err
	}

	return &Booking{
		id:        uuid.New(),
		itemID:    itemID,
		ownerID:   ownerID,
		bookerID:  bookerID,
		start:     start.UTC(),
		end:       end.UTC(),
		status:    StatusWaiting,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id, itemID, ownerID, bookerID uuid.UUID,
	start, end time.Time,
	status Status,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		itemID:    itemID,
		ownerID:   ownerID,
		bookerID:  bookerID,
		start:     start,
		end:       end,
		status:    status,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// ItemID returns the booked item's identifier.
func (b *Booking) ItemID() uuid.UUID { return b.itemID }

// OwnerID returns the identifier of the item owner.
func (b *Booking) OwnerID() uuid.UUID { return b.ownerID }

// BookerID returns the identifier of the user who requested the booking.
func (b *Booking) BookerID() uuid.UUID { return b.bookerID }

// Start returns the beginning of the reservation.
func (b *Booking) Start() time.Time { return b.start }

// End returns the end of the reservation.
func (b *Booking) End() time.Time { return b.end }

// Status returns the current approval status.
func (b *Booking) Status() Status { return b.status }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// IsVisibleTo reports whether userID is the booker or the item owner.
func (b *Booking) IsVisibleTo(userID uuid.UUID) bool {
	return b.bookerID == userID || b.ownerID == userID
}

// Decide records the owner's approval decision. An approved booking cannot
// be decided again; a rejected one can.
func (b *Booking) Decide(approved bool, now time.Time) error {
	target := StatusRejected
	if approved {
		target = StatusApproved
	}
	if !b.status.CanTransitionTo(target) {
		return domain.NewValidationError(fmt.Sprintf("The booking with id %s has already been confirmed", b.id))
	}
	b.status = target
	b.version++
	b.updatedAt = now
	return nil
}

// Clone returns a copy that does not share state with b.
func (b *Booking) Clone() *Booking {
	c := *b
	return &c
}
