package booking

import (
	"time"

	"github.com/google/uuid"
)

// Topic carries booking lifecycle events.
const Topic = "booking.events"

const (
	EventCreated = "booking.created"
	EventDecided = "booking.decided"
)

// CreatedEvent is published after a booking is stored.
type CreatedEvent struct {
	BookingID uuid.UUID `json:"booking_id"`
	ItemID    uuid.UUID `json:"item_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	BookerID  uuid.UUID `json:"booker_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    string    `json:"status"`
}

// DecidedEvent is published after the owner approves or rejects a booking.
type DecidedEvent struct {
	BookingID uuid.UUID `json:"booking_id"`
	ItemID    uuid.UUID `json:"item_id"`
	BookerID  uuid.UUID `json:"booker_id"`
	Status    string    `json:"status"`
	DecidedAt time.Time `json:"decided_at"`
}

// NewCreatedEvent builds the payload for a freshly stored booking.
func NewCreatedEvent(b *Booking) CreatedEvent {
	return CreatedEvent{
		BookingID: b.ID(),
		ItemID:    b.ItemID(),
		OwnerID:   b.OwnerID(),
		BookerID:  b.BookerID(),
		Start:     b.Start(),
		End:       b.End(),
		Status:    b.Status().String(),
	}
}

// NewDecidedEvent builds the payload for a decided booking.
func NewDecidedEvent(b *Booking) DecidedEvent {
	return DecidedEvent{
		BookingID: b.ID(),
		ItemID:    b.ItemID(),
		BookerID:  b.BookerID(),
		Status:    b.Status().String(),
		DecidedAt: b.UpdatedAt(),
	}
}
