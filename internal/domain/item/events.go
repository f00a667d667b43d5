package item

import "github.com/google/uuid"

// Topic carries item moderation events produced by other services.
const Topic = "item.events"

// EventAvailabilityChanged toggles whether an item can be booked.
const EventAvailabilityChanged = "item.availability_changed"

// AvailabilityChangedEvent is the payload of EventAvailabilityChanged.
type AvailabilityChangedEvent struct {
	ItemID    uuid.UUID `json:"item_id"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
}
