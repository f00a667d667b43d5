package item

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shareit-rentals/service-booking/pkg/domain"
)

// Item is the aggregate root for a thing offered for lending.
type Item struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	name        string
	description string
	available   bool
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

// NewItem creates an item owned by ownerID.
func NewItem(ownerID uuid.UUID, name, description string, available bool, now time.Time) (*Item, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if strings.TrimSpace(description) == "" {
		return nil, domain.NewValidationError("description is required")
	}

	return &Item{
		id:          uuid.New(),
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds an Item from persistence data (no validation).
func Reconstruct(
	id, ownerID uuid.UUID,
	name, description string,
	available bool,
	version int64,
	createdAt, updatedAt time.Time,
) *Item {
	return &Item{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

func (i *Item) ID() uuid.UUID        { return i.id }
func (i *Item) OwnerID() uuid.UUID   { return i.ownerID }
func (i *Item) Name() string         { return i.name }
func (i *Item) Description() string  { return i.description }
func (i *Item) Available() bool      { return i.available }
func (i *Item) Version() int64       { return i.version }
func (i *Item) CreatedAt() time.Time { return i.createdAt }
func (i *Item) UpdatedAt() time.Time { return i.updatedAt }

// --- Behavior ---

// IsOwnedBy checks if the item belongs to the given user.
func (i *Item) IsOwnedBy(userID uuid.UUID) bool {
	return i.ownerID == userID
}

// Update applies partial updates; nil fields and blank strings are ignored.
func (i *Item) Update(name, description *string, available *bool, now time.Time) {
	if name != nil && strings.TrimSpace(*name) != "" {
		i.name = *name
	}
	if description != nil && strings.TrimSpace(*description) != "" {
		i.description = *description
	}
	if available != nil {
		i.available = *available
	}
	i.version++
	i.updatedAt = now
}

// SetAvailable changes only the availability flag.
func (i *Item) SetAvailable(available bool, now time.Time) {
	i.Update(nil, nil, &available, now)
}

// MatchesText reports whether text occurs in the name or description,
// ignoring case.
func (i *Item) MatchesText(text string) bool {
	needle := strings.ToLower(text)
	return strings.Contains(strings.ToLower(i.name), needle) ||
		strings.Contains(strings.ToLower(i.description), needle)
}
