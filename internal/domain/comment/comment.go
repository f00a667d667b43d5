package comment

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shareit-rentals/service-booking/pkg/domain"
)

// Comment is feedback left on an item by someone who has finished a booking.
type Comment struct {
	id        uuid.UUID
	itemID    uuid.UUID
	authorID  uuid.UUID
	text      string
	createdAt time.Time
}

// NewComment creates a comment. Whether the author may comment is decided
// by the caller.
func NewComment(itemID, authorID uuid.UUID, text string, now time.Time) (*Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewValidationError("text is required")
	}

	return &Comment{
		id:        uuid.New(),
		itemID:    itemID,
		authorID:  authorID,
		text:      text,
		createdAt: now,
	}, nil
}

// Reconstruct rebuilds a Comment from persistence.
func Reconstruct(id, itemID, authorID uuid.UUID, text string, createdAt time.Time) *Comment {
	return &Comment{
		id:        id,
		itemID:    itemID,
		authorID:  authorID,
		text:      text,
		createdAt: createdAt,
	}
}

// Getters.
func (c *Comment) ID() uuid.UUID        { return c.id }
func (c *Comment) ItemID() uuid.UUID    { return c.itemID }
func (c *Comment) AuthorID() uuid.UUID  { return c.authorID }
func (c *Comment) Text() string         { return c.text }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
