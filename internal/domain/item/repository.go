package item

import (
	"context"

	"github.com/google/uuid"
)

// ItemRepository defines persistence operations for items.
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*Item, error)
	// Search returns available items whose name or description contains
	// text, case-insensitively.
	Search(ctx context.Context, text string) ([]*Item, error)
	Save(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error
}
