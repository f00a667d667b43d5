package comment

import (
	"context"

	"github.com/google/uuid"
)

// CommentRepository defines persistence operations for item comments.
type CommentRepository interface {
	Save(ctx context.Context, comment *Comment) error
	// FindByItemIDs returns the comments of the given items, oldest first.
	FindByItemIDs(ctx context.Context, itemIDs []uuid.UUID) ([]*Comment, error)
}
