package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	commentDomain "github.com/shareit-rentals/service-booking/internal/domain/comment"
)

// CommentRepository keeps comments in insertion order.
type CommentRepository struct {
	mu       sync.RWMutex
	comments []*commentDomain.Comment
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{}
}

func (r *CommentRepository) Save(_ context.Context, c *commentDomain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments = append(r.comments, c)
	return nil
}

func (r *CommentRepository) FindByItemIDs(_ context.Context, itemIDs []uuid.UUID) ([]*commentDomain.Comment, error) {
	wanted := make(map[uuid.UUID]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*commentDomain.Comment, 0)
	for _, c := range r.comments {
		if _, ok := wanted[c.ItemID()]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}
