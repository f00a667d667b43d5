package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	itemDomain "github.com/shareit-rentals/service-booking/internal/domain/item"
	"github.com/shareit-rentals/service-booking/pkg/domain"
)

// ItemRepository keeps items in process memory.
type ItemRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*itemDomain.Item
}

func NewItemRepository() *ItemRepository {
	return &ItemRepository{items: make(map[uuid.UUID]*itemDomain.Item)}
}

func (r *ItemRepository) FindByID(_ context.Context, id uuid.UUID) (*itemDomain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("Item", id.String())
	}
	return copyItem(it), nil
}

func (r *ItemRepository) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[id]
	return ok, nil
}

func (r *ItemRepository) FindByOwnerID(_ context.Context, ownerID uuid.UUID) ([]*itemDomain.Item, error) {
	return r.filter(func(it *itemDomain.Item) bool { return it.OwnerID() == ownerID }), nil
}

func (r *ItemRepository) Search(_ context.Context, text string) ([]*itemDomain.Item, error) {
	return r.filter(func(it *itemDomain.Item) bool { return it.Available() && it.MatchesText(text) }), nil
}

func (r *ItemRepository) Save(_ context.Context, it *itemDomain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[it.ID()] = copyItem(it)
	return nil
}

func (r *ItemRepository) Update(_ context.Context, it *itemDomain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[it.ID()]
	if !ok || stored.Version() != it.Version()-1 {
		return domain.NewConflictError("item was modified by another transaction")
	}
	r.items[it.ID()] = copyItem(it)
	return nil
}

func (r *ItemRepository) filter(keep func(*itemDomain.Item) bool) []*itemDomain.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*itemDomain.Item, 0)
	for _, it := range r.items {
		if keep(it) {
			out = append(out, copyItem(it))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().Before(out[j].CreatedAt()) })
	return out
}

func copyItem(it *itemDomain.Item) *itemDomain.Item {
	return itemDomain.Reconstruct(
		it.ID(), it.OwnerID(),
		it.Name(), it.Description(),
		it.Available(),
		it.Version(),
		it.CreatedAt(), it.UpdatedAt(),
	)
}
