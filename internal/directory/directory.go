// Package directory adapts this service's user and item repositories to
// the lookup interfaces the booking engine consumes.
package directory

import (
	"context"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	bookingDomain "github.com/shareit-rentals/service-booking/internal/domain/booking"
	itemDomain "github.com/shareit-rentals/service-booking/internal/domain/item"
	userDomain "github.com/shareit-rentals/service-booking/internal/domain/user"
	"go.uber.org/zap"
)

// Users resolves users through a TTL cache in front of the repository.
// Users are never deleted, so a cached hit stays valid until its profile
// changes; Invalidate is called on update.
type Users struct {
	repo   userDomain.UserRepository
	cache  *gocache.Cache
	logger *zap.Logger
}

// NewUsers creates a cached user directory. A non-positive ttl disables
// caching.
func NewUsers(repo userDomain.UserRepository, ttl time.Duration, logger *zap.Logger) *Users {
	var c *gocache.Cache
	if ttl > 0 {
		c = gocache.New(ttl, 2*ttl)
	}
	return &Users{repo: repo, cache: c, logger: logger}
}

func (d *Users) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if d.cached(id) != nil {
		return true, nil
	}
	return d.repo.ExistsByID(ctx, id)
}

func (d *Users) Get(ctx context.Context, id uuid.UUID) (*bookingDomain.User, error) {
	if u := d.cached(id); u != nil {
		return u, nil
	}
	u, err := d.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := &bookingDomain.User{ID: u.ID(), Name: u.Name(), Email: u.Email()}
	if d.cache != nil {
		d.cache.SetDefault(id.String(), view)
	}
	return view, nil
}

// Invalidate drops a cached user after its profile changed.
func (d *Users) Invalidate(id uuid.UUID) {
	if d.cache != nil {
		d.cache.Delete(id.String())
		d.logger.Debug("user cache entry invalidated", zap.String("user_id", id.String()))
	}
}

func (d *Users) cached(id uuid.UUID) *bookingDomain.User {
	if d.cache == nil {
		return nil
	}
	if v, ok := d.cache.Get(id.String()); ok {
		return v.(*bookingDomain.User)
	}
	return nil
}

// Items resolves items straight from the repository; availability must be
// read fresh for every booking.
type Items struct {
	repo itemDomain.ItemRepository
}

func NewItems(repo itemDomain.ItemRepository) *Items {
	return &Items{repo: repo}
}

func (d *Items) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return d.repo.ExistsByID(ctx, id)
}

func (d *Items) Get(ctx context.Context, id uuid.UUID) (*bookingDomain.Item, error) {
	it, err := d.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &bookingDomain.Item{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
	}, nil
}
