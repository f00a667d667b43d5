package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	bookingDomain "github.com/shareit-rentals/service-booking/internal/domain/booking"
	commentDomain "github.com/shareit-rentals/service-booking/internal/domain/comment"
	itemDomain "github.com/shareit-rentals/service-booking/internal/domain/item"
	"github.com/shareit-rentals/service-booking/pkg/domain"
	"go.uber.org/zap"
)

// CreateItemRequest is the request DTO for offering an item.
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
}

// UpdateItemRequest is the request DTO for a partial item update.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// CreateCommentRequest is the request DTO for commenting on an item.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// ItemDTO is the short representation of an item.
type ItemDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
}

// ItemBookingDTO is the booking summary shown to an item's owner.
type ItemBookingDTO struct {
	ID       uuid.UUID `json:"id"`
	ItemID   uuid.UUID `json:"itemId"`
	BookerID uuid.UUID `json:"bookerId"`
	Start    DateTime  `json:"start"`
	End      DateTime  `json:"end"`
}

// CommentDTO is the API response representation of a comment.
type CommentDTO struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    DateTime  `json:"created"`
}

// ItemDetailsDTO is the long representation of an item. Last and next
// bookings are only filled in for the owner.
type ItemDetailsDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Available   bool            `json:"available"`
	LastBooking *ItemBookingDTO `json:"lastBooking"`
	NextBooking *ItemBookingDTO `json:"nextBooking"`
	Comments    []CommentDTO    `json:"comments"`
}

// ItemService implements use cases for items and their comments.
type ItemService struct {
	items    itemDomain.ItemRepository
	comments commentDomain.CommentRepository
	bookings bookingDomain.BookingRepository
	users    bookingDomain.UserDirectory
	clock    bookingDomain.Clock
	logger   *zap.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(
	items itemDomain.ItemRepository,
	comments commentDomain.CommentRepository,
	bookings bookingDomain.BookingRepository,
	users bookingDomain.UserDirectory,
	clock bookingDomain.Clock,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:    items,
		comments: comments,
		bookings: bookings,
		users:    users,
		clock:    clock,
		logger:   logger,
	}
}

// CreateItem offers a new item on behalf of ownerID.
func (s *ItemService) CreateItem(ctx context.Context, ownerID uuid.UUID, req CreateItemRequest) (*ItemDTO, error) {
	if err := bookingDomain.EnsureUserExists(ctx, s.users, ownerID); err != nil {
		return nil, err
	}
	if req.Available == nil {
		return nil, domain.NewValidationError("available is required")
	}
	it, err := itemDomain.NewItem(ownerID, req.Name, req.Description, *req.Available, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.items.Save(ctx, it); err != nil {
		return nil, err
	}

	s.logger.Info("item created",
		zap.String("item_id", it.ID().String()),
		zap.String("owner_id", ownerID.String()),
	)
	result := toItemDTO(it)
	return &result, nil
}

// UpdateItem applies a partial update. Only the owner may change an item.
func (s *ItemService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error) {
	if err := bookingDomain.EnsureUserExists(ctx, s.users, userID); err != nil {
		return nil, err
	}
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(userID) {
		return nil, domain.NewNotFoundErrorf("The user with id %s cannot change an item that he does not own", userID)
	}

	it.Update(req.Name, req.Description, req.Available, s.clock.Now())
	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}

	s.logger.Info("item updated", zap.String("item_id", itemID.String()))
	result := toItemDTO(it)
	return &result, nil
}

// SetAvailability changes only the availability flag, as requested by
// moderation.
func (s *ItemService) SetAvailability(ctx context.Context, itemID uuid.UUID, available bool) error {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	if it.Available() == available {
		return nil
	}
	it.SetAvailable(available, s.clock.Now())
	if err := s.items.Update(ctx, it); err != nil {
		return err
	}

	s.logger.Info("item availability changed",
		zap.String("item_id", itemID.String()),
		zap.Bool("available", available),
	)
	return nil
}

// GetItem returns an item with its comments; the owner also sees the last
// and next bookings.
func (s *ItemService) GetItem(ctx context.Context, userID, itemID uuid.UUID) (*ItemDetailsDTO, error) {
	if err := bookingDomain.EnsureUserExists(ctx, s.users, userID); err != nil {
		return nil, err
	}
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	details, err := s.details(ctx, []*itemDomain.Item{it}, it.IsOwnedBy(userID))
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// ListOwnItems returns the caller's items with bookings and comments.
func (s *ItemService) ListOwnItems(ctx context.Context, ownerID uuid.UUID) ([]ItemDetailsDTO, error) {
	if err := bookingDomain.EnsureUserExists(ctx, s.users, ownerID); err != nil {
		return nil, err
	}
	items, err := s.items.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, items, true)
}

// Search finds available items by name or description. Blank text yields
// no results.
func (s *ItemService) Search(ctx context.Context, userID uuid.UUID, text string) ([]ItemDTO, error) {
	if err := bookingDomain.EnsureUserExists(ctx, s.users, userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []ItemDTO{}, nil
	}
	items, err := s.items.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	result := make([]ItemDTO, len(items))
	for i, it := range items {
		result[i] = toItemDTO(it)
	}
	return result, nil
}

// AddComment records feedback from a user whose booking of the item has
// ended.
func (s *ItemService) AddComment(ctx context.Context, userID, itemID uuid.UUID, req CreateCommentRequest) (*CommentDTO, error) {
	if err := bookingDomain.EnsureUserExists(ctx, s.users, userID); err != nil {
		return nil, err
	}
	exists, err := s.items.ExistsByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("Item", itemID.String())
	}

	now := s.clock.Now()
	finished, err := s.bookings.FindFinished(ctx, itemID, userID, now)
	if err != nil {
		return nil, err
	}
	if len(finished) == 0 {
		return nil, domain.NewValidationError(fmt.Sprintf(
			"User with id %s did not book the item with id %s or the reservation has not ended yet.", userID, itemID))
	}

	c, err := commentDomain.NewComment(itemID, userID, req.Text, now)
	if err != nil {
		return nil, err
	}
	if err := s.comments.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("comment added",
		zap.String("comment_id", c.ID().String()),
		zap.String("item_id", itemID.String()),
	)
	author, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &CommentDTO{ID: c.ID(), Text: c.Text(), AuthorName: author.Name, Created: NewDateTime(c.CreatedAt())}, nil
}

func (s *ItemService) details(ctx context.Context, items []*itemDomain.Item, withBookings bool) ([]ItemDetailsDTO, error) {
	ids := make([]uuid.UUID, len(items))
	for i, it := range items {
		ids[i] = it.ID()
	}
	comments, err := s.comments.FindByItemIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byItem := make(map[uuid.UUID][]CommentDTO, len(items))
	authors := make(map[uuid.UUID]string)
	for _, c := range comments {
		name, ok := authors[c.AuthorID()]
		if !ok {
			author, err := s.users.Get(ctx, c.AuthorID())
			if err != nil {
				return nil, err
			}
			name = author.Name
			authors[c.AuthorID()] = name
		}
		byItem[c.ItemID()] = append(byItem[c.ItemID()], CommentDTO{
			ID:         c.ID(),
			Text:       c.Text(),
			AuthorName: name,
			Created:    NewDateTime(c.CreatedAt()),
		})
	}

	now := s.clock.Now()
	result := make([]ItemDetailsDTO, len(items))
	for i, it := range items {
		d := ItemDetailsDTO{
			ID:          it.ID(),
			Name:        it.Name(),
			Description: it.Description(),
			Available:   it.Available(),
			Comments:    byItem[it.ID()],
		}
		if d.Comments == nil {
			d.Comments = []CommentDTO{}
		}
		if withBookings {
			last, err := s.bookings.FindLastForItem(ctx, it.ID(), now)
			if err != nil {
				return nil, err
			}
			next, err := s.bookings.FindNextForItem(ctx, it.ID(), now)
			if err != nil {
				return nil, err
			}
			d.LastBooking = toItemBookingDTO(last)
			d.NextBooking = toItemBookingDTO(next)
		}
		result[i] = d
	}
	return result, nil
}

func toItemDTO(it *itemDomain.Item) ItemDTO {
	return ItemDTO{
		ID:          it.ID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
	}
}

func toItemBookingDTO(bk *bookingDomain.Booking) *ItemBookingDTO {
	if bk == nil {
		return nil
	}
	return &ItemBookingDTO{
		ID:       bk.ID(),
		ItemID:   bk.ItemID(),
		BookerID: bk.BookerID(),
		Start:    NewDateTime(bk.Start()),
		End:      NewDateTime(bk.End()),
	}
}
