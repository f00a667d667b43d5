package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	bookingDomain "github.com/shareit-rentals/service-booking/internal/domain/booking"
	"github.com/shareit-rentals/service-booking/pkg/domain"
	"github.com/shareit-rentals/service-booking/pkg/kafka"
	"go.uber.org/zap"
)

// CreateBookingRequest holds the data needed to request a booking.
type CreateBookingRequest struct {
	ItemID *uuid.UUID `json:"itemId" binding:"required"`
	Start  *DateTime  `json:"start" binding:"required"`
	End    *DateTime  `json:"end" binding:"required"`
}

// BookingItemDTO is the item summary embedded in a booking view.
type BookingItemDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
}

// BookerDTO is the user summary embedded in a booking view.
type BookerDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID     uuid.UUID      `json:"id"`
	Item   BookingItemDTO `json:"item"`
	Booker BookerDTO      `json:"booker"`
	Start  DateTime       `json:"start"`
	End    DateTime       `json:"end"`
	Status string         `json:"status"`
}

// BookingService is the application service orchestrating the booking
// lifecycle: request, decision and lookup.
type BookingService struct {
	repo   bookingDomain.BookingRepository
	users  bookingDomain.UserDirectory
	items  bookingDomain.ItemDirectory
	clock  bookingDomain.Clock
	events eventPublisher
	logger *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	repo bookingDomain.BookingRepository,
	users bookingDomain.UserDirectory,
	items bookingDomain.ItemDirectory,
	clock bookingDomain.Clock,
	producer kafka.Publisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:   repo,
		users:  users,
		items:  items,
		clock:  clock,
		events: eventPublisher{producer: producer, logger: logger},
		logger: logger,
	}
}

// AddBooking requests a reservation of an item on behalf of bookerID.
func (s *BookingService) AddBooking(ctx context.Context, bookerID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	if req.ItemID == nil || req.Start == nil || req.End == nil {
		return nil, domain.NewValidationError("itemId, start and end are required")
	}

	if err := bookingDomain.EnsureUserExists(ctx, s.users, bookerID); err != nil {
		return nil, err
	}
	item, err := s.items.Get(ctx, *req.ItemID)
	if err != nil {
		return nil, err
	}
	if err := bookingDomain.ValidatePeriod(req.Start.Time, req.End.Time); err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, domain.NewValidationError(fmt.Sprintf("The item with id %s is not available for booking", item.ID))
	}
	if item.OwnerID == bookerID {
		return nil, domain.NewNotFoundErrorf("It is impossible to book a thing if you are its owner")
	}

	bk, err := bookingDomain.NewBooking(item.ID, item.OwnerID, bookerID, req.Start.Time, req.End.Time, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.logger.Info("booking added",
		zap.String("booking_id", bk.ID().String()),
		zap.String("item_id", item.ID.String()),
		zap.String("booker_id", bookerID.String()),
	)
	s.events.publish(ctx, bookingDomain.Topic, bookingDomain.EventCreated, bk.ID().String(), bookingDomain.NewCreatedEvent(bk))

	booker, err := s.users.Get(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk, item, booker)
	return &result, nil
}

// Decide approves or rejects a booking. Only the item owner may decide.
func (s *BookingService) Decide(ctx context.Context, deciderID, bookingID uuid.UUID, approved bool) (*BookingDTO, error) {
	if err := bookingDomain.EnsureUserExists(ctx, s.users, deciderID); err != nil {
		return nil, err
	}
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.Get(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if item.OwnerID != deciderID {
		return nil, domain.NewNotFoundErrorf("The user with id %s cannot change an item that he does not own", deciderID)
	}

	if err := bk.Decide(approved, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	s.logger.Info("booking decided",
		zap.String("booking_id", bk.ID().String()),
		zap.String("status", bk.Status().String()),
		zap.String("owner_id", deciderID.String()),
	)
	s.events.publish(ctx, bookingDomain.Topic, bookingDomain.EventDecided, bk.ID().String(), bookingDomain.NewDecidedEvent(bk))

	booker, err := s.users.Get(ctx, bk.BookerID())
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk, item, booker)
	return &result, nil
}

// GetBooking returns a booking visible to its booker or the item owner.
func (s *BookingService) GetBooking(ctx context.Context, requesterID, bookingID uuid.UUID) (*BookingDTO, error) {
	if err := bookingDomain.EnsureUserExists(ctx, s.users, requesterID); err != nil {
		return nil, err
	}
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.Get(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if bk.BookerID() != requesterID && item.OwnerID != requesterID {
		return nil, domain.NewNotFoundErrorf("The user with id %s is not the owner and not booker", requesterID)
	}

	booker, err := s.users.Get(ctx, bk.BookerID())
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk, item, booker)
	return &result, nil
}

func toBookingDTO(bk *bookingDomain.Booking, item *bookingDomain.Item, booker *bookingDomain.User) BookingDTO {
	return BookingDTO{
		ID: bk.ID(),
		Item: BookingItemDTO{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Available:   item.Available,
		},
		Booker: BookerDTO{
			ID:    booker.ID,
			Name:  booker.Name,
			Email: booker.Email,
		},
		Start:  NewDateTime(bk.Start()),
		End:    NewDateTime(bk.End()),
		Status: bk.Status().String(),
	}
}
