package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	bookingDomain "github.com/shareit-rentals/service-booking/internal/domain/booking"
	"github.com/shareit-rentals/service-booking/pkg/domain"
	"gorm.io/gorm"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	BookerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Start     time.Time `gorm:"column:start_time;not null"`
	End       time.Time `gorm:"column:end_time;not null"`
	Status    string    `gorm:"not null;size:20"`
	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// Find lists bookings matching the criteria, newest start first.
func (r *GormBookingRepository) Find(ctx context.Context, c bookingDomain.Criteria, page *bookingDomain.Page) ([]*bookingDomain.Booking, error) {
	q := r.db.WithContext(ctx).Model(&BookingModel{})

	switch c.Role {
	case bookingDomain.RoleOwner:
		q = q.Where("owner_id = ?", c.UserID)
	default:
		q = q.Where("booker_id = ?", c.UserID)
	}
	if c.Status != "" {
		q = q.Where("status = ?", string(c.Status))
	}
	switch c.Period {
	case bookingDomain.PeriodCurrent:
		q = q.Where("start_time <= ? AND end_time >= ?", c.At, c.At)
	case bookingDomain.PeriodPast:
		q = q.Where("end_time < ?", c.At)
	case bookingDomain.PeriodFuture:
		q = q.Where("start_time > ?", c.At)
	}

	q = q.Order("start_time DESC").Order("created_at DESC")
	if page != nil {
		q = q.Offset(page.Offset()).Limit(page.Size)
	}

	var models []BookingModel
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find %s bookings: %w", c.Role, err)
	}
	return toDomainBookings(models)
}

// FindLastForItem returns the item's booking with the latest start before now.
func (r *GormBookingRepository) FindLastForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	return r.findOneForItem(ctx, "start_time < ?", "start_time DESC", itemID, now)
}

// FindNextForItem returns the item's booking with the earliest start after now.
func (r *GormBookingRepository) FindNextForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	return r.findOneForItem(ctx, "start_time > ?", "start_time ASC", itemID, now)
}

func (r *GormBookingRepository) findOneForItem(ctx context.Context, cond, order string, itemID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Where(cond, now).
		Order(order).
		Limit(1).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find booking for item: %w", err)
	}
	if len(models) == 0 {
		return nil, nil
	}
	return toDomainBooking(&models[0])
}

// FindFinished returns the booker's bookings of the item that ended before now.
func (r *GormBookingRepository) FindFinished(ctx context.Context, itemID, bookerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("item_id = ? AND booker_id = ? AND end_time < ?", itemID, bookerID, now).
		Order("end_time DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find finished bookings: %w", err)
	}
	return toDomainBookings(models)
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists a decision with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)

	// Decide bumped the version; the stored row must still hold the previous one.
	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	return nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        bk.ID(),
		ItemID:    bk.ItemID(),
		OwnerID:   bk.OwnerID(),
		BookerID:  bk.BookerID(),
		Start:     bk.Start(),
		End:       bk.End(),
		Status:    string(bk.Status()),
		Version:   bk.Version(),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return bookingDomain.Reconstruct(
		m.ID, m.ItemID, m.OwnerID, m.BookerID,
		m.Start.UTC(), m.End.UTC(),
		status,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bk, err := toDomainBooking(&models[i])
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}
