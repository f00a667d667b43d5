package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	commentDomain "github.com/shareit-rentals/service-booking/internal/domain/comment"
	"gorm.io/gorm"
)

// CommentModel is the GORM model for the comments table.
type CommentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null"`
	Text      string    `gorm:"type:varchar(2000);not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName sets the table name.
func (CommentModel) TableName() string { return "comments" }

// GormCommentRepository implements CommentRepository using GORM.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Save persists a new comment.
func (r *GormCommentRepository) Save(ctx context.Context, c *commentDomain.Comment) error {
	model := toCommentModel(c)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}
	return nil
}

// FindByItemIDs returns all comments for the given items.
func (r *GormCommentRepository) FindByItemIDs(ctx context.Context, itemIDs []uuid.UUID) ([]*commentDomain.Comment, error) {
	if len(itemIDs) == 0 {
		return []*commentDomain.Comment{}, nil
	}
	var models []CommentModel
	if err := r.db.WithContext(ctx).Where("item_id IN ?", itemIDs).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}

	comments := make([]*commentDomain.Comment, len(models))
	for i, m := range models {
		comments[i] = commentDomain.Reconstruct(m.ID, m.ItemID, m.AuthorID, m.Text, m.CreatedAt)
	}
	return comments, nil
}

func toCommentModel(c *commentDomain.Comment) CommentModel {
	return CommentModel{
		ID:        c.ID(),
		ItemID:    c.ItemID(),
		AuthorID:  c.AuthorID(),
		Text:      c.Text(),
		CreatedAt: c.CreatedAt(),
	}
}
