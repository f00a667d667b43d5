package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shareit-rentals/service-booking/internal/domain/comment"
	"github.com/shareit-rentals/service-booking/internal/domain/item"
	"github.com/shareit-rentals/service-booking/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemRepository_Search(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewItemRepository()
	owner := uuid.New()

	drill, err := item.NewItem(owner, "Drill", "Cordless drill", true, now)
	require.NoError(t, err)
	saw, err := item.NewItem(owner, "Saw", "Hand saw", true, now.Add(time.Second))
	require.NoError(t, err)
	hidden, err := item.NewItem(uuid.New(), "Old drill", "Broken", false, now.Add(2*time.Second))
	require.NoError(t, err)
	for _, it := range []*item.Item{drill, saw, hidden} {
		require.NoError(t, repo.Save(ctx, it))
	}

	found, err := repo.Search(ctx, "DRILL")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, drill.ID(), found[0].ID())

	own, err := repo.FindByOwnerID(ctx, owner)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, drill.ID(), own[0].ID())
}

func TestCommentRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCommentRepository()
	first, second := uuid.New(), uuid.New()

	for _, itemID := range []uuid.UUID{first, second, first} {
		c, err := comment.NewComment(itemID, uuid.New(), "nice", now)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, c))
	}

	got, err := repo.FindByItemIDs(ctx, []uuid.UUID{first})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.FindByItemIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
