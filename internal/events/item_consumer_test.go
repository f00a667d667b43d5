package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shareit-rentals/service-booking/internal/application"
	"github.com/shareit-rentals/service-booking/internal/directory"
	bookingDomain "github.com/shareit-rentals/service-booking/internal/domain/booking"
	itemDomain "github.com/shareit-rentals/service-booking/internal/domain/item"
	"github.com/shareit-rentals/service-booking/internal/repository/memory"
	"github.com/shareit-rentals/service-booking/pkg/kafka"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestConsumer(t *testing.T) (*ItemEventConsumer, *memory.ItemRepository) {
	t.Helper()
	log := zap.NewNop()
	clock := bookingDomain.ClockFunc(func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) })

	items := memory.NewItemRepository()
	users := directory.NewUsers(memory.NewUserRepository(), 0, log)
	svc := application.NewItemService(items, memory.NewCommentRepository(), memory.NewBookingRepository(), users, clock, log)
	return &ItemEventConsumer{service: svc, logger: log}, items
}

func message(t *testing.T, eventType string, data any) kafkago.Message {
	t.Helper()
	evt, err := kafka.NewCloudEvent("service-moderation", eventType, "", data)
	require.NoError(t, err)
	raw, err := evt.Marshal()
	require.NoError(t, err)
	return kafkago.Message{Topic: itemDomain.Topic, Value: raw}
}

func TestHandleAvailabilityChanged(t *testing.T) {
	ctx := context.Background()
	c, items := newTestConsumer(t)

	it, err := itemDomain.NewItem(uuid.New(), "Drill", "Cordless drill", true, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, items.Save(ctx, it))

	msg := message(t, itemDomain.EventAvailabilityChanged, itemDomain.AvailabilityChangedEvent{
		ItemID: it.ID(), Available: false, Reason: "reported broken",
	})
	require.NoError(t, c.handleMessage(ctx, msg))

	stored, err := items.FindByID(ctx, it.ID())
	require.NoError(t, err)
	assert.False(t, stored.Available())
	assert.Equal(t, int64(2), stored.Version())

	// Redelivery is a no-op.
	require.NoError(t, c.handleMessage(ctx, msg))
	stored, err = items.FindByID(ctx, it.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.Version())
}

func TestHandleMessageSkipsUnprocessable(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestConsumer(t)

	assert.NoError(t, c.handleMessage(ctx, kafkago.Message{Value: []byte("not json")}))
	assert.NoError(t, c.handleMessage(ctx, message(t, "item.created", map[string]string{"id": "x"})))
	assert.NoError(t, c.handleMessage(ctx, message(t, itemDomain.EventAvailabilityChanged,
		itemDomain.AvailabilityChangedEvent{ItemID: uuid.New(), Available: true})))
}
