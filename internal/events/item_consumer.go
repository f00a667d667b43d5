package events

import (
	"context"

	"github.com/shareit-rentals/service-booking/internal/application"
	itemDomain "github.com/shareit-rentals/service-booking/internal/domain/item"
	"github.com/shareit-rentals/service-booking/pkg/domain"
	"github.com/shareit-rentals/service-booking/pkg/kafka"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ItemEventConsumer listens to item moderation events and updates item
// availability, which gates new bookings.
type ItemEventConsumer struct {
	consumer *kafka.Consumer
	service  *application.ItemService
	logger   *zap.Logger
}

// NewItemEventConsumer creates a new ItemEventConsumer.
func NewItemEventConsumer(
	brokers []string,
	groupID string,
	service *application.ItemService,
	logger *zap.Logger,
) *ItemEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, itemDomain.Topic, logger)
	return &ItemEventConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming item events. This blocks until the context is cancelled.
func (c *ItemEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *ItemEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *ItemEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from item topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case itemDomain.EventAvailabilityChanged:
		return c.handleAvailabilityChanged(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled item event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *ItemEventConsumer) handleAvailabilityChanged(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt itemDomain.AvailabilityChangedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse AvailabilityChangedEvent data",
			zap.Error(err),
		)
		return nil
	}

	c.logger.Info("processing item availability change",
		zap.String("item_id", evt.ItemID.String()),
		zap.Bool("available", evt.Available),
		zap.String("reason", evt.Reason),
	)

	if err := c.service.SetAvailability(ctx, evt.ItemID, evt.Available); err != nil {
		if domain.IsNotFound(err) {
			c.logger.Warn("availability change for unknown item",
				zap.String("item_id", evt.ItemID.String()),
			)
			return nil
		}
		c.logger.Error("failed to change item availability",
			zap.String("item_id", evt.ItemID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}
