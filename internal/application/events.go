package application

import (
	"context"

	"github.com/shareit-rentals/service-booking/pkg/kafka"
	"go.uber.org/zap"
)

const eventSource = "service-booking"

// eventPublisher sends CloudEvents after a successful write. Failures are
// logged and never surface to the caller.
type eventPublisher struct {
	producer kafka.Publisher
	logger   *zap.Logger
}

func (p eventPublisher) publish(ctx context.Context, topic, eventType, subject string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, subject, data)
	if err != nil {
		p.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := p.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		p.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
