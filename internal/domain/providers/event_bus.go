package providers

import (
	"context"

	"github.com/zatekoja/careprice/internal/domain/entities"
)

// EventChannelPricingUpdates carries events for any pricing change
const EventChannelPricingUpdates = "pricing:updates"

// EventBus defines the pub/sub interface for pricing events
type EventBus interface {
	// Publish publishes an event to all subscribers of a channel
	Publish(ctx context.Context, channel string, event *entities.PricingEvent) error

	// Subscribe subscribes to events on a channel; the returned channel is
	// closed when ctx is cancelled or the bus shuts down
	Subscribe(ctx context.Context, channel string) (<-chan *entities.PricingEvent, error)

	// Close closes the event bus and all subscriptions
	Close() error
}
