// Package eventbus is the in-process domain event bus. Modules publish JSON
// payloads on versioned topics; subscribers run on their own goroutine.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Handler processes one delivered event.
type Handler func(ctx context.Context, msg *message.Message) error

// EventBus publishes and subscribes to domain events.
type EventBus interface {
	Publish(ctx context.Context, topic string, payload any) error
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}

type eventBus struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger
	wg     sync.WaitGroup
}

// New creates a bus backed by watermill's go channel pub/sub.
func New(logger *slog.Logger) EventBus {
	return &eventBus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, watermill.NewSlogLogger(logger)),
		logger: logger,
	}
}

func (eb *eventBus) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("topic", topic)
	// Handlers outlive the request that published the event.
	msg.SetContext(context.WithoutCancel(ctx))

	eb.logger.DebugContext(ctx, "Publishing event",
		slog.String("topic", topic),
		slog.String("message_id", msg.UUID),
	)
	if err := eb.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", topic, err)
	}
	return nil
}

// Subscribe starts delivering topic to handler until ctx is cancelled or the
// bus is closed. Handler errors are logged and the message is acked; events
// are notifications, not work items, so nothing is redelivered.
func (eb *eventBus) Subscribe(ctx context.Context, topic string, handler Handler) error {
	messages, err := eb.pubsub.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	eb.wg.Add(1)
	go func() {
		defer eb.wg.Done()
		for msg := range messages {
			eb.handle(topic, msg, handler)
		}
	}()
	return nil
}

func (eb *eventBus) handle(topic string, msg *message.Message, handler Handler) {
	defer msg.Ack()
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error("Event handler panicked",
				slog.String("topic", topic),
				slog.String("message_id", msg.UUID),
				slog.Any("panic", r),
			)
		}
	}()

	if err := handler(msg.Context(), msg); err != nil {
		eb.logger.WarnContext(msg.Context(), "Event handler failed",
			slog.String("topic", topic),
			slog.String("message_id", msg.UUID),
			slog.String("error", err.Error()),
		)
	}
}

// Close stops all subscriptions and waits for in-flight handlers.
func (eb *eventBus) Close() error {
	err := eb.pubsub.Close()
	eb.wg.Wait()
	return err
}

// Decode unmarshals a message payload.
func Decode[T any](msg *message.Message) (T, error) {
	var v T
	if err := json.Unmarshal(msg.Payload, &v); err != nil {
		return v, fmt.Errorf("failed to decode message %s: %w", msg.UUID, err)
	}
	return v, nil
}
