package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// Handler applies one decoded event.
type Handler[T any] func(ctx context.Context, event *T) error

// Consumer decodes JSON messages from one topic into T.
//
// Ack policy: success acks; a handler error nacks so the broker redelivers;
// an undecodable payload is acked and dropped.
type Consumer[T any] struct {
	subscriber message.Subscriber
	topic      string
	handler    Handler[T]
	logger     *zap.Logger
	stop       context.CancelFunc
	stopped    chan struct{}
}

func NewConsumer[T any](
	subscriber message.Subscriber,
	topic string,
	handler Handler[T],
	logger *zap.Logger,
) *Consumer[T] {
	return &Consumer[T]{
		subscriber: subscriber,
		topic:      topic,
		handler:    handler,
		logger:     logger.With(zap.String("topic", topic)),
		stopped:    make(chan struct{}),
	}
}

func (c *Consumer[T]) Topic() string {
	return c.topic
}

// Start subscribes and processes messages in a background goroutine until
// ctx is cancelled, the subscription closes, or Shutdown is called.
func (c *Consumer[T]) Start(ctx context.Context) error {
	ctx, c.stop = context.WithCancel(ctx)

	msgs, err := c.subscriber.Subscribe(ctx, c.topic)
	if err != nil {
		c.stop()
		close(c.stopped)

		return fmt.Errorf("subscribe to %s: %w", c.topic, err)
	}

	go c.run(ctx, msgs)

	return nil
}

func (c *Consumer[T]) run(ctx context.Context, msgs <-chan *message.Message) {
	defer close(c.stopped)

	for {
		var (
			msg *message.Message
			ok  bool
		)

		select {
		case <-ctx.Done():
			return
		case msg, ok = <-msgs:
		}

		if !ok {
			return
		}

		c.process(ctx, msg)
	}
}

func (c *Consumer[T]) process(ctx context.Context, msg *message.Message) {
	log := c.logger.With(zap.String("uuid", msg.UUID))

	event := new(T)
	if err := json.Unmarshal(msg.Payload, event); err != nil {
		log.Error("dropping malformed event", zap.Error(err))
		msg.Ack()

		return
	}

	if err := c.handler(ctx, event); err != nil {
		log.Error("event handler failed", zap.Error(err))
		msg.Nack()

		return
	}

	msg.Ack()
	log.Debug("event processed")
}

// Shutdown cancels consumption and blocks until the message being handled,
// if any, is finished.
func (c *Consumer[T]) Shutdown() error {
	if c.stop != nil {
		c.stop()
	}

	<-c.stopped

	return nil
}
