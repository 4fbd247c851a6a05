package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// Runnable is a topic consumer with a start/stop lifecycle.
type Runnable interface {
	Topic() string
	Start(ctx context.Context) error
	Shutdown() error
}

// ConsumerGroup runs consumers that share one subscriber. Shutdown stops
// them in reverse start order and then closes the subscriber.
type ConsumerGroup struct {
	pending    []Runnable
	running    []Runnable
	subscriber message.Subscriber
	logger     *zap.Logger
}

func NewConsumerGroup(subscriber message.Subscriber, logger *zap.Logger) *ConsumerGroup {
	return &ConsumerGroup{
		subscriber: subscriber,
		logger:     logger,
	}
}

// Add queues consumers to be started by Start.
func (g *ConsumerGroup) Add(consumers ...Runnable) {
	g.pending = append(g.pending, consumers...)
}

// Start starts every queued consumer. If one fails, the ones already
// running are stopped and the error names the failing topic.
func (g *ConsumerGroup) Start(ctx context.Context) error {
	for _, consumer := range g.pending {
		if err := consumer.Start(ctx); err != nil {
			_ = g.stopRunning()

			return fmt.Errorf("start consumer for %s: %w", consumer.Topic(), err)
		}

		g.running = append(g.running, consumer)
		g.logger.Info("consumer started", zap.String("topic", consumer.Topic()))
	}

	g.pending = nil

	return nil
}

// Shutdown stops all running consumers and closes the subscriber. Every
// error is reported.
func (g *ConsumerGroup) Shutdown() error {
	g.logger.Info("shutting down consumer group", zap.Int("running", len(g.running)))

	return errors.Join(g.stopRunning(), g.subscriber.Close())
}

func (g *ConsumerGroup) stopRunning() error {
	var errs []error

	for i := len(g.running) - 1; i >= 0; i-- {
		if err := g.running[i].Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("stop consumer for %s: %w", g.running[i].Topic(), err))
		}
	}

	g.running = nil

	return errors.Join(errs...)
}
