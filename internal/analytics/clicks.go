package analytics

import (
	"context"
	"errors"
	"time"

	"github.com/serroba/url-shortener/internal/messaging"
	"github.com/serroba/url-shortener/internal/requestctx"
	"github.com/serroba/url-shortener/internal/shortener"
	"go.uber.org/zap"
)

// ClickPublisher records clicks by publishing LinkClickedEvent instead of
// touching the store. A consumer applies the increment later.
type ClickPublisher struct {
	publish messaging.Publish[LinkClickedEvent]
	now     func() time.Time
}

// NewClickPublisher creates a click recorder backed by a typed publish function.
func NewClickPublisher(publish messaging.Publish[LinkClickedEvent]) *ClickPublisher {
	return &ClickPublisher{publish: publish, now: time.Now}
}

func (p *ClickPublisher) RecordClick(ctx context.Context, code shortener.Code) error {
	meta := requestctx.From(ctx)

	return p.publish(ctx, &LinkClickedEvent{
		Code:      string(code),
		ClickedAt: p.now().UTC(),
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
		Referrer:  meta.Referrer,
	})
}

// ClickIncrementer is the part of the link store a click counter needs.
type ClickIncrementer interface {
	IncrementClicks(ctx context.Context, code shortener.Code) error
}

// NewClickCounter returns a handler that applies each click to the store.
// Clicks for unknown codes are dropped rather than redelivered.
func NewClickCounter(store ClickIncrementer, logger *zap.Logger) messaging.Handler[LinkClickedEvent] {
	return func(ctx context.Context, event *LinkClickedEvent) error {
		err := store.IncrementClicks(ctx, shortener.Code(event.Code))
		if errors.Is(err, shortener.ErrNotFound) {
			logger.Warn("click for unknown code", zap.String("code", event.Code))

			return nil
		}

		return err
	}
}

// NewCreatedLogger returns a handler that logs link creation events.
func NewCreatedLogger(logger *zap.Logger) messaging.Handler[LinkCreatedEvent] {
	return func(_ context.Context, event *LinkCreatedEvent) error {
		logger.Info("link created",
			zap.String("code", event.Code),
			zap.String("longUrl", event.LongURL),
			zap.Time("createdAt", event.CreatedAt),
			zap.String("clientIp", event.ClientIP),
		)

		return nil
	}
}

// Compile-time check.
var _ shortener.ClickRecorder = (*ClickPublisher)(nil)
