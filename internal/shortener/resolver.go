package shortener

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultClickTimeout = 5 * time.Second

// ClickRecorder records a single visit to a short link.
type ClickRecorder interface {
	RecordClick(ctx context.Context, code Code) error
}

// ClickRecorderFunc adapts a function to ClickRecorder.
type ClickRecorderFunc func(ctx context.Context, code Code) error

func (f ClickRecorderFunc) RecordClick(ctx context.Context, code Code) error {
	return f(ctx, code)
}

// Resolver looks up short codes and counts clicks off the request path.
type Resolver struct {
	store    Repository
	clicks   ClickRecorder
	logger   *zap.Logger
	timeout  time.Duration
	inflight sync.WaitGroup
}

// NewResolver creates a new resolver.
func NewResolver(store Repository, clicks ClickRecorder, logger *zap.Logger) *Resolver {
	return &Resolver{
		store:   store,
		clicks:  clicks,
		logger:  logger,
		timeout: defaultClickTimeout,
	}
}

// Resolve returns the link for code and schedules a click increment. The
// increment runs detached from ctx cancellation; its outcome never reaches
// the caller.
func (r *Resolver) Resolve(ctx context.Context, code Code) (*ShortLink, error) {
	link, err := r.store.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	detached := context.WithoutCancel(ctx)

	r.inflight.Go(func() {
		r.recordClick(detached, link.Code)
	})

	return link, nil
}

func (r *Resolver) recordClick(ctx context.Context, code Code) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.clicks.RecordClick(ctx, code); err != nil {
		r.logger.Warn("failed to record click",
			zap.String("code", string(code)),
			zap.Error(err),
		)
	}
}

// Wait blocks until every scheduled click has been recorded or dropped.
func (r *Resolver) Wait() {
	r.inflight.Wait()
}

// Shutdown waits for in-flight clicks.
func (r *Resolver) Shutdown() error {
	r.Wait()

	return nil
}
