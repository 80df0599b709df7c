package dispatcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/notifykit/pkg/events"
	"github.com/dmitrymomot/notifykit/pkg/logger"
)

// Publisher is the capability held by publish sites. Publish never reports
// failure to the caller; delivery is best effort by design.
type Publisher interface {
	Publish(ctx context.Context, event events.Event)
}

// Metrics receives dispatch observations. Implementations must be safe for
// concurrent use; see pkg/metrics for the Prometheus-backed one.
type Metrics interface {
	EventPublished(eventName string)
	HandlerFailed(eventName, handlerName string)
	HandlerDuration(eventName, handlerName string, d time.Duration)
}

// Dispatcher fans a published event out to every handler registered for its
// concrete type. Each handler runs inside an isolated failure boundary: an
// error or panic from one handler is logged and never reaches the publisher
// or sibling handlers. No retry is performed here; retry policy, where it
// exists, belongs to the individual adapter.
type Dispatcher struct {
	registry *Registry
	log      *slog.Logger
	metrics  Metrics
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// WithMetrics attaches a dispatch metrics sink.
func WithMetrics(m Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// New creates a dispatcher over a registry that has already been fully
// populated. The registry must not be modified afterward.
func New(registry *Registry, opts ...Option) *Dispatcher {
	if registry == nil {
		panic("dispatcher: registry cannot be nil")
	}
	d := &Dispatcher{
		registry: registry,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Publish delivers event to all handlers registered for its exact concrete
// type, sequentially, in registration order. A canceled context stops new
// handler work from starting; in-flight handler I/O is left to run to
// completion. Publish never returns an error.
func (d *Dispatcher) Publish(ctx context.Context, event events.Event) {
	if event == nil {
		return
	}

	name := event.EventName()
	if d.metrics != nil {
		d.metrics.EventPublished(name)
	}

	regs := d.registry.resolve(event)
	if len(regs) == 0 {
		d.log.LogAttrs(ctx, slog.LevelDebug, "no handlers registered for event",
			logger.Event(name),
		)
		return
	}

	for _, reg := range regs {
		if ctx.Err() != nil {
			d.log.LogAttrs(ctx, slog.LevelWarn, "context canceled, skipping remaining handlers",
				logger.Event(name),
				logger.Handler(reg.handlerName),
				logger.Error(ctx.Err()),
			)
			return
		}

		start := time.Now()
		err := d.safeInvoke(ctx, reg, event)
		if d.metrics != nil {
			d.metrics.HandlerDuration(name, reg.handlerName, time.Since(start))
		}
		if err != nil {
			if d.metrics != nil {
				d.metrics.HandlerFailed(name, reg.handlerName)
			}
			d.log.LogAttrs(ctx, slog.LevelError, "event handler failed",
				logger.Event(name),
				logger.Handler(reg.handlerName),
				logger.Error(err),
			)
		}
	}
}

// safeInvoke runs one handler and converts a panic into an error so the
// per-handler isolation boundary holds even for programming mistakes inside
// adapters.
func (d *Dispatcher) safeInvoke(ctx context.Context, reg registration, event events.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	return reg.invoke(ctx, event)
}
