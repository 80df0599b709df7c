package notifier

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/notifykit/pkg/events"
	"github.com/dmitrymomot/notifykit/pkg/logger"
)

// publisher is the capability needed at publish sites.
type publisher interface {
	Publish(ctx context.Context, event events.Event)
}

// Reporter converts explicit domain failures into ErrorOccurred events.
// Services hold a Reporter at every site where an operation can fail on
// behalf of a known user.
type Reporter struct {
	publisher publisher
	log       *slog.Logger
	now       func() time.Time
}

// ReporterOption configures a Reporter.
type ReporterOption func(*Reporter)

// WithReporterLogger sets the logger for dropped-report diagnostics.
func WithReporterLogger(log *slog.Logger) ReporterOption {
	return func(r *Reporter) {
		if log != nil {
			r.log = log
		}
	}
}

// WithReporterClock overrides the time source. Intended for tests.
func WithReporterClock(now func() time.Time) ReporterOption {
	return func(r *Reporter) {
		if now != nil {
			r.now = now
		}
	}
}

// NewReporter creates a failure reporter publishing through pub.
func NewReporter(pub publisher, opts ...ReporterOption) *Reporter {
	r := &Reporter{
		publisher: pub,
		log:       slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReportFailure publishes an ErrorOccurred event for the failure, addressed
// to userID. When the actor is unknown (empty userID) there is nobody to
// notify, so the report is dropped with a debug line; the failure itself has
// already been logged at its origin.
func (r *Reporter) ReportFailure(ctx context.Context, userID string, f events.Failure, correlationID string) {
	if userID == "" {
		r.log.LogAttrs(ctx, slog.LevelDebug, "failure report dropped, actor unknown",
			logger.Event("error.occurred"),
			slog.String("action", f.Action),
			slog.String("entity_type", f.EntityType),
		)
		return
	}

	r.publisher.Publish(ctx, events.ErrorOccurred{
		UserID:        userID,
		Message:       f.Message(),
		Kind:          f.Kind,
		Action:        f.Action,
		EntityType:    f.EntityType,
		EntityID:      f.EntityID,
		OccurredAt:    r.now(),
		CorrelationID: correlationID,
	})
}
