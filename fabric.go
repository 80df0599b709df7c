package notifykit

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/notifykit/pkg/audit"
	"github.com/dmitrymomot/notifykit/pkg/dispatcher"
	"github.com/dmitrymomot/notifykit/pkg/events"
	"github.com/dmitrymomot/notifykit/pkg/mailer"
	"github.com/dmitrymomot/notifykit/pkg/notifier"
	"github.com/dmitrymomot/notifykit/pkg/realtime"
	"github.com/dmitrymomot/notifykit/pkg/relay"
	"github.com/dmitrymomot/notifykit/pkg/replaybuffer"
)

// Fabric is the wired notification fabric: one dispatcher behind a static
// registration table binding each configured adapter to its event set. Build
// it once at process startup; it is safe for concurrent use afterward.
type Fabric struct {
	dispatcher *dispatcher.Dispatcher
	registry   *dispatcher.Registry

	log         *slog.Logger
	metrics     dispatcher.Metrics
	broadcaster realtime.Broadcaster
	buffer      *replaybuffer.Buffer
	relayConn   relay.Conn
	recorder    *audit.Recorder
	mailSender  mailer.Sender
	mailConfig  mailer.Config
}

// Option configures the fabric.
type Option func(*Fabric)

// WithLogger sets the logger shared by the dispatcher and all adapters.
func WithLogger(log *slog.Logger) Option {
	return func(f *Fabric) {
		if log != nil {
			f.log = log
		}
	}
}

// WithMetrics attaches a dispatch metrics sink; see pkg/metrics.
func WithMetrics(m dispatcher.Metrics) Option {
	return func(f *Fabric) {
		f.metrics = m
	}
}

// WithBroadcaster enables the real-time adapters over b; see pkg/realtime.
func WithBroadcaster(b realtime.Broadcaster) Option {
	return func(f *Fabric) {
		f.broadcaster = b
	}
}

// WithReplayBuffer lets the mail and error adapters park per-recipient
// notifications for reconnect catch-up. Only effective together with
// WithBroadcaster.
func WithReplayBuffer(b *replaybuffer.Buffer) Option {
	return func(f *Fabric) {
		f.buffer = b
	}
}

// WithRelay enables cross-process relay of identity and lifecycle events
// over conn; see pkg/relay.
func WithRelay(conn relay.Conn) Option {
	return func(f *Fabric) {
		f.relayConn = conn
	}
}

// WithAudit subscribes the audit recorder to every event type.
func WithAudit(rec *audit.Recorder) Option {
	return func(f *Fabric) {
		f.recorder = rec
	}
}

// WithMailer enables transactional email on account lifecycle events.
func WithMailer(sender mailer.Sender, cfg mailer.Config) Option {
	return func(f *Fabric) {
		f.mailSender = sender
		f.mailConfig = cfg
	}
}

// New wires the fabric. Only adapters that were configured are registered;
// a fabric with no options is a valid no-op sink where every publish lands
// on zero handlers.
func New(opts ...Option) *Fabric {
	f := &Fabric{
		log:      slog.Default(),
		registry: dispatcher.NewRegistry(),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.register()

	dopts := []dispatcher.Option{dispatcher.WithLogger(f.log)}
	if f.metrics != nil {
		dopts = append(dopts, dispatcher.WithMetrics(f.metrics))
	}
	f.dispatcher = dispatcher.New(f.registry, dopts...)
	return f
}

// register builds the static handler table. Registration order within one
// event type defines invocation order: user-visible pushes first, relay
// second, audit last, mail after audit so its follow-up events land on a
// fully built table.
func (f *Fabric) register() {
	if f.broadcaster != nil {
		fh := realtime.NewForecastHandler(f.broadcaster, f.log)
		dispatcher.RegisterNamed(f.registry, "realtime.ForecastHandler",
			dispatcher.HandlerFunc[events.ForecastCreated](fh.HandleCreated))
		dispatcher.RegisterNamed(f.registry, "realtime.ForecastHandler",
			dispatcher.HandlerFunc[events.ForecastUpdated](fh.HandleUpdated))
		dispatcher.RegisterNamed(f.registry, "realtime.ForecastHandler",
			dispatcher.HandlerFunc[events.ForecastDeleted](fh.HandleDeleted))

		mh := realtime.NewMailHandler(f.broadcaster, f.buffer, f.log)
		dispatcher.RegisterNamed(f.registry, "realtime.MailHandler",
			dispatcher.HandlerFunc[events.EmailSent](mh.HandleEmailSent))
		dispatcher.RegisterNamed(f.registry, "realtime.MailHandler",
			dispatcher.HandlerFunc[events.VerificationEmailSent](mh.HandleVerificationEmailSent))

		dispatcher.Register[events.ErrorOccurred](f.registry,
			realtime.NewErrorHandler(f.broadcaster, f.buffer, f.log))
		dispatcher.Register[events.SessionRevoked](f.registry,
			realtime.NewSessionHandler(f.broadcaster, f.log))
	}

	if f.relayConn != nil {
		r := relay.New(f.relayConn, f.log)
		dispatcher.RegisterNamed(f.registry, "relay.Relay",
			dispatcher.HandlerFunc[events.UserRegistered](r.HandleUserRegistered))
		dispatcher.RegisterNamed(f.registry, "relay.Relay",
			dispatcher.HandlerFunc[events.UserLoggedIn](r.HandleUserLoggedIn))
		dispatcher.RegisterNamed(f.registry, "relay.Relay",
			dispatcher.HandlerFunc[events.UserLoggedOut](r.HandleUserLoggedOut))
		dispatcher.RegisterNamed(f.registry, "relay.Relay",
			dispatcher.HandlerFunc[events.SessionCreated](r.HandleSessionCreated))
		dispatcher.RegisterNamed(f.registry, "relay.Relay",
			dispatcher.HandlerFunc[events.APIKeyCreated](r.HandleAPIKeyCreated))
		dispatcher.RegisterNamed(f.registry, "relay.Relay",
			dispatcher.HandlerFunc[events.APIKeyRevoked](r.HandleAPIKeyRevoked))
		dispatcher.RegisterNamed(f.registry, "relay.Relay",
			dispatcher.HandlerFunc[events.UserRoleChanged](r.HandleUserRoleChanged))
		dispatcher.RegisterNamed(f.registry, "relay.Relay",
			dispatcher.HandlerFunc[events.UserClaimChanged](r.HandleUserClaimChanged))
	}

	if f.recorder != nil {
		registerAudit[events.UserRegistered](f.registry, f.recorder)
		registerAudit[events.UserLoggedIn](f.registry, f.recorder)
		registerAudit[events.UserLoggedOut](f.registry, f.recorder)
		registerAudit[events.SessionCreated](f.registry, f.recorder)
		registerAudit[events.SessionRevoked](f.registry, f.recorder)
		registerAudit[events.APIKeyCreated](f.registry, f.recorder)
		registerAudit[events.APIKeyRevoked](f.registry, f.recorder)
		registerAudit[events.UserRoleChanged](f.registry, f.recorder)
		registerAudit[events.UserClaimChanged](f.registry, f.recorder)
		registerAudit[events.EmailSent](f.registry, f.recorder)
		registerAudit[events.VerificationEmailSent](f.registry, f.recorder)
		registerAudit[events.ForecastCreated](f.registry, f.recorder)
		registerAudit[events.ForecastUpdated](f.registry, f.recorder)
		registerAudit[events.ForecastDeleted](f.registry, f.recorder)
		registerAudit[events.ErrorOccurred](f.registry, f.recorder)
	}

	if f.mailSender != nil {
		// The mail handler publishes follow-up events through the fabric
		// itself; by the time any publish happens the table is complete.
		mh := mailer.NewHandler(f.mailSender, f, f.mailConfig, mailer.WithHandlerLogger(f.log))
		dispatcher.RegisterNamed(f.registry, "mailer.Handler",
			dispatcher.HandlerFunc[events.UserRegistered](mh.HandleUserRegistered))
	}
}

func registerAudit[T events.Event](r *dispatcher.Registry, rec *audit.Recorder) {
	dispatcher.RegisterNamed(r, "audit.Recorder",
		dispatcher.HandlerFunc[T](func(ctx context.Context, e T) error {
			return rec.RecordEvent(ctx, e)
		}))
}

// Publish delivers the event to every adapter registered for its concrete
// type. Best effort: it never reports failure to the caller.
func (f *Fabric) Publish(ctx context.Context, event events.Event) {
	f.dispatcher.Publish(ctx, event)
}

// Notifier returns the business-action publish helpers bound to this fabric.
func (f *Fabric) Notifier() *notifier.Notifier {
	return notifier.New(f)
}

// Reporter returns the failure reporter bound to this fabric.
func (f *Fabric) Reporter() *notifier.Reporter {
	return notifier.NewReporter(f, notifier.WithReporterLogger(f.log))
}
