package realtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/replaybuffer"
)

const defaultHeartbeat = 30 * time.Second

// SSEHandler streams hub messages to clients over Server-Sent Events and
// replays pending buffered notifications on (re)connect.
//
// Identification of the caller is the mounting application's concern: the
// handler trusts the user id and email placed on the request by upstream
// auth middleware (query parameters in this reference surface).
type SSEHandler struct {
	hub       *Hub
	buffer    *replaybuffer.Buffer
	log       *slog.Logger
	heartbeat time.Duration
}

// SSEOption configures an SSEHandler.
type SSEOption func(*SSEHandler)

// WithHeartbeat overrides the keep-alive comment interval.
func WithHeartbeat(d time.Duration) SSEOption {
	return func(h *SSEHandler) {
		if d > 0 {
			h.heartbeat = d
		}
	}
}

// WithSSELogger sets the logger for stream diagnostics.
func WithSSELogger(log *slog.Logger) SSEOption {
	return func(h *SSEHandler) {
		if log != nil {
			h.log = log
		}
	}
}

// NewSSEHandler creates an SSE endpoint over the hub. The buffer may be nil,
// in which case reconnect catch-up is disabled.
func NewSSEHandler(hub *Hub, buffer *replaybuffer.Buffer, opts ...SSEOption) *SSEHandler {
	if hub == nil {
		panic("realtime: hub cannot be nil")
	}
	h := &SSEHandler{
		hub:       hub,
		buffer:    buffer,
		log:       slog.Default(),
		heartbeat: defaultHeartbeat,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes mounts the stream endpoint.
func (h *SSEHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/stream", h.handleStream)
	return r
}

func (h *SSEHandler) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, ErrStreamingUnsupported.Error(), http.StatusInternalServerError)
		return
	}

	userID := r.URL.Query().Get("user_id")
	email := r.URL.Query().Get("email")

	var groups []string
	if userID != "" {
		groups = append(groups, UserGroup(userID))
	}
	if email != "" {
		groups = append(groups, EmailGroup(email))
	}

	sub, err := h.hub.Subscribe(r.Context(), groups...)
	if err != nil {
		http.Error(w, "failed to subscribe", http.StatusServiceUnavailable)
		return
	}
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.replayPending(r.Context(), w, flusher, userID, email)

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case env, ok := <-sub.Receive():
			if !ok {
				return
			}
			writeSSE(w, env)
			flusher.Flush()
		}
	}
}

// replayPending consumes any buffered notifications addressed to the caller
// and writes them before live streaming starts. Errors other than an absent
// entry are logged and ignored; catch-up is best effort like the buffering
// that feeds it.
func (h *SSEHandler) replayPending(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, userID, email string) {
	if h.buffer == nil {
		return
	}

	replay := func(kind replaybuffer.ChannelKind, recipient string) {
		if recipient == "" {
			return
		}
		entry, err := h.buffer.Consume(ctx, kind, recipient)
		if err != nil {
			if !errors.Is(err, replaybuffer.ErrEntryNotFound) {
				h.log.LogAttrs(ctx, slog.LevelWarn, "failed to replay pending notification",
					logger.Channel(string(kind)),
					logger.Recipient(recipient),
					logger.Error(err),
				)
			}
			return
		}
		writeSSE(w, Envelope{Name: entry.Event, Payload: entry.Payload, SentAt: entry.WrittenAt})
		flusher.Flush()
	}

	replay(replaybuffer.ChannelError, userID)
	replay(replaybuffer.ChannelMail, email)
}

func writeSSE(w http.ResponseWriter, env Envelope) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", env.Name, env.Payload)
}
