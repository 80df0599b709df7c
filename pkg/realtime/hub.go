package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultBufferSize = 32

// Hub is the in-memory Broadcaster implementation. Each subscription owns a
// buffered channel; sends are non-blocking and a subscriber whose buffer is
// full is disconnected rather than allowed to stall the broadcast. A client
// dropped this way reconnects and catches up through the replay buffer.
//
// All methods are safe for concurrent use.
type Hub struct {
	mu         sync.RWMutex
	subs       map[*Subscription]struct{}
	groups     map[string]map[*Subscription]struct{}
	bufferSize int
	closed     bool
	cleanupWg  sync.WaitGroup
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithBufferSize sets the per-subscription channel buffer. A minimum of 1
// is enforced so sends stay non-blocking.
func WithBufferSize(n int) HubOption {
	return func(h *Hub) {
		h.bufferSize = max(n, 1)
	}
}

// NewHub creates an empty hub.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		subs:       make(map[*Subscription]struct{}),
		groups:     make(map[string]map[*Subscription]struct{}),
		bufferSize: defaultBufferSize,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Subscription is one connected client's view of the hub.
type Subscription struct {
	id        string
	ch        chan Envelope
	done      chan struct{}
	groups    []string
	hub       *Hub
	closed    bool
	mu        sync.RWMutex
	closeOnce sync.Once
}

// ID returns the unique subscription id.
func (s *Subscription) ID() string { return s.id }

// Receive returns the channel delivering envelopes for this subscription.
// The channel is closed when the subscription closes.
func (s *Subscription) Receive() <-chan Envelope { return s.ch }

// Close unsubscribes and closes the receive channel. Idempotent.
func (s *Subscription) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.hub.unsubscribe(s)

		s.mu.Lock()
		s.closed = true
		close(s.ch)
		s.mu.Unlock()
	})
	return nil
}

// send delivers non-blocking; returns false when the buffer is full or the
// subscription is closed.
func (s *Subscription) send(env Envelope) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}
	select {
	case s.ch <- env:
		return true
	default:
		return false
	}
}

// Subscribe registers a new subscription that receives all SendToAll
// messages plus messages addressed to any of the given groups. The
// subscription is cleaned up automatically when ctx is canceled.
func (h *Hub) Subscribe(ctx context.Context, groups ...string) (*Subscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}

	sub := &Subscription{
		id:     uuid.NewString(),
		ch:     make(chan Envelope, h.bufferSize),
		done:   make(chan struct{}),
		groups: groups,
		hub:    h,
	}
	h.subs[sub] = struct{}{}
	for _, g := range groups {
		if h.groups[g] == nil {
			h.groups[g] = make(map[*Subscription]struct{})
		}
		h.groups[g][sub] = struct{}{}
	}

	if ctx.Done() != nil {
		h.cleanupWg.Add(1)
		go func() {
			defer h.cleanupWg.Done()
			select {
			case <-ctx.Done():
				_ = sub.Close()
			case <-sub.done:
			}
		}()
	}

	return sub, nil
}

// SendToAll pushes a named message to every current subscription.
func (h *Hub) SendToAll(ctx context.Context, name string, payload any) error {
	env, err := newEnvelope(name, payload)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return ErrHubClosed
	}
	for sub := range h.subs {
		h.deliver(sub, env)
	}
	return nil
}

// SendToUser pushes a named message to the user's connection group.
func (h *Hub) SendToUser(ctx context.Context, userID, name string, payload any) error {
	return h.SendToGroup(ctx, UserGroup(userID), name, payload)
}

// SendToGroup pushes a named message to every subscription in the group.
// An empty group is a successful no-op: zero currently-connected sessions is
// an expected state, not a failure.
func (h *Hub) SendToGroup(ctx context.Context, group, name string, payload any) error {
	env, err := newEnvelope(name, payload)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return ErrHubClosed
	}
	for sub := range h.groups[group] {
		h.deliver(sub, env)
	}
	return nil
}

// deliver sends non-blocking under the hub read lock; slow or closed
// subscriptions are removed asynchronously to avoid write-lock contention
// during broadcast.
func (h *Hub) deliver(sub *Subscription, env Envelope) {
	if !sub.send(env) {
		h.cleanupWg.Add(1)
		go func() {
			defer h.cleanupWg.Done()
			_ = sub.Close()
		}()
	}
}

// SubscriberCount reports the current number of subscriptions in a group,
// or in total when group is empty.
func (h *Hub) SubscriberCount(group string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if group == "" {
		return len(h.subs)
	}
	return len(h.groups[group])
}

// Close shuts down the hub and closes every subscription.
func (h *Hub) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	subs := make([]*Subscription, 0, len(h.subs))
	for sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		_ = sub.Close()
	}
	h.cleanupWg.Wait()
	return nil
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.subs, sub)
	for _, g := range sub.groups {
		if members, ok := h.groups[g]; ok {
			delete(members, sub)
			if len(members) == 0 {
				delete(h.groups, g)
			}
		}
	}
}

func newEnvelope(name string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, errors.Join(ErrMarshalPayload, err)
	}
	return Envelope{
		Name:    name,
		Payload: data,
		SentAt:  time.Now(),
	}, nil
}
