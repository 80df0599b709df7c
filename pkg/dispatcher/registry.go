package dispatcher

import (
	"context"
	"fmt"
	"reflect"

	"github.com/dmitrymomot/notifykit/pkg/events"
)

// Handler processes events of a single concrete type.
type Handler[T events.Event] interface {
	Handle(ctx context.Context, event T) error
}

// HandlerFunc adapts a plain function to the Handler capability. It is the
// registration form used when one handler instance subscribes to several
// event types through differently named methods.
type HandlerFunc[T events.Event] func(ctx context.Context, event T) error

// Handle implements Handler.
func (f HandlerFunc[T]) Handle(ctx context.Context, event T) error {
	return f(ctx, event)
}

// registration binds one handler to one concrete event type. The handler
// name is captured at registration time so dispatch failures can be logged
// without reflecting over the instance again.
type registration struct {
	handlerName string
	invoke      func(ctx context.Context, event events.Event) error
}

// Registry is the static handler table the dispatcher resolves against.
// It is populated once during process wiring and must not be modified after
// the first Publish; no locking is performed on the read path.
type Registry struct {
	handlers map[reflect.Type][]registration
}

// NewRegistry returns an empty handler table.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[reflect.Type][]registration)}
}

// Register binds h to the concrete event type T. Handlers are resolved by
// exact concrete type only: registering for an interface or base type does
// not subscribe to its implementations. Registration order is preserved and
// defines invocation order within one publish.
func Register[T events.Event](r *Registry, h Handler[T]) {
	RegisterNamed(r, handlerName(h), h)
}

// RegisterNamed is Register with an explicit handler name for logs and
// metrics. Useful when the same HandlerFunc-backed instance registers for
// several event types and the derived function type name would be
// meaningless.
func RegisterNamed[T events.Event](r *Registry, name string, h Handler[T]) {
	eventType := reflect.TypeFor[T]()
	r.handlers[eventType] = append(r.handlers[eventType], registration{
		handlerName: name,
		invoke: func(ctx context.Context, event events.Event) error {
			typed, ok := event.(T)
			if !ok {
				return fmt.Errorf("%w: expected %s, got %T", ErrEventTypeMismatch, eventType, event)
			}
			return h.Handle(ctx, typed)
		},
	})
}

// resolve returns the registrations for the exact concrete type of event.
func (r *Registry) resolve(event events.Event) []registration {
	return r.handlers[reflect.TypeOf(event)]
}

// HandlerCount reports the number of handlers registered for the concrete
// type T. Intended for wiring assertions and tests.
func HandlerCount[T events.Event](r *Registry) int {
	return len(r.handlers[reflect.TypeFor[T]()])
}

func handlerName(h any) string {
	t := reflect.TypeOf(h)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.String()
	}
	return t.Kind().String()
}
