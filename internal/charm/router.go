package charm

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
)

// Handler reacts to one event.
type Handler func(ctx context.Context, ev *Event) error

// Router holds at most one handler per event kind and delivers events
// synchronously.
type Router struct {
	log      logr.Logger
	handlers map[EventKind]Handler
}

// NewRouter creates an empty router.
func NewRouter(log logr.Logger) *Router {
	return &Router{
		log:      log,
		handlers: make(map[EventKind]Handler),
	}
}

// Register binds h to kind.
func (r *Router) Register(kind EventKind, h Handler) error {
	if kind == EventUnknown {
		return fmt.Errorf("cannot register a handler for %s events", kind)
	}
	if h == nil {
		return fmt.Errorf("nil handler for %s", kind)
	}
	if _, ok := r.handlers[kind]; ok {
		return fmt.Errorf("handler for %s already registered", kind)
	}
	r.handlers[kind] = h
	return nil
}

// Dispatch runs the handler registered for ev.Kind. Events without a
// handler are acknowledged.
func (r *Router) Dispatch(ctx context.Context, ev *Event) error {
	h, ok := r.handlers[ev.Kind]
	if !ok {
		r.log.V(1).Info("No handler for event, ignoring", "event", ev.Name, "kind", ev.Kind.String())
		return nil
	}

	r.log.Info("Handling event", "event", ev.Name, "kind", ev.Kind.String())
	if err := h(ctx, ev); err != nil {
		return fmt.Errorf("%s: %w", ev.Kind, err)
	}
	return nil
}
