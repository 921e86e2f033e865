package engine

import (
	"github.com/lixenwraith/scenery/event"
)

// EventHandler processes specific event types
type EventHandler interface {
	// HandleEvent processes a single event
	// Called synchronously during the dispatch phase, before update systems run
	HandleEvent(w *World, cmd *Commands, ev event.Event)

	// EventTypes returns the event types this handler processes
	EventTypes() []event.EventType
}

// handlerFunc adapts a plain function to EventHandler
type handlerFunc struct {
	types []event.EventType
	fn    func(w *World, cmd *Commands, ev event.Event)
}

func (h handlerFunc) HandleEvent(w *World, cmd *Commands, ev event.Event) { h.fn(w, cmd, ev) }
func (h handlerFunc) EventTypes() []event.EventType                        { return h.types }

// HandlerFunc builds an EventHandler from a function and the types it handles
func HandlerFunc(fn func(w *World, cmd *Commands, ev event.Event), types ...event.EventType) EventHandler {
	return handlerFunc{types: types, fn: fn}
}

// EventRouter dispatches events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch (no concurrency issues with World mutation)
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
type EventRouter struct {
	handlers map[event.EventType][]EventHandler
}

// NewEventRouter creates an empty router
func NewEventRouter() *EventRouter {
	return &EventRouter{
		handlers: make(map[event.EventType][]EventHandler),
	}
}

// Register adds a handler for its declared event types
func (r *EventRouter) Register(handler EventHandler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// Dispatch routes one event to every handler registered for its type
func (r *EventRouter) Dispatch(w *World, cmd *Commands, ev event.Event) {
	for _, h := range r.handlers[ev.Type] {
		h.HandleEvent(w, cmd, ev)
	}
}

// HasHandlers returns true if any handlers are registered for the given type
func (r *EventRouter) HasHandlers(t event.EventType) bool {
	return len(r.handlers[t]) > 0
}

// HandlerCount returns the number of handlers registered for the given type
func (r *EventRouter) HandlerCount(t event.EventType) int {
	return len(r.handlers[t])
}
