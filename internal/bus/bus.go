// Package bus provides the in-process publish/subscribe channel used for
// cross-table cascade invalidation.  Delivery is synchronous, in
// subscription order, at most once per handler per publish.  The bus is
// constructed once at startup and threaded explicitly into each table; it
// intentionally has no buffering, goroutines or delivery guarantees beyond
// the single-threaded model it runs in.
package bus

// Event identifies a kind of invalidation.
type Event string

// CustomerDeleted is published after a customer row is confirmed deleted so
// the appointment table, if loaded, drops the orphaned rows from its view.
const CustomerDeleted Event = "customer.deleted"

// Bus fans events out to subscribed handlers.
type Bus struct {
	handlers map[Event][]func()
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{handlers: make(map[Event][]func())}
}

// Subscribe registers a handler for an event kind.  Handlers run in the
// order they were subscribed.
func (b *Bus) Subscribe(e Event, handler func()) {
	b.handlers[e] = append(b.handlers[e], handler)
}

// Publish invokes every handler subscribed to the event, synchronously and
// in subscription order.
func (b *Bus) Publish(e Event) {
	for _, handler := range b.handlers[e] {
		handler()
	}
}
