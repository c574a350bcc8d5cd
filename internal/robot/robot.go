// Package robot defines the boundary to the host chat-bot framework.
//
// The adapter never depends on a concrete bot framework. It talks to
// anything satisfying Robot: inbound messages go through Receive, and
// lifecycle changes are announced through event-emitter semantics. A
// minimal in-memory implementation is enough to host the adapter, which
// is exactly what tests (and the bundled console robot) do.
package robot

import "time"

// Lifecycle events emitted by the adapter
const (
	// EventConnected fires once authentication succeeded and a valid
	// datafeed exists, and again after a stale feed was recreated
	EventConnected = "connected"
	// EventError fires for recoverable failures the adapter handled
	// itself, so observers may log them
	EventError = "error"
)

// Message is one inbound chat message handed to the host framework.
// Text is the raw markup body, preserved exactly as the platform sent
// it, embedded newlines included.
type Message struct {
	StreamID  string
	UserID    string
	Text      string
	Timestamp time.Time
}

// Robot is the capability the host framework exposes to the adapter
type Robot interface {
	// Receive hands one inbound message to the framework
	Receive(msg Message)

	// On subscribes a handler to a lifecycle event
	On(event string, handler func(args ...interface{}))

	// Emit announces a lifecycle event to all subscribed handlers
	Emit(event string, args ...interface{})
}
