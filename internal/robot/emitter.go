package robot

import "sync"

// Emitter is a thread-safe event emitter, intended for embedding in
// Robot implementations. Handlers run synchronously on the emitting
// goroutine, in subscription order.
type Emitter struct {
	mu       sync.RWMutex
	handlers map[string][]func(args ...interface{})
}

// On subscribes a handler to an event
func (e *Emitter) On(event string, handler func(args ...interface{})) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.handlers == nil {
		e.handlers = make(map[string][]func(args ...interface{}))
	}
	e.handlers[event] = append(e.handlers[event], handler)
}

// Emit calls every handler subscribed to the event
func (e *Emitter) Emit(event string, args ...interface{}) {
	e.mu.RLock()
	handlers := append([]func(args ...interface{}){}, e.handlers[event]...)
	e.mu.RUnlock()

	for _, h := range handlers {
		h(args...)
	}
}
