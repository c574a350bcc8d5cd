package robot

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitter_EmitCallsSubscribedHandlers(t *testing.T) {
	var e Emitter
	var got []interface{}

	e.On(EventError, func(args ...interface{}) {
		got = append(got, args...)
	})
	e.Emit(EventError, "boom")

	assert.Equal(t, []interface{}{"boom"}, got)
}

func TestEmitter_HandlersRunInSubscriptionOrder(t *testing.T) {
	var e Emitter
	var order []int

	e.On(EventConnected, func(args ...interface{}) { order = append(order, 1) })
	e.On(EventConnected, func(args ...interface{}) { order = append(order, 2) })
	e.Emit(EventConnected)

	assert.Equal(t, []int{1, 2}, order)
}

func TestEmitter_EmitWithoutSubscribersIsNoop(t *testing.T) {
	var e Emitter
	assert.NotPanics(t, func() {
		e.Emit("nobody-listens")
	})
}

func TestEmitter_EventsAreIndependent(t *testing.T) {
	var e Emitter
	connected := 0
	errored := 0

	e.On(EventConnected, func(args ...interface{}) { connected++ })
	e.On(EventError, func(args ...interface{}) { errored++ })

	e.Emit(EventConnected)
	e.Emit(EventConnected)
	e.Emit(EventError)

	assert.Equal(t, 2, connected)
	assert.Equal(t, 1, errored)
}

func TestEmitter_ConcurrentEmitAndSubscribe(t *testing.T) {
	var e Emitter
	var mu sync.Mutex
	count := 0

	e.On(EventConnected, func(args ...interface{}) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			e.Emit(EventConnected)
		}()
		go func() {
			defer wg.Done()
			e.On(EventError, func(args ...interface{}) {})
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 10, count)
}
