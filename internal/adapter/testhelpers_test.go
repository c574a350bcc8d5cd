package adapter

import (
	"context"
	"fmt"
	"sync"

	"github.com/keepmind9/symbot/internal/robot"
	"github.com/keepmind9/symbot/internal/symphony"
)

// readResult is one scripted answer for a ReadDatafeed call
type readResult struct {
	events []symphony.DatafeedEvent
	err    error
}

// createResult is one scripted answer for a CreateDatafeed call
type createResult struct {
	id  string
	err error
}

// sentMessage records one SendMessage call
type sentMessage struct {
	StreamID string
	Markup   string
}

// mockAPI is a scripted in-memory stand-in for the platform client.
// Create and read answers are consumed in order; once the read script is
// exhausted, ReadDatafeed blocks like a real long poll until the context
// is cancelled.
type mockAPI struct {
	mu sync.Mutex

	authErr   error
	authCalls int

	self    *symphony.User
	selfErr error

	createScript []createResult
	createCalls  int

	readScript []readResult
	readCalls  int

	sent []sentMessage

	users       []*symphony.User
	lookupCalls int

	imStreams map[int64]string
	imCalls   int
}

func newMockAPI() *mockAPI {
	return &mockAPI{
		self:      &symphony.User{ID: 999, Username: "symbot"},
		imStreams: make(map[int64]string),
	}
}

func (m *mockAPI) Authenticate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authCalls++
	return m.authErr
}

func (m *mockAPI) WhoAmI(ctx context.Context) (*symphony.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selfErr != nil {
		return nil, m.selfErr
	}
	return m.self, nil
}

func (m *mockAPI) CreateDatafeed(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if len(m.createScript) > 0 {
		r := m.createScript[0]
		m.createScript = m.createScript[1:]
		return r.id, r.err
	}
	return fmt.Sprintf("feed-%d", m.createCalls), nil
}

func (m *mockAPI) ReadDatafeed(ctx context.Context, feedID string) ([]symphony.DatafeedEvent, error) {
	m.mu.Lock()
	if len(m.readScript) > 0 {
		r := m.readScript[0]
		m.readScript = m.readScript[1:]
		m.readCalls++
		m.mu.Unlock()
		return r.events, r.err
	}
	m.readCalls++
	m.mu.Unlock()

	// Script exhausted: behave like a long poll with nothing to say
	<-ctx.Done()
	return nil, ctx.Err()
}

func (m *mockAPI) SendMessage(ctx context.Context, streamID, markup string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMessage{StreamID: streamID, Markup: markup})
	return nil
}

func (m *mockAPI) CreateIM(ctx context.Context, userID int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.imCalls++
	if id, ok := m.imStreams[userID]; ok {
		return id, nil
	}
	id := fmt.Sprintf("im-%d", userID)
	m.imStreams[userID] = id
	return id, nil
}

func (m *mockAPI) LookupUserByEmail(ctx context.Context, email string) (*symphony.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookupCalls++
	for _, u := range m.users {
		if u.EmailAddress == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: email=%s", symphony.ErrUserNotFound, email)
}

func (m *mockAPI) LookupUserByUsername(ctx context.Context, username string) (*symphony.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookupCalls++
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: username=%s", symphony.ErrUserNotFound, username)
}

func (m *mockAPI) LookupUserByID(ctx context.Context, id int64) (*symphony.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookupCalls++
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: uid=%d", symphony.ErrUserNotFound, id)
}

func (m *mockAPI) sentMessages() []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMessage{}, m.sent...)
}

func (m *mockAPI) counts() (creates, reads, lookups, ims int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls, m.readCalls, m.lookupCalls, m.imCalls
}

// testRobot captures everything the adapter hands to the host framework
type testRobot struct {
	robot.Emitter

	mu       sync.Mutex
	received []robot.Message

	receivedCh  chan robot.Message
	connectedCh chan struct{}
	errorCh     chan error
}

func newTestRobot() *testRobot {
	r := &testRobot{
		receivedCh:  make(chan robot.Message, 16),
		connectedCh: make(chan struct{}, 16),
		errorCh:     make(chan error, 16),
	}
	r.On(robot.EventConnected, func(args ...interface{}) {
		r.connectedCh <- struct{}{}
	})
	r.On(robot.EventError, func(args ...interface{}) {
		err, _ := args[0].(error)
		r.errorCh <- err
	})
	return r
}

func (r *testRobot) Receive(msg robot.Message) {
	r.mu.Lock()
	r.received = append(r.received, msg)
	r.mu.Unlock()
	r.receivedCh <- msg
}

func (r *testRobot) messages() []robot.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]robot.Message{}, r.received...)
}
