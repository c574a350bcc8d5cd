package adapter

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/keepmind9/symbot/internal/logger"
	"github.com/keepmind9/symbot/internal/robot"
	"github.com/keepmind9/symbot/internal/symphony"
)

// State is the poller's position in its lifecycle
type State string

const (
	StateIdle         State = "idle"          // created, not started
	StateConnecting   State = "connecting"    // authenticating with the pod
	StateFeedCreating State = "feed_creating" // requesting a datafeed id
	StatePolling      State = "polling"       // draining the feed
	StateStopped      State = "stopped"       // permanently stopped
)

// Poller owns the long-poll loop against a single datafeed. There is at
// most one active feed and one outstanding read per poller; the loop is
// the only goroutine touching the feed id, so no locking is needed
// around it beyond the state accessor.
//
// Failure handling: a stale or failed feed (the platform's 400) is
// self-healed by creating a fresh feed, announced to the host through an
// error event. Failed cycles count against the connect-attempt budget;
// exhausting it invokes the shutdown hook exactly once and stops the
// poller for good. A successful read refills the budget. Non-400 read
// failures follow the same bounded-recreate path, which keeps a
// misbehaving backend from wedging the adapter in a tight error loop.
type Poller struct {
	api        API
	robot      robot.Robot
	dispatch   func(symphony.DatafeedEvent)
	maxAttempt int
	retryDelay time.Duration
	shutdown   func()

	shutdownOnce sync.Once
	ctx          context.Context
	cancel       context.CancelFunc
	done         chan struct{}
	stopped      atomic.Bool

	mu      sync.Mutex
	state   State
	started bool
}

func newPoller(api API, r robot.Robot, dispatch func(symphony.DatafeedEvent),
	maxAttempt int, retryDelay time.Duration, shutdown func()) *Poller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{
		api:        api,
		robot:      r,
		dispatch:   dispatch,
		maxAttempt: maxAttempt,
		retryDelay: retryDelay,
		shutdown:   shutdown,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
		state:      StateIdle,
	}
}

// Start launches the poll loop. It returns immediately; progress is
// observable through the robot's lifecycle events. Calling Start more
// than once is a no-op.
func (p *Poller) Start() {
	p.mu.Lock()
	if p.started || p.stopped.Load() {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go p.run()
}

// Close stops the poller: it transitions any state to Stopped, cancels
// an in-flight read, and waits for the loop to exit, so no events are
// dispatched after Close returns. Close is idempotent.
func (p *Poller) Close() {
	p.stopped.Store(true)
	p.cancel()

	p.mu.Lock()
	started := p.started
	p.setStateLocked(StateStopped)
	p.mu.Unlock()

	if started {
		<-p.done
	}
}

// State returns the poller's current lifecycle state
func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Poller) setState(s State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setStateLocked(s)
}

func (p *Poller) setStateLocked(s State) {
	if p.state == StateStopped {
		return
	}
	p.state = s
}

// run is the poll loop. It authenticates, then alternates between feed
// creation and long reads until the poller is closed or the attempt
// budget runs out.
func (p *Poller) run() {
	defer close(p.done)
	defer p.setState(StateStopped)

	p.setState(StateConnecting)
	if err := p.api.Authenticate(p.ctx); err != nil {
		// Fatal for this run; authentication retry policy belongs to
		// the caller, not the poll loop
		logger.WithField("error", err).Error("symphony-authentication-failed")
		p.robot.Emit(robot.EventError, err)
		return
	}

	var selfID int64
	if self, err := p.api.WhoAmI(p.ctx); err == nil {
		selfID = self.ID
	} else if p.ctx.Err() == nil {
		logger.WithField("error", err).Warn("session-info-unavailable-echo-suppression-disabled")
	}

	feedID := ""
	attempts := 0

	for p.ctx.Err() == nil {
		if feedID == "" {
			p.setState(StateFeedCreating)
			id, err := p.api.CreateDatafeed(p.ctx)
			if err != nil {
				if p.ctx.Err() != nil {
					return
				}
				attempts++
				logger.WithFields(logrus.Fields{
					"attempt": attempts,
					"max":     p.maxAttempt,
					"error":   err,
				}).Error("datafeed-creation-failed")
				p.robot.Emit(robot.EventError, err)
				if attempts >= p.maxAttempt {
					p.giveUp()
					return
				}
				continue
			}
			feedID = id
			logger.WithField("feed_id", feedID).Info("datafeed-created")
			p.setState(StatePolling)
			p.robot.Emit(robot.EventConnected)
			continue
		}

		events, err := p.api.ReadDatafeed(p.ctx, feedID)
		if err != nil {
			if p.ctx.Err() != nil {
				return
			}
			attempts++
			logger.WithFields(logrus.Fields{
				"feed_id":   feedID,
				"attempt":   attempts,
				"max":       p.maxAttempt,
				"transient": symphony.IsTransient(err),
				"error":     err,
			}).Warn("datafeed-read-failed")
			p.robot.Emit(robot.EventError, err)
			if attempts >= p.maxAttempt {
				p.giveUp()
				return
			}
			// Recreate the feed on the next cycle; 400 means the feed
			// is stale, and non-400 failures take the same bounded path
			feedID = ""
			p.wait()
			continue
		}

		attempts = 0
		for _, ev := range events {
			if p.stopped.Load() {
				return
			}
			if ev.Type != symphony.EventTypeMessage {
				continue
			}
			if selfID != 0 && ev.FromUserID == selfID {
				continue
			}
			p.dispatch(ev)
		}
	}
}

// giveUp stops polling permanently and invokes the shutdown hook
// exactly once
func (p *Poller) giveUp() {
	logger.WithField("max", p.maxAttempt).Error("symphony-connect-attempts-exhausted")
	p.stopped.Store(true)
	p.shutdownOnce.Do(p.shutdown)
}

// wait sleeps for the retry delay, or returns early on cancellation
func (p *Poller) wait() {
	if p.retryDelay <= 0 {
		return
	}
	t := time.NewTimer(p.retryDelay)
	defer t.Stop()
	select {
	case <-p.ctx.Done():
	case <-t.C:
	}
}
