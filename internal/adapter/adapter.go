package adapter

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/keepmind9/symbot/internal/core"
	"github.com/keepmind9/symbot/internal/logger"
	"github.com/keepmind9/symbot/internal/messageml"
	"github.com/keepmind9/symbot/internal/robot"
	"github.com/keepmind9/symbot/internal/symphony"
	"github.com/keepmind9/symbot/pkg/constants"
)

// Options tunes the adapter lifecycle
type Options struct {
	// FailConnectAfter is the number of failed connect attempts
	// (datafeed creation or read cycles) tolerated before the adapter
	// gives up and calls ShutdownFunc
	FailConnectAfter int

	// RetryDelay is the pause between failed poll cycles
	RetryDelay time.Duration

	// ShutdownFunc runs exactly once when the connect-attempt budget is
	// exhausted. The default terminates the process.
	ShutdownFunc func()
}

// Adapter is the public lifecycle surface bridging a Robot to the
// platform. Run and Close bracket one authenticated session with at
// most one active datafeed; the send methods may be called concurrently
// with the poll loop, though ordering across concurrent sends is only
// as good as the transport's.
type Adapter struct {
	api      API
	robot    robot.Robot
	resolver *Resolver
	poller   *Poller

	mu        sync.Mutex
	imStreams map[int64]string // userID -> direct-message stream id
}

// New wires an adapter from a robot capability and a platform client
func New(r robot.Robot, api API, opts Options) *Adapter {
	if opts.FailConnectAfter <= 0 {
		opts.FailConnectAfter = constants.DefaultFailConnectAfter
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = constants.DefaultRetryDelay
	}
	if opts.ShutdownFunc == nil {
		opts.ShutdownFunc = func() {
			logger.GetLogger().Fatal("symphony-backend-unreachable-shutting-down")
		}
	}

	a := &Adapter{
		api:       api,
		robot:     r,
		resolver:  newResolver(api),
		imStreams: make(map[int64]string),
	}
	a.poller = newPoller(api, r, a.receive, opts.FailConnectAfter, opts.RetryDelay, opts.ShutdownFunc)
	return a
}

// NewFromConfig validates the connection parameters, builds the REST
// client and wires an adapter. Validation happens before any network
// activity: a missing parameter fails here with "<name> undefined".
func NewFromConfig(r robot.Robot, cfg *core.Config, opts Options) (*Adapter, error) {
	if err := core.ValidateSymphony(&cfg.Symphony); err != nil {
		return nil, err
	}

	client, err := symphony.NewClient(symphony.Config{
		Host:       cfg.Symphony.Host,
		PublicKey:  cfg.Symphony.PublicKey,
		PrivateKey: cfg.Symphony.PrivateKey,
		Passphrase: cfg.Symphony.Passphrase,
	})
	if err != nil {
		return nil, err
	}

	if opts.FailConnectAfter == 0 {
		opts.FailConnectAfter = cfg.Adapter.FailConnectAfter
	}
	if opts.RetryDelay == 0 {
		opts.RetryDelay = cfg.Adapter.RetryDelayDuration()
	}
	return New(r, client, opts), nil
}

// Run starts the adapter: authenticate, create a datafeed, poll. It
// returns immediately; the host observes progress through the
// `connected` and `error` events.
func (a *Adapter) Run() {
	a.poller.Start()
}

// Close stops polling and releases the session. Idempotent; no message
// reaches the robot after Close returns.
func (a *Adapter) Close() {
	a.poller.Close()
}

// State reports the poll loop's lifecycle state
func (a *Adapter) State() State {
	return a.poller.State()
}

// Send formats text and posts it to the envelope's room
func (a *Adapter) Send(ctx context.Context, env Envelope, text string) error {
	return a.api.SendMessage(ctx, env.Room, messageml.Format(text))
}

// Reply addresses the envelope's user with a mention ahead of the
// escaped text. Without a user in the envelope it behaves like Send.
func (a *Adapter) Reply(ctx context.Context, env Envelope, text string) error {
	if env.User == nil {
		return a.Send(ctx, env, text)
	}

	email := env.User.EmailAddress
	if email == "" {
		u, err := a.resolveRef(ctx, env.User)
		if err != nil {
			return fmt.Errorf("failed to resolve reply recipient: %w", err)
		}
		email = u.EmailAddress
	}

	return a.api.SendMessage(ctx, env.Room, messageml.FormatReply(email, text))
}

// SendDirectMessageToUsername sends text to the user's direct-message stream
func (a *Adapter) SendDirectMessageToUsername(ctx context.Context, username, text string) error {
	u, err := a.resolver.ByUsername(ctx, username)
	if err != nil {
		return err
	}
	return a.sendDirect(ctx, u, text)
}

// SendDirectMessageToEmail sends text to the user's direct-message stream
func (a *Adapter) SendDirectMessageToEmail(ctx context.Context, email, text string) error {
	u, err := a.resolver.ByEmail(ctx, email)
	if err != nil {
		return err
	}
	return a.sendDirect(ctx, u, text)
}

// SendDirectMessageToUserID sends text to the user's direct-message stream
func (a *Adapter) SendDirectMessageToUserID(ctx context.Context, id int64, text string) error {
	u, err := a.resolver.ByID(ctx, id)
	if err != nil {
		return err
	}
	return a.sendDirect(ctx, u, text)
}

func (a *Adapter) sendDirect(ctx context.Context, u *symphony.User, text string) error {
	streamID, err := a.directStream(ctx, u.ID)
	if err != nil {
		return fmt.Errorf("failed to open direct-message stream: %w", err)
	}
	return a.api.SendMessage(ctx, streamID, messageml.Format(text))
}

// directStream returns the cached direct-message stream for a user,
// creating it on first use
func (a *Adapter) directStream(ctx context.Context, userID int64) (string, error) {
	a.mu.Lock()
	streamID, ok := a.imStreams[userID]
	a.mu.Unlock()
	if ok {
		return streamID, nil
	}

	streamID, err := a.api.CreateIM(ctx, userID)
	if err != nil {
		return "", err
	}

	a.mu.Lock()
	a.imStreams[userID] = streamID
	a.mu.Unlock()
	return streamID, nil
}

// resolveRef resolves whichever alternate key the reference carries
func (a *Adapter) resolveRef(ctx context.Context, ref *UserRef) (*symphony.User, error) {
	switch {
	case ref.EmailAddress != "":
		return a.resolver.ByEmail(ctx, ref.EmailAddress)
	case ref.Username != "":
		return a.resolver.ByUsername(ctx, ref.Username)
	case ref.UserID != 0:
		return a.resolver.ByID(ctx, ref.UserID)
	default:
		return nil, fmt.Errorf("user reference carries no key")
	}
}

// receive translates one inbound platform event into a robot message
func (a *Adapter) receive(ev symphony.DatafeedEvent) {
	a.robot.Receive(robot.Message{
		StreamID:  ev.StreamID,
		UserID:    strconv.FormatInt(ev.FromUserID, 10),
		Text:      ev.Message,
		Timestamp: time.UnixMilli(ev.Timestamp),
	})
}
