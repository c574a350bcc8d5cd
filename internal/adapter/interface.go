// Package adapter bridges a host chat-bot framework to the Symphony
// platform: it owns the datafeed polling state machine, translates
// inbound events into robot messages, and exposes the outbound send
// surface.
package adapter

import (
	"context"

	"github.com/keepmind9/symbot/internal/symphony"
)

// API is the subset of the platform client the adapter depends on.
// Narrowing the dependency to an interface lets tests drive the state
// machine with a scripted in-memory fake instead of a live pod.
type API interface {
	// Authenticate establishes the session and key-manager tokens
	Authenticate(ctx context.Context) error

	// WhoAmI returns the bot's own user record
	WhoAmI(ctx context.Context) (*symphony.User, error)

	// CreateDatafeed requests a new server-side polling cursor
	CreateDatafeed(ctx context.Context) (string, error)

	// ReadDatafeed issues one long read against a feed
	ReadDatafeed(ctx context.Context, feedID string) ([]symphony.DatafeedEvent, error)

	// SendMessage posts wrapped markup to a stream
	SendMessage(ctx context.Context, streamID, markup string) error

	// CreateIM opens or reuses the direct-message stream with a user
	CreateIM(ctx context.Context, userID int64) (string, error)

	// LookupUserByEmail resolves a user by email address
	LookupUserByEmail(ctx context.Context, email string) (*symphony.User, error)

	// LookupUserByUsername resolves a user by login name
	LookupUserByUsername(ctx context.Context, username string) (*symphony.User, error)

	// LookupUserByID resolves a user by numeric id
	LookupUserByID(ctx context.Context, id int64) (*symphony.User, error)
}

// UserRef identifies a message recipient by any one of the alternate keys
type UserRef struct {
	EmailAddress string
	Username     string
	UserID       int64
}

// Envelope is the addressing context for an outbound send: the target
// room, and optionally the user a reply is directed at
type Envelope struct {
	Room string
	User *UserRef
}
