package symphony

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// User is the canonical platform user record. Username, email address
// and numeric id are alternate keys to the same record.
type User struct {
	ID           int64  `json:"id"`
	EmailAddress string `json:"emailAddress"`
	Username     string `json:"username"`
	DisplayName  string `json:"displayName"`
}

// WhoAmI returns the bot's own user record for the current session,
// used to drop the bot's own messages from the inbound feed
func (c *Client) WhoAmI(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/pod/v2/sessioninfo", nil, &u); err != nil {
		return nil, fmt.Errorf("failed to fetch session info: %w", err)
	}
	return &u, nil
}

// LookupUserByEmail resolves a user by email address
func (c *Client) LookupUserByEmail(ctx context.Context, email string) (*User, error) {
	return c.lookupUser(ctx, "email", email)
}

// LookupUserByUsername resolves a user by login name
func (c *Client) LookupUserByUsername(ctx context.Context, username string) (*User, error) {
	return c.lookupUser(ctx, "username", username)
}

// LookupUserByID resolves a user by numeric id
func (c *Client) LookupUserByID(ctx context.Context, id int64) (*User, error) {
	return c.lookupUser(ctx, "uid", strconv.FormatInt(id, 10))
}

// lookupUser queries the pod user directory by one alternate key.
// A 404 from the pod means no matching user and maps to ErrUserNotFound;
// other failures propagate as-is. Single-shot, no retries.
func (c *Client) lookupUser(ctx context.Context, key, value string) (*User, error) {
	var u User
	path := "/pod/v2/user?" + key + "=" + url.QueryEscape(value)
	if err := c.do(ctx, http.MethodGet, path, nil, &u); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s=%s", ErrUserNotFound, key, value)
		}
		return nil, err
	}
	if u.ID == 0 {
		// Some pod versions answer 200 with an empty body for a miss
		return nil, fmt.Errorf("%w: %s=%s", ErrUserNotFound, key, value)
	}
	return &u, nil
}
