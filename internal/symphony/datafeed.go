package symphony

import (
	"context"
	"net/http"
)

// EventTypeMessage is the datafeed event kind carrying a chat message.
// Other kinds (presence, room lifecycle) come down the same feed and are
// ignored by the adapter.
const EventTypeMessage = "MESSAGE"

// DatafeedEvent is one decoded unit from a datafeed read
type DatafeedEvent struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Timestamp  int64  `json:"timestamp"` // milliseconds since epoch
	StreamID   string `json:"streamId"`
	FromUserID int64  `json:"fromUserId"`
	Message    string `json:"message"` // MessageML body, delivered verbatim
}

type datafeedCreateResponse struct {
	ID string `json:"id"`
}

// CreateDatafeed requests a new server-side polling cursor. The platform
// answers 400 for the documented transient creation failure; callers
// retry within their attempt budget.
func (c *Client) CreateDatafeed(ctx context.Context) (string, error) {
	var resp datafeedCreateResponse
	if err := c.do(ctx, http.MethodPost, "/agent/v1/datafeed/create", nil, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// ReadDatafeed issues one long read against the feed. The call blocks
// until the server returns a batch or its hold window elapses; an empty
// window is a nil slice, not an error. A 400 means the feed id is stale
// and the caller must create a fresh feed.
func (c *Client) ReadDatafeed(ctx context.Context, feedID string) ([]DatafeedEvent, error) {
	var events []DatafeedEvent
	if err := c.doLong(ctx, http.MethodGet, "/agent/v1/datafeed/"+feedID+"/read", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}
