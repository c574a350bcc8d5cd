package symphony

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/keepmind9/symbot/internal/logger"
	"github.com/keepmind9/symbot/pkg/constants"
)

const messageFormatMessageML = "MESSAGEML"

type sendMessageRequest struct {
	Message string `json:"message"`
	Format  string `json:"format"`
}

type streamResponse struct {
	ID string `json:"id"`
}

// SendMessage posts a MessageML body to a stream. The body must already
// be wrapped markup; plain text is the formatter's business, not the
// client's.
func (c *Client) SendMessage(ctx context.Context, streamID, markup string) error {
	if len(markup) > constants.MaxMessageMLLength {
		return fmt.Errorf("message exceeds %d bytes", constants.MaxMessageMLLength)
	}

	req := sendMessageRequest{Message: markup, Format: messageFormatMessageML}
	if err := c.do(ctx, http.MethodPost, "/agent/v1/stream/"+streamID+"/message/create", req, nil); err != nil {
		logger.WithFields(logrus.Fields{
			"stream_id": streamID,
			"error":     err,
		}).Error("failed-to-send-symphony-message")
		return err
	}

	logger.WithField("stream_id", streamID).Info("message-sent-to-symphony")
	return nil
}

// CreateIM opens (or returns the existing) direct-message stream with a
// user. The platform deduplicates, so calling this repeatedly for the
// same user yields the same stream id.
func (c *Client) CreateIM(ctx context.Context, userID int64) (string, error) {
	var resp streamResponse
	if err := c.do(ctx, http.MethodPost, "/pod/v1/im/create", []int64{userID}, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}
