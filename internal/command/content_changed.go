package command

import (
	"context"
	"time"

	"github.com/synqhub/corporate-feed/internal/domain"
)

// DefaultContentChangedTimeout bounds side-effect regeneration so a slow
// store cannot stall the content mutation that triggered it.
const DefaultContentChangedTimeout = 30 * time.Second

// ContentChangedRequest describes a content mutation elsewhere in the
// platform that should refresh the author's feed.
type ContentChangedRequest struct {
	ContentID string
	AuthorID  string
	Action    string
}

// ContentChanged triggers feed regeneration as a side effect of content
// creation, update, or deletion. This path must never fail the triggering
// operation: regeneration runs under a bounded timeout and every error is
// logged and swallowed.
type ContentChanged struct {
	Regenerate Command[RegenerateFeedRequest, RegenerateFeedResult]
	Timeout    time.Duration
}

// NewContentChanged creates a properly initialized ContentChanged command.
func NewContentChanged(
	regenerate Command[RegenerateFeedRequest, RegenerateFeedResult],
	timeout time.Duration,
) *ContentChanged {
	if timeout <= 0 {
		timeout = DefaultContentChangedTimeout
	}
	return &ContentChanged{Regenerate: regenerate, Timeout: timeout}
}

func (c *ContentChanged) Execute(ctx context.Context, req ContentChangedRequest) (Empty, error) {
	logger := domain.LoggerFromContext(ctx)

	regenCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.Timeout)
	defer cancel()

	result, err := c.Regenerate.Execute(regenCtx, RegenerateFeedRequest{
		ViewerID:          req.AuthorID,
		PreserveBookmarks: true,
	})
	if err != nil {
		logger.WarnContext(ctx, "side-effect feed regeneration failed",
			"viewer_id", req.AuthorID, "content_id", req.ContentID,
			"action", req.Action, "error", err)
		return Empty{}, nil
	}

	logger.DebugContext(ctx, "feed regenerated after content change",
		"viewer_id", req.AuthorID, "content_id", req.ContentID,
		"action", req.Action, "created", result.Created)

	return Empty{}, nil
}
