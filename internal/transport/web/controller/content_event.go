package controller

import (
	"encoding/json"
	"net/http"

	"github.com/synqhub/corporate-feed/internal/command"
	"github.com/synqhub/corporate-feed/internal/domain"
)

// ContentEvent receives content mutation notifications from the content
// subsystem and triggers best-effort feed regeneration. It always answers
// 202 once the payload parses; regeneration failures never surface here.
type ContentEvent struct {
	ContentChangedCmd command.Command[command.ContentChangedRequest, command.Empty]
}

type contentEventRequest struct {
	ContentID string `json:"content_id"`
	AuthorID  string `json:"author_id"`
	Action    string `json:"action"`
}

func (c ContentEvent) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	var body contentEventRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logger.ErrorContext(ctx, "unable to parse content event body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if body.AuthorID == "" || body.ContentID == "" {
		logger.ErrorContext(ctx, "content event missing content_id or author_id")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if _, err := c.ContentChangedCmd.Execute(ctx, command.ContentChangedRequest{
		ContentID: body.ContentID,
		AuthorID:  body.AuthorID,
		Action:    body.Action,
	}); err != nil {
		// The command swallows regeneration failures itself; an error here
		// would be a programming mistake, but never fail the caller.
		logger.ErrorContext(ctx, "content changed command failed", "error", err)
	}

	w.WriteHeader(http.StatusAccepted)
}
