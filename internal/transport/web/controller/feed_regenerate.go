package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/synqhub/corporate-feed/internal/command"
	"github.com/synqhub/corporate-feed/internal/domain"
)

// FeedRegenerate handles explicit regeneration requests. Unlike the
// side-effect path, errors here propagate to the caller.
type FeedRegenerate struct {
	RegenerateCmd command.Command[command.RegenerateFeedRequest, command.RegenerateFeedResult]
}

type FeedRegenerateResponse struct {
	Created int64 `json:"created"`
	Pruned  int64 `json:"pruned"`
}

func (c FeedRegenerate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)
	q := r.URL.Query()

	req := command.RegenerateFeedRequest{
		ViewerID:          domain.ViewerIDFromContext(ctx),
		PreserveBookmarks: true,
	}

	if q.Has("preserve_bookmarks") {
		req.PreserveBookmarks = q.Get("preserve_bookmarks") == "true"
	}

	if q.Has("retention_days") {
		days, err := strconv.Atoi(q.Get("retention_days"))
		if err != nil {
			logger.ErrorContext(ctx, "unable to parse retention_days", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		req.RetentionDays = days
	}

	if q.Has("max_items") {
		maxItems, err := strconv.Atoi(q.Get("max_items"))
		if err != nil {
			logger.ErrorContext(ctx, "unable to parse max_items", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		req.MaxItems = maxItems
	}

	result, err := c.RegenerateCmd.Execute(ctx, req)
	if err != nil {
		logger.ErrorContext(ctx, "unable to regenerate feed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(FeedRegenerateResponse{
		Created: result.Created,
		Pruned:  result.Pruned,
	}); err != nil {
		logger.ErrorContext(ctx, "unable to write regeneration result to response", "error", err)
	}
}
