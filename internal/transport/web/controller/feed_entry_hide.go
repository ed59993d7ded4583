package controller

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/synqhub/corporate-feed/internal/datasources"
	"github.com/synqhub/corporate-feed/internal/domain"
)

type FeedEntryHide struct {
	Interactions datasources.FeedInteractionStore
}

type feedEntryHideRequest struct {
	Reason string `json:"reason"`
}

// ServeHTTP hides a feed entry. Hiding is one-directional; there is no
// unhide. The optional reason is recorded in the logs only.
func (c FeedEntryHide) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	vars := mux.Vars(r)
	entryID := vars["entry_id"]

	var body feedEntryHideRequest
	if r.Body != nil {
		// The body is optional; a missing or malformed one just means no reason.
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	viewerID := domain.ViewerIDFromContext(ctx)
	if err := c.Interactions.HideFeedEntry(ctx, entryID, viewerID); err != nil {
		logger.ErrorContext(ctx, "unable to hide feed entry", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	logger.InfoContext(ctx, "feed entry hidden",
		"entry_id", entryID, "reason", body.Reason)

	w.WriteHeader(http.StatusNoContent)
}
