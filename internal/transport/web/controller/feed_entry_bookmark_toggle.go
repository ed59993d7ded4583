package controller

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/synqhub/corporate-feed/internal/datasources"
	"github.com/synqhub/corporate-feed/internal/domain"
)

type FeedEntryBookmarkToggle struct {
	Interactions datasources.FeedInteractionStore
}

func (c FeedEntryBookmarkToggle) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entryID := vars["entry_id"]

	err := c.Interactions.ToggleFeedEntryBookmark(r.Context(), entryID, domain.ViewerIDFromContext(r.Context()))
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to toggle feed entry bookmark", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
