package controller

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/synqhub/corporate-feed/internal/datasources"
	"github.com/synqhub/corporate-feed/internal/domain"
)

type FeedEntryMarkRead struct {
	Interactions datasources.FeedInteractionStore
}

func (c FeedEntryMarkRead) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entryID := vars["entry_id"]

	err := c.Interactions.MarkFeedEntryRead(r.Context(), entryID, domain.ViewerIDFromContext(r.Context()))
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to mark feed entry read", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
