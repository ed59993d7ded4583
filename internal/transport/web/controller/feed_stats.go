package controller

import (
	"encoding/json"
	"net/http"

	"github.com/synqhub/corporate-feed/internal/datasources"
	"github.com/synqhub/corporate-feed/internal/domain"
)

type FeedStats struct {
	Stats datasources.FeedStatsGetter
}

func (c FeedStats) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	stats, err := c.Stats.GetFeedStats(ctx, domain.ViewerIDFromContext(ctx))
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch feed stats", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		logger.ErrorContext(ctx, "unable to write feed stats to response", "error", err)
	}
}
