package controller

import (
	"encoding/json"
	"net/http"

	"github.com/synqhub/corporate-feed/internal/command"
	"github.com/synqhub/corporate-feed/internal/domain"
)

type FeedList struct {
	GetFeedCmd command.Command[command.GetFeedRequest, domain.PagedResult[domain.FeedItem]]
}

type FeedListResponse struct {
	Data     []domain.FeedItem `json:"data"`
	Metadata FeedListMetadata  `json:"metadata"`
}

type FeedListMetadata struct {
	TotalRows  int64 `json:"total_rows"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func (c FeedList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	req, err := getFeedRequestFromQuery(domain.ViewerIDFromContext(ctx), r.URL.Query())
	if err != nil {
		logger.ErrorContext(ctx, "unable to parse feed query string", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	result, err := c.GetFeedCmd.Execute(ctx, req)
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch feed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(FeedListResponse{
		Data: result.Items,
		Metadata: FeedListMetadata{
			TotalRows:  result.TotalCount,
			Page:       result.Page,
			PageSize:   result.PageSize,
			TotalPages: result.TotalPages,
		},
	}); err != nil {
		logger.ErrorContext(ctx, "unable to write feed to response", "error", err)
	}
}
