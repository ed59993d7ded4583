package router

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/synqhub/corporate-feed/internal/command"
	"github.com/synqhub/corporate-feed/internal/datasources"
	"github.com/synqhub/corporate-feed/internal/domain"
	"github.com/synqhub/corporate-feed/internal/transport/web/controller"
)

func MakeRouter(
	repo datasources.FeedRepository,
	getFeed command.Command[command.GetFeedRequest, domain.PagedResult[domain.FeedItem]],
	regenerateFeed command.Command[command.RegenerateFeedRequest, command.RegenerateFeedResult],
	contentChanged command.Command[command.ContentChangedRequest, command.Empty],
	rssFeedBaseURL, rssFeedAuthorName, rssFeedAuthorEmail string,
	rssCacheMaxAge time.Duration,
	authMiddleware func(http.Handler) http.Handler,
) (http.Handler, error) {
	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.Use(authMiddleware)

	r.Handle("/v1/feed", requireAuthMiddleware(controller.FeedList{
		GetFeedCmd: getFeed,
	})).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/feed/regenerate", requireAuthMiddleware(controller.FeedRegenerate{
		RegenerateCmd: regenerateFeed,
	})).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/v1/feed/stats", requireAuthMiddleware(controller.FeedStats{
		Stats: repo,
	})).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/feed/{entry_id}/read", requireAuthMiddleware(controller.FeedEntryMarkRead{
		Interactions: repo,
	})).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/v1/feed/{entry_id}/bookmark", requireAuthMiddleware(controller.FeedEntryBookmarkToggle{
		Interactions: repo,
	})).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/v1/feed/{entry_id}/hide", requireAuthMiddleware(controller.FeedEntryHide{
		Interactions: repo,
	})).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/v1/content-events", requireAuthMiddleware(controller.ContentEvent{
		ContentChangedCmd: contentChanged,
	})).Methods(http.MethodPost, http.MethodOptions)

	rssFeed := controller.RSS{
		FeedHostname:    rssFeedBaseURL,
		FeedPath:        "/rss",
		FeedAuthorName:  rssFeedAuthorName,
		FeedAuthorEmail: rssFeedAuthorEmail,
		Official:        repo,
		CacheMaxAge:     rssCacheMaxAge,
	}
	r.Handle(rssFeed.FeedPath, rssFeed).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r, nil
}
