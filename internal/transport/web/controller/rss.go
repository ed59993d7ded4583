package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/feeds"
	"github.com/synqhub/corporate-feed/internal/datasources"
	"github.com/synqhub/corporate-feed/internal/domain"
)

const defaultRSSLimit = 50

// RSS publishes recent official announcements as an RSS feed. It is the one
// unauthenticated read surface; it never exposes personalized entries.
type RSS struct {
	FeedHostname    string
	FeedPath        string
	FeedAuthorName  string
	FeedAuthorEmail string
	Official        datasources.OfficialContentLister
	CacheMaxAge     time.Duration
}

func (c RSS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	feed := &feeds.Feed{
		Title:       "Company Announcements",
		Link:        &feeds.Link{Href: c.FeedHostname + c.FeedPath},
		Description: "Official announcements and company-wide communications",
		Author:      &feeds.Author{Name: c.FeedAuthorName, Email: c.FeedAuthorEmail},
		Created:     time.Now(),
	}

	limit := defaultRSSLimit
	if r.URL.Query().Has("limit") {
		parsed, err := strconv.Atoi(r.URL.Query().Get("limit"))
		if err != nil || parsed < 1 || parsed > 200 {
			logger.ErrorContext(ctx, "unable to parse limit in query string", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	announcements, err := c.Official.ListRecentOfficialContent(ctx, limit)
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch announcements for feed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	for _, a := range announcements {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          a.ID,
			IsPermaLink: "false",
			Title:       a.Title,
			Link:        &feeds.Link{Href: c.FeedHostname + "/posts/" + a.ID},
			Description: a.Category,
			Created:     a.CreatedAt,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		logger.ErrorContext(ctx, "unable to format feed as RSS", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))

	if _, err := w.Write([]byte(rss)); err != nil {
		logger.ErrorContext(ctx, "unable to write feed to response", "error", err)
	}
}
