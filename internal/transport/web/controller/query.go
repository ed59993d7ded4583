package controller

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/synqhub/corporate-feed/internal/command"
	"github.com/synqhub/corporate-feed/internal/domain"
)

const dateLayout = "2006-01-02"

// getFeedRequestFromQuery parses everything the feed list endpoint accepts.
// Unknown enum values (feed type, sort mode, content type) are errors;
// out-of-range pagination is clamped downstream, so only unparseable numbers
// fail here.
func getFeedRequestFromQuery(viewerID string, q url.Values) (command.GetFeedRequest, error) {
	feedType, err := domain.ParseFeedType(q.Get("feed_type"))
	if err != nil {
		return command.GetFeedRequest{}, err
	}

	sort, err := domain.ParseFeedSortMode(q.Get("sort"))
	if err != nil {
		return command.GetFeedRequest{}, err
	}

	page, pageSize, err := parsePagination(q)
	if err != nil {
		return command.GetFeedRequest{}, err
	}

	filters, err := feedFiltersFromQuery(q)
	if err != nil {
		return command.GetFeedRequest{}, err
	}

	return command.GetFeedRequest{
		ViewerID: viewerID,
		FeedType: feedType,
		Filters:  filters,
		Sort:     sort,
		Page:     page,
		PageSize: pageSize,
		Refresh:  q.Get("refresh") == "true",
	}, nil
}

func parsePagination(q url.Values) (page, pageSize int, err error) {
	page = 1
	pageSize = domain.DefaultPageSize

	if q.Has("page") {
		p, err := strconv.ParseInt(q.Get("page"), 10, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("unable to parse page from query: %w", err)
		}
		page = int(p)
	}

	if q.Has("page_size") {
		ps, err := strconv.ParseInt(q.Get("page_size"), 10, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("unable to parse page size from query: %w", err)
		}
		pageSize = int(ps)
	}

	return page, pageSize, nil
}

func feedFiltersFromQuery(q url.Values) (domain.FeedFilters, error) {
	var filters domain.FeedFilters

	if q.Has("filter_types") {
		for _, raw := range strings.Split(q.Get("filter_types"), ",") {
			contentType, err := domain.ParseContentType(raw)
			if err != nil {
				return domain.FeedFilters{}, err
			}
			filters.ContentTypes = append(filters.ContentTypes, contentType)
		}
	}

	filters.OnlyUnread = q.Get("only_unread") == "true"
	filters.OnlyBookmarked = q.Get("only_bookmarked") == "true"

	if q.Has("from_date") {
		from, err := time.Parse(dateLayout, q.Get("from_date"))
		if err != nil {
			return domain.FeedFilters{}, fmt.Errorf("unable to parse from_date: %w", err)
		}
		filters.CreatedAfter = from
	}

	if q.Has("to_date") {
		to, err := time.Parse(dateLayout, q.Get("to_date"))
		if err != nil {
			return domain.FeedFilters{}, fmt.Errorf("unable to parse to_date: %w", err)
		}
		// Inclusive through the end of the named day.
		filters.CreatedBefore = to.AddDate(0, 0, 1).Add(-time.Millisecond)
	}

	if q.Has("tags") {
		filters.Tags = strings.Split(q.Get("tags"), ",")
	}

	if q.Has("categories") {
		filters.Categories = strings.Split(q.Get("categories"), ",")
	}

	return filters, nil
}
