package command

import (
	"context"
	"fmt"
	"time"

	"github.com/synqhub/corporate-feed/internal/datasources"
	"github.com/synqhub/corporate-feed/internal/domain"
)

// DefaultStalenessWindow is how old a viewer's newest entry may be before a
// read rebuilds the feed.
const DefaultStalenessWindow = 2 * time.Hour

// GetFeedRequest is the request for the GetFeed command. Page and PageSize
// are clamped, never rejected.
type GetFeedRequest struct {
	ViewerID string
	FeedType domain.FeedType
	Filters  domain.FeedFilters
	Sort     domain.FeedSortMode
	Page     int
	PageSize int
	// Refresh forces regeneration before querying; a failure then propagates
	// instead of being served around.
	Refresh bool
}

// GetFeed serves one page of a viewer's feed, rebuilding it first when it is
// stale. A staleness-triggered rebuild is best-effort: if it fails, the
// previous (possibly stale) entry set is returned and the error only logged.
type GetFeed struct {
	LatestEntry     datasources.LatestEntryTimeGetter
	Regenerate      Command[RegenerateFeedRequest, RegenerateFeedResult]
	Lister          datasources.FeedEntryIDsLister
	Counter         datasources.FeedEntryCounter
	Fetcher         datasources.FeedItemFetcher
	StalenessWindow time.Duration
}

// NewGetFeed creates a properly initialized GetFeed command.
func NewGetFeed(
	latestEntry datasources.LatestEntryTimeGetter,
	regenerate Command[RegenerateFeedRequest, RegenerateFeedResult],
	lister datasources.FeedEntryIDsLister,
	counter datasources.FeedEntryCounter,
	fetcher datasources.FeedItemFetcher,
	stalenessWindow time.Duration,
) *GetFeed {
	if stalenessWindow <= 0 {
		stalenessWindow = DefaultStalenessWindow
	}
	return &GetFeed{
		LatestEntry:     latestEntry,
		Regenerate:      regenerate,
		Lister:          lister,
		Counter:         counter,
		Fetcher:         fetcher,
		StalenessWindow: stalenessWindow,
	}
}

func (c *GetFeed) Execute(
	ctx context.Context, req GetFeedRequest,
) (domain.PagedResult[domain.FeedItem], error) {
	logger := domain.LoggerFromContext(ctx)

	page, pageSize := domain.ClampPagination(req.Page, req.PageSize)

	if req.Refresh {
		if _, err := c.Regenerate.Execute(ctx, RegenerateFeedRequest{
			ViewerID:          req.ViewerID,
			PreserveBookmarks: true,
		}); err != nil {
			return domain.PagedResult[domain.FeedItem]{}, fmt.Errorf("regenerating feed: %w", err)
		}
	} else {
		stale, err := c.feedIsStale(ctx, req.ViewerID)
		if err != nil {
			return domain.PagedResult[domain.FeedItem]{}, err
		}
		if stale {
			if _, err := c.Regenerate.Execute(ctx, RegenerateFeedRequest{
				ViewerID:          req.ViewerID,
				PreserveBookmarks: true,
			}); err != nil {
				// Serve the stale set; the next read retries.
				logger.WarnContext(ctx, "staleness-triggered feed regeneration failed",
					"viewer_id", req.ViewerID, "error", err)
			}
		}
	}

	filters := req.Filters
	filters.Reason = req.FeedType.Reason()

	entryIDs, err := c.Lister.ListFeedEntryIDs(ctx, req.ViewerID, filters, domain.FeedListOptions{
		Sort:     req.Sort,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return domain.PagedResult[domain.FeedItem]{}, fmt.Errorf("listing feed entry IDs: %w", err)
	}

	totalCount, err := c.Counter.TotalMatchingFeedEntries(ctx, req.ViewerID, filters)
	if err != nil {
		return domain.PagedResult[domain.FeedItem]{}, fmt.Errorf("counting feed entries: %w", err)
	}

	items, err := c.Fetcher.FetchFeedItemsByID(ctx, req.ViewerID, entryIDs)
	if err != nil {
		return domain.PagedResult[domain.FeedItem]{}, fmt.Errorf("fetching feed items: %w", err)
	}

	return domain.NewPagedResult(items, totalCount, page, pageSize), nil
}

func (c *GetFeed) feedIsStale(ctx context.Context, viewerID string) (bool, error) {
	latest, err := c.LatestEntry.LatestFeedEntryTime(ctx, viewerID)
	if err != nil {
		return false, fmt.Errorf("checking feed staleness: %w", err)
	}
	if latest.IsZero() {
		return true, nil
	}
	return time.Since(latest) > c.StalenessWindow, nil
}
