package datasources

import (
	"context"
	"time"

	"github.com/synqhub/corporate-feed/internal/domain"
)

// FeedRepository is the full persistence surface of the feed engine. The
// store is the only shared resource; the engine holds no in-process state.
type FeedRepository interface {
	FeedEntryIDsLister
	FeedEntryCounter
	FeedItemFetcher
	LatestEntryTimeGetter
	FeedEntryPruner
	FeedEntriesInserter
	FeedContentIDsLister
	FeedInteractionStore
	FeedStatsGetter
	ContentCandidateLister
	OfficialContentLister
	ViewerProfileGetter
	InterestWeightsGetter
	StaleViewerLister
}

type FeedEntryIDsLister interface {
	ListFeedEntryIDs(
		ctx context.Context,
		viewerID string,
		filters domain.FeedFilters,
		options domain.FeedListOptions,
	) ([]string, error)
}

type FeedEntryCounter interface {
	TotalMatchingFeedEntries(ctx context.Context, viewerID string, filters domain.FeedFilters) (int64, error)
}

type FeedItemFetcher interface {
	FetchFeedItemsByID(ctx context.Context, viewerID string, entryIDs []string) ([]domain.FeedItem, error)
}

type LatestEntryTimeGetter interface {
	// LatestFeedEntryTime returns the CreatedAt of the viewer's newest feed
	// entry, or the zero time when the viewer has none.
	LatestFeedEntryTime(ctx context.Context, viewerID string) (time.Time, error)
}

type FeedEntryPruner interface {
	// PruneFeedEntries deletes the viewer's entries created before the cutoff,
	// keeping bookmarked entries when preserveBookmarks is set. Returns the
	// number of rows removed.
	PruneFeedEntries(ctx context.Context, viewerID string, cutoff time.Time, preserveBookmarks bool) (int64, error)
}

type FeedEntriesInserter interface {
	// InsertFeedEntries bulk-writes entries in a single statement. The write
	// ignores rows conflicting on (viewer, content), so concurrent
	// regenerations converge instead of erroring; returns the rows actually
	// inserted.
	InsertFeedEntries(ctx context.Context, entries []domain.FeedEntry) (int64, error)
}

type FeedContentIDsLister interface {
	ListFeedContentIDs(ctx context.Context, viewerID string) ([]string, error)
}

// FeedInteractionStore mutates per-entry interaction flags. All operations
// are scoped to (entry, viewer) and are silent no-ops when the entry does
// not exist or belongs to someone else.
type FeedInteractionStore interface {
	MarkFeedEntryRead(ctx context.Context, entryID, viewerID string) error
	ToggleFeedEntryBookmark(ctx context.Context, entryID, viewerID string) error
	HideFeedEntry(ctx context.Context, entryID, viewerID string) error
}

type FeedStatsGetter interface {
	GetFeedStats(ctx context.Context, viewerID string) (domain.FeedStats, error)
}

type ContentCandidateLister interface {
	// ListPublishedContent returns published content created since the cutoff.
	ListPublishedContent(ctx context.Context, since time.Time) ([]domain.ContentCandidate, error)
}

type OfficialContentLister interface {
	ListRecentOfficialContent(ctx context.Context, limit int) ([]domain.ContentCandidate, error)
}

type ViewerProfileGetter interface {
	GetViewerContext(ctx context.Context, viewerID string) (domain.ViewerContext, error)
}

type InterestWeightsGetter interface {
	// GetInterestWeights returns the viewer's interest weights keyed by
	// domain.InterestKey.
	GetInterestWeights(ctx context.Context, viewerID string) (map[string]float64, error)
}

type StaleViewerLister interface {
	// ListViewersWithStaleFeeds returns viewers whose newest feed entry is
	// older than the cutoff, including viewers with no entries at all.
	ListViewersWithStaleFeeds(ctx context.Context, cutoff time.Time) ([]string, error)
}
