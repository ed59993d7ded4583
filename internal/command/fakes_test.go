package command

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/synqhub/corporate-feed/internal/domain"
)

func testContext() context.Context {
	return domain.ContextWithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeFeedStore implements the narrow datasource interfaces the commands
// consume. Unset functions return zero values.
type fakeFeedStore struct {
	pruneFn           func(ctx context.Context, viewerID string, cutoff time.Time, preserveBookmarks bool) (int64, error)
	listPublishedFn   func(ctx context.Context, since time.Time) ([]domain.ContentCandidate, error)
	listContentIDsFn  func(ctx context.Context, viewerID string) ([]string, error)
	viewerContextFn   func(ctx context.Context, viewerID string) (domain.ViewerContext, error)
	interestWeightsFn func(ctx context.Context, viewerID string) (map[string]float64, error)
	insertFn          func(ctx context.Context, entries []domain.FeedEntry) (int64, error)
	latestEntryFn     func(ctx context.Context, viewerID string) (time.Time, error)
	listEntryIDsFn    func(ctx context.Context, viewerID string, filters domain.FeedFilters, options domain.FeedListOptions) ([]string, error)
	totalFn           func(ctx context.Context, viewerID string, filters domain.FeedFilters) (int64, error)
	fetchItemsFn      func(ctx context.Context, viewerID string, entryIDs []string) ([]domain.FeedItem, error)
	staleViewersFn    func(ctx context.Context, cutoff time.Time) ([]string, error)
}

func (f *fakeFeedStore) PruneFeedEntries(
	ctx context.Context, viewerID string, cutoff time.Time, preserveBookmarks bool,
) (int64, error) {
	if f.pruneFn == nil {
		return 0, nil
	}
	return f.pruneFn(ctx, viewerID, cutoff, preserveBookmarks)
}

func (f *fakeFeedStore) ListPublishedContent(
	ctx context.Context, since time.Time,
) ([]domain.ContentCandidate, error) {
	if f.listPublishedFn == nil {
		return nil, nil
	}
	return f.listPublishedFn(ctx, since)
}

func (f *fakeFeedStore) ListFeedContentIDs(ctx context.Context, viewerID string) ([]string, error) {
	if f.listContentIDsFn == nil {
		return nil, nil
	}
	return f.listContentIDsFn(ctx, viewerID)
}

func (f *fakeFeedStore) GetViewerContext(
	ctx context.Context, viewerID string,
) (domain.ViewerContext, error) {
	if f.viewerContextFn == nil {
		return domain.ViewerContext{ID: viewerID}, nil
	}
	return f.viewerContextFn(ctx, viewerID)
}

func (f *fakeFeedStore) GetInterestWeights(
	ctx context.Context, viewerID string,
) (map[string]float64, error) {
	if f.interestWeightsFn == nil {
		return nil, nil
	}
	return f.interestWeightsFn(ctx, viewerID)
}

func (f *fakeFeedStore) InsertFeedEntries(
	ctx context.Context, entries []domain.FeedEntry,
) (int64, error) {
	if f.insertFn == nil {
		return int64(len(entries)), nil
	}
	return f.insertFn(ctx, entries)
}

func (f *fakeFeedStore) LatestFeedEntryTime(ctx context.Context, viewerID string) (time.Time, error) {
	if f.latestEntryFn == nil {
		return time.Time{}, nil
	}
	return f.latestEntryFn(ctx, viewerID)
}

func (f *fakeFeedStore) ListFeedEntryIDs(
	ctx context.Context,
	viewerID string,
	filters domain.FeedFilters,
	options domain.FeedListOptions,
) ([]string, error) {
	if f.listEntryIDsFn == nil {
		return nil, nil
	}
	return f.listEntryIDsFn(ctx, viewerID, filters, options)
}

func (f *fakeFeedStore) TotalMatchingFeedEntries(
	ctx context.Context, viewerID string, filters domain.FeedFilters,
) (int64, error) {
	if f.totalFn == nil {
		return 0, nil
	}
	return f.totalFn(ctx, viewerID, filters)
}

func (f *fakeFeedStore) FetchFeedItemsByID(
	ctx context.Context, viewerID string, entryIDs []string,
) ([]domain.FeedItem, error) {
	if f.fetchItemsFn == nil {
		return nil, nil
	}
	return f.fetchItemsFn(ctx, viewerID, entryIDs)
}

func (f *fakeFeedStore) ListViewersWithStaleFeeds(
	ctx context.Context, cutoff time.Time,
) ([]string, error) {
	if f.staleViewersFn == nil {
		return nil, nil
	}
	return f.staleViewersFn(ctx, cutoff)
}

// fakeRegenerate stands in for the RegenerateFeed command and records calls.
type fakeRegenerate struct {
	executeFn func(ctx context.Context, req RegenerateFeedRequest) (RegenerateFeedResult, error)
	calls     []RegenerateFeedRequest
}

func (f *fakeRegenerate) Execute(
	ctx context.Context, req RegenerateFeedRequest,
) (RegenerateFeedResult, error) {
	f.calls = append(f.calls, req)
	if f.executeFn == nil {
		return RegenerateFeedResult{}, nil
	}
	return f.executeFn(ctx, req)
}
