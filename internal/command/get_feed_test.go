package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synqhub/corporate-feed/internal/domain"
)

func TestGetFeed_Execute_FreshFeedSkipsRegeneration(t *testing.T) {
	store := &fakeFeedStore{
		latestEntryFn: func(_ context.Context, _ string) (time.Time, error) {
			return time.Now().Add(-10 * time.Minute), nil
		},
		listEntryIDsFn: func(_ context.Context, _ string, _ domain.FeedFilters, _ domain.FeedListOptions) ([]string, error) {
			return []string{"entry-1"}, nil
		},
		totalFn: func(_ context.Context, _ string, _ domain.FeedFilters) (int64, error) {
			return 1, nil
		},
		fetchItemsFn: func(_ context.Context, _ string, entryIDs []string) ([]domain.FeedItem, error) {
			return []domain.FeedItem{{ID: "entry-1", Title: "Quarterly results"}}, nil
		},
	}
	regen := &fakeRegenerate{}

	cmd := NewGetFeed(store, regen, store, store, store, 2*time.Hour)
	result, err := cmd.Execute(testContext(), GetFeedRequest{ViewerID: "viewer-1"})
	require.NoError(t, err)

	assert.Empty(t, regen.calls)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Quarterly results", result.Items[0].Title)
	assert.Equal(t, int64(1), result.TotalCount)
	assert.Equal(t, 1, result.TotalPages)
}

func TestGetFeed_Execute_StaleFeedRegenerates(t *testing.T) {
	cases := []struct {
		name   string
		latest time.Time
	}{
		{name: "old_entries", latest: time.Now().Add(-3 * time.Hour)},
		{name: "no_entries_at_all", latest: time.Time{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeFeedStore{
				latestEntryFn: func(_ context.Context, _ string) (time.Time, error) {
					return tc.latest, nil
				},
			}
			regen := &fakeRegenerate{}

			cmd := NewGetFeed(store, regen, store, store, store, 2*time.Hour)
			_, err := cmd.Execute(testContext(), GetFeedRequest{ViewerID: "viewer-1"})
			require.NoError(t, err)

			require.Len(t, regen.calls, 1)
			assert.Equal(t, "viewer-1", regen.calls[0].ViewerID)
			assert.True(t, regen.calls[0].PreserveBookmarks)
		})
	}
}

func TestGetFeed_Execute_StaleRegenerationFailureServesStale(t *testing.T) {
	store := &fakeFeedStore{
		latestEntryFn: func(_ context.Context, _ string) (time.Time, error) {
			return time.Now().Add(-3 * time.Hour), nil
		},
		listEntryIDsFn: func(_ context.Context, _ string, _ domain.FeedFilters, _ domain.FeedListOptions) ([]string, error) {
			return []string{"entry-1"}, nil
		},
		totalFn: func(_ context.Context, _ string, _ domain.FeedFilters) (int64, error) {
			return 1, nil
		},
		fetchItemsFn: func(_ context.Context, _ string, _ []string) ([]domain.FeedItem, error) {
			return []domain.FeedItem{{ID: "entry-1"}}, nil
		},
	}
	regen := &fakeRegenerate{
		executeFn: func(_ context.Context, _ RegenerateFeedRequest) (RegenerateFeedResult, error) {
			return RegenerateFeedResult{}, errors.New("store unavailable")
		},
	}

	cmd := NewGetFeed(store, regen, store, store, store, 2*time.Hour)
	result, err := cmd.Execute(testContext(), GetFeedRequest{ViewerID: "viewer-1"})

	require.NoError(t, err)
	require.Len(t, regen.calls, 1)
	assert.Len(t, result.Items, 1)
}

func TestGetFeed_Execute_ExplicitRefreshFailurePropagates(t *testing.T) {
	store := &fakeFeedStore{}
	regen := &fakeRegenerate{
		executeFn: func(_ context.Context, _ RegenerateFeedRequest) (RegenerateFeedResult, error) {
			return RegenerateFeedResult{}, errors.New("store unavailable")
		},
	}

	cmd := NewGetFeed(store, regen, store, store, store, 2*time.Hour)
	_, err := cmd.Execute(testContext(), GetFeedRequest{ViewerID: "viewer-1", Refresh: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "regenerating feed")
}

func TestGetFeed_Execute_PaginationClampedAndPassedThrough(t *testing.T) {
	var gotOptions domain.FeedListOptions
	store := &fakeFeedStore{
		latestEntryFn: func(_ context.Context, _ string) (time.Time, error) {
			return time.Now(), nil
		},
		listEntryIDsFn: func(_ context.Context, _ string, _ domain.FeedFilters, options domain.FeedListOptions) ([]string, error) {
			gotOptions = options
			return nil, nil
		},
	}

	cmd := NewGetFeed(store, &fakeRegenerate{}, store, store, store, 2*time.Hour)
	result, err := cmd.Execute(testContext(), GetFeedRequest{
		ViewerID: "viewer-1",
		Page:     -2,
		PageSize: 9999,
		Sort:     domain.FeedSortDate,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, gotOptions.Page)
	assert.Equal(t, domain.DefaultPageSize, gotOptions.PageSize)
	assert.Equal(t, domain.FeedSortDate, gotOptions.Sort)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, domain.DefaultPageSize, result.PageSize)
}

func TestGetFeed_Execute_FeedTypeNarrowsReason(t *testing.T) {
	var gotFilters domain.FeedFilters
	store := &fakeFeedStore{
		latestEntryFn: func(_ context.Context, _ string) (time.Time, error) {
			return time.Now(), nil
		},
		listEntryIDsFn: func(_ context.Context, _ string, filters domain.FeedFilters, _ domain.FeedListOptions) ([]string, error) {
			gotFilters = filters
			return nil, nil
		},
	}

	cmd := NewGetFeed(store, &fakeRegenerate{}, store, store, store, 2*time.Hour)
	_, err := cmd.Execute(testContext(), GetFeedRequest{
		ViewerID: "viewer-1",
		FeedType: domain.FeedTypeDepartment,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.FeedReasonSameDepartment, gotFilters.Reason)
}
