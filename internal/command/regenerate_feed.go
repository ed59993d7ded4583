package command

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/synqhub/corporate-feed/internal/datasources"
	"github.com/synqhub/corporate-feed/internal/domain"
	"github.com/synqhub/corporate-feed/internal/metrics"
)

const (
	// DefaultRetentionDays bounds both pruning and candidate selection.
	DefaultRetentionDays = 30
	// MaxRetentionDays caps caller-supplied retention windows.
	MaxRetentionDays = 90
)

// RegenerateFeedRequest is the request for the RegenerateFeed command.
type RegenerateFeedRequest struct {
	ViewerID          string
	PreserveBookmarks bool
	RetentionDays     int
	// MaxItems caps how many new entries a run may create, keeping the
	// highest-scoring ones. Zero means no cap.
	MaxItems int
}

// RegenerateFeedResult reports what a regeneration run did.
type RegenerateFeedResult struct {
	Created int64
	Pruned  int64
}

// RegenerateFeed rebuilds one viewer's feed: prune aged entries, select
// published candidates within the retention window, drop the viewer's own
// content and content already in the feed, score the rest, and bulk-insert.
// The insert ignores (viewer, content) conflicts, so concurrent runs for the
// same viewer converge instead of producing duplicates.
type RegenerateFeed struct {
	Pruner      datasources.FeedEntryPruner
	Candidates  datasources.ContentCandidateLister
	ExistingIDs datasources.FeedContentIDsLister
	Viewers     datasources.ViewerProfileGetter
	Interests   datasources.InterestWeightsGetter
	Inserter    datasources.FeedEntriesInserter
}

// NewRegenerateFeed creates a properly initialized RegenerateFeed command.
func NewRegenerateFeed(
	pruner datasources.FeedEntryPruner,
	candidates datasources.ContentCandidateLister,
	existingIDs datasources.FeedContentIDsLister,
	viewers datasources.ViewerProfileGetter,
	interests datasources.InterestWeightsGetter,
	inserter datasources.FeedEntriesInserter,
) *RegenerateFeed {
	return &RegenerateFeed{
		Pruner:      pruner,
		Candidates:  candidates,
		ExistingIDs: existingIDs,
		Viewers:     viewers,
		Interests:   interests,
		Inserter:    inserter,
	}
}

func (c *RegenerateFeed) Execute(
	ctx context.Context, req RegenerateFeedRequest,
) (RegenerateFeedResult, error) {
	started := time.Now()
	result, err := c.execute(ctx, req)

	metrics.FeedRegenerationDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.FeedRegenerations.WithLabelValues("failure").Inc()
	} else {
		metrics.FeedRegenerations.WithLabelValues("success").Inc()
		metrics.FeedEntriesCreated.Add(float64(result.Created))
		metrics.FeedEntriesPruned.Add(float64(result.Pruned))
	}

	return result, err
}

func (c *RegenerateFeed) execute(
	ctx context.Context, req RegenerateFeedRequest,
) (RegenerateFeedResult, error) {
	logger := domain.LoggerFromContext(ctx)

	retentionDays := req.RetentionDays
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	if retentionDays > MaxRetentionDays {
		retentionDays = MaxRetentionDays
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	pruned, err := c.Pruner.PruneFeedEntries(ctx, req.ViewerID, cutoff, req.PreserveBookmarks)
	if err != nil {
		return RegenerateFeedResult{}, fmt.Errorf("pruning feed entries: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return RegenerateFeedResult{Pruned: pruned}, err
	}

	candidates, err := c.Candidates.ListPublishedContent(ctx, cutoff)
	if err != nil {
		return RegenerateFeedResult{Pruned: pruned}, fmt.Errorf("listing content candidates: %w", err)
	}

	existingIDs, err := c.ExistingIDs.ListFeedContentIDs(ctx, req.ViewerID)
	if err != nil {
		return RegenerateFeedResult{Pruned: pruned}, fmt.Errorf("listing existing feed content: %w", err)
	}
	existing := make(map[string]struct{}, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = struct{}{}
	}

	viewer, err := c.Viewers.GetViewerContext(ctx, req.ViewerID)
	if err != nil {
		return RegenerateFeedResult{Pruned: pruned}, fmt.Errorf("fetching viewer context: %w", err)
	}

	interestWeights, err := c.Interests.GetInterestWeights(ctx, req.ViewerID)
	if err != nil {
		return RegenerateFeedResult{Pruned: pruned}, fmt.Errorf("fetching interest weights: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return RegenerateFeedResult{Pruned: pruned}, err
	}

	now := time.Now()
	entries := make([]domain.FeedEntry, 0, len(candidates))
	for _, candidate := range candidates {
		// Viewers never see their own content in their own feed.
		if candidate.AuthorID == req.ViewerID {
			continue
		}
		if _, alreadyInFeed := existing[candidate.ID]; alreadyInFeed {
			continue
		}

		scored := domain.ScoreContent(viewer, candidate, interestWeights)
		entries = append(entries, domain.FeedEntry{
			ID:             uuid.NewString(),
			ViewerID:       req.ViewerID,
			ContentID:      candidate.ID,
			AuthorID:       candidate.AuthorID,
			Priority:       scored.Priority,
			RelevanceScore: scored.Score,
			Reason:         scored.Reason,
			DepartmentID:   candidate.DepartmentID,
			TeamID:         candidate.TeamID,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	if req.MaxItems > 0 && len(entries) > req.MaxItems {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].RelevanceScore > entries[j].RelevanceScore
		})
		entries = entries[:req.MaxItems]
	}

	created, err := c.Inserter.InsertFeedEntries(ctx, entries)
	if err != nil {
		return RegenerateFeedResult{Pruned: pruned}, fmt.Errorf("inserting feed entries: %w", err)
	}

	logger.InfoContext(ctx, "feed regenerated",
		"viewer_id", req.ViewerID, "created", created, "pruned", pruned)

	return RegenerateFeedResult{Created: created, Pruned: pruned}, nil
}
