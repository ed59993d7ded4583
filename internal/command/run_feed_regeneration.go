package command

import (
	"context"
	"fmt"
	"time"

	"github.com/synqhub/corporate-feed/internal/datasources"
	"github.com/synqhub/corporate-feed/internal/domain"
)

// RunFeedRegenerationRequest is the request for the RunFeedRegeneration
// command. This command takes no parameters beyond context.
type RunFeedRegenerationRequest struct{}

// RunFeedRegenerationConfig holds configuration for the background sweep.
type RunFeedRegenerationConfig struct {
	// StalenessWindow decides which viewers' feeds count as stale.
	StalenessWindow time.Duration
	// RetentionDays is passed through to each regeneration run.
	RetentionDays int
}

// RunFeedRegeneration rebuilds the feed of every viewer whose newest entry
// is older than the staleness window, so feeds stay warm without read
// traffic. One viewer failing does not stop the sweep.
type RunFeedRegeneration struct {
	StaleViewers datasources.StaleViewerLister
	Regenerate   Command[RegenerateFeedRequest, RegenerateFeedResult]
	Config       RunFeedRegenerationConfig
}

// NewRunFeedRegeneration creates a properly initialized RunFeedRegeneration command.
func NewRunFeedRegeneration(
	staleViewers datasources.StaleViewerLister,
	regenerate Command[RegenerateFeedRequest, RegenerateFeedResult],
	config RunFeedRegenerationConfig,
) *RunFeedRegeneration {
	if config.StalenessWindow <= 0 {
		config.StalenessWindow = DefaultStalenessWindow
	}
	if config.RetentionDays <= 0 {
		config.RetentionDays = DefaultRetentionDays
	}
	return &RunFeedRegeneration{
		StaleViewers: staleViewers,
		Regenerate:   regenerate,
		Config:       config,
	}
}

func (c *RunFeedRegeneration) Execute(
	ctx context.Context, _ RunFeedRegenerationRequest,
) (Empty, error) {
	logger := domain.LoggerFromContext(ctx)

	cutoff := time.Now().Add(-c.Config.StalenessWindow)
	viewerIDs, err := c.StaleViewers.ListViewersWithStaleFeeds(ctx, cutoff)
	if err != nil {
		return Empty{}, fmt.Errorf("listing viewers with stale feeds: %w", err)
	}

	if len(viewerIDs) == 0 {
		logger.InfoContext(ctx, "no viewers have stale feeds")
		return Empty{}, nil
	}

	logger.InfoContext(ctx, "starting feed regeneration sweep", "viewer_count", len(viewerIDs))

	var successCount, failCount int
	for _, viewerID := range viewerIDs {
		if err := ctx.Err(); err != nil {
			return Empty{}, err
		}

		if _, err := c.Regenerate.Execute(ctx, RegenerateFeedRequest{
			ViewerID:          viewerID,
			PreserveBookmarks: true,
			RetentionDays:     c.Config.RetentionDays,
		}); err != nil {
			logger.ErrorContext(ctx, "failed to regenerate feed for viewer",
				"viewer_id", viewerID, "error", err)
			failCount++
			continue
		}
		successCount++
	}

	logger.InfoContext(ctx, "feed regeneration sweep complete",
		"success_count", successCount, "fail_count", failCount)

	return Empty{}, nil
}
