package app

import (
	"time"

	"github.com/synqhub/corporate-feed/internal/command"
)

// DefaultRunFeedRegenerationConfig returns the default config for the
// background regeneration sweep.
func DefaultRunFeedRegenerationConfig() command.RunFeedRegenerationConfig {
	return command.RunFeedRegenerationConfig{
		StalenessWindow: 2 * time.Hour,
		RetentionDays:   command.DefaultRetentionDays,
	}
}
