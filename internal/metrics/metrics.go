// Package metrics exposes the feed engine's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FeedRegenerations counts regeneration runs by outcome ("success" or
	// "failure").
	FeedRegenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feed_regenerations_total",
		Help: "Number of feed regeneration runs, partitioned by outcome.",
	}, []string{"outcome"})

	FeedEntriesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feed_entries_created_total",
		Help: "Number of feed entries created by regeneration.",
	})

	FeedEntriesPruned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feed_entries_pruned_total",
		Help: "Number of feed entries removed by the retention prune.",
	})

	FeedRegenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "feed_regeneration_duration_seconds",
		Help:    "Wall-clock duration of feed regeneration runs.",
		Buckets: prometheus.DefBuckets,
	})
)
