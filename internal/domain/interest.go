package domain

import "time"

// InterestKind classifies what an interest weight refers to.
type InterestKind string

const (
	InterestKindTag      InterestKind = "tag"
	InterestKindCategory InterestKind = "category"
)

// UserInterestWeight is an accumulated interest signal for one viewer.
// Weights are written by the interaction-tracking subsystems; the feed
// engine only reads them.
type UserInterestWeight struct {
	ViewerID          string
	Kind              InterestKind
	Value             string
	Score             float64
	InteractionCount  int
	LastInteractionAt time.Time
}

// Key is the lookup key interest weights are indexed by for scoring.
func (w UserInterestWeight) Key() string {
	return InterestKey(w.Kind, w.Value)
}

func InterestKey(kind InterestKind, value string) string {
	return string(kind) + ":" + value
}
