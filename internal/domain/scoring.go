package domain

import "slices"

// Relevance model weights. Each term is capped independently and the final
// score is clamped to [0, 1].
const (
	departmentAffinityWeight = 0.3
	interestWeightUnit       = 0.1
	interestAffinityCap      = 0.4
	officialBoost            = 0.2
	engagementUnit           = 0.01
	engagementCap            = 0.1
)

// Priority thresholds on the relevance score.
const (
	highPriorityThreshold   = 0.8
	normalPriorityThreshold = 0.5
)

// ViewerContext is what the scorer needs to know about a viewer.
type ViewerContext struct {
	ID            string
	DepartmentIDs []string
}

// ScoreResult is the scorer's verdict on one (viewer, candidate) pair.
type ScoreResult struct {
	Score    float64
	Priority FeedPriority
	Reason   FeedReason
}

// ScoreContent computes the relevance score, priority bucket, and inclusion
// reason for a candidate in a viewer's feed. Pure and deterministic; interest
// weights are keyed by InterestKey. A candidate with no matching signals
// scores 0.0 / low / recommended and remains eligible — exclusion is the
// regenerator's call, not the scorer's.
func ScoreContent(
	viewer ViewerContext,
	candidate ContentCandidate,
	interestWeights map[string]float64,
) ScoreResult {
	sameDepartment := candidate.DepartmentID != "" &&
		slices.Contains(viewer.DepartmentIDs, candidate.DepartmentID)

	var tagInterest float64
	for _, tag := range candidate.Tags {
		tagInterest += interestWeights[InterestKey(InterestKindTag, tag)]
	}

	official := candidate.IsOfficial || candidate.ContentType == ContentTypeAnnouncement

	var score float64
	if sameDepartment {
		score += departmentAffinityWeight
	}
	score += min(tagInterest*interestWeightUnit, interestAffinityCap)
	if official {
		score += officialBoost
	}
	score += min(float64(candidate.EngagementCount())*engagementUnit, engagementCap)
	score = min(score, 1.0)

	return ScoreResult{
		Score:    score,
		Priority: scorePriority(candidate, score),
		Reason:   scoreReason(candidate, sameDepartment, tagInterest > 0),
	}
}

func scorePriority(candidate ContentCandidate, score float64) FeedPriority {
	if candidate.IsOfficial && candidate.ContentType == ContentTypeAnnouncement {
		return FeedPriorityExecutive
	}
	if candidate.IsPinned || score > highPriorityThreshold {
		return FeedPriorityHigh
	}
	if score > normalPriorityThreshold {
		return FeedPriorityNormal
	}
	return FeedPriorityLow
}

func scoreReason(candidate ContentCandidate, sameDepartment, tagInterest bool) FeedReason {
	if candidate.IsOfficial {
		return FeedReasonOfficial
	}
	if sameDepartment {
		return FeedReasonSameDepartment
	}
	if tagInterest {
		return FeedReasonTagInterest
	}
	return FeedReasonRecommended
}
