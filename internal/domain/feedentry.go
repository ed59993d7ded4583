package domain

import (
	"fmt"
	"time"
)

// FeedPriority is the coarse display bucket of a feed entry. Higher values
// sort first in the default ordering.
type FeedPriority int

const (
	FeedPriorityLow FeedPriority = iota
	FeedPriorityNormal
	FeedPriorityHigh
	FeedPriorityExecutive
)

func (p FeedPriority) String() string {
	switch p {
	case FeedPriorityExecutive:
		return "executive"
	case FeedPriorityHigh:
		return "high"
	case FeedPriorityNormal:
		return "normal"
	default:
		return "low"
	}
}

func (p FeedPriority) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// FeedReason is the dominant signal that put a content item in a viewer's feed.
type FeedReason string

const (
	FeedReasonOfficial       FeedReason = "official"
	FeedReasonSameDepartment FeedReason = "same_department"
	FeedReasonTagInterest    FeedReason = "tag_interest"
	FeedReasonRecommended    FeedReason = "recommended"
)

// FeedEntry is one materialized (viewer, content) pairing.
// IsRead/IsBookmarked/IsHidden move only forward through the interaction
// operations; there is no unhide.
type FeedEntry struct {
	ID             string
	ViewerID       string
	ContentID      string
	AuthorID       string
	Priority       FeedPriority
	RelevanceScore float64
	Reason         FeedReason
	IsRead         bool
	IsBookmarked   bool
	IsHidden       bool
	DepartmentID   string
	TeamID         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ViewedAt       *time.Time
}

// FeedItem is a feed entry hydrated with the content metadata callers render.
type FeedItem struct {
	ID             string       `json:"id"`
	ContentID      string       `json:"content_id"`
	Title          string       `json:"title"`
	ContentType    ContentType  `json:"content_type"`
	Category       string       `json:"category,omitempty"`
	Tags           []string     `json:"tags,omitempty"`
	AuthorID       string       `json:"author_id"`
	AuthorName     string       `json:"author_name"`
	Priority       FeedPriority `json:"priority"`
	RelevanceScore float64      `json:"relevance_score"`
	Reason         FeedReason   `json:"reason"`
	IsRead         bool         `json:"is_read"`
	IsBookmarked   bool         `json:"is_bookmarked"`
	LikeCount      int          `json:"like_count"`
	CommentCount   int          `json:"comment_count"`
	PublishedAt    time.Time    `json:"published_at"`
}

// FeedStats are per-viewer feed counters. Hidden entries are excluded from
// query results but still counted here.
type FeedStats struct {
	TotalItems      int64 `json:"total_items"`
	UnreadCount     int64 `json:"unread_count"`
	BookmarkedCount int64 `json:"bookmarked_count"`
	HiddenCount     int64 `json:"hidden_count"`
}

// FeedSortMode is the closed set of supported orderings.
type FeedSortMode string

const (
	// FeedSortPriority orders by priority, then relevance score, then recency.
	FeedSortPriority   FeedSortMode = "priority"
	FeedSortDate       FeedSortMode = "date"
	FeedSortPopularity FeedSortMode = "popularity"
)

// ParseFeedSortMode maps a query-string value to a sort mode. The empty
// string means the default priority ordering; anything else unrecognised is
// an error rather than a silent fallback.
func ParseFeedSortMode(s string) (FeedSortMode, error) {
	switch s {
	case "", string(FeedSortPriority):
		return FeedSortPriority, nil
	case string(FeedSortDate):
		return FeedSortDate, nil
	case string(FeedSortPopularity):
		return FeedSortPopularity, nil
	default:
		return "", fmt.Errorf("unrecognised feed sort mode: %s", s)
	}
}

// FeedType narrows a feed to entries included for a particular reason.
type FeedType string

const (
	FeedTypeMixed      FeedType = "mixed"
	FeedTypeOfficial   FeedType = "official"
	FeedTypeDepartment FeedType = "department"
	FeedTypeInterests  FeedType = "interests"
)

func ParseFeedType(s string) (FeedType, error) {
	switch s {
	case "", string(FeedTypeMixed):
		return FeedTypeMixed, nil
	case string(FeedTypeOfficial):
		return FeedTypeOfficial, nil
	case string(FeedTypeDepartment):
		return FeedTypeDepartment, nil
	case string(FeedTypeInterests):
		return FeedTypeInterests, nil
	default:
		return "", fmt.Errorf("unrecognised feed type: %s", s)
	}
}

// Reason returns the inclusion reason a feed type narrows to, or the empty
// reason for the mixed feed.
func (t FeedType) Reason() FeedReason {
	switch t {
	case FeedTypeOfficial:
		return FeedReasonOfficial
	case FeedTypeDepartment:
		return FeedReasonSameDepartment
	case FeedTypeInterests:
		return FeedReasonTagInterest
	default:
		return ""
	}
}

// FeedFilters are AND-combined predicates over a viewer's visible entries.
// Zero values mean "no restriction".
type FeedFilters struct {
	ContentTypes   []ContentType
	OnlyUnread     bool
	OnlyBookmarked bool
	CreatedAfter   time.Time
	CreatedBefore  time.Time
	Tags           []string
	Categories     []string
	Reason         FeedReason
}

type FeedListOptions struct {
	Sort           FeedSortMode
	Page, PageSize int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ClampPagination normalises out-of-range pagination instead of rejecting it.
func ClampPagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

// PagedResult is one page of items plus the totals callers page through.
type PagedResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func NewPagedResult[T any](items []T, totalCount int64, page, pageSize int) PagedResult[T] {
	totalPages := int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	return PagedResult[T]{
		Items:      items,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
