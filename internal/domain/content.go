package domain

import (
	"fmt"
	"time"
)

// ContentType is the closed set of corporate content kinds.
type ContentType string

const (
	ContentTypePost         ContentType = "post"
	ContentTypeArticle      ContentType = "article"
	ContentTypeAnnouncement ContentType = "announcement"
	ContentTypePolicy       ContentType = "policy"
	ContentTypeFAQ          ContentType = "faq"
	ContentTypeHowTo        ContentType = "howto"
	ContentTypeNews         ContentType = "news"
)

var validContentTypes = []ContentType{
	ContentTypePost,
	ContentTypeArticle,
	ContentTypeAnnouncement,
	ContentTypePolicy,
	ContentTypeFAQ,
	ContentTypeHowTo,
	ContentTypeNews,
}

func ParseContentType(s string) (ContentType, error) {
	for _, t := range validContentTypes {
		if s == string(t) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unrecognised content type: %s", s)
}

// ContentCandidate is the read-only projection of a published content item
// used for scoring and hydration. Only published items are ever selected as
// candidates; status filtering happens in the store.
type ContentCandidate struct {
	ID           string
	AuthorID     string
	DepartmentID string
	TeamID       string
	Title        string
	ContentType  ContentType
	Category     string
	Tags         []string
	IsOfficial   bool
	IsPinned     bool
	LikeCount    int
	CommentCount int
	CreatedAt    time.Time
}

// EngagementCount is the combined like and comment count used by the
// engagement scoring term and the popularity sort.
func (c ContentCandidate) EngagementCount() int {
	return c.LikeCount + c.CommentCount
}
