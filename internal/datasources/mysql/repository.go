package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/synqhub/corporate-feed/internal/datasources"
	"github.com/synqhub/corporate-feed/internal/domain"
)

var _ datasources.FeedRepository = (*Repository)(nil)

const statusPublished = "published"

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListFeedEntryIDs(
	ctx context.Context,
	viewerID string,
	filters domain.FeedFilters,
	options domain.FeedListOptions,
) ([]string, error) {
	sb := sqlbuilder.Select("fe.id")
	sb.From("feed_entries fe")
	sb.JoinWithOption(sqlbuilder.InnerJoin, "posts p", "p.id = fe.post_id")
	sb.Where(buildFeedEntryConditions(sb, viewerID, filters)...)
	sb.OrderBy(feedEntryOrderings(options.Sort)...)
	sb.Offset((options.Page - 1) * options.PageSize)
	sb.Limit(options.PageSize)

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running feed entries query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entryIDs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning feed entry ID: %w", err)
		}
		entryIDs = append(entryIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating feed entry rows: %w", err)
	}

	return entryIDs, nil
}

func (r *Repository) TotalMatchingFeedEntries(
	ctx context.Context,
	viewerID string,
	filters domain.FeedFilters,
) (int64, error) {
	sb := sqlbuilder.Select("COUNT(*)")
	sb.From("feed_entries fe")
	sb.JoinWithOption(sqlbuilder.InnerJoin, "posts p", "p.id = fe.post_id")
	sb.Where(buildFeedEntryConditions(sb, viewerID, filters)...)

	query, args := sb.Build()

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting matching feed entries: %w", err)
	}
	return count, nil
}

// buildFeedEntryConditions assembles the WHERE clause shared by the list and
// count queries. Hidden entries are always excluded.
func buildFeedEntryConditions(
	sb *sqlbuilder.SelectBuilder, viewerID string, filters domain.FeedFilters,
) []string {
	conds := []string{
		sb.Equal("fe.user_id", viewerID),
		"fe.is_hidden = FALSE",
	}

	if filters.Reason != "" {
		conds = append(conds, sb.Equal("fe.reason", string(filters.Reason)))
	}

	if len(filters.ContentTypes) > 0 {
		types := make([]interface{}, 0, len(filters.ContentTypes))
		for _, t := range filters.ContentTypes {
			types = append(types, string(t))
		}
		conds = append(conds, sb.In("p.post_type", types...))
	}

	if filters.OnlyUnread {
		conds = append(conds, "fe.is_read = FALSE")
	}

	if filters.OnlyBookmarked {
		conds = append(conds, "fe.is_bookmarked = TRUE")
	}

	if !filters.CreatedAfter.IsZero() {
		conds = append(conds, sb.GreaterEqualThan("fe.created_at", filters.CreatedAfter))
	}

	if !filters.CreatedBefore.IsZero() {
		conds = append(conds, sb.LessEqualThan("fe.created_at", filters.CreatedBefore))
	}

	if len(filters.Tags) > 0 {
		tags := make([]interface{}, 0, len(filters.Tags))
		for _, tag := range filters.Tags {
			tags = append(tags, tag)
		}
		conds = append(conds,
			"EXISTS (SELECT 1 FROM post_tags pt WHERE pt.post_id = fe.post_id AND "+
				sb.In("pt.tag", tags...)+")")
	}

	if len(filters.Categories) > 0 {
		categories := make([]interface{}, 0, len(filters.Categories))
		for _, category := range filters.Categories {
			categories = append(categories, category)
		}
		conds = append(conds, sb.In("p.category", categories...))
	}

	return conds
}

func feedEntryOrderings(sort domain.FeedSortMode) []string {
	switch sort {
	case domain.FeedSortDate:
		return []string{"fe.created_at DESC"}
	case domain.FeedSortPopularity:
		return []string{"(p.like_count + p.comment_count) DESC", "fe.created_at DESC"}
	default:
		return []string{"fe.priority DESC", "fe.relevance_score DESC", "fe.created_at DESC"}
	}
}

func (r *Repository) FetchFeedItemsByID(
	ctx context.Context,
	viewerID string,
	entryIDs []string,
) ([]domain.FeedItem, error) {
	if len(entryIDs) == 0 {
		return []domain.FeedItem{}, nil
	}

	ids := make([]interface{}, 0, len(entryIDs))
	for _, id := range entryIDs {
		ids = append(ids, id)
	}

	sb := sqlbuilder.Select(
		"fe.id", "fe.post_id", "p.title", "p.post_type", "p.category",
		"p.author_id", "e.full_name",
		"fe.priority", "fe.relevance_score", "fe.reason",
		"fe.is_read", "fe.is_bookmarked",
		"p.like_count", "p.comment_count", "p.created_at",
		"(SELECT GROUP_CONCAT(pt.tag ORDER BY pt.tag) FROM post_tags pt WHERE pt.post_id = fe.post_id)",
	)
	sb.From("feed_entries fe")
	sb.JoinWithOption(sqlbuilder.InnerJoin, "posts p", "p.id = fe.post_id")
	sb.JoinWithOption(sqlbuilder.InnerJoin, "employees e", "e.id = p.author_id")
	sb.Where(sb.Equal("fe.user_id", viewerID), sb.In("fe.id", ids...))

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching feed items by ID: %w", err)
	}
	defer func() { _ = rows.Close() }()

	itemMap := make(map[string]domain.FeedItem, len(entryIDs))
	for rows.Next() {
		var (
			item     domain.FeedItem
			priority int
			reason   string
			category sql.NullString
			tags     sql.NullString
		)
		if err := rows.Scan(
			&item.ID, &item.ContentID, &item.Title, &item.ContentType, &category,
			&item.AuthorID, &item.AuthorName,
			&priority, &item.RelevanceScore, &reason,
			&item.IsRead, &item.IsBookmarked,
			&item.LikeCount, &item.CommentCount, &item.PublishedAt,
			&tags,
		); err != nil {
			return nil, fmt.Errorf("scanning feed item: %w", err)
		}
		item.Priority = domain.FeedPriority(priority)
		item.Reason = domain.FeedReason(reason)
		item.Category = category.String
		if tags.Valid && tags.String != "" {
			item.Tags = strings.Split(tags.String, ",")
		}
		itemMap[item.ID] = item
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating feed item rows: %w", err)
	}

	// Preserve the ordering the ID list was built with.
	items := make([]domain.FeedItem, 0, len(entryIDs))
	for _, id := range entryIDs {
		if item, exists := itemMap[id]; exists {
			items = append(items, item)
		}
	}

	return items, nil
}

func (r *Repository) LatestFeedEntryTime(ctx context.Context, viewerID string) (time.Time, error) {
	var latest sql.NullTime
	err := r.db.QueryRowContext(ctx,
		"SELECT MAX(created_at) FROM feed_entries WHERE user_id = ?", viewerID,
	).Scan(&latest)
	if err != nil {
		return time.Time{}, fmt.Errorf("fetching latest feed entry time: %w", err)
	}
	if !latest.Valid {
		return time.Time{}, nil
	}
	return latest.Time, nil
}

func (r *Repository) PruneFeedEntries(
	ctx context.Context, viewerID string, cutoff time.Time, preserveBookmarks bool,
) (int64, error) {
	del := sqlbuilder.NewDeleteBuilder()
	del.DeleteFrom("feed_entries")
	conds := []string{
		del.Equal("user_id", viewerID),
		del.LessThan("created_at", cutoff),
	}
	if preserveBookmarks {
		conds = append(conds, "is_bookmarked = FALSE")
	}
	del.Where(conds...)

	query, args := del.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("pruning feed entries: %w", err)
	}
	pruned, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading pruned row count: %w", err)
	}
	return pruned, nil
}

func (r *Repository) InsertFeedEntries(ctx context.Context, entries []domain.FeedEntry) (int64, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	ib := sqlbuilder.NewInsertBuilder()
	ib.InsertIgnoreInto("feed_entries")
	ib.Cols(
		"id", "user_id", "post_id", "author_id",
		"priority", "relevance_score", "reason",
		"is_read", "is_bookmarked", "is_hidden",
		"department_id", "team_id", "created_at", "updated_at",
	)
	for _, e := range entries {
		ib.Values(
			e.ID, e.ViewerID, e.ContentID, e.AuthorID,
			int(e.Priority), e.RelevanceScore, string(e.Reason),
			e.IsRead, e.IsBookmarked, e.IsHidden,
			nullString(e.DepartmentID), nullString(e.TeamID), e.CreatedAt, e.UpdatedAt,
		)
	}

	query, args := ib.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk inserting feed entries: %w", err)
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading inserted row count: %w", err)
	}
	return inserted, nil
}

func (r *Repository) ListFeedContentIDs(ctx context.Context, viewerID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT post_id FROM feed_entries WHERE user_id = ?", viewerID)
	if err != nil {
		return nil, fmt.Errorf("listing feed content IDs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	contentIDs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning feed content ID: %w", err)
		}
		contentIDs = append(contentIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating feed content ID rows: %w", err)
	}

	return contentIDs, nil
}

// MarkFeedEntryRead sets is_read exactly once but bumps viewed_at on every
// call. updated_at is assigned before is_read so the IF sees the old value;
// MySQL applies SET clauses left to right.
func (r *Repository) MarkFeedEntryRead(ctx context.Context, entryID, viewerID string) error {
	now := time.Now()
	_, err := r.db.ExecContext(ctx,
		`UPDATE feed_entries
		 SET updated_at = IF(is_read, updated_at, ?), is_read = TRUE, viewed_at = ?
		 WHERE id = ? AND user_id = ?`,
		now, now, entryID, viewerID)
	if err != nil {
		return fmt.Errorf("marking feed entry read: %w", err)
	}
	return nil
}

func (r *Repository) ToggleFeedEntryBookmark(ctx context.Context, entryID, viewerID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE feed_entries
		 SET is_bookmarked = NOT is_bookmarked, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		time.Now(), entryID, viewerID)
	if err != nil {
		return fmt.Errorf("toggling feed entry bookmark: %w", err)
	}
	return nil
}

func (r *Repository) HideFeedEntry(ctx context.Context, entryID, viewerID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE feed_entries
		 SET is_hidden = TRUE, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		time.Now(), entryID, viewerID)
	if err != nil {
		return fmt.Errorf("hiding feed entry: %w", err)
	}
	return nil
}

func (r *Repository) GetFeedStats(ctx context.Context, viewerID string) (domain.FeedStats, error) {
	var stats domain.FeedStats
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(is_read = FALSE), 0),
		        COALESCE(SUM(is_bookmarked), 0),
		        COALESCE(SUM(is_hidden), 0)
		 FROM feed_entries WHERE user_id = ?`,
		viewerID,
	).Scan(&stats.TotalItems, &stats.UnreadCount, &stats.BookmarkedCount, &stats.HiddenCount)
	if err != nil {
		return domain.FeedStats{}, fmt.Errorf("fetching feed stats: %w", err)
	}
	return stats, nil
}

func (r *Repository) ListPublishedContent(
	ctx context.Context, since time.Time,
) ([]domain.ContentCandidate, error) {
	sb := contentCandidateSelect()
	sb.Where(
		sb.Equal("p.status", statusPublished),
		sb.GreaterThan("p.created_at", since),
	)
	sb.OrderBy("p.created_at DESC")

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing published content: %w", err)
	}
	return scanContentCandidates(rows)
}

func (r *Repository) ListRecentOfficialContent(
	ctx context.Context, limit int,
) ([]domain.ContentCandidate, error) {
	sb := contentCandidateSelect()
	sb.Where(
		sb.Equal("p.status", statusPublished),
		"p.is_official = TRUE",
	)
	sb.OrderBy("p.created_at DESC")
	sb.Limit(limit)

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing official content: %w", err)
	}
	return scanContentCandidates(rows)
}

func contentCandidateSelect() *sqlbuilder.SelectBuilder {
	sb := sqlbuilder.Select(
		"p.id", "p.author_id", "p.department_id", "p.team_id",
		"p.title", "p.post_type", "p.category",
		"p.is_official", "p.is_pinned",
		"p.like_count", "p.comment_count", "p.created_at",
		"(SELECT GROUP_CONCAT(pt.tag ORDER BY pt.tag) FROM post_tags pt WHERE pt.post_id = p.id)",
	)
	sb.From("posts p")
	return sb
}

func scanContentCandidates(rows *sql.Rows) ([]domain.ContentCandidate, error) {
	defer func() { _ = rows.Close() }()

	candidates := []domain.ContentCandidate{}
	for rows.Next() {
		var (
			c            domain.ContentCandidate
			departmentID sql.NullString
			teamID       sql.NullString
			category     sql.NullString
			tags         sql.NullString
		)
		if err := rows.Scan(
			&c.ID, &c.AuthorID, &departmentID, &teamID,
			&c.Title, &c.ContentType, &category,
			&c.IsOfficial, &c.IsPinned,
			&c.LikeCount, &c.CommentCount, &c.CreatedAt,
			&tags,
		); err != nil {
			return nil, fmt.Errorf("scanning content candidate: %w", err)
		}
		c.DepartmentID = departmentID.String
		c.TeamID = teamID.String
		c.Category = category.String
		if tags.Valid && tags.String != "" {
			c.Tags = strings.Split(tags.String, ",")
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating content candidate rows: %w", err)
	}

	return candidates, nil
}

func (r *Repository) GetViewerContext(ctx context.Context, viewerID string) (domain.ViewerContext, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT department_id FROM employee_departments WHERE employee_id = ?", viewerID)
	if err != nil {
		return domain.ViewerContext{}, fmt.Errorf("fetching viewer departments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	viewer := domain.ViewerContext{ID: viewerID}
	for rows.Next() {
		var departmentID string
		if err := rows.Scan(&departmentID); err != nil {
			return domain.ViewerContext{}, fmt.Errorf("scanning viewer department: %w", err)
		}
		viewer.DepartmentIDs = append(viewer.DepartmentIDs, departmentID)
	}
	if err := rows.Err(); err != nil {
		return domain.ViewerContext{}, fmt.Errorf("iterating viewer department rows: %w", err)
	}

	return viewer, nil
}

func (r *Repository) GetInterestWeights(ctx context.Context, viewerID string) (map[string]float64, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT kind, value, score FROM user_interests WHERE user_id = ?", viewerID)
	if err != nil {
		return nil, fmt.Errorf("fetching interest weights: %w", err)
	}
	defer func() { _ = rows.Close() }()

	weights := map[string]float64{}
	for rows.Next() {
		var (
			kind  string
			value string
			score float64
		)
		if err := rows.Scan(&kind, &value, &score); err != nil {
			return nil, fmt.Errorf("scanning interest weight: %w", err)
		}
		weights[domain.InterestKey(domain.InterestKind(kind), value)] = score
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating interest weight rows: %w", err)
	}

	return weights, nil
}

func (r *Repository) ListViewersWithStaleFeeds(ctx context.Context, cutoff time.Time) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT e.id FROM employees e
		 LEFT JOIN feed_entries fe ON fe.user_id = e.id
		 GROUP BY e.id
		 HAVING MAX(fe.created_at) IS NULL OR MAX(fe.created_at) < ?`,
		cutoff)
	if err != nil {
		return nil, fmt.Errorf("listing viewers with stale feeds: %w", err)
	}
	defer func() { _ = rows.Close() }()

	viewerIDs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning viewer ID: %w", err)
		}
		viewerIDs = append(viewerIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stale viewer rows: %w", err)
	}

	return viewerIDs, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
