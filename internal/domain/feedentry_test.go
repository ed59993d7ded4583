package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeedSortMode(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    FeedSortMode
		wantErr bool
	}{
		{name: "empty_defaults_to_priority", input: "", want: FeedSortPriority},
		{name: "priority", input: "priority", want: FeedSortPriority},
		{name: "date", input: "date", want: FeedSortDate},
		{name: "popularity", input: "popularity", want: FeedSortPopularity},
		{name: "unknown_rejected", input: "trending", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseFeedSortMode(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFeedType(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    FeedType
		wantErr bool
	}{
		{name: "empty_defaults_to_mixed", input: "", want: FeedTypeMixed},
		{name: "mixed", input: "mixed", want: FeedTypeMixed},
		{name: "official", input: "official", want: FeedTypeOfficial},
		{name: "department", input: "department", want: FeedTypeDepartment},
		{name: "interests", input: "interests", want: FeedTypeInterests},
		{name: "unknown_rejected", input: "everything", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseFeedType(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFeedTypeReason(t *testing.T) {
	assert.Equal(t, FeedReasonOfficial, FeedTypeOfficial.Reason())
	assert.Equal(t, FeedReasonSameDepartment, FeedTypeDepartment.Reason())
	assert.Equal(t, FeedReasonTagInterest, FeedTypeInterests.Reason())
	assert.Equal(t, FeedReason(""), FeedTypeMixed.Reason())
}

func TestClampPagination(t *testing.T) {
	cases := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{name: "in_range_passes_through", page: 3, pageSize: 50, wantPage: 3, wantPageSize: 50},
		{name: "zero_page_clamps_to_one", page: 0, pageSize: 20, wantPage: 1, wantPageSize: 20},
		{name: "negative_page_clamps_to_one", page: -7, pageSize: 20, wantPage: 1, wantPageSize: 20},
		{name: "zero_page_size_uses_default", page: 1, pageSize: 0, wantPage: 1, wantPageSize: 20},
		{name: "oversized_page_size_uses_default", page: 1, pageSize: 500, wantPage: 1, wantPageSize: 20},
		{name: "max_page_size_allowed", page: 1, pageSize: 100, wantPage: 1, wantPageSize: 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, pageSize := ClampPagination(tc.page, tc.pageSize)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantPageSize, pageSize)
		})
	}
}

func TestNewPagedResult(t *testing.T) {
	cases := []struct {
		name           string
		totalCount     int64
		pageSize       int
		wantTotalPages int
	}{
		{name: "exact_multiple", totalCount: 40, pageSize: 20, wantTotalPages: 2},
		{name: "partial_last_page", totalCount: 41, pageSize: 20, wantTotalPages: 3},
		{name: "empty", totalCount: 0, pageSize: 20, wantTotalPages: 0},
		{name: "single_item", totalCount: 1, pageSize: 20, wantTotalPages: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := NewPagedResult([]string{}, tc.totalCount, 1, tc.pageSize)
			assert.Equal(t, tc.wantTotalPages, result.TotalPages)
			assert.Equal(t, tc.totalCount, result.TotalCount)
		})
	}
}

func TestFeedPriorityMarshalJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		Priority FeedPriority `json:"priority"`
	}{Priority: FeedPriorityExecutive})
	require.NoError(t, err)
	assert.JSONEq(t, `{"priority":"executive"}`, string(out))
}
