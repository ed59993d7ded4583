package controller

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedEntryMarkRead_ServeHTTP(t *testing.T) {
	store := &fakeInteractionStore{}
	handler := FeedEntryMarkRead{Interactions: store}

	r := httptest.NewRequest(http.MethodPost, "/v1/feed/entry-1/read", nil)
	r = testContextWithViewerID("viewer-1")(r)
	r = mux.SetURLVars(r, map[string]string{"entry_id": "entry-1"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	require.Len(t, store.markedRead, 1)
	assert.Equal(t, [2]string{"entry-1", "viewer-1"}, store.markedRead[0])
}

func TestFeedEntryMarkRead_ServeHTTP_StoreError(t *testing.T) {
	store := &fakeInteractionStore{
		markReadFn: func(_ context.Context, _, _ string) error {
			return errors.New("store unavailable")
		},
	}
	handler := FeedEntryMarkRead{Interactions: store}

	r := httptest.NewRequest(http.MethodPost, "/v1/feed/entry-1/read", nil)
	r = testContextWithViewerID("viewer-1")(r)
	r = mux.SetURLVars(r, map[string]string{"entry_id": "entry-1"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestFeedEntryBookmarkToggle_ServeHTTP(t *testing.T) {
	store := &fakeInteractionStore{}
	handler := FeedEntryBookmarkToggle{Interactions: store}

	r := httptest.NewRequest(http.MethodPost, "/v1/feed/entry-1/bookmark", nil)
	r = testContextWithViewerID("viewer-1")(r)
	r = mux.SetURLVars(r, map[string]string{"entry_id": "entry-1"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	require.Len(t, store.bookmarked, 1)
	assert.Equal(t, [2]string{"entry-1", "viewer-1"}, store.bookmarked[0])
}

func TestFeedEntryHide_ServeHTTP(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "with_reason", body: `{"reason":"not relevant to me"}`},
		{name: "without_body", body: ""},
		{name: "malformed_body_still_hides", body: `{"reason":`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeInteractionStore{}
			handler := FeedEntryHide{Interactions: store}

			r := httptest.NewRequest(http.MethodPost, "/v1/feed/entry-1/hide", strings.NewReader(tc.body))
			r = testContextWithViewerID("viewer-1")(r)
			r = mux.SetURLVars(r, map[string]string{"entry_id": "entry-1"})
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			assert.Equal(t, http.StatusNoContent, w.Code)
			require.Len(t, store.hidden, 1)
			assert.Equal(t, [2]string{"entry-1", "viewer-1"}, store.hidden[0])
		})
	}
}

func TestFeedEntryHide_ServeHTTP_StoreError(t *testing.T) {
	store := &fakeInteractionStore{
		hideFn: func(_ context.Context, _, _ string) error {
			return errors.New("store unavailable")
		},
	}
	handler := FeedEntryHide{Interactions: store}

	r := httptest.NewRequest(http.MethodPost, "/v1/feed/entry-1/hide", nil)
	r = testContextWithViewerID("viewer-1")(r)
	r = mux.SetURLVars(r, map[string]string{"entry_id": "entry-1"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
