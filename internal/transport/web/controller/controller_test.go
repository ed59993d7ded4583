package controller

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/synqhub/corporate-feed/internal/domain"
)

func testContext() func(r *http.Request) *http.Request {
	return func(r *http.Request) *http.Request {
		ctx := domain.ContextWithLogger(r.Context(), slog.New(slog.NewTextHandler(io.Discard, nil)))
		return r.WithContext(ctx)
	}
}

func testContextWithViewerID(viewerID string) func(r *http.Request) *http.Request {
	return func(r *http.Request) *http.Request {
		ctx := domain.ContextWithLogger(r.Context(), slog.New(slog.NewTextHandler(io.Discard, nil)))
		ctx = domain.ContextWithViewerID(ctx, viewerID)
		return r.WithContext(ctx)
	}
}

// fakeInteractionStore records interaction calls for handler tests.
type fakeInteractionStore struct {
	markReadFn  func(ctx context.Context, entryID, viewerID string) error
	bookmarkFn  func(ctx context.Context, entryID, viewerID string) error
	hideFn      func(ctx context.Context, entryID, viewerID string) error
	markedRead  [][2]string
	bookmarked  [][2]string
	hidden      [][2]string
}

func (f *fakeInteractionStore) MarkFeedEntryRead(ctx context.Context, entryID, viewerID string) error {
	f.markedRead = append(f.markedRead, [2]string{entryID, viewerID})
	if f.markReadFn == nil {
		return nil
	}
	return f.markReadFn(ctx, entryID, viewerID)
}

func (f *fakeInteractionStore) ToggleFeedEntryBookmark(ctx context.Context, entryID, viewerID string) error {
	f.bookmarked = append(f.bookmarked, [2]string{entryID, viewerID})
	if f.bookmarkFn == nil {
		return nil
	}
	return f.bookmarkFn(ctx, entryID, viewerID)
}

func (f *fakeInteractionStore) HideFeedEntry(ctx context.Context, entryID, viewerID string) error {
	f.hidden = append(f.hidden, [2]string{entryID, viewerID})
	if f.hideFn == nil {
		return nil
	}
	return f.hideFn(ctx, entryID, viewerID)
}
