package post

import (
	"context"
	"time"

	"github.com/hitoshi/inkwell/internal/model"
	"github.com/hitoshi/inkwell/internal/repository"
)

// --- モック定義 ---

type mockFeedRepo struct {
	listPublishedFn          func(ctx context.Context) ([]model.PostView, error)
	findWithAuthorFn         func(ctx context.Context, postID string) (*model.PostView, error)
	listPublishedForViewerFn func(ctx context.Context, viewerID string) ([]model.PostView, error)
	findForViewerFn          func(ctx context.Context, viewerID, postID string) (*model.PostView, error)
	listHomeFn               func(ctx context.Context, viewerID string) ([]model.PostView, error)
	listByAuthorFn           func(ctx context.Context, authorID string, published bool) ([]model.PostView, error)
}

func (m *mockFeedRepo) ListPublished(ctx context.Context) ([]model.PostView, error) {
	if m.listPublishedFn != nil {
		return m.listPublishedFn(ctx)
	}
	return nil, nil
}

func (m *mockFeedRepo) FindWithAuthor(ctx context.Context, postID string) (*model.PostView, error) {
	if m.findWithAuthorFn != nil {
		return m.findWithAuthorFn(ctx, postID)
	}
	return nil, nil
}

func (m *mockFeedRepo) ListPublishedForViewer(ctx context.Context, viewerID string) ([]model.PostView, error) {
	if m.listPublishedForViewerFn != nil {
		return m.listPublishedForViewerFn(ctx, viewerID)
	}
	return nil, nil
}

func (m *mockFeedRepo) FindForViewer(ctx context.Context, viewerID, postID string) (*model.PostView, error) {
	if m.findForViewerFn != nil {
		return m.findForViewerFn(ctx, viewerID, postID)
	}
	return nil, nil
}

func (m *mockFeedRepo) ListHome(ctx context.Context, viewerID string) ([]model.PostView, error) {
	if m.listHomeFn != nil {
		return m.listHomeFn(ctx, viewerID)
	}
	return nil, nil
}

func (m *mockFeedRepo) ListByAuthor(ctx context.Context, authorID string, published bool) ([]model.PostView, error) {
	if m.listByAuthorFn != nil {
		return m.listByAuthorFn(ctx, authorID, published)
	}
	return nil, nil
}

type mockPostRepo struct {
	findByIDFn func(ctx context.Context, id string) (*model.Post, error)
	createFn   func(ctx context.Context, post *model.Post) error
	updateFn   func(ctx context.Context, post *model.Post) error
	deleteFn   func(ctx context.Context, id string) error
}

func (m *mockPostRepo) FindByID(ctx context.Context, id string) (*model.Post, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockPostRepo) Create(ctx context.Context, post *model.Post) error {
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepo) Update(ctx context.Context, post *model.Post) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type recordingObserver struct {
	queries []string
}

func (o *recordingObserver) ObserveFeedQuery(query string, _ time.Duration) {
	o.queries = append(o.queries, query)
}

// passthroughSanitizer は入力をそのまま返す。
type passthroughSanitizer struct{}

func (passthroughSanitizer) SanitizeHTML(s string) string { return s }
func (passthroughSanitizer) SanitizeText(s string) string { return s }

// --- compile-time interface checks ---
var _ repository.FeedRepository = (*mockFeedRepo)(nil)
var _ repository.PostRepository = (*mockPostRepo)(nil)
var _ QueryObserver = (*recordingObserver)(nil)

const (
	ownerID = "6f1c2a9e-3b4d-4c5e-8f90-1a2b3c4d5e6f"
	otherID = "0e7d9b62-1111-4222-8333-444455556666"
	postID  = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
)

func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool { return &v }
