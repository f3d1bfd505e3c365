package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/inkwell/internal/auth"
	"github.com/hitoshi/inkwell/internal/comment"
	"github.com/hitoshi/inkwell/internal/middleware"
	"github.com/hitoshi/inkwell/internal/model"
	"github.com/hitoshi/inkwell/internal/post"
	"github.com/hitoshi/inkwell/internal/user"
)

// --- モック定義 ---

// mockFeedService はFeedServiceInterfaceのモック実装。
type mockFeedService struct {
	explorePostsFn    func(ctx context.Context) ([]model.PostView, error)
	explorePostByIDFn func(ctx context.Context, postID string) (*model.PostView, error)
	getPostsFn        func(ctx context.Context, viewerID string) ([]model.PostView, error)
	getPostByIDFn     func(ctx context.Context, viewerID, postID string) (*model.PostView, error)
	getHomePostsFn    func(ctx context.Context, viewerID string) ([]model.PostView, error)
	getMyPostsFn      func(ctx context.Context, viewerID string) ([]model.PostView, error)
	getMyDraftsFn     func(ctx context.Context, viewerID string) ([]model.PostView, error)
	getPostForEditFn  func(ctx context.Context, viewerID, postID string) (*model.PostView, error)
}

func (m *mockFeedService) ExplorePosts(ctx context.Context) ([]model.PostView, error) {
	if m.explorePostsFn != nil {
		return m.explorePostsFn(ctx)
	}
	return []model.PostView{}, nil
}

func (m *mockFeedService) ExplorePostByID(ctx context.Context, postID string) (*model.PostView, error) {
	if m.explorePostByIDFn != nil {
		return m.explorePostByIDFn(ctx, postID)
	}
	return nil, model.NewPostNotFoundError()
}

func (m *mockFeedService) GetPosts(ctx context.Context, viewerID string) ([]model.PostView, error) {
	if m.getPostsFn != nil {
		return m.getPostsFn(ctx, viewerID)
	}
	return []model.PostView{}, nil
}

func (m *mockFeedService) GetPostByID(ctx context.Context, viewerID, postID string) (*model.PostView, error) {
	if m.getPostByIDFn != nil {
		return m.getPostByIDFn(ctx, viewerID, postID)
	}
	return nil, model.NewPostNotFoundError()
}

func (m *mockFeedService) GetHomePosts(ctx context.Context, viewerID string) ([]model.PostView, error) {
	if m.getHomePostsFn != nil {
		return m.getHomePostsFn(ctx, viewerID)
	}
	return []model.PostView{}, nil
}

func (m *mockFeedService) GetMyPosts(ctx context.Context, viewerID string) ([]model.PostView, error) {
	if m.getMyPostsFn != nil {
		return m.getMyPostsFn(ctx, viewerID)
	}
	return []model.PostView{}, nil
}

func (m *mockFeedService) GetMyDrafts(ctx context.Context, viewerID string) ([]model.PostView, error) {
	if m.getMyDraftsFn != nil {
		return m.getMyDraftsFn(ctx, viewerID)
	}
	return []model.PostView{}, nil
}

func (m *mockFeedService) GetPostForEdit(ctx context.Context, viewerID, postID string) (*model.PostView, error) {
	if m.getPostForEditFn != nil {
		return m.getPostForEditFn(ctx, viewerID, postID)
	}
	return nil, model.NewPostNotFoundError()
}

// mockPostService はPostServiceInterfaceのモック実装。
type mockPostService struct {
	createFn func(ctx context.Context, viewerID string, in post.Input) (*model.Post, error)
	updateFn func(ctx context.Context, viewerID string, in post.Input) (*model.Post, error)
	deleteFn func(ctx context.Context, viewerID, postID string) error
}

func (m *mockPostService) Create(ctx context.Context, viewerID string, in post.Input) (*model.Post, error) {
	if m.createFn != nil {
		return m.createFn(ctx, viewerID, in)
	}
	return &model.Post{}, nil
}

func (m *mockPostService) Update(ctx context.Context, viewerID string, in post.Input) (*model.Post, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, viewerID, in)
	}
	return &model.Post{}, nil
}

func (m *mockPostService) Delete(ctx context.Context, viewerID, postID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, viewerID, postID)
	}
	return nil
}

// mockCommentService はCommentServiceInterfaceのモック実装。
type mockCommentService struct {
	createFn     func(ctx context.Context, viewerID string, in comment.Input) (*model.Comment, error)
	updateFn     func(ctx context.Context, viewerID, commentID string, in comment.UpdateInput) (*model.Comment, error)
	deleteFn     func(ctx context.Context, viewerID, commentID string) error
	getFn        func(ctx context.Context, commentID string) (*model.Comment, error)
	listByPostFn func(ctx context.Context, postID string) ([]model.CommentView, error)
}

func (m *mockCommentService) Create(ctx context.Context, viewerID string, in comment.Input) (*model.Comment, error) {
	if m.createFn != nil {
		return m.createFn(ctx, viewerID, in)
	}
	return &model.Comment{}, nil
}

func (m *mockCommentService) Update(ctx context.Context, viewerID, commentID string, in comment.UpdateInput) (*model.Comment, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, viewerID, commentID, in)
	}
	return &model.Comment{}, nil
}

func (m *mockCommentService) Delete(ctx context.Context, viewerID, commentID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, viewerID, commentID)
	}
	return nil
}

func (m *mockCommentService) Get(ctx context.Context, commentID string) (*model.Comment, error) {
	if m.getFn != nil {
		return m.getFn(ctx, commentID)
	}
	return nil, model.NewCommentNotFoundError()
}

func (m *mockCommentService) ListByPost(ctx context.Context, postID string) ([]model.CommentView, error) {
	if m.listByPostFn != nil {
		return m.listByPostFn(ctx, postID)
	}
	return []model.CommentView{}, nil
}

// mockBookmarkService はBookmarkServiceInterfaceのモック実装。
type mockBookmarkService struct {
	createFn func(ctx context.Context, viewerID, postID string) (*model.Bookmark, error)
	deleteFn func(ctx context.Context, viewerID, bookmarkID string) error
	listFn   func(ctx context.Context, viewerID string) ([]model.BookmarkView, error)
}

func (m *mockBookmarkService) Create(ctx context.Context, viewerID, postID string) (*model.Bookmark, error) {
	if m.createFn != nil {
		return m.createFn(ctx, viewerID, postID)
	}
	return &model.Bookmark{}, nil
}

func (m *mockBookmarkService) Delete(ctx context.Context, viewerID, bookmarkID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, viewerID, bookmarkID)
	}
	return nil
}

func (m *mockBookmarkService) List(ctx context.Context, viewerID string) ([]model.BookmarkView, error) {
	if m.listFn != nil {
		return m.listFn(ctx, viewerID)
	}
	return []model.BookmarkView{}, nil
}

// mockUserService はUserServiceInterfaceのモック実装。
type mockUserService struct {
	getProfileFn    func(ctx context.Context, userID string) (*model.User, error)
	updateProfileFn func(ctx context.Context, userID string, in user.ProfileInput) (*model.User, error)
	followFn        func(ctx context.Context, userID, targetID string) error
	unfollowFn      func(ctx context.Context, userID, targetID string) error
	listFollowingFn func(ctx context.Context, userID string) ([]model.AuthorRef, error)
}

func (m *mockUserService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	if m.getProfileFn != nil {
		return m.getProfileFn(ctx, userID)
	}
	return &model.User{ID: userID}, nil
}

func (m *mockUserService) UpdateProfile(ctx context.Context, userID string, in user.ProfileInput) (*model.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, userID, in)
	}
	return &model.User{ID: userID}, nil
}

func (m *mockUserService) Follow(ctx context.Context, userID, targetID string) error {
	if m.followFn != nil {
		return m.followFn(ctx, userID, targetID)
	}
	return nil
}

func (m *mockUserService) Unfollow(ctx context.Context, userID, targetID string) error {
	if m.unfollowFn != nil {
		return m.unfollowFn(ctx, userID, targetID)
	}
	return nil
}

func (m *mockUserService) ListFollowing(ctx context.Context, userID string) ([]model.AuthorRef, error) {
	if m.listFollowingFn != nil {
		return m.listFollowingFn(ctx, userID)
	}
	return []model.AuthorRef{}, nil
}

// mockAuthService はAuthServiceInterfaceのモック実装。
type mockAuthService struct {
	signupFn         func(ctx context.Context, in auth.SignupInput) (*model.User, error)
	loginFn          func(ctx context.Context, email, password string) (*model.Session, error)
	logoutFn         func(ctx context.Context, sessionID string) error
	logoutAllFn      func(ctx context.Context, userID string) error
	getCurrentUserFn func(ctx context.Context, sessionID string) (*model.User, error)
	sessionMaxAge    time.Duration
}

func (m *mockAuthService) Signup(ctx context.Context, in auth.SignupInput) (*model.User, error) {
	if m.signupFn != nil {
		return m.signupFn(ctx, in)
	}
	return &model.User{}, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*model.Session, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return nil, model.NewInvalidCredentialsError()
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, sessionID)
	}
	return nil
}

func (m *mockAuthService) LogoutAll(ctx context.Context, userID string) error {
	if m.logoutAllFn != nil {
		return m.logoutAllFn(ctx, userID)
	}
	return nil
}

func (m *mockAuthService) GetCurrentUser(ctx context.Context, sessionID string) (*model.User, error) {
	if m.getCurrentUserFn != nil {
		return m.getCurrentUserFn(ctx, sessionID)
	}
	return nil, model.NewAuthTokenInvalidError()
}

func (m *mockAuthService) SessionMaxAge() time.Duration {
	return m.sessionMaxAge
}

// --- テストヘルパー ---

// withUserID はテスト用にリクエストコンテキストにユーザーIDを注入するヘルパー。
func withUserID(r *http.Request, userID string) *http.Request {
	ctx := middleware.ContextWithUserID(r.Context(), userID)
	return r.WithContext(ctx)
}

// withChiURLParam はテスト用にchiのURLパラメータを注入するヘルパー。
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

// parseAPIErrorResponse はレスポンスボディからエラーレスポンスをパースするヘルパー。
func parseAPIErrorResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var result map[string]string
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return result
}

// decodeJSON はレスポンスボディを汎用のJSON値にデコードするヘルパー。
func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(dst); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func int64Ptr(v int64) *int64 { return &v }

func boolPtr(v bool) *bool { return &v }

// samplePostView はテスト用の記事ビューを返す。
func samplePostView(id string) model.PostView {
	return model.PostView{
		ID:          id,
		Image:       "https://example.com/cover.png",
		Title:       "Title " + id,
		Subtitle:    "Subtitle " + id,
		Description: "<p>body</p>",
		IsPublished: true,
		PublishedOn: int64Ptr(1700000000000),
		Author: model.AuthorRef{
			ID:       "author-1",
			FullName: "Alice Smith",
			Avatar:   "https://example.com/a.png",
		},
	}
}
