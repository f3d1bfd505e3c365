package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/inkwell/internal/model"
	"github.com/hitoshi/inkwell/internal/post"
)

// FeedServiceInterface は記事ビュー取得に必要なサービスインターフェース。
type FeedServiceInterface interface {
	ExplorePosts(ctx context.Context) ([]model.PostView, error)
	ExplorePostByID(ctx context.Context, postID string) (*model.PostView, error)
	GetPosts(ctx context.Context, viewerID string) ([]model.PostView, error)
	GetPostByID(ctx context.Context, viewerID, postID string) (*model.PostView, error)
	GetHomePosts(ctx context.Context, viewerID string) ([]model.PostView, error)
	GetMyPosts(ctx context.Context, viewerID string) ([]model.PostView, error)
	GetMyDrafts(ctx context.Context, viewerID string) ([]model.PostView, error)
	GetPostForEdit(ctx context.Context, viewerID, postID string) (*model.PostView, error)
}

// PostServiceInterface は記事の作成・更新・削除に必要なサービスインターフェース。
type PostServiceInterface interface {
	Create(ctx context.Context, viewerID string, in post.Input) (*model.Post, error)
	Update(ctx context.Context, viewerID string, in post.Input) (*model.Post, error)
	Delete(ctx context.Context, viewerID, postID string) error
}

// PostHandler は記事関連のHTTPハンドラー。
type PostHandler struct {
	feed    FeedServiceInterface
	service PostServiceInterface
}

// NewPostHandler はPostHandlerを生成する。
func NewPostHandler(feed FeedServiceInterface, service PostServiceInterface) *PostHandler {
	return &PostHandler{
		feed:    feed,
		service: service,
	}
}

// postRequest は記事の作成・更新リクエストのボディ。
// 更新時の記事IDはidと_idのどちらでも受け付ける。
type postRequest struct {
	ID          string `json:"id"`
	LegacyID    string `json:"_id"`
	Image       string `json:"image"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	IsPublished *bool  `json:"isPublished"`
	PublishedOn *int64 `json:"publishedOn"`
}

func (req *postRequest) toInput() post.Input {
	return post.Input{
		ID:          pickID(req.ID, req.LegacyID),
		Image:       req.Image,
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		IsPublished: req.IsPublished,
		PublishedOn: req.PublishedOn,
	}
}

// Explore は公開済み記事の一覧を返す。認証不要。
// GET /posts/explore
func (h *PostHandler) Explore(w http.ResponseWriter, r *http.Request) {
	views, err := h.feed.ExplorePosts(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapViews(views, toExploreResponse))
}

// ExploreByID は記事を1件返す。認証不要。
// GET /posts/explore/{id}
func (h *PostHandler) ExploreByID(w http.ResponseWriter, r *http.Request) {
	view, err := h.feed.ExplorePostByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPostResponse(*view))
}

// ListPosts は公開済み記事の一覧を閲覧者スコープ付きで返す。
// GET /posts
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := viewerID(w, r)
	if !ok {
		return
	}

	views, err := h.feed.GetPosts(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapViews(views, toViewerPostResponse))
}

// GetPost は記事を1件、閲覧者スコープ付きで返す。
// GET /posts/{id}
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	userID, ok := viewerID(w, r)
	if !ok {
		return
	}

	view, err := h.feed.GetPostByID(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toViewerPostResponse(*view))
}

// Home は投稿者のフォローリストに閲覧者が含まれる公開済み記事を返す。
// GET /posts/homeposts
func (h *PostHandler) Home(w http.ResponseWriter, r *http.Request) {
	userID, ok := viewerID(w, r)
	if !ok {
		return
	}

	views, err := h.feed.GetHomePosts(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapViews(views, toViewerPostResponse))
}

// MyPosts は閲覧者自身の公開済み記事を返す。
// GET /posts/myposts
func (h *PostHandler) MyPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := viewerID(w, r)
	if !ok {
		return
	}

	views, err := h.feed.GetMyPosts(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapViews(views, toPostResponse))
}

// MyDrafts は閲覧者自身の下書きを返す。
// GET /posts/mydrafts
func (h *PostHandler) MyDrafts(w http.ResponseWriter, r *http.Request) {
	userID, ok := viewerID(w, r)
	if !ok {
		return
	}

	views, err := h.feed.GetMyDrafts(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapViews(views, toPostResponse))
}

// EditView は編集用に自分の記事を返す。他人の記事は403。
// GET /posts/edit/{id}
func (h *PostHandler) EditView(w http.ResponseWriter, r *http.Request) {
	userID, ok := viewerID(w, r)
	if !ok {
		return
	}

	view, err := h.feed.GetPostForEdit(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEditResponse(*view))
}

// CreatePost は記事を作成する。
// POST /posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := viewerID(w, r)
	if !ok {
		return
	}

	var req postRequest
	if !decodeBody(w, r, &req, "No post details in body") {
		return
	}

	p, err := h.service.Create(r.Context(), userID, req.toInput())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPostEntityResponse(p))
}

// UpdatePost は記事を更新する。記事IDはボディで指定する。
// PUT /posts
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := viewerID(w, r)
	if !ok {
		return
	}

	var req postRequest
	if !decodeBody(w, r, &req, "No post details in body") {
		return
	}

	p, err := h.service.Update(r.Context(), userID, req.toInput())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPostEntityResponse(p))
}

// DeletePost は記事を削除する。
// DELETE /posts/{id}
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := viewerID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
