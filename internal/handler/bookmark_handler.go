package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/inkwell/internal/model"
)

// BookmarkServiceInterface はブックマークハンドラーが必要とするサービスインターフェース。
type BookmarkServiceInterface interface {
	Create(ctx context.Context, viewerID, postID string) (*model.Bookmark, error)
	Delete(ctx context.Context, viewerID, bookmarkID string) error
	List(ctx context.Context, viewerID string) ([]model.BookmarkView, error)
}

// BookmarkHandler はブックマーク関連のHTTPハンドラー。
type BookmarkHandler struct {
	service BookmarkServiceInterface
}

// NewBookmarkHandler はBookmarkHandlerを生成する。
func NewBookmarkHandler(service BookmarkServiceInterface) *BookmarkHandler {
	return &BookmarkHandler{service: service}
}

// createBookmarkRequest はブックマーク作成リクエストのボディ。
type createBookmarkRequest struct {
	PostID string `json:"postId"`
}

// CreateBookmark は記事をブックマークする。
// POST /bookmarks
func (h *BookmarkHandler) CreateBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := viewerID(w, r)
	if !ok {
		return
	}

	var req createBookmarkRequest
	if !decodeBody(w, r, &req, "No post id found in request.") {
		return
	}
	if strings.TrimSpace(req.PostID) == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("No post id found in request."))
		return
	}

	b, err := h.service.Create(r.Context(), userID, req.PostID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookmarkResponse(b))
}

// DeleteBookmark はブックマークを削除する。
// DELETE /bookmarks/{id}
func (h *BookmarkHandler) DeleteBookmark(w http.ResponseWriter, r *http.Request) {
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

// ListBookmarks は閲覧者のブックマーク一覧を記事付きで返す。
// GET /bookmarks
func (h *BookmarkHandler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	userID, ok := viewerID(w, r)
	if !ok {
		return
	}

	views, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]bookmarkViewResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, bookmarkViewResponse{
			ID:   v.ID,
			Post: toPostResponse(v.Post),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
