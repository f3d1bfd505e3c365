package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/inkwell/internal/comment"
	"github.com/hitoshi/inkwell/internal/model"
)

// CommentServiceInterface はコメントハンドラーが必要とするサービスインターフェース。
type CommentServiceInterface interface {
	Create(ctx context.Context, viewerID string, in comment.Input) (*model.Comment, error)
	Update(ctx context.Context, viewerID, commentID string, in comment.UpdateInput) (*model.Comment, error)
	Delete(ctx context.Context, viewerID, commentID string) error
	Get(ctx context.Context, commentID string) (*model.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]model.CommentView, error)
}

// CommentHandler はコメント関連のHTTPハンドラー。
type CommentHandler struct {
	service CommentServiceInterface
}

// NewCommentHandler はCommentHandlerを生成する。
func NewCommentHandler(service CommentServiceInterface) *CommentHandler {
	return &CommentHandler{service: service}
}

// commentRequest はコメントの作成・更新リクエストのボディ。更新時はpostIdを参照しない。
type commentRequest struct {
	ID       string `json:"id"`
	LegacyID string `json:"_id"`
	PostID   string `json:"postId"`
	Comment  string `json:"comment"`
}

func (req *commentRequest) toInput() comment.Input {
	return comment.Input{PostID: req.PostID, Comment: req.Comment}
}

// CreateComment はコメントを作成する。
// POST /comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := viewerID(w, r)
	if !ok {
		return
	}

	var req commentRequest
	if !decodeBody(w, r, &req, "No comment details in body.") {
		return
	}

	c, err := h.service.Create(r.Context(), userID, req.toInput())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCommentResponse(c))
}

// UpdateComment はコメントを更新する。コメントIDはボディで指定する。
// PUT /comments
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := viewerID(w, r)
	if !ok {
		return
	}

	var req commentRequest
	if !decodeBody(w, r, &req, "No comment details in body.") {
		return
	}

	c, err := h.service.Update(r.Context(), userID, pickID(req.ID, req.LegacyID), comment.UpdateInput{Comment: req.Comment})
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCommentResponse(c))
}

// DeleteComment はコメントを削除する。
// DELETE /comments/{id}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
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

// GetComment はコメントを1件返す。
// GET /comments/{id}
func (h *CommentHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCommentResponse(c))
}

// ListComments は記事のコメント一覧を返す。
// GET /comments?postId=
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID := r.URL.Query().Get("postId")
	if postID == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("No post id found in request."))
		return
	}

	views, err := h.service.ListByPost(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]commentViewResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, commentViewResponse{
			ID:        v.ID,
			Comment:   v.Body,
			CommentBy: toAuthorResponse(v.CommentBy),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
