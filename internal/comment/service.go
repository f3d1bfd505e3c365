// Package comment は記事へのコメントのドメインロジックを提供する。
package comment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/inkwell/internal/model"
	"github.com/hitoshi/inkwell/internal/policy"
	"github.com/hitoshi/inkwell/internal/repository"
	"github.com/hitoshi/inkwell/internal/validate"
)

// PostFinder はコメント対象記事の存在確認に使う。
// repository.PostRepositoryの部分集合として定義する。
type PostFinder interface {
	FindByID(ctx context.Context, id string) (*model.Post, error)
}

// TextSanitizer はコメント本文からタグを除去する。
type TextSanitizer interface {
	SanitizeText(raw string) string
}

// Input はコメントの作成リクエストの内容。
type Input struct {
	PostID  string
	Comment string
}

// Validate は入力を検証する。
func (in *Input) Validate() error {
	v := validate.New()
	if v.Required("postId", in.PostID) {
		v.UUID("postId", in.PostID)
	}
	v.Required("comment", in.Comment)
	return v.Err("comment")
}

// UpdateInput はコメントの更新リクエストの内容。対象記事はコメント自身が持つ。
type UpdateInput struct {
	Comment string
}

// Validate は入力を検証する。
func (in *UpdateInput) Validate() error {
	v := validate.New()
	v.Required("comment", in.Comment)
	return v.Err("comment")
}

// Service はコメントのサービス層。
type Service struct {
	comments  repository.CommentRepository
	posts     PostFinder
	sanitizer TextSanitizer
	now       func() time.Time
}

// NewService はServiceを生成する。
func NewService(comments repository.CommentRepository, posts PostFinder, sanitizer TextSanitizer) *Service {
	return &Service{
		comments:  comments,
		posts:     posts,
		sanitizer: sanitizer,
		now:       time.Now,
	}
}

// requirePost はコメント対象記事の存在を確認する。存在しない場合は404のBlogPostNotFound。
func (s *Service) requirePost(ctx context.Context, postID string) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("記事の取得に失敗しました: %w", err)
	}
	if post == nil {
		return model.NewBlogPostNotFoundError()
	}
	return nil
}

// findComment はコメントを取得する。存在しない場合はCommentNotFound。
func (s *Service) findComment(ctx context.Context, commentID string) (*model.Comment, error) {
	if !validate.IsUUID(commentID) {
		return nil, model.NewInvalidIDError()
	}
	c, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("コメントの取得に失敗しました: %w", err)
	}
	if c == nil {
		return nil, model.NewCommentNotFoundError()
	}
	return c, nil
}

// Create はコメントを作成する。
func (s *Service) Create(ctx context.Context, viewerID string, in Input) (*model.Comment, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.requirePost(ctx, in.PostID); err != nil {
		return nil, err
	}

	now := s.now()
	c := &model.Comment{
		ID:        uuid.New().String(),
		PostID:    in.PostID,
		Body:      s.sanitizer.SanitizeText(strings.TrimSpace(in.Comment)),
		CommentBy: viewerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("コメントの作成に失敗しました: %w", err)
	}

	slog.Info("comment created",
		slog.String("comment_id", c.ID),
		slog.String("post_id", c.PostID),
		slog.String("user_id", viewerID),
	)
	return c, nil
}

// Update はコメント本文を更新する。
// コメント、対象記事の順に存在を確認し、最後に所有者を確認する。
func (s *Service) Update(ctx context.Context, viewerID, commentID string, in UpdateInput) (*model.Comment, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	c, err := s.findComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := s.requirePost(ctx, c.PostID); err != nil {
		return nil, err
	}
	if err := policy.RequireOwner(viewerID, c.CommentBy, "Not authorized to update this comment."); err != nil {
		return nil, err
	}

	c.Body = s.sanitizer.SanitizeText(strings.TrimSpace(in.Comment))
	c.UpdatedAt = s.now()
	if err := s.comments.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("コメントの更新に失敗しました: %w", err)
	}
	return c, nil
}

// Delete はコメントを削除する。
func (s *Service) Delete(ctx context.Context, viewerID, commentID string) error {
	c, err := s.findComment(ctx, commentID)
	if err != nil {
		return err
	}
	if err := policy.RequireOwner(viewerID, c.CommentBy, "Not authorized to delete this comment."); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("コメントの削除に失敗しました: %w", err)
	}
	return nil
}

// Get は単一のコメントを返す。
func (s *Service) Get(ctx context.Context, commentID string) (*model.Comment, error) {
	return s.findComment(ctx, commentID)
}

// ListByPost は記事のコメント一覧を返す。
func (s *Service) ListByPost(ctx context.Context, postID string) ([]model.CommentView, error) {
	if !validate.IsUUID(postID) {
		return nil, model.NewInvalidIDError()
	}
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	views, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("コメント一覧の取得に失敗しました: %w", err)
	}
	return views, nil
}
