// Package bookmark は記事のブックマークのドメインロジックを提供する。
package bookmark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/inkwell/internal/model"
	"github.com/hitoshi/inkwell/internal/policy"
	"github.com/hitoshi/inkwell/internal/repository"
	"github.com/hitoshi/inkwell/internal/validate"
)

// PostFinder はブックマーク対象記事の存在確認に使う。
type PostFinder interface {
	FindByID(ctx context.Context, id string) (*model.Post, error)
}

// Service はブックマークのサービス層。
type Service struct {
	bookmarks repository.BookmarkRepository
	posts     PostFinder
	now       func() time.Time
}

// NewService はServiceを生成する。
func NewService(bookmarks repository.BookmarkRepository, posts PostFinder) *Service {
	return &Service{
		bookmarks: bookmarks,
		posts:     posts,
		now:       time.Now,
	}
}

// Create は記事をブックマークする。
// 既存チェックの後に作成するが、同時リクエストで一意制約に当たった場合も同じConflictを返す。
func (s *Service) Create(ctx context.Context, viewerID, postID string) (*model.Bookmark, error) {
	if !validate.IsUUID(postID) {
		return nil, model.NewInvalidIDError()
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("記事の取得に失敗しました: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError()
	}

	existing, err := s.bookmarks.FindByPostAndUser(ctx, postID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("ブックマークの取得に失敗しました: %w", err)
	}
	if existing != nil {
		return nil, model.NewAlreadyBookmarkedError()
	}

	b := &model.Bookmark{
		ID:           uuid.New().String(),
		PostID:       postID,
		BookmarkedBy: viewerID,
		CreatedAt:    s.now(),
	}
	if err := s.bookmarks.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, model.NewAlreadyBookmarkedError()
		}
		return nil, fmt.Errorf("ブックマークの作成に失敗しました: %w", err)
	}

	slog.Info("post bookmarked",
		slog.String("bookmark_id", b.ID),
		slog.String("post_id", postID),
		slog.String("user_id", viewerID),
	)
	return b, nil
}

// Delete はブックマークを削除する。他人のブックマークは削除できない。
func (s *Service) Delete(ctx context.Context, viewerID, bookmarkID string) error {
	if !validate.IsUUID(bookmarkID) {
		return model.NewInvalidIDError()
	}

	b, err := s.bookmarks.FindByID(ctx, bookmarkID)
	if err != nil {
		return fmt.Errorf("ブックマークの取得に失敗しました: %w", err)
	}
	if b == nil {
		return model.NewBookmarkNotFoundError()
	}
	if err := policy.RequireOwner(viewerID, b.BookmarkedBy, "Not authorized to bookmark this post."); err != nil {
		return err
	}

	if err := s.bookmarks.Delete(ctx, bookmarkID); err != nil {
		return fmt.Errorf("ブックマークの削除に失敗しました: %w", err)
	}
	return nil
}

// List は閲覧者のブックマークを記事付きで返す。
func (s *Service) List(ctx context.Context, viewerID string) ([]model.BookmarkView, error) {
	views, err := s.bookmarks.ListByUser(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("ブックマーク一覧の取得に失敗しました: %w", err)
	}
	return views, nil
}
