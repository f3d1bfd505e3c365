package post

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
	"github.com/hitoshi/inkwell/internal/security"
	"github.com/hitoshi/inkwell/internal/validate"
)

// Input は記事の作成・更新リクエストの内容。
// IsPublishedは必須項目で、未指定(nil)は検証エラーになる。
// PublishedOnは作成時のみ参照される（エポックミリ秒）。
type Input struct {
	ID          string
	Image       string
	Title       string
	Subtitle    string
	Description string
	IsPublished *bool
	PublishedOn *int64
}

// Validate は入力を検証する。
func (in *Input) Validate() error {
	v := validate.New()
	if v.Required("title", in.Title) {
		v.Length("title", in.Title, 3, 100)
	}
	if in.Subtitle != "" {
		v.Length("subtitle", in.Subtitle, 3, 300)
	}
	v.Required("description", in.Description)
	v.Check(in.IsPublished != nil, "isPublished", "is required")
	if err := security.ValidateImageURL(in.Image); err != nil {
		v.Add("image", "must be a valid http(s) URL")
	}
	return v.Err("post")
}

// Service は記事の作成・更新・削除を提供する。
type Service struct {
	repo      repository.PostRepository
	sanitizer security.ContentSanitizerService
	now       func() time.Time
}

// NewService はServiceを生成する。
func NewService(repo repository.PostRepository, sanitizer security.ContentSanitizerService) *Service {
	return &Service{
		repo:      repo,
		sanitizer: sanitizer,
		now:       time.Now,
	}
}

// Create は記事を作成する。
// 公開状態で作成され、PublishedOnが未指定の場合は現在時刻を公開日時とする。
func (s *Service) Create(ctx context.Context, viewerID string, in Input) (*model.Post, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	post := &model.Post{
		ID:          uuid.New().String(),
		Image:       in.Image,
		Title:       strings.TrimSpace(in.Title),
		Subtitle:    strings.TrimSpace(in.Subtitle),
		Description: s.sanitizer.SanitizeHTML(in.Description),
		IsPublished: *in.IsPublished,
		CreatedBy:   viewerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if post.IsPublished {
		publishedOn := model.EpochMillis(now)
		if in.PublishedOn != nil {
			publishedOn = *in.PublishedOn
		}
		post.PublishedOn = &publishedOn
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("記事の作成に失敗しました: %w", err)
	}

	slog.Info("post created",
		slog.String("post_id", post.ID),
		slog.String("user_id", viewerID),
		slog.Bool("published", post.IsPublished),
	)
	return post, nil
}

// Update は記事を更新する。
// 初めて公開される場合のみPublishedOnを現在時刻に設定し、既存の公開日時は変更しない。
func (s *Service) Update(ctx context.Context, viewerID string, in Input) (*model.Post, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if !validate.IsUUID(in.ID) {
		return nil, model.NewInvalidIDError()
	}

	post, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("記事の取得に失敗しました: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError()
	}
	if err := policy.RequireOwner(viewerID, post.CreatedBy, "Not authorized to update this post."); err != nil {
		return nil, err
	}

	firstPublish := *in.IsPublished && post.PublishedOn == nil
	now := s.now()
	post.Image = in.Image
	post.Title = strings.TrimSpace(in.Title)
	post.Subtitle = strings.TrimSpace(in.Subtitle)
	post.Description = s.sanitizer.SanitizeHTML(in.Description)
	post.IsPublished = *in.IsPublished
	post.UpdatedAt = now
	if firstPublish {
		publishedOn := model.EpochMillis(now)
		post.PublishedOn = &publishedOn
	}

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("記事の更新に失敗しました: %w", err)
	}

	if firstPublish {
		slog.Info("post published",
			slog.String("post_id", post.ID),
			slog.String("user_id", viewerID),
		)
	}
	return post, nil
}

// Delete は記事を削除する。存在確認の後、所有者以外はForbiddenとする。
func (s *Service) Delete(ctx context.Context, viewerID, postID string) error {
	if !validate.IsUUID(postID) {
		return model.NewInvalidIDError()
	}

	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("記事の取得に失敗しました: %w", err)
	}
	if post == nil {
		return model.NewPostNotFoundError()
	}
	if err := policy.RequireOwner(viewerID, post.CreatedBy, "Not authorized to delete this post."); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, postID); err != nil {
		return fmt.Errorf("記事の削除に失敗しました: %w", err)
	}

	slog.Info("post deleted",
		slog.String("post_id", postID),
		slog.String("user_id", viewerID),
	)
	return nil
}
