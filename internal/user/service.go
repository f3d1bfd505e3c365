// Package user はユーザープロフィールとフォロー関係のドメインロジックを提供する。
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hitoshi/inkwell/internal/model"
	"github.com/hitoshi/inkwell/internal/policy"
	"github.com/hitoshi/inkwell/internal/repository"
	"github.com/hitoshi/inkwell/internal/validate"
)

// ProfileInput はプロフィール更新リクエストの内容。
type ProfileInput struct {
	FirstName string
	LastName  string
	Email     string
	Avatar    string
}

// Validate は入力を検証する。
func (in *ProfileInput) Validate() error {
	v := validate.New()
	v.Length("firstName", strings.TrimSpace(in.FirstName), 3, 30)
	v.Length("lastName", strings.TrimSpace(in.LastName), 3, 30)
	v.Email("email", NormalizeEmail(in.Email))
	return v.Err("user")
}

// NormalizeEmail はメールアドレスを前後の空白除去と小文字化で正規化する。
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Service はユーザー管理のサービス層。
type Service struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository) *Service {
	return &Service{
		userRepo: userRepo,
		now:      time.Now,
	}
}

// GetProfile はユーザーのプロフィールを返す。
func (s *Service) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}
	return user, nil
}

// UpdateProfile はプロフィールを更新する。フルネームは姓名から再計算する。
func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*model.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = strings.TrimSpace(in.FirstName)
	user.LastName = strings.TrimSpace(in.LastName)
	user.FullName = model.FullNameOf(user.FirstName, user.LastName)
	user.Email = NormalizeEmail(in.Email)
	user.Avatar = in.Avatar
	user.UpdatedAt = s.now()

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, model.NewEmailExistsError(user.Email)
		}
		return nil, fmt.Errorf("ユーザーの更新に失敗しました: %w", err)
	}
	return user, nil
}

// Follow はtargetIDのユーザーをフォローする。
func (s *Service) Follow(ctx context.Context, userID, targetID string) error {
	if !validate.IsUUID(targetID) {
		return model.NewInvalidIDError()
	}
	if policy.SameUser(userID, targetID) {
		return model.NewSelfFollowError()
	}

	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("フォロー対象ユーザーの取得に失敗しました: %w", err)
	}
	if target == nil {
		return model.NewUserNotFoundError()
	}

	added, err := s.userRepo.AddFollowing(ctx, userID, target.ID)
	if err != nil {
		return fmt.Errorf("フォローに失敗しました: %w", err)
	}
	if !added {
		return model.NewAlreadyFollowingError()
	}

	slog.Info("user followed",
		slog.String("user_id", userID),
		slog.String("target_id", target.ID),
	)
	return nil
}

// Unfollow はtargetIDのユーザーのフォローを解除する。
func (s *Service) Unfollow(ctx context.Context, userID, targetID string) error {
	if !validate.IsUUID(targetID) {
		return model.NewInvalidIDError()
	}

	removed, err := s.userRepo.RemoveFollowing(ctx, userID, targetID)
	if err != nil {
		return fmt.Errorf("フォロー解除に失敗しました: %w", err)
	}
	if !removed {
		return model.NewNotFollowingError()
	}
	return nil
}

// ListFollowing はフォロー中のユーザーをフォロー順に返す。
func (s *Service) ListFollowing(ctx context.Context, userID string) ([]model.AuthorRef, error) {
	refs, err := s.userRepo.ListFollowing(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("フォロー一覧の取得に失敗しました: %w", err)
	}
	return refs, nil
}
