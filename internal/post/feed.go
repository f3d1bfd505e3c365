// Package post は記事の閲覧系クエリと記事の作成・更新・削除を提供する。
package post

import (
	"context"
	"fmt"
	"time"

	"github.com/hitoshi/inkwell/internal/model"
	"github.com/hitoshi/inkwell/internal/policy"
	"github.com/hitoshi/inkwell/internal/repository"
	"github.com/hitoshi/inkwell/internal/validate"
)

// QueryObserver はフィードクエリの所要時間を受け取る。
// metrics.Collectorが実装する。
type QueryObserver interface {
	ObserveFeedQuery(query string, d time.Duration)
}

// FeedService は記事ビューの閲覧系クエリを提供する。
// 結合と射影はFeedRepositoryに任せ、ここでは入力検証と存在・所有者チェックを行う。
type FeedService struct {
	repo     repository.FeedRepository
	observer QueryObserver
}

// NewFeedService はFeedServiceを生成する。observerはnilでもよい。
func NewFeedService(repo repository.FeedRepository, observer QueryObserver) *FeedService {
	return &FeedService{repo: repo, observer: observer}
}

func (s *FeedService) observe(query string, start time.Time) {
	if s.observer != nil {
		s.observer.ObserveFeedQuery(query, time.Since(start))
	}
}

// ExplorePosts は公開済み記事を新しい順に返す。認証不要。
func (s *FeedService) ExplorePosts(ctx context.Context) ([]model.PostView, error) {
	defer s.observe("explore", time.Now())

	views, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("公開記事一覧の取得に失敗しました: %w", err)
	}
	return views, nil
}

// ExplorePostByID は公開状態を問わず記事を投稿者付きで返す。認証不要。
// IDの形式が不正な場合も存在しない場合と同じくPostNotFoundを返す。
func (s *FeedService) ExplorePostByID(ctx context.Context, postID string) (*model.PostView, error) {
	if !validate.IsUUID(postID) {
		return nil, model.NewPostNotFoundError()
	}
	defer s.observe("explore_detail", time.Now())

	view, err := s.repo.FindWithAuthor(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("記事の取得に失敗しました: %w", err)
	}
	if view == nil {
		return nil, model.NewPostNotFoundError()
	}
	return view, nil
}

// GetPosts は公開済み記事を閲覧者のブックマーク・フォロー状態付きで新しい順に返す。
func (s *FeedService) GetPosts(ctx context.Context, viewerID string) ([]model.PostView, error) {
	defer s.observe("posts", time.Now())

	views, err := s.repo.ListPublishedForViewer(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("記事一覧の取得に失敗しました: %w", err)
	}
	return views, nil
}

// GetPostByID は記事を閲覧者のブックマーク・フォロー状態付きで返す。所有者制限なし。
func (s *FeedService) GetPostByID(ctx context.Context, viewerID, postID string) (*model.PostView, error) {
	if !validate.IsUUID(postID) {
		return nil, model.NewInvalidIDError()
	}
	defer s.observe("post_detail", time.Now())

	view, err := s.repo.FindForViewer(ctx, viewerID, postID)
	if err != nil {
		return nil, fmt.Errorf("記事の取得に失敗しました: %w", err)
	}
	if view == nil {
		return nil, model.NewPostNotFoundError()
	}
	return view, nil
}

// GetHomePosts は投稿者のfollowingに閲覧者が含まれる公開済み記事を新しい順に返す。
func (s *FeedService) GetHomePosts(ctx context.Context, viewerID string) ([]model.PostView, error) {
	defer s.observe("home", time.Now())

	views, err := s.repo.ListHome(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("ホーム記事一覧の取得に失敗しました: %w", err)
	}
	return views, nil
}

// GetMyPosts は閲覧者自身の公開済み記事を返す。
func (s *FeedService) GetMyPosts(ctx context.Context, viewerID string) ([]model.PostView, error) {
	defer s.observe("my_posts", time.Now())

	views, err := s.repo.ListByAuthor(ctx, viewerID, true)
	if err != nil {
		return nil, fmt.Errorf("自分の記事一覧の取得に失敗しました: %w", err)
	}
	return views, nil
}

// GetMyDrafts は閲覧者自身の下書きを返す。
func (s *FeedService) GetMyDrafts(ctx context.Context, viewerID string) ([]model.PostView, error) {
	defer s.observe("my_drafts", time.Now())

	views, err := s.repo.ListByAuthor(ctx, viewerID, false)
	if err != nil {
		return nil, fmt.Errorf("下書き一覧の取得に失敗しました: %w", err)
	}
	return views, nil
}

// GetPostForEdit は編集用に記事を返す。存在確認の後、所有者以外はForbiddenとする。
func (s *FeedService) GetPostForEdit(ctx context.Context, viewerID, postID string) (*model.PostView, error) {
	if !validate.IsUUID(postID) {
		return nil, model.NewInvalidIDError()
	}
	defer s.observe("edit", time.Now())

	view, err := s.repo.FindWithAuthor(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("記事の取得に失敗しました: %w", err)
	}
	if view == nil {
		return nil, model.NewPostNotFoundError()
	}
	if err := policy.RequireOwner(viewerID, view.Author.ID, "Not authorized to edit this post."); err != nil {
		return nil, err
	}
	return view, nil
}
