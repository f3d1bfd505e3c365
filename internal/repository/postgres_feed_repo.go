package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/inkwell/internal/model"
	"github.com/hitoshi/inkwell/internal/policy"
)

// PostgresFeedRepo はPostgreSQLを使用した記事ビューのリポジトリ。
// クエリはすべてfeedQueryで組み立てる。
type PostgresFeedRepo struct {
	db *sql.DB
}

// NewPostgresFeedRepo はPostgresFeedRepoを生成する。
func NewPostgresFeedRepo(db *sql.DB) *PostgresFeedRepo {
	return &PostgresFeedRepo{db: db}
}

// ListPublished は公開済み記事を公開日時の降順で返す。
func (r *PostgresFeedRepo) ListPublished(ctx context.Context) ([]model.PostView, error) {
	q := newFeedQuery("").published().orderBy(policy.OrderNewestFirst)
	return r.list(ctx, q)
}

// FindWithAuthor は公開状態を問わず記事を投稿者付きで返す。見つからない場合はnilを返す。
func (r *PostgresFeedRepo) FindWithAuthor(ctx context.Context, postID string) (*model.PostView, error) {
	return r.find(ctx, newFeedQuery("").byID(postID))
}

// ListPublishedForViewer は公開済み記事を閲覧者スコープ付きで返す。
func (r *PostgresFeedRepo) ListPublishedForViewer(ctx context.Context, viewerID string) ([]model.PostView, error) {
	q := newFeedQuery(viewerID).published().orderBy(policy.OrderNewestFirst)
	return r.list(ctx, q)
}

// FindForViewer は単一記事を閲覧者スコープ付きで返す。見つからない場合はnilを返す。
func (r *PostgresFeedRepo) FindForViewer(ctx context.Context, viewerID, postID string) (*model.PostView, error) {
	return r.find(ctx, newFeedQuery(viewerID).byID(postID))
}

// ListHome は投稿者のfollowingに閲覧者が含まれる公開済み記事を返す。
func (r *PostgresFeedRepo) ListHome(ctx context.Context, viewerID string) ([]model.PostView, error) {
	q := newFeedQuery(viewerID).published().followingViewer().orderBy(policy.OrderNewestFirst)
	return r.list(ctx, q)
}

// ListByAuthor は投稿者自身の記事を公開状態で絞り込んで返す。
func (r *PostgresFeedRepo) ListByAuthor(ctx context.Context, authorID string, published bool) ([]model.PostView, error) {
	q := newFeedQuery("").byAuthor(authorID).orderBy(policy.OrderNatural)
	if published {
		q.published()
	} else {
		q.drafts()
	}
	return r.list(ctx, q)
}

func (r *PostgresFeedRepo) list(ctx context.Context, q *feedQuery) ([]model.PostView, error) {
	query, args := q.build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("記事一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	views := []model.PostView{}
	for rows.Next() {
		v, err := scanPostView(rows, q.viewerScoped())
		if err != nil {
			return nil, fmt.Errorf("記事行の読み取りに失敗しました: %w", err)
		}
		views = append(views, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("記事一覧の走査に失敗しました: %w", err)
	}

	return views, nil
}

func (r *PostgresFeedRepo) find(ctx context.Context, q *feedQuery) (*model.PostView, error) {
	query, args := q.build()

	v, err := scanPostView(r.db.QueryRowContext(ctx, query, args...), q.viewerScoped())
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("記事の取得に失敗しました: %w", err)
	}
	return v, nil
}

// rowScanner は*sql.Rowと*sql.Rowsの共通インターフェース。
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanPostView はfeedQuery.columnsの順にカラムを読み取る。
func scanPostView(s rowScanner, viewerScoped bool) (*model.PostView, error) {
	v := &model.PostView{}
	var publishedOn sql.NullInt64
	dest := []interface{}{
		&v.ID, &v.Image, &v.Title, &v.Subtitle, &v.Description,
		&v.IsPublished, &publishedOn,
		&v.Author.ID, &v.Author.FullName, &v.Author.Avatar,
	}

	var bookmarkID sql.NullString
	if viewerScoped {
		dest = append(dest, &bookmarkID, &v.IsFollowing)
	}

	if err := s.Scan(dest...); err != nil {
		return nil, err
	}

	if publishedOn.Valid {
		v.PublishedOn = &publishedOn.Int64
	}
	if bookmarkID.Valid {
		v.Bookmark = &model.BookmarkRef{ID: bookmarkID.String}
	}
	return v, nil
}

// compile-time interface check
var _ FeedRepository = (*PostgresFeedRepo)(nil)
