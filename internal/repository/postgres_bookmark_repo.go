package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/inkwell/internal/model"
)

// PostgresBookmarkRepo はPostgreSQLを使用したブックマークリポジトリ。
type PostgresBookmarkRepo struct {
	db *sql.DB
}

// NewPostgresBookmarkRepo はPostgresBookmarkRepoを生成する。
func NewPostgresBookmarkRepo(db *sql.DB) *PostgresBookmarkRepo {
	return &PostgresBookmarkRepo{db: db}
}

// FindByID は指定IDのブックマークを取得する。見つからない場合はnilを返す。
func (r *PostgresBookmarkRepo) FindByID(ctx context.Context, id string) (*model.Bookmark, error) {
	return r.findOne(ctx,
		`SELECT id, post_id, bookmarked_by, created_at FROM bookmarks WHERE id = $1`,
		id,
	)
}

// FindByPostAndUser は記事とユーザーの組でブックマークを取得する。見つからない場合はnilを返す。
func (r *PostgresBookmarkRepo) FindByPostAndUser(ctx context.Context, postID, userID string) (*model.Bookmark, error) {
	return r.findOne(ctx,
		`SELECT id, post_id, bookmarked_by, created_at FROM bookmarks
		 WHERE post_id = $1 AND bookmarked_by = $2`,
		postID, userID,
	)
}

func (r *PostgresBookmarkRepo) findOne(ctx context.Context, query string, args ...interface{}) (*model.Bookmark, error) {
	b := &model.Bookmark{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.PostID, &b.BookmarkedBy, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find bookmark: %w", err)
	}
	return b, nil
}

// Create はブックマークを作成する。同じ組が既にある場合はErrDuplicateを返す。
func (r *PostgresBookmarkRepo) Create(ctx context.Context, b *model.Bookmark) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bookmarks (id, post_id, bookmarked_by, created_at) VALUES ($1, $2, $3, $4)`,
		b.ID, b.PostID, b.BookmarkedBy, b.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to insert bookmark: %w", err)
	}
	return nil
}

// Delete はブックマークを削除する。
func (r *PostgresBookmarkRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM bookmarks WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	return nil
}

// ListByUser はユーザーのブックマークを新しい順に記事と投稿者付きで返す。
func (r *PostgresBookmarkRepo) ListByUser(ctx context.Context, userID string) ([]model.BookmarkView, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT b.id,
		        p.id, p.image, p.title, p.subtitle, p.description, p.is_published, p.published_on,
		        u.id, u.full_name, u.avatar
		 FROM bookmarks b
		 JOIN posts p ON p.id = b.post_id
		 JOIN users u ON u.id = p.created_by
		 WHERE b.bookmarked_by = $1
		 ORDER BY b.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	views := []model.BookmarkView{}
	for rows.Next() {
		var bookmarkID string
		var bv model.BookmarkView
		var publishedOn sql.NullInt64
		if err := rows.Scan(&bookmarkID,
			&bv.Post.ID, &bv.Post.Image, &bv.Post.Title, &bv.Post.Subtitle, &bv.Post.Description,
			&bv.Post.IsPublished, &publishedOn,
			&bv.Post.Author.ID, &bv.Post.Author.FullName, &bv.Post.Author.Avatar,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		bv.ID = bookmarkID
		if publishedOn.Valid {
			bv.Post.PublishedOn = &publishedOn.Int64
		}
		bv.Post.Bookmark = &model.BookmarkRef{ID: bookmarkID}
		views = append(views, bv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookmarks: %w", err)
	}
	return views, nil
}

// compile-time interface check
var _ BookmarkRepository = (*PostgresBookmarkRepo)(nil)
