package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/inkwell/internal/model"
)

// PostgresPostRepo はPostgreSQLを使用した記事リポジトリ。
type PostgresPostRepo struct {
	db *sql.DB
}

// NewPostgresPostRepo はPostgresPostRepoを生成する。
func NewPostgresPostRepo(db *sql.DB) *PostgresPostRepo {
	return &PostgresPostRepo{db: db}
}

// FindByID は指定IDの記事を取得する。見つからない場合はnilを返す。
func (r *PostgresPostRepo) FindByID(ctx context.Context, id string) (*model.Post, error) {
	post := &model.Post{}
	var publishedOn sql.NullInt64

	err := r.db.QueryRowContext(ctx,
		`SELECT id, image, title, subtitle, description, is_published, published_on,
		        created_by, created_at, updated_at
		 FROM posts WHERE id = $1`,
		id,
	).Scan(
		&post.ID, &post.Image, &post.Title, &post.Subtitle, &post.Description,
		&post.IsPublished, &publishedOn,
		&post.CreatedBy, &post.CreatedAt, &post.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("記事の取得に失敗しました: %w", err)
	}

	if publishedOn.Valid {
		post.PublishedOn = &publishedOn.Int64
	}
	return post, nil
}

// Create は記事を作成する。
func (r *PostgresPostRepo) Create(ctx context.Context, post *model.Post) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (id, image, title, subtitle, description, is_published, published_on,
		                    created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		post.ID, post.Image, post.Title, post.Subtitle, post.Description,
		post.IsPublished, post.PublishedOn,
		post.CreatedBy, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("記事の作成に失敗しました: %w", err)
	}
	return nil
}

// Update は記事を更新する。
// published_onは既に値がある場合は上書きせず、更新後の値をpost.PublishedOnに反映する。
func (r *PostgresPostRepo) Update(ctx context.Context, post *model.Post) error {
	var publishedOn sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`UPDATE posts
		 SET image = $2, title = $3, subtitle = $4, description = $5, is_published = $6,
		     published_on = COALESCE(published_on, $7), updated_at = $8
		 WHERE id = $1
		 RETURNING published_on`,
		post.ID, post.Image, post.Title, post.Subtitle, post.Description, post.IsPublished,
		post.PublishedOn, post.UpdatedAt,
	).Scan(&publishedOn)
	if err != nil {
		return fmt.Errorf("記事の更新に失敗しました: %w", err)
	}

	post.PublishedOn = nil
	if publishedOn.Valid {
		post.PublishedOn = &publishedOn.Int64
	}
	return nil
}

// Delete は記事を削除する。
func (r *PostgresPostRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM posts WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("記事の削除に失敗しました: %w", err)
	}
	return nil
}

// compile-time interface check
var _ PostRepository = (*PostgresPostRepo)(nil)
