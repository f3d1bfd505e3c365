package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/hitoshi/inkwell/internal/model"
)

// PostgresUserRepo はPostgreSQLを使用したユーザーリポジトリ。
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

const userColumns = `id, first_name, last_name, full_name, email, password_hash, avatar, following, created_at, updated_at`

func scanUser(s rowScanner) (*model.User, error) {
	user := &model.User{}
	var following pq.StringArray
	err := s.Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.FullName,
		&user.Email, &user.PasswordHash, &user.Avatar, &following,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Following = []string(following)
	return user, nil
}

// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// FindByEmail はメールアドレスでユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// Create はユーザーを作成する。メールアドレスが重複する場合はErrDuplicateを返す。
func (r *PostgresUserRepo) Create(ctx context.Context, user *model.User) error {
	following := user.Following
	if following == nil {
		following = []string{}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, first_name, last_name, full_name, email, password_hash, avatar, following, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8::uuid[], $9, $10)`,
		user.ID, user.FirstName, user.LastName, user.FullName, user.Email,
		user.PasswordHash, user.Avatar, pq.Array(following), user.CreatedAt, user.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// UpdateProfile は氏名・メールアドレス・アバターを更新する。
func (r *PostgresUserRepo) UpdateProfile(ctx context.Context, user *model.User) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET first_name = $2, last_name = $3, full_name = $4, email = $5, avatar = $6, updated_at = $7
		 WHERE id = $1`,
		user.ID, user.FirstName, user.LastName, user.FullName, user.Email, user.Avatar, user.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// AddFollowing はfollowingの末尾にtargetIDを追加する。既にフォロー済みならfalseを返す。
// 判定と追加を1文で行うため、同時実行されても重複は生じない。
func (r *PostgresUserRepo) AddFollowing(ctx context.Context, userID, targetID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET following = array_append(following, $2::uuid), updated_at = now()
		 WHERE id = $1 AND NOT ($2::uuid = ANY(following))`,
		userID, targetID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to add following: %w", err)
	}
	return affected(result)
}

// RemoveFollowing はfollowingからtargetIDを取り除く。フォローしていなければfalseを返す。
func (r *PostgresUserRepo) RemoveFollowing(ctx context.Context, userID, targetID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET following = array_remove(following, $2::uuid), updated_at = now()
		 WHERE id = $1 AND $2::uuid = ANY(following)`,
		userID, targetID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to remove following: %w", err)
	}
	return affected(result)
}

// ListFollowing はフォロー中のユーザーをフォロー順に返す。
func (r *PostgresUserRepo) ListFollowing(ctx context.Context, userID string) ([]model.AuthorRef, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.full_name, u.avatar
		 FROM users me
		 CROSS JOIN LATERAL unnest(me.following) WITH ORDINALITY AS f(user_id, ord)
		 JOIN users u ON u.id = f.user_id
		 WHERE me.id = $1
		 ORDER BY f.ord`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}
	defer rows.Close()

	refs := []model.AuthorRef{}
	for rows.Next() {
		var ref model.AuthorRef
		if err := rows.Scan(&ref.ID, &ref.FullName, &ref.Avatar); err != nil {
			return nil, fmt.Errorf("failed to scan following: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate following: %w", err)
	}
	return refs, nil
}

// affected は更新件数が1件以上あったかを返す。
func affected(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
