// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/hitoshi/inkwell/internal/model"
)

// ErrDuplicate は一意制約違反を表す。
// 呼び出し側はドメインごとのConflictエラーに変換する。
var ErrDuplicate = errors.New("duplicate key")

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。メールアドレスが重複する場合はErrDuplicateを返す。
	Create(ctx context.Context, user *model.User) error

	// UpdateProfile は氏名・メールアドレス・アバターを更新する。
	// メールアドレスが他ユーザーと重複する場合はErrDuplicateを返す。
	UpdateProfile(ctx context.Context, user *model.User) error

	// AddFollowing はfollowingの末尾にtargetIDを追加する。
	// 既にフォロー済みの場合は何もせずfalseを返す。
	AddFollowing(ctx context.Context, userID, targetID string) (bool, error)

	// RemoveFollowing はfollowingからtargetIDを取り除く。
	// フォローしていなかった場合はfalseを返す。
	RemoveFollowing(ctx context.Context, userID, targetID string) (bool, error)

	// ListFollowing はフォロー中のユーザーをフォロー順に縮約表現で返す。
	ListFollowing(ctx context.Context, userID string) ([]model.AuthorRef, error)
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
	// DeleteByUserID は指定ユーザーの全セッションを削除する。
	DeleteByUserID(ctx context.Context, userID string) error
	// DeleteExpired は期限切れのセッションを削除し、削除件数を返す。
	DeleteExpired(ctx context.Context) (int64, error)
}

// PostRepository は記事の単一エンティティ操作の永続化インターフェース。
type PostRepository interface {
	// FindByID は指定IDの記事を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Post, error)

	// Create は記事を作成する。
	Create(ctx context.Context, post *model.Post) error

	// Update は記事を更新する。
	// published_onは既に値がある場合は上書きしない。
	Update(ctx context.Context, post *model.Post) error

	// Delete は記事を削除する。コメントとブックマークはCASCADE削除される。
	Delete(ctx context.Context, id string) error
}

// FeedRepository は記事ビューを組み立てる読み取り専用クエリのインターフェース。
// 投稿者・ブックマーク・フォロー関係の結合はすべてSQL側で行う。
type FeedRepository interface {
	// ListPublished は公開済み記事を公開日時の降順で返す。閲覧者スコープなし。
	ListPublished(ctx context.Context) ([]model.PostView, error)

	// FindWithAuthor は公開状態を問わず記事を投稿者付きで返す。閲覧者スコープなし。
	// 見つからない場合はnilを返す。
	FindWithAuthor(ctx context.Context, postID string) (*model.PostView, error)

	// ListPublishedForViewer は公開済み記事を公開日時の降順で、閲覧者のブックマークと
	// フォロー状態を付けて返す。
	ListPublishedForViewer(ctx context.Context, viewerID string) ([]model.PostView, error)

	// FindForViewer は単一記事を閲覧者のブックマークとフォロー状態付きで返す。
	// 見つからない場合はnilを返す。
	FindForViewer(ctx context.Context, viewerID, postID string) (*model.PostView, error)

	// ListHome は投稿者のfollowingに閲覧者が含まれる公開済み記事を公開日時の降順で返す。
	ListHome(ctx context.Context, viewerID string) ([]model.PostView, error)

	// ListByAuthor は投稿者自身の記事を公開状態で絞り込んで返す。並び順は指定しない。
	ListByAuthor(ctx context.Context, authorID string, published bool) ([]model.PostView, error)
}

// CommentRepository はコメントデータの永続化インターフェース。
type CommentRepository interface {
	// FindByID は指定IDのコメントを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Comment, error)
	// Create はコメントを作成する。
	Create(ctx context.Context, comment *model.Comment) error
	// Update はコメント本文を更新する。
	Update(ctx context.Context, comment *model.Comment) error
	// Delete はコメントを削除する。
	Delete(ctx context.Context, id string) error
	// ListByPost は記事のコメントを投稿順に投稿者の縮約表現付きで返す。
	ListByPost(ctx context.Context, postID string) ([]model.CommentView, error)
}

// BookmarkRepository はブックマークデータの永続化インターフェース。
type BookmarkRepository interface {
	// FindByID は指定IDのブックマークを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Bookmark, error)
	// FindByPostAndUser は記事とユーザーの組でブックマークを取得する。見つからない場合はnilを返す。
	FindByPostAndUser(ctx context.Context, postID, userID string) (*model.Bookmark, error)
	// Create はブックマークを作成する。同じ組が既にある場合はErrDuplicateを返す。
	Create(ctx context.Context, bookmark *model.Bookmark) error
	// Delete はブックマークを削除する。
	Delete(ctx context.Context, id string) error
	// ListByUser はユーザーのブックマークを新しい順に記事と投稿者付きで返す。
	ListByUser(ctx context.Context, userID string) ([]model.BookmarkView, error)
}
