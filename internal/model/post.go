// Package model はドメインモデルを定義する。
package model

import "time"

// Post はブログ記事を表す。
// PublishedOnは初めて公開された時刻（エポックミリ秒）で、一度設定されると変更されない。
type Post struct {
	ID          string
	Image       string
	Title       string
	Subtitle    string
	Description string
	IsPublished bool
	PublishedOn *int64
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Comment は記事へのコメントを表す。スレッド構造は持たない。
type Comment struct {
	ID        string
	PostID    string
	Body      string
	CommentBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Bookmark はユーザーが記事をブックマークしたことを表す。
// (PostID, BookmarkedBy) の組は一意。
type Bookmark struct {
	ID           string
	PostID       string
	BookmarkedBy string
	CreatedAt    time.Time
}

// EpochMillis は時刻をエポックミリ秒に変換する。
func EpochMillis(t time.Time) int64 {
	return t.UnixMilli()
}
