// Package policy は記事の並び順と所有者チェックのルールを定義する。
package policy

import (
	"github.com/google/uuid"

	"github.com/hitoshi/inkwell/internal/model"
)

// Ordering は一覧クエリの並び順を表す。
type Ordering int

const (
	// OrderNatural は並び順を指定しない（ストレージの自然順）。
	OrderNatural Ordering = iota
	// OrderNewestFirst は公開日時の降順。公開日時を持たない記事は末尾に並ぶ。
	OrderNewestFirst
)

// SameUser は2つのユーザーIDが同じユーザーを指すかを判定する。
// 文字列ではなくUUIDの値として比較するため、大文字小文字やハイフン有無の違いは無視される。
// どちらかがUUIDとして解釈できない場合はfalseを返す。
func SameUser(a, b string) bool {
	ua, err := uuid.Parse(a)
	if err != nil {
		return false
	}
	ub, err := uuid.Parse(b)
	if err != nil {
		return false
	}
	return ua == ub
}

// RequireOwner は閲覧者がリソースの所有者であることを確認する。
// 所有者でない場合はmessageを持つForbiddenエラーを返す。
// 存在チェックは呼び出し側で先に済ませておくこと。
func RequireOwner(viewerID, ownerID, message string) error {
	if !SameUser(viewerID, ownerID) {
		return model.NewForbiddenError(message)
	}
	return nil
}
