// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// Following はフォローしたユーザーIDをフォロー順に保持する（重複なし）。
type User struct {
	ID           string
	FirstName    string
	LastName     string
	FullName     string
	Email        string
	PasswordHash string
	Avatar       string
	Following    []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullNameOf は姓名からフルネームを組み立てる。
func FullNameOf(firstName, lastName string) string {
	return firstName + " " + lastName
}

// Session はユーザーのログインセッションを表す。
// IDはBearerトークンとしてクライアントに渡される。
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
