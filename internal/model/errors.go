package model

import "fmt"

// APIError はクライアントに返すエラーを表す。
// MessageはレスポンスJSONの "message" としてそのまま返される。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, post, comment, bookmark, user, system
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeInvalidID          = "INVALID_ID"
	ErrCodeAuthTokenMissing   = "AUTH_TOKEN_MISSING"
	ErrCodeAuthTokenInvalid   = "AUTH_TOKEN_INVALID"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodePostNotFound       = "POST_NOT_FOUND"
	ErrCodeBlogPostNotFound   = "BLOG_POST_NOT_FOUND"
	ErrCodeCommentNotFound    = "COMMENT_NOT_FOUND"
	ErrCodeBookmarkNotFound   = "BOOKMARK_NOT_FOUND"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeNotFollowing       = "NOT_FOLLOWING"
	ErrCodeAlreadyBookmarked  = "ALREADY_BOOKMARKED"
	ErrCodeAlreadyFollowing   = "ALREADY_FOLLOWING"
	ErrCodeEmailExists        = "EMAIL_EXISTS"
	ErrCodeSelfFollow         = "SELF_FOLLOW"
)

// NewInvalidRequestError はリクエスト内容が不正な場合のエラーを生成する。
func NewInvalidRequestError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  message,
		Category: "validation",
	}
}

// NewInvalidIDError はIDの形式が不正な場合のエラーを生成する。
func NewInvalidIDError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidID,
		Message:  "Invalid id.",
		Category: "validation",
	}
}

// NewAuthTokenMissingError は認証トークンが送られていない場合のエラーを生成する。
func NewAuthTokenMissingError() *APIError {
	return &APIError{
		Code:     ErrCodeAuthTokenMissing,
		Message:  "Authentication token missing",
		Category: "auth",
	}
}

// NewAuthTokenInvalidError は認証トークンが無効または期限切れの場合のエラーを生成する。
func NewAuthTokenInvalidError() *APIError {
	return &APIError{
		Code:     ErrCodeAuthTokenInvalid,
		Message:  "Wrong authentication token",
		Category: "auth",
	}
}

// NewInvalidCredentialsError はログイン時のメールアドレスまたはパスワードが誤っている場合のエラーを生成する。
// どちらが誤っているかは区別しない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "Wrong credentials provided",
		Category: "auth",
	}
}

// NewForbiddenError は所有者以外が操作しようとした場合のエラーを生成する。
func NewForbiddenError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  message,
		Category: "auth",
	}
}

// NewPostNotFoundError は記事が存在しない場合のエラーを生成する（HTTP 409）。
func NewPostNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodePostNotFound,
		Message:  "Post does not exist.",
		Category: "post",
	}
}

// NewBlogPostNotFoundError はコメント操作の対象記事が存在しない場合のエラーを生成する（HTTP 404）。
func NewBlogPostNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeBlogPostNotFound,
		Message:  "Blog post does not exist.",
		Category: "comment",
	}
}

// NewCommentNotFoundError はコメントが存在しない場合のエラーを生成する。
func NewCommentNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeCommentNotFound,
		Message:  "Comment does not exist.",
		Category: "comment",
	}
}

// NewBookmarkNotFoundError はブックマークが存在しない場合のエラーを生成する。
func NewBookmarkNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeBookmarkNotFound,
		Message:  "Bookmarked post not found.",
		Category: "bookmark",
	}
}

// NewAlreadyBookmarkedError は同じ記事を二重にブックマークしようとした場合のエラーを生成する。
func NewAlreadyBookmarkedError() *APIError {
	return &APIError{
		Code:     ErrCodeAlreadyBookmarked,
		Message:  "Post was already bookmarked.",
		Category: "bookmark",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "User does not exist.",
		Category: "user",
	}
}

// NewAlreadyFollowingError は既にフォロー済みのユーザーをフォローしようとした場合のエラーを生成する。
func NewAlreadyFollowingError() *APIError {
	return &APIError{
		Code:     ErrCodeAlreadyFollowing,
		Message:  "User is already followed.",
		Category: "user",
	}
}

// NewNotFollowingError はフォローしていないユーザーを解除しようとした場合のエラーを生成する。
func NewNotFollowingError() *APIError {
	return &APIError{
		Code:     ErrCodeNotFollowing,
		Message:  "User is not followed.",
		Category: "user",
	}
}

// NewSelfFollowError は自分自身をフォローしようとした場合のエラーを生成する。
func NewSelfFollowError() *APIError {
	return &APIError{
		Code:     ErrCodeSelfFollow,
		Message:  "You cannot follow yourself.",
		Category: "validation",
	}
}

// NewEmailExistsError はメールアドレスが既に登録されている場合のエラーを生成する。
func NewEmailExistsError(email string) *APIError {
	return &APIError{
		Code:     ErrCodeEmailExists,
		Message:  fmt.Sprintf("Your email %s already exists", email),
		Category: "user",
	}
}
