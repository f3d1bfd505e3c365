package model

// AuthorRef は投稿者の縮約表現。
// パスワード、メールアドレス、フォローリストは含めない。
type AuthorRef struct {
	ID       string
	FullName string
	Avatar   string
}

// BookmarkRef はブックマークの縮約表現（IDのみ）。
type BookmarkRef struct {
	ID string
}

// PostView はフィード系クエリが返す非正規化された記事表現。
// Bookmarkは閲覧者がブックマークしていない場合nil。
// IsFollowingは投稿者のフォローリストに閲覧者が含まれる場合のみtrue。
// 閲覧者スコープのないクエリではBookmark/IsFollowingはゼロ値のまま。
type PostView struct {
	ID          string
	Image       string
	Title       string
	Subtitle    string
	Description string
	IsPublished bool
	PublishedOn *int64
	Author      AuthorRef
	Bookmark    *BookmarkRef
	IsFollowing bool
}

// CommentView はコメント一覧の表現。投稿者は縮約表現で埋め込む。
type CommentView struct {
	ID        string
	Body      string
	CommentBy AuthorRef
}

// BookmarkView はブックマーク一覧の表現。記事と投稿者を埋め込む。
type BookmarkView struct {
	ID   string
	Post PostView
}
