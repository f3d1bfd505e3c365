package handler

import (
	"github.com/hitoshi/inkwell/internal/model"
)

// authorResponse は投稿者の縮約表現。パスワードやメールアドレスは含めない。
type authorResponse struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

// bookmarkRefResponse はブックマークの縮約表現。
type bookmarkRefResponse struct {
	ID string `json:"id"`
}

// postResponse は記事ビューのAPIレスポンス。
// ImageとSubtitleは射影ごとに含めるかを切り替える。
type postResponse struct {
	ID          string         `json:"id"`
	Image       *string        `json:"image,omitempty"`
	Title       string         `json:"title"`
	Subtitle    *string        `json:"subtitle,omitempty"`
	Description string         `json:"description"`
	IsPublished bool           `json:"isPublished"`
	PublishedOn *int64         `json:"publishedOn"`
	CreatedBy   authorResponse `json:"createdBy"`
}

// viewerPostResponse は閲覧者スコープ付きの記事ビュー。
// bookmarkedは未ブックマークの場合null、isFollowingは常に含める。
type viewerPostResponse struct {
	postResponse
	Bookmarked  *bookmarkRefResponse `json:"bookmarked"`
	IsFollowing bool                 `json:"isFollowing"`
}

// postEntityResponse は作成・更新後の記事エンティティ。
type postEntityResponse struct {
	ID          string `json:"id"`
	Image       string `json:"image"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	IsPublished bool   `json:"isPublished"`
	PublishedOn *int64 `json:"publishedOn"`
	CreatedBy   string `json:"createdBy"`
}

// commentResponse はコメントエンティティのAPIレスポンス。
type commentResponse struct {
	ID        string `json:"id"`
	PostID    string `json:"postId"`
	Comment   string `json:"comment"`
	CommentBy string `json:"commentBy"`
}

// commentViewResponse はコメント一覧の要素。
type commentViewResponse struct {
	ID        string         `json:"id"`
	Comment   string         `json:"comment"`
	CommentBy authorResponse `json:"commentBy"`
}

// bookmarkResponse はブックマークエンティティのAPIレスポンス。
type bookmarkResponse struct {
	ID           string `json:"id"`
	PostID       string `json:"postId"`
	BookmarkedBy string `json:"bookmarkedBy"`
}

// bookmarkViewResponse はブックマーク一覧の要素。
type bookmarkViewResponse struct {
	ID   string       `json:"id"`
	Post postResponse `json:"post"`
}

// userResponse はユーザープロフィールのAPIレスポンス。パスワードハッシュは含めない。
type userResponse struct {
	ID        string   `json:"id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	FullName  string   `json:"fullName"`
	Email     string   `json:"email"`
	Avatar    string   `json:"avatar"`
	Following []string `json:"following"`
}

// loginResponse はログイン成功時のAPIレスポンス。
type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

// --- 変換関数 ---

func toAuthorResponse(a model.AuthorRef) authorResponse {
	return authorResponse{
		ID:       a.ID,
		FullName: a.FullName,
		Avatar:   a.Avatar,
	}
}

// toPostResponse は副題付きの標準射影に変換する。
func toPostResponse(v model.PostView) postResponse {
	subtitle := v.Subtitle
	return postResponse{
		ID:          v.ID,
		Title:       v.Title,
		Subtitle:    &subtitle,
		Description: v.Description,
		IsPublished: v.IsPublished,
		PublishedOn: v.PublishedOn,
		CreatedBy:   toAuthorResponse(v.Author),
	}
}

// toExploreResponse は一覧向けの射影に変換する。副題は含めない。
func toExploreResponse(v model.PostView) postResponse {
	resp := toPostResponse(v)
	resp.Subtitle = nil
	return resp
}

// toEditResponse は編集画面向けの射影に変換する。画像URLも含める。
func toEditResponse(v model.PostView) postResponse {
	resp := toPostResponse(v)
	image := v.Image
	resp.Image = &image
	return resp
}

func toViewerPostResponse(v model.PostView) viewerPostResponse {
	resp := viewerPostResponse{
		postResponse: toPostResponse(v),
		IsFollowing:  v.IsFollowing,
	}
	if v.Bookmark != nil {
		resp.Bookmarked = &bookmarkRefResponse{ID: v.Bookmark.ID}
	}
	return resp
}

// mapViews は記事ビューの一覧を変換する。空の場合も空配列を返す。
func mapViews[T any](views []model.PostView, convert func(model.PostView) T) []T {
	out := make([]T, 0, len(views))
	for _, v := range views {
		out = append(out, convert(v))
	}
	return out
}

func toPostEntityResponse(p *model.Post) postEntityResponse {
	return postEntityResponse{
		ID:          p.ID,
		Image:       p.Image,
		Title:       p.Title,
		Subtitle:    p.Subtitle,
		Description: p.Description,
		IsPublished: p.IsPublished,
		PublishedOn: p.PublishedOn,
		CreatedBy:   p.CreatedBy,
	}
}

func toCommentResponse(c *model.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		Comment:   c.Body,
		CommentBy: c.CommentBy,
	}
}

func toBookmarkResponse(b *model.Bookmark) bookmarkResponse {
	return bookmarkResponse{
		ID:           b.ID,
		PostID:       b.PostID,
		BookmarkedBy: b.BookmarkedBy,
	}
}

func toUserResponse(u *model.User) userResponse {
	following := u.Following
	if following == nil {
		following = []string{}
	}
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Following: following,
	}
}
