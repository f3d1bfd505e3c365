package repository

import (
	"fmt"
	"strings"

	"github.com/hitoshi/inkwell/internal/policy"
)

// feedQuery は記事ビュー取得用のSQLを段階ごとに組み立てる。
//
// 段階は固定で、どの組み合わせでも同じ順に出力される:
//  1. 基本フィルタ（WHERE）
//  2. 並び順（ORDER BY）
//  3. 閲覧者のブックマーク（LEFT JOIN LATERAL、最大1件）
//  4. 閲覧者が投稿者にフォローされているか（COALESCE(... = ANY(u.following), false)）
//  5. 投稿者の結合（JOIN users）
//  6. 射影（許可されたカラムのみ）
//
// 3と4は結合先が無くても記事を落とさず、nullまたはfalseに縮退する。
type feedQuery struct {
	viewer string // 閲覧者ID。空なら閲覧者スコープなし
	args   []interface{}
	where  []string
	order  policy.Ordering
	single bool
}

// newFeedQuery はクエリビルダを生成する。viewerIDが空でなければ$1に束縛される。
func newFeedQuery(viewerID string) *feedQuery {
	q := &feedQuery{viewer: viewerID}
	if viewerID != "" {
		q.args = append(q.args, viewerID)
	}
	return q
}

// bind は引数を追加してプレースホルダを返す。
func (q *feedQuery) bind(v interface{}) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

func (q *feedQuery) viewerScoped() bool {
	return q.viewer != ""
}

// published は公開済み記事に絞り込む。
func (q *feedQuery) published() *feedQuery {
	q.where = append(q.where, "p.is_published = true")
	return q
}

// drafts は未公開記事に絞り込む。
func (q *feedQuery) drafts() *feedQuery {
	q.where = append(q.where, "p.is_published = false")
	return q
}

// byID は単一記事に絞り込む。
func (q *feedQuery) byID(postID string) *feedQuery {
	q.where = append(q.where, "p.id = "+q.bind(postID)+"::uuid")
	q.single = true
	return q
}

// byAuthor は投稿者で絞り込む。
func (q *feedQuery) byAuthor(authorID string) *feedQuery {
	q.where = append(q.where, "p.created_by = "+q.bind(authorID)+"::uuid")
	return q
}

// followingViewer は投稿者のfollowingに閲覧者が含まれる記事に絞り込む。
// 閲覧者が投稿者をフォローしているか、ではない点に注意。
func (q *feedQuery) followingViewer() *feedQuery {
	q.where = append(q.where, "$1::uuid = ANY(u.following)")
	return q
}

// orderBy は並び順を指定する。
func (q *feedQuery) orderBy(o policy.Ordering) *feedQuery {
	q.order = o
	return q
}

// columns は射影するカラムを返す。閲覧者スコープの場合はブックマークIDとフォロー状態が続く。
func (q *feedQuery) columns() []string {
	cols := []string{
		"p.id", "p.image", "p.title", "p.subtitle", "p.description",
		"p.is_published", "p.published_on",
		"u.id", "u.full_name", "u.avatar",
	}
	if q.viewerScoped() {
		cols = append(cols,
			"b.id",
			"COALESCE($1::uuid = ANY(u.following), false) AS is_following",
		)
	}
	return cols
}

// build はSQLと引数を返す。
func (q *feedQuery) build() (string, []interface{}) {
	var sb strings.Builder

	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(q.columns(), ", "))
	sb.WriteString("\nFROM posts p")
	sb.WriteString("\nJOIN users u ON u.id = p.created_by")
	if q.viewerScoped() {
		sb.WriteString("\nLEFT JOIN LATERAL (SELECT bm.id FROM bookmarks bm WHERE bm.post_id = p.id AND bm.bookmarked_by = $1::uuid LIMIT 1) b ON true")
	}
	if len(q.where) > 0 {
		sb.WriteString("\nWHERE ")
		sb.WriteString(strings.Join(q.where, " AND "))
	}
	if q.order == policy.OrderNewestFirst {
		sb.WriteString("\nORDER BY p.published_on DESC NULLS LAST, p.created_at DESC")
	}
	if q.single {
		sb.WriteString("\nLIMIT 1")
	}

	return sb.String(), q.args
}
