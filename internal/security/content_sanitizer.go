// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ContentSanitizerService は記事本文とコメントをサニタイズし、
// 保存されたコンテンツを通じたXSSを防ぐ。
// bluemondayライブラリを使用した許可リストベースのポリシーで、
// 安全なタグと属性のみを通過させる。
package security

import (
	"net/url"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizerService はユーザー投稿コンテンツのサニタイズ機能のインターフェースを定義する。
// 記事・コメントの保存前に使用される。
type ContentSanitizerService interface {
	// SanitizeHTML は記事本文のHTMLをサニタイズして安全なHTMLを返す。
	// 見出し、段落、リスト、引用、コード、強調、リンク、画像のみを通過させる。
	// a/imgのURLはhttpsスキームのみ許可される。
	// aタグにはtarget="_blank"とrel="noopener noreferrer"が自動付与される。
	SanitizeHTML(rawHTML string) string

	// SanitizeText はコメント用に全てのタグを除去したテキストを返す。
	SanitizeText(raw string) string
}

// contentSanitizer はContentSanitizerServiceの実装。
// bluemondayのポリシーはスレッドセーフなので共有して使う。
type contentSanitizer struct {
	html *bluemonday.Policy
	text *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerServiceの新しいインスタンスを生成する。
func NewContentSanitizer() *contentSanitizer {
	p := bluemonday.NewPolicy()

	// script, iframe, style等は許可リストに含めないことで除去される
	p.AllowElements(
		"h1", "h2", "h3", "h4",
		"p", "br", "hr", "ul", "ol", "li",
		"blockquote", "pre", "code",
		"strong", "em", "b", "i", "u", "s",
	)

	p.AllowAttrs("href").OnElements("a")
	p.AllowRelativeURLs(false)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)

	// リンクと画像のURLはhttpsのみ
	p.AllowAttrs("src").OnElements("img")
	p.AllowAttrs("alt").OnElements("img")
	p.AllowURLSchemeWithCustomPolicy("https", func(u *url.URL) bool {
		return true
	})

	return &contentSanitizer{
		html: p,
		text: bluemonday.StrictPolicy(),
	}
}

// SanitizeHTML は記事本文のHTMLをサニタイズする。
func (s *contentSanitizer) SanitizeHTML(rawHTML string) string {
	return s.html.Sanitize(rawHTML)
}

// SanitizeText は全てのタグを除去する。
func (s *contentSanitizer) SanitizeText(raw string) string {
	return s.text.Sanitize(raw)
}
