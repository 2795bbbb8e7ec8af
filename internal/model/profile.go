package model

import "time"

// GeneratedContent はヒューリスティック生成された履歴書コンテンツの値オブジェクト。
// 単体では永続化されず、Profileに埋め込まれてJSONBとして保存される。
// 生成器から返されるbulletsは常に1件以上。
type GeneratedContent struct {
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Bullets     []string `json:"bullets"`
	CoverLetter string   `json:"cover_letter"`
	Header      string   `json:"header"`
	Footer      string   `json:"footer"`
	Advice      string   `json:"advice"`
}

// Profile は共有可能なプロフィールドキュメントを表す。
// share_slugを知っている呼び出し元は誰でも全文を取得できる（公開シェアリンク）。
type Profile struct {
	ID        string
	UserID    string
	Content   GeneratedContent
	LoomURL   *string
	PhotoURL  *string
	ShareSlug string
	CreatedAt time.Time
	UpdatedAt time.Time
}
