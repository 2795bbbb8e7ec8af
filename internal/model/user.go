// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// emailを一意キーとして初回サインイン時に作成され、以降のサインインで
// name/updated_atが更新される。このシステムからは削除されない。
type User struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Session はサインインごとに発行されるベアラートークンを表す。
// 再利用・期限切れ・削除のロジックは持たない。
type Session struct {
	ID        string
	UserID    string
	Token     string
	CreatedAt time.Time
}
