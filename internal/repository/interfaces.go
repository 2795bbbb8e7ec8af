// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/flamesblue/resumebuilder/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// UpsertByEmail はemailの一意制約を利用してユーザーを作成または更新する。
	// 新規の場合はuserの全フィールドで行を作成する。既存emailと衝突した場合は
	// newNameが空でなければnameを更新し、updated_atを進めて既存行を返す。
	// 同時サインインの競合はストアの制約側で単一行に収束する。
	UpsertByEmail(ctx context.Context, user *model.User, newName string) (*model.User, error)
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
}

// ProfileRepository はプロフィールデータの永続化インターフェース。
type ProfileRepository interface {
	// Create はプロフィールを作成する。上書き・更新のパスは存在しない。
	Create(ctx context.Context, profile *model.Profile) error

	// FindBySlug は共有スラッグでプロフィールを検索する。見つからない場合はnilを返す。
	FindBySlug(ctx context.Context, slug string) (*model.Profile, error)
}
