package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/flamesblue/resumebuilder/internal/model"
)

// PostgresProfileRepo はPostgreSQLを使用したプロフィールリポジトリ。
// 生成済みコンテンツはJSONBカラムにスナップショットとして埋め込む。
type PostgresProfileRepo struct {
	db *sql.DB
}

// NewPostgresProfileRepo はPostgresProfileRepoを生成する。
func NewPostgresProfileRepo(db *sql.DB) *PostgresProfileRepo {
	return &PostgresProfileRepo{db: db}
}

// Create はプロフィールを作成する。
func (r *PostgresProfileRepo) Create(ctx context.Context, profile *model.Profile) error {
	content, err := json.Marshal(profile.Content)
	if err != nil {
		return fmt.Errorf("failed to marshal profile content: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO profiles (id, user_id, content, loom_url, photo_url, share_slug, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		profile.ID, profile.UserID, content,
		nullableString(profile.LoomURL), nullableString(profile.PhotoURL),
		profile.ShareSlug, profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// FindBySlug は共有スラッグでプロフィールを検索する。見つからない場合はnilを返す。
func (r *PostgresProfileRepo) FindBySlug(ctx context.Context, slug string) (*model.Profile, error) {
	profile := &model.Profile{}
	var content []byte
	var loomURL, photoURL sql.NullString

	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, content, loom_url, photo_url, share_slug, created_at, updated_at
		 FROM profiles
		 WHERE share_slug = $1`,
		slug,
	).Scan(&profile.ID, &profile.UserID, &content, &loomURL, &photoURL,
		&profile.ShareSlug, &profile.CreatedAt, &profile.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile by slug: %w", err)
	}

	if err := json.Unmarshal(content, &profile.Content); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile content: %w", err)
	}
	if loomURL.Valid {
		profile.LoomURL = &loomURL.String
	}
	if photoURL.Valid {
		profile.PhotoURL = &photoURL.String
	}

	return profile, nil
}

// nullableString は空文字・nilをNULLとして保存するためのヘルパー。
func nullableString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// compile-time interface check
var _ ProfileRepository = (*PostgresProfileRepo)(nil)
