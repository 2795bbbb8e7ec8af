package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/flamesblue/resumebuilder/internal/model"
)

// PostgresUserRepo はPostgreSQLを使用したユーザーリポジトリ。
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

// UpsertByEmail はemailの一意制約を利用してユーザーを作成または更新する。
// 衝突時はnewNameが空でなければnameを更新し、updated_atを進める。
// 読み取り→書き込みの2段階ではなく単一のアトミックな文で実行するため、
// 同一emailの同時サインインでも行は1つに収束する。
func (r *PostgresUserRepo) UpsertByEmail(ctx context.Context, user *model.User, newName string) (*model.User, error) {
	saved := &model.User{}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (id, email, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (email) DO UPDATE
		 SET name = CASE WHEN $6 <> '' THEN $6 ELSE users.name END,
		     updated_at = $5
		 RETURNING id, email, name, created_at, updated_at`,
		user.ID, user.Email, user.Name, user.CreatedAt, user.UpdatedAt, newName,
	).Scan(&saved.ID, &saved.Email, &saved.Name, &saved.CreatedAt, &saved.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return saved, nil
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
