// Package auth はemailサインインとセッション発行を提供する。
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/flamesblue/resumebuilder/internal/model"
	"github.com/flamesblue/resumebuilder/internal/repository"
	"github.com/google/uuid"
)

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
}

// NewService はServiceを生成する。
func NewService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository) *Service {
	return &Service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

// SignIn はemailでユーザーをupsertし、新しいセッションを発行する。
// 同じemailでの再サインインは同一ユーザーに解決されるが、トークンは毎回新規。
// nameが空の場合、新規作成時はemailのローカルパートをnameとして使う。
// 既存ユーザーの場合はnameを維持する。
func (s *Service) SignIn(ctx context.Context, email, name string) (*model.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, model.NewInvalidArgumentError("emailが空です")
	}

	createName := name
	if createName == "" {
		createName = localPart(email)
	}

	now := time.Now()
	user := &model.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      createName,
		CreatedAt: now,
		UpdatedAt: now,
	}

	saved, err := s.userRepo.UpsertByEmail(ctx, user, name)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	session := &model.Session{
		ID:        uuid.New().String(),
		UserID:    saved.ID,
		Token:     uuid.New().String(),
		CreatedAt: now,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	slog.Info("user signed in",
		slog.String("user_id", saved.ID),
	)

	return session, nil
}

// localPart はemailの@より前の部分を返す。@がない場合は全体を返す。
func localPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
