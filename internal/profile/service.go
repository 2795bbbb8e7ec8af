// Package profile は共有プロフィールの保存と取得を提供する。
package profile

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

// 共有スラッグの長さ。総当たりで推測されにくい程度の短いランダムキー。
const shareSlugLen = 10

// Service はプロフィールに関するビジネスロジックを提供する。
type Service struct {
	profileRepo repository.ProfileRepository
}

// NewService はServiceを生成する。
func NewService(profileRepo repository.ProfileRepository) *Service {
	return &Service{profileRepo: profileRepo}
}

// Save はプロフィールを新規作成する。更新のパスは存在しない。
// userIDはUUIDとしての形式のみ検証し、実在チェックは行わない。
func (s *Service) Save(ctx context.Context, userID string, content model.GeneratedContent, loomURL, photoURL *string) (*model.Profile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, model.NewInvalidArgumentError("user_idの形式が不正です")
	}

	now := time.Now()
	p := &model.Profile{
		ID:        uuid.New().String(),
		UserID:    userID,
		Content:   content,
		LoomURL:   loomURL,
		PhotoURL:  photoURL,
		ShareSlug: newShareSlug(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.profileRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	slog.Info("profile saved",
		slog.String("profile_id", p.ID),
		slog.String("user_id", userID),
		slog.String("share_slug", p.ShareSlug),
	)

	return p, nil
}

// GetBySlug は共有スラッグでプロフィールを取得する。
// アクセス制御は行わない（公開シェアリンク）。
func (s *Service) GetBySlug(ctx context.Context, slug string) (*model.Profile, error) {
	p, err := s.profileRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	if p == nil {
		return nil, model.NewProfileNotFoundError(slug)
	}
	return p, nil
}

// newShareSlug はランダムUUIDの16進表現の先頭10文字を共有スラッグとして返す。
// 一意性はprofiles.share_slugのUNIQUE制約が最終的に保証する。
func newShareSlug() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return hex[:shareSlugLen]
}
