package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/flamesblue/resumebuilder/internal/middleware"
	"github.com/flamesblue/resumebuilder/internal/model"
)

// ProfileServiceInterface はプロフィールハンドラーが必要とするサービスインターフェース。
type ProfileServiceInterface interface {
	// Save は生成コンテンツを共有スラッグ付きで永続化する。
	Save(ctx context.Context, userID string, content model.GeneratedContent, loomURL, photoURL *string) (*model.Profile, error)
	// GetBySlug は共有スラッグでプロフィールを取得する。
	GetBySlug(ctx context.Context, slug string) (*model.Profile, error)
}

// ProfileMetrics はプロフィール保存のメトリクス記録インターフェース。
type ProfileMetrics interface {
	RecordProfileSaved()
}

// ProfileHandler はプロフィール管理のHTTPハンドラー。
type ProfileHandler struct {
	service ProfileServiceInterface
	metrics ProfileMetrics
}

// NewProfileHandler はProfileHandlerを生成する。
// ストアが構成されていない場合、serviceはnilでよい。
func NewProfileHandler(service ProfileServiceInterface, metrics ProfileMetrics) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		metrics: metrics,
	}
}

// saveProfileRequest はプロフィール保存リクエストのボディ。
type saveProfileRequest struct {
	UserID   string                 `json:"user_id"`
	Content  model.GeneratedContent `json:"content"`
	LoomURL  *string                `json:"loom_url"`
	PhotoURL *string                `json:"photo_url"`
}

// saveProfileResponse はプロフィール保存のAPIレスポンス。
type saveProfileResponse struct {
	ProfileID string `json:"profile_id"`
	ShareSlug string `json:"share_slug"`
}

// profileResponse はプロフィール取得のAPIレスポンス。
// 識別子は文字列として返す。
type profileResponse struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id"`
	Content   model.GeneratedContent `json:"content"`
	LoomURL   *string                `json:"loom_url"`
	PhotoURL  *string                `json:"photo_url"`
	ShareSlug string                 `json:"share_slug"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// Save はプロフィール保存を処理する。
// POST /profile
func (h *ProfileHandler) Save(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		middleware.WriteErrorResponse(w, http.StatusInternalServerError, model.NewStoreUnavailableError())
		return
	}

	var req saveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidArgumentError("リクエストボディの解析に失敗しました"))
		return
	}

	profile, err := h.service.Save(r.Context(), req.UserID, req.Content, req.LoomURL, req.PhotoURL)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordProfileSaved()
	}

	writeJSON(w, http.StatusOK, saveProfileResponse{
		ProfileID: profile.ID,
		ShareSlug: profile.ShareSlug,
	})
}

// GetBySlug は共有スラッグによる公開プロフィール取得を処理する。
// アクセス制御は行わない。スラッグを知っていれば誰でも読める。
// GET /profile/{slug}
func (h *ProfileHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		middleware.WriteErrorResponse(w, http.StatusInternalServerError, model.NewStoreUnavailableError())
		return
	}

	slug := chi.URLParam(r, "slug")

	profile, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

// toProfileResponse はmodel.ProfileからAPIレスポンスに変換する。
func toProfileResponse(profile *model.Profile) profileResponse {
	return profileResponse{
		ID:        profile.ID,
		UserID:    profile.UserID,
		Content:   profile.Content,
		LoomURL:   profile.LoomURL,
		PhotoURL:  profile.PhotoURL,
		ShareSlug: profile.ShareSlug,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}
