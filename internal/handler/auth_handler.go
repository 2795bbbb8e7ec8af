package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/flamesblue/resumebuilder/internal/middleware"
	"github.com/flamesblue/resumebuilder/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// SignIn はemailでユーザーをupsertし、新しいセッションを発行する。
	SignIn(ctx context.Context, email, name string) (*model.Session, error)
}

// AuthHandler はサインインのHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
}

// NewAuthHandler はAuthHandlerを生成する。
// ストアが構成されていない場合、serviceはnilでよい。
func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// signInRequest はサインインリクエストのボディ。
type signInRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// signInResponse はサインインのAPIレスポンス。
type signInResponse struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

// SignIn はemailサインインを処理する。
// POST /auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		middleware.WriteErrorResponse(w, http.StatusInternalServerError, model.NewStoreUnavailableError())
		return
	}

	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidArgumentError("リクエストボディの解析に失敗しました"))
		return
	}

	session, err := h.service.SignIn(r.Context(), req.Email, req.Name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, signInResponse{
		UserID: session.UserID,
		Token:  session.Token,
	})
}
