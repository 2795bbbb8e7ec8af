// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"context"
	"net/http"
)

// HealthPinger はヘルスチェックで使用する死活確認インターフェース。
// database.Diagnosticsを直接参照せず、最小限のインターフェースとして定義する。
type HealthPinger interface {
	Ping(ctx context.Context) error
}

// RootHandler はルートとヘルスチェックのHTTPハンドラー。
type RootHandler struct {
	pinger HealthPinger
}

// NewRootHandler はRootHandlerを生成する。
// ストアが構成されていない場合、pingerはnilでよい。
func NewRootHandler(pinger HealthPinger) *RootHandler {
	return &RootHandler{pinger: pinger}
}

// Root は稼働確認メッセージを返す。
// GET /
func (h *RootHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Resume Builder API running",
	})
}

// Health はサービスの健全性を返す。
// ストア未構成の場合はストアなしの稼働として200を返し、
// 構成済みでPingに失敗した場合は503を返す。
// GET /health
func (h *RootHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.pinger == nil {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":   "ok",
			"database": "not configured",
		})
		return
	}

	if err := h.pinger.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "unhealthy",
			"database": "unreachable",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"database": "ok",
	})
}
