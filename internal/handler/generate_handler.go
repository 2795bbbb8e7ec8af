package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/flamesblue/resumebuilder/internal/middleware"
	"github.com/flamesblue/resumebuilder/internal/model"
)

// GeneratorInterface は生成ハンドラーが必要とする生成インターフェース。
type GeneratorInterface interface {
	// Generate は職務記述書とユーザー素材からコンテンツバンドルを生成する。
	Generate(jobDescription, userMaterial string) (*model.GeneratedContent, error)
}

// GenerateMetrics は生成レイテンシのメトリクス記録インターフェース。
type GenerateMetrics interface {
	RecordGenerateLatency(duration time.Duration)
}

// GenerateHandler はコンテンツ生成のHTTPハンドラー。
type GenerateHandler struct {
	generator GeneratorInterface
	metrics   GenerateMetrics
}

// NewGenerateHandler はGenerateHandlerを生成する。
func NewGenerateHandler(generator GeneratorInterface, metrics GenerateMetrics) *GenerateHandler {
	return &GenerateHandler{
		generator: generator,
		metrics:   metrics,
	}
}

// generateRequest はコンテンツ生成リクエストのボディ。
// user_idは受け付けるが生成処理では使用しない。
type generateRequest struct {
	UserID         string `json:"user_id"`
	JobDescription string `json:"job_description"`
	UserMaterial   string `json:"user_material"`
}

// Generate はコンテンツ生成を処理する。
// POST /generate
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidArgumentError("リクエストボディの解析に失敗しました"))
		return
	}

	start := time.Now()
	content, err := h.generator.Generate(req.JobDescription, req.UserMaterial)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordGenerateLatency(time.Since(start))
	}

	writeJSON(w, http.StatusOK, content)
}
