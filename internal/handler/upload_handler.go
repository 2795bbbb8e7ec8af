package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/flamesblue/resumebuilder/internal/middleware"
	"github.com/flamesblue/resumebuilder/internal/model"
)

// ExtractorInterface はアップロードハンドラーが必要とする抽出インターフェース。
type ExtractorInterface interface {
	// Extract はファイル名の拡張子に基づいてバイト列からプレーンテキストを抽出する。
	Extract(filename string, data []byte) (string, error)
}

// ExtractMetrics は抽出結果のメトリクス記録インターフェース。
type ExtractMetrics interface {
	RecordExtractSuccess(format string)
	RecordExtractFailure(format string)
}

// UploadHandler はファイルアップロードからのテキスト抽出HTTPハンドラー。
type UploadHandler struct {
	extractor     ExtractorInterface
	maxUploadSize int64
	storeReady    bool
	metrics       ExtractMetrics
}

// NewUploadHandler はUploadHandlerを生成する。
func NewUploadHandler(extractor ExtractorInterface, maxUploadSize int64, storeReady bool, metrics ExtractMetrics) *UploadHandler {
	return &UploadHandler{
		extractor:     extractor,
		maxUploadSize: maxUploadSize,
		storeReady:    storeReady,
		metrics:       metrics,
	}
}

// extractTextResponse はテキスト抽出のAPIレスポンス。
type extractTextResponse struct {
	Text string `json:"text"`
}

// ExtractText はマルチパートアップロードからテキストを抽出する。
// POST /upload/extract-text
func (h *UploadHandler) ExtractText(w http.ResponseWriter, r *http.Request) {
	// ストア未構成時は抽出自体を受け付けない
	if !h.storeReady {
		middleware.WriteErrorResponse(w, http.StatusInternalServerError, model.NewStoreUnavailableError())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidArgumentError("マルチパートフォームの解析に失敗しました"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidArgumentError("fileフィールドがありません"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewMalformedInputError(err.Error()))
		return
	}

	format := formatLabel(header.Filename)

	text, err := h.extractor.Extract(header.Filename, data)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordExtractFailure(format)
		}
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordExtractSuccess(format)
	}

	writeJSON(w, http.StatusOK, extractTextResponse{Text: text})
}

// formatLabel はメトリクスラベル用にファイル名から拡張子を取り出す。
func formatLabel(filename string) string {
	parts := strings.Split(filename, ".")
	return strings.ToLower(parts[len(parts)-1])
}
