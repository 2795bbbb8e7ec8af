// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, upload, profile, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeStoreUnavailable      = "STORE_UNAVAILABLE"
	ErrCodeInvalidArgument       = "INVALID_ARGUMENT"
	ErrCodeCapabilityUnavailable = "CAPABILITY_UNAVAILABLE"
	ErrCodeMalformedInput        = "MALFORMED_INPUT"
	ErrCodeProfileNotFound       = "PROFILE_NOT_FOUND"
)

// 抽出失敗の診断メッセージの上限文字数。内部情報の漏洩を避けるため切り詰める。
const maxDiagnosticLen = 120

// NewStoreUnavailableError はデータストア未接続・操作失敗エラーを生成する。
func NewStoreUnavailableError() *APIError {
	return &APIError{
		Code:     ErrCodeStoreUnavailable,
		Message:  "データストアが利用できません。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewInvalidArgumentError は入力値が不正な場合のエラーを生成する。
func NewInvalidArgumentError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidArgument,
		Message:  fmt.Sprintf("入力値が不正です: %s", reason),
		Category: "validation",
		Action:   "リクエスト内容を確認してください。",
	}
}

// NewCapabilityUnavailableError は抽出バックエンドが無効化されている場合のエラーを生成する。
// 設定・環境の問題であり、アップロードされたファイル自体の問題ではない。
func NewCapabilityUnavailableError(format string) *APIError {
	return &APIError{
		Code:     ErrCodeCapabilityUnavailable,
		Message:  fmt.Sprintf("%sの抽出サポートが無効です。", format),
		Category: "upload",
		Action:   "別の形式（テキスト等）でアップロードするか、管理者に問い合わせてください。",
	}
}

// NewMalformedInputError はファイル解析失敗エラーを生成する。
// 診断メッセージは120文字に切り詰める。
func NewMalformedInputError(detail string) *APIError {
	if len(detail) > maxDiagnosticLen {
		detail = detail[:maxDiagnosticLen]
	}
	return &APIError{
		Code:     ErrCodeMalformedInput,
		Message:  fmt.Sprintf("ファイルの読み取りに失敗しました: %s", detail),
		Category: "upload",
		Action:   "ファイルが破損していないか確認してください。",
	}
}

// NewProfileNotFoundError は共有スラッグに対応するプロフィールが存在しない場合のエラーを生成する。
func NewProfileNotFoundError(slug string) *APIError {
	return &APIError{
		Code:     ErrCodeProfileNotFound,
		Message:  fmt.Sprintf("指定されたプロフィールが見つかりません: %s", slug),
		Category: "profile",
		Action:   "共有リンクのURLを確認してください。",
	}
}
