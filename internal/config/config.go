// Package config は環境変数からのアプリケーション設定読み込みを提供する。
package config

import (
	"os"
	"strconv"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	// DATABASE_URLは任意。未設定の場合、ストア依存のエンドポイントは
	// store unavailable（500）を返しつつサーバー自体は起動する。
	DatabaseURL string

	// Server
	ServerPort string

	// Upload
	// マルチパートアップロードの最大サイズ（バイト）。
	MaxUploadSize int64

	// Extraction capabilities
	// 抽出バックエンドの有効・無効は起動時の設定で決まり、
	// リクエスト処理時にフラグとして参照される。
	PDFEnabled  bool
	DOCXEnabled bool
}

// Load は環境変数からConfigを読み込む。
// すべての項目にデフォルト値があるため、エラーは返さない。
func Load() *Config {
	return &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		ServerPort:    getEnvString("SERVER_PORT", "8080"),
		MaxUploadSize: getEnvInt64("MAX_UPLOAD_SIZE", 10<<20),
		PDFEnabled:    getEnvBool("PDF_ENABLED", true),
		DOCXEnabled:   getEnvBool("DOCX_ENABLED", true),
	}
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}
