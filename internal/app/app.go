// Package app はアプリケーションの起動と依存関係のワイヤリングを行う。
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/flamesblue/resumebuilder/internal/auth"
	"github.com/flamesblue/resumebuilder/internal/config"
	"github.com/flamesblue/resumebuilder/internal/database"
	"github.com/flamesblue/resumebuilder/internal/extract"
	"github.com/flamesblue/resumebuilder/internal/generate"
	"github.com/flamesblue/resumebuilder/internal/handler"
	"github.com/flamesblue/resumebuilder/internal/logger"
	"github.com/flamesblue/resumebuilder/internal/metrics"
	"github.com/flamesblue/resumebuilder/internal/profile"
	"github.com/flamesblue/resumebuilder/internal/repository"
)

// Init はアプリケーションの初期化を行う。
// JSON構造化ログをセットアップし、環境変数からConfigを読み込む。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) *config.Config {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	return config.Load()
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg := Init(w)

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe はAPIサーバーモードで起動する。
// DATABASE_URLが設定されていればDB接続を開き、ストア依存サービスをワイヤリングする。
// 未設定でもサーバーは起動し、ストア依存エンドポイントはSTORE_UNAVAILABLEを返す。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	deps := &handler.RouterDeps{
		Extractor: extract.NewExtractor(extract.Capabilities{
			PDF:  cfg.PDFEnabled,
			DOCX: cfg.DOCXEnabled,
		}),
		Generator:     generate.NewGenerator(),
		DatabaseURL:   cfg.DatabaseURL,
		MaxUploadSize: cfg.MaxUploadSize,
		Logger:        slog.Default(),
	}

	// メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	deps.Metrics = collector
	deps.MetricsHandler = metrics.Handler(registry)

	// ストアのワイヤリング（DATABASE_URLが設定されている場合のみ）
	if cfg.DatabaseURL != "" {
		db, err := database.Open(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			// 起動時に到達できなくてもサーバーは上げる。接続確立後に回復する
			slog.Warn("database unreachable at startup",
				slog.String("error", err.Error()),
			)
		} else {
			slog.Info("database connection established")
		}

		userRepo := repository.NewPostgresUserRepo(db)
		sessionRepo := repository.NewPostgresSessionRepo(db)
		profileRepo := repository.NewPostgresProfileRepo(db)

		diagnostics := database.NewDiagnostics(db)

		deps.AuthService = auth.NewService(userRepo, sessionRepo)
		deps.ProfileService = profile.NewService(profileRepo)
		deps.StoreReady = true
		deps.Pinger = diagnostics
		deps.Tables = diagnostics
	} else {
		slog.Warn("DATABASE_URL not set, store endpoints will be unavailable")
	}

	router := handler.NewRouter(deps)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for migrate")
	}

	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
