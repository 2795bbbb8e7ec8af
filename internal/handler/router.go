package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/flamesblue/resumebuilder/internal/metrics"
	"github.com/flamesblue/resumebuilder/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
// ストア未構成時はAuthService / ProfileService / Pinger / Tablesをnilにし、
// StoreReadyをfalseにする。該当エンドポイントはSTORE_UNAVAILABLEを返す。
type RouterDeps struct {
	// サービス
	AuthService    AuthServiceInterface
	ProfileService ProfileServiceInterface
	Extractor      ExtractorInterface
	Generator      GeneratorInterface

	// ストア診断
	StoreReady  bool
	Pinger      HealthPinger
	Tables      TableLister
	DatabaseURL string

	// アップロード制限
	MaxUploadSize int64

	// 観測性
	Logger         *slog.Logger
	Metrics        metrics.MetricsCollector
	MetricsHandler http.Handler
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したハンドラーを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → Recovery → Logging → ハンドラー
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.Metrics))

	rootHandler := NewRootHandler(deps.Pinger)
	authHandler := NewAuthHandler(deps.AuthService)
	uploadHandler := NewUploadHandler(deps.Extractor, deps.MaxUploadSize, deps.StoreReady, deps.Metrics)
	generateHandler := NewGenerateHandler(deps.Generator, deps.Metrics)
	profileHandler := NewProfileHandler(deps.ProfileService, deps.Metrics)
	diagHandler := NewDiagHandler(deps.Tables, deps.DatabaseURL)

	r.Get("/", rootHandler.Root)
	r.Get("/health", rootHandler.Health)
	r.Post("/auth/signin", authHandler.SignIn)
	r.Post("/upload/extract-text", uploadHandler.ExtractText)
	r.Post("/generate", generateHandler.Generate)

	r.Post("/profile", profileHandler.Save)
	r.Get("/profile/{slug}", profileHandler.GetBySlug)

	r.Get("/test", diagHandler.Status)

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// 全オリジン・全メソッド・全ヘッダー許可、資格情報あり。
	// ベアラートークンはボディで返すためCookieに依存しない。
	c := cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return c.Handler(r)
}
