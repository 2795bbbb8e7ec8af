// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ハンドラーとミドルウェアから利用する。
type MetricsCollector interface {
	RecordHTTPStatus(statusCode int)
	RecordExtractSuccess(format string)
	RecordExtractFailure(format string)
	RecordGenerateLatency(duration time.Duration)
	RecordProfileSaved()
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus      *prometheus.CounterVec
	extractSuccess  *prometheus.CounterVec
	extractFail     *prometheus.CounterVec
	generateLatency prometheus.Histogram
	profilesSaved   prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resumebuilder_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		extractSuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resumebuilder_extract_success_total",
			Help: "テキスト抽出成功の合計数（形式別）",
		}, []string{"format"}),
		extractFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resumebuilder_extract_fail_total",
			Help: "テキスト抽出失敗の合計数（形式別）",
		}, []string{"format"}),
		generateLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "resumebuilder_generate_latency_seconds",
			Help:    "コンテンツ生成のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		profilesSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resumebuilder_profiles_saved_total",
			Help: "保存されたプロフィールの合計数",
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.extractSuccess,
		c.extractFail,
		c.generateLatency,
		c.profilesSaved,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordExtractSuccess はテキスト抽出成功を記録する。
func (c *Collector) RecordExtractSuccess(format string) {
	c.extractSuccess.WithLabelValues(format).Inc()
}

// RecordExtractFailure はテキスト抽出失敗を記録する。
func (c *Collector) RecordExtractFailure(format string) {
	c.extractFail.WithLabelValues(format).Inc()
}

// RecordGenerateLatency はコンテンツ生成のレイテンシを記録する。
func (c *Collector) RecordGenerateLatency(duration time.Duration) {
	c.generateLatency.Observe(duration.Seconds())
}

// RecordProfileSaved はプロフィール保存を記録する。
func (c *Collector) RecordProfileSaved() {
	c.profilesSaved.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var _ MetricsCollector = (*Collector)(nil)
