package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewCollector_ReturnsNonNil(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	if c == nil {
		t.Fatal("expected non-nil Collector")
	}
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) (float64, bool) {
	t.Helper()
	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() == name {
			var total float64
			for _, m := range mf.GetMetric() {
				total += m.GetCounter().GetValue()
			}
			return total, true
		}
	}
	return 0, false
}

func TestRecordHTTPStatus_CountsByStatusCode(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(404)

	val, found := counterValue(t, reg, "resumebuilder_http_status_total")
	if !found {
		t.Fatal("resumebuilder_http_status_total metric not found")
	}
	if val != 3 {
		t.Errorf("http_status_total = %v, want 3", val)
	}
}

func TestRecordExtractOutcomes_IncrementCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordExtractSuccess("pdf")
	c.RecordExtractSuccess("docx")
	c.RecordExtractFailure("pdf")

	success, found := counterValue(t, reg, "resumebuilder_extract_success_total")
	if !found {
		t.Fatal("resumebuilder_extract_success_total metric not found")
	}
	if success != 2 {
		t.Errorf("extract_success_total = %v, want 2", success)
	}

	fail, found := counterValue(t, reg, "resumebuilder_extract_fail_total")
	if !found {
		t.Fatal("resumebuilder_extract_fail_total metric not found")
	}
	if fail != 1 {
		t.Errorf("extract_fail_total = %v, want 1", fail)
	}
}

func TestRecordProfileSaved_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordProfileSaved()
	c.RecordProfileSaved()

	val, found := counterValue(t, reg, "resumebuilder_profiles_saved_total")
	if !found {
		t.Fatal("resumebuilder_profiles_saved_total metric not found")
	}
	if val != 2 {
		t.Errorf("profiles_saved_total = %v, want 2", val)
	}
}

func TestRecordGenerateLatency_ObservesHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordGenerateLatency(15 * time.Millisecond)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range metrics {
		if mf.GetName() == "resumebuilder_generate_latency_seconds" {
			found = true
			if count := mf.GetMetric()[0].GetHistogram().GetSampleCount(); count != 1 {
				t.Errorf("histogram sample count = %d, want 1", count)
			}
		}
	}
	if !found {
		t.Error("resumebuilder_generate_latency_seconds metric not found")
	}
}

func TestHandler_ServesPrometheusExposition(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordHTTPStatus(200)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("failed to scrape metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if !strings.Contains(string(body), "resumebuilder_http_status_total") {
		t.Error("exposition should contain resumebuilder_http_status_total")
	}
}
