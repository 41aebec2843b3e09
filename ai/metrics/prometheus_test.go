package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestExporter(t *testing.T) {
	exporter := NewExporter(DefaultConfig())

	t.Run("RecordRequest", func(t *testing.T) {
		exporter.RecordRequest("ok", 100*time.Millisecond)
		exporter.RecordRequest("ok", 200*time.Millisecond)
		exporter.RecordRequest("fallback", 150*time.Millisecond)
		exporter.RecordRequest("hit", 1*time.Millisecond)
	})

	t.Run("RecordStageLatency", func(t *testing.T) {
		exporter.RecordStageLatency("a", 50*time.Millisecond)
		exporter.RecordStageLatency("b", 80*time.Millisecond)
	})

	t.Run("RecordAnalyzerError", func(t *testing.T) {
		exporter.RecordAnalyzerError("emotion", "error")
		exporter.RecordAnalyzerError("safety", "panic")
	})

	t.Run("RecordCache", func(t *testing.T) {
		exporter.RecordCacheHit()
		exporter.RecordCacheHit()
		exporter.RecordCacheMiss()
	})

	t.Run("RecordLLMTokens", func(t *testing.T) {
		exporter.RecordLLMTokens("safety", 120)
		exporter.RecordLLMTokens("response", 340)
	})
}

func TestExporterHandler(t *testing.T) {
	exporter := NewExporter(DefaultConfig())

	exporter.RecordRequest("ok", 100*time.Millisecond)
	exporter.RecordStageLatency("a", 50*time.Millisecond)
	exporter.RecordCacheHit()
	exporter.RecordLLMTokens("response", 100)

	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	w := httptest.NewRecorder()

	exporter.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	body := w.Body.String()
	for _, metric := range []string{
		"attune_orchestrator_requests_total",
		"attune_orchestrator_stage_latency_seconds",
		"attune_orchestrator_cache_hits_total",
		"attune_orchestrator_llm_tokens_total",
	} {
		if !strings.Contains(body, metric) {
			t.Errorf("expected %s metric in output", metric)
		}
	}
}

func TestExporterCustomBuckets(t *testing.T) {
	exporter := NewExporter(Config{LatencyBuckets: []float64{0.1, 1}})
	exporter.RecordRequest("ok", 50*time.Millisecond)

	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	w := httptest.NewRecorder()
	exporter.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func BenchmarkExporter(b *testing.B) {
	exporter := NewExporter(DefaultConfig())

	b.Run("RecordRequest", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			exporter.RecordRequest("ok", 100*time.Millisecond)
		}
	})

	b.Run("RecordCacheHit", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			exporter.RecordCacheHit()
		}
	})
}
