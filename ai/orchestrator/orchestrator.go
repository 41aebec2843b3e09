package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/attune-ai/attune/ai/cache"
	"github.com/attune-ai/attune/ai/metrics"
	"github.com/attune-ai/attune/store"
)

// defaultMaxParallelAnalyzers bounds in-flight collaborator calls across all
// concurrently processed requests.
const defaultMaxParallelAnalyzers = 8

// Orchestrator is the public call surface of the response core. It owns the
// response cache exclusively; the cache is the only state shared across
// concurrently in-flight requests.
type Orchestrator struct {
	analyzers   Analyzers
	generator   ResponseGenerator
	cache       *cache.Store[*ComprehensiveResponse]
	sem         *semaphore.Weighted
	metrics     *metrics.Exporter      // may be nil
	transcripts *store.TranscriptStore // may be nil
}

// Option configures the orchestrator.
type Option func(*options)

type options struct {
	cacheTTL    time.Duration
	maxParallel int
	metrics     *metrics.Exporter
	transcripts *store.TranscriptStore
}

// WithCacheTTL overrides the response cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.cacheTTL = ttl
		}
	}
}

// WithMaxParallelAnalyzers bounds concurrent collaborator calls.
func WithMaxParallelAnalyzers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxParallel = n
		}
	}
}

// WithMetrics attaches a Prometheus exporter.
func WithMetrics(e *metrics.Exporter) Option {
	return func(o *options) { o.metrics = e }
}

// WithTranscripts attaches a transcript store; exchanges are recorded
// best-effort after synthesis.
func WithTranscripts(s *store.TranscriptStore) Option {
	return func(o *options) { o.transcripts = s }
}

// New creates an orchestrator with its own cache. The cache is constructed
// here and injected nowhere else, so tests get full isolation by
// constructing their own orchestrator.
func New(analyzers Analyzers, generator ResponseGenerator, opts ...Option) *Orchestrator {
	cfg := &options{
		cacheTTL:    cache.DefaultTTL,
		maxParallel: defaultMaxParallelAnalyzers,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Orchestrator{
		analyzers:   analyzers,
		generator:   generator,
		cache:       cache.NewStore[*ComprehensiveResponse](cfg.cacheTTL),
		sem:         newStageSemaphore(cfg.maxParallel),
		metrics:     cfg.metrics,
		transcripts: cfg.transcripts,
	}
}

// Process handles one request end to end: cache check, two-stage analysis,
// synthesis, cache write. It never fails: any unrecovered synthesis error is
// converted into a minimal valid apology response, so the caller always
// receives a complete ComprehensiveResponse.
func (o *Orchestrator) Process(ctx context.Context, req *Request) *ComprehensiveResponse {
	startTime := time.Now()
	traceID := uuid.NewString()

	if req == nil {
		req = &Request{}
	}

	slog.Info("orchestrator: processing request",
		"trace_id", traceID,
		"message_length", len(req.UserMessage),
		"history_turns", len(req.ConversationHistory),
		"has_image", req.ImageData != "",
		"has_audio", req.AudioFeatures != nil,
		"has_wearables", req.WearablesData != nil)

	key := cache.Fingerprint(req.UserMessage, len(req.ConversationHistory),
		req.ImageData != "", req.AudioFeatures != nil, req.WearablesData != nil)

	if cached, ok := o.cache.Get(key); ok {
		if o.metrics != nil {
			o.metrics.RecordCacheHit()
			o.metrics.RecordRequest("hit", time.Since(startTime))
		}
		slog.Info("orchestrator: cache hit",
			"trace_id", traceID,
			"key", key,
			"duration_ms", time.Since(startTime).Milliseconds())
		return cached
	}
	if o.metrics != nil {
		o.metrics.RecordCacheMiss()
	}

	results := o.runStages(ctx, req, traceID)

	resp, err := o.synthesize(ctx, req, results, traceID)
	status := "ok"
	if err != nil {
		slog.Error("orchestrator: synthesis failed, serving fallback response",
			"trace_id", traceID,
			"error", err)
		resp = o.fallbackResponse(traceID)
		status = "fallback"
	}

	// Fallbacks are not cached: the next identical request deserves a fresh
	// attempt at a full response.
	if status == "ok" {
		o.cache.Set(key, resp)
	}

	o.recordTranscript(ctx, req, resp, traceID)

	if o.metrics != nil {
		o.metrics.RecordRequest(status, time.Since(startTime))
	}

	slog.Info("orchestrator: request completed",
		"trace_id", traceID,
		"status", status,
		"risk_level", string(resp.SafetyAssessment.RiskLevel),
		"duration_ms", time.Since(startTime).Milliseconds())

	return resp
}

// recordTranscript persists the exchange when a transcript store is
// attached. Failures are logged and swallowed; persistence never affects
// the response.
func (o *Orchestrator) recordTranscript(ctx context.Context, req *Request, resp *ComprehensiveResponse, traceID string) {
	if o.transcripts == nil {
		return
	}

	sessionID := ""
	if req.Session != nil {
		sessionID = req.Session.SessionID
	}

	if _, err := o.transcripts.Record(ctx, store.TranscriptEntry{
		SessionID:   sessionID,
		TraceID:     traceID,
		UserMessage: req.UserMessage,
		Response:    resp.Response,
		RiskLevel:   string(resp.SafetyAssessment.RiskLevel),
	}); err != nil {
		slog.Warn("orchestrator: transcript write failed",
			"trace_id", traceID,
			"error", err)
	}
}
