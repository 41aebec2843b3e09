// Package ai assembles the therapeutic response core from configuration:
// the LLM service, the analyzer set, the orchestrator, and their shared
// metrics exporter.
package ai

import (
	"context"

	"github.com/pkg/errors"

	"github.com/attune-ai/attune/ai/analyzers/facial"
	"github.com/attune-ai/attune/ai/core/llm"
	"github.com/attune-ai/attune/ai/metrics"
	"github.com/attune-ai/attune/ai/orchestrator"
	"github.com/attune-ai/attune/store"
)

// ResponseCore is the assembled pipeline plus the resources it owns. Callers
// embed it in their own serving layer; this package deliberately exposes no
// transport.
type ResponseCore struct {
	Orchestrator *orchestrator.Orchestrator
	Metrics      *metrics.Exporter

	llm         llm.Service
	transcripts *store.TranscriptStore
}

// NewResponseCore builds the default production wiring: the local facial
// analyzer for emotion, generative safety assessment and response
// generation through the configured LLM provider, and an optional SQLite
// transcript store. Wearables and context analyzers have no in-process
// default and stay absent unless the caller wires remote ones through
// orchestrator.New directly.
func NewResponseCore(cfg *Config) (*ResponseCore, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("ai is disabled")
	}

	svc, err := llm.NewService(&llm.Config{
		Provider:    cfg.LLM.Provider,
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
		RateLimit:   cfg.LLM.RateLimit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create llm service")
	}

	exporter := metrics.NewExporter(metrics.DefaultConfig())

	opts := []orchestrator.Option{
		orchestrator.WithMetrics(exporter),
	}
	if cfg.Orchestrator.CacheTTL > 0 {
		opts = append(opts, orchestrator.WithCacheTTL(cfg.Orchestrator.CacheTTL))
	}

	var transcripts *store.TranscriptStore
	if cfg.Orchestrator.TranscriptDSN != "" {
		transcripts, err = store.NewTranscriptStore(cfg.Orchestrator.TranscriptDSN)
		if err != nil {
			return nil, errors.Wrap(err, "open transcript store")
		}
		opts = append(opts, orchestrator.WithTranscripts(transcripts))
	}

	core := orchestrator.New(orchestrator.Analyzers{
		Emotion: facial.New(),
		Safety:  orchestrator.NewLLMSafetyAnalyzer(svc, exporter),
	}, orchestrator.NewLLMResponseGenerator(svc, exporter), opts...)

	return &ResponseCore{
		Orchestrator: core,
		Metrics:      exporter,
		llm:          svc,
		transcripts:  transcripts,
	}, nil
}

// Process delegates to the orchestrator entry point.
func (c *ResponseCore) Process(ctx context.Context, req *orchestrator.Request) *orchestrator.ComprehensiveResponse {
	return c.Orchestrator.Process(ctx, req)
}

// Warmup pre-establishes the LLM connection so the first real request does
// not pay the TLS and connection setup cost.
func (c *ResponseCore) Warmup(ctx context.Context) {
	c.llm.Warmup(ctx)
}

// Close releases owned resources. Safe to call when no transcript store was
// configured.
func (c *ResponseCore) Close() error {
	if c.transcripts != nil {
		return c.transcripts.Close()
	}
	return nil
}
