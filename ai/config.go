package ai

import (
	"time"

	"github.com/attune-ai/attune/internal/profile"
)

// Config represents AI configuration.
type Config struct {
	LLM          LLMConfig
	Orchestrator OrchestratorConfig
	Enabled      bool
}

// LLMConfig represents configuration for the generative collaborator.
type LLMConfig struct {
	Provider    string // openai, deepseek, siliconflow, ollama
	Model       string
	APIKey      string
	BaseURL     string
	MaxTokens   int     // default: 2048
	Temperature float32 // default: 0.7
	Timeout     int     // Request timeout in seconds (default: 120)
	RateLimit   float64 // Requests per second; 0 disables limiting
}

// OrchestratorConfig represents tuning for the response pipeline.
type OrchestratorConfig struct {
	CacheTTL      time.Duration
	TranscriptDSN string
}

// NewConfigFromProfile creates AI config from profile.
func NewConfigFromProfile(p *profile.Profile) *Config {
	cfg := &Config{
		Enabled: p.AIEnabled,
	}

	if !cfg.Enabled {
		return cfg
	}

	cfg.LLM = LLMConfig{
		Provider:    p.LLMProvider,
		Model:       p.LLMModel,
		APIKey:      p.LLMAPIKey,
		BaseURL:     p.LLMBaseURL,
		MaxTokens:   2048,
		Temperature: 0.7,
		Timeout:     p.LLMTimeout,
		RateLimit:   p.LLMRateLimit,
	}

	cfg.Orchestrator = OrchestratorConfig{
		CacheTTL:      time.Duration(p.CacheTTLSeconds) * time.Second,
		TranscriptDSN: p.TranscriptDSN,
	}

	return cfg
}
