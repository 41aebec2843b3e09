package profile

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Profile is the runtime configuration for the response core.
type Profile struct {
	// Unified LLM configuration (OpenAI-compatible protocol).
	// All providers (openai, deepseek, siliconflow, ollama) use the same config.
	LLMProvider string // Provider identifier: openai, deepseek, siliconflow, ollama
	LLMAPIKey   string
	LLMBaseURL  string // Optional, has a default per provider
	LLMModel    string
	LLMTimeout  int // LLM request timeout in seconds (default: 120)

	// Requests-per-second ceiling for the generative collaborator.
	// Zero disables client-side rate limiting.
	LLMRateLimit float64

	// Response cache tuning.
	CacheTTLSeconds int // default: 180

	// Transcript persistence. Empty DSN disables the transcript store.
	TranscriptDSN string

	Mode      string // demo, dev, prod
	AIEnabled bool
}

// Provider default configurations for LLM.
// Used when ATTUNE_LLM_BASE_URL is not explicitly set.
var llmProviderDefaults = map[string]struct {
	BaseURL string
	Model   string
}{
	"openai": {
		BaseURL: "https://api.openai.com/v1",
		Model:   "gpt-4o",
	},
	"deepseek": {
		BaseURL: "https://api.deepseek.com",
		Model:   "deepseek-chat",
	},
	"siliconflow": {
		BaseURL: "https://api.siliconflow.cn/v1",
		Model:   "Qwen/Qwen2.5-72B-Instruct",
	},
	"ollama": {
		BaseURL: "http://localhost:11434",
		Model:   "llama3.1",
	},
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if the generative collaborator is configured.
func (p *Profile) IsAIEnabled() bool {
	return p.LLMAPIKey != ""
}

// getEnvOrDefault returns environment variable value or default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default value.
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvOrDefaultFloat returns environment variable value as float64 or default value.
func getEnvOrDefaultFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// LoadEnvFile loads a .env file into the process environment.
// Missing files are not an error; a malformed file is.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "unable to load env file %s", path)
	}
	return nil
}

// FromEnv loads configuration from environment variables.
func (p *Profile) FromEnv() {
	p.LLMProvider = getEnvOrDefault("ATTUNE_LLM_PROVIDER", "openai")
	p.LLMAPIKey = getEnvOrDefault("ATTUNE_LLM_API_KEY", "")
	p.LLMBaseURL = getEnvOrDefault("ATTUNE_LLM_BASE_URL", "")
	p.LLMModel = getEnvOrDefault("ATTUNE_LLM_MODEL", "")
	p.LLMTimeout = getEnvOrDefaultInt("ATTUNE_LLM_TIMEOUT_SECONDS", 120)
	p.LLMRateLimit = getEnvOrDefaultFloat("ATTUNE_LLM_RATE_LIMIT", 0)

	p.CacheTTLSeconds = getEnvOrDefaultInt("ATTUNE_CACHE_TTL_SECONDS", 180)
	p.TranscriptDSN = getEnvOrDefault("ATTUNE_TRANSCRIPT_DSN", "")
	p.Mode = getEnvOrDefault("ATTUNE_MODE", p.Mode)

	// AI is enabled if API key is configured
	p.AIEnabled = p.LLMAPIKey != ""

	// Apply provider defaults if not explicitly set
	if _, ok := llmProviderDefaults[p.LLMProvider]; !ok {
		p.LLMProvider = "openai"
	}
	if defaults, ok := llmProviderDefaults[p.LLMProvider]; ok {
		if p.LLMBaseURL == "" {
			p.LLMBaseURL = defaults.BaseURL
		}
		if p.LLMModel == "" {
			p.LLMModel = defaults.Model
		}
	}
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}
	if p.LLMTimeout <= 0 {
		p.LLMTimeout = 120
	}
	if p.CacheTTLSeconds <= 0 {
		return errors.Errorf("invalid cache TTL: %d seconds", p.CacheTTLSeconds)
	}
	if p.LLMRateLimit < 0 {
		return errors.Errorf("invalid LLM rate limit: %f", p.LLMRateLimit)
	}
	if p.Mode == "prod" && p.LLMAPIKey == "" {
		return errors.New("LLM API key is required in prod mode")
	}
	return nil
}
