package profile

import (
	"os"
	"path/filepath"
	"testing"
)

func clearAttuneEnv() {
	for _, key := range []string{
		"ATTUNE_LLM_PROVIDER",
		"ATTUNE_LLM_API_KEY",
		"ATTUNE_LLM_BASE_URL",
		"ATTUNE_LLM_MODEL",
		"ATTUNE_LLM_TIMEOUT_SECONDS",
		"ATTUNE_LLM_RATE_LIMIT",
		"ATTUNE_CACHE_TTL_SECONDS",
		"ATTUNE_TRANSCRIPT_DSN",
		"ATTUNE_MODE",
	} {
		os.Unsetenv(key)
	}
}

func TestProfileDefaults(t *testing.T) {
	clearAttuneEnv()

	p := &Profile{}
	p.FromEnv()

	if p.AIEnabled {
		t.Errorf("AIEnabled: expected false without API key, got true")
	}
	if p.LLMProvider != "openai" {
		t.Errorf("LLMProvider: expected openai, got %q", p.LLMProvider)
	}
	if p.LLMBaseURL != "https://api.openai.com/v1" {
		t.Errorf("LLMBaseURL: expected provider default, got %q", p.LLMBaseURL)
	}
	if p.LLMModel != "gpt-4o" {
		t.Errorf("LLMModel: expected provider default, got %q", p.LLMModel)
	}
	if p.LLMTimeout != 120 {
		t.Errorf("LLMTimeout: expected 120, got %d", p.LLMTimeout)
	}
	if p.CacheTTLSeconds != 180 {
		t.Errorf("CacheTTLSeconds: expected 180, got %d", p.CacheTTLSeconds)
	}
}

func TestProfileFromEnv(t *testing.T) {
	clearAttuneEnv()
	t.Setenv("ATTUNE_LLM_PROVIDER", "deepseek")
	t.Setenv("ATTUNE_LLM_API_KEY", "test-key")
	t.Setenv("ATTUNE_CACHE_TTL_SECONDS", "60")

	p := &Profile{}
	p.FromEnv()

	if !p.AIEnabled {
		t.Errorf("AIEnabled: expected true with API key set")
	}
	if p.LLMProvider != "deepseek" {
		t.Errorf("LLMProvider: expected deepseek, got %q", p.LLMProvider)
	}
	if p.LLMBaseURL != "https://api.deepseek.com" {
		t.Errorf("LLMBaseURL: expected deepseek default, got %q", p.LLMBaseURL)
	}
	if p.CacheTTLSeconds != 60 {
		t.Errorf("CacheTTLSeconds: expected 60, got %d", p.CacheTTLSeconds)
	}
}

func TestProfileUnknownProviderFallsBack(t *testing.T) {
	clearAttuneEnv()
	t.Setenv("ATTUNE_LLM_PROVIDER", "not-a-provider")

	p := &Profile{}
	p.FromEnv()

	if p.LLMProvider != "openai" {
		t.Errorf("LLMProvider: expected fallback to openai, got %q", p.LLMProvider)
	}
}

func TestProfileValidate(t *testing.T) {
	clearAttuneEnv()

	p := &Profile{}
	p.FromEnv()
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: unexpected error: %v", err)
	}
	if p.Mode != "demo" {
		t.Errorf("Mode: expected demo fallback, got %q", p.Mode)
	}

	p.Mode = "prod"
	if err := p.Validate(); err == nil {
		t.Errorf("Validate: expected error for prod mode without API key")
	}

	p = &Profile{Mode: "dev", CacheTTLSeconds: -1, LLMTimeout: 30}
	if err := p.Validate(); err == nil {
		t.Errorf("Validate: expected error for negative cache TTL")
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearAttuneEnv()

	// Missing file is not an error.
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Fatalf("LoadEnvFile: unexpected error for missing file: %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("ATTUNE_LLM_MODEL=test-model\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile: %v", err)
	}
	defer os.Unsetenv("ATTUNE_LLM_MODEL")

	p := &Profile{}
	p.FromEnv()
	if p.LLMModel != "test-model" {
		t.Errorf("LLMModel: expected value from env file, got %q", p.LLMModel)
	}
}
