package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/attune-ai/attune/ai/core/llm"
	"github.com/attune-ai/attune/ai/metrics"
)

// LLMSafetyAnalyzer implements SafetyAnalyzer with a structured-generation
// call against the configured LLM provider.
type LLMSafetyAnalyzer struct {
	llm      llm.Service
	exporter *metrics.Exporter // may be nil
}

// NewLLMSafetyAnalyzer creates the generative safety collaborator.
// exporter may be nil.
func NewLLMSafetyAnalyzer(svc llm.Service, exporter *metrics.Exporter) *LLMSafetyAnalyzer {
	return &LLMSafetyAnalyzer{llm: svc, exporter: exporter}
}

// safetyWire is the collaborator's JSON shape.
type safetyWire struct {
	RiskLevel string   `json:"risk_level"`
	Concerns  []string `json:"concerns"`
	Actions   []string `json:"actions"`
	FollowUp  bool     `json:"follow_up"`
}

func safetySchema() *llm.JSONSchema {
	return llm.ObjectSchema(map[string]*llm.JSONSchema{
		"risk_level": llm.StringSchema("overall risk grade", "low", "medium", "high", "critical"),
		"concerns":   llm.ArraySchema("observed concerns, most important first", llm.StringSchema("one concern")),
		"actions":    llm.ArraySchema("recommended actions, most important first", llm.StringSchema("one action")),
		"follow_up":  llm.BooleanSchema("whether a follow-up check is needed"),
	})
}

func (a *LLMSafetyAnalyzer) Assess(ctx context.Context, input *SafetyInput) (*SafetyResult, error) {
	messages := []llm.Message{
		llm.SystemPrompt(safetySystemPrompt),
		llm.UserMessage(buildSafetyPrompt(input)),
	}

	content, stats, err := a.llm.ChatJSON(ctx, messages, "safety_assessment", safetySchema())
	if err != nil {
		return nil, fmt.Errorf("safety assessment call failed: %w", err)
	}
	if a.exporter != nil && stats != nil {
		a.exporter.RecordLLMTokens("safety", stats.TotalTokens)
	}

	var wire safetyWire
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		return nil, fmt.Errorf("safety assessment returned malformed JSON: %w", err)
	}

	result := &SafetyResult{
		RiskLevel: RiskLevel(wire.RiskLevel),
		Concerns:  wire.Concerns,
		Actions:   wire.Actions,
		FollowUp:  wire.FollowUp,
	}
	if result.Concerns == nil {
		result.Concerns = []string{}
	}
	if result.Actions == nil {
		result.Actions = []string{}
	}
	return result, nil
}

// LLMResponseGenerator implements ResponseGenerator with a structured
// therapeutic-response call against the configured LLM provider.
type LLMResponseGenerator struct {
	llm      llm.Service
	exporter *metrics.Exporter // may be nil
}

// NewLLMResponseGenerator creates the generative response collaborator.
// exporter may be nil.
func NewLLMResponseGenerator(svc llm.Service, exporter *metrics.Exporter) *LLMResponseGenerator {
	return &LLMResponseGenerator{llm: svc, exporter: exporter}
}

// responseWire is the generation step's JSON shape.
type responseWire struct {
	Response      string `json:"response"`
	Interventions struct {
		Immediate []string `json:"immediate"`
		Session   []string `json:"session"`
		LongTerm  []string `json:"long_term"`
	} `json:"interventions"`
}

func responseSchema() *llm.JSONSchema {
	interventionTier := func(desc string) *llm.JSONSchema {
		return llm.ArraySchema(desc, llm.StringSchema("one actionable intervention"))
	}
	return llm.ObjectSchema(map[string]*llm.JSONSchema{
		"response": llm.StringSchema("supportive therapeutic response, 2-4 sentences"),
		"interventions": llm.ObjectSchema(map[string]*llm.JSONSchema{
			"immediate": interventionTier("interventions for right now"),
			"session":   interventionTier("interventions for this conversation"),
			"long_term": interventionTier("interventions beyond today"),
		}),
	})
}

func (g *LLMResponseGenerator) Generate(ctx context.Context, input *GenerationInput) (*GeneratedResponse, error) {
	messages := []llm.Message{
		llm.SystemPrompt(responseSystemPrompt),
		llm.UserMessage(buildResponsePrompt(input)),
	}

	content, stats, err := g.llm.ChatJSON(ctx, messages, "therapeutic_response", responseSchema())
	if err != nil {
		return nil, fmt.Errorf("therapeutic response call failed: %w", err)
	}
	if g.exporter != nil && stats != nil {
		g.exporter.RecordLLMTokens("response", stats.TotalTokens)
	}

	var wire responseWire
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		return nil, fmt.Errorf("therapeutic response returned malformed JSON: %w", err)
	}
	if wire.Response == "" {
		return nil, fmt.Errorf("therapeutic response missing response text")
	}

	return &GeneratedResponse{
		ResponseText: wire.Response,
		Interventions: &Interventions{
			Immediate: wire.Interventions.Immediate,
			Session:   wire.Interventions.Session,
			LongTerm:  wire.Interventions.LongTerm,
		},
	}, nil
}
