// Package orchestrator coordinates the multimodal response pipeline: four
// analyzers fanned out in two dependency-ordered stages, a synthesis step
// that merges whatever partial results survived, and a short-lived response
// cache in front of it all.
//
// Architecture:
//
//	Request
//	    ↓
//	┌──────────────┐
//	│  Cache check │ ← fingerprint over bounded request fields
//	└──────┬───────┘
//	       │ miss
//	  ┌────┴────┐
//	  ↓         ↓
//	┌───────┐ ┌───────────┐
//	│Emotion│ │ Wearables │  ← Stage A (independent)
//	└───┬───┘ └─────┬─────┘
//	    └────┬──────┘
//	  ┌──────┴──────┐
//	  ↓             ↓
//	┌───────┐ ┌────────┐
//	│Context│ │ Safety │     ← Stage B (consume Stage A outputs)
//	└───┬───┘ └───┬────┘
//	    └────┬────┘
//	         ↓
//	┌──────────────┐
//	│  Synthesis   │ ← generation step + default table
//	└──────────────┘
//
// One analyzer's failure never blocks or fails the other three; the caller
// always receives a complete, schema-valid response.
package orchestrator

import (
	"context"
	"time"
)

// Request is the sole input to the orchestrator. UserMessage is required;
// every other field is optional and independently absent.
type Request struct {
	UserMessage         string             `json:"user_message"`
	ConversationHistory []ConversationTurn `json:"conversation_history,omitempty"`

	// ImageData is a base64-encoded capture frame, optionally with a data-URL prefix.
	ImageData     string          `json:"image_data,omitempty"`
	AudioFeatures *AudioFeatures  `json:"audio_features,omitempty"`
	WearablesData *WearablesData  `json:"wearables_data,omitempty"`
	UserProfile   *UserProfile    `json:"user_profile,omitempty"`
	Session       *SessionContext `json:"session,omitempty"`
}

// ConversationTurn is one prior exchange in the session.
type ConversationTurn struct {
	Speaker   string    `json:"speaker"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Emotions  []string  `json:"emotions,omitempty"`
	Intent    string    `json:"intent,omitempty"`
}

// AudioFeatures are prosodic features extracted by the capture layer.
type AudioFeatures struct {
	Pitch            float64   `json:"pitch"`
	Energy           float64   `json:"energy"`
	SpectralCentroid float64   `json:"spectral_centroid"`
	MFCC             []float64 `json:"mfcc,omitempty"`
	Duration         float64   `json:"duration"`
}

// WearablesData is the sensor payload forwarded from a paired device.
// Timestamp is required; individual signals are independently absent.
type WearablesData struct {
	HeartRate *float64      `json:"heart_rate,omitempty"`
	Sleep     *SleepData    `json:"sleep,omitempty"`
	Activity  *ActivityData `json:"activity,omitempty"`
	Stress    *float64      `json:"stress,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// SleepData summarizes the most recent sleep window.
type SleepData struct {
	Hours   float64 `json:"hours"`
	Quality float64 `json:"quality"` // 0-1
}

// ActivityData summarizes recent physical activity.
type ActivityData struct {
	Steps         int     `json:"steps"`
	ActiveMinutes float64 `json:"active_minutes"`
}

// UserProfile carries therapeutic context about the user. Preferences is an
// opaque key-value bag: unknown keys are forwarded untouched.
type UserProfile struct {
	Goals            []string          `json:"goals,omitempty"`
	Triggers         []string          `json:"triggers,omitempty"`
	CopingStrategies []string          `json:"coping_strategies,omitempty"`
	Preferences      map[string]string `json:"preferences,omitempty"`
}

// SessionContext identifies the ongoing therapy session.
type SessionContext struct {
	SessionID string        `json:"session_id"`
	Phase     string        `json:"phase"`
	Duration  time.Duration `json:"duration"`
}

// RiskLevel grades the safety assessment.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Valid reports whether the risk level is one of the four known grades.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	}
	return false
}

// EmotionResult is the emotion collaborator's partial result.
type EmotionResult struct {
	Primary          string            `json:"primary"`
	Confidence       float64           `json:"confidence"`           // 0-1
	DistressLevel    float64           `json:"distress_level"`       // 0-1
	Engagement       float64           `json:"engagement,omitempty"` // 0-1
	Attention        float64           `json:"attention,omitempty"`  // 0-1
	Recommendations  []string          `json:"recommendations,omitempty"`
	AvatarExpression *AvatarExpression `json:"avatar_expression,omitempty"`
}

// AvatarExpression directs the companion avatar's rendering.
type AvatarExpression struct {
	Expression     string  `json:"expression"`
	Intensity      float64 `json:"intensity"`
	Duration       float64 `json:"duration"` // seconds
	EmotionalState string  `json:"emotional_state"`
}

// HealthAlert is one wearables-derived warning.
type HealthAlert struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// HealthResult is the wearables collaborator's partial result.
type HealthResult struct {
	WellnessScore   float64       `json:"wellness_score"`
	StressLevel     float64       `json:"stress_level"`
	SleepQuality    float64       `json:"sleep_quality"`
	ActivityLevel   float64       `json:"activity_level"`
	Alerts          []HealthAlert `json:"alerts,omitempty"`
	Recommendations []string      `json:"recommendations,omitempty"`
}

// ContextResult is the context collaborator's partial result.
type ContextResult struct {
	Intent              string  `json:"intent"`
	IntentConfidence    float64 `json:"intent_confidence"`
	UrgencyLevel        string  `json:"urgency_level"`
	SessionPhase        string  `json:"session_phase"`
	TherapeuticAlliance float64 `json:"therapeutic_alliance"` // 0-100
}

// SafetyResult is the safety collaborator's structured assessment.
type SafetyResult struct {
	RiskLevel RiskLevel `json:"risk_level"`
	Concerns  []string  `json:"concerns"`
	Actions   []string  `json:"actions"`
	FollowUp  bool      `json:"follow_up"`
}

// Interventions is the three-tier plan attached to every response.
type Interventions struct {
	Immediate []string `json:"immediate"`
	Session   []string `json:"session"`
	LongTerm  []string `json:"long_term"`
}

// EmotionAnalysis is the merged emotion block of the final response.
type EmotionAnalysis struct {
	Primary       string  `json:"primary"`
	Confidence    float64 `json:"confidence"`
	DistressLevel float64 `json:"distress_level"`
}

// ContextualInsights is the merged context block of the final response.
type ContextualInsights struct {
	TherapeuticIntent   string  `json:"therapeutic_intent"`
	UrgencyLevel        string  `json:"urgency_level"`
	SessionPhase        string  `json:"session_phase"`
	TherapeuticAlliance float64 `json:"therapeutic_alliance"`
}

// DataQuality grades how much signal each modality contributed.
type DataQuality struct {
	Emotional  float64 `json:"emotional"`
	Health     float64 `json:"health"`
	Contextual float64 `json:"contextual"`
}

// ResponseMetadata describes how the response was produced.
type ResponseMetadata struct {
	Timestamp       time.Time   `json:"timestamp"`
	TraceID         string      `json:"trace_id"`
	ConfidenceScore float64     `json:"confidence_score"`
	DataQuality     DataQuality `json:"data_quality"`
}

// ComprehensiveResponse is the unified output object. It is always complete
// and schema-valid; degraded analysis shows up only as neutral default field
// values. HealthAnalysis is nil, not zeroed, when no wearables signal was
// available.
type ComprehensiveResponse struct {
	Response           string             `json:"response"`
	EmotionAnalysis    EmotionAnalysis    `json:"emotion_analysis"`
	HealthAnalysis     *HealthResult      `json:"health_analysis,omitempty"`
	ContextualInsights ContextualInsights `json:"contextual_insights"`
	AvatarControl      AvatarExpression   `json:"avatar_control"`
	Interventions      Interventions      `json:"interventions"`
	SafetyAssessment   SafetyResult       `json:"safety_assessment"`
	Metadata           ResponseMetadata   `json:"metadata"`
}

// EmotionInput is the narrowed payload forwarded to the emotion collaborator.
type EmotionInput struct {
	TextContent    string
	ImageData      string
	AudioFeatures  *AudioFeatures
	HistorySummary string
}

// ContextInput is the narrowed payload forwarded to the context collaborator.
// Emotional and Health are Stage A outputs and may be nil.
type ContextInput struct {
	CurrentMessage string
	HistorySummary string
	UserProfile    *UserProfile
	Emotional      *EmotionResult
	Health         *HealthResult
}

// SafetyInput is the narrowed payload forwarded to the safety collaborator.
type SafetyInput struct {
	CurrentMessage string
	HistorySummary string
	Emotional      *EmotionResult
	Health         *HealthResult
}

// EmotionAnalyzer fuses facial, vocal, and textual emotion signals.
type EmotionAnalyzer interface {
	Analyze(ctx context.Context, input *EmotionInput) (*EmotionResult, error)
}

// WearablesAnalyzer scores physiological signals from a paired device.
type WearablesAnalyzer interface {
	Analyze(ctx context.Context, data *WearablesData) (*HealthResult, error)
}

// ContextAnalyzer classifies therapeutic intent and session dynamics.
type ContextAnalyzer interface {
	Analyze(ctx context.Context, input *ContextInput) (*ContextResult, error)
}

// SafetyAnalyzer produces a structured risk assessment.
type SafetyAnalyzer interface {
	Assess(ctx context.Context, input *SafetyInput) (*SafetyResult, error)
}

// GenerationInput is the condensed summary fed to the response generator.
// Absent modalities arrive as fixed placeholder strings, never empty.
type GenerationInput struct {
	UserMessage    string
	HistorySummary string
	EmotionSummary string
	HealthSummary  string
	ContextSummary string
	SafetySummary  string
	Profile        *UserProfile
}

// GeneratedResponse is the therapeutic generation step's structured output.
type GeneratedResponse struct {
	ResponseText  string
	Interventions *Interventions
}

// ResponseGenerator produces the final therapeutic response text and
// intervention plan from merged analyzer summaries.
type ResponseGenerator interface {
	Generate(ctx context.Context, input *GenerationInput) (*GeneratedResponse, error)
}

// Analyzers bundles the four collaborator interfaces. Any entry may be nil;
// a nil analyzer behaves like one that always reports no result.
type Analyzers struct {
	Emotion   EmotionAnalyzer
	Wearables WearablesAnalyzer
	Context   ContextAnalyzer
	Safety    SafetyAnalyzer
}
