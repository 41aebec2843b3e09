package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeInterventions_NilSlicesNormalized(t *testing.T) {
	merged := mergeInterventions(&Interventions{Immediate: []string{"pause"}})

	assert.Equal(t, []string{"pause"}, merged.Immediate)
	assert.NotNil(t, merged.Session)
	assert.NotNil(t, merged.LongTerm)
	assert.Empty(t, merged.Session)
}

func TestMergeSafety_NilSlicesNormalized(t *testing.T) {
	merged := mergeSafety(&SafetyResult{RiskLevel: RiskHigh, FollowUp: true})

	assert.Equal(t, RiskHigh, merged.RiskLevel)
	assert.NotNil(t, merged.Concerns)
	assert.NotNil(t, merged.Actions)
}

func TestMergeAvatar_FallsBackWithoutExpression(t *testing.T) {
	// Emotion present but without an avatar directive still yields the default.
	merged := mergeAvatar(&EmotionResult{Primary: "sad", Confidence: 0.8})
	assert.Equal(t, "empathetic", merged.Expression)

	withAvatar := mergeAvatar(sampleEmotionResult())
	assert.Equal(t, "concerned", withAvatar.Expression)
}

func TestConfidenceScore(t *testing.T) {
	assert.Equal(t, 0.5, confidenceScore(nil, nil))
	assert.InDelta(t, 0.7, confidenceScore(&EmotionResult{Confidence: 0.9}, nil), 1e-9)
	assert.InDelta(t, 0.65, confidenceScore(nil, &ContextResult{IntentConfidence: 0.8}), 1e-9)
	assert.InDelta(t, 0.85,
		confidenceScore(&EmotionResult{Confidence: 0.9}, &ContextResult{IntentConfidence: 0.8}), 1e-9)
}

func TestDataQuality_PerModality(t *testing.T) {
	assert.Equal(t,
		DataQuality{Emotional: 0.3, Health: 0.0, Contextual: 0.5},
		dataQuality(&stageResults{}))

	assert.Equal(t,
		DataQuality{Emotional: 0.8, Health: 0.0, Contextual: 0.8},
		dataQuality(&stageResults{emotion: sampleEmotionResult(), context: sampleContextResult()}))

	assert.Equal(t,
		DataQuality{Emotional: 0.8, Health: 0.9, Contextual: 0.8},
		dataQuality(&stageResults{
			emotion: sampleEmotionResult(),
			health:  sampleHealthResult(),
			context: sampleContextResult(),
		}))
}

func TestSummaries_TopOneTruncation(t *testing.T) {
	emotion := sampleEmotionResult()
	emotion.Recommendations = []string{"first", "second", "third"}
	s := emotionSummary(emotion)
	assert.Contains(t, s, "top recommendation: first")
	assert.NotContains(t, s, "second")

	health := sampleHealthResult()
	health.Alerts = append(health.Alerts, HealthAlert{Type: "hr", Severity: "info", Message: "elevated"})
	hs := healthSummary(health)
	assert.Contains(t, hs, "top alert: [warning]")
	assert.NotContains(t, hs, "elevated")

	ss := safetySummary(sampleSafetyResult())
	assert.Contains(t, ss, "risk=medium")
	assert.Contains(t, ss, "top concern: persistent worry")
}

func TestSummaries_AbsencePlaceholders(t *testing.T) {
	assert.Equal(t, "No emotion analysis available", emotionSummary(nil))
	assert.Equal(t, "No health analysis available", healthSummary(nil))
	assert.Equal(t, "No context analysis available", contextSummary(nil))
	assert.Equal(t, "No safety analysis available", safetySummary(nil))
}
