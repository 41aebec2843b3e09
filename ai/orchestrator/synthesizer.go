package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// synthesize merges stage results into the unified response. The generation
// step always runs, even when every analyzer came back empty; missing blocks
// are forwarded as fixed placeholder strings. An error here means the
// generation step itself failed, which the entry point converts into the
// whole-response fallback. A panicking generator is caught here and reported
// the same way, so Process keeps its never-fails contract.
func (o *Orchestrator) synthesize(ctx context.Context, req *Request, results *stageResults, traceID string) (resp *ComprehensiveResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("synthesizer: panic during synthesis",
				"trace_id", traceID,
				"panic", r)
			resp, err = nil, fmt.Errorf("synthesis panicked: %v", r)
		}
	}()

	if o.generator == nil {
		return nil, fmt.Errorf("no response generator configured")
	}

	generated, err := o.generator.Generate(ctx, &GenerationInput{
		UserMessage:    req.UserMessage,
		HistorySummary: historySummary(req.ConversationHistory, contextHistoryTurns),
		EmotionSummary: emotionSummary(results.emotion),
		HealthSummary:  healthSummary(results.health),
		ContextSummary: contextSummary(results.context),
		SafetySummary:  safetySummary(results.safety),
		Profile:        req.UserProfile,
	})
	if err != nil {
		return nil, fmt.Errorf("generation step failed: %w", err)
	}
	if generated == nil || generated.ResponseText == "" {
		return nil, fmt.Errorf("generation step produced no response text")
	}

	resp = &ComprehensiveResponse{
		Response:           generated.ResponseText,
		EmotionAnalysis:    mergeEmotion(results.emotion),
		HealthAnalysis:     results.health,
		ContextualInsights: mergeContext(results.context),
		AvatarControl:      mergeAvatar(results.emotion),
		Interventions:      mergeInterventions(generated.Interventions),
		SafetyAssessment:   mergeSafety(results.safety),
		Metadata: ResponseMetadata{
			Timestamp:       time.Now(),
			TraceID:         traceID,
			ConfidenceScore: confidenceScore(results.emotion, results.context),
			DataQuality:     dataQuality(results),
		},
	}
	return resp, nil
}

// fallbackResponse is the minimal valid response produced when synthesis
// itself fails: fixed apology text, every field at its default.
func (o *Orchestrator) fallbackResponse(traceID string) *ComprehensiveResponse {
	return &ComprehensiveResponse{
		Response:           apologyResponse,
		EmotionAnalysis:    defaultEmotionAnalysis(),
		ContextualInsights: defaultContextualInsights(),
		AvatarControl:      defaultAvatarControl(),
		Interventions:      defaultInterventions(),
		SafetyAssessment:   defaultSafetyAssessment(),
		Metadata: ResponseMetadata{
			Timestamp:       time.Now(),
			TraceID:         traceID,
			ConfidenceScore: defaultEmotionConf,
			DataQuality: DataQuality{
				Emotional:  qualityEmotionalAbsent,
				Health:     qualityHealthAbsent,
				Contextual: qualityContextualAbsent,
			},
		},
	}
}

// Merge rules. Present analyzer values win; absent ones take the default
// constants from defaults.go.

func mergeEmotion(emotion *EmotionResult) EmotionAnalysis {
	if emotion == nil {
		return defaultEmotionAnalysis()
	}
	return EmotionAnalysis{
		Primary:       emotion.Primary,
		Confidence:    emotion.Confidence,
		DistressLevel: emotion.DistressLevel,
	}
}

func mergeContext(context *ContextResult) ContextualInsights {
	if context == nil {
		return defaultContextualInsights()
	}
	return ContextualInsights{
		TherapeuticIntent:   context.Intent,
		UrgencyLevel:        context.UrgencyLevel,
		SessionPhase:        context.SessionPhase,
		TherapeuticAlliance: context.TherapeuticAlliance,
	}
}

func mergeAvatar(emotion *EmotionResult) AvatarExpression {
	if emotion == nil || emotion.AvatarExpression == nil {
		return defaultAvatarControl()
	}
	return *emotion.AvatarExpression
}

func mergeInterventions(generated *Interventions) Interventions {
	if generated == nil {
		return defaultInterventions()
	}
	merged := *generated
	if merged.Immediate == nil {
		merged.Immediate = []string{}
	}
	if merged.Session == nil {
		merged.Session = []string{}
	}
	if merged.LongTerm == nil {
		merged.LongTerm = []string{}
	}
	return merged
}

func mergeSafety(safety *SafetyResult) SafetyResult {
	if safety == nil {
		return defaultSafetyAssessment()
	}
	merged := *safety
	if merged.Concerns == nil {
		merged.Concerns = []string{}
	}
	if merged.Actions == nil {
		merged.Actions = []string{}
	}
	return merged
}

// confidenceScore averages emotion confidence and context-intent confidence,
// each half defaulting to 0.5 when its analyzer is absent.
func confidenceScore(emotion *EmotionResult, context *ContextResult) float64 {
	emotionConf := defaultEmotionConf
	if emotion != nil {
		emotionConf = emotion.Confidence
	}
	intentConf := defaultEmotionConf
	if context != nil {
		intentConf = context.IntentConfidence
	}
	return (emotionConf + intentConf) / 2
}

func dataQuality(results *stageResults) DataQuality {
	q := DataQuality{
		Emotional:  qualityEmotionalAbsent,
		Health:     qualityHealthAbsent,
		Contextual: qualityContextualAbsent,
	}
	if results.emotion != nil {
		q.Emotional = qualityEmotionalPresent
	}
	if results.health != nil {
		q.Health = qualityHealthPresent
	}
	if results.context != nil {
		q.Contextual = qualityContextualPresent
	}
	return q
}

// Condensed summaries for the generation prompt: top-1 truncation of every
// list keeps the prompt bounded regardless of how chatty an analyzer was.

func emotionSummary(emotion *EmotionResult) string {
	if emotion == nil {
		return noEmotionSummary
	}
	s := fmt.Sprintf("primary=%s confidence=%.2f distress=%.2f",
		emotion.Primary, emotion.Confidence, emotion.DistressLevel)
	if len(emotion.Recommendations) > 0 {
		s += fmt.Sprintf("; top recommendation: %s", emotion.Recommendations[0])
	}
	return s
}

func healthSummary(health *HealthResult) string {
	if health == nil {
		return noHealthSummary
	}
	s := fmt.Sprintf("wellness=%.1f stress=%.2f sleep=%.2f activity=%.2f",
		health.WellnessScore, health.StressLevel, health.SleepQuality, health.ActivityLevel)
	if len(health.Alerts) > 0 {
		s += fmt.Sprintf("; top alert: [%s] %s", health.Alerts[0].Severity, health.Alerts[0].Message)
	}
	if len(health.Recommendations) > 0 {
		s += fmt.Sprintf("; top recommendation: %s", health.Recommendations[0])
	}
	return s
}

func contextSummary(context *ContextResult) string {
	if context == nil {
		return noContextSummary
	}
	return fmt.Sprintf("intent=%s (confidence=%.2f) urgency=%s phase=%s alliance=%.0f",
		context.Intent, context.IntentConfidence, context.UrgencyLevel,
		context.SessionPhase, context.TherapeuticAlliance)
}

func safetySummary(safety *SafetyResult) string {
	if safety == nil {
		return noSafetySummary
	}
	s := fmt.Sprintf("risk=%s follow_up=%t", safety.RiskLevel, safety.FollowUp)
	if len(safety.Concerns) > 0 {
		s += fmt.Sprintf("; top concern: %s", safety.Concerns[0])
	}
	if len(safety.Actions) > 0 {
		s += fmt.Sprintf("; top action: %s", safety.Actions[0])
	}
	return s
}
