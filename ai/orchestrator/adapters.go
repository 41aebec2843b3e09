package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// History suffix lengths per adapter. Forwarding the whole conversation to
// every collaborator would dominate payload size and latency; the recent
// turns carry nearly all of the signal.
const (
	emotionHistoryTurns = 2
	contextHistoryTurns = 3
	safetyHistoryTurns  = 3
)

// historySummary renders the last n turns as "speaker: message" lines.
// Returns "" for an empty history.
func historySummary(history []ConversationTurn, n int) string {
	if len(history) == 0 || n <= 0 {
		return ""
	}
	if len(history) > n {
		history = history[len(history)-n:]
	}
	lines := make([]string, 0, len(history))
	for _, turn := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", turn.Speaker, turn.Message))
	}
	return strings.Join(lines, "\n")
}

// runEmotion invokes the emotion collaborator. Skips when message, image,
// and audio are all absent. Returns nil on skip or failure.
func (o *Orchestrator) runEmotion(ctx context.Context, req *Request, traceID string) (result *EmotionResult) {
	defer recoverAnalyzer(o, "emotion", traceID)

	if o.analyzers.Emotion == nil {
		return nil
	}
	if req.UserMessage == "" && req.ImageData == "" && req.AudioFeatures == nil {
		slog.Debug("adapter: emotion skipped, no modality present", "trace_id", traceID)
		return nil
	}

	res, err := o.analyzers.Emotion.Analyze(ctx, &EmotionInput{
		TextContent:    req.UserMessage,
		ImageData:      req.ImageData,
		AudioFeatures:  req.AudioFeatures,
		HistorySummary: historySummary(req.ConversationHistory, emotionHistoryTurns),
	})
	if err != nil {
		o.recordAnalyzerError("emotion", traceID, err)
		return nil
	}
	return res
}

// runWearables invokes the wearables collaborator. Skips without a payload.
func (o *Orchestrator) runWearables(ctx context.Context, req *Request, traceID string) (result *HealthResult) {
	defer recoverAnalyzer(o, "wearables", traceID)

	if o.analyzers.Wearables == nil || req.WearablesData == nil {
		return nil
	}

	res, err := o.analyzers.Wearables.Analyze(ctx, req.WearablesData)
	if err != nil {
		o.recordAnalyzerError("wearables", traceID, err)
		return nil
	}
	return res
}

// runContext invokes the context collaborator. Always attempts, consuming
// whatever Stage A produced (or nil).
func (o *Orchestrator) runContext(ctx context.Context, req *Request, emotion *EmotionResult, health *HealthResult, traceID string) (result *ContextResult) {
	defer recoverAnalyzer(o, "context", traceID)

	if o.analyzers.Context == nil {
		return nil
	}

	res, err := o.analyzers.Context.Analyze(ctx, &ContextInput{
		CurrentMessage: req.UserMessage,
		HistorySummary: historySummary(req.ConversationHistory, contextHistoryTurns),
		UserProfile:    req.UserProfile,
		Emotional:      emotion,
		Health:         health,
	})
	if err != nil {
		o.recordAnalyzerError("context", traceID, err)
		return nil
	}
	return res
}

// runSafety invokes the safety collaborator. Always attempts. A nil result
// never blocks synthesis; the caller substitutes a best-effort low-risk
// default instead.
func (o *Orchestrator) runSafety(ctx context.Context, req *Request, emotion *EmotionResult, health *HealthResult, traceID string) (result *SafetyResult) {
	defer recoverAnalyzer(o, "safety", traceID)

	if o.analyzers.Safety == nil {
		return nil
	}

	res, err := o.analyzers.Safety.Assess(ctx, &SafetyInput{
		CurrentMessage: req.UserMessage,
		HistorySummary: historySummary(req.ConversationHistory, safetyHistoryTurns),
		Emotional:      emotion,
		Health:         health,
	})
	if err != nil {
		o.recordAnalyzerError("safety", traceID, err)
		return nil
	}
	if res != nil && !res.RiskLevel.Valid() {
		// Collaborators occasionally hallucinate grades; clamp to low rather
		// than surfacing an unknown enum to callers.
		slog.Warn("adapter: safety returned unknown risk level, clamping to low",
			"trace_id", traceID,
			"risk_level", string(res.RiskLevel))
		res.RiskLevel = RiskLow
	}
	return res
}

// recoverAnalyzer converts an analyzer panic into a no-result: one
// collaborator blowing up must never take down its siblings. The named
// return of the caller stays nil.
func recoverAnalyzer(o *Orchestrator, analyzer, traceID string) {
	if r := recover(); r != nil {
		slog.Error("adapter: panic in analyzer",
			"trace_id", traceID,
			"analyzer", analyzer,
			"panic", r)
		if o.metrics != nil {
			o.metrics.RecordAnalyzerError(analyzer, "panic")
		}
	}
}

func (o *Orchestrator) recordAnalyzerError(analyzer, traceID string, err error) {
	slog.Warn("adapter: analyzer failed, degrading to no result",
		"trace_id", traceID,
		"analyzer", analyzer,
		"error", err)
	if o.metrics != nil {
		o.metrics.RecordAnalyzerError(analyzer, "error")
	}
}
