package orchestrator

// Default values substituted when an analyzer contributed nothing. Callers
// key risk-escalation display off these exact constants, so they are part of
// the public contract and must not drift.

const (
	defaultEmotionPrimary  = "neutral"
	defaultEmotionConf     = 0.5
	defaultEmotionDistress = 0.3

	defaultTherapeuticIntent = "emotional_support"
	defaultUrgencyLevel      = "low"
	defaultSessionPhase      = "exploration"
	defaultAlliance          = 70
)

// Data-quality constants per modality: the higher value when the analyzer
// produced a result, the lower when it was skipped or failed.
const (
	qualityEmotionalPresent  = 0.8
	qualityEmotionalAbsent   = 0.3
	qualityHealthPresent     = 0.9
	qualityHealthAbsent      = 0.0
	qualityContextualPresent = 0.8
	qualityContextualAbsent  = 0.5
)

// apologyResponse is the whole-response fallback text used when even the
// generation step fails.
const apologyResponse = "I'm sorry, I'm having trouble putting together a full response right now. " +
	"I'm still here with you. Could you tell me a bit more about how you're feeling?"

// Placeholder strings substituted into the generation prompt for missing
// analyzer blocks. The generation step always runs, even with all four absent.
const (
	noEmotionSummary = "No emotion analysis available"
	noHealthSummary  = "No health analysis available"
	noContextSummary = "No context analysis available"
	noSafetySummary  = "No safety analysis available"
)

func defaultAvatarControl() AvatarExpression {
	return AvatarExpression{
		Expression:     "empathetic",
		Intensity:      0.7,
		Duration:       5,
		EmotionalState: "supportive",
	}
}

func defaultSafetyAssessment() SafetyResult {
	return SafetyResult{
		RiskLevel: RiskLow,
		Concerns:  []string{},
		Actions:   []string{},
		FollowUp:  false,
	}
}

func defaultInterventions() Interventions {
	return Interventions{
		Immediate: []string{
			"Take three slow, deep breaths together",
			"Name one thing you can see, hear, and feel right now",
		},
		Session: []string{
			"Explore what has been weighing on you most this week",
			"Identify one small step that felt manageable before",
		},
		LongTerm: []string{
			"Build a short daily check-in or mindfulness routine",
			"Keep a note of moments that felt better than expected",
		},
	}
}

func defaultContextualInsights() ContextualInsights {
	return ContextualInsights{
		TherapeuticIntent:   defaultTherapeuticIntent,
		UrgencyLevel:        defaultUrgencyLevel,
		SessionPhase:        defaultSessionPhase,
		TherapeuticAlliance: defaultAlliance,
	}
}

func defaultEmotionAnalysis() EmotionAnalysis {
	return EmotionAnalysis{
		Primary:       defaultEmotionPrimary,
		Confidence:    defaultEmotionConf,
		DistressLevel: defaultEmotionDistress,
	}
}
