package orchestrator

import (
	"fmt"
	"strings"
)

const safetySystemPrompt = `You are a clinical safety screener for a therapeutic companion.
Assess the user's message and context for risk of self-harm, harm to others, or acute crisis.
Grade risk_level as exactly one of: low, medium, high, critical.
Be conservative: when signals conflict, grade up, not down.
List concrete concerns you observed and concrete recommended actions, most important first.`

const responseSystemPrompt = `You are a warm, grounded therapeutic companion.
Write a short supportive response (2-4 sentences) that speaks directly to the user.
Acknowledge what they expressed before offering anything. Never diagnose, never moralize.
Then propose interventions in three tiers: immediate (right now), session (this conversation),
and long_term (beyond today). Keep each intervention to one actionable sentence.`

// buildSafetyPrompt renders the safety collaborator's user prompt from the
// narrowed input.
func buildSafetyPrompt(input *SafetyInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "User message:\n%s\n", input.CurrentMessage)

	if input.HistorySummary != "" {
		fmt.Fprintf(&b, "\nRecent conversation:\n%s\n", input.HistorySummary)
	}

	if input.Emotional != nil {
		fmt.Fprintf(&b, "\nEmotion signal: primary=%s distress=%.2f\n",
			input.Emotional.Primary, input.Emotional.DistressLevel)
	} else {
		fmt.Fprintf(&b, "\nEmotion signal: %s\n", noEmotionSummary)
	}

	if input.Health != nil {
		fmt.Fprintf(&b, "Health signal: wellness=%.1f stress=%.2f\n",
			input.Health.WellnessScore, input.Health.StressLevel)
	} else {
		fmt.Fprintf(&b, "Health signal: %s\n", noHealthSummary)
	}

	b.WriteString("\nProduce the structured safety assessment.")
	return b.String()
}

// buildResponsePrompt renders the therapeutic generation prompt from the
// condensed analyzer summaries.
func buildResponsePrompt(input *GenerationInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "User message:\n%s\n", input.UserMessage)

	if input.HistorySummary != "" {
		fmt.Fprintf(&b, "\nRecent conversation:\n%s\n", input.HistorySummary)
	}

	fmt.Fprintf(&b, "\nEmotion analysis: %s\n", input.EmotionSummary)
	fmt.Fprintf(&b, "Health analysis: %s\n", input.HealthSummary)
	fmt.Fprintf(&b, "Context analysis: %s\n", input.ContextSummary)
	fmt.Fprintf(&b, "Safety analysis: %s\n", input.SafetySummary)

	if input.Profile != nil {
		if len(input.Profile.Goals) > 0 {
			fmt.Fprintf(&b, "\nUser goals: %s\n", strings.Join(input.Profile.Goals, "; "))
		}
		if len(input.Profile.CopingStrategies) > 0 {
			fmt.Fprintf(&b, "Coping strategies that helped before: %s\n",
				strings.Join(input.Profile.CopingStrategies, "; "))
		}
	}

	b.WriteString("\nProduce the structured therapeutic response.")
	return b.String()
}
