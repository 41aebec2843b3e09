package orchestrator

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Mock collaborators for pipeline tests.

type MockEmotion struct {
	mock.Mock
}

func (m *MockEmotion) Analyze(ctx context.Context, input *EmotionInput) (*EmotionResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*EmotionResult), args.Error(1)
}

type MockWearables struct {
	mock.Mock
}

func (m *MockWearables) Analyze(ctx context.Context, data *WearablesData) (*HealthResult, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*HealthResult), args.Error(1)
}

type MockContext struct {
	mock.Mock
}

func (m *MockContext) Analyze(ctx context.Context, input *ContextInput) (*ContextResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ContextResult), args.Error(1)
}

type MockSafety struct {
	mock.Mock
}

func (m *MockSafety) Assess(ctx context.Context, input *SafetyInput) (*SafetyResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SafetyResult), args.Error(1)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, input *GenerationInput) (*GeneratedResponse, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GeneratedResponse), args.Error(1)
}

// panicEmotion always panics; used to prove adapter isolation.
type panicEmotion struct{}

func (panicEmotion) Analyze(context.Context, *EmotionInput) (*EmotionResult, error) {
	panic("emotion analyzer blew up")
}

// panicGenerator always panics; used to prove the entry point's never-fails
// contract covers the generation step too.
type panicGenerator struct{}

func (panicGenerator) Generate(context.Context, *GenerationInput) (*GeneratedResponse, error) {
	panic("response generator blew up")
}

// Fixtures.

func sampleEmotionResult() *EmotionResult {
	return &EmotionResult{
		Primary:         "anxious",
		Confidence:      0.9,
		DistressLevel:   0.6,
		Recommendations: []string{"slow breathing", "name the worry"},
		AvatarExpression: &AvatarExpression{
			Expression:     "concerned",
			Intensity:      0.8,
			Duration:       4,
			EmotionalState: "anxious",
		},
	}
}

func sampleHealthResult() *HealthResult {
	return &HealthResult{
		WellnessScore: 62,
		StressLevel:   0.7,
		SleepQuality:  0.4,
		ActivityLevel: 0.3,
		Alerts: []HealthAlert{
			{Type: "sleep", Severity: "warning", Message: "short sleep three nights running"},
		},
		Recommendations: []string{"earlier wind-down tonight"},
	}
}

func sampleContextResult() *ContextResult {
	return &ContextResult{
		Intent:              "anxiety_management",
		IntentConfidence:    0.8,
		UrgencyLevel:        "medium",
		SessionPhase:        "working",
		TherapeuticAlliance: 82,
	}
}

func sampleSafetyResult() *SafetyResult {
	return &SafetyResult{
		RiskLevel: RiskMedium,
		Concerns:  []string{"persistent worry"},
		Actions:   []string{"check in next session"},
		FollowUp:  true,
	}
}

func sampleGenerated() *GeneratedResponse {
	return &GeneratedResponse{
		ResponseText: "That sounds like a lot to carry. Let's slow down together for a moment.",
		Interventions: &Interventions{
			Immediate: []string{"box breathing for one minute"},
			Session:   []string{"unpack the biggest worry"},
			LongTerm:  []string{"daily wind-down routine"},
		},
	}
}

func sampleWearables() *WearablesData {
	hr := 88.0
	stress := 0.7
	return &WearablesData{
		HeartRate: &hr,
		Stress:    &stress,
		Sleep:     &SleepData{Hours: 5.5, Quality: 0.4},
	}
}

// fullMocks wires all four analyzers plus the generator to succeed with the
// sample fixtures.
func fullMocks() (*MockEmotion, *MockWearables, *MockContext, *MockSafety, *MockGenerator) {
	emotion := new(MockEmotion)
	emotion.On("Analyze", mock.Anything, mock.Anything).Return(sampleEmotionResult(), nil)

	wearables := new(MockWearables)
	wearables.On("Analyze", mock.Anything, mock.Anything).Return(sampleHealthResult(), nil)

	contextual := new(MockContext)
	contextual.On("Analyze", mock.Anything, mock.Anything).Return(sampleContextResult(), nil)

	safety := new(MockSafety)
	safety.On("Assess", mock.Anything, mock.Anything).Return(sampleSafetyResult(), nil)

	generator := new(MockGenerator)
	generator.On("Generate", mock.Anything, mock.Anything).Return(sampleGenerated(), nil)

	return emotion, wearables, contextual, safety, generator
}
