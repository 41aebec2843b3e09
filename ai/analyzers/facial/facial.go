// Package facial provides an in-process emotion analyzer over a captured
// camera frame. It is a lightweight brightness heuristic, not a trained
// model: useful as a default collaborator when no remote emotion service is
// wired, and as the test double's realistic stand-in.
package facial

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/attune-ai/attune/ai/orchestrator"
)

// thumbSize bounds the per-frame work; emotion scoring does not need more
// than a thumbnail.
const thumbSize = 64

// Analyzer implements orchestrator.EmotionAnalyzer over image frames.
type Analyzer struct{}

// New creates a facial analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// Analyze scores the frame's emotions from its average luminance. Returns an
// error when no decodable image is present; the adapter boundary degrades
// that to a no-result.
func (a *Analyzer) Analyze(_ context.Context, input *orchestrator.EmotionInput) (*orchestrator.EmotionResult, error) {
	if input == nil || input.ImageData == "" {
		return nil, fmt.Errorf("no image data supplied")
	}

	img, err := decodeFrame(input.ImageData)
	if err != nil {
		return nil, err
	}

	brightness := averageLuminance(img)

	// Score map mirrors the capture service's heuristic: bright frames lean
	// happy, dark frames lean sad, everything else has a fixed floor.
	scores := map[string]float64{
		"happy":     clamp01(brightness / 255),
		"sad":       clamp01(1 - brightness/255),
		"angry":     0.1,
		"surprised": 0.1,
		"neutral":   0.5,
		"confused":  0.1,
	}

	primary, confidence := dominant(scores)
	distress := scores["sad"]

	return &orchestrator.EmotionResult{
		Primary:       primary,
		Confidence:    confidence,
		DistressLevel: distress,
		// The heuristic cannot read gaze or posture; report the midpoint
		// rather than pretending to a signal.
		Engagement:      0.5,
		Attention:       0.5,
		Recommendations: recommendationsFor(primary),
		AvatarExpression: &orchestrator.AvatarExpression{
			Expression:     expressionFor(primary),
			Intensity:      confidence,
			Duration:       5,
			EmotionalState: primary,
		},
	}, nil
}

// decodeFrame decodes a base64 frame, tolerating a data-URL prefix.
func decodeFrame(data string) (image.Image, error) {
	if idx := strings.Index(data, ","); idx >= 0 && strings.HasPrefix(data, "data:") {
		data = data[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image data: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("undecodable image frame: %w", err)
	}
	return img, nil
}

// averageLuminance returns the mean gray value (0-255) of a thumbnail of img.
func averageLuminance(img image.Image) float64 {
	thumb := imaging.Grayscale(imaging.Resize(img, thumbSize, 0, imaging.Box))

	bounds := thumb.Bounds()
	if bounds.Empty() {
		return 0
	}

	var sum float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			// After Grayscale all channels are equal; read red.
			sum += float64(thumb.NRGBAAt(x, y).R)
		}
	}
	return sum / float64(bounds.Dx()*bounds.Dy())
}

func dominant(scores map[string]float64) (string, float64) {
	primary, best := "neutral", -1.0
	// Deterministic tie-break: later alphabetical never overrides an equal
	// earlier score.
	for _, name := range []string{"angry", "confused", "happy", "neutral", "sad", "surprised"} {
		if scores[name] > best {
			primary, best = name, scores[name]
		}
	}
	return primary, best
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func recommendationsFor(primary string) []string {
	switch primary {
	case "sad":
		return []string{
			"Acknowledge the sadness before moving on",
			"Suggest a grounding exercise",
		}
	case "angry":
		return []string{"Slow the pace and lower intensity"}
	case "happy":
		return []string{"Reinforce what is going well"}
	default:
		return []string{"Keep a steady, open tone"}
	}
}

func expressionFor(primary string) string {
	switch primary {
	case "sad", "angry":
		return "empathetic"
	case "happy":
		return "warm"
	default:
		return "attentive"
	}
}
