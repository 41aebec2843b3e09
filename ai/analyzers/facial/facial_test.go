package facial

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attune-ai/attune/ai/orchestrator"
)

// encodeFrame renders a uniform 8x8 frame as base64 PNG.
func encodeFrame(t *testing.T, c color.Color) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestAnalyze_NoImage(t *testing.T) {
	a := New()

	_, err := a.Analyze(context.Background(), &orchestrator.EmotionInput{TextContent: "hi"})
	assert.Error(t, err)
}

func TestAnalyze_InvalidBase64(t *testing.T) {
	a := New()

	_, err := a.Analyze(context.Background(), &orchestrator.EmotionInput{ImageData: "%%%not-base64%%%"})
	assert.Error(t, err)
}

func TestAnalyze_BrightFrame(t *testing.T) {
	a := New()

	res, err := a.Analyze(context.Background(), &orchestrator.EmotionInput{
		ImageData: encodeFrame(t, color.NRGBA{R: 250, G: 250, B: 250, A: 255}),
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, "happy", res.Primary)
	assert.Greater(t, res.Confidence, 0.5)
	assert.Less(t, res.DistressLevel, 0.2)
	assert.Equal(t, 0.5, res.Engagement)
	assert.Equal(t, 0.5, res.Attention)
	require.NotNil(t, res.AvatarExpression)
	assert.Equal(t, "warm", res.AvatarExpression.Expression)
}

func TestAnalyze_DarkFrame(t *testing.T) {
	a := New()

	res, err := a.Analyze(context.Background(), &orchestrator.EmotionInput{
		ImageData: encodeFrame(t, color.NRGBA{R: 5, G: 5, B: 5, A: 255}),
	})
	require.NoError(t, err)

	assert.Equal(t, "sad", res.Primary)
	assert.Greater(t, res.DistressLevel, 0.8)
	assert.NotEmpty(t, res.Recommendations)
	assert.Equal(t, "empathetic", res.AvatarExpression.Expression)
}

func TestAnalyze_DataURLPrefix(t *testing.T) {
	a := New()

	res, err := a.Analyze(context.Background(), &orchestrator.EmotionInput{
		ImageData: "data:image/png;base64," + encodeFrame(t, color.NRGBA{R: 250, G: 250, B: 250, A: 255}),
	})
	require.NoError(t, err)
	assert.Equal(t, "happy", res.Primary)
}
