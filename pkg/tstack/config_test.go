package tstack

import(
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownModeFailsEagerly(t *testing.T) {
	s := NewStack()
	s.Config.Mode = "sepia"
	s.Add(newTestFrame(0, 1, 1, 1, 1))

	_, err := s.Composite(context.Background())
	require.Error(t, err)

	var unknown UnknownModeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "mode", unknown.Kind)
	assert.Equal(t, "sepia", unknown.Value)
}

func TestUnknownResizeAndCompare(t *testing.T) {
	c := NewConfig()
	c.Resize = "crop-to-last"
	assert.Error(t, c.FinalizeConfig())

	c = NewConfig()
	c.Compare = "hue"
	assert.Error(t, c.FinalizeConfig())
}

func TestConfigDefaults(t *testing.T) {
	c := NewConfig()
	require.NoError(t, c.FinalizeConfig())

	assert.Equal(t, ModeLighten, c.ModeID)
	assert.Equal(t, ResizeScaleToFirst, c.ResizeID)
	assert.Equal(t, CompareLuminance, c.CompareID)
	assert.NotNil(t, c.Accum)
}

func TestConfigFromYaml(t *testing.T) {
	yaml := `
mode: time-gradient
compare: channel
workers: 3
gradient:
  stops:
    - at: 0.0
      color: "#000000"
    - at: 1.0
      color: "#ffffff"
rendering:
  outputfilename: out.png
  stats: true
`
	c, err := NewConfigFromYaml([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, ModeTimeGradient, c.ModeID)
	assert.Equal(t, CompareChannel, c.CompareID)
	assert.Equal(t, 3, c.Workers)
	assert.Equal(t, "out.png", c.Rendering.OutputFilename)
	assert.True(t, c.Rendering.Stats)
	assert.Equal(t, "#000000", c.Ramp.At(0.0).Hex())
}

func TestModeOrderIndependence(t *testing.T) {
	assert.True(t, ModeLighten.OrderIndependent())
	assert.True(t, ModeDarken.OrderIndependent())
	assert.True(t, ModeAverage.OrderIndependent())
	assert.True(t, ModeMaskBlend.OrderIndependent())
	assert.False(t, ModeTimeGradient.OrderIndependent())

	assert.True(t, ModeAverage.Batchable())
	assert.False(t, ModeMaskBlend.Batchable())
	assert.False(t, ModeTimeGradient.Batchable())
}
