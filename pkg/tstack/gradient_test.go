package tstack

import(
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradientEndpoints(t *testing.T) {
	g, err := GradientSpec{Preset:"heat"}.Build()
	require.NoError(t, err)

	assert.Equal(t, "#2c7bb6", g.At(0.0).Hex())
	assert.Equal(t, "#d7191c", g.At(1.0).Hex())

	// Out-of-range positions clamp to the endpoints
	assert.Equal(t, g.At(0.0), g.At(-3.0))
	assert.Equal(t, g.At(1.0), g.At(9.9))
}

func TestGradientMidpointBlends(t *testing.T) {
	g, err := GradientSpec{Stops: []GradientStop{
		{0.0, "#000000"},
		{1.0, "#ffffff"},
	}}.Build()
	require.NoError(t, err)

	mid := g.At(0.5)
	assert.Greater(t, mid.R, 0.0)
	assert.Less(t, mid.R, 1.0)
}

func TestGradientStopsSorted(t *testing.T) {
	// Stops given out of order still resolve correctly
	g, err := GradientSpec{Stops: []GradientStop{
		{1.0, "#ffffff"},
		{0.0, "#000000"},
	}}.Build()
	require.NoError(t, err)

	assert.Equal(t, "#000000", g.At(0.0).Hex())
	assert.Equal(t, "#ffffff", g.At(1.0).Hex())
}

func TestGradientBadInputs(t *testing.T) {
	_, err := GradientSpec{Preset:"nonesuch"}.Build()
	assert.Error(t, err)

	_, err = GradientSpec{Stops: []GradientStop{{0.0, "notacolor"}}}.Build()
	assert.Error(t, err)
}

func TestGradientDefaultIsHeat(t *testing.T) {
	def, err := GradientSpec{}.Build()
	require.NoError(t, err)
	heat, err := GradientSpec{Preset:"heat"}.Build()
	require.NoError(t, err)

	assert.Equal(t, heat.At(0.25), def.At(0.25))
}
