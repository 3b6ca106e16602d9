package tstack

import(
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func composeMask(t *testing.T, shape string, frames ...Frame) Frame {
	t.Helper()
	s := NewStack()
	s.Config.Mode = "mask-blend"
	s.Config.Mask.Shape = shape
	s.Config.Workers = 1
	for _, f := range frames {
		s.Add(f)
	}
	out, err := s.Composite(context.Background())
	require.NoError(t, err)
	return out
}

// With flat vertical stripes, each column band comes verbatim from
// its own frame.
func TestMaskBlendVerticalFlat(t *testing.T) {
	out := composeMask(t, "vertical-flat",
		newTestFrame(0, 4, 1, 1, 10, 10, 10, 10),
		newTestFrame(1, 4, 1, 1, 200, 200, 200, 200))

	assert.Equal(t, []uint8{10, 10, 200, 200}, out.Pix)
}

func TestMaskBlendHorizontalFlat(t *testing.T) {
	out := composeMask(t, "horizontal-flat",
		newTestFrame(0, 1, 2, 1, 30, 30),
		newTestFrame(1, 1, 2, 1, 90, 90))

	assert.Equal(t, []uint8{30, 90}, out.Pix)
}

// Mask weights must sum to 1 at every position, so a stack of
// identical frames blends back to itself.
func TestMaskWeightsNormalized(t *testing.T) {
	for _, shape := range []string{"vertical-flat", "vertical-logistic", "horizontal-logistic"} {
		tables, _ := MaskSpec{Shape:shape}.weightTables(3, 16, 16)

		span := len(tables[0])
		for p:=0; p<span; p++ {
			sum := 0.0
			for i := range tables {
				sum += tables[i][p]
			}
			assert.InDelta(t, 1.0, sum, 1e-9, "shape %s pos %d", shape, p)
		}
	}
}

func TestMaskBlendIdenticalFramesRoundTrip(t *testing.T) {
	base := randomFrames(3, 1, 8, 8, 3)[0]
	second := base
	second.Index = 1

	out := composeMask(t, "vertical-logistic", base, second)
	assert.Equal(t, base.Pix, out.Pix)
}

func TestMaskUnknownShape(t *testing.T) {
	s := NewStack()
	s.Config.Mode = "mask-blend"
	s.Config.Mask.Shape = "diagonal"
	s.Add(newTestFrame(0, 1, 1, 1, 1))

	_, err := s.Composite(context.Background())
	var unknown UnknownModeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "mask", unknown.Kind)
}
