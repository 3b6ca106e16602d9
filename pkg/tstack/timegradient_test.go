package tstack

import(
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// On an exact tie, the earlier frame keeps the pixel: two identical
// 1x1 frames must come out colored as gradient(t=0).
func TestTimeGradientTieBreak(t *testing.T) {
	tied := compose(t, "time-gradient", 1,
		newTestFrame(0, 1, 1, 1, 100),
		newTestFrame(1, 1, 1, 1, 100))

	// A single frame is by definition at t=0
	alone := compose(t, "time-gradient", 1, newTestFrame(0, 1, 1, 1, 100))

	assert.Equal(t, alone.Pix, tied.Pix)

	ramp, err := GradientSpec{}.Build()
	require.NoError(t, err)
	assert.Equal(t, []uint8{clamp255(100 * ramp.Luma(0.0))}, tied.Pix)
}

// Reversing the input order must change the output whenever the
// frames differ: the brightest sample lands at a different time
// position, so it picks up a different ramp color.
func TestTimeGradientOrderDependent(t *testing.T) {
	forward := compose(t, "time-gradient", 1,
		newTestFrame(0, 1, 1, 3, 10, 10, 10),
		newTestFrame(1, 1, 1, 3, 200, 200, 200))

	reversed := compose(t, "time-gradient", 1,
		newTestFrame(0, 1, 1, 3, 200, 200, 200),
		newTestFrame(1, 1, 1, 3, 10, 10, 10))

	assert.NotEqual(t, forward.Pix, reversed.Pix)
}

func TestTimeGradientSingleFrame(t *testing.T) {
	out := compose(t, "time-gradient", 1, newTestFrame(0, 1, 1, 3, 120, 60, 30))

	ramp, err := GradientSpec{}.Build()
	require.NoError(t, err)

	lum := 0.2126*120 + 0.7152*60 + 0.0722*30
	col := ramp.At(0.0)
	assert.Equal(t, []uint8{
		clamp255(lum * col.R),
		clamp255(lum * col.G),
		clamp255(lum * col.B),
	}, out.Pix)
}

// With a pure white ramp, per-channel comparison degenerates to
// lighten: every channel keeps its max, tinted by 1.0.
func TestTimeGradientChannelCompareWhiteRamp(t *testing.T) {
	frames := randomFrames(21, 4, 6, 3, 3)

	lighten := compose(t, "lighten", 1, frames...)

	s := NewStack()
	s.Config.Mode = "time-gradient"
	s.Config.Compare = "channel"
	s.Config.Gradient.Preset = "mono"
	s.Config.Workers = 1
	for _, f := range frames {
		s.Add(f)
	}
	out, err := s.Composite(context.Background())
	require.NoError(t, err)

	assert.Equal(t, lighten.Pix, out.Pix)
}

// Spatial parallelism must not perturb an order-dependent fold.
func TestTimeGradientParallelMatchesSerial(t *testing.T) {
	frames := randomFrames(33, 6, 10, 8, 4)

	want := compose(t, "time-gradient", 1, frames...)
	got := compose(t, "time-gradient", 4, frames...)

	assert.Equal(t, want.Pix, got.Pix)
}
