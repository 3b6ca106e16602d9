package tstack

import(
	"fmt"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// A GradientSpec is the configured color ramp for time-gradient mode:
// either a named preset, or explicit stops. Stops map a normalized
// time position in [0,1] to a hex color.
type GradientSpec struct {
	Preset string
	Stops  []GradientStop
}

type GradientStop struct {
	At    float64
	Color string
}

// The presets are cool-to-warm ramps; early frames get the cool end.
var gradientPresets = map[string][]GradientStop{
	"heat": []GradientStop{
		{0.0, "#2c7bb6"},
		{0.5, "#ffffbf"},
		{1.0, "#d7191c"},
	},
	"sunrise": []GradientStop{
		{0.0, "#1a2980"},
		{0.6, "#ff7e5f"},
		{1.0, "#feb47b"},
	},
	"mono": []GradientStop{
		{0.0, "#ffffff"},
		{1.0, "#ffffff"},
	},
}

// A Gradient is the resolved ramp. Lookups blend between the two
// bracketing stops in Luv space, which keeps the midpoints from
// going muddy the way naive RGB interpolation does.
type Gradient struct {
	stops []rampStop
}

type rampStop struct {
	at  float64
	col colorful.Color
}

func (spec GradientSpec)Build() (Gradient, error) {
	stops := spec.Stops

	if len(stops) == 0 {
		name := spec.Preset
		if name == "" {
			name = "heat"
		}
		preset, exists := gradientPresets[name]
		if !exists {
			return Gradient{}, UnknownModeError{Kind:"gradient preset", Value:name}
		}
		stops = preset
	}

	g := Gradient{stops: make([]rampStop, 0, len(stops))}
	for _, s := range stops {
		col, err := colorful.Hex(s.Color)
		if err != nil {
			return Gradient{}, fmt.Errorf("gradient stop at %.3f: bad color '%s': %v", s.At, s.Color, err)
		}
		g.stops = append(g.stops, rampStop{at:s.At, col:col})
	}
	sort.Slice(g.stops, func(i, j int) bool { return g.stops[i].at < g.stops[j].at })

	return g, nil
}

// At returns the ramp color for a time position t in [0,1].
func (g Gradient)At(t float64) colorful.Color {
	if t < 0.0 { t = 0.0 }
	if t > 1.0 { t = 1.0 }

	if len(g.stops) == 0 {
		return colorful.Color{R:1, G:1, B:1}
	}

	if t <= g.stops[0].at {
		return g.stops[0].col
	}
	for i:=0; i<len(g.stops)-1; i++ {
		lo, hi := g.stops[i], g.stops[i+1]
		if t <= hi.at {
			span := hi.at - lo.at
			if span <= 0.0 {
				return hi.col
			}
			return lo.col.BlendLuv(hi.col, (t-lo.at)/span).Clamped()
		}
	}
	return g.stops[len(g.stops)-1].col
}

// Luma is the Rec.709 luminance of the ramp color at t, in [0,1].
// Single-channel frames tint by this instead of per-channel RGB.
func (g Gradient)Luma(t float64) float64 {
	c := g.At(t)
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}
