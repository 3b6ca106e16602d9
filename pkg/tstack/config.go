package tstack

import(
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

/* Example config file ...

mode: time-gradient
resize: scale-to-first
compare: luminance
workers: 8

gradient:
  preset: heat

mask:
  shape: vertical-logistic
  steepness: 0.01

rendering:
  outputfilename: stacked.png
  legendfilename: legend.png

*/

// A Mode selects the per-pixel accumulation rule.
type Mode int

const (
	ModeLighten Mode = iota  // max across frames - "trails of light"
	ModeDarken               // min across frames
	ModeAverage              // running sum / N
	ModeTimeGradient         // best sample tinted by when it occurred
	ModeMaskBlend            // per-frame weight masks, summed (the classic hdtr blend)
)

var modeNames = map[Mode]string{
	ModeLighten:      "lighten",
	ModeDarken:       "darken",
	ModeAverage:      "average",
	ModeTimeGradient: "time-gradient",
	ModeMaskBlend:    "mask-blend",
}

func (m Mode)String() string { return modeNames[m] }

// OrderIndependent reports whether folding frames in any order yields
// the same result. The pipeline uses this to decide whether frame
// batches may be reduced in parallel and merged, or whether each
// region must walk the frames in strictly increasing index order.
func (m Mode)OrderIndependent() bool { return m != ModeTimeGradient }

// Batchable is stricter: the mode's merge must be bit-exact under any
// regrouping. Max/min and integer sums in float64 are; mask-blend's
// fractional weighted sums are not (last-ulp drift could flip a
// rounding boundary), so it stays on the spatial split.
func (m Mode)Batchable() bool {
	return m == ModeLighten || m == ModeDarken || m == ModeAverage
}

// A ResizePolicy says how frames with mismatched dimensions are
// reconciled.
type ResizePolicy int

const (
	ResizeScaleToFirst ResizePolicy = iota
	ResizeReject
)

// A CompareMetric ranks "brightest" for time-gradient mode.
type CompareMetric int

const (
	CompareLuminance CompareMetric = iota // one best per pixel, ranked by Rec.709 luma
	CompareChannel                        // each channel tracks its own best
)

type RenderOptions struct {
	OutputFilename    string
	HDRFilename       string // optional Radiance dump of the float accumulator
	LegendFilename    string // optional gradient legend strip
	Stats             bool   // log per-frame luminance histograms
}

type Config struct {
	Mode      string
	Resize    string
	Compare   string
	Workers   int          // 0 means one per CPU
	Gradient  GradientSpec
	Mask      MaskSpec
	Rendering RenderOptions

	// Values we derive in FinalizeConfig
	ModeID    Mode          `yaml:"-"`
	ResizeID  ResizePolicy  `yaml:"-"`
	CompareID CompareMetric `yaml:"-"`
	Accum     AccumFunc     `yaml:"-"`
	Ramp      Gradient      `yaml:"-"`
}

func NewConfig() Config {
	return Config{
		Mode:    "lighten",
		Resize:  "scale-to-first",
		Compare: "luminance",
	}
}

func NewConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("config parse: %v", err)
	}
	return c, c.FinalizeConfig()
}

func LoadConfig(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return NewConfig(), fmt.Errorf("config read '%s': %v", filename, err)
	}
	return NewConfigFromYaml(contents)
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("config marshal: %v", err)
	}
	return string(b)
}

// FinalizeConfig does sanity checks and resolves the strategy names
// into funcs. It runs before any frame is touched, so a bad mode
// never costs a single pixel of work.
func (c *Config)FinalizeConfig() error {
	switch c.Mode {
	case "lighten":       c.ModeID = ModeLighten
	case "darken":        c.ModeID = ModeDarken
	case "average":       c.ModeID = ModeAverage
	case "time-gradient": c.ModeID = ModeTimeGradient
	case "mask-blend":    c.ModeID = ModeMaskBlend
	default:
		return UnknownModeError{Kind:"mode", Value:c.Mode}
	}

	switch c.Resize {
	case "", "scale-to-first": c.ResizeID = ResizeScaleToFirst
	case "reject":             c.ResizeID = ResizeReject
	default:
		return UnknownModeError{Kind:"resize", Value:c.Resize}
	}

	switch c.Compare {
	case "", "luminance": c.CompareID = CompareLuminance
	case "channel":       c.CompareID = CompareChannel
	default:
		return UnknownModeError{Kind:"compare", Value:c.Compare}
	}

	switch c.ModeID {
	case ModeLighten:  c.Accum = accumLighten
	case ModeDarken:   c.Accum = accumDarken
	case ModeAverage:  c.Accum = accumAverage
	case ModeMaskBlend:c.Accum = accumMaskBlend
	case ModeTimeGradient:
		if c.CompareID == CompareChannel {
			c.Accum = accumTimeGradientChannel
		} else {
			c.Accum = accumTimeGradientLuma
		}
	}

	if c.ModeID == ModeMaskBlend {
		if err := c.Mask.validate(); err != nil {
			return err
		}
	}

	ramp, err := c.Gradient.Build()
	if err != nil {
		return err
	}
	c.Ramp = ramp

	return nil
}
