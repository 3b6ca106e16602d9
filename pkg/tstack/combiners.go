package tstack

import(
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// An AccumFunc folds one frame's rows [y0,y1) into the running
// accumulator. The pipeline hands disjoint row ranges to each worker,
// so no two invocations ever touch the same elements of the buffers.
type AccumFunc func(a *Acc, f Frame, y0, y1 int)

// An Acc is the running per-pixel accumulation state. All arithmetic
// happens in float64 so no intermediate sum or product can clip; the
// one clamp-and-round in the whole pipeline is in FinalizeFrame.
//
// The layout depends on the mode:
//   - lighten/darken/average/mask-blend: Buf has one value per
//     pixel-channel (W*H*C), holding the running max/min/sum.
//   - time-gradient + luminance compare: Buf has one value per pixel
//     (W*H), the best luma so far; BestT records when it occurred.
//   - time-gradient + channel compare: Buf and BestT are per
//     pixel-channel (W*H*C).
//
// Flat parallel arrays, not per-pixel structs, keep the fold loops
// sequential over memory.
type Acc struct {
	Mode    Mode
	Compare CompareMetric
	W, H, C int
	N       int       // total frames in the run

	Buf   []float64
	BestT []float64   // time-gradient only

	maskW [][]float64 // mask-blend only: normalized weight per frame along the mask axis
	maskRows bool     // weights indexed by y rather than x
}

func NewAcc(c Config, n, w, h, ch int) *Acc {
	a := &Acc{
		Mode:    c.ModeID,
		Compare: c.CompareID,
		W: w, H: h, C: ch,
		N: n,
	}

	switch a.Mode {
	case ModeTimeGradient:
		size := w * h
		if a.Compare == CompareChannel {
			size = w * h * ch
		}
		a.Buf = make([]float64, size)
		a.BestT = make([]float64, size)
		// Strict greater-than replacement: -1 guarantees the first
		// frame records itself even for pure black pixels.
		for i := range a.Buf {
			a.Buf[i] = -1.0
		}

	case ModeDarken:
		a.Buf = make([]float64, w*h*ch)
		for i := range a.Buf {
			a.Buf[i] = 255.0
		}

	case ModeMaskBlend:
		a.Buf = make([]float64, w*h*ch)
		a.maskW, a.maskRows = c.Mask.weightTables(n, w, h)

	default:
		a.Buf = make([]float64, w*h*ch)
	}

	return a
}

// {{{ accumLighten, accumDarken

func accumLighten(a *Acc, f Frame, y0, y1 int) {
	base, end := y0*f.W*f.C, y1*f.W*f.C
	for i:=base; i<end; i++ {
		if v := float64(f.Pix[i]); v > a.Buf[i] {
			a.Buf[i] = v
		}
	}
}

func accumDarken(a *Acc, f Frame, y0, y1 int) {
	base, end := y0*f.W*f.C, y1*f.W*f.C
	for i:=base; i<end; i++ {
		if v := float64(f.Pix[i]); v < a.Buf[i] {
			a.Buf[i] = v
		}
	}
}

// }}}
// {{{ accumAverage

func accumAverage(a *Acc, f Frame, y0, y1 int) {
	base, end := y0*f.W*f.C, y1*f.W*f.C
	for i:=base; i<end; i++ {
		a.Buf[i] += float64(f.Pix[i])
	}
}

// }}}

// MergeAcc combines a frame-batch partial into the receiver, using
// the same commutative rule the per-pixel fold uses. Only the
// order-independent modes can be merged.
func (a *Acc)MergeAcc(b *Acc) error {
	switch a.Mode {
	case ModeLighten:
		for i := range a.Buf {
			if b.Buf[i] > a.Buf[i] {
				a.Buf[i] = b.Buf[i]
			}
		}
	case ModeDarken:
		for i := range a.Buf {
			if b.Buf[i] < a.Buf[i] {
				a.Buf[i] = b.Buf[i]
			}
		}
	case ModeAverage, ModeMaskBlend:
		floats.Add(a.Buf, b.Buf)
	default:
		return fmt.Errorf("mode %s is order-dependent and cannot merge partials", a.Mode)
	}
	return nil
}

// FinalizeFrame collapses the accumulator into an output frame,
// rounding and clamping to the 8-bit sample range. For average, Buf
// is scaled down in place first, so it holds the per-channel mean
// afterwards (the Radiance export relies on that).
func (a *Acc)FinalizeFrame(ramp Gradient) Frame {
	out := NewFrame(0, a.W, a.H, a.C)

	switch a.Mode {
	case ModeTimeGradient:
		a.finalizeTimeGradient(&out, ramp)

	case ModeAverage:
		floats.Scale(1.0/float64(a.N), a.Buf)
		fallthrough

	default:
		for i := range a.Buf {
			out.Pix[i] = clamp255(a.Buf[i])
		}
	}

	return out
}

func clamp255(v float64) uint8 {
	v = math.Round(v)
	if v < 0.0 { return 0 }
	if v > 255.0 { return 255 }
	return uint8(v)
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
