package tstack

import(
	"math"
)

// Mask-blend is the classic "high dynamic time range" composite: each
// frame gets a weight mask over the canvas (a stripe of the image per
// frame, hard-edged or with logistic falloff), the weights are
// normalized to sum to 1 at every pixel, and the output is the
// weighted sum. The left edge of the picture shows the first frame,
// the right edge the last.
//
// All the mask shapes depend only on the frame index and one axis, so
// they collapse to per-column (or per-row) weight tables computed
// once up front - the fold loop never evaluates a logistic.
type MaskSpec struct {
	Shape     string  // vertical-flat, horizontal-flat, vertical-logistic, horizontal-logistic
	Steepness float64 // logistic k; ~0.01 gives a soft band, ~0.1 a hard one
}

func (m MaskSpec)validate() error {
	switch m.Shape {
	case "", "vertical-flat", "horizontal-flat", "vertical-logistic", "horizontal-logistic":
		return nil
	}
	return UnknownModeError{Kind:"mask", Value:m.Shape}
}

func (m MaskSpec)steepness() float64 {
	if m.Steepness > 0.0 {
		return m.Steepness
	}
	return 0.01
}

// weightTables returns w[frame][pos], normalized so the weights at
// every pos sum to 1, plus whether pos indexes rows rather than
// columns.
func (m MaskSpec)weightTables(n, w, h int) ([][]float64, bool) {
	rows := m.Shape == "horizontal-flat" || m.Shape == "horizontal-logistic"
	span := w
	if rows {
		span = h
	}

	tables := make([][]float64, n)

	// The precise stripe width, fractional part included, so
	// remainders never accumulate across stripes.
	stripe := float64(span) / float64(n)

	for i:=0; i<n; i++ {
		tables[i] = make([]float64, span)

		switch m.Shape {
		case "vertical-logistic", "horizontal-logistic":
			k := m.steepness() * stripe
			center := float64(i)*stripe + stripe/2.0
			for p:=0; p<span; p++ {
				dist := math.Abs(float64(p) - center)
				tables[i][p] = 1.0 - logistic(dist, k)
			}

		default: // flat stripes
			lo, hi := int(stripe*float64(i)), int(stripe*float64(i+1))
			for p:=lo; p<hi && p<span; p++ {
				tables[i][p] = 1.0
			}
		}
	}

	// Normalize the contributions at each position
	for p:=0; p<span; p++ {
		sum := 0.0
		for i:=0; i<n; i++ {
			sum += tables[i][p]
		}
		if sum <= 0.0 {
			continue
		}
		for i:=0; i<n; i++ {
			tables[i][p] /= sum
		}
	}

	return tables, rows
}

// logistic(0, k) = 0.5, tending to 1 as distance grows; the mask
// weight is its complement, so a stripe's own center is brightest.
func logistic(distance, k float64) float64 {
	return 1.0 / (math.Exp(-k*distance) + 1.0)
}

func accumMaskBlend(a *Acc, f Frame, y0, y1 int) {
	weights := a.maskW[f.Index]

	for y:=y0; y<y1; y++ {
		rowBase := y * f.W * f.C

		if a.maskRows {
			wgt := weights[y]
			if wgt == 0.0 {
				continue
			}
			for i:=rowBase; i<rowBase+f.W*f.C; i++ {
				a.Buf[i] += float64(f.Pix[i]) * wgt
			}
			continue
		}

		for x:=0; x<f.W; x++ {
			wgt := weights[x]
			if wgt == 0.0 {
				continue
			}
			i := rowBase + x*f.C
			for ch:=0; ch<f.C; ch++ {
				a.Buf[i+ch] += float64(f.Pix[i+ch]) * wgt
			}
		}
	}
}
