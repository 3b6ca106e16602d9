package tstack

// Time-gradient accumulation: each pixel remembers its brightest
// sample and *when* it occurred, and the finalize step tints the
// output by the gradient color for that time position. Replacement is
// strict greater-than, so when a later frame ties the running best
// exactly, the earlier occurrence keeps the pixel - the ramp favors
// earlier events on ties.
//
// These folds are order-dependent: the pipeline only ever splits this
// mode spatially, and each worker walks the frames in increasing
// index order for its rows.

func accumTimeGradientLuma(a *Acc, f Frame, y0, y1 int) {
	t := f.TimePosition(a.N)

	for y:=y0; y<y1; y++ {
		for x:=0; x<f.W; x++ {
			i := y*f.W + x
			if lum := f.Luma(x, y); lum > a.Buf[i] {
				a.Buf[i] = lum
				a.BestT[i] = t
			}
		}
	}
}

func accumTimeGradientChannel(a *Acc, f Frame, y0, y1 int) {
	t := f.TimePosition(a.N)

	base, end := y0*f.W*f.C, y1*f.W*f.C
	for i:=base; i<end; i++ {
		if v := float64(f.Pix[i]); v > a.Buf[i] {
			a.Buf[i] = v
			a.BestT[i] = t
		}
	}
}

func (a *Acc)finalizeTimeGradient(out *Frame, ramp Gradient) {
	if a.Compare == CompareChannel {
		a.finalizeTimeGradientChannel(out, ramp)
		return
	}

	for y:=0; y<a.H; y++ {
		for x:=0; x<a.W; x++ {
			i := y*a.W + x
			lum, t := a.Buf[i], a.BestT[i]
			o := i * a.C

			if a.C < 3 {
				out.Pix[o] = clamp255(lum * ramp.Luma(t))
				continue
			}

			col := ramp.At(t)
			out.Pix[o+0] = clamp255(lum * col.R)
			out.Pix[o+1] = clamp255(lum * col.G)
			out.Pix[o+2] = clamp255(lum * col.B)
			if a.C > 3 {
				out.Pix[o+3] = 0xff
			}
		}
	}
}

func (a *Acc)finalizeTimeGradientChannel(out *Frame, ramp Gradient) {
	for i := range a.Buf {
		v, t := a.Buf[i], a.BestT[i]
		ch := i % a.C

		var tint float64
		switch {
		case a.C < 3:
			tint = ramp.Luma(t)
		case ch == 0:
			tint = ramp.At(t).R
		case ch == 1:
			tint = ramp.At(t).G
		case ch == 2:
			tint = ramp.At(t).B
		default:
			tint = 1.0 // alpha passes through untinted
		}

		out.Pix[i] = clamp255(v * tint)
	}
}
