package tstack

import(
	"image"

	"golang.org/x/image/draw"
)

// Normalize makes the frame sequence dimensionally uniform: after it
// returns nil, every frame shares the first frame's width, height and
// channel count, so the per-pixel folds are well-defined. Input
// frames are replaced, never mutated in place.
func (s *Stack)Normalize() error {
	if len(s.Frames) == 0 {
		return ErrEmptyInput
	}

	first := s.Frames[0]

	for i:=1; i<len(s.Frames); i++ {
		f := s.Frames[i]

		if f.W != first.W || f.H != first.H {
			if s.Config.ResizeID == ResizeReject {
				return DimensionMismatchError{
					Index: f.Index,
					W: f.W, H: f.H,
					WantW: first.W, WantH: first.H,
				}
			}
			f = resizeFrame(f, first.W, first.H)
		}

		if f.C != first.C {
			f = reconcileChannels(f, first.C)
		}

		s.Frames[i] = f
	}

	return nil
}

// resizeFrame resamples a frame to w x h with bilinear interpolation.
func resizeFrame(f Frame, w, h int) Frame {
	dst := image.NewNRGBA(image.Rectangle{Max:image.Point{w, h}})
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), f.ToImage(), f.Bounds(), draw.Src, nil)

	out := FrameFromImage(f.Index, dst)
	out.Index = f.Index
	if f.C != 4 {
		out = reconcileChannels(out, f.C)
	}
	return out
}

// reconcileChannels drops or synthesizes channels so the frame has
// exactly c samples per pixel. A synthesized alpha is fully opaque; a
// synthesized color channel replicates the gray value.
func reconcileChannels(f Frame, c int) Frame {
	out := NewFrame(f.Index, f.W, f.H, c)

	for p:=0; p<f.W*f.H; p++ {
		src := p * f.C
		dst := p * c
		for ch:=0; ch<c; ch++ {
			switch {
			case ch < f.C:
				out.Pix[dst+ch] = f.Pix[src+ch]
			case ch == 3:
				out.Pix[dst+ch] = 0xff // opaque
			default:
				out.Pix[dst+ch] = f.Pix[src] // gray -> rgb
			}
		}
	}

	return out
}
