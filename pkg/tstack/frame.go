package tstack

import(
	"fmt"
	"image"
	"image/color"
)

// A Frame is one decoded photograph in the capture-ordered sequence.
// Samples are stored as a flat row-major buffer, C samples per pixel
// (3 for RGB, 4 for RGBA; tests also use C=1 grayscale), so the hot
// loops index straight into the slice instead of going through
// image.Image interface calls.
type Frame struct {
	Index int     // 0-based position in the capture-ordered sequence
	W, H  int
	C     int     // samples per pixel
	Pix   []uint8 // row-major, len == W*H*C
}

func NewFrame(index, w, h, c int) Frame {
	return Frame{
		Index: index,
		W: w,
		H: h,
		C: c,
		Pix: make([]uint8, w*h*c),
	}
}

func (f Frame)String() string {
	return fmt.Sprintf("frame[%03d, %dx%dx%d]", f.Index, f.W, f.H, f.C)
}

func (f Frame)Bounds() image.Rectangle {
	return image.Rectangle{Max:image.Point{f.W, f.H}}
}

func (f Frame)At(x, y, ch int) uint8     { return f.Pix[(y*f.W+x)*f.C + ch] }
func (f *Frame)Set(x, y, ch int, v uint8) { f.Pix[(y*f.W+x)*f.C + ch] = v }

// Luma is the Rec.709 luminance of a pixel, in [0,255]. For frames
// with fewer than 3 channels, the first channel is the luminance.
func (f Frame)Luma(x, y int) float64 {
	i := (y*f.W + x) * f.C
	if f.C < 3 {
		return float64(f.Pix[i])
	}
	return 0.2126*float64(f.Pix[i]) + 0.7152*float64(f.Pix[i+1]) + 0.0722*float64(f.Pix[i+2])
}

// TimePosition maps the frame's index to its normalized position on
// the time axis: 0.0 for the first frame in a run of n, 1.0 for the
// last. A run of one frame sits at 0.0.
func (f Frame)TimePosition(n int) float64 {
	if n <= 1 {
		return 0.0
	}
	return float64(f.Index) / float64(n-1)
}

// FrameFromImage flattens a decoded image into a 4-channel Frame.
// There's a fast path for the NRGBA layout most decoders produce.
func FrameFromImage(index int, img image.Image) Frame {
	b := img.Bounds()
	f := NewFrame(index, b.Dx(), b.Dy(), 4)

	if nrgba, ok := img.(*image.NRGBA); ok {
		for y:=0; y<f.H; y++ {
			src := nrgba.Pix[(y+b.Min.Y-nrgba.Rect.Min.Y)*nrgba.Stride:]
			src = src[(b.Min.X-nrgba.Rect.Min.X)*4:]
			copy(f.Pix[y*f.W*4 : (y+1)*f.W*4], src[:f.W*4])
		}
		return f
	}

	for y:=0; y<f.H; y++ {
		for x:=0; x<f.W; x++ {
			c := color.NRGBAModel.Convert(img.At(x+b.Min.X, y+b.Min.Y)).(color.NRGBA)
			i := (y*f.W + x) * 4
			f.Pix[i+0] = c.R
			f.Pix[i+1] = c.G
			f.Pix[i+2] = c.B
			f.Pix[i+3] = c.A
		}
	}
	return f
}

// ToImage re-inflates the frame for the external encoder.
func (f Frame)ToImage() *image.NRGBA {
	img := image.NewNRGBA(f.Bounds())

	for y:=0; y<f.H; y++ {
		for x:=0; x<f.W; x++ {
			i := (y*f.W + x) * f.C
			o := y*img.Stride + x*4

			switch f.C {
			case 1:
				v := f.Pix[i]
				img.Pix[o+0], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3] = v, v, v, 0xff
			case 3:
				img.Pix[o+0], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3] = f.Pix[i], f.Pix[i+1], f.Pix[i+2], 0xff
			default:
				copy(img.Pix[o:o+4], f.Pix[i:i+4])
			}
		}
	}
	return img
}
