package tstack

import(
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"
)

// An AccImage exposes a finalized scalar accumulator as an hdr.Image,
// so the float values can be written out as Radiance .hdr before the
// 8-bit clamp-and-round threw precision away. Only meaningful for the
// scalar modes, whose Buf holds one value per pixel-channel.
type AccImage struct {
	acc *Acc
}

func NewAccImage(a *Acc) (*AccImage, error) {
	if a == nil || a.Mode == ModeTimeGradient {
		return nil, fmt.Errorf("no float accumulator to export for this mode")
	}
	return &AccImage{acc:a}, nil
}

// Implement image.Image
func (ai AccImage)ColorModel() color.Model { return hdrcolor.RGBModel }
func (ai AccImage)Bounds() image.Rectangle { return image.Rectangle{Max:image.Point{ai.acc.W, ai.acc.H}} }
func (ai AccImage)At(x, y int) color.Color { return ai.HDRAt(x, y) }

// Implement hdr.Image
func (ai AccImage)Size() int { return ai.acc.W * ai.acc.H }
func (ai AccImage)HDRAt(x, y int) hdrcolor.Color {
	a := ai.acc
	i := (y*a.W + x) * a.C

	if a.C < 3 {
		v := a.Buf[i] / 255.0
		return hdrcolor.RGB{R: v, G: v, B: v}
	}
	return hdrcolor.RGB{R: a.Buf[i] / 255.0, G: a.Buf[i+1] / 255.0, B: a.Buf[i+2] / 255.0}
}

func WriteHDR(img hdr.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return rgbe.Encode(writer, img)
	}
}
