package tstack

import(
	"github.com/fogleman/gg"
)

// WriteLegendPNG renders the gradient ramp as a labelled strip, so a
// time-gradient composite can ship with a key for which colors mean
// early and late.
func WriteLegendPNG(ramp Gradient, filename string) error {
	const w, h, margin = 512, 64, 18

	dc := gg.NewContext(w, h)
	dc.SetRGB(0, 0, 0)
	dc.Clear()

	for x:=0; x<w; x++ {
		t := float64(x) / float64(w-1)
		col := ramp.At(t)
		dc.SetRGB(col.R, col.G, col.B)
		dc.DrawRectangle(float64(x), 0, 1, float64(h-margin))
		dc.Fill()
	}

	dc.SetRGB(1, 1, 1)
	dc.DrawString("t=0 (first frame)", 4, float64(h-4))
	dc.DrawString("t=1 (last frame)", float64(w-110), float64(h-4))

	return dc.SavePNG(filename)
}
