package tstack

import(
	log "github.com/sirupsen/logrus"
	"github.com/skypies/util/histogram"
)

// LogFrameStats builds a luminance histogram per frame and logs a
// summary line for each. Useful for judging whether the sequence's
// exposure drifted enough to make lighten/darken output lopsided.
// Pixels are sampled on a stride so this stays cheap on big frames.
func (s *Stack)LogFrameStats() {
	for _, f := range s.Frames {
		h := histogram.Histogram{NumBuckets:64, ValMin:0, ValMax:256}

		stride := 1 + (f.W*f.H)/65536
		for p:=0; p<f.W*f.H; p+=stride {
			h.Add(histogram.ScalarVal(int(f.Luma(p % f.W, p / f.W))))
		}

		log.WithFields(log.Fields{
			"frame": f.Index,
			"luma":  h.String(),
		}).Info("frame luminance")
	}
}
