package main

import(
	"context"
	"flag"

	log "github.com/sirupsen/logrus"

	"github.com/aeshirey/hdtr/pkg/tstack"
)

var(
	fConfigFilename string
	fOutputFilename string
	fMode string
	fResize string
	fCompare string
	fGradient string
	fMaskShape string
	fMaskSteepness float64
	fWorkers int
	fHDRFilename string
	fLegendFilename string
	fStats bool
	fVerbose bool
)

func init() {
	flag.StringVar(&fConfigFilename, "c", "", "YAML config file (flags override it)")
	flag.StringVar(&fOutputFilename, "o", "stacked.png", "name of output image file")
	flag.StringVar(&fMode, "mode", "", "accumulation rule: lighten, darken, average, time-gradient, mask-blend")
	flag.StringVar(&fResize, "resize", "", "mismatched frame policy: scale-to-first, reject")
	flag.StringVar(&fCompare, "compare", "", "time-gradient ranking: luminance, channel")
	flag.StringVar(&fGradient, "gradient", "", "time-gradient color ramp preset")
	flag.StringVar(&fMaskShape, "mask", "", "mask-blend shape: vertical-flat, horizontal-flat, vertical-logistic, horizontal-logistic")
	flag.Float64Var(&fMaskSteepness, "maskk", 0, "logistic mask steepness (~0.01)")
	flag.IntVar(&fWorkers, "workers", 0, "parallel workers (0 = one per CPU)")
	flag.StringVar(&fHDRFilename, "hdr", "", "also dump the float accumulator as Radiance .hdr")
	flag.StringVar(&fLegendFilename, "legend", "", "also write a gradient legend strip PNG")
	flag.BoolVar(&fStats, "stats", false, "log per-frame luminance histograms")
	flag.BoolVar(&fVerbose, "v", false, "debug logging")
	flag.Parse()

	if fVerbose {
		log.SetLevel(log.DebugLevel)
	}
}

func main() {
	s := tstack.NewStack()

	if fConfigFilename != "" {
		cfg, err := tstack.LoadConfig(fConfigFilename)
		if err != nil {
			log.Fatal(err)
		}
		s.Config = cfg
	}

	// Override the config file with command line args, if relevant
	if fMode != "" { s.Config.Mode = fMode }
	if fResize != "" { s.Config.Resize = fResize }
	if fCompare != "" { s.Config.Compare = fCompare }
	if fGradient != "" { s.Config.Gradient.Preset = fGradient }
	if fMaskShape != "" { s.Config.Mask.Shape = fMaskShape }
	if fMaskSteepness > 0 { s.Config.Mask.Steepness = fMaskSteepness }
	if fWorkers > 0 { s.Config.Workers = fWorkers }
	if fOutputFilename != "" { s.Config.Rendering.OutputFilename = fOutputFilename }
	if fHDRFilename != "" { s.Config.Rendering.HDRFilename = fHDRFilename }
	if fLegendFilename != "" { s.Config.Rendering.LegendFilename = fLegendFilename }
	if fStats { s.Config.Rendering.Stats = true }

	loader := tstack.NewLoader()
	if err := loader.Load(flag.Args()...); err != nil {
		log.Fatal(err)
	}
	for _, f := range loader.Frames() {
		s.Add(f)
	}

	out, err := s.Composite(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	if err := tstack.WritePNG(out.ToImage(), s.Config.Rendering.OutputFilename); err != nil {
		log.Fatal(err)
	}
	log.WithFields(log.Fields{"file":s.Config.Rendering.OutputFilename}).Info("output written")

	if s.Config.Rendering.HDRFilename != "" {
		img, err := tstack.NewAccImage(s.LastAcc)
		if err != nil {
			log.Fatal(err)
		}
		if err := tstack.WriteHDR(img, s.Config.Rendering.HDRFilename); err != nil {
			log.Fatal(err)
		}
		log.WithFields(log.Fields{"file":s.Config.Rendering.HDRFilename}).Info("hdr written")
	}

	if s.Config.Rendering.LegendFilename != "" {
		if err := tstack.WriteLegendPNG(s.Config.Ramp, s.Config.Rendering.LegendFilename); err != nil {
			log.Fatal(err)
		}
		log.WithFields(log.Fields{"file":s.Config.Rendering.LegendFilename}).Info("legend written")
	}
}
