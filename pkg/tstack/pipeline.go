package tstack

import(
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/codahale/hdrhistogram"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// A Stack is the ordered sequence of frames to be composited, plus
// the configuration for the run.
type Stack struct {
	Frames []Frame
	Config

	// LastAcc keeps the raw float accumulator from the last Composite
	// call, so callers can export it before clamp-and-round lost
	// anything (see WriteHDR).
	LastAcc *Acc
}

func NewStack() Stack {
	return Stack{
		Frames: []Frame{},
		Config: NewConfig(),
	}
}

func (s Stack)String() string {
	str := "Stack[\n"
	for _, f := range s.Frames {
		str += fmt.Sprintf("  %s\n", f)
	}
	return str + "]\n"
}

// Add appends a frame, keeping the sequence sorted by temporal index.
func (s *Stack)Add(f Frame) {
	s.Frames = append(s.Frames, f)
	sort.Slice(s.Frames, func(i, j int) bool { return s.Frames[i].Index < s.Frames[j].Index })
}

func (s *Stack)workerCount() int {
	n := s.Config.Workers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > len(s.Frames)*s.Frames[0].H {
		n = 1 // degenerate inputs don't need a pool
	}
	return n
}

// Composite runs the whole pipeline: validate config, normalize the
// frames, fold them down in parallel, finalize to one output frame.
// The first worker error cancels its siblings and is returned as-is;
// no partial output ever escapes.
func (s *Stack)Composite(ctx context.Context) (Frame, error) {
	if err := s.Config.FinalizeConfig(); err != nil {
		return Frame{}, err
	}
	if len(s.Frames) == 0 {
		return Frame{}, ErrEmptyInput
	}

	if err := s.Normalize(); err != nil {
		return Frame{}, err
	}

	// Enforce the contiguity invariant: frames are already sorted by
	// capture order, so sparse indices collapse to their rank on the
	// time axis.
	for i := range s.Frames {
		s.Frames[i].Index = i
	}

	if s.Config.Rendering.Stats {
		s.LogFrameStats()
	}

	n := len(s.Frames)
	first := s.Frames[0]
	workers := s.workerCount()

	log.WithFields(log.Fields{
		"frames":  n,
		"mode":    s.Config.ModeID.String(),
		"size":    fmt.Sprintf("%dx%dx%d", first.W, first.H, first.C),
		"workers": workers,
	}).Info("compositing")

	var acc *Acc
	var err error
	started := time.Now()

	// Batchable folds can be split across frame batches, each worker
	// reducing its batch over the whole image, with one associative
	// merge at the end. That wins when there are many more frames than
	// workers; otherwise (and always for time-gradient, which must see
	// frames in index order) the image is split into row bands and
	// each worker owns its band for the whole run.
	if s.Config.ModeID.Batchable() && n >= 2*workers && workers > 1 {
		acc, err = s.foldByFrameBatch(ctx, workers)
	} else {
		acc, err = s.foldByRegion(ctx, workers)
	}
	if err != nil {
		return Frame{}, err
	}

	out := acc.FinalizeFrame(s.Config.Ramp)
	s.LastAcc = acc

	log.WithFields(log.Fields{
		"elapsed": time.Since(started).Round(time.Millisecond).String(),
	}).Info("composite finished")

	return out, nil
}

// foldByRegion splits the output into ~workers row bands. Each worker
// owns exclusive write access to its band's slice of the accumulator
// and walks all frames in increasing index order, checking for
// cancellation between frames.
func (s *Stack)foldByRegion(ctx context.Context, workers int) (*Acc, error) {
	first := s.Frames[0]
	n := len(s.Frames)
	acc := NewAcc(s.Config, n, first.W, first.H, first.C)

	bands := splitRows(first.H, workers)
	elapsed := make([]time.Duration, len(bands))

	eg, ctx := errgroup.WithContext(ctx)
	for r, band := range bands {
		r, band := r, band
		eg.Go(func() error {
			started := time.Now()
			for _, f := range s.Frames {
				if err := ctx.Err(); err != nil {
					return WorkerFailureError{Region:r, Err:err}
				}
				s.Config.Accum(acc, f, band[0], band[1])
			}
			elapsed[r] = time.Since(started)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	logRegionTimings(elapsed)
	return acc, nil
}

// foldByFrameBatch gives each worker a contiguous batch of frames and
// its own private accumulator over the whole image, then merges the
// partials with the same commutative rule the per-pixel fold uses.
func (s *Stack)foldByFrameBatch(ctx context.Context, workers int) (*Acc, error) {
	first := s.Frames[0]
	n := len(s.Frames)

	batches := splitRows(n, workers) // same banding arithmetic, over the frame axis
	partials := make([]*Acc, len(batches))
	elapsed := make([]time.Duration, len(batches))

	eg, ctx := errgroup.WithContext(ctx)
	for r, batch := range batches {
		r, batch := r, batch
		eg.Go(func() error {
			started := time.Now()
			part := NewAcc(s.Config, n, first.W, first.H, first.C)
			for _, f := range s.Frames[batch[0]:batch[1]] {
				if err := ctx.Err(); err != nil {
					return WorkerFailureError{Region:r, Err:err}
				}
				s.Config.Accum(part, f, 0, first.H)
			}
			partials[r] = part
			elapsed[r] = time.Since(started)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	acc := partials[0]
	for _, part := range partials[1:] {
		if err := acc.MergeAcc(part); err != nil {
			return nil, err
		}
	}

	logRegionTimings(elapsed)
	return acc, nil
}

// splitRows cuts [0,total) into at most n contiguous [lo,hi) spans of
// near-equal size.
func splitRows(total, n int) [][2]int {
	if n > total {
		n = total
	}
	spans := [][2]int{}
	per := (total + n - 1) / n
	for lo:=0; lo<total; lo+=per {
		hi := lo + per
		if hi > total {
			hi = total
		}
		spans = append(spans, [2]int{lo, hi})
	}
	return spans
}

// logRegionTimings summarizes how evenly the work spread across the
// pool; a lopsided p99/p50 usually means the bands were too coarse.
func logRegionTimings(elapsed []time.Duration) {
	if len(elapsed) < 2 {
		return
	}

	hist := hdrhistogram.New(1, int64(time.Hour/time.Microsecond), 3)
	for _, d := range elapsed {
		hist.RecordValue(int64(d / time.Microsecond))
	}

	log.WithFields(log.Fields{
		"regions":  len(elapsed),
		"p50_us":   hist.ValueAtQuantile(50),
		"p99_us":   hist.ValueAtQuantile(99),
		"max_us":   hist.Max(),
	}).Debug("region timings")
}
