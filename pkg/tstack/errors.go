package tstack

import(
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when a composite is attempted with zero
// frames. No default image is ever synthesized.
var ErrEmptyInput = errors.New("no frames to composite")

// A DimensionMismatchError aborts the run when resize policy is
// "reject" and a frame disagrees with the first frame's geometry.
type DimensionMismatchError struct {
	Index          int // offending frame
	W, H           int
	WantW, WantH   int
}

func (e DimensionMismatchError)Error() string {
	return fmt.Sprintf("frame %d is %dx%d, want %dx%d (resize policy is reject)",
		e.Index, e.W, e.H, e.WantW, e.WantH)
}

// An UnknownModeError is returned before any frame processing begins,
// when the configuration names a strategy that doesn't exist.
type UnknownModeError struct {
	Kind  string // "mode", "resize", "compare", "mask"
	Value string
}

func (e UnknownModeError)Error() string {
	return fmt.Sprintf("no %s strategy named '%s'", e.Kind, e.Value)
}

// A WorkerFailureError wraps the first fault raised inside the
// parallel region workers; its siblings are cancelled and nothing is
// published.
type WorkerFailureError struct {
	Region int
	Err    error
}

func (e WorkerFailureError)Error() string {
	return fmt.Sprintf("worker for region %d: %v", e.Region, e.Err)
}

func (e WorkerFailureError)Unwrap() error { return e.Err }
