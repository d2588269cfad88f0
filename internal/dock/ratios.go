package dock

import "fmt"

const (
	minColumnRatio = 0.10
	maxColumnRatio = 0.50
	minRowRatio    = 0.10
	maxRowRatio    = 0.45
	// maxPairRatio leaves the center column and middle band at least 22%
	// of the shared extent.
	maxPairRatio = 0.78
)

// Ratios are the fractions of the shared extent given to the side columns
// of the middle band and to the top and bottom bands.
type Ratios struct {
	Left, Right float32
	Top, Bottom float32
}

// DefaultRatios returns the stock split.
func DefaultRatios() Ratios {
	return Ratios{Left: 0.24, Right: 0.23, Top: 0.22, Bottom: 0.20}
}

// Normalize clamps each ratio into its range and scales a pair whose sum
// exceeds the pair limit back down to it.
func (r Ratios) Normalize() Ratios {
	r.Left, r.Right = normalizePair(r.Left, r.Right, minColumnRatio, maxColumnRatio)
	r.Top, r.Bottom = normalizePair(r.Top, r.Bottom, minRowRatio, maxRowRatio)
	return r
}

// Valid reports whether r is already normalized.
func (r Ratios) Valid() bool {
	in := func(v, lo, hi float32) bool { return v >= lo && v <= hi }
	return in(r.Left, minColumnRatio, maxColumnRatio) &&
		in(r.Right, minColumnRatio, maxColumnRatio) &&
		in(r.Top, minRowRatio, maxRowRatio) &&
		in(r.Bottom, minRowRatio, maxRowRatio) &&
		r.Left+r.Right <= maxPairRatio+1e-6 &&
		r.Top+r.Bottom <= maxPairRatio+1e-6
}

func normalizePair(a, b, lo, hi float32) (float32, float32) {
	a = clampf(a, lo, hi)
	b = clampf(b, lo, hi)
	if sum := a + b; sum > maxPairRatio {
		scale := maxPairRatio / sum
		a *= scale
		b *= scale
	}
	return a, b
}

// Ratios returns the current split.
func (w *Workspace) Ratios() Ratios { return w.ratios }

// SetColumnRatios sets the side column ratios of the middle band. Values
// are clamped; only non-finite values are rejected.
func (w *Workspace) SetColumnRatios(left, right float32) error {
	if !finite(left) || !finite(right) {
		return fmt.Errorf("%w: column ratios %v, %v", ErrInvalidArgument, left, right)
	}
	r := w.ratios
	r.Left, r.Right = left, right
	w.ratios = r.Normalize()
	return nil
}

// SetRowRatios sets the top and bottom band ratios. Values are clamped;
// only non-finite values are rejected.
func (w *Workspace) SetRowRatios(top, bottom float32) error {
	if !finite(top) || !finite(bottom) {
		return fmt.Errorf("%w: row ratios %v, %v", ErrInvalidArgument, top, bottom)
	}
	r := w.ratios
	r.Top, r.Bottom = top, bottom
	w.ratios = r.Normalize()
	return nil
}
