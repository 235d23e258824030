package logistic

import "math"

const (
	DefaultStepTolerance = 1e-4
	DefaultScanTolerance = 1e-6
	DefaultMaxIterations = 10000
)

// Options bounds an iteration. Zero fields fall back to the defaults of
// the operation they are passed to.
type Options struct {
	Tolerance     float64
	MaxIterations int
}

func (o Options) withDefaults(tol float64) Options {
	if o.Tolerance <= 0 {
		o.Tolerance = tol
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	return o
}

// Trajectory is the ordered sequence of iterates starting at the seed.
type Trajectory []float64

// IsValid reports whether every iterate is finite.
func (t Trajectory) IsValid() bool {
	for _, v := range t {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Steps returns the staircase endpoints (x_n, x_n+1) for n in [0, len-1).
func (t Trajectory) Steps() (from, to []float64) {
	if len(t) < 2 {
		return nil, nil
	}
	return t[:len(t)-1], t[1:]
}

// Result is the outcome of a single-seed convergence run.
type Result struct {
	A          float64
	X0         float64
	Tolerance  float64
	Trajectory Trajectory
	Converged  bool
	// Iterations counts applications of the map, len(Trajectory)-1.
	Iterations int
}

// Final returns the last two iterates.
func (r *Result) Final() (prev, last float64) {
	n := len(r.Trajectory)
	return r.Trajectory[n-2], r.Trajectory[n-1]
}

// CycleRecord is the tail of one parameter's trajectory, starting at the
// first iterate that was revisited within tolerance.
type CycleRecord struct {
	A    float64
	Tail []float64
	// Length of the full trajectory before the tail was cut.
	Iterations int
	// Truncated is set when the iteration cap stopped the search; Tail is
	// then the whole trajectory.
	Truncated bool
}

// CycleMap holds one record per scanned parameter, in scan order.
type CycleMap []CycleRecord

// Lookup returns the record of the first scanned parameter equal to a.
func (m CycleMap) Lookup(a float64) (CycleRecord, bool) {
	for _, r := range m {
		if r.A == a {
			return r, true
		}
	}
	return CycleRecord{}, false
}

// PointCount is the total number of (a, x) pairs the map scatters into.
func (m CycleMap) PointCount() int {
	n := 0
	for _, r := range m {
		n += len(r.Tail)
	}
	return n
}

// TruncatedCount returns how many records hit the iteration cap.
func (m CycleMap) TruncatedCount() int {
	n := 0
	for _, r := range m {
		if r.Truncated {
			n++
		}
	}
	return n
}

// Point is one (parameter, state) pair of a bifurcation diagram.
type Point struct {
	A float64
	X float64
}

// Scatter flattens the map into diagram points, record by record.
func (m CycleMap) Scatter() []Point {
	pts := make([]Point, 0, m.PointCount())
	for _, r := range m {
		for _, x := range r.Tail {
			pts = append(pts, Point{A: r.A, X: x})
		}
	}
	return pts
}
