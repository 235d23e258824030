// Package logistic iterates the logistic map x' = a·x·(1−x): single-seed
// convergence for step plots and first-recurrence cycle detection across
// a parameter range for bifurcation diagrams.
package logistic

// Step applies the map once. No domain check is made on a or x.
func Step(a, x float64) float64 {
	return a * x * (1 - x)
}

// StepAll applies the map elementwise and returns a new slice.
func StepAll(a float64, xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = Step(a, x)
	}
	return out
}

// Linspace returns n evenly spaced values over [lo, hi], endpoints included.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// Curve samples the map over [0, 1] at n points for plotting against the
// identity line.
func Curve(a float64, n int) (xs, ys []float64) {
	xs = Linspace(0, 1, n)
	return xs, StepAll(a, xs)
}

// InDomain reports whether a and x0 lie in the region where the map is
// closed over [0, 1].
func InDomain(a, x0 float64) bool {
	return a > 0 && a < 4 && x0 >= 0 && x0 <= 1
}
