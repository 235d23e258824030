package logistic

import (
	"fmt"
	"math"
)

// Converge iterates from x0 until two consecutive iterates differ by less
// than the tolerance.
//
// Only stable fixed points satisfy the predicate. Cycles of period 2 or
// more and chaotic orbits run until the iteration cap, in which case the
// truncated result is returned together with a *ConvergenceError. The
// result is never nil.
func Converge(a, x0 float64, opts Options) (*Result, error) {
	opts = opts.withDefaults(DefaultStepTolerance)

	traj := make(Trajectory, 0, 64)
	traj = append(traj, x0, Step(a, x0))

	res := &Result{A: a, X0: x0, Tolerance: opts.Tolerance}
	finish := func(converged bool) *Result {
		res.Trajectory = traj
		res.Iterations = len(traj) - 1
		res.Converged = converged
		return res
	}

	for {
		n := len(traj)
		last, prev := traj[n-1], traj[n-2]
		if math.IsNaN(last) || math.IsInf(last, 0) {
			return finish(false), fmt.Errorf("a=%g x0=%g after %d iterations: %w", a, x0, n-1, ErrInvalidState)
		}
		if math.Abs(last-prev) < opts.Tolerance {
			return finish(true), nil
		}
		if n-1 >= opts.MaxIterations {
			return finish(false), &ConvergenceError{
				A:          a,
				Iterations: n - 1,
				Last:       last,
				Previous:   prev,
			}
		}
		traj = append(traj, Step(a, last))
	}
}
