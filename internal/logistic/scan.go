package logistic

import (
	"context"
	"fmt"
	"math"
)

// Cycle iterates from x0 until a new iterate lands within tolerance of
// any earlier one and returns the trajectory tail starting at the first
// (lowest index) such match.
//
// The match is a recurrence in a growing history, not a proof of
// periodicity: for chaotic parameters it fires when an iterate happens to
// fall near an earlier one. When the seed pair already agrees within
// tolerance the record is the two-element trajectory. When the cap is hit
// or an iterate stops being finite, the record is marked Truncated and
// carries the whole trajectory.
func Cycle(a, x0 float64, opts Options) CycleRecord {
	opts = opts.withDefaults(DefaultScanTolerance)
	tol := opts.Tolerance

	traj := make([]float64, 0, 64)
	traj = append(traj, x0, Step(a, x0))

	start := 0
	truncated := false
	for math.Abs(traj[len(traj)-2]-traj[len(traj)-1]) >= tol {
		if len(traj)-1 >= opts.MaxIterations {
			truncated = true
			break
		}
		candidate := Step(a, traj[len(traj)-1])
		if math.IsNaN(candidate) || math.IsInf(candidate, 0) {
			truncated = true
			break
		}
		if i := firstWithin(traj, candidate, tol); i >= 0 {
			start = i
			break
		}
		traj = append(traj, candidate)
	}

	tail := make([]float64, len(traj)-start)
	copy(tail, traj[start:])
	return CycleRecord{
		A:          a,
		Tail:       tail,
		Iterations: len(traj),
		Truncated:  truncated,
	}
}

func firstWithin(history []float64, v, tol float64) int {
	for i, h := range history {
		if math.Abs(h-v) < tol {
			return i
		}
	}
	return -1
}

// Scan runs Cycle for every parameter in order. The scan itself is
// sequential; ctx is checked between parameters.
func Scan(ctx context.Context, params []float64, x0 float64, opts Options) (CycleMap, error) {
	if len(params) == 0 {
		return nil, ErrEmptyParameters
	}

	out := make(CycleMap, 0, len(params))
	for i, a := range params {
		select {
		case <-ctx.Done():
			return out, fmt.Errorf("after %d of %d parameters: %w", i, len(params), ErrCanceled)
		default:
		}
		out = append(out, Cycle(a, x0, opts))
	}
	return out, nil
}
