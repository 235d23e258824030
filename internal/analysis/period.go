package analysis

import (
	"math"

	"github.com/san-kum/logistic/internal/logistic"
)

// Regime classifies the long-run behavior recorded for one parameter.
type Regime int

const (
	RegimeFixedPoint Regime = iota
	RegimePeriodic
	RegimeAperiodic
	RegimeTruncated
)

func (r Regime) String() string {
	switch r {
	case RegimeFixedPoint:
		return "fixed-point"
	case RegimePeriodic:
		return "periodic"
	case RegimeAperiodic:
		return "aperiodic"
	case RegimeTruncated:
		return "truncated"
	default:
		return "unknown"
	}
}

type SummaryConfig struct {
	// Tolerance for comparing tail values when estimating periods. It is
	// coarser than the scan tolerance because a tail converging onto a
	// fixed point can alternate by a few scan tolerances.
	Tolerance float64
	// Tails whose minimal period exceeds MaxPeriod count as aperiodic.
	MaxPeriod int
}

func DefaultSummaryConfig() SummaryConfig {
	return SummaryConfig{Tolerance: 1e-4, MaxPeriod: 64}
}

// MinimalPeriod returns the smallest p <= len(tail)/2 such that every
// value matches the one p steps later within tol, or len(tail) when no
// such p exists.
func MinimalPeriod(tail []float64, tol float64) int {
	n := len(tail)
	for p := 1; p <= n/2; p++ {
		if repeatsEvery(tail, p, tol) {
			return p
		}
	}
	return n
}

func repeatsEvery(tail []float64, p int, tol float64) bool {
	for i := 0; i+p < len(tail); i++ {
		if math.Abs(tail[i]-tail[i+p]) >= tol {
			return false
		}
	}
	return true
}

// Classify returns the regime and period of a record. Period is zero for
// aperiodic and truncated records.
func Classify(rec logistic.CycleRecord, cfg SummaryConfig) (Regime, int) {
	if rec.Truncated || len(rec.Tail) == 0 {
		return RegimeTruncated, 0
	}
	p := MinimalPeriod(rec.Tail, cfg.Tolerance)
	switch {
	case p == 1:
		return RegimeFixedPoint, 1
	case p <= cfg.MaxPeriod:
		return RegimePeriodic, p
	default:
		return RegimeAperiodic, 0
	}
}

// Transition marks the first parameter at which the detected period
// differs from the previous parameter's.
type Transition struct {
	A    float64
	From int
	To   int
}

type Summary struct {
	Records     int
	Points      int
	Regimes     map[Regime]int
	Periods     map[int]int
	Transitions []Transition
	// Delta is the period-doubling ratio estimated from the onsets of
	// periods 2, 4 and 8, or zero when any onset is missing.
	Delta float64
}

// Summarize classifies every record of a scan.
func Summarize(m logistic.CycleMap, cfg SummaryConfig) Summary {
	s := Summary{
		Records: len(m),
		Points:  m.PointCount(),
		Regimes: make(map[Regime]int),
		Periods: make(map[int]int),
	}

	onsets := make(map[int]float64)
	prev := -1
	for i, rec := range m {
		regime, p := Classify(rec, cfg)
		s.Regimes[regime]++
		if p > 0 {
			s.Periods[p]++
			if _, seen := onsets[p]; !seen {
				onsets[p] = rec.A
			}
		}
		if i > 0 && p != prev {
			s.Transitions = append(s.Transitions, Transition{A: rec.A, From: prev, To: p})
		}
		prev = p
	}

	s.Delta = doublingRatio(onsets)
	return s
}

func doublingRatio(onsets map[int]float64) float64 {
	a1, ok1 := onsets[2]
	a2, ok2 := onsets[4]
	a3, ok3 := onsets[8]
	if !ok1 || !ok2 || !ok3 || a3 <= a2 || a2 <= a1 {
		return 0
	}
	return (a2 - a1) / (a3 - a2)
}
