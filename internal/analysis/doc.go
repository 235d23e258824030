// Package analysis characterizes logistic-map orbits and scan results.
//
// The package includes:
//
//   - [LyapunovExponent]: orbit average of ln|f'(x)|
//   - [LyapunovSweep]: exponent for each parameter of a scan
//   - [MinimalPeriod]: smallest period consistent with a cycle tail
//   - [Summarize]: regime counts and period transitions across a scan
//
// # Chaos Detection
//
// A positive exponent indicates chaotic dynamics:
//
//	lambda := analysis.LyapunovExponent(3.9, 0.6, analysis.DefaultLyapunovConfig())
//	if lambda > 0 {
//	    // orbit is chaotic
//	}
//
// # Periods
//
// The scan records the tail after the first recurrence within tolerance.
// For chaotic parameters that recurrence is a coincidence of finite
// sampling, so [MinimalPeriod] reports the tail length when no shorter
// period fits and [Classify] treats long tails as aperiodic.
package analysis
