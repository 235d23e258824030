package analysis

import (
	"math"

	"github.com/san-kum/logistic/internal/logistic"
)

type LyapunovConfig struct {
	Warmup  int
	Samples int
}

func DefaultLyapunovConfig() LyapunovConfig {
	return LyapunovConfig{Warmup: 1000, Samples: 10000}
}

// LyapunovExponent estimates the exponent of the map at a by averaging
// ln|a(1-2x)| along the orbit from x0 after the warmup.
//
// A superstable orbit that hits x = 0.5 exactly yields -Inf.
func LyapunovExponent(a, x0 float64, cfg LyapunovConfig) float64 {
	if cfg.Samples <= 0 {
		return 0
	}

	x := x0
	for i := 0; i < cfg.Warmup; i++ {
		x = logistic.Step(a, x)
	}

	sumLog := 0.0
	for i := 0; i < cfg.Samples; i++ {
		sumLog += math.Log(math.Abs(a * (1 - 2*x)))
		x = logistic.Step(a, x)
	}

	return sumLog / float64(cfg.Samples)
}

// LyapunovSweep returns the exponent for each parameter, in order.
func LyapunovSweep(params []float64, x0 float64, cfg LyapunovConfig) []float64 {
	out := make([]float64, len(params))
	for i, a := range params {
		out[i] = LyapunovExponent(a, x0, cfg)
	}
	return out
}
