package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns |X_k|² for k in [0, n/2] of the mean-removed,
// Hann-windowed series. Any length works.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return []float64{}
	}
	x := make([]float64, len(data))
	copy(x, data)
	floats.AddConst(-stat.Mean(x, nil), x)
	window.Apply(x, window.Hann)

	spec := fft.FFTReal(x)
	ps := make([]float64, len(spec)/2+1)
	for i := range ps {
		a := cmplx.Abs(spec[i])
		ps[i] = a * a
	}
	return ps
}

// DominantPeriod finds the strongest non-DC frequency and returns its
// period in ticks along with its share of total power. sampleInterval is
// the tick spacing between samples. A flat series returns (0, 0).
func DominantPeriod(data []float64, sampleInterval int) (period, share float64) {
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0, 0
	}
	total := floats.Sum(ps[1:])
	if total == 0 || math.IsNaN(total) {
		return 0, 0
	}
	k := floats.MaxIdx(ps[1:]) + 1
	if sampleInterval < 1 {
		sampleInterval = 1
	}
	period = float64(len(data)) / float64(k) * float64(sampleInterval)
	return period, ps[k] / total
}

type Stats struct {
	Mean, Std float64
	Min, Max  float64
	Final     float64
}

func Describe(data []float64) Stats {
	if len(data) == 0 {
		return Stats{}
	}
	s := Stats{
		Mean:  stat.Mean(data, nil),
		Min:   floats.Min(data),
		Max:   floats.Max(data),
		Final: data[len(data)-1],
	}
	if len(data) > 1 {
		s.Std = stat.StdDev(data, nil)
	}
	return s
}
