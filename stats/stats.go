package stats

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic is a running summary of a series of values.
type Statistic struct {
	totalIterations int
	min, max        float64

	// For Welford's algorithm:
	oldM float64
	newM float64
	oldS float64
	newS float64
}

func (s *Statistic) Push(val float64) {
	s.totalIterations++
	if s.totalIterations == 1 {
		s.oldM = val
		s.newM = val
		s.oldS = 0
		s.min = val
		s.max = val
		return
	}
	s.newM = s.oldM + (val-s.oldM)/float64(s.totalIterations)
	s.newS = s.oldS + (val-s.oldM)*(val-s.newM)
	s.oldM = s.newM
	s.oldS = s.newS
	s.min = min(s.min, val)
	s.max = max(s.max, val)
}

func (s *Statistic) Mean() float64 {
	if s.totalIterations > 0 {
		return s.newM
	}
	return 0.0
}

func (s *Statistic) Variance() float64 {
	if s.totalIterations <= 1 {
		return 0.0
	}
	return s.newS / float64(s.totalIterations-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

// StandardError returns the standard error of the statistic.
func (s *Statistic) StandardError() float64 {
	if s.totalIterations == 0 {
		return 0.0
	}
	return math.Sqrt(s.Variance() / float64(s.totalIterations))
}

func (s *Statistic) Min() float64 {
	return s.min
}

func (s *Statistic) Max() float64 {
	return s.max
}

func (s *Statistic) Iterations() int {
	return s.totalIterations
}

// Quantile returns the empirical p-quantile of vals. vals is not modified.
func Quantile(p float64, vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := slices.Clone(vals)
	slices.Sort(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}
