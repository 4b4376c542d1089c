package stats

import (
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores []int
		mean   float64
		stdev  float64
		min    float64
		max    float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638, 10, 23},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891, 10, 124},
		{[]int{1}, 1, 0, 1, 1},
		{[]int{}, 0, 0, 0, 0},
		{[]int{1, 1}, 1, 0, 1, 1},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, score := range c.scores {
			s.Push(float64(score))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.Equal(s.Min(), c.min)
		is.Equal(s.Max(), c.max)
		is.Equal(s.Iterations(), len(c.scores))
	}
}

func TestQuantile(t *testing.T) {
	is := is.New(t)
	vals := []float64{9, 1, 5, 3, 7}
	is.Equal(Quantile(0.5, vals), 5.0)
	is.Equal(Quantile(1, vals), 9.0)
	is.Equal(Quantile(0, vals), 1.0)
	is.Equal(vals[0], 9.0) // input left unsorted
	is.Equal(Quantile(0.5, nil), 0.0)
}
