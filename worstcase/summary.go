package worstcase

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"

	"github.com/birdulon/wordlerank/stats"
)

const histogramBins = 15

// Summary describes the distribution of worst-case scores of a ranking.
type Summary struct {
	Stat   stats.Statistic
	Median float64
	Hist   histogram.Histogram
}

func Summarize(results []Result) Summary {
	var s Summary
	vals := make([]float64, len(results))
	for i, r := range results {
		vals[i] = float64(r.Worst)
		s.Stat.Push(vals[i])
	}
	s.Median = stats.Quantile(0.5, vals)
	if len(vals) > 0 {
		s.Hist = histogram.Hist(histogramBins, vals)
	}
	return s
}

func (s Summary) Fprint(w io.Writer) error {
	_, err := fmt.Fprintf(w, "guesses: %d  min: %.0f  max: %.0f  median: %.1f  mean: %.2f  stdev: %.2f\n",
		s.Stat.Iterations(), s.Stat.Min(), s.Stat.Max(), s.Median, s.Stat.Mean(), s.Stat.Stdev())
	if err != nil || s.Stat.Iterations() == 0 {
		return err
	}
	return histogram.Fprint(w, s.Hist, histogram.Linear(40))
}
