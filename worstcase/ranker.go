package worstcase

import (
	"context"
	"errors"
	"io"
	"runtime"
	"slices"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/birdulon/wordlerank/alphabet"
	"github.com/birdulon/wordlerank/feedback"
)

var ErrNotInitialized = errors.New("ranker not initialized")

// Result is the score of one guess.
type Result struct {
	// Index is the position of the guess in the list passed to Rank.
	Index       int
	Guess       alphabet.Word
	Worst       int
	WorstTarget int
}

// Ranker evaluates a list of guesses on a fixed pool of goroutines.
type Ranker struct {
	src      Source
	sim      *feedback.Simulator
	threads  int
	progress io.Writer

	evaluated atomic.Uint64
}

func (r *Ranker) Init(src Source, sim *feedback.Simulator) {
	r.src = src
	r.sim = sim
	r.threads = max(1, runtime.NumCPU())
}

func (r *Ranker) SetThreads(threads int) {
	r.threads = max(1, threads)
}

func (r *Ranker) Threads() int {
	return r.threads
}

// SetProgress sets where a progress bar is drawn during Rank. nil turns it
// off.
func (r *Ranker) SetProgress(w io.Writer) {
	r.progress = w
}

// Evaluated returns the number of guesses evaluated since Init.
func (r *Ranker) Evaluated() uint64 {
	return r.evaluated.Load()
}

// Rank evaluates every guess and returns the results sorted by ascending
// worst case. Guesses with equal scores keep their input order. Ranking
// always runs to completion; ctx only supplies the logger.
func (r *Ranker) Rank(ctx context.Context, guesses []alphabet.Word) ([]Result, error) {
	if r.src == nil || r.sim == nil {
		return nil, ErrNotInitialized
	}
	logger := zerolog.Ctx(ctx)
	results := make([]Result, len(guesses))
	if len(guesses) == 0 {
		return results, nil
	}
	threads := min(r.threads, len(guesses))

	var bar *progressbar.ProgressBar
	if r.progress != nil {
		bar = progressbar.NewOptions(len(guesses),
			progressbar.OptionSetWriter(r.progress),
			progressbar.OptionSetDescription("ranking"),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionSetRenderBlankState(true),
		)
	}

	logger.Debug().Int("threads", threads).Int("guesses", len(guesses)).Msg("rank-started")
	tstart := time.Now()
	var next atomic.Int64
	g := errgroup.Group{}

	for t := 0; t < threads; t++ {
		g.Go(func() error {
			var st feedback.State
			for {
				i := int(next.Add(1)) - 1
				if i >= len(guesses) {
					return nil
				}
				worst, target := evaluate(r.sim, guesses[i], r.src, &st)
				results[i] = Result{
					Index:       i,
					Guess:       guesses[i],
					Worst:       worst,
					WorstTarget: target,
				}
				r.evaluated.Add(1)
				if bar != nil {
					bar.Add(1)
				}
			}
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if bar != nil {
		bar.Finish()
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		return a.Worst - b.Worst
	})
	elapsed := time.Since(tstart)
	logger.Info().Int("guesses", len(guesses)).
		Int("threads", threads).
		Dur("elapsed", elapsed).
		Float64("guesses-per-sec", float64(len(guesses))/elapsed.Seconds()).
		Msg("rank-finished")
	return results, nil
}
