// Package runner wires a dictionary, constraint cache and ranker into an
// engine that the command-line tools and the shell drive.
package runner

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/birdulon/wordlerank/alphabet"
	"github.com/birdulon/wordlerank/config"
	"github.com/birdulon/wordlerank/dictionary"
	"github.com/birdulon/wordlerank/feedback"
	"github.com/birdulon/wordlerank/results"
	"github.com/birdulon/wordlerank/wordcache"
	"github.com/birdulon/wordlerank/worstcase"
)

type Engine struct {
	cfg       *config.Config
	enc       *alphabet.Encoder
	dict      *dictionary.Dictionary
	solutions []alphabet.Word
	cache     *wordcache.Cache
	sim       *feedback.Simulator
	ranker    *worstcase.Ranker
	backend   Backend

	last *Ranking
}

// Ranking is the outcome of one Rank call.
type Ranking struct {
	Options RankOptions
	// Probes[i] lists the dictionary indices aggregated into the guess
	// ranked by the Result with Index i.
	Probes  [][]int
	Results []worstcase.Result
	Elapsed time.Duration
}

// NewEngine loads the configured dictionary and builds its constraint
// cache.
func NewEngine(ctx context.Context, cfg *config.Config) (*Engine, error) {
	logger := zerolog.Ctx(ctx)
	// Dictionary words are normalized before encoding; the alphabet must match.
	alph, err := alphabet.NewAlphabet(dictionary.Normalize(cfg.GetString(config.ConfigAlphabet)))
	if err != nil {
		return nil, err
	}
	wordLength := cfg.GetInt(config.ConfigWordLength)
	enc, err := alphabet.NewEncoder(alph, wordLength)
	if err != nil {
		return nil, err
	}
	backend, err := ParseBackend(cfg.GetString(config.ConfigCacheBackend))
	if err != nil {
		return nil, err
	}
	dopts := dictionary.Options{
		Encoding: cfg.GetString(config.ConfigDictionaryEncoding),
		Dedupe:   cfg.GetBool(config.ConfigDedupe),
	}
	dict, err := dictionary.LoadFile(cfg.DataFile(cfg.GetString(config.ConfigDictionary)), enc, dopts)
	if err != nil {
		return nil, err
	}
	numSolutions := cfg.GetInt(config.ConfigNumSolutions)
	if solFile := cfg.GetString(config.ConfigSolutionsFile); solFile != "" {
		sol, err := dictionary.LoadFile(cfg.DataFile(solFile), enc, dopts)
		if err != nil {
			return nil, err
		}
		dict = dict.WithSolutions(sol)
		numSolutions = sol.Len()
	}
	solutions, err := dict.Split(numSolutions)
	if err != nil {
		return nil, err
	}

	maxLetters := cfg.GetInt(config.ConfigMaxKeyLetters)
	if maxLetters <= 0 {
		maxLetters = wordLength
	}
	store, backend, err := newStore(backend, alph.Size(),
		cfg.GetFloat64(config.ConfigDenseMemoryFraction), len(solutions)*8)
	if err != nil {
		return nil, err
	}
	c, err := wordcache.Build(solutions, dict.Words, store, wordcache.Options{
		AlphabetSize: alph.Size(),
		MaxLetters:   maxLetters,
	})
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:       cfg,
		enc:       enc,
		dict:      dict,
		solutions: solutions,
		cache:     c,
		sim:       feedback.NewSimulator(alph.All(), wordLength),
		ranker:    &worstcase.Ranker{},
		backend:   backend,
	}
	e.ranker.Init(c, e.sim)
	e.ranker.SetThreads(cfg.GetInt(config.ConfigThreads))
	if cfg.GetBool(config.ConfigProgress) {
		e.ranker.SetProgress(os.Stderr)
	}
	logger.Info().Int("words", dict.Len()).
		Int("solutions", len(solutions)).
		Str("backend", string(backend)).
		Int("threads", e.ranker.Threads()).
		Msg("engine-ready")
	return e, nil
}

// CacheKey identifies the settings that determine an engine's contents.
func CacheKey(cfg *config.Config) string {
	return strings.Join([]string{
		cfg.DataFile(cfg.GetString(config.ConfigDictionary)),
		cfg.DataFile(cfg.GetString(config.ConfigSolutionsFile)),
		cfg.GetString(config.ConfigNumSolutions),
		dictionary.Normalize(cfg.GetString(config.ConfigAlphabet)),
		cfg.GetString(config.ConfigWordLength),
		cfg.GetString(config.ConfigMaxKeyLetters),
		cfg.GetString(config.ConfigCacheBackend),
		cfg.GetString(config.ConfigDenseMemoryFraction),
		cfg.GetString(config.ConfigDictionaryEncoding),
		cfg.GetString(config.ConfigDedupe),
	}, "|")
}

func (e *Engine) Encoder() *alphabet.Encoder {
	return e.enc
}

func (e *Engine) Dictionary() *dictionary.Dictionary {
	return e.dict
}

func (e *Engine) Backend() Backend {
	return e.backend
}

func (e *Engine) NumSolutions() int {
	return len(e.solutions)
}

func (e *Engine) SetThreads(n int) {
	e.ranker.SetThreads(n)
}

func (e *Engine) Threads() int {
	return e.ranker.Threads()
}

// LastRanking returns the most recent ranking, or nil.
func (e *Engine) LastRanking() *Ranking {
	return e.last
}

func (e *Engine) fixedIndices(fixed []string) ([]int, error) {
	idx := make([]int, len(fixed))
	for i, f := range fixed {
		idx[i] = e.dict.Index(f)
		if idx[i] < 0 {
			return nil, fmt.Errorf("fixed guess %q is not in the dictionary", f)
		}
	}
	return lo.Uniq(idx), nil
}

// Rank evaluates every probe selected by opts and keeps the ranking for
// later inspection.
func (e *Engine) Rank(ctx context.Context, opts RankOptions) (*Ranking, error) {
	fixed, err := e.fixedIndices(opts.Fixed)
	if err != nil {
		return nil, err
	}
	probes, err := worstcase.Probes(e.dict.Len(), worstcase.Selection{
		Depth:  opts.Depth,
		Fixed:  fixed,
		Limit:  opts.Limit,
		Sample: opts.Sample,
	})
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Int("probes", len(probes)).Str("options", opts.String()).Msg("rank-probes")

	tstart := time.Now()
	res, err := e.ranker.Rank(ctx, worstcase.AggregateProbes(e.dict.Words, probes))
	if err != nil {
		return nil, err
	}
	e.last = &Ranking{
		Options: opts,
		Probes:  probes,
		Results: res,
		Elapsed: time.Since(tstart),
	}
	return e.last, nil
}

// Bench repeats a ranking and returns the time each run took.
func (e *Engine) Bench(ctx context.Context, opts RankOptions, iterations int) ([]time.Duration, error) {
	times := make([]time.Duration, 0, iterations)
	for i := range iterations {
		r, err := e.Rank(ctx, opts)
		if err != nil {
			return nil, err
		}
		log.Info().Int("iteration", i).Dur("elapsed", r.Elapsed).Msg("bench-iteration")
		times = append(times, r.Elapsed)
	}
	return times, nil
}

// ProbeLabel names a ranked probe by its guesses, joined with "+".
func (e *Engine) ProbeLabel(r *Ranking, res worstcase.Result) string {
	return strings.Join(lo.Map(r.Probes[res.Index], func(i int, _ int) string {
		return e.dict.Text[i]
	}), "+")
}

// Rows labels the first top results of r; top <= 0 means all.
func (e *Engine) Rows(r *Ranking, top int) []results.Row {
	res := r.Results
	if top > 0 && top < len(res) {
		res = res[:top]
	}
	return results.Rows(res, func(res worstcase.Result) string {
		return e.ProbeLabel(r, res)
	}, e.dict.Text[:len(e.solutions)])
}

// WriteResults writes the first top rows of r in format to path.
func (e *Engine) WriteResults(ctx context.Context, r *Ranking, format, path string, top int) error {
	w, err := results.NewWriter(format, path)
	if err != nil {
		return err
	}
	if err := w.Write(ctx, e.Rows(r, top)); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// Evaluation is the worst case of a single probe.
type Evaluation struct {
	Guess       string
	Aggregate   string
	Worst       int
	WorstTarget string
}

func (e *Engine) encode(words []string) ([]alphabet.Word, error) {
	out := make([]alphabet.Word, len(words))
	for i, s := range words {
		w, err := e.enc.Encode(dictionary.Normalize(s))
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		out[i] = w
	}
	return out, nil
}

// Evaluate scores the probe made of words. Words need not be in the
// dictionary.
func (e *Engine) Evaluate(words ...string) (*Evaluation, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("nothing to evaluate")
	}
	encoded, err := e.encode(words)
	if err != nil {
		return nil, err
	}
	agg := feedback.Aggregate(encoded...)
	worst, target := worstcase.Evaluate(e.sim, agg, e.cache)
	ev := &Evaluation{
		Guess:     strings.Join(lo.Map(words, func(s string, _ int) string { return dictionary.Normalize(s) }), "+"),
		Aggregate: e.enc.Decode(agg),
		Worst:     worst,
	}
	if target >= 0 {
		ev.WorstTarget = e.dict.Text[target]
	}
	return ev, nil
}

// Explanation shows the feedback one probe gets against a target.
type Explanation struct {
	Pattern    string
	Required   string
	Banned     []string
	Remaining  int
	Candidates []string
}

// Explain simulates guess against target. guess may hold several words
// separated by "+".
func (e *Engine) Explain(guess, target string) (*Explanation, error) {
	guesses, err := e.encode(strings.Split(guess, "+"))
	if err != nil {
		return nil, err
	}
	t, err := e.encode([]string{target})
	if err != nil {
		return nil, err
	}
	agg := feedback.Aggregate(guesses...)
	st := e.sim.Simulate(agg, t[0])
	alph := e.enc.Alphabet()
	ex := &Explanation{
		Required:  alph.Letters(st.Required),
		Remaining: feedback.CountRemaining(&st, e.cache),
	}
	if len(guesses) == 1 {
		ex.Pattern = feedback.ComputePattern(guesses[0], t[0]).String()
	}
	for i := 0; i < st.Length; i++ {
		ex.Banned = append(ex.Banned, alph.Letters(st.Banned[i]))
	}
	for _, w := range e.cache.Lookup(st.Required) {
		if st.Admits(w) {
			ex.Candidates = append(ex.Candidates, e.enc.Decode(w))
		}
	}
	return ex, nil
}

// Info summarizes the loaded engine.
type Info struct {
	Words      int
	Solutions  int
	CacheKeys  int
	Skipped    int
	Duplicates int
	Backend    Backend
	Threads    int
}

func (e *Engine) Info() Info {
	return Info{
		Words:      e.dict.Len(),
		Solutions:  len(e.solutions),
		CacheKeys:  e.cache.Keys(),
		Skipped:    e.dict.SkippedTotal(),
		Duplicates: e.dict.Duplicates,
		Backend:    e.backend,
		Threads:    e.ranker.Threads(),
	}
}
