package runner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/pbnjay/memory"
	"github.com/stretchr/testify/assert"

	"github.com/birdulon/wordlerank/config"
	"github.com/birdulon/wordlerank/testhelpers"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigDataPath, "testdata")
	cfg.Set(config.ConfigDictionary, "words.txt")
	cfg.Set(config.ConfigNumSolutions, len(testhelpers.SmallSolutions))
	cfg.Set(config.ConfigCacheBackend, "map")
	cfg.Set(config.ConfigThreads, 3)
	return cfg
}

func newTestEngine(t *testing.T, cfg *config.Config) *Engine {
	e, err := NewEngine(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestNewEngine(t *testing.T) {
	is := is.New(t)
	e := newTestEngine(t, testConfig())
	info := e.Info()
	is.Equal(info.Words, len(testhelpers.SmallAllWords()))
	is.Equal(info.Solutions, len(testhelpers.SmallSolutions))
	is.Equal(info.Backend, BackendMap)
	is.Equal(info.Threads, 3)
	is.True(info.CacheKeys > 2)
}

func TestRankSingleGuesses(t *testing.T) {
	is := is.New(t)
	e := newTestEngine(t, testConfig())
	r, err := e.Rank(context.Background(), RankOptions{Depth: 1})
	is.NoErr(err)
	is.Equal(len(r.Results), len(testhelpers.SmallAllWords()))
	is.Equal(e.LastRanking(), r)

	rows := e.Rows(r, 0)
	for i, row := range rows {
		is.Equal(row.Rank, i+1)
		worst, target := testhelpers.WorstCase(row.Guess, testhelpers.SmallSolutions)
		assert.Equal(t, worst, row.Worst, row.Guess)
		assert.Equal(t, testhelpers.SmallSolutions[target], row.WorstTarget, row.Guess)
		if i > 0 {
			is.True(rows[i-1].Worst <= row.Worst)
		}
	}
	is.Equal(len(e.Rows(r, 5)), 5)
}

func TestRankWithFixedOpener(t *testing.T) {
	is := is.New(t)
	e := newTestEngine(t, testConfig())
	r, err := e.Rank(context.Background(), RankOptions{Depth: 1, Fixed: []string{"salet"}})
	is.NoErr(err)
	is.Equal(len(r.Results), len(testhelpers.SmallAllWords())-1)

	salet, err := e.Evaluate("SALET")
	is.NoErr(err)
	for _, row := range e.Rows(r, 0) {
		is.True(strings.HasPrefix(row.Guess, "SALET+"))
		is.True(row.Worst <= salet.Worst)
	}

	_, err = e.Rank(context.Background(), RankOptions{Depth: 1, Fixed: []string{"ZZZZZ"}})
	is.True(err != nil)
}

func TestRankLimitAndSample(t *testing.T) {
	is := is.New(t)
	e := newTestEngine(t, testConfig())
	r, err := e.Rank(context.Background(), RankOptions{Depth: 2, Limit: 100, Sample: 10})
	is.NoErr(err)
	is.Equal(len(r.Results), 10)
	for _, p := range r.Probes {
		is.Equal(len(p), 2)
	}
}

func TestEvaluate(t *testing.T) {
	is := is.New(t)
	e := newTestEngine(t, testConfig())
	ev, err := e.Evaluate("crane")
	is.NoErr(err)
	worst, target := testhelpers.WorstCase("CRANE", testhelpers.SmallSolutions)
	is.Equal(ev.Guess, "CRANE")
	is.Equal(ev.Worst, worst)
	is.Equal(ev.WorstTarget, testhelpers.SmallSolutions[target])

	pair, err := e.Evaluate("crane", "nymph")
	is.NoErr(err)
	is.Equal(pair.Guess, "CRANE+NYMPH")
	is.True(pair.Worst <= ev.Worst)

	_, err = e.Evaluate("cr4ne")
	is.True(err != nil)
	_, err = e.Evaluate()
	is.True(err != nil)
}

func TestExplain(t *testing.T) {
	is := is.New(t)
	e := newTestEngine(t, testConfig())
	ex, err := e.Explain("crane", "slate")
	is.NoErr(err)
	is.Equal(ex.Pattern, "BBGBG")
	is.Equal(ex.Required, "AE")
	is.Equal(ex.Remaining, 3)
	is.Equal(ex.Candidates, []string{"FLAME", "SLATE", "STALE"})
	is.Equal(len(ex.Banned), 5)

	multi, err := e.Explain("crane+nymph", "slate")
	is.NoErr(err)
	is.Equal(multi.Pattern, "")
	is.True(multi.Remaining <= ex.Remaining)
}

func TestSeparateSolutionsFile(t *testing.T) {
	is := is.New(t)
	cfg := testConfig()
	cfg.Set(config.ConfigDictionary, "guesses.txt")
	cfg.Set(config.ConfigSolutionsFile, "solutions.txt")
	cfg.Set(config.ConfigNumSolutions, 1)
	e := newTestEngine(t, cfg)
	is.Equal(e.NumSolutions(), len(testhelpers.SmallSolutions))
	// SLATE is listed in both files and kept once.
	is.Equal(e.Dictionary().Len(), len(testhelpers.SmallAllWords()))
}

func TestDenseFallback(t *testing.T) {
	if memory.TotalMemory() == 0 {
		t.Skip("total memory not reported on this platform")
	}
	is := is.New(t)
	cfg := testConfig()
	cfg.Set(config.ConfigCacheBackend, "dense")
	cfg.Set(config.ConfigDenseMemoryFraction, 1e-12)
	e := newTestEngine(t, cfg)
	is.Equal(e.Backend(), BackendXXHash)
}

func TestBadBackend(t *testing.T) {
	cfg := testConfig()
	cfg.Set(config.ConfigCacheBackend, "btree")
	_, err := NewEngine(context.Background(), cfg)
	assert.NotNil(t, err)
}

func TestWriteResultsAndBench(t *testing.T) {
	is := is.New(t)
	e := newTestEngine(t, testConfig())
	ctx := context.Background()
	times, err := e.Bench(ctx, RankOptions{Depth: 1}, 2)
	is.NoErr(err)
	is.Equal(len(times), 2)

	path := filepath.Join(t.TempDir(), "out.txt")
	is.NoErr(e.WriteResults(ctx, e.LastRanking(), "text", path, 3))
	data, err := os.ReadFile(path)
	is.NoErr(err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	is.Equal(len(lines), 3)
	is.True(strings.Contains(lines[0], " - "))
}

func TestCacheKey(t *testing.T) {
	is := is.New(t)
	a := testConfig()
	b := testConfig()
	is.Equal(CacheKey(a), CacheKey(b))
	b.Set(config.ConfigCacheBackend, "xxhash")
	is.True(CacheKey(a) != CacheKey(b))
	b = testConfig()
	b.Set(config.ConfigThreads, 9)
	is.Equal(CacheKey(a), CacheKey(b))
}

func TestRankOptions(t *testing.T) {
	is := is.New(t)
	cfg := testConfig()
	cfg.Set(config.ConfigFixedGuesses, []string{"CRANE"})
	opts := DefaultRankOptions(cfg)
	is.Equal(opts.Depth, 1)
	is.Equal(opts.Fixed, []string{"CRANE"})

	opts.SetFixed(" salet, ,roate")
	is.Equal(opts.Fixed, []string{"salet", "roate"})
	opts.Limit = 5
	is.Equal(opts.String(), "depth 1 after salet+roate, first 5")

	_, err := ParseBackend("DENSE")
	is.NoErr(err)
	_, err = ParseBackend("nope")
	is.True(err != nil)
}

func TestAlphabetIsNormalized(t *testing.T) {
	is := is.New(t)
	cfg := testConfig()
	cfg.Set(config.ConfigAlphabet, "  "+strings.ToLower(config.DefaultAlphabet))
	e := newTestEngine(t, cfg)
	is.Equal(e.Dictionary().Len(), len(testhelpers.SmallAllWords()))
	is.Equal(e.NumSolutions(), len(testhelpers.SmallSolutions))

	upper := testConfig()
	upper.Set(config.ConfigAlphabet, config.DefaultAlphabet)
	is.Equal(CacheKey(cfg), CacheKey(upper))
}

func TestCacheKeyTracksDenseFraction(t *testing.T) {
	is := is.New(t)
	a := testConfig()
	b := testConfig()
	is.Equal(CacheKey(a), CacheKey(b))
	b.Set(config.ConfigDenseMemoryFraction, 1e-12)
	is.True(CacheKey(a) != CacheKey(b))
}
