package shell

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/birdulon/wordlerank/cache"
	"github.com/birdulon/wordlerank/config"
	"github.com/birdulon/wordlerank/results"
	"github.com/birdulon/wordlerank/runner"
	"github.com/birdulon/wordlerank/worstcase"
)

const defaultTop = 10

type Response struct {
	message string
}

type CmdOptions map[string]string

func (c CmdOptions) String(key string) string {
	return c[key]
}

func (c CmdOptions) Int(key string) (int, error) {
	v, ok := c[key]
	if !ok {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v)
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v, ok := c[key]
	if !ok {
		return defaultI, nil
	}
	return strconv.Atoi(v)
}

func (c CmdOptions) Bool(key string) bool {
	return strings.ToLower(c[key]) == "true"
}

func msg(message string) *Response {
	return &Response{message: message}
}

// settable lists the config keys the set command may change.
var settable = []string{
	config.ConfigDictionary, config.ConfigSolutionsFile, config.ConfigNumSolutions,
	config.ConfigAlphabet, config.ConfigWordLength, config.ConfigMaxKeyLetters,
	config.ConfigCacheBackend, config.ConfigDictionaryEncoding, config.ConfigDedupe,
	config.ConfigThreads, config.ConfigDepth, config.ConfigFixedGuesses,
	config.ConfigGuessLimit, config.ConfigSample, config.ConfigProgress,
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		var sb strings.Builder
		keys := slices.Sorted(slices.Values(settable))
		for _, k := range keys {
			fmt.Fprintf(&sb, "%-22s %v\n", k, sc.cfg.Get(k))
		}
		return msg(strings.TrimRight(sb.String(), "\n")), nil
	}
	key := cmd.args[0]
	if !slices.Contains(settable, key) {
		return nil, fmt.Errorf("%q cannot be set; options: %s", key, strings.Join(settable, ", "))
	}
	if len(cmd.args) == 1 {
		return msg(fmt.Sprintf("%s: %v", key, sc.cfg.Get(key))), nil
	}
	if key == config.ConfigFixedGuesses {
		var opts runner.RankOptions
		opts.SetFixed(strings.Join(cmd.args[1:], ","))
		sc.cfg.Set(key, opts.Fixed)
	} else {
		sc.cfg.Set(key, cmd.args[1])
	}
	if key == config.ConfigThreads && sc.engine != nil {
		sc.engine.SetThreads(sc.cfg.GetInt(key))
	}
	return msg(fmt.Sprintf("%s set to %v", key, sc.cfg.Get(key))), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 {
		sc.cfg.Set(config.ConfigDictionary, cmd.args[0])
	}
	if s, ok := cmd.options["solutions"]; ok {
		sc.cfg.Set(config.ConfigSolutionsFile, s)
	}
	if _, ok := cmd.options["num"]; ok {
		n, err := cmd.options.Int("num")
		if err != nil {
			return nil, err
		}
		sc.cfg.Set(config.ConfigNumSolutions, n)
	}
	if b, ok := cmd.options["backend"]; ok {
		if _, err := runner.ParseBackend(b); err != nil {
			return nil, err
		}
		sc.cfg.Set(config.ConfigCacheBackend, b)
	}

	obj, err := cache.Load(runner.CacheKey(sc.cfg), func(string) (any, error) {
		return runner.NewEngine(sc.ctx, sc.cfg)
	})
	if err != nil {
		return nil, err
	}
	sc.engine = obj.(*runner.Engine)
	sc.engine.SetThreads(sc.cfg.GetInt(config.ConfigThreads))
	return sc.info(cmd)
}

func (sc *ShellController) info(cmd *shellcmd) (*Response, error) {
	if sc.engine == nil {
		return nil, errNoEngine
	}
	i := sc.engine.Info()
	return msg(fmt.Sprintf(
		"words: %d\nsolutions: %d\ncache keys: %d\nskipped lines: %d\nduplicates: %d\nbackend: %s\nthreads: %d",
		i.Words, i.Solutions, i.CacheKeys, i.Skipped, i.Duplicates, i.Backend, i.Threads)), nil
}

func (sc *ShellController) rank(cmd *shellcmd) (*Response, error) {
	if sc.engine == nil {
		return nil, errNoEngine
	}
	opts := runner.DefaultRankOptions(sc.cfg)
	var err error
	if f, ok := cmd.options["fixed"]; ok {
		opts.SetFixed(f)
	}
	if opts.Depth, err = cmd.options.IntDefault("depth", opts.Depth); err != nil {
		return nil, err
	}
	if opts.Limit, err = cmd.options.IntDefault("limit", opts.Limit); err != nil {
		return nil, err
	}
	if opts.Sample, err = cmd.options.IntDefault("sample", opts.Sample); err != nil {
		return nil, err
	}
	top, err := cmd.options.IntDefault("top", defaultTop)
	if err != nil {
		return nil, err
	}
	if _, ok := cmd.options["threads"]; ok {
		threads, err := cmd.options.Int("threads")
		if err != nil {
			return nil, err
		}
		sc.engine.SetThreads(threads)
	}

	r, err := sc.engine.Rank(sc.ctx, opts)
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("Ranked %d probes (%s) in %v\n%s",
		len(r.Results), opts, r.Elapsed, rowTable(sc.engine.Rows(r, top)))), nil
}

func rowTable(rows []results.Row) string {
	var sb strings.Builder
	sb.WriteString("  #  Guess                    Worst  Target\n")
	for _, r := range rows {
		fmt.Fprintf(&sb, "%3d: %-24s %5d  %s\n", r.Rank, r.Guess, r.Worst, r.WorstTarget)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (sc *ShellController) lastRanking() (*runner.Ranking, error) {
	if sc.engine == nil {
		return nil, errNoEngine
	}
	r := sc.engine.LastRanking()
	if r == nil {
		return nil, errors.New("no ranking yet; run `rank` first")
	}
	return r, nil
}

func (sc *ShellController) top(cmd *shellcmd) (*Response, error) {
	r, err := sc.lastRanking()
	if err != nil {
		return nil, err
	}
	top := defaultTop
	if len(cmd.args) > 0 {
		if top, err = strconv.Atoi(cmd.args[0]); err != nil {
			return nil, err
		}
	}
	return msg(rowTable(sc.engine.Rows(r, top))), nil
}

func (sc *ShellController) hist(cmd *shellcmd) (*Response, error) {
	r, err := sc.lastRanking()
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	if err := worstcase.Summarize(r.Results).Fprint(&sb); err != nil {
		return nil, err
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) eval(cmd *shellcmd) (*Response, error) {
	if sc.engine == nil {
		return nil, errNoEngine
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: eval WORD [WORD...]")
	}
	ev, err := sc.engine.Evaluate(cmd.args...)
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("%s - %d (%s)\nprobe: %s", ev.Guess, ev.Worst, ev.WorstTarget, ev.Aggregate)), nil
}

func (sc *ShellController) sim(cmd *shellcmd) (*Response, error) {
	if sc.engine == nil {
		return nil, errNoEngine
	}
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: sim GUESS[+GUESS...] TARGET")
	}
	ex, err := sc.engine.Explain(cmd.args[0], cmd.args[1])
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	if ex.Pattern != "" {
		fmt.Fprintf(&sb, "pattern:   %s\n", ex.Pattern)
	}
	fmt.Fprintf(&sb, "required:  %s\n", ex.Required)
	for i, b := range ex.Banned {
		fmt.Fprintf(&sb, "banned %d:  %s\n", i+1, b)
	}
	fmt.Fprintf(&sb, "remaining: %d", ex.Remaining)
	if ex.Remaining > 0 && ex.Remaining <= 50 {
		fmt.Fprintf(&sb, "\n%s", strings.Join(ex.Candidates, " "))
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) save(cmd *shellcmd) (*Response, error) {
	r, err := sc.lastRanking()
	if err != nil {
		return nil, err
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: save PATH [-format text|yaml|sqlite] [-top n]")
	}
	format := cmd.options.String("format")
	if format == "" {
		format = sc.cfg.GetString(config.ConfigOutputFormat)
	}
	top, err := cmd.options.IntDefault("top", 0)
	if err != nil {
		return nil, err
	}
	if err := sc.engine.WriteResults(sc.ctx, r, format, cmd.args[0], top); err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("Saved %d rows to %s", len(sc.engine.Rows(r, top)), cmd.args[0])), nil
}
