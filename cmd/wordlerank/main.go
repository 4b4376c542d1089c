// Command wordlerank ranks opening guesses by the number of solutions that
// can remain after them in the worst case.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/birdulon/wordlerank/config"
	"github.com/birdulon/wordlerank/runner"
	"github.com/birdulon/wordlerank/stats"
	"github.com/birdulon/wordlerank/worstcase"
)

func main() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.AdjustRelativePaths(exPath)

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	level := zerolog.InfoLevel
	if cfg.GetBool(config.ConfigDebug) {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger

	if err := run(logger.WithContext(context.Background()), cfg); err != nil {
		log.Fatal().Err(err).Msg("wordlerank-failed")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if path := cfg.GetString(config.ConfigCPUProfile); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	engine, err := runner.NewEngine(ctx, cfg)
	if err != nil {
		return err
	}
	opts := runner.DefaultRankOptions(cfg)

	iterations := max(1, cfg.GetInt(config.ConfigBenchIterations))
	times, err := engine.Bench(ctx, opts, iterations)
	if err != nil {
		return err
	}
	if iterations > 1 {
		var st stats.Statistic
		for _, t := range times {
			st.Push(t.Seconds())
		}
		log.Info().Int("iterations", iterations).
			Float64("mean-sec", st.Mean()).
			Float64("stdev-sec", st.Stdev()).
			Float64("min-sec", st.Min()).
			Msg("bench-finished")
	}

	r := engine.LastRanking()
	if err := engine.WriteResults(ctx, r,
		cfg.GetString(config.ConfigOutputFormat), cfg.GetString(config.ConfigOutput), 0); err != nil {
		return err
	}
	return worstcase.Summarize(r.Results).Fprint(os.Stderr)
}
