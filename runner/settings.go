package runner

import (
	"fmt"
	"strings"

	"github.com/birdulon/wordlerank/config"
)

// RankOptions selects which probes a ranking evaluates.
type RankOptions struct {
	// Depth is the number of free guesses per probe.
	Depth int
	// Fixed guesses are prefixed to every probe.
	Fixed []string
	// Limit keeps only the first n probes.
	Limit int
	// Sample picks n probes at random.
	Sample int
}

// DefaultRankOptions reads the ranking settings from cfg.
func DefaultRankOptions(cfg *config.Config) RankOptions {
	return RankOptions{
		Depth:  cfg.GetInt(config.ConfigDepth),
		Fixed:  cfg.GetStringSlice(config.ConfigFixedGuesses),
		Limit:  cfg.GetInt(config.ConfigGuessLimit),
		Sample: cfg.GetInt(config.ConfigSample),
	}
}

// SetFixed parses a comma-separated list of guesses.
func (opts *RankOptions) SetFixed(list string) {
	opts.Fixed = nil
	for _, f := range strings.Split(list, ",") {
		if f = strings.TrimSpace(f); f != "" {
			opts.Fixed = append(opts.Fixed, f)
		}
	}
}

func (opts RankOptions) String() string {
	s := fmt.Sprintf("depth %d", opts.Depth)
	if len(opts.Fixed) > 0 {
		s += " after " + strings.Join(opts.Fixed, "+")
	}
	if opts.Limit > 0 {
		s += fmt.Sprintf(", first %d", opts.Limit)
	}
	if opts.Sample > 0 {
		s += fmt.Sprintf(", sample of %d", opts.Sample)
	}
	return s
}
