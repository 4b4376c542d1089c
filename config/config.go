package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDataPath            = "data-path"
	ConfigDictionary          = "dictionary"
	ConfigSolutionsFile       = "solutions-file"
	ConfigNumSolutions        = "num-solutions"
	ConfigAlphabet            = "alphabet"
	ConfigWordLength          = "word-length"
	ConfigMaxKeyLetters       = "max-key-letters"
	ConfigCacheBackend        = "cache-backend"
	ConfigDenseMemoryFraction = "dense-memory-fraction"
	ConfigDictionaryEncoding  = "dictionary-encoding"
	ConfigDedupe              = "dedupe"
	ConfigThreads             = "threads"
	ConfigDepth               = "depth"
	ConfigFixedGuesses        = "fixed-guesses"
	ConfigGuessLimit          = "guess-limit"
	ConfigSample              = "sample"
	ConfigOutput              = "output"
	ConfigOutputFormat        = "output-format"
	ConfigProgress            = "progress"
	ConfigBenchIterations     = "bench-iterations"
	ConfigDebug               = "debug"
	ConfigCPUProfile          = "cpu-profile"
)

const (
	DefaultAlphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	DefaultNumSolutions = 2315
)

// Config holds every setting. Values come, in increasing precedence, from
// defaults, an optional config.yaml, WORDLERANK_* environment variables
// and command-line flags.
type Config struct {
	viper.Viper
	args []string
}

func flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("wordlerank", pflag.ContinueOnError)
	fs.String(ConfigDataPath, "./data", "directory holding word lists")
	fs.String(ConfigDictionary, "wordle.txt", "word list, solutions first; relative to the data path")
	fs.String(ConfigSolutionsFile, "", "separate solution list; if set, its words are placed first")
	fs.Int(ConfigNumSolutions, DefaultNumSolutions, "number of leading dictionary words that are possible solutions")
	fs.String(ConfigAlphabet, DefaultAlphabet, "the letters of the alphabet, in order")
	fs.Int(ConfigWordLength, 5, "word length")
	fs.Int(ConfigMaxKeyLetters, 0, "most letters in a cache key; 0 means the word length")
	fs.String(ConfigCacheBackend, "dense", "cache store: dense, map, xxhash or sorted")
	fs.Float64(ConfigDenseMemoryFraction, 0.25, "largest share of system memory the dense store's index may use")
	fs.String(ConfigDictionaryEncoding, "utf8", "dictionary encoding: utf8 or latin1")
	fs.Bool(ConfigDedupe, false, "drop repeated dictionary words")
	fs.Int(ConfigThreads, runtime.NumCPU(), "number of ranking goroutines")
	fs.Int(ConfigDepth, 1, "number of free guesses per probe")
	fs.StringSlice(ConfigFixedGuesses, nil, "guesses prefixed to every probe")
	fs.Int(ConfigGuessLimit, 0, "rank only the first n probes; 0 means all")
	fs.Int(ConfigSample, 0, "rank n randomly chosen probes; 0 means all")
	fs.String(ConfigOutput, "-", "output path; - for stdout")
	fs.String(ConfigOutputFormat, "text", "output format: text, yaml or sqlite")
	fs.Bool(ConfigProgress, false, "draw a progress bar while ranking")
	fs.Int(ConfigBenchIterations, 1, "times to repeat the ranking")
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this path")
	return fs
}

// Load parses args and reads the environment and config file.
func (c *Config) Load(args []string) error {
	c.Viper = *viper.New()
	fs := flagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.SetEnvPrefix("wordlerank")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	c.SetConfigName("config")
	c.SetConfigType("yaml")
	c.AddConfigPath(".")
	if err := c.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
	} else {
		log.Info().Str("file", c.ConfigFileUsed()).Msg("config-file-read")
	}
	return nil
}

// Args returns the positional arguments left after flag parsing.
func (c *Config) Args() []string {
	return c.args
}

// DefaultConfig returns a config holding only the defaults.
func DefaultConfig() *Config {
	c := &Config{Viper: *viper.New()}
	// Unparsed flags report their defaults.
	c.BindPFlags(flagSet())
	return c
}

// AdjustRelativePaths resolves a relative data path against basePath,
// usually the executable's directory, when it does not exist relative to
// the working directory.
func (c *Config) AdjustRelativePaths(basePath string) {
	dataPath := c.GetString(ConfigDataPath)
	if filepath.IsAbs(dataPath) {
		return
	}
	if _, err := os.Stat(dataPath); err == nil {
		return
	}
	c.Set(ConfigDataPath, filepath.Join(basePath, dataPath))
}

// DataFile resolves a file name against the data path. Absolute names and
// names that exist as given are returned unchanged.
func (c *Config) DataFile(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	if _, err := os.Stat(name); err == nil {
		return name
	}
	return filepath.Join(c.GetString(ConfigDataPath), name)
}

// SanitizedSettings returns all settings for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
