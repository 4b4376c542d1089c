package main

import (
	_ "embed"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/birdulon/wordlerank/config"
	"github.com/birdulon/wordlerank/shell"
)

var (
	GitVersion string
)

//go:embed wordlerank.txt
var banner string

func main() {
	// Data files are looked up next to the executable when a relative
	// data path does not exist in the working directory.
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)
	fmt.Println(banner)
	fmt.Println(GitVersion)

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.AdjustRelativePaths(exPath)

	logger := newLogger(cfg.GetBool(config.ConfigDebug))
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	log.Debug().Interface("config", cfg.SanitizedSettings()).Msg("loaded-config")

	if path := cfg.GetString(config.ConfigCPUProfile); path != "" {
		stop, err := startCPUProfile(path)
		if err != nil {
			log.Fatal().Err(err).Msg("cpu-profile")
		}
		defer stop()
	}

	done := make(chan struct{})
	sig := make(chan os.Signal, 1)
	go func() {
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info().Msg("got quit signal...")
		close(done)
	}()

	sc := shell.NewShellController(cfg, exPath)
	// Positional arguments form a single command, e.g. "script rank.lua".
	if args := cfg.Args(); len(args) > 0 {
		if sc.Execute(sig, shellquote.Join(args...)) {
			sig <- syscall.SIGINT
		}
	} else {
		go sc.Loop(sig)
	}

	<-done
	sc.Cleanup()
	log.Info().Msg("shell exiting")
}

func newLogger(debug bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	output.FormatLevel = func(i any) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func startCPUProfile(path string) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("could not start CPU profile: %w", err)
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}
