// Package results formats ranked guesses for output.
package results

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/birdulon/wordlerank/worstcase"
)

const (
	FormatText   = "text"
	FormatYAML   = "yaml"
	FormatSQLite = "sqlite"
)

// Row is one ranked guess, ready for output.
type Row struct {
	Rank        int    `yaml:"rank"`
	Guess       string `yaml:"guess"`
	Worst       int    `yaml:"worst"`
	WorstTarget string `yaml:"worst_target"`
}

// Rows labels ranked results. guess names each result's guess; targets
// is the solution text, indexed by Result.WorstTarget.
func Rows(ranked []worstcase.Result, guess func(worstcase.Result) string, targets []string) []Row {
	rows := make([]Row, len(ranked))
	for i, r := range ranked {
		target := ""
		if r.WorstTarget >= 0 && r.WorstTarget < len(targets) {
			target = targets[r.WorstTarget]
		}
		rows[i] = Row{
			Rank:        i + 1,
			Guess:       guess(r),
			Worst:       r.Worst,
			WorstTarget: target,
		}
	}
	return rows
}

type Writer interface {
	Write(ctx context.Context, rows []Row) error
	Close() error
}

// TextWriter writes one "GUESS - worst (TARGET)" line per row.
type TextWriter struct {
	w      io.Writer
	closer io.Closer
}

func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

func (t *TextWriter) Write(ctx context.Context, rows []Row) error {
	var sb strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&sb, "%s - %d (%s)\n", r.Guess, r.Worst, r.WorstTarget)
	}
	_, err := io.WriteString(t.w, sb.String())
	return err
}

func (t *TextWriter) Close() error {
	if t.closer != nil {
		return t.closer.Close()
	}
	return nil
}

// YAMLWriter writes the rows as a YAML list.
type YAMLWriter struct {
	w      io.Writer
	closer io.Closer
}

func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{w: w}
}

func (y *YAMLWriter) Write(ctx context.Context, rows []Row) error {
	enc := yaml.NewEncoder(y.w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return err
	}
	return enc.Close()
}

func (y *YAMLWriter) Close() error {
	if y.closer != nil {
		return y.closer.Close()
	}
	return nil
}

// NewWriter returns a writer for format. Text and YAML go to stdout when
// path is empty or "-"; SQLite needs a database path.
func NewWriter(format, path string) (Writer, error) {
	switch strings.ToLower(format) {
	case "", FormatText, FormatYAML:
	case FormatSQLite:
		if path == "" || path == "-" {
			return nil, fmt.Errorf("sqlite output needs a database path")
		}
		return OpenSQLiteWriter(path, "")
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}

	var w io.Writer = os.Stdout
	var closer io.Closer
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("create output: %w", err)
		}
		w, closer = f, f
	}
	if strings.ToLower(format) == FormatYAML {
		return &YAMLWriter{w: w, closer: closer}, nil
	}
	return &TextWriter{w: w, closer: closer}, nil
}
