package results

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"gopkg.in/yaml.v3"

	"github.com/birdulon/wordlerank/worstcase"
)

var sampleRows = []Row{
	{Rank: 1, Guess: "SALET", Worst: 4, WorstTarget: "CRANE"},
	{Rank: 2, Guess: "CRANE", Worst: 7, WorstTarget: "BRAIN"},
}

func TestRows(t *testing.T) {
	is := is.New(t)
	ranked := []worstcase.Result{
		{Index: 3, Worst: 2, WorstTarget: 1},
		{Index: 0, Worst: 5, WorstTarget: -1},
	}
	names := []string{"AAAAA", "BBBBB", "CCCCC", "DDDDD"}
	rows := Rows(ranked, func(r worstcase.Result) string { return names[r.Index] }, []string{"X", "Y"})
	is.Equal(rows, []Row{
		{Rank: 1, Guess: "DDDDD", Worst: 2, WorstTarget: "Y"},
		{Rank: 2, Guess: "AAAAA", Worst: 5, WorstTarget: ""},
	})
}

func TestTextWriter(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	is.NoErr(NewTextWriter(&buf).Write(context.Background(), sampleRows))
	is.Equal(buf.String(), "SALET - 4 (CRANE)\nCRANE - 7 (BRAIN)\n")
}

func TestYAMLWriter(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	is.NoErr(NewYAMLWriter(&buf).Write(context.Background(), sampleRows))
	is.True(strings.Contains(buf.String(), "worst_target: CRANE"))

	var back []Row
	is.NoErr(yaml.Unmarshal(buf.Bytes(), &back))
	is.Equal(back, sampleRows)
}

func TestSQLiteWriter(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out", "rankings.db")

	w, err := OpenSQLiteWriter(path, "run-1")
	is.NoErr(err)
	is.NoErr(w.Write(ctx, sampleRows))
	is.NoErr(w.Close())

	// Reopening keeps earlier runs.
	w2, err := OpenSQLiteWriter(path, "run-2")
	is.NoErr(err)
	defer w2.Close()
	is.NoErr(w2.Write(ctx, sampleRows[:1]))

	got, err := w2.ReadRun(ctx, "run-1")
	is.NoErr(err)
	is.Equal(got, sampleRows)
	got, err = w2.ReadRun(ctx, "run-2")
	is.NoErr(err)
	is.Equal(len(got), 1)
}

func TestNewWriter(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "out.txt")
	w, err := NewWriter(FormatText, path)
	is.NoErr(err)
	is.NoErr(w.Write(context.Background(), sampleRows))
	is.NoErr(w.Close())
	data, err := os.ReadFile(path)
	is.NoErr(err)
	is.Equal(string(data), "SALET - 4 (CRANE)\nCRANE - 7 (BRAIN)\n")

	w, err = NewWriter("YAML", filepath.Join(dir, "out.yaml"))
	is.NoErr(err)
	_, ok := w.(*YAMLWriter)
	is.True(ok)
	is.NoErr(w.Close())

	w, err = NewWriter(FormatSQLite, filepath.Join(dir, "out.db"))
	is.NoErr(err)
	_, ok = w.(*SQLiteWriter)
	is.True(ok)
	is.NoErr(w.Close())

	_, err = NewWriter(FormatSQLite, "")
	is.True(err != nil)
	_, err = NewWriter("csv", "")
	is.True(err != nil)
}
