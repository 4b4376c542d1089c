// Package dictionary loads word lists into encoded words.
package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/birdulon/wordlerank/alphabet"
	"github.com/birdulon/wordlerank/wordcache"
)

const (
	EncodingUTF8   = "utf8"
	EncodingLatin1 = "latin1"
)

type Options struct {
	// Encoding of the input; empty means utf8.
	Encoding string
	// Dedupe drops repeated words, keeping the first occurrence.
	Dedupe bool
}

// Dictionary is an ordered list of words. Words[i] is the encoding of
// Text[i].
type Dictionary struct {
	Words []alphabet.Word
	Text  []string
	// Skipped counts lines rejected by the encoder, by cause.
	Skipped    map[error]int
	Duplicates int
}

// Normalize puts a word in the form the encoder expects: trimmed, NFC
// composed and upper case.
func Normalize(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	return cases.Upper(language.Und).String(s)
}

func decoder(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", EncodingUTF8, "utf-8":
		return r, nil
	case EncodingLatin1, "iso-8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	}
	return nil, fmt.Errorf("unsupported dictionary encoding %q", encoding)
}

// Load reads one word per line from r. Only the first field of a line is
// used; blank lines and lines starting with # are ignored. Words the
// encoder rejects are skipped and counted.
func Load(r io.Reader, enc *alphabet.Encoder, opts Options) (*Dictionary, error) {
	r, err := decoder(r, opts.Encoding)
	if err != nil {
		return nil, err
	}
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, Normalize(strings.Fields(line)[0]))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dictionary: %w", err)
	}

	d := &Dictionary{Skipped: map[error]int{}}
	if opts.Dedupe {
		uniq := lo.Uniq(lines)
		d.Duplicates = len(lines) - len(uniq)
		lines = uniq
	}
	for _, line := range lines {
		w, err := enc.Encode(line)
		if err != nil {
			d.skip(err)
			continue
		}
		d.Words = append(d.Words, w)
		d.Text = append(d.Text, line)
	}
	return d, nil
}

func (d *Dictionary) skip(err error) {
	switch {
	case errors.Is(err, alphabet.ErrInvalidLength):
		d.Skipped[alphabet.ErrInvalidLength]++
	case errors.Is(err, alphabet.ErrInvalidSymbol):
		d.Skipped[alphabet.ErrInvalidSymbol]++
	default:
		d.Skipped[err]++
	}
}

func LoadFile(path string, enc *alphabet.Encoder, opts Options) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer f.Close()
	d, err := Load(f, enc, opts)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", path).
		Int("words", len(d.Words)).
		Int("invalid-length", d.Skipped[alphabet.ErrInvalidLength]).
		Int("invalid-symbol", d.Skipped[alphabet.ErrInvalidSymbol]).
		Int("duplicates", d.Duplicates).
		Msg("dictionary-loaded")
	return d, nil
}

// Len returns the number of valid words.
func (d *Dictionary) Len() int {
	return len(d.Words)
}

// SkippedTotal returns the number of lines rejected by the encoder.
func (d *Dictionary) SkippedTotal() int {
	return lo.Sum(lo.Values(d.Skipped))
}

// Split returns the first numSolutions words, which form the solution
// pool. numSolutions is clamped to the dictionary size.
func (d *Dictionary) Split(numSolutions int) ([]alphabet.Word, error) {
	if numSolutions <= 0 || len(d.Words) == 0 {
		return nil, wordcache.ErrEmptySolutionSpace
	}
	if numSolutions > len(d.Words) {
		log.Warn().Int("requested", numSolutions).Int("available", len(d.Words)).
			Msg("solution-count-clamped")
		numSolutions = len(d.Words)
	}
	return d.Words[:numSolutions], nil
}

// WithSolutions returns a dictionary listing the given solutions first,
// followed by the words of d that are not among them.
func (d *Dictionary) WithSolutions(solutions *Dictionary) *Dictionary {
	isSolution := lo.SliceToMap(solutions.Text, func(s string) (string, bool) {
		return s, true
	})
	out := &Dictionary{
		Words:      slices.Clone(solutions.Words),
		Text:       slices.Clone(solutions.Text),
		Skipped:    map[error]int{},
		Duplicates: d.Duplicates + solutions.Duplicates,
	}
	for k, v := range d.Skipped {
		out.Skipped[k] += v
	}
	for k, v := range solutions.Skipped {
		out.Skipped[k] += v
	}
	for i, s := range d.Text {
		if isSolution[s] {
			continue
		}
		out.Words = append(out.Words, d.Words[i])
		out.Text = append(out.Text, s)
	}
	return out
}

// Index returns the position of word, or -1 if it is not listed.
func (d *Dictionary) Index(word string) int {
	return slices.Index(d.Text, Normalize(word))
}
