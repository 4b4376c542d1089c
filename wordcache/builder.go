// Package wordcache builds the constraint cache: a lookup from every
// realizable "required letters" set to the solution words containing all
// of those letters.
package wordcache

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/birdulon/wordlerank/alphabet"
)

// KeySolutions is the reserved key for the solution pool. It is also the
// empty required set, whose bucket is, correctly, every solution.
const KeySolutions alphabet.LetterSet = 0

var ErrEmptySolutionSpace = errors.New("no possible solutions")

// KeyAllWords is the reserved key for the full guessable word list: every
// letter of the alphabet, which no key of at most MaxLetters letters can
// reach.
func KeyAllWords(alphabetSize int) alphabet.LetterSet {
	if alphabetSize >= 64 {
		return ^alphabet.LetterSet(0)
	}
	return alphabet.LetterSet(1)<<alphabetSize - 1
}

// Options bound the cache construction.
type Options struct {
	AlphabetSize int
	// MaxLetters is the largest number of letters in a key; normally the
	// word length, since no word has more distinct letters than that.
	MaxLetters int
}

func (o Options) validate() error {
	if o.AlphabetSize < 1 || o.AlphabetSize > alphabet.MaxAlphabetSize {
		return fmt.Errorf("alphabet size %d out of range", o.AlphabetSize)
	}
	if o.MaxLetters < 1 || o.MaxLetters >= o.AlphabetSize {
		return fmt.Errorf("max key letters %d must be between 1 and %d",
			o.MaxLetters, o.AlphabetSize-1)
	}
	return nil
}

// Cache is the read-only constraint cache.
type Cache struct {
	store  Store
	allKey alphabet.LetterSet
	opts   Options
}

// Enumerate calls visit for every letter set of 1 to maxLetters letters
// drawn from the first alphabetSize letters, adding letters in increasing
// alphabet order so that each set is produced exactly once. A set is
// always visited before its extensions; if visit returns false, none of
// that set's extensions are visited.
func Enumerate(alphabetSize, maxLetters int, visit func(key alphabet.LetterSet) bool) {
	enumerate(0, 0, alphabetSize, maxLetters, visit)
}

func enumerate(key alphabet.LetterSet, from, alphabetSize, remaining int,
	visit func(key alphabet.LetterSet) bool) {

	for c := from; c < alphabetSize; c++ {
		key2 := key | alphabet.LetterSet(1)<<c
		if visit(key2) && remaining > 1 {
			enumerate(key2, c+1, alphabetSize, remaining-1, visit)
		}
	}
}

func filter(words []alphabet.Word, letters alphabet.LetterSet) []alphabet.Word {
	var out []alphabet.Word
	for _, w := range words {
		if w.Full().Has(letters) {
			out = append(out, w)
		}
	}
	return out
}

// Build fills store with a word list for every letter set that at least
// one solution contains, plus the two reserved entries.
func Build(solutions, all []alphabet.Word, store Store, opts Options) (*Cache, error) {
	if len(solutions) == 0 {
		return nil, ErrEmptySolutionSpace
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	tstart := time.Now()
	total := 0

	Enumerate(opts.AlphabetSize, opts.MaxLetters, func(key alphabet.LetterSet) bool {
		// Letters are added in increasing order, so the key's parent is
		// the key without its highest letter.
		last := alphabet.LetterSet(1) << key.Highest()
		parent := solutions
		if key != last {
			parent = store.Get(key &^ last)
		}
		sub := filter(parent, last)
		if len(sub) == 0 {
			return false
		}
		store.Insert(key, sub)
		total += len(sub)
		return true
	})
	realizable := store.Len()

	allKey := KeyAllWords(opts.AlphabetSize)
	store.Insert(KeySolutions, solutions)
	store.Insert(allKey, all)

	log.Info().Int("keys", realizable).
		Int("bucket-words", total).
		Int("solutions", len(solutions)).
		Int("all-words", len(all)).
		Dur("elapsed", time.Since(tstart)).
		Msg("cache-built")

	return &Cache{
		store:  store,
		allKey: allKey,
		opts:   opts,
	}, nil
}

// Lookup returns the solutions containing every letter in key. An unknown
// key means no solution can match, and returns nil.
func (c *Cache) Lookup(key alphabet.LetterSet) []alphabet.Word {
	return c.store.Get(key)
}

func (c *Cache) Contains(key alphabet.LetterSet) bool {
	return c.store.Contains(key)
}

// Solutions returns the solution pool.
func (c *Cache) Solutions() []alphabet.Word {
	return c.store.Get(KeySolutions)
}

// AllWords returns the full guessable word list.
func (c *Cache) AllWords() []alphabet.Word {
	return c.store.Get(c.allKey)
}

// Keys returns the number of entries, including the two reserved ones.
func (c *Cache) Keys() int {
	return c.store.Len()
}

func (c *Cache) Options() Options {
	return c.opts
}
