package wordcache

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/birdulon/wordlerank/alphabet"
	"github.com/birdulon/wordlerank/testhelpers"
)

func smallLists() ([]alphabet.Word, []alphabet.Word) {
	enc := testhelpers.EnglishEncoder()
	all := testhelpers.MustEncode(enc, testhelpers.SmallAllWords()...)
	return all[:len(testhelpers.SmallSolutions)], all
}

func defaultOpts() Options {
	return Options{AlphabetSize: 26, MaxLetters: 5}
}

func TestEnumerateCanonical(t *testing.T) {
	is := is.New(t)
	for _, tc := range []struct {
		alphabetSize int
		maxLetters   int
	}{
		{4, 1}, {4, 3}, {6, 2}, {8, 5}, {10, 4},
	} {
		seen := map[alphabet.LetterSet]bool{}
		Enumerate(tc.alphabetSize, tc.maxLetters, func(key alphabet.LetterSet) bool {
			is.True(!seen[key]) // each set is produced once
			is.True(key.Count() <= tc.maxLetters)
			is.True(key.Highest() < tc.alphabetSize)
			seen[key] = true
			return true
		})
		expected := 0
		for k := 1; k <= tc.maxLetters; k++ {
			expected += combin.Binomial(tc.alphabetSize, k)
		}
		is.Equal(len(seen), expected)
	}
}

func TestEnumeratePrunes(t *testing.T) {
	is := is.New(t)
	visited := 0
	// Refuse any set containing letter 0: only the subsets of the other
	// letters, plus the single-letter set {0} itself, are visited.
	Enumerate(5, 5, func(key alphabet.LetterSet) bool {
		visited++
		return key&1 == 0
	})
	is.Equal(visited, 1+(1<<4-1))
}

func TestBuildBucketsMatchBruteForce(t *testing.T) {
	is := is.New(t)
	solutions, all := smallLists()
	store := NewSortedStore()
	c, err := Build(solutions, all, store, defaultOpts())
	is.NoErr(err)

	for _, key := range store.Keys() {
		if key == KeySolutions || key == KeyAllWords(26) {
			continue
		}
		is.Equal(c.Lookup(key), filter(solutions, key))
		is.True(len(c.Lookup(key)) > 0)
	}
}

func TestBuildCoversEveryRealizableKey(t *testing.T) {
	is := is.New(t)
	solutions, all := smallLists()
	c, err := Build(solutions, all, NewMapStore(), defaultOpts())
	is.NoErr(err)

	// Every subset of every solution's letters must be present, since any
	// of them can be a guess's required letters.
	for _, s := range solutions {
		full := s.Full()
		for sub := full; sub != 0; sub = (sub - 1) & full {
			is.True(c.Contains(sub))
			is.Equal(c.Lookup(sub), filter(solutions, sub))
		}
	}
}

func TestReservedKeys(t *testing.T) {
	is := is.New(t)
	solutions, all := smallLists()
	c, err := Build(solutions, all, NewMapStore(), defaultOpts())
	is.NoErr(err)
	is.Equal(c.Solutions(), solutions)
	is.Equal(c.AllWords(), all)
	is.Equal(len(c.Lookup(KeySolutions)), len(testhelpers.SmallSolutions))
}

func TestUnknownKeyIsEmpty(t *testing.T) {
	is := is.New(t)
	solutions, all := smallLists()
	c, err := Build(solutions, all, NewMapStore(), defaultOpts())
	is.NoErr(err)
	enc := testhelpers.EnglishEncoder()
	// No solution contains both Q and Z.
	q, _ := enc.Alphabet().Bit('Q')
	z, _ := enc.Alphabet().Bit('Z')
	is.True(!c.Contains(q | z))
	is.Equal(len(c.Lookup(q|z)), 0)
}

func TestBuildErrors(t *testing.T) {
	is := is.New(t)
	_, all := smallLists()
	_, err := Build(nil, all, NewMapStore(), defaultOpts())
	is.True(errors.Is(err, ErrEmptySolutionSpace))

	solutions, _ := smallLists()
	_, err = Build(solutions, all, NewMapStore(), Options{AlphabetSize: 26, MaxLetters: 0})
	is.True(err != nil)
	_, err = Build(solutions, all, NewMapStore(), Options{AlphabetSize: 26, MaxLetters: 26})
	is.True(err != nil)
}

func TestBackendsAgree(t *testing.T) {
	solutions, all := smallLists()
	dense, err := NewDenseStore(26, 1.0)
	if err != nil {
		t.Skipf("dense store unavailable: %v", err)
	}
	reference := NewSortedStore()
	_, err = Build(solutions, all, reference, defaultOpts())
	assert.Nil(t, err)

	stores := map[string]Store{
		"map":    NewMapStore(),
		"xxhash": NewHashStore(0),
		"dense":  dense,
	}
	for name, store := range stores {
		_, err := Build(solutions, all, store, defaultOpts())
		assert.Nil(t, err)
		assert.Equal(t, reference.Len(), store.Len(), name)
		for _, key := range reference.Keys() {
			assert.True(t, store.Contains(key), name)
			assert.Equal(t, reference.Get(key), store.Get(key), name)
		}
	}
}

func TestShorterWords(t *testing.T) {
	is := is.New(t)
	alph := testhelpers.EnglishAlphabet()
	enc, err := alphabet.NewEncoder(alph, 3)
	is.NoErr(err)
	words := testhelpers.MustEncode(enc, "CAT", "ACT", "DOG", "GOD", "TAT")
	c, err := Build(words, words, NewHashStore(16), Options{AlphabetSize: 26, MaxLetters: 3})
	is.NoErr(err)

	act, _ := enc.Encode("ACT")
	is.Equal(len(c.Lookup(act.Full())), 2) // CAT, ACT
	a, _ := alph.Bit('A')
	is.Equal(len(c.Lookup(a)), 3) // CAT, ACT, TAT
}
