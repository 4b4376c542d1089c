package wordcache

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/pbnjay/memory"

	"github.com/birdulon/wordlerank/alphabet"
	"github.com/birdulon/wordlerank/testhelpers"
)

func exerciseStore(t *testing.T, store Store) {
	is := is.New(t)
	enc := testhelpers.EnglishEncoder()
	words := testhelpers.MustEncode(enc, "CRANE", "SLATE")

	is.Equal(store.Len(), 0)
	is.True(!store.Contains(5))
	is.Equal(len(store.Get(5)), 0)

	for i := 1; i < 300; i++ {
		store.Insert(alphabet.LetterSet(i), words[:i%2+1])
	}
	is.Equal(store.Len(), 299)
	for i := 1; i < 300; i++ {
		is.True(store.Contains(alphabet.LetterSet(i)))
		is.Equal(len(store.Get(alphabet.LetterSet(i))), i%2+1)
	}
	// Overwriting a key keeps the count.
	store.Insert(7, words[:1])
	is.Equal(store.Len(), 299)
	is.Equal(store.Get(7), words[:1])
	is.True(!store.Contains(1000))
}

func TestMapStore(t *testing.T) {
	exerciseStore(t, NewMapStore())
}

func TestSortedStore(t *testing.T) {
	is := is.New(t)
	s := NewSortedStore()
	exerciseStore(t, s)
	keys := s.Keys()
	for i := 1; i < len(keys); i++ {
		is.True(keys[i-1] < keys[i])
	}
}

func TestHashStoreGrows(t *testing.T) {
	s := NewHashStore(1)
	exerciseStore(t, s)
	big := NewHashStore(1)
	for i := 0; i < 5000; i++ {
		big.Insert(alphabet.LetterSet(i)<<20, nil)
	}
	is.New(t).Equal(big.Len(), 5000)
}

func TestDenseStore(t *testing.T) {
	is := is.New(t)
	s, err := NewDenseStore(12, 1.0)
	is.NoErr(err)
	exerciseStore(t, s)
	// Keys past the index are never present.
	is.True(!s.Contains(1 << 13))
	is.Equal(len(s.Get(1<<13)), 0)
}

func TestDenseStoreTooLarge(t *testing.T) {
	is := is.New(t)
	_, err := NewDenseStore(40, 1.0)
	is.True(errors.Is(err, ErrDenseTooLarge))
	_, err = NewDenseStore(0, 1.0)
	is.True(errors.Is(err, ErrDenseTooLarge))

	if memory.TotalMemory() == 0 {
		t.Skip("total memory not reported on this platform")
	}
	_, err = NewDenseStore(30, 1e-9)
	is.True(errors.Is(err, ErrDenseTooLarge))
}
