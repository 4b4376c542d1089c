package alphabet

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func englishEncoder(t *testing.T, length int) *Encoder {
	alph, err := NewAlphabet(english)
	if err != nil {
		t.Fatal(err)
	}
	enc, err := NewEncoder(alph, length)
	if err != nil {
		t.Fatal(err)
	}
	return enc
}

func TestEncodeDecode(t *testing.T) {
	enc := englishEncoder(t, 5)
	for _, s := range []string{"CRANE", "SLATE", "EERIE", "ZZZZZ", "QAJAQ"} {
		w, err := enc.Encode(s)
		assert.Nil(t, err)
		assert.Equal(t, s, enc.Decode(w))
		assert.Equal(t, 5, w.Len())
	}
}

func TestFullIsUnionOfPositions(t *testing.T) {
	is := is.New(t)
	enc := englishEncoder(t, 5)
	for _, s := range []string{"CRANE", "EERIE", "MAMMA", "ABCDE"} {
		w, err := enc.Encode(s)
		is.NoErr(err)
		var union LetterSet
		for _, p := range w.Positions() {
			is.Equal(p.Count(), 1)
			union |= p
		}
		is.Equal(union, w.Full())
	}
	w, _ := enc.Encode("EERIE")
	is.Equal(enc.Alphabet().Letters(w.Full()), "EIR")
}

func TestEncodeErrors(t *testing.T) {
	is := is.New(t)
	enc := englishEncoder(t, 5)

	_, err := enc.Encode("CRANES")
	is.True(errors.Is(err, ErrInvalidLength))
	_, err = enc.Encode("CRAN")
	is.True(errors.Is(err, ErrInvalidLength))
	_, err = enc.Encode("")
	is.True(errors.Is(err, ErrInvalidLength))
	_, err = enc.Encode("crane")
	is.True(errors.Is(err, ErrInvalidSymbol))
	_, err = enc.Encode("CR4NE")
	is.True(errors.Is(err, ErrInvalidSymbol))
}

func TestOtherWordLengths(t *testing.T) {
	is := is.New(t)
	for _, tc := range []struct {
		length int
		word   string
	}{
		{3, "CAT"},
		{6, "PLANET"},
		{7, "EXAMPLE"},
	} {
		enc := englishEncoder(t, tc.length)
		w, err := enc.Encode(tc.word)
		is.NoErr(err)
		is.Equal(enc.Decode(w), tc.word)
	}
}

func TestNewEncoderErrors(t *testing.T) {
	is := is.New(t)
	alph, err := NewAlphabet("ABCDE")
	is.NoErr(err)
	_, err = NewEncoder(alph, 5)
	is.True(err != nil)
	_, err = NewEncoder(alph, 0)
	is.True(err != nil)
	_, err = NewEncoder(alph, 4)
	is.NoErr(err)
}

func TestOrAndDecodeAggregate(t *testing.T) {
	is := is.New(t)
	enc := englishEncoder(t, 5)
	crane, _ := enc.Encode("CRANE")
	slate, _ := enc.Encode("SLATE")
	agg := crane.Or(slate)
	is.Equal(enc.Decode(agg), "[CS][LR]A[NT]E")
	is.Equal(agg.Full(), crane.Full()|slate.Full())
	is.True(!agg.Equal(crane))
	is.True(crane.Equal(crane.Or(crane)))

	empty := NewWord(make([]LetterSet, 3))
	is.Equal(enc.Decode(empty), "...")
}

func TestNewWord(t *testing.T) {
	is := is.New(t)
	enc := englishEncoder(t, 5)
	crane, _ := enc.Encode("CRANE")
	is.True(NewWord(crane.Positions()).Equal(crane))
}
