package alphabet

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Word is a positional bitmask representation of a word. Each position
// holds the set of letters at that position (exactly one letter for an
// encoded word; possibly more for an aggregate of several guesses), and
// full is the union of all positions.
type Word struct {
	pos  [MaxWordLength]LetterSet
	full LetterSet
	n    uint8
}

// NewWord creates a word from its position masks.
func NewWord(positions []LetterSet) Word {
	var w Word
	w.n = uint8(min(len(positions), MaxWordLength))
	for i := 0; i < int(w.n); i++ {
		w.pos[i] = positions[i]
		w.full |= positions[i]
	}
	return w
}

// Len returns the number of positions in the word.
func (w Word) Len() int {
	return int(w.n)
}

// At returns the letters at position i.
func (w Word) At(i int) LetterSet {
	return w.pos[i]
}

// Full returns the set of distinct letters in the word.
func (w Word) Full() LetterSet {
	return w.full
}

// Positions returns a copy of the position masks.
func (w Word) Positions() []LetterSet {
	ps := make([]LetterSet, w.n)
	copy(ps, w.pos[:w.n])
	return ps
}

// Or merges the letters of two words position by position.
func (w Word) Or(other Word) Word {
	n := max(w.n, other.n)
	for i := range w.pos {
		w.pos[i] |= other.pos[i]
	}
	w.full |= other.full
	w.n = n
	return w
}

// Equal returns true if both words have identical positions.
func (w Word) Equal(other Word) bool {
	return w == other
}

// Encoder converts between text and Words for a fixed alphabet and word
// length.
type Encoder struct {
	alph   *Alphabet
	length int
}

// NewEncoder creates an encoder. The word length must leave at least one
// letter of the alphabet unused, so that the full alphabet can never be
// the letter set of a single word.
func NewEncoder(alph *Alphabet, length int) (*Encoder, error) {
	if length < 1 || length > MaxWordLength {
		return nil, fmt.Errorf("word length %d out of range 1-%d", length, MaxWordLength)
	}
	if length >= alph.Size() {
		return nil, fmt.Errorf("word length %d must be less than alphabet size %d", length, alph.Size())
	}
	return &Encoder{alph: alph, length: length}, nil
}

func (e *Encoder) Alphabet() *Alphabet {
	return e.alph
}

func (e *Encoder) WordLength() int {
	return e.length
}

// Encode converts a word into its bitmask form.
func (e *Encoder) Encode(s string) (Word, error) {
	var w Word
	if utf8.RuneCountInString(s) != e.length {
		return w, fmt.Errorf("%w: %q has %d letters, want %d", ErrInvalidLength,
			s, utf8.RuneCountInString(s), e.length)
	}
	i := 0
	for _, r := range s {
		b, err := e.alph.Bit(r)
		if err != nil {
			return Word{}, fmt.Errorf("%q: %w", s, err)
		}
		w.pos[i] = b
		w.full |= b
		i++
	}
	w.n = uint8(e.length)
	return w, nil
}

// Decode converts a word back into text. Positions holding more than one
// letter are shown in brackets, and empty positions as a dot.
func (e *Encoder) Decode(w Word) string {
	var sb strings.Builder
	for i := 0; i < w.Len(); i++ {
		p := w.At(i)
		switch p.Count() {
		case 0:
			sb.WriteByte('.')
		case 1:
			sb.WriteString(e.alph.Letters(p))
		default:
			sb.WriteByte('[')
			sb.WriteString(e.alph.Letters(p))
			sb.WriteByte(']')
		}
	}
	return sb.String()
}
