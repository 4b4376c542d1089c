package alphabet

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

const (
	// MaxAlphabetSize is the maximum size of the alphabet. Every letter
	// must fit in one bit of a 64-bit LetterSet.
	MaxAlphabetSize = 64
	// MaxWordLength is the longest word a Word can hold.
	MaxWordLength = 16
)

var (
	ErrInvalidLength = errors.New("invalid word length")
	ErrInvalidSymbol = errors.New("symbol not in alphabet")
)

// LetterSet is a bit mask of letters, with indices from 0 to the size of
// the alphabet. It is the "charmask" of the ranking engine.
type LetterSet uint64

// Has returns true if every letter in o is also in s.
func (s LetterSet) Has(o LetterSet) bool {
	return s&o == o
}

// Count returns the number of letters in the set.
func (s LetterSet) Count() int {
	return bits.OnesCount64(uint64(s))
}

// Highest returns the index of the highest letter in the set, or -1 for
// the empty set.
func (s LetterSet) Highest() int {
	return 63 - bits.LeadingZeros64(uint64(s))
}

// Alphabet defines an ordered set of symbols. Symbol i is bit i of a
// LetterSet. An Alphabet is immutable once created.
type Alphabet struct {
	// vals is a map of the actual physical letter rune (like 'A') to its
	// index in the alphabet.
	vals    map[rune]uint8
	letters []rune
}

// NewAlphabet creates an alphabet from the given letters, in order.
func NewAlphabet(letters string) (*Alphabet, error) {
	a := &Alphabet{vals: make(map[rune]uint8)}
	for _, r := range letters {
		if _, ok := a.vals[r]; ok {
			return nil, fmt.Errorf("duplicate letter %q in alphabet", r)
		}
		if len(a.letters) == MaxAlphabetSize {
			return nil, fmt.Errorf("exceeded max alphabet size %d", MaxAlphabetSize)
		}
		a.vals[r] = uint8(len(a.letters))
		a.letters = append(a.letters, r)
	}
	if len(a.letters) == 0 {
		return nil, errors.New("alphabet has no letters")
	}
	return a, nil
}

// Size returns the number of letters in this alphabet.
func (a *Alphabet) Size() int {
	return len(a.letters)
}

// Val returns the 'value' of this rune in the alphabet; i.e a number from
// 0 to Size()-1
func (a *Alphabet) Val(r rune) (int, error) {
	val, ok := a.vals[r]
	if ok {
		return int(val), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSymbol, r)
}

// Letter returns the letter that this position in the alphabet corresponds to.
func (a *Alphabet) Letter(idx int) rune {
	return a.letters[idx]
}

// Bit returns the single-letter set for r.
func (a *Alphabet) Bit(r rune) (LetterSet, error) {
	v, err := a.Val(r)
	if err != nil {
		return 0, err
	}
	return LetterSet(1) << v, nil
}

// All returns the set of every letter in the alphabet.
func (a *Alphabet) All() LetterSet {
	if len(a.letters) == 64 {
		return ^LetterSet(0)
	}
	return LetterSet(1)<<len(a.letters) - 1
}

// Letters renders a letter set in alphabet order, e.g. "AE".
func (a *Alphabet) Letters(s LetterSet) string {
	var sb strings.Builder
	for s != 0 {
		idx := bits.TrailingZeros64(uint64(s))
		if idx < len(a.letters) {
			sb.WriteRune(a.letters[idx])
		}
		s &= s - 1
	}
	return sb.String()
}

func (a *Alphabet) String() string {
	return string(a.letters)
}
