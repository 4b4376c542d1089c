package wordcache

import (
	"errors"
	"fmt"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/birdulon/wordlerank/alphabet"
)

// MaxDenseKeyBits is the largest alphabet the dense store will index.
const MaxDenseKeyBits = 32

const indexEntrySize = 4

var ErrDenseTooLarge = errors.New("dense cache index does not fit in memory")

// DenseStore indexes every possible key directly. index[key] holds the
// position of the key's word list in items, and 0 means absent; items[0]
// is never used.
type DenseStore struct {
	index []uint32
	items [][]alphabet.Word
}

// NewDenseStore allocates an index over all 2^keyBits keys. The index may
// use at most fractionOfMemory of the total system memory.
func NewDenseStore(keyBits int, fractionOfMemory float64) (*DenseStore, error) {
	if keyBits < 1 || keyBits > MaxDenseKeyBits {
		return nil, fmt.Errorf("%w: %d key bits, maximum is %d", ErrDenseTooLarge,
			keyBits, MaxDenseKeyBits)
	}
	numElems := uint64(1) << keyBits
	needed := numElems * indexEntrySize
	totalMem := memory.TotalMemory()
	// TotalMemory is 0 when the platform can't report it.
	if totalMem > 0 && float64(needed) > fractionOfMemory*float64(totalMem) {
		return nil, fmt.Errorf("%w: need %d bytes, allowed %.0f of %d", ErrDenseTooLarge,
			needed, fractionOfMemory*float64(totalMem), totalMem)
	}
	log.Debug().Uint64("num-elems", numElems).
		Uint64("estimated-total-memory-bytes", needed).
		Uint64("total-system-memory-bytes", totalMem).
		Msg("dense-cache-size")

	return &DenseStore{
		index: make([]uint32, numElems),
		items: make([][]alphabet.Word, 1, 1024),
	}, nil
}

func (s *DenseStore) slot(key alphabet.LetterSet) uint32 {
	if uint64(key) >= uint64(len(s.index)) {
		return 0
	}
	return s.index[key]
}

func (s *DenseStore) Contains(key alphabet.LetterSet) bool {
	return s.slot(key) != 0
}

func (s *DenseStore) Get(key alphabet.LetterSet) []alphabet.Word {
	return s.items[s.slot(key)]
}

// Insert panics on a key outside the indexed range.
func (s *DenseStore) Insert(key alphabet.LetterSet, words []alphabet.Word) {
	if idx := s.slot(key); idx != 0 {
		s.items[idx] = words
		return
	}
	s.items = append(s.items, words)
	s.index[key] = uint32(len(s.items) - 1)
}

func (s *DenseStore) Len() int {
	return len(s.items) - 1
}
