package wordcache

import (
	"encoding/binary"

	"github.com/cespare/xxhash"

	"github.com/birdulon/wordlerank/alphabet"
)

const minHashSlots = 1 << 10

type hashSlot struct {
	key   alphabet.LetterSet
	used  bool
	words []alphabet.Word
}

// HashStore is an open-addressing hash table keyed by the xxhash of the
// letter set. It grows by doubling whenever it is more than half full.
type HashStore struct {
	slots []hashSlot
	mask  uint64
	count int
}

// NewHashStore creates a table sized for at least sizeHint entries.
func NewHashStore(sizeHint int) *HashStore {
	n := minHashSlots
	for n < 2*sizeHint {
		n <<= 1
	}
	return &HashStore{slots: make([]hashSlot, n), mask: uint64(n - 1)}
}

func hashKey(key alphabet.LetterSet) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(key))
	return xxhash.Sum64(buf[:])
}

// probe returns the slot holding key, or the empty slot where it belongs.
func (s *HashStore) probe(key alphabet.LetterSet) int {
	idx := hashKey(key) & s.mask
	for {
		slot := &s.slots[idx]
		if !slot.used || slot.key == key {
			return int(idx)
		}
		idx = (idx + 1) & s.mask
	}
}

func (s *HashStore) Contains(key alphabet.LetterSet) bool {
	return s.slots[s.probe(key)].used
}

func (s *HashStore) Get(key alphabet.LetterSet) []alphabet.Word {
	return s.slots[s.probe(key)].words
}

func (s *HashStore) Insert(key alphabet.LetterSet, words []alphabet.Word) {
	if 2*(s.count+1) > len(s.slots) {
		s.grow()
	}
	idx := s.probe(key)
	if !s.slots[idx].used {
		s.count++
	}
	s.slots[idx] = hashSlot{key: key, used: true, words: words}
}

func (s *HashStore) grow() {
	old := s.slots
	s.slots = make([]hashSlot, 2*len(old))
	s.mask = uint64(len(s.slots) - 1)
	for _, slot := range old {
		if slot.used {
			s.slots[s.probe(slot.key)] = slot
		}
	}
}

func (s *HashStore) Len() int {
	return s.count
}
