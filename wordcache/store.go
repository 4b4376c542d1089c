package wordcache

import (
	"slices"

	"github.com/birdulon/wordlerank/alphabet"
)

// Store is the key to word-list lookup used by the cache. Implementations
// are written once during Build and only read afterwards.
type Store interface {
	Contains(key alphabet.LetterSet) bool
	// Get returns nil for a key that was never inserted.
	Get(key alphabet.LetterSet) []alphabet.Word
	Insert(key alphabet.LetterSet, words []alphabet.Word)
	Len() int
}

// MapStore is a Store backed by a Go map.
type MapStore struct {
	m map[alphabet.LetterSet][]alphabet.Word
}

func NewMapStore() *MapStore {
	return &MapStore{m: make(map[alphabet.LetterSet][]alphabet.Word)}
}

func (s *MapStore) Contains(key alphabet.LetterSet) bool {
	_, ok := s.m[key]
	return ok
}

func (s *MapStore) Get(key alphabet.LetterSet) []alphabet.Word {
	return s.m[key]
}

func (s *MapStore) Insert(key alphabet.LetterSet, words []alphabet.Word) {
	s.m[key] = words
}

func (s *MapStore) Len() int {
	return len(s.m)
}

type sortedEntry struct {
	key   alphabet.LetterSet
	words []alphabet.Word
}

// SortedStore keeps its entries ordered by key and looks them up with a
// binary search.
type SortedStore struct {
	entries []sortedEntry
}

func NewSortedStore() *SortedStore {
	return &SortedStore{}
}

func (s *SortedStore) find(key alphabet.LetterSet) (int, bool) {
	return slices.BinarySearchFunc(s.entries, key, func(e sortedEntry, k alphabet.LetterSet) int {
		switch {
		case e.key < k:
			return -1
		case e.key > k:
			return 1
		}
		return 0
	})
}

func (s *SortedStore) Contains(key alphabet.LetterSet) bool {
	_, ok := s.find(key)
	return ok
}

func (s *SortedStore) Get(key alphabet.LetterSet) []alphabet.Word {
	idx, ok := s.find(key)
	if !ok {
		return nil
	}
	return s.entries[idx].words
}

func (s *SortedStore) Insert(key alphabet.LetterSet, words []alphabet.Word) {
	idx, ok := s.find(key)
	if ok {
		s.entries[idx].words = words
		return
	}
	s.entries = slices.Insert(s.entries, idx, sortedEntry{key: key, words: words})
}

func (s *SortedStore) Len() int {
	return len(s.entries)
}

// Keys returns the stored keys in ascending order.
func (s *SortedStore) Keys() []alphabet.LetterSet {
	keys := make([]alphabet.LetterSet, len(s.entries))
	for i, e := range s.entries {
		keys[i] = e.key
	}
	return keys
}
