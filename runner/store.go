package runner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/birdulon/wordlerank/wordcache"
)

type Backend string

const (
	BackendDense  Backend = "dense"
	BackendMap    Backend = "map"
	BackendXXHash Backend = "xxhash"
	BackendSorted Backend = "sorted"
)

func ParseBackend(name string) (Backend, error) {
	switch b := Backend(strings.ToLower(name)); b {
	case BackendDense, BackendMap, BackendXXHash, BackendSorted:
		return b, nil
	}
	return "", fmt.Errorf("%q is not a cache backend; valid options: dense, map, xxhash, sorted", name)
}

// newStore creates the store for backend. A dense store that would not
// fit in memory falls back to the hash store.
func newStore(backend Backend, alphabetSize int, memoryFraction float64, sizeHint int) (wordcache.Store, Backend, error) {
	switch backend {
	case BackendMap:
		return wordcache.NewMapStore(), backend, nil
	case BackendSorted:
		return wordcache.NewSortedStore(), backend, nil
	case BackendXXHash:
		return wordcache.NewHashStore(sizeHint), backend, nil
	case BackendDense:
		store, err := wordcache.NewDenseStore(alphabetSize, memoryFraction)
		if errors.Is(err, wordcache.ErrDenseTooLarge) {
			log.Warn().Err(err).Int("alphabet-size", alphabetSize).Msg("dense-store-fallback")
			return wordcache.NewHashStore(sizeHint), BackendXXHash, nil
		}
		if err != nil {
			return nil, "", err
		}
		return store, backend, nil
	}
	return nil, "", fmt.Errorf("unknown backend %q", backend)
}
