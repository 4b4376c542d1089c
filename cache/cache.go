package cache

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// The cache holds large objects that are expensive to build, such as
// engines with their constraint caches, so that reloading the same word
// list does not rebuild them.

type cache struct {
	sync.Mutex
	objects map[string]any
}

type LoadFunc func(key string) (any, error)

// GlobalObjectCache is our global object cache, of course.
var GlobalObjectCache *cache

func (c *cache) load(key string, loadFunc LoadFunc) error {
	log.Debug().Str("key", key).Msg("loading into cache")

	obj, err := loadFunc(key)
	if err != nil {
		return err
	}
	c.objects[key] = obj

	return nil
}

func (c *cache) get(key string, loadFunc LoadFunc) (any, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting obj from cache")
		return obj, nil
	}
	if err := c.load(key, loadFunc); err != nil {
		return nil, err
	}
	return c.objects[key], nil
}

func (c *cache) drop(key string) {
	c.Lock()
	defer c.Unlock()
	delete(c.objects, key)
}

func CreateGlobalObjectCache() {
	GlobalObjectCache = &cache{objects: make(map[string]any)}
}

// Load returns the object cached under name, calling loadFunc to build it
// on first use. Failed loads are not cached.
func Load(name string, loadFunc LoadFunc) (any, error) {
	if GlobalObjectCache == nil {
		CreateGlobalObjectCache()
	}
	return GlobalObjectCache.get(name, loadFunc)
}

// Drop forgets the object cached under name.
func Drop(name string) {
	if GlobalObjectCache == nil {
		return
	}
	GlobalObjectCache.drop(name)
}
