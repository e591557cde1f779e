package wisp

import (
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/wisp-lang/wisp/internal/generator"
	"golang.org/x/sync/singleflight"
)

// Template is a compiled template as held by the cache. It is
// immutable after creation.
type Template struct {
	Key        string
	SourceLen  int
	CompiledAt time.Time

	hash uint64
	prog *generator.Program
}

// cache memoizes compiled templates keyed by path. An entry is only
// returned while the loaded source still hashes to the value it was
// compiled from; concurrent compiles for the same identity are
// collapsed through a singleflight group.
//
// The cache is owned by an Engine, never shared process-wide, so
// independent engines cannot pollute each other.
type cache struct {
	mu      sync.RWMutex
	entries map[string]*Template
	group   singleflight.Group
}

func newCache() *cache {
	return &cache{
		entries: make(map[string]*Template),
	}
}

func (c *cache) lookup(path string, hash uint64) *Template {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t := c.entries[path]
	if t == nil || t.hash != hash {
		return nil
	}

	return t
}

// getOrCompile returns the cached template for path, loading and
// compiling it if absent or stale.
func (c *cache) getOrCompile(e *Engine, path string) (*Template, error) {
	if e.loader == nil {
		return nil, ErrNoLoader
	}

	src, err := e.loader.Load(path)
	if err != nil {
		return nil, &TemplateNotFoundError{Path: path, Inner: err}
	}

	hash := hashSource(src)

	if t := c.lookup(path, hash); t != nil {
		return t, nil
	}

	key := path + "\x00" + strconv.FormatUint(hash, 16)

	v, err, _ := c.group.Do(key, func() (any, error) {
		if t := c.lookup(path, hash); t != nil {
			return t, nil
		}

		prog, err := e.compile(src, path)
		if err != nil {
			return nil, err
		}

		t := &Template{
			Key:        path,
			SourceLen:  len(src),
			CompiledAt: time.Now(),
			hash:       hash,
			prog:       prog,
		}

		c.mu.Lock()
		c.entries[path] = t
		c.mu.Unlock()

		return t, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Template), nil
}

func hashSource(src string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(src))
	return h.Sum64()
}
