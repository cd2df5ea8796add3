package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gubarz/ssmlkit/internal/ssml"
)

// DefaultSize is used when a non-positive size is requested
const DefaultSize = 256

// Result is a memoized parse outcome. Exactly one of Root and Err is set.
type Result struct {
	Root *ssml.Tag
	Err  error
}

// ParseCache memoizes parse results by source text. Parsed trees are shared
// between callers and must be treated as read-only.
type ParseCache struct {
	entries *lru.Cache[string, Result]

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a cache holding at most size entries
func New(size int) (*ParseCache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	entries, err := lru.New[string, Result](size)
	if err != nil {
		return nil, err
	}
	return &ParseCache{entries: entries}, nil
}

// Get returns the cached result for src and marks it most recently used
func (c *ParseCache) Get(src string) (Result, bool) {
	return c.entries.Get(src)
}

// Set stores a result, evicting the least recently used entry when full
func (c *ParseCache) Set(src string, result Result) {
	c.entries.Add(src, result)
}

// Parse returns the memoized result for src, parsing on a miss.
// Failures are cached too since parsing is deterministic.
func (c *ParseCache) Parse(src string) (*ssml.Tag, error) {
	if r, ok := c.entries.Get(src); ok {
		c.hits.Add(1)
		return r.Root, r.Err
	}
	c.misses.Add(1)

	root, err := ssml.Parse(src)
	c.entries.Add(src, Result{Root: root, Err: err})
	return root, err
}

// Len returns the number of cached entries
func (c *ParseCache) Len() int {
	return c.entries.Len()
}

// Stats returns hit and miss counts for Parse
func (c *ParseCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
