package mdblog

import (
	"errors"
	"sync"
	"time"

	"github.com/eringen/mdblog/posts"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = errors.New("mdblog: post not found")

// Catalog holds the currently served post collection. Collections are
// immutable; Reload swaps in a freshly loaded one.
type Catalog struct {
	mu      sync.RWMutex
	current *posts.Collection
	loaded  time.Time
	load    func() (*posts.Collection, error)
}

// NewCatalog runs load once and returns a Catalog serving the result.
func NewCatalog(load func() (*posts.Collection, error)) (*Catalog, error) {
	c := &Catalog{load: load}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload runs the loader again. On failure the previous collection stays in place.
func (c *Catalog) Reload() error {
	col, err := c.load()
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.current = col
	c.loaded = time.Now()
	c.mu.Unlock()
	return nil
}

// Current returns the active collection.
func (c *Catalog) Current() *posts.Collection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// LoadedAt returns when the active collection was loaded.
func (c *Catalog) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// ListPosts returns every post in load order.
func (c *Catalog) ListPosts() []posts.Post {
	return c.Current().All()
}

// GetPost returns a single post by slug.
func (c *Catalog) GetPost(slug string) (posts.Post, error) {
	p, ok := c.Current().Find(slug)
	if !ok {
		return posts.Post{}, ErrNotFound
	}
	return p, nil
}
