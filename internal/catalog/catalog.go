// Package catalog holds the ordered challenge definitions and the
// locked/completed flags that change as the learner progresses.
package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/abhisek/codekitchen/internal/challenge"
)

var (
	ErrNotFound       = errors.New("challenge not found")
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// flags is the mutable part of a catalog entry.
type flags struct {
	locked    bool
	completed bool
}

// Catalog is an ordered set of challenges. Definitions never change after
// New; only the flags do, through MarkCompleted and UnlockNext.
type Catalog struct {
	mu    sync.RWMutex
	defs  []challenge.Challenge
	index map[string]int
	flags map[string]*flags
}

// New builds a catalog from defs. Entries keep their definition order and
// only the first one starts unlocked.
func New(defs []challenge.Challenge) (*Catalog, error) {
	if err := validateChallenges(defs); err != nil {
		return nil, err
	}

	owned := make([]challenge.Challenge, len(defs))
	for i, d := range defs {
		owned[i] = d.Clone()
		owned[i].Locked = false
		owned[i].Completed = false
	}

	c := &Catalog{
		defs:  owned,
		index: make(map[string]int, len(owned)),
		flags: make(map[string]*flags, len(owned)),
	}
	for i, d := range owned {
		c.index[d.ID] = i
		c.flags[d.ID] = &flags{locked: i > 0}
	}
	return c, nil
}

// Default builds the catalog from the embedded definitions.
func Default() (*Catalog, error) {
	defs, err := Builtin()
	if err != nil {
		return nil, fmt.Errorf("load builtin catalog: %w", err)
	}
	return New(defs)
}

// Open builds a catalog from the YAML file at path, or the embedded
// catalog when path is empty.
func Open(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	defs, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return New(defs)
}

// Len returns the number of challenges.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// FindByID returns a copy of the challenge with its current flags.
func (c *Catalog) FindByID(id string) (challenge.Challenge, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[id]
	if !ok {
		return challenge.Challenge{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return c.withFlags(i), nil
}

// List returns summaries of all challenges in catalog order.
func (c *Catalog) List() []challenge.Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]challenge.Summary, len(c.defs))
	for i := range c.defs {
		ch := c.withFlags(i)
		out[i] = ch.Summarize()
	}
	return out
}

// MarkCompleted flags id as completed. Idempotent; unknown ids are ignored.
func (c *Catalog) MarkCompleted(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok := c.flags[id]; ok {
		f.completed = true
	}
}

// UnlockNext unlocks the entry following id. No-op for the last entry
// or an unknown id.
func (c *Catalog) UnlockNext(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[id]
	if !ok || i+1 >= len(c.defs) {
		return
	}
	c.flags[c.defs[i+1].ID].locked = false
}

// Next returns the id of the entry following id, if any.
func (c *Catalog) Next(id string) (string, bool) {
	i, ok := c.index[id]
	if !ok || i+1 >= len(c.defs) {
		return "", false
	}
	return c.defs[i+1].ID, true
}

// Progress returns the number of completed challenges and the total.
func (c *Catalog) Progress() (completed, total int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, f := range c.flags {
		if f.completed {
			completed++
		}
	}
	return completed, len(c.defs)
}

func (c *Catalog) withFlags(i int) challenge.Challenge {
	ch := c.defs[i].Clone()
	f := c.flags[ch.ID]
	ch.Locked = f.locked
	ch.Completed = f.completed
	return ch
}
