package state

import (
	"context"
	"strings"
	"sync"
)

// Matcher decides whether an item matches a search term. Implementations are
// expected to be case-insensitive substring tests over a fixed field set.
type Matcher[T any] func(item T, term string) bool

// Loader fetches the full collection for the current scope.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Collection keeps an unfiltered master copy of the last successful fetch and
// a filtered view derived from it. Reloads and filter changes may interleave:
// a reload that finishes after a newer reload started is discarded, and the
// filter is always re-applied with the latest known term, not the term
// captured when the load began.
type Collection[T any] struct {
	mu    sync.Mutex
	all   []T
	term  string
	match Matcher[T]

	// gen counts started loads; loadedGen records the newest applied one.
	gen       uint64
	loadedGen uint64
}

func NewCollection[T any](match Matcher[T]) *Collection[T] {
	return &Collection[T]{match: match}
}

// Load fetches via load and, on success, replaces the master copy and
// re-applies the active filter. On failure the prior state is left untouched
// and the error is returned for the caller to surface. A stale completion
// (a newer Load has started since) is dropped silently.
func (c *Collection[T]) Load(ctx context.Context, load Loader[T]) error {
	c.mu.Lock()
	c.gen++
	myGen := c.gen
	c.mu.Unlock()

	items, err := load(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if myGen < c.gen {
		// A newer load is in flight (or already landed); this response is stale.
		return nil
	}
	if myGen <= c.loadedGen {
		return nil
	}
	c.loadedGen = myGen
	c.all = items
	return nil
}

// Filter sets the active term. It is idempotent and is re-invoked whenever the
// shared search term changes.
func (c *Collection[T]) Filter(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.term = term
}

// Term returns the active filter term.
func (c *Collection[T]) Term() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.term
}

// All returns a copy of the unfiltered master list.
func (c *Collection[T]) All() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.all))
	copy(out, c.all)
	return out
}

// Items returns the filtered view. An empty term yields the whole master copy.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	if strings.TrimSpace(c.term) == "" || c.match == nil {
		out := make([]T, len(c.all))
		copy(out, c.all)
		return out
	}
	out := make([]T, 0, len(c.all))
	for _, it := range c.all {
		if c.match(it, c.term) {
			out = append(out, it)
		}
	}
	return out
}

// Len returns the size of the unfiltered master list.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.all)
}

// MatchFields is the standard matcher: case-insensitive substring match of
// term against any of the given fields.
func MatchFields(term string, fields ...string) bool {
	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), t) {
			return true
		}
	}
	return false
}
