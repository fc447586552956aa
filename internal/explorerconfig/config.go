// Package explorerconfig holds the filters and sorters applied by the
// explorer worker during enumeration.
package explorerconfig

import (
	"sort"

	"github.com/sayanarijit/xplr-sub000/internal/node"
)

// Config is the active set of filters (conjunction) and sorters
// (lexicographic, declaration order) applied to a freshly enumerated
// directory.
type Config struct {
	filters orderedSet[string, NodeFilter]
	sorters orderedSet[SorterKind, NodeSorter]
}

// New returns an empty Config.
func New() Config {
	return Config{
		filters: newOrderedSet[string, NodeFilter](),
		sorters: newOrderedSet[SorterKind, NodeSorter](),
	}
}

// AddFilter inserts or (if kind+input already present) replaces a filter.
func (c *Config) AddFilter(f NodeFilter) { c.filters.add(f.key(), f) }

// RemoveFilter removes a filter matching kind+input exactly.
func (c *Config) RemoveFilter(f NodeFilter) bool { return c.filters.remove(f.key()) }

// ToggleFilter adds f if absent, removes it if present.
func (c *Config) ToggleFilter(f NodeFilter) {
	if c.filters.has(f.key()) {
		c.filters.remove(f.key())
		return
	}
	c.filters.add(f.key(), f)
}

// RemoveLastFilter drops the most recently added filter.
func (c *Config) RemoveLastFilter() bool { return c.filters.removeLast() }

// ClearFilters removes every filter.
func (c *Config) ClearFilters() { c.filters.clear() }

// Filters returns the active filters in declaration order.
func (c Config) Filters() []NodeFilter { return c.filters.values() }

// AddSorter inserts a sorter, or replaces the existing sorter of the same
// Kind (its Reverse flag changes but its declaration position does not).
func (c *Config) AddSorter(s NodeSorter) { c.sorters.add(s.key(), s) }

// RemoveSorter removes the sorter of the given Kind.
func (c *Config) RemoveSorter(kind SorterKind) bool {
	return c.sorters.remove(kind)
}

// ToggleSorter adds the sorter if its Kind is absent, removes it if
// present.
func (c *Config) ToggleSorter(s NodeSorter) {
	if c.sorters.has(s.key()) {
		c.sorters.remove(s.key())
		return
	}
	c.sorters.add(s.key(), s)
}

// ReverseSorter flips the Reverse flag of the sorter with the given Kind,
// if present.
func (c *Config) ReverseSorter(kind SorterKind) {
	if s, ok := c.sorters.items[kind]; ok {
		s.Reverse = !s.Reverse
		c.sorters.items[kind] = s
	}
}

// ReverseSorters flips the Reverse flag of every active sorter.
func (c *Config) ReverseSorters() {
	for k, s := range c.sorters.items {
		s.Reverse = !s.Reverse
		c.sorters.items[k] = s
	}
}

// RemoveLastSorter drops the most recently added sorter.
func (c *Config) RemoveLastSorter() bool { return c.sorters.removeLast() }

// ClearSorters removes every sorter.
func (c *Config) ClearSorters() { c.sorters.clear() }

// Sorters returns the active sorters in declaration order.
func (c Config) Sorters() []NodeSorter { return c.sorters.values() }

// Filter returns the subset of nodes satisfying every active filter
// (conjunction); an empty filter set passes everything.
func (c Config) Filter(nodes []node.Node) []node.Node {
	filters := c.filters.values()
	if len(filters) == 0 {
		return nodes
	}
	out := make([]node.Node, 0, len(nodes))
	for _, n := range nodes {
		if passesAll(filters, n) {
			out = append(out, n)
		}
	}
	return out
}

func passesAll(filters []NodeFilter, n node.Node) bool {
	for _, f := range filters {
		if !f.Apply(n.RelativePath, n.AbsolutePath) {
			return false
		}
	}
	return true
}

// Sort orders nodes in place (returning the same slice, resorted) by the
// active sorters, applied lexicographically in declaration order.
func (c Config) Sort(nodes []node.Node) []node.Node {
	sorters := c.sorters.values()
	if len(sorters) == 0 {
		return nodes
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		for _, s := range sorters {
			if cmp := s.Compare(nodes[i], nodes[j]); cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})
	return nodes
}

// Clone returns a deep-enough copy safe to hand to a concurrently running
// explorer goroutine while the original continues to be mutated by the
// dispatcher.
func (c Config) Clone() Config {
	return Config{filters: c.filters.clone(), sorters: c.sorters.clone()}
}
