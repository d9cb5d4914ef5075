package reconcile

import "slices"

// groups maps a title to the values collected for it and remembers the
// order in which titles were first seen. Lookups of "the first value for a
// title" are therefore deterministic.
type groups struct {
	order  []string
	values map[string][]int
}

func newGroups() *groups {
	return &groups{values: make(map[string][]int)}
}

func (g *groups) add(title string, v int) {
	if _, ok := g.values[title]; !ok {
		g.order = append(g.order, title)
	}
	g.values[title] = append(g.values[title], v)
}

func (g *groups) get(title string) ([]int, bool) {
	v, ok := g.values[title]
	return v, ok
}

func (g *groups) has(title string) bool {
	_, ok := g.values[title]
	return ok
}

// sortedKeys returns the titles in ascending byte order.
func (g *groups) sortedKeys() []string {
	keys := slices.Clone(g.order)
	slices.Sort(keys)
	return keys
}

// groupByTitle indexes a side's entries by canonical title in source order.
func groupByTitle(s Side) *groups {
	g := newGroups()
	for i, t := range s.Titles {
		g.add(t, i)
	}
	return g
}

// distinctPaths resolves entry indexes to sanitized paths, dropping repeats
// and keeping first-seen order.
func distinctPaths(s Side, idx []int) []string {
	seen := make(map[string]struct{}, len(idx))
	out := make([]string, 0, len(idx))
	for _, i := range idx {
		p := s.path(i)
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
