// Package reconcile compares two movie lists by canonical title and reports
// matches, unmatched files and collisions.
package reconcile

// Entry is one parsed line of a movie list. Path is the sanitized line and
// is the identity key used by the list caches.
type Entry struct {
	Title string
	Path  string
}

// List is a movie list in source order together with the caches needed to
// display results with the original text.
type List struct {
	Entries []Entry

	// PathCache maps a sanitized path to the raw line it came from.
	PathCache map[string]string
	// TitleCache maps a sanitized path to the title as first extracted.
	TitleCache map[string]string
}

// NewList returns an empty list.
func NewList() *List {
	return &List{
		PathCache:  make(map[string]string),
		TitleCache: make(map[string]string),
	}
}

// Add appends an entry. The caches keep the first value seen for a path.
func (l *List) Add(e Entry, rawLine string) {
	l.Entries = append(l.Entries, e)
	if _, ok := l.PathCache[e.Path]; !ok {
		l.PathCache[e.Path] = rawLine
	}
	if _, ok := l.TitleCache[e.Path]; !ok {
		l.TitleCache[e.Path] = e.Title
	}
}

// Len returns the number of entries.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Entries)
}

// RawPath returns the original line for a sanitized path.
func (l *List) RawPath(path string) string {
	if raw, ok := l.PathCache[path]; ok {
		return raw
	}
	return path
}

// RawTitle returns the extracted title for a sanitized path.
func (l *List) RawTitle(path string) string {
	if t, ok := l.TitleCache[path]; ok {
		return t
	}
	return path
}

// Side is a list paired with the canonical title of each entry.
// Titles[i] belongs to List.Entries[i].
type Side struct {
	List   *List
	Titles []string
}

// Prepare runs normalize over every entry title. The list itself is not
// modified.
func Prepare(l *List, normalize func(string) string) Side {
	if l == nil {
		l = NewList()
	}
	titles := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		titles[i] = normalize(e.Title)
	}
	return Side{List: l, Titles: titles}
}

func (s Side) path(i int) string {
	return s.List.Entries[i].Path
}
