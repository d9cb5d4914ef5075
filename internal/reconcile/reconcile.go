package reconcile

import (
	"slices"
	"strings"

	"github.com/Nomadcxx/jellydiff/internal/similarity"
)

// Pairing decides when two approximate matches count as the same movie.
type Pairing int

const (
	// PairByTitle records a title only when that literal canonical title is
	// found by the similarity search in both directions. Titles that differ
	// after normalization never pair with each other, even above the
	// cutoff; they only add paths to a title both lists share.
	PairByTitle Pairing = iota
	// PairMutual records every first-list title together with the
	// second-list titles it scores within the cutoff of in both directions.
	PairMutual
)

func (p Pairing) String() string {
	switch p {
	case PairMutual:
		return "mutual"
	default:
		return "title"
	}
}

// ParsePairing accepts "title" or "mutual".
func ParsePairing(s string) (Pairing, bool) {
	switch strings.ToLower(s) {
	case "", "title":
		return PairByTitle, true
	case "mutual":
		return PairMutual, true
	default:
		return PairByTitle, false
	}
}

// Mode selects exact or approximate matching.
type Mode struct {
	// Scorer is nil for exact matching.
	Scorer  similarity.Scorer
	Cutoff  int
	Pairing Pairing
	// Workers bounds the parallel similarity searches; 0 means GOMAXPROCS.
	Workers int
}

// Exact matches byte-equal canonical titles.
func Exact() Mode {
	return Mode{}
}

// Approximate matches titles scoring at least cutoff with scorer.
func Approximate(scorer similarity.Scorer, cutoff int) Mode {
	return Mode{Scorer: scorer, Cutoff: cutoff}
}

// IsExact reports whether m compares normalized titles for equality.
func (m Mode) IsExact() bool {
	return m.Scorer == nil
}

// MatchRecord is one title found in both lists. Paths are the original
// list lines, without repeats, in the order they were found.
type MatchRecord struct {
	CanonicalTitle string
	DisplayTitle   string
	FirstPaths     []string
	SecondPaths    []string
	// Collision is set when the title maps to more than one file on either
	// side.
	Collision bool
}

// Unmatched holds the sorted original lines that found no match, per list.
type Unmatched struct {
	First  []string
	Second []string
}

// Count returns the number of unmatched paths on both sides.
func (u Unmatched) Count() int {
	return len(u.First) + len(u.Second)
}

// Result is the outcome of a reconciliation. Matches and Collisions are in
// ascending canonical title order; every collision is also a match.
type Result struct {
	Matches    []MatchRecord
	Collisions []MatchRecord
	Unmatched  Unmatched
}

// Stats counts the groups in a Result.
type Stats struct {
	Matches    int
	Unmatched  int
	Collisions int
}

// Stats returns the group counts of r.
func (r Result) Stats() Stats {
	return Stats{
		Matches:    len(r.Matches),
		Unmatched:  r.Unmatched.Count(),
		Collisions: len(r.Collisions),
	}
}

// Reconcile compares two prepared lists. It never fails; empty lists give
// an empty result.
func Reconcile(first, second Side, mode Mode) Result {
	var b *builder
	if mode.IsExact() {
		b = matchExact(first, second)
	} else {
		b = matchApproximate(first, second, mode)
	}
	return b.result(first, second)
}

// builder accumulates one record per canonical title, first record wins.
type builder struct {
	records map[string]MatchRecord
	// secondTitles, when set, lists the second-list titles that took part
	// in a match. Otherwise the record titles are used for both lists.
	secondTitles map[string]struct{}
}

func newBuilder() *builder {
	return &builder{records: make(map[string]MatchRecord)}
}

func (b *builder) put(rec MatchRecord) {
	if _, ok := b.records[rec.CanonicalTitle]; ok {
		return
	}
	b.records[rec.CanonicalTitle] = rec
}

func (b *builder) matchedFirst(title string) bool {
	_, ok := b.records[title]
	return ok
}

func (b *builder) matchedSecond(title string) bool {
	if b.secondTitles == nil {
		return b.matchedFirst(title)
	}
	_, ok := b.secondTitles[title]
	return ok
}

func (b *builder) result(first, second Side) Result {
	keys := make([]string, 0, len(b.records))
	for k := range b.records {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	res := Result{Matches: make([]MatchRecord, 0, len(keys))}
	for _, k := range keys {
		rec := b.records[k]
		res.Matches = append(res.Matches, rec)
		if rec.Collision {
			res.Collisions = append(res.Collisions, rec)
		}
	}

	res.Unmatched = Unmatched{
		First:  unmatchedPaths(first, b.matchedFirst),
		Second: unmatchedPaths(second, b.matchedSecond),
	}
	return res
}

// unmatchedPaths lists the original lines of entries whose title did not
// match. Titles are lowercased again before the lookup in case a title
// reached the matcher without going through normalization.
func unmatchedPaths(s Side, matched func(string) bool) []string {
	seen := make(map[string]struct{})
	var out []string
	for i, title := range s.Titles {
		if matched(strings.ToLower(title)) {
			continue
		}
		p := s.path(i)
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, s.List.RawPath(p))
	}
	slices.Sort(out)
	return out
}

func rawPaths(s Side, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = s.List.RawPath(p)
	}
	return out
}
