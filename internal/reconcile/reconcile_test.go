package reconcile

import (
	"strings"
	"testing"

	"github.com/Nomadcxx/jellydiff/internal/naming"
	"github.com/Nomadcxx/jellydiff/internal/similarity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestList builds a list from title/path pairs; the raw line is the path.
func newTestList(pairs ...string) *List {
	l := NewList()
	for i := 0; i+1 < len(pairs); i += 2 {
		l.Add(Entry{Title: pairs[i], Path: pairs[i+1]}, pairs[i+1])
	}
	return l
}

func prepare(l *List) Side {
	return Prepare(l, naming.Normalize)
}

func TestReconcile_ExactYearPrefix(t *testing.T) {
	first := newTestList("2001 The Matrix", "2001 The Matrix.mkv")
	second := newTestList("the matrix", "the matrix (2001).mp4")

	res := Reconcile(prepare(first), prepare(second), Exact())

	require.Len(t, res.Matches, 1)
	assert.Equal(t, "the matrix", res.Matches[0].CanonicalTitle)
	assert.Equal(t, "2001 The Matrix", res.Matches[0].DisplayTitle)
	assert.Equal(t, []string{"2001 The Matrix.mkv"}, res.Matches[0].FirstPaths)
	assert.Equal(t, []string{"the matrix (2001).mp4"}, res.Matches[0].SecondPaths)
	assert.Empty(t, res.Collisions)
	assert.Zero(t, res.Unmatched.Count())
}

func TestReconcile_ExactCollision(t *testing.T) {
	first := newTestList(
		"Movie A", "Movie A.mkv",
		"Movie A", "Movie A (copy).mkv",
	)
	second := newTestList("Movie A", "Movie A.mp4")

	res := Reconcile(prepare(first), prepare(second), Exact())

	require.Len(t, res.Matches, 1)
	require.Len(t, res.Collisions, 1)
	rec := res.Collisions[0]
	assert.True(t, rec.Collision)
	assert.Equal(t, "movie a", rec.CanonicalTitle)
	assert.Equal(t, []string{"Movie A.mkv", "Movie A (copy).mkv"}, rec.FirstPaths)
	assert.Equal(t, []string{"Movie A.mp4"}, rec.SecondPaths)
	assert.Zero(t, res.Unmatched.Count())
}

func TestReconcile_CollisionCountsRepeatedPaths(t *testing.T) {
	first := newTestList(
		"Heat", "Heat.mkv",
		"Heat", "Heat.mkv",
	)
	second := newTestList("Heat", "Heat.mp4")

	res := Reconcile(prepare(first), prepare(second), Exact())

	require.Len(t, res.Matches, 1)
	assert.Equal(t, []string{"Heat.mkv"}, res.Matches[0].FirstPaths, "paths are listed once")
	assert.True(t, res.Matches[0].Collision, "repeated lines still count as a collision")
}

func TestReconcile_Disjoint(t *testing.T) {
	first := newTestList("Alien", "Alien.mkv", "Heat", "Heat.mkv")
	second := newTestList("Casablanca", "Casablanca.mp4")

	res := Reconcile(prepare(first), prepare(second), Exact())

	assert.Empty(t, res.Matches)
	assert.Empty(t, res.Collisions)
	assert.Equal(t, []string{"Alien.mkv", "Heat.mkv"}, res.Unmatched.First)
	assert.Equal(t, []string{"Casablanca.mp4"}, res.Unmatched.Second)
	assert.Equal(t, Stats{Matches: 0, Unmatched: 3, Collisions: 0}, res.Stats())
}

func TestReconcile_EmptyLists(t *testing.T) {
	res := Reconcile(Prepare(nil, naming.Normalize), Prepare(NewList(), naming.Normalize), Exact())
	assert.Empty(t, res.Matches)
	assert.Empty(t, res.Collisions)
	assert.Zero(t, res.Unmatched.Count())

	res = Reconcile(Prepare(nil, naming.Normalize), Prepare(nil, naming.Normalize), Approximate(similarity.Ratio, 75))
	assert.Empty(t, res.Matches)
}

func TestReconcile_ApproximatePairByTitle(t *testing.T) {
	first := newTestList("Matrix", "Matrix.mkv")
	second := newTestList("Matrox", "Matrox.mp4")

	for _, cutoff := range []int{100, 80} {
		res := Reconcile(prepare(first), prepare(second), Approximate(similarity.Ratio, cutoff))
		assert.Empty(t, res.Matches, "cutoff %d", cutoff)
		assert.Equal(t, 2, res.Unmatched.Count(), "cutoff %d", cutoff)
	}
}

func TestReconcile_ApproximatePairByTitleSharedKey(t *testing.T) {
	// "matrix" is in both lists; "matrox" in the second list scores above
	// the cutoff and joins the shared title's second-list paths.
	first := newTestList("Matrix", "Matrix.mkv")
	second := newTestList(
		"Matrix", "Matrix.mp4",
		"Matrox", "Matrox.mp4",
	)

	res := Reconcile(prepare(first), prepare(second), Approximate(similarity.Ratio, 80))

	require.Len(t, res.Matches, 1)
	rec := res.Matches[0]
	assert.Equal(t, "matrix", rec.CanonicalTitle)
	assert.Equal(t, "Matrix", rec.DisplayTitle)
	assert.Equal(t, []string{"Matrix.mkv"}, rec.FirstPaths)
	assert.Equal(t, []string{"Matrix.mp4", "Matrox.mp4"}, rec.SecondPaths)
	assert.True(t, rec.Collision)
	assert.Equal(t, []string{"Matrox.mp4"}, res.Unmatched.Second, "unmatched is decided by title")
}

func TestReconcile_ApproximatePairMutual(t *testing.T) {
	first := newTestList("Matrix", "Matrix.mkv")
	second := newTestList("Matrox", "Matrox.mp4")

	mode := Approximate(similarity.Ratio, 100)
	mode.Pairing = PairMutual
	res := Reconcile(prepare(first), prepare(second), mode)
	assert.Empty(t, res.Matches)
	assert.Equal(t, 2, res.Unmatched.Count())

	mode.Cutoff = 80
	res = Reconcile(prepare(first), prepare(second), mode)
	require.Len(t, res.Matches, 1)
	rec := res.Matches[0]
	assert.Equal(t, "matrix", rec.CanonicalTitle)
	assert.Equal(t, []string{"Matrix.mkv"}, rec.FirstPaths)
	assert.Equal(t, []string{"Matrox.mp4"}, rec.SecondPaths)
	assert.False(t, rec.Collision)
	assert.Zero(t, res.Unmatched.Count())
}

func TestReconcile_ApproximateWithDirectScorerMatchesExact(t *testing.T) {
	first := newTestList(
		"Alien", "Alien.mkv",
		"Heat", "Heat.mkv",
		"Heat", "Heat (1995).mkv",
	)
	second := newTestList(
		"heat", "heat.mp4",
		"Casablanca", "Casablanca.mp4",
	)

	exact := Reconcile(prepare(first), prepare(second), Exact())
	approx := Reconcile(prepare(first), prepare(second), Approximate(similarity.Direct, 100))

	assert.Equal(t, exact, approx)
}

func TestReconcile_EveryPathAccountedForOnce(t *testing.T) {
	first := newTestList(
		"Alien", "Alien.mkv",
		"Aliens", "Aliens.mkv",
		"Heat", "Heat.mkv",
		"Heat", "Heat 2.mkv",
	)
	second := newTestList(
		"Heat", "Heat.mp4",
		"Alien", "Alien.mp4",
		"Up", "Up.mp4",
	)

	res := Reconcile(prepare(first), prepare(second), Exact())

	matchedFirst := map[string]int{}
	matchedSecond := map[string]int{}
	for _, m := range res.Matches {
		for _, p := range m.FirstPaths {
			matchedFirst[p]++
		}
		for _, p := range m.SecondPaths {
			matchedSecond[p]++
		}
	}
	for _, p := range res.Unmatched.First {
		matchedFirst[p]++
	}
	for _, p := range res.Unmatched.Second {
		matchedSecond[p]++
	}

	for _, e := range first.Entries {
		assert.Equal(t, 1, matchedFirst[e.Path], e.Path)
	}
	for _, e := range second.Entries {
		assert.Equal(t, 1, matchedSecond[e.Path], e.Path)
	}
}

func TestReconcile_CollisionsAreMatches(t *testing.T) {
	first := newTestList(
		"Heat", "Heat.mkv",
		"Heat", "Heat 2.mkv",
		"Up", "Up.mkv",
	)
	second := newTestList(
		"Heat", "Heat.mp4",
		"Up", "Up.mp4",
		"Up", "Up (2009).mp4",
	)

	res := Reconcile(prepare(first), prepare(second), Exact())

	titles := map[string]bool{}
	for _, m := range res.Matches {
		titles[m.CanonicalTitle] = true
	}
	require.Len(t, res.Collisions, 2)
	for _, c := range res.Collisions {
		assert.True(t, titles[c.CanonicalTitle], c.CanonicalTitle)
	}
}

func TestReconcile_SortedAndDeterministic(t *testing.T) {
	first := newTestList(
		"Zodiac", "Zodiac.mkv",
		"Alien", "Alien.mkv",
		"Memento", "Memento.mkv",
	)
	second := newTestList(
		"Memento", "Memento.mp4",
		"Zodiac", "Zodiac.mp4",
		"Alien", "Alien.mp4",
	)

	mode := Approximate(similarity.Weighted, 75)
	mode.Workers = 4
	want := Reconcile(prepare(first), prepare(second), mode)

	var got []string
	for _, m := range want.Matches {
		got = append(got, m.CanonicalTitle)
	}
	assert.Equal(t, []string{"alien", "memento", "zodiac"}, got)

	for i := 0; i < 10; i++ {
		assert.Equal(t, want, Reconcile(prepare(first), prepare(second), mode))
	}
}

func TestReconcile_DisplayTitleFromFirstList(t *testing.T) {
	first := newTestList("the GODFATHER", "godfather.mkv")
	second := newTestList("The Godfather", "The Godfather.mp4")

	res := Reconcile(prepare(first), prepare(second), Exact())

	require.Len(t, res.Matches, 1)
	assert.Equal(t, "the GODFATHER", res.Matches[0].DisplayTitle)
}

func TestReconcile_UnmatchedLowercasesTitles(t *testing.T) {
	// Titles that skip normalization are looked up lowercased, so an
	// uppercase key that matched still shows up as unmatched.
	first := newTestList("HEAT", "HEAT.mkv")
	second := newTestList("HEAT", "HEAT.mp4")
	identity := func(s string) string { return s }

	res := Reconcile(Prepare(first, identity), Prepare(second, identity), Exact())

	require.Len(t, res.Matches, 1)
	assert.Equal(t, []string{"HEAT.mkv"}, res.Unmatched.First)
	assert.Equal(t, []string{"HEAT.mp4"}, res.Unmatched.Second)

	res = Reconcile(Prepare(first, strings.ToLower), Prepare(second, strings.ToLower), Exact())
	assert.Zero(t, res.Unmatched.Count())
}

func TestList_CachesKeepFirstValue(t *testing.T) {
	l := NewList()
	l.Add(Entry{Title: "Heat", Path: "heat.mkv"}, "  heat.mkv")
	l.Add(Entry{Title: "Heat 2", Path: "heat.mkv"}, "heat.mkv")

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, "  heat.mkv", l.RawPath("heat.mkv"))
	assert.Equal(t, "Heat", l.RawTitle("heat.mkv"))
	assert.Equal(t, "missing.mkv", l.RawPath("missing.mkv"))
}

func TestParsePairing(t *testing.T) {
	p, ok := ParsePairing("")
	assert.True(t, ok)
	assert.Equal(t, PairByTitle, p)

	p, ok = ParsePairing("Mutual")
	assert.True(t, ok)
	assert.Equal(t, PairMutual, p)
	assert.Equal(t, "mutual", p.String())

	_, ok = ParsePairing("best")
	assert.False(t, ok)
}

func TestReconcile_ExactSymmetricTitles(t *testing.T) {
	first := newTestList(
		"Heat", "Heat.mkv",
		"Alien", "Alien.mkv",
		"Up", "Up.mkv",
	)
	second := newTestList(
		"Up", "Up.mp4",
		"Heat", "Heat.mp4",
		"Zodiac", "Zodiac.mp4",
	)

	titles := func(res Result) []string {
		var out []string
		for _, m := range res.Matches {
			out = append(out, m.CanonicalTitle)
		}
		return out
	}

	forward := Reconcile(prepare(first), prepare(second), Exact())
	backward := Reconcile(prepare(second), prepare(first), Exact())

	assert.Equal(t, []string{"heat", "up"}, titles(forward))
	assert.Equal(t, titles(forward), titles(backward))
	assert.Equal(t, forward.Unmatched.First, backward.Unmatched.Second)
}
