package reconcile

import (
	"github.com/Nomadcxx/jellydiff/internal/similarity"
	"github.com/sourcegraph/conc/iter"
)

// matchApproximate runs the similarity search from each list into the other
// and combines the two directions according to mode.Pairing.
func matchApproximate(first, second Side, mode Mode) *builder {
	// firstToSecond: first-list title -> second-list entries within cutoff.
	// secondToFirst: second-list title -> first-list entries within cutoff.
	firstToSecond := search(first, second, mode)
	secondToFirst := search(second, first, mode)

	if mode.Pairing == PairMutual {
		return pairMutual(first, second, firstToSecond, secondToFirst)
	}
	return pairByTitle(first, second, firstToSecond, secondToFirst)
}

func pairByTitle(first, second Side, firstToSecond, secondToFirst *groups) *builder {
	b := newBuilder()
	for _, title := range firstToSecond.sortedKeys() {
		fromSecond, ok := secondToFirst.get(title)
		if !ok {
			continue
		}
		fromFirst, _ := firstToSecond.get(title)

		b.put(MatchRecord{
			CanonicalTitle: title,
			DisplayTitle:   first.List.RawTitle(first.path(fromSecond[0])),
			FirstPaths:     rawPaths(first, distinctPaths(first, fromSecond)),
			SecondPaths:    rawPaths(second, distinctPaths(second, fromFirst)),
			Collision:      len(fromFirst) > 1 || len(fromSecond) > 1,
		})
	}
	return b
}

func pairMutual(first, second Side, firstToSecond, secondToFirst *groups) *builder {
	// reverse[secondTitle] = set of first-list titles it reached.
	reverse := make(map[string]map[string]struct{}, len(secondToFirst.order))
	for _, st := range secondToFirst.order {
		idx, _ := secondToFirst.get(st)
		set := make(map[string]struct{}, len(idx))
		for _, i := range idx {
			set[first.Titles[i]] = struct{}{}
		}
		reverse[st] = set
	}

	fg := groupByTitle(first)
	b := newBuilder()
	b.secondTitles = make(map[string]struct{})

	for _, title := range firstToSecond.sortedKeys() {
		hits, _ := firstToSecond.get(title)

		seen := make(map[int]struct{}, len(hits))
		var paired []int
		for _, j := range hits {
			if _, dup := seen[j]; dup {
				continue
			}
			seen[j] = struct{}{}
			if _, ok := reverse[second.Titles[j]][title]; ok {
				paired = append(paired, j)
			}
		}
		if len(paired) == 0 {
			continue
		}

		own, _ := fg.get(title)
		b.put(MatchRecord{
			CanonicalTitle: title,
			DisplayTitle:   first.List.RawTitle(first.path(own[0])),
			FirstPaths:     rawPaths(first, distinctPaths(first, own)),
			SecondPaths:    rawPaths(second, distinctPaths(second, paired)),
			Collision:      len(own) > 1 || len(paired) > 1,
		})
		for _, j := range paired {
			b.secondTitles[second.Titles[j]] = struct{}{}
		}
	}
	return b
}

// search scores every title of src against all titles of dst. Each distinct
// src title is searched once, on up to mode.Workers goroutines; the hits
// are then replayed in src entry order, so the groups come out exactly as a
// sequential entry-by-entry search would build them.
func search(src, dst Side, mode Mode) *groups {
	distinct := groupByTitle(src).order

	mapper := iter.Mapper[string, []similarity.Hit]{MaxGoroutines: mode.Workers}
	results := mapper.Map(distinct, func(title *string) []similarity.Hit {
		return similarity.Search(*title, dst.Titles, mode.Scorer, mode.Cutoff)
	})

	hitsByTitle := make(map[string][]similarity.Hit, len(distinct))
	for i, title := range distinct {
		hitsByTitle[title] = results[i]
	}

	g := newGroups()
	for _, title := range src.Titles {
		for _, h := range hitsByTitle[title] {
			g.add(title, h.Index)
		}
	}
	return g
}
