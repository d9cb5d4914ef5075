package reconcile

// matchExact pairs entries with byte-equal canonical titles. Both lists are
// grouped once, so the cost is linear in the list sizes.
func matchExact(first, second Side) *builder {
	fg := groupByTitle(first)
	sg := groupByTitle(second)

	b := newBuilder()
	for _, title := range fg.order {
		sIdx, ok := sg.get(title)
		if !ok {
			continue
		}
		fIdx, _ := fg.get(title)

		b.put(MatchRecord{
			CanonicalTitle: title,
			DisplayTitle:   first.List.RawTitle(first.path(fIdx[0])),
			FirstPaths:     rawPaths(first, distinctPaths(first, fIdx)),
			SecondPaths:    rawPaths(second, distinctPaths(second, sIdx)),
			Collision:      len(fIdx) > 1 || len(sIdx) > 1,
		})
	}
	return b
}
