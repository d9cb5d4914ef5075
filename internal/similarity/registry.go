package similarity

// Algorithm is a named scorer selectable from the command line.
type Algorithm struct {
	Name        string
	Description string
	Score       Scorer
}

// DirectName selects byte-equal matching of canonical titles.
const DirectName = "direct"

var algorithms = []Algorithm{
	{DirectName, "exact canonical title equality", Direct},
	{"defaultratio", "character similarity of the whole titles", Ratio},
	{"partialratio", "best character similarity of the shorter title inside the longer", PartialRatio},
	{"tokenset", "shared words against each title's remaining words", TokenSet},
	{"partialtokenset", "tokenset with partial matching; any shared word scores 100", PartialTokenSet},
	{"tokensort", "character similarity after sorting the words", TokenSort},
	{"partialtokensort", "tokensort with partial matching", PartialTokenSort},
	{"tokenabbreviation", "tokensort, or one title as the initials of the other", TokenAbbreviation},
	{"partialtokenabbreviation", "tokenabbreviation with partial matching", PartialTokenAbbreviation},
	{"weighted", "best of the above, weighted by length difference", Weighted},
	{"levenshtein", "1 - edit distance / longest length", Levenshtein},
	{"jarowinkler", "Jaro-Winkler similarity, favouring shared prefixes", JaroWinkler},
	{"subsequence", "shorter title as an in-order subsequence of the longer", Subsequence},
}

// Lookup finds an algorithm by name.
func Lookup(name string) (Algorithm, bool) {
	for _, a := range algorithms {
		if a.Name == name {
			return a, true
		}
	}
	return Algorithm{}, false
}

// Algorithms returns every registered algorithm in display order.
func Algorithms() []Algorithm {
	out := make([]Algorithm, len(algorithms))
	copy(out, algorithms)
	return out
}

// Names returns the registered algorithm names in display order.
func Names() []string {
	names := make([]string, len(algorithms))
	for i, a := range algorithms {
		names[i] = a.Name
	}
	return names
}

// Hit is a candidate that reached the cutoff.
type Hit struct {
	Index int
	Score int
}

// Search scores query against every candidate and returns those scoring at
// least cutoff, in candidate order.
func Search(query string, candidates []string, score Scorer, cutoff int) []Hit {
	var hits []Hit
	for i, c := range candidates {
		if s := score(query, c); s >= cutoff {
			hits = append(hits, Hit{Index: i, Score: s})
		}
	}
	return hits
}
