package similarity

import (
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/hbollon/go-edlib"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Scorer rates how alike two strings are, from 0 to 100.
type Scorer func(a, b string) int

// Direct scores 100 for byte-equal strings and 0 otherwise.
func Direct(a, b string) int {
	if a == "" || b == "" || a != b {
		return 0
	}
	return 100
}

// Ratio is the indel similarity of a and b.
func Ratio(a, b string) int {
	return round(ratio(a, b))
}

func ratio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	return 200 * float64(edlib.LCS(a, b)) / float64(total)
}

// PartialRatio is the best Ratio of the shorter string against any window
// of the longer string with the same length.
func PartialRatio(a, b string) int {
	return round(partialRatio(a, b))
}

func partialRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == len(long) {
		return ratio(a, b)
	}

	s := string(short)
	best := 0.0
	for i := 0; i+len(short) <= len(long); i++ {
		r := ratio(s, string(long[i:i+len(short)]))
		if r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

// TokenSort compares the strings after sorting their whitespace tokens.
func TokenSort(a, b string) int {
	return round(ratio(sortedTokens(a), sortedTokens(b)))
}

// PartialTokenSort is TokenSort using PartialRatio.
func PartialTokenSort(a, b string) int {
	return round(partialRatio(sortedTokens(a), sortedTokens(b)))
}

// TokenSet compares the shared tokens against each side's shared+remaining
// tokens, so "matrix reloaded" and "matrix" rate highly.
func TokenSet(a, b string) int {
	return round(tokenSet(a, b, ratio))
}

// PartialTokenSet is TokenSet using PartialRatio. Any shared token scores 100.
func PartialTokenSet(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	ta, tb := tokenSetOf(a), tokenSetOf(b)
	for t := range ta {
		if _, ok := tb[t]; ok {
			return 100
		}
	}
	return round(tokenSet(a, b, partialRatio))
}

func tokenSet(a, b string, base func(string, string) float64) float64 {
	if a == "" || b == "" {
		return 0
	}

	ta, tb := tokenSetOf(a), tokenSetOf(b)
	var inter, onlyA, onlyB []string
	for t := range ta {
		if _, ok := tb[t]; ok {
			inter = append(inter, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range tb {
		if _, ok := ta[t]; !ok {
			onlyB = append(onlyB, t)
		}
	}
	slices.Sort(inter)
	slices.Sort(onlyA)
	slices.Sort(onlyB)

	sect := strings.Join(inter, " ")
	combinedA := strings.TrimSpace(sect + " " + strings.Join(onlyA, " "))
	combinedB := strings.TrimSpace(sect + " " + strings.Join(onlyB, " "))

	return max(base(sect, combinedA), base(sect, combinedB), base(combinedA, combinedB))
}

// TokenAbbreviation also tries the side with fewer tokens, run together, as
// the initials of the other ("lotr" vs "lord of the rings").
func TokenAbbreviation(a, b string) int {
	return round(tokenAbbreviation(a, b, ratio))
}

// PartialTokenAbbreviation is TokenAbbreviation using PartialRatio.
func PartialTokenAbbreviation(a, b string) int {
	return round(tokenAbbreviation(a, b, partialRatio))
}

func tokenAbbreviation(a, b string, base func(string, string) float64) float64 {
	sorted := base(sortedTokens(a), sortedTokens(b))

	fa, fb := strings.Fields(a), strings.Fields(b)
	short, long := fa, fb
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 || len(short) >= len(long) {
		return sorted
	}

	var initials strings.Builder
	for _, t := range long {
		r, _ := utf8.DecodeRuneInString(t)
		initials.WriteRune(r)
	}
	return max(sorted, base(strings.Join(short, ""), initials.String()))
}

// Weighted picks the best of the other strategies, scaled down according
// to how different the string lengths are.
func Weighted(a, b string) int {
	if a == "" || b == "" {
		return 0
	}

	la, lb := float64(utf8.RuneCountInString(a)), float64(utf8.RuneCountInString(b))
	lenRatio := max(la, lb) / min(la, lb)

	best := ratio(a, b)
	if lenRatio < 1.5 {
		best = max(best,
			ratio(sortedTokens(a), sortedTokens(b))*0.95,
			tokenSet(a, b, ratio)*0.95,
		)
		return round(best)
	}

	scale := 0.9
	if lenRatio >= 8 {
		scale = 0.6
	}
	best = max(best,
		partialRatio(a, b)*scale,
		partialRatio(sortedTokens(a), sortedTokens(b))*0.95*scale,
		float64(PartialTokenSet(a, b))*0.95*scale,
	)
	return round(best)
}

// Levenshtein is 1 - distance/maxlen, using edit distance with unit costs.
func Levenshtein(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	d := levenshtein.ComputeDistance(a, b)
	return round(100 * float64(maxLen-d) / float64(maxLen))
}

// JaroWinkler favours strings sharing a prefix.
func JaroWinkler(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	return round(100 * float64(edlib.JaroWinklerSimilarity(a, b)))
}

// Subsequence scores the shorter string as an in-order subsequence of the
// longer one, penalised by the characters it skips. Non-subsequences score 0.
func Subsequence(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	short, long := a, b
	if utf8.RuneCountInString(short) > utf8.RuneCountInString(long) {
		short, long = long, short
	}
	rank := fuzzy.RankMatch(short, long)
	if rank < 0 {
		return 0
	}
	n := utf8.RuneCountInString(long)
	return round(100 * float64(max(n-rank, 0)) / float64(n))
}

func sortedTokens(s string) string {
	tokens := strings.Fields(s)
	slices.Sort(tokens)
	return strings.Join(tokens, " ")
}

func tokenSetOf(s string) map[string]struct{} {
	tokens := strings.Fields(s)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func round(f float64) int {
	return int(math.RoundToEven(f))
}
