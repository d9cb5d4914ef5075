package naming

import (
	"strconv"
	"strings"
)

// functionWords are dropped from multi-word titles before comparison.
var functionWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "the", "this", "that", "these", "those",
		"my", "your", "their", "our", "some", "many", "few", "all",
		"and", "but", "or", "so", "because", "although",
		"in", "of", "on", "with", "by", "at", "over", "under",
		"he", "she", "it", "they", "we", "you", "me", "him", "her",
		"is", "am", "are", "was", "were", "has", "have", "had",
		"can", "could", "may", "might", "shall", "should", "will", "would", "must",
		"who", "what", "when", "where", "why", "how",
	} {
		functionWords[w] = struct{}{}
	}
}

// IsFunctionWord reports whether w (lowercase) is in the stop-word set.
func IsFunctionWord(w string) bool {
	_, ok := functionWords[w]
	return ok
}

// Normalize returns the canonical comparison key for a parsed title. The
// passes run in a fixed order, each consuming the previous one's output:
// leading number strip, lowercase, function word filter.
//
//	"2001 The Matrix" -> "the matrix"
//	"The Lord of the Rings" -> "lord rings"
func Normalize(title string) string {
	title = StripYearPrefix(title)
	title = strings.ToLower(title)
	return FilterFunctionWords(title)
}

// StripYearPrefix drops the first space-separated word when it is an
// integer. Only one word is ever removed.
func StripYearPrefix(title string) string {
	words := strings.Split(title, " ")
	if !isInteger(words[0]) {
		return title
	}
	return strings.Join(words[1:], " ")
}

// FilterFunctionWords removes stop words and repeated words from a title of
// two or more words. The result is used only if more than one word
// survives; otherwise the title is returned unchanged.
func FilterFunctionWords(title string) string {
	words := strings.Split(title, " ")
	if len(words) < 2 {
		return title
	}

	seen := make(map[string]struct{}, len(words))
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if IsFunctionWord(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		kept = append(kept, w)
	}

	if len(kept) > 1 {
		return strings.Join(kept, " ")
	}
	return title
}

func isInteger(s string) bool {
	_, err := strconv.ParseInt(s, 10, 32)
	return err == nil
}
