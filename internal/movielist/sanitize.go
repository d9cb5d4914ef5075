package movielist

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ligatures covers letters that have no decomposition to plain ASCII.
var ligatures = strings.NewReplacer(
	"ß", "ss",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O",
	"đ", "d", "Đ", "D",
	"ł", "l", "Ł", "L",
	"þ", "th", "Þ", "TH",
	"ð", "d", "Ð", "D",
	"ı", "i",
	"‘", "'", "’", "'",
	"“", "", "”", "",
	"–", "-", "—", "-",
)

// FoldASCII maps s to its closest ASCII form: accents are removed,
// compatibility forms are folded and any rune still outside ASCII is dropped.
func FoldASCII(s string) string {
	s = ligatures.Replace(s)

	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, folded)
}

// Sanitize turns a raw list line into the path used as the entry's identity
// key: trimmed, folded to ASCII and stripped of characters that cannot
// appear in a file name. Path separators are kept.
func Sanitize(line string) string {
	s := strings.TrimSpace(FoldASCII(line))
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		switch r {
		case '<', '>', ':', '"', '|', '?', '*':
			return -1
		}
		return r
	}, s)
}
