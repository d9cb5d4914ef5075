package naming

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MovieInfo is what the parser could recover from a movie filename.
type MovieInfo struct {
	Title string
	Year  string
}

// ParseError is returned when no title can be recovered from a filename.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not extract movie title from %q: %s", e.Input, e.Reason)
}

var (
	yearRegex       = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	yearParenRegex  = regexp.MustCompile(`\((\d{4})\)`)
	extensionRegex  = regexp.MustCompile(`(?i)\.(mkv|mp4|m4v|avi|mov|wmv|mpe?g|ts|m2ts|iso|webm|flv|vob|divx|ogm|3gp|rmvb)$`)
	annotationRegex = regexp.MustCompile(`\([^)]*\)`)
	bracketRegex    = regexp.MustCompile(`\[[^\]]*\]`)
	yearBracketRe   = regexp.MustCompile(`\[(\d{4})\]`)
	channelRegex    = regexp.MustCompile(`\b\d\.\d\b`)
	groupSuffixRe   = regexp.MustCompile(`-[A-Za-z0-9]+$`)
	spaceRegex      = regexp.MustCompile(`\s+`)
	releasePatterns []*regexp.Regexp
)

func init() {
	patterns := []string{
		`\b\d{3,4}[pi]\b`,
		`\b(4K|UHD)\b`,
		`\b(HDR10\+?|HDR|DoVi|DV)\b`,
		`\b(DTS HD|DTS X|DTS|TrueHD|Atmos|AAC|AC3|DD\+?|DDP|FLAC)\b`,
		`\b(BluRay|Blu ray|BDRip|REMUX|WEB DL|WEBDL|WEBRip|WEB)\b`,
		`\b(HDTV|DVDRip|DVD)\b`,
		`\b(AMZN|NF|ATVP|HULU)\b`,
		`\b(x264|x265|HEVC|AVC|H\.?264|H\.?265)\b`,
		`\b(PROPER|REPACK|iNTERNAL|LIMITED|EXTENDED)\b`,
		`\b(DUAL|DL|MULTI|DUB|SUBS)\b`,
		`\b(RARBG|YTS|YIFY)\b`,
		`\bv\d+\b`,
		`\b(8bit|10bit|12bit)\b`,
	}

	releasePatterns = make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		releasePatterns = append(releasePatterns, regexp.MustCompile(`(?i)`+pattern))
	}
}

// ParseMovieName extracts a title and year from a movie path. Only the base
// name is considered; both / and \ are treated as separators so listings
// produced on Windows parse the same way.
//
//	"The.Matrix.1999.1080p.BluRay.x264-GROUP.mkv" -> {Title: "The Matrix", Year: "1999"}
//	"2001 The Matrix.mkv"                         -> {Title: "2001 The Matrix"}
func ParseMovieName(path string) (*MovieInfo, error) {
	base := baseName(path)
	base = extensionRegex.ReplaceAllString(base, "")
	if strings.TrimSpace(base) == "" {
		return nil, &ParseError{Input: path, Reason: "empty file name"}
	}

	cleaned := stripReleaseMarkers(base)

	year := extractYear(cleaned)
	if year != "" {
		cleaned = removeYear(cleaned, year)
	}

	cleaned = annotationRegex.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(spaceRegex.ReplaceAllString(cleaned, " "))

	if cleaned == "" {
		return nil, &ParseError{Input: path, Reason: "nothing left after removing release markers"}
	}

	return &MovieInfo{
		Title: cleaned,
		Year:  year,
	}, nil
}

// FormatMovieName renders "Title (Year)", or just the title without a year.
func FormatMovieName(info *MovieInfo) string {
	if info.Year != "" {
		return fmt.Sprintf("%s (%s)", info.Title, info.Year)
	}
	return info.Title
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

func stripReleaseMarkers(s string) string {
	s = yearBracketRe.ReplaceAllString(s, "($1)")
	s = bracketRegex.ReplaceAllString(s, " ")
	s = channelRegex.ReplaceAllString(s, " ")
	if isSceneName(s) {
		s = groupSuffixRe.ReplaceAllString(s, "")
	}

	s = strings.ReplaceAll(s, ".", " ")
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")

	for _, re := range releasePatterns {
		s = re.ReplaceAllString(s, " ")
	}

	return s
}

// extractYear prefers a parenthesized year, then the last plausible bare
// year. A year in the leading word is part of the title ("1917", "2001 A
// Space Odyssey") and is never taken.
func extractYear(s string) string {
	if match := yearParenRegex.FindStringSubmatch(s); len(match) > 1 {
		return match[1]
	}

	trimmed := strings.TrimLeft(s, " ")
	offset := len(s) - len(trimmed)
	firstWordEnd := offset + len(trimmed)
	if i := strings.IndexByte(trimmed, ' '); i >= 0 {
		firstWordEnd = offset + i
	}

	locs := yearRegex.FindAllStringIndex(s, -1)
	for i := len(locs) - 1; i >= 0; i-- {
		if locs[i][0] < firstWordEnd {
			continue
		}
		year := s[locs[i][0]:locs[i][1]]
		if n, err := strconv.Atoi(year); err == nil && n >= 1900 && n <= 2099 {
			return year
		}
	}

	return ""
}

// isSceneName reports dot-separated release names ("Movie.2010.1080p-GRP"),
// the only form where a trailing -WORD is a release group rather than part
// of the title ("Spider-Man").
func isSceneName(s string) bool {
	return !strings.Contains(s, " ") && strings.Contains(s, ".")
}

// removeYear drops the year that extractYear picked. A bare year is removed
// only at its last position so a leading title year survives.
func removeYear(s, year string) string {
	s = " " + s + " "
	s = strings.ReplaceAll(s, "("+year+")", " ")
	s = strings.ReplaceAll(s, "["+year+"]", " ")
	bare := " " + year + " "
	if i := strings.LastIndex(s, bare); i > 0 {
		s = s[:i] + " " + s[i+len(bare):]
	}
	return s
}

// Extractor exposes ParseMovieName as a value for callers that take an
// extractor interface.
type Extractor struct{}

func (Extractor) Extract(path string) (*MovieInfo, error) {
	return ParseMovieName(path)
}
