// Package similarity provides the named approximate string scorers used to
// compare canonical movie titles.
//
// Every scorer returns an integer in [0, 100]; 100 means the strings are
// considered identical by that strategy. Empty input always scores 0.
//
// The ratio-based scorers build on the longest common subsequence from
// go-edlib: ratio(a, b) = 2*LCS(a, b) / (len(a) + len(b)). Token scorers
// split on whitespace. The partial variants compare the shorter string
// against every equal-length window of the longer one.
package similarity
