// Package report renders reconciliation results to text files and prints
// the console summary.
package report

import (
	"strings"

	"github.com/Nomadcxx/jellydiff/internal/reconcile"
)

// FormatRecords renders match records as blocks separated by a blank line:
//
//	Heat
//	First list:
//	/movies/Heat (1995).mkv
//	Second list:
//	/backup/Heat.mp4
func FormatRecords(records []reconcile.MatchRecord) string {
	blocks := make([]string, 0, len(records))
	for _, rec := range records {
		var sb strings.Builder
		sb.WriteString(rec.DisplayTitle)
		sb.WriteString("\nFirst list:\n")
		sb.WriteString(strings.Join(rec.FirstPaths, "\n"))
		sb.WriteString("\nSecond list:\n")
		sb.WriteString(strings.Join(rec.SecondPaths, "\n"))
		blocks = append(blocks, sb.String())
	}
	return strings.Join(blocks, "\n\n")
}

// FormatUnmatched renders the unmatched paths as a "First list:" group and a
// "Second list:" group separated by a blank line. Empty groups are left out.
func FormatUnmatched(u reconcile.Unmatched) string {
	var groups []string
	if len(u.First) > 0 {
		groups = append(groups, "First list:\n"+strings.Join(u.First, "\n"))
	}
	if len(u.Second) > 0 {
		groups = append(groups, "Second list:\n"+strings.Join(u.Second, "\n"))
	}
	return strings.Join(groups, "\n\n")
}
