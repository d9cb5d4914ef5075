package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/Nomadcxx/jellydiff/internal/reconcile"
	"github.com/Nomadcxx/jellydiff/internal/ui"
)

// PrintSummary writes the RESULT(S) block: one row per non-empty category
// with the file it was saved to, followed by any write errors.
func PrintSummary(w io.Writer, stats reconcile.Stats, out *Outcome) {
	if stats.Matches == 0 && stats.Unmatched == 0 && stats.Collisions == 0 {
		fmt.Fprintln(w)
		ui.InfoMsg(w, "No matches, unmatched or collisions to save.")
		return
	}

	dir := "."
	if out != nil {
		dir = out.Dir
	}

	var rows [][]string
	add := func(n int, singular, plural, file string) {
		if n == 0 {
			return
		}
		rows = append(rows, []string{
			ui.Plural(n, singular, plural),
			ui.Path(filepath.Join(dir, file)),
		})
	}
	add(stats.Matches, "match", "matches", MatchesFile)
	add(stats.Unmatched, "unmatched", "unmatched", UnmatchedFile)
	add(stats.Collisions, "collision", "collisions", CollisionsFile)

	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.Action("RESULT(S):"))
	fmt.Fprintln(w, ui.RenderTable([]string{"Result", "File"}, rows, []ui.Alignment{ui.AlignRight, ui.AlignLeft}))

	if out == nil {
		return
	}
	for _, werr := range out.Errors {
		ui.ErrorMsg(w, "%s", werr.Error())
	}
}
