package compare

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/Nomadcxx/jellydiff/internal/logging"
	"github.com/Nomadcxx/jellydiff/internal/movielist"
	"github.com/Nomadcxx/jellydiff/internal/naming"
	"github.com/Nomadcxx/jellydiff/internal/reconcile"
	"github.com/Nomadcxx/jellydiff/internal/report"
	"github.com/Nomadcxx/jellydiff/internal/ui"
	"github.com/google/uuid"
)

// ListStats describes how one list was loaded.
type ListStats struct {
	Path    string
	Lines   int
	Entries int
	Blank   int
	Failed  int
}

// Summary is the outcome of a run.
type Summary struct {
	RunID    string
	First    ListStats
	Second   ListStats
	Mode     string
	Result   reconcile.Result
	Stats    reconcile.Stats
	Output   *report.Outcome
	Duration time.Duration
}

// Run compares the two lists described by opts and writes the report.
// Invalid options return an *InputError before any file is read.
func Run(ctx context.Context, opts Options, logger *logging.Logger) (*Summary, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Nop()
	}
	console := opts.Console
	if console == nil {
		console = io.Discard
	}

	start := time.Now()
	sum := &Summary{RunID: uuid.New().String()}
	log := logger.With(logging.F("run_id", sum.RunID))

	mode := opts.Mode()
	sum.Mode = describeMode(opts, mode)

	log.Info("compare", "Starting comparison",
		logging.F("first", opts.FirstList),
		logging.F("second", opts.SecondList),
		logging.F("mode", sum.Mode),
		logging.F("output_dir", opts.OutputDir))

	fmt.Fprintln(console, ui.Dim("Processing..."))

	loader := movielist.NewLoader(naming.Extractor{}, log)
	loader.ErrorLog = opts.errorLogPath()

	first, err := load(ctx, loader, console, "First list ", opts.FirstList)
	if err != nil {
		return nil, err
	}
	second, err := load(ctx, loader, console, "Second list", opts.SecondList)
	if err != nil {
		return nil, err
	}
	sum.First = listStats(first)
	sum.Second = listStats(second)

	if failed := sum.First.Failed + sum.Second.Failed; failed > 0 {
		if loader.ErrorLog != "" {
			ui.WarningMsg(console, "%s could not be parsed, see %s",
				ui.Plural(failed, "line", "lines"), ui.Path(loader.ErrorLog))
		} else {
			ui.WarningMsg(console, "%s could not be parsed", ui.Plural(failed, "line", "lines"))
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sum.Result = reconcile.Reconcile(
		reconcile.Prepare(first.List, naming.Normalize),
		reconcile.Prepare(second.List, naming.Normalize),
		mode,
	)
	sum.Stats = sum.Result.Stats()

	log.Info("compare", "Comparison finished",
		logging.F("matches", sum.Stats.Matches),
		logging.F("unmatched", sum.Stats.Unmatched),
		logging.F("collisions", sum.Stats.Collisions))

	out, err := report.NewWriter(opts.OutputDir, log).Write(sum.Result)
	if err != nil {
		return nil, err
	}
	sum.Output = out

	report.PrintSummary(console, sum.Stats, out)

	sum.Duration = time.Since(start)
	log.Info("compare", "Run complete", logging.F("duration", ui.FormatDuration(sum.Duration)))

	return sum, nil
}

func load(ctx context.Context, loader *movielist.Loader, console io.Writer, label, path string) (*movielist.Result, error) {
	var bar *ui.ProgressBar
	loader.Progress = func(done, total int) {
		if bar == nil {
			bar = ui.NewProgressBar(console, total, label)
		}
		bar.Update(done)
	}
	defer func() { loader.Progress = nil }()

	res, err := loader.LoadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return res, nil
}

func listStats(r *movielist.Result) ListStats {
	return ListStats{
		Path:    r.Name,
		Lines:   r.Lines,
		Entries: r.List.Len(),
		Blank:   r.Blank,
		Failed:  len(r.Failures),
	}
}

func describeMode(opts Options, mode reconcile.Mode) string {
	if mode.IsExact() {
		return "exact"
	}
	return fmt.Sprintf("%s cutoff=%d pairing=%s", opts.Algorithm, mode.Cutoff, mode.Pairing)
}
