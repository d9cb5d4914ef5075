package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Nomadcxx/jellydiff/internal/logging"
	"github.com/Nomadcxx/jellydiff/internal/reconcile"
	"github.com/gofrs/flock"
)

const (
	MatchesFile    = "matches.txt"
	UnmatchedFile  = "unmatched.txt"
	CollisionsFile = "collisions.txt"

	lockFile = ".jellydiff.lock"
)

// ErrLocked is returned when another run holds the output directory.
var ErrLocked = errors.New("output directory is in use by another jellydiff run")

// WriteError is a failure to save one output file. The other files are
// still written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("Error when saving to %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Outcome lists what a Write produced.
type Outcome struct {
	Dir    string
	Files  []string
	Errors []*WriteError
}

// Writer saves results into a directory.
type Writer struct {
	dir    string
	logger *logging.Logger
}

// NewWriter returns a Writer that creates its files in dir.
func NewWriter(dir string, logger *logging.Logger) *Writer {
	if dir == "" {
		dir = "."
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Writer{dir: dir, logger: logger}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Write saves matches.txt, unmatched.txt and collisions.txt, each only when
// it has content. Nothing is created when the result is empty. The
// directory is created when missing and locked for the duration of the
// write.
func (w *Writer) Write(res reconcile.Result) (*Outcome, error) {
	out := &Outcome{Dir: w.dir}

	type file struct {
		name    string
		content string
	}
	var files []file
	if len(res.Matches) > 0 {
		files = append(files, file{MatchesFile, FormatRecords(res.Matches)})
	}
	if res.Unmatched.Count() > 0 {
		files = append(files, file{UnmatchedFile, FormatUnmatched(res.Unmatched)})
	}
	if len(res.Collisions) > 0 {
		files = append(files, file{CollisionsFile, FormatRecords(res.Collisions)})
	}
	if len(files) == 0 {
		w.logger.Info("report", "Nothing to save", logging.F("dir", w.dir))
		return out, nil
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return nil, fmt.Errorf("unable to create output directory: %w", err)
	}

	lock := flock.New(filepath.Join(w.dir, lockFile))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			w.logger.Warn("report", "Failed to release output lock", logging.F("error", err.Error()))
		}
	}()

	for _, f := range files {
		path := filepath.Join(w.dir, f.name)
		if err := os.WriteFile(path, []byte(f.content), 0644); err != nil {
			w.logger.Error("report", "Failed to save output file", err, logging.F("path", path))
			out.Errors = append(out.Errors, &WriteError{Path: path, Err: err})
			continue
		}
		w.logger.Info("report", "Saved output file",
			logging.F("path", path),
			logging.F("bytes", len(f.content)))
		out.Files = append(out.Files, path)
	}

	return out, nil
}
