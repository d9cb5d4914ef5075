// Package movielist reads movie list files into reconcile lists.
package movielist

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Nomadcxx/jellydiff/internal/logging"
	"github.com/Nomadcxx/jellydiff/internal/naming"
	"github.com/Nomadcxx/jellydiff/internal/reconcile"
)

// maxLineSize bounds a single list line.
const maxLineSize = 1024 * 1024

// Extractor recovers movie information from a sanitized path.
type Extractor interface {
	Extract(path string) (*naming.MovieInfo, error)
}

// Failure is a line the extractor rejected.
type Failure struct {
	Line int
	Raw  string
	Err  error
}

// Result is a loaded list together with what was left out of it.
type Result struct {
	Name     string
	List     *reconcile.List
	Lines    int
	Blank    int
	Failures []Failure
}

// Loader turns list files into reconcile lists.
type Loader struct {
	extractor Extractor
	logger    *logging.Logger

	// ErrorLog receives the raw line of every extraction failure, one per
	// line, appended. Empty disables it.
	ErrorLog string
	// Progress, when set, is called after each processed line.
	Progress func(done, total int)
}

func NewLoader(extractor Extractor, logger *logging.Logger) *Loader {
	if extractor == nil {
		extractor = naming.Extractor{}
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Loader{extractor: extractor, logger: logger}
}

// LoadFile reads the list at path.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open list: %w", err)
	}
	defer f.Close()

	return l.Load(ctx, f, path)
}

// Load reads a list from r. name identifies the list in logs.
func (l *Loader) Load(ctx context.Context, r io.Reader, name string) (*Result, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read list %s: %w", name, err)
	}

	res := &Result{
		Name:  name,
		List:  reconcile.NewList(),
		Lines: len(lines),
	}

	errLog := &errorLog{path: l.ErrorLog}
	defer func() {
		if err := errLog.Close(); err != nil {
			l.logger.Warn("movielist", "Failed to close error log", logging.F("path", l.ErrorLog), logging.F("error", err.Error()))
		}
	}()

	for i, raw := range lines {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		l.addLine(res, errLog, i+1, raw)

		if l.Progress != nil {
			l.Progress(i+1, len(lines))
		}
	}

	l.logger.Info("movielist", "Loaded list",
		logging.F("list", filepath.Base(name)),
		logging.F("lines", res.Lines),
		logging.F("entries", res.List.Len()),
		logging.F("failed", len(res.Failures)))

	return res, nil
}

func (l *Loader) addLine(res *Result, errLog *errorLog, lineNo int, raw string) {
	if strings.TrimSpace(raw) == "" {
		res.Blank++
		return
	}

	path := Sanitize(raw)
	info, err := l.extractor.Extract(path)
	if err == nil && info == nil {
		err = &naming.ParseError{Input: path, Reason: "no result"}
	}
	if err != nil {
		res.Failures = append(res.Failures, Failure{Line: lineNo, Raw: raw, Err: err})
		l.logger.Debug("movielist", "Skipping line",
			logging.F("list", filepath.Base(res.Name)),
			logging.F("line", lineNo),
			logging.F("reason", err.Error()))
		if werr := errLog.Append(raw); werr != nil {
			l.logger.Warn("movielist", "Failed to write error log",
				logging.F("path", l.ErrorLog),
				logging.F("error", werr.Error()))
		}
		return
	}

	l.logger.Debug("movielist", "Parsed line",
		logging.F("list", filepath.Base(res.Name)),
		logging.F("line", lineNo),
		logging.F("movie", naming.FormatMovieName(info)))
	res.List.Add(reconcile.Entry{Title: info.Title, Path: path}, raw)
}

func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	return lines, scanner.Err()
}

// errorLog opens its file on the first append.
type errorLog struct {
	path string
	file *os.File
}

func (e *errorLog) Append(line string) error {
	if e.path == "" {
		return nil
	}
	if e.file == nil {
		if dir := filepath.Dir(e.path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}
		f, err := os.OpenFile(e.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		e.file = f
	}
	_, err := e.file.WriteString(line + "\n")
	return err
}

func (e *errorLog) Close() error {
	if e.file == nil {
		return nil
	}
	err := e.file.Close()
	e.file = nil
	return err
}
