// Package compare runs a full list comparison: load, normalize, reconcile
// and write the report.
package compare

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Nomadcxx/jellydiff/internal/config"
	"github.com/Nomadcxx/jellydiff/internal/reconcile"
	"github.com/Nomadcxx/jellydiff/internal/similarity"
	"go.uber.org/multierr"
)

const (
	MinCutoff = 1
	MaxCutoff = 100
)

// Options describes one comparison run.
type Options struct {
	FirstList  string
	SecondList string
	Algorithm  string
	Cutoff     int
	Pairing    string
	OutputDir  string
	// ErrorLog is resolved against OutputDir unless absolute. Empty
	// disables it.
	ErrorLog string
	Workers  int

	// Console receives progress bars and the summary. Nil discards them.
	Console io.Writer
}

// OptionsFromConfig fills Options with the configured defaults.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return Options{
		Algorithm: cfg.Compare.Algorithm,
		Cutoff:    cfg.Compare.Cutoff,
		Pairing:   cfg.Compare.Pairing,
		OutputDir: cfg.Compare.OutputDir,
		ErrorLog:  cfg.Compare.ErrorLog,
		Workers:   cfg.Compare.Workers,
	}
}

// InputError collects every problem found in the options.
type InputError struct {
	err error
}

func (e *InputError) Error() string {
	return strings.Join(e.Messages(), "; ")
}

// Messages returns the individual problems in the order they were found.
func (e *InputError) Messages() []string {
	errs := multierr.Errors(e.err)
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return msgs
}

func (e *InputError) Unwrap() []error {
	return multierr.Errors(e.err)
}

// Validate reports every invalid option at once as an *InputError.
func (o Options) Validate() error {
	var err error

	if !isFile(o.FirstList) {
		err = multierr.Append(err, errors.New("First list path is invalid."))
	}
	if !isFile(o.SecondList) {
		err = multierr.Append(err, errors.New("Second list path is invalid."))
	}
	if _, ok := similarity.Lookup(o.Algorithm); !ok {
		err = multierr.Append(err, fmt.Errorf("Invalid algorithm. Must be one of the following: %s.",
			strings.Join(similarity.Names(), ", ")))
	}
	if o.Cutoff < MinCutoff || o.Cutoff > MaxCutoff {
		err = multierr.Append(err, fmt.Errorf("Invalid cutoff. Must be %d-%d.", MinCutoff, MaxCutoff))
	}
	if _, ok := reconcile.ParsePairing(o.Pairing); !ok {
		err = multierr.Append(err, fmt.Errorf("Invalid pairing. Must be one of the following: %s, %s.",
			reconcile.PairByTitle, reconcile.PairMutual))
	}
	if o.Workers < 0 {
		err = multierr.Append(err, errors.New("Invalid workers. Must be 0 or more."))
	}

	if err != nil {
		return &InputError{err: err}
	}
	return nil
}

// Mode translates the algorithm options into a reconcile mode. The options
// must be valid.
func (o Options) Mode() reconcile.Mode {
	alg, _ := similarity.Lookup(o.Algorithm)
	if alg.Name == similarity.DirectName {
		return reconcile.Exact()
	}

	mode := reconcile.Approximate(alg.Score, o.Cutoff)
	mode.Pairing, _ = reconcile.ParsePairing(o.Pairing)
	mode.Workers = o.Workers
	return mode
}

// errorLogPath returns where extraction failures are appended.
func (o Options) errorLogPath() string {
	if o.ErrorLog == "" || filepath.IsAbs(o.ErrorLog) {
		return o.ErrorLog
	}
	dir := o.OutputDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, o.ErrorLog)
}

func isFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
