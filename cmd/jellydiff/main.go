package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Nomadcxx/jellydiff/internal/config"
	"github.com/Nomadcxx/jellydiff/internal/logging"
	"github.com/Nomadcxx/jellydiff/internal/ui"
	"github.com/spf13/cobra"
)

var (
	version = "dev" // Set by build flags: -ldflags="-X main.version=1.0.0"
	cfgFile string
	verbose bool
	noColor bool

	appConfig *config.Config
	logger    = logging.Nop()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, newRootCmd()); err != nil {
		stop()
		os.Exit(1)
	}
}

// reportedError marks an error the command has already shown to the user.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// execute runs the command tree and prints any error that was not
// reported on the way out, including flag parse errors.
func execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var reported reportedError
	if !errors.As(err, &reported) {
		ui.ErrorMsg(root.ErrOrStderr(), "%v", err)
	}
	return err
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jellydiff",
		Short: "Compare two movie lists by title",
		Long: `jellydiff compares two lists of movie files (one path per line) and
reports which titles are in both lists, which are only in one, and which
titles map to more than one file.

Titles are extracted from the file names, stripped of a leading year and
common function words, and compared either exactly or with a fuzzy
similarity algorithm.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/jellydiff/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "mirror log output to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newAlgorithmsCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// setup loads the configuration and opens the log file before any
// subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	if noColor || os.Getenv("NO_COLOR") != "" {
		ui.DisableColors()
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		ui.ErrorMsg(cmd.ErrOrStderr(), "%v", err)
		return reportedError{err}
	}
	appConfig = cfg

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	l, err := logging.New(logging.Config{
		Level:      level,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		Console:    verbose,
	})
	if err != nil {
		// Logging is not worth failing the run for.
		ui.WarningMsg(cmd.ErrOrStderr(), "logging disabled: %v", err)
		return nil
	}
	logger = l
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "jellydiff %s\n", version)
		},
	}
}
