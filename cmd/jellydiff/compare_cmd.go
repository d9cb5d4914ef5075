package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Nomadcxx/jellydiff/internal/compare"
	"github.com/Nomadcxx/jellydiff/internal/config"
	"github.com/Nomadcxx/jellydiff/internal/similarity"
	"github.com/Nomadcxx/jellydiff/internal/ui"
	"github.com/spf13/cobra"
)

type compareFlags struct {
	firstList  string
	secondList string
	algorithm  string
	cutoff     int
	pairing    string
	directory  string
	errorsFile string
	workers    int
}

func newCompareCmd() *cobra.Command {
	var f compareFlags

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two movie lists",
		Long: fmt.Sprintf(`Compare two movie lists and write matches.txt, unmatched.txt and
collisions.txt to the destination directory.

Algorithms: %s.
"direct" compares titles exactly; the others are fuzzy and use --cutoff.

Examples:
  jellydiff compare -f library.txt -s backup.txt
  jellydiff compare -f library.txt -s backup.txt -a tokensort -c 90 -d reports
  jellydiff compare -f a.txt -s b.txt -a defaultratio -c 80 --pairing mutual`,
			strings.Join(similarity.Names(), ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := compareOptions(cmd, f, appConfig)
			opts.Console = cmd.OutOrStdout()

			_, err := compare.Run(cmd.Context(), opts, logger)
			if err == nil {
				return nil
			}

			var inputErr *compare.InputError
			if errors.As(err, &inputErr) {
				printErrors(cmd.ErrOrStderr(), inputErr.Messages())
				return reportedError{err}
			}
			logger.Error("compare", "Run failed", err)
			ui.ErrorMsg(cmd.ErrOrStderr(), "%v", err)
			return reportedError{err}
		},
	}

	cmd.Flags().StringVarP(&f.firstList, "first-list", "f", "", "the file path to the first list")
	cmd.Flags().StringVarP(&f.secondList, "second-list", "s", "", "the file path to the second list")
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", "direct", "the name of the comparison algorithm")
	cmd.Flags().IntVarP(&f.cutoff, "cutoff", "c", 75, "the cutoff for fuzzy comparison algorithms (1-100)")
	cmd.Flags().StringVar(&f.pairing, "pairing", "title", "fuzzy pairing rule: title or mutual")
	cmd.Flags().StringVarP(&f.directory, "directory", "d", ".", "the destination directory for the generated files")
	cmd.Flags().StringVar(&f.errorsFile, "errors-file", "Errors.txt", "where unparseable lines are appended (relative to --directory)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "parallel similarity searches (0 = number of CPUs)")

	return cmd
}

// compareOptions starts from the configured defaults and applies only the
// flags given on the command line.
func compareOptions(cmd *cobra.Command, f compareFlags, cfg *config.Config) compare.Options {
	opts := compare.OptionsFromConfig(cfg)
	opts.FirstList = f.firstList
	opts.SecondList = f.secondList

	flags := cmd.Flags()
	if flags.Changed("algorithm") {
		opts.Algorithm = f.algorithm
	}
	if flags.Changed("cutoff") {
		opts.Cutoff = f.cutoff
	}
	if flags.Changed("pairing") {
		opts.Pairing = f.pairing
	}
	if flags.Changed("directory") {
		opts.OutputDir = f.directory
	}
	if flags.Changed("errors-file") {
		opts.ErrorLog = f.errorsFile
	}
	if flags.Changed("workers") {
		opts.Workers = f.workers
	}
	return opts
}

func printErrors(w io.Writer, msgs []string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.Error("ERROR(S):"))
	for _, m := range msgs {
		fmt.Fprintln(w, "  "+m)
	}
}
