package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/parsekit/parsekit/internal/arena"
	"github.com/parsekit/parsekit/internal/jsparser"
	"github.com/parsekit/parsekit/internal/logger"
	"github.com/parsekit/parsekit/internal/semantic"
	"github.com/parsekit/parsekit/internal/source"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [files...]",
		Short: "Parse and analyze the given files, printing any diagnostics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args)
		},
	}
}

func runCheck(cmd *cobra.Command, paths []string) error {
	w := cmd.OutOrStdout()
	reporter := newReporter(w)

	exitErr := false
	for _, path := range paths {
		ok, err := checkOne(reporter, path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			exitErr = true
			continue
		}
		if !ok {
			exitErr = true
		}
	}

	if exitErr {
		return errCheckFailed
	}
	return nil
}

var errCheckFailed = fmt.Errorf("one or more files failed to check")

// checkOne runs one file through the full pipeline — source classification,
// parsing, semantic analysis — and reports its diagnostics and summary.
// The bool result is false when the file had any error-severity diagnostic,
// so the caller can decide the process's exit status without checking err.
func checkOne(r *reporter, path string) (bool, error) {
	st, err := source.FromPath(path)
	if err != nil {
		return false, err
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	a := arena.New()
	sink := logger.NewSink()

	parseOpts := jsparser.Options{
		AllowReturnOutsideFunction: cfg.AllowReturnOutsideFunction,
		RecordComments:             cfg.RecordComments,
	}
	res := jsparser.Parse(a, sink, string(contents), st, parseOpts)

	var model *semantic.Model
	if !sink.HasErrors() {
		semOpts := semantic.Options{
			BuildCFG:            cfg.BuildCFG,
			SuggestSimilarNames: cfg.SuggestSimilarNames,
		}
		model = semantic.Build(a, sink, res.Program, semOpts)
	}

	r.reportFile(path, string(contents), sink.Diagnostics())
	r.reportSummary(path, res, model)

	return !sink.HasErrors(), nil
}
