package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/asymptote/analysis"
	"github.com/arloliu/asymptote/errs"
	"github.com/arloliu/asymptote/pipeline"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		tableName string
		algorithm string
		tail      int
		noRank    bool
	)

	cmd := &cobra.Command{
		Use:     "analyze",
		Aliases: []string{"complexity"},
		Short:   "Run the power, ratio and constants tests on stored results",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("tail") {
				a.cfg.Analysis.StabilizationTail = tail
			}
			if noRank {
				a.cfg.Analysis.Rank = false
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			s, err := a.session()
			if err != nil {
				return err
			}

			opts := []analysis.Option{
				analysis.WithStabilizationTail(a.cfg.Analysis.StabilizationTail),
				analysis.WithRanking(a.cfg.Analysis.Rank),
			}
			if algorithm != "" {
				opts = append(opts, analysis.WithAlgorithm(algorithm))
			}

			var rep *analysis.Report
			if tableName == "" || tableName == pipeline.TimesName {
				rep, err = s.Analyze(cmd.Context(), opts...)
			} else {
				rep, err = s.AnalyzeTable(cmd.Context(), tableName, opts...)
			}

			var missing *errs.MissingResultsError
			if errors.As(err, &missing) {
				fmt.Fprintf(a.stdout, "No results found at %s.\nRun \"asymptote measure --suite %s\" first.\n",
					missing.Path, a.cfg.Suite)

				return nil
			}
			if err != nil {
				return err
			}

			return rep.WriteText(a.stdout)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&tableName, "table", "", "stored table to analyze, e.g. StrassenThreshold_threshold_sweep")
	fs.StringVar(&algorithm, "algorithm", "", "attribute every column to this algorithm (for sweep tables)")
	fs.IntVar(&tail, "tail", 0, "trailing ratios used for the stabilization figure, 0 disables")
	fs.BoolVar(&noRank, "no-rank", false, "skip best-fit model ranking")

	return cmd
}
