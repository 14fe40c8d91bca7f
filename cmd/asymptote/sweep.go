package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/asymptote/growth"
	"github.com/arloliu/asymptote/pipeline"
)

func newSweepCmd(a *app) *cobra.Command {
	var (
		rf        runFlags
		algorithm string
		param     string
		values    []int
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Time one algorithm for each value of a parameter",
		Long: `sweep measures one algorithm once per parameter value, passing
"--<param> <value>" to the program. Each value becomes a column named
"<param>=<value>". Suites that declare a sweep supply the defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			suite, err := growth.Lookup(a.cfg.Suite)
			if err != nil {
				return err
			}
			if sw := suite.Sweep; sw != nil {
				if algorithm == "" {
					algorithm = sw.Algorithm
				}
				if param == "" {
					param = sw.Param
				}
				if len(values) == 0 {
					values = sw.Values
				}
				if !cmd.Flags().Changed("trials") && sw.Trials > 0 {
					a.cfg.Measure.Trials = sw.Trials
				}
			}
			if algorithm == "" || param == "" || len(values) == 0 {
				return fmt.Errorf("suite %s declares no sweep; set --algorithm, --param and --values", suite.Name)
			}
			if err := rf.apply(cmd, a); err != nil {
				return err
			}

			inv, err := a.inventory()
			if err != nil {
				return err
			}
			r, err := a.newRunner()
			if err != nil {
				return err
			}
			s, err := a.session()
			if err != nil {
				return err
			}

			tbl, err := s.Sweep(cmd.Context(), r, inv, algorithm, param, values)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "Mean execution time (ms) of %s by %s\n\n", algorithm, param)
			if err := tbl.WriteMarkdown(a.stdout); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "\nAnalyze with: asymptote analyze --suite %s --table %s --algorithm %s\n",
				suite.Name, pipeline.SweepName(algorithm, param), algorithm)

			return nil
		},
	}

	rf.register(cmd)
	fs := cmd.Flags()
	fs.StringVar(&algorithm, "algorithm", "", "algorithm to sweep")
	fs.StringVar(&param, "param", "", "parameter name, passed as --<param>")
	fs.IntSliceVar(&values, "values", nil, "parameter values, e.g. 8,16,32")

	return cmd
}
