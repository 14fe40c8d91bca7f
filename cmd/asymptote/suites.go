package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/arloliu/asymptote/growth"
)

func newSuitesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "suites",
		Short: "List the algorithm suites and their expected complexity",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, s := range growth.Suites() {
				fmt.Fprintf(a.stdout, "%s: %s\n", s.Name, s.Description)
				fmt.Fprintf(a.stdout, "index %s, problem size %s, %d operand(s)\n",
					s.IndexName, s.Scale, s.Operands)

				tw := tablewriter.NewWriter(a.stdout)
				tw.SetHeader([]string{"Algorithm", "Selector", "Complexity", "Max size", "Metrics"})
				tw.SetAutoFormatHeaders(false)
				for _, alg := range s.Algorithms {
					maxSize := "-"
					if alg.MaxSize != growth.Unbounded {
						maxSize = strconv.Itoa(alg.MaxSize)
					}
					tw.Append([]string{
						alg.Name,
						alg.Selector,
						"O(" + alg.Model.String() + ")",
						maxSize,
						strings.Join(alg.Metrics, ", "),
					})
				}
				tw.Render()

				if sw := s.Sweep; sw != nil {
					fmt.Fprintf(a.stdout, "sweep: %s over --%s %v\n", sw.Algorithm, sw.Param, sw.Values)
				}
				fmt.Fprintln(a.stdout)
			}

			return nil
		},
	}
}
