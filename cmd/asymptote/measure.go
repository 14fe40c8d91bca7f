package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arloliu/asymptote/discover"
	"github.com/arloliu/asymptote/runner"
)

// runFlags are the trial settings shared by measure and sweep.
type runFlags struct {
	command         string
	trials          int
	timeout         time.Duration
	continueOnError bool
	textfile        string
}

func (f *runFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.command, "command", "", "algorithm program to execute")
	fs.IntVar(&f.trials, "trials", 0, "executions per instance or pair")
	fs.DurationVar(&f.timeout, "timeout", 0, "limit per execution, 0 disables")
	fs.BoolVar(&f.continueOnError, "continue-on-error", false, "leave failed cells missing instead of aborting")
	fs.StringVar(&f.textfile, "metrics-textfile", "", "write Prometheus metrics to this file")
}

// apply copies the flags the user set onto the loaded configuration.
func (f *runFlags) apply(cmd *cobra.Command, a *app) error {
	fs := cmd.Flags()
	if fs.Changed("command") {
		a.cfg.Executor.Command = f.command
	}
	if fs.Changed("trials") {
		a.cfg.Measure.Trials = f.trials
	}
	if fs.Changed("timeout") {
		a.cfg.Executor.Timeout = f.timeout
	}
	if fs.Changed("continue-on-error") {
		a.cfg.Measure.ContinueOnError = f.continueOnError
	}
	if fs.Changed("metrics-textfile") {
		a.cfg.Metrics.Textfile = f.textfile
	}

	return a.cfg.Validate()
}

func (a *app) inventory() (*discover.Inventory, error) {
	re, err := a.cfg.Pattern()
	if err != nil {
		return nil, err
	}

	return discover.Discover(a.cfg.Data,
		discover.WithPattern(re),
		discover.WithSizeRange(a.cfg.Discover.MinSize, a.cfg.Discover.MaxSize),
	)
}

func (a *app) newRunner() (*runner.Runner, error) {
	exec := runner.NewProcessExecutor(a.cfg.Executor.Command, a.cfg.Executor.Args...)
	exec.Dir = a.cfg.Executor.Dir
	exec.Timeout = a.cfg.Executor.Timeout

	return runner.New(exec,
		runner.WithLogger(a.logger),
		runner.WithTrials(a.cfg.Measure.Trials),
		runner.WithContinueOnError(a.cfg.Measure.ContinueOnError),
		runner.WithTextfile(a.cfg.Metrics.Textfile),
	)
}

func newMeasureCmd(a *app) *cobra.Command {
	var rf runFlags

	cmd := &cobra.Command{
		Use:   "measure",
		Short: "Time every algorithm of the suite and store the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			res, err := s.Measure(cmd.Context(), r, inv)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "Mean execution time (ms), run %s\n\n", s.ID())
			if err := res.Times.WriteMarkdown(a.stdout); err != nil {
				return err
			}
			for _, name := range res.MetricNames {
				fmt.Fprintf(a.stdout, "\nMean %s\n\n", name)
				if err := res.Metrics[name].WriteMarkdown(a.stdout); err != nil {
					return err
				}
			}
			fmt.Fprintf(a.stdout, "\nResults written to %s\n", a.cfg.Out)

			return nil
		},
	}
	rf.register(cmd)

	return cmd
}
