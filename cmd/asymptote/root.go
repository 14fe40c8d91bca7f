package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/asymptote/config"
	"github.com/arloliu/asymptote/growth"
	"github.com/arloliu/asymptote/internal/logging"
	"github.com/arloliu/asymptote/pipeline"
)

// app is the state shared by every subcommand.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	suite      string
	data       string
	out        string
	logLevel   string
	logFormat  string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "asymptote",
		Short: "Empirical validation of algorithm complexity",
		Long: `asymptote runs external algorithm implementations over problem instances of
increasing size, stores the mean execution times, and tests whether the
measured growth matches the expected complexity with the power, ratio and
constants tests.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "configuration file (default "+config.DefaultFile+" if present)")
	pf.StringVar(&a.suite, "suite", "", "algorithm suite: "+strings.Join(growth.SuiteNames(), ", "))
	pf.StringVar(&a.data, "data", "", "instance directory")
	pf.StringVar(&a.out, "out", "", "results directory")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&a.logFormat, "log-format", "", "log format: text or json")

	root.AddCommand(
		newMeasureCmd(a),
		newAnalyzeCmd(a),
		newSweepCmd(a),
		newSuitesCmd(a),
	)

	return root
}

// setup loads the configuration, applies the global flags and installs the
// logger. Flags win over the file and the environment.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	override := func(name string, dst *string, val string) {
		if flags.Changed(name) {
			*dst = val
		}
	}
	override("suite", &cfg.Suite, a.suite)
	override("data", &cfg.Data, a.data)
	override("out", &cfg.Out, a.out)
	override("log-level", &cfg.Log.Level, a.logLevel)
	override("log-format", &cfg.Log.Format, a.logFormat)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.cfg = cfg

	a.logger, err = logging.Setup(a.stderr, cfg.Log.Level, cfg.Log.Format)

	return err
}

func (a *app) session() (*pipeline.Session, error) {
	suite, err := growth.Lookup(a.cfg.Suite)
	if err != nil {
		return nil, err
	}
	ct, err := a.cfg.Compression()
	if err != nil {
		return nil, err
	}

	return pipeline.Open(suite, a.cfg.Out,
		pipeline.WithLogger(a.logger),
		pipeline.WithCompression(ct),
		pipeline.WithSnapshot(a.cfg.Output.Snapshot),
	)
}
