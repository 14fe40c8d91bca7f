package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/asymptote/errs"
	"github.com/arloliu/asymptote/format"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "asymptote.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	re, err := cfg.Pattern()
	require.NoError(t, err)
	require.Equal(t, `^ex(\d*?)_`, re.String())

	c, err := cfg.Compression()
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, c)
	require.Equal(t, filepath.Join("results", "execution_times.csv"), cfg.OutPath("execution_times.csv"))
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
suite: coloring
data: ./graphs
executor:
  command: cargo
  args: [run, --release, --]
  timeout: 90s
measure:
  trials: 5
  continue_on_error: true
analysis:
  stabilization_tail: 4
output:
  compression: lz4
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "coloring", cfg.Suite)
	require.Equal(t, "./graphs", cfg.Data)
	require.Equal(t, "results", cfg.Out, "unset keys keep defaults")
	require.Equal(t, "cargo", cfg.Executor.Command)
	require.Equal(t, []string{"run", "--release", "--"}, cfg.Executor.Args)
	require.Equal(t, 90*time.Second, cfg.Executor.Timeout)
	require.Equal(t, 5, cfg.Measure.Trials)
	require.True(t, cfg.Measure.ContinueOnError)
	require.Equal(t, 4, cfg.Analysis.StabilizationTail)
	require.True(t, cfg.Analysis.Rank)
	require.Equal(t, "lz4", cfg.Output.Compression)
	require.Equal(t, "json", cfg.Log.Format)
}

func TestLoadMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	_, err = Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err, "an explicit path must exist")
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeFile(t, "suite: coloring\nmeasure:\n  trials: 2\n")
	t.Setenv("ASYMPTOTE_SUITE", "matrix")
	t.Setenv("ASYMPTOTE_TRIALS", "7")
	t.Setenv("ASYMPTOTE_TIMEOUT", "0s")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "matrix", cfg.Suite)
	require.Equal(t, 7, cfg.Measure.Trials)
	require.Equal(t, time.Duration(0), cfg.Executor.Timeout)

	t.Setenv("ASYMPTOTE_TRIALS", "many")
	_, err = Load(path)
	require.Error(t, err)
}

func TestLoadLeavesValidationToCaller(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ASYMPTOTE_SUITE", "sorting")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Error(t, cfg.Validate())

	cfg.Suite = "matrix"
	require.NoError(t, cfg.Validate())
}

func TestLoadBadYAML(t *testing.T) {
	_, err := Load(writeFile(t, "suite: [unclosed\n"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown suite", func(c *Config) { c.Suite = "sorting" }},
		{"empty data", func(c *Config) { c.Data = "" }},
		{"empty out", func(c *Config) { c.Out = "" }},
		{"bad pattern", func(c *Config) { c.Discover.Pattern = "ex(" }},
		{"pattern without group", func(c *Config) { c.Discover.Pattern = `^ex\d+_` }},
		{"inverted range", func(c *Config) { c.Discover.MinSize, c.Discover.MaxSize = 10, 5 }},
		{"negative range", func(c *Config) { c.Discover.MinSize = -1 }},
		{"no command", func(c *Config) { c.Executor.Command = "" }},
		{"negative timeout", func(c *Config) { c.Executor.Timeout = -time.Second }},
		{"zero trials", func(c *Config) { c.Measure.Trials = 0 }},
		{"negative tail", func(c *Config) { c.Analysis.StabilizationTail = -1 }},
		{"bad codec", func(c *Config) { c.Output.Compression = "brotli" }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}

	cfg := Default()
	cfg.Suite = "sorting"
	require.ErrorIs(t, cfg.Validate(), errs.ErrUnknownSuite)
}
