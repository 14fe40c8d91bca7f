// Package config loads the asymptote configuration file.
//
// Values come from, in increasing precedence: built-in defaults, the YAML
// file, ASYMPTOTE_* environment variables, and command-line flags (applied by
// the caller). A missing file is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/asymptote/discover"
	"github.com/arloliu/asymptote/format"
	"github.com/arloliu/asymptote/growth"
	"github.com/arloliu/asymptote/internal/logging"
	"github.com/arloliu/asymptote/runner"
)

// DefaultFile is read when no --config flag is given.
const DefaultFile = "asymptote.yaml"

// Config is the full configuration.
type Config struct {
	Suite string `yaml:"suite"`
	// Data is the instance directory and Out the results directory.
	Data string `yaml:"data"`
	Out  string `yaml:"out"`

	Discover DiscoverConfig `yaml:"discover"`
	Executor ExecutorConfig `yaml:"executor"`
	Measure  MeasureConfig  `yaml:"measure"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Output   OutputConfig   `yaml:"output"`
	Log      LogConfig      `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type DiscoverConfig struct {
	// Pattern must contain one capture group holding the size tag.
	Pattern string `yaml:"pattern"`
	MinSize int    `yaml:"min_size"`
	MaxSize int    `yaml:"max_size"`
}

type ExecutorConfig struct {
	Command string        `yaml:"command"`
	Args    []string      `yaml:"args"`
	Dir     string        `yaml:"dir"`
	Timeout time.Duration `yaml:"timeout"`
}

type MeasureConfig struct {
	Trials          int  `yaml:"trials"`
	ContinueOnError bool `yaml:"continue_on_error"`
}

type AnalysisConfig struct {
	// StabilizationTail is the number of trailing ratios summarized; 0 disables.
	StabilizationTail int  `yaml:"stabilization_tail"`
	Rank              bool `yaml:"rank"`
}

type OutputConfig struct {
	// Compression is the snapshot codec: none, zstd, s2 or lz4.
	Compression string `yaml:"compression"`
	Snapshot    bool   `yaml:"snapshot"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	// Textfile receives runner metrics in the node exporter format.
	Textfile string `yaml:"textfile"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Suite: "matrix",
		Data:  "data",
		Out:   "results",
		Discover: DiscoverConfig{
			Pattern: discover.DefaultPattern.String(),
		},
		Executor: ExecutorConfig{
			Command: "./tp.sh",
			Timeout: runner.DefaultTimeout,
		},
		Measure: MeasureConfig{
			Trials: runner.DefaultTrials,
		},
		Analysis: AnalysisConfig{
			StabilizationTail: 3,
			Rank:              true,
		},
		Output: OutputConfig{
			Compression: "zstd",
			Snapshot:    true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: string(logging.FormatText),
		},
	}
}

// Load builds the configuration from defaults, the file at path and the
// environment. An empty path reads DefaultFile if present. Load does not
// validate: callers apply their own overrides first, then call Validate.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := loadFile(path, explicit, &cfg); err != nil {
		return cfg, fmt.Errorf("load config file: %w", err)
	}

	if err := loadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("load config from environment: %w", err)
	}

	return cfg, nil
}

func loadFile(path string, explicit bool, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}

		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

func loadEnv(cfg *Config) error {
	str := map[string]*string{
		"ASYMPTOTE_SUITE":      &cfg.Suite,
		"ASYMPTOTE_DATA":       &cfg.Data,
		"ASYMPTOTE_OUT":        &cfg.Out,
		"ASYMPTOTE_COMMAND":    &cfg.Executor.Command,
		"ASYMPTOTE_LOG_LEVEL":  &cfg.Log.Level,
		"ASYMPTOTE_LOG_FORMAT": &cfg.Log.Format,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv("ASYMPTOTE_TRIALS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ASYMPTOTE_TRIALS: %w", err)
		}
		cfg.Measure.Trials = n
	}
	if v, ok := os.LookupEnv("ASYMPTOTE_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ASYMPTOTE_TIMEOUT: %w", err)
		}
		cfg.Executor.Timeout = d
	}

	return nil
}

// Validate checks every field.
func (c Config) Validate() error {
	var problems []error

	if _, err := growth.Lookup(c.Suite); err != nil {
		problems = append(problems, err)
	}
	if c.Data == "" {
		problems = append(problems, errors.New("data directory is required"))
	}
	if c.Out == "" {
		problems = append(problems, errors.New("output directory is required"))
	}
	if _, err := c.Pattern(); err != nil {
		problems = append(problems, err)
	}
	if c.Discover.MinSize < 0 || c.Discover.MaxSize < 0 {
		problems = append(problems, errors.New("size range must not be negative"))
	}
	if c.Discover.MaxSize > 0 && c.Discover.MinSize > c.Discover.MaxSize {
		problems = append(problems, fmt.Errorf("min_size %d exceeds max_size %d", c.Discover.MinSize, c.Discover.MaxSize))
	}
	if c.Executor.Command == "" {
		problems = append(problems, errors.New("executor command is required"))
	}
	if c.Executor.Timeout < 0 {
		problems = append(problems, errors.New("executor timeout must be >= 0"))
	}
	if c.Measure.Trials < 1 {
		problems = append(problems, fmt.Errorf("trials must be >= 1, got %d", c.Measure.Trials))
	}
	if c.Analysis.StabilizationTail < 0 {
		problems = append(problems, errors.New("stabilization_tail must be >= 0"))
	}
	if _, err := c.Compression(); err != nil {
		problems = append(problems, err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, err)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		problems = append(problems, err)
	}

	return errors.Join(problems...)
}

// Pattern compiles the discover pattern.
func (c Config) Pattern() (*regexp.Regexp, error) {
	re, err := regexp.Compile(c.Discover.Pattern)
	if err != nil {
		return nil, fmt.Errorf("discover pattern: %w", err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("discover pattern %q has no capture group", c.Discover.Pattern)
	}

	return re, nil
}

// Compression parses the snapshot codec name.
func (c Config) Compression() (format.CompressionType, error) {
	return format.ParseCompressionType(c.Output.Compression)
}

// OutPath joins name to the results directory.
func (c Config) OutPath(name string) string {
	return filepath.Join(c.Out, name)
}
