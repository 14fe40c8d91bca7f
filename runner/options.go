package runner

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/asymptote/internal/options"
)

const (
	// DefaultTrials is the number of repetitions per unit.
	DefaultTrials = 1
	// DefaultTimeout bounds a single invocation of the external program.
	DefaultTimeout = 10 * time.Minute
)

type config struct {
	logger          *slog.Logger
	trials          int
	continueOnError bool
	registry        *prometheus.Registry
	textfile        string
}

// Option configures a Runner.
type Option = options.Option[*config]

// WithLogger sets the logger for progress and skipped cells.
func WithLogger(l *slog.Logger) Option {
	return options.NoError(func(c *config) {
		if l != nil {
			c.logger = l
		}
	})
}

// WithTrials sets how many times each unit is executed.
func WithTrials(n int) Option {
	return options.New(func(c *config) error {
		if n < 1 {
			return fmt.Errorf("trials must be >= 1, got %d", n)
		}
		c.trials = n

		return nil
	})
}

// WithContinueOnError keeps measuring after an execution failure; the
// failed cell is logged and left missing. By default the run aborts.
func WithContinueOnError(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.continueOnError = enabled
	})
}

// WithRegistry registers the runner metrics on reg instead of a private
// registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return options.NoError(func(c *config) {
		if reg != nil {
			c.registry = reg
		}
	})
}

// WithTextfile writes the metrics in the node exporter textfile format to
// path after every Run and Sweep.
func WithTextfile(path string) Option {
	return options.NoError(func(c *config) {
		c.textfile = path
	})
}
