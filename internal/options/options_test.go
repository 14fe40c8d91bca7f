package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type trialConfig struct {
	Trials  int
	Label   string
	Applied []string
}

func withTrials(n int) Option[*trialConfig] {
	return New(func(c *trialConfig) error {
		if n <= 0 {
			return errors.New("trials must be positive")
		}
		c.Trials = n
		c.Applied = append(c.Applied, "trials")

		return nil
	})
}

func withLabel(label string) Option[*trialConfig] {
	return NoError(func(c *trialConfig) {
		c.Label = label
		c.Applied = append(c.Applied, "label")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies in order", func(t *testing.T) {
		cfg := &trialConfig{}
		err := Apply(cfg, withLabel("conv"), withTrials(3))
		require.NoError(t, err)
		require.Equal(t, 3, cfg.Trials)
		require.Equal(t, "conv", cfg.Label)
		require.Equal(t, []string{"label", "trials"}, cfg.Applied)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &trialConfig{}
		err := Apply(cfg, withTrials(0), withLabel("never"))
		require.EqualError(t, err, "trials must be positive")
		require.Empty(t, cfg.Label)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &trialConfig{}
		require.NoError(t, Apply(cfg, nil, withTrials(2), nil))
		require.Equal(t, 2, cfg.Trials)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &trialConfig{Trials: 7}
		require.NoError(t, Apply[*trialConfig](cfg))
		require.Equal(t, 7, cfg.Trials)
	})
}
