package regression

import (
	"fmt"

	"github.com/arloliu/asymptote/internal/options"
)

// RankConfig selects the candidate models tried by Rank.
type RankConfig struct {
	candidates []ModelType
}

// RankOption is a functional option for Rank.
type RankOption = options.Option[*RankConfig]

// DefaultCandidates are tried when no WithCandidates option is given.
var DefaultCandidates = []ModelType{
	ModelTypePower,
	ModelTypeExponential,
	ModelTypeLogarithmic,
	ModelTypeLinear,
}

func newRankConfig(opts ...RankOption) (*RankConfig, error) {
	cfg := &RankConfig{candidates: DefaultCandidates}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithCandidates replaces the candidate set.
func WithCandidates(types ...ModelType) RankOption {
	return options.New(func(cfg *RankConfig) error {
		if len(types) == 0 {
			return fmt.Errorf("at least one candidate model is required")
		}
		for _, mt := range types {
			if _, ok := modelTypeNames[mt]; !ok {
				return fmt.Errorf("unknown model type %d", mt)
			}
		}
		cfg.candidates = types

		return nil
	})
}
