package runner

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/asymptote/errs"
)

// Sample is the parsed output of one trial.
type Sample struct {
	// Elapsed is the time reported by the program, in milliseconds.
	Elapsed float64
	// Metrics holds the secondary values in declaration order.
	Metrics []float64
}

// ParseOutput reads the program output of one trial. The first metrics
// non-empty lines are the secondary metrics, the last non-empty line is the
// elapsed time in milliseconds, and anything in between is ignored.
func ParseOutput(out []byte, metrics int) (Sample, error) {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return Sample{}, fmt.Errorf("%w: %w", errs.ErrMalformedOutput, err)
	}

	if len(lines) < metrics+1 {
		return Sample{}, fmt.Errorf("%w: expected at least %d lines, got %d",
			errs.ErrMalformedOutput, metrics+1, len(lines))
	}

	elapsed, err := parseNumber(lines[len(lines)-1])
	if err != nil {
		return Sample{}, fmt.Errorf("%w: elapsed time: %w", errs.ErrMalformedOutput, err)
	}
	if elapsed < 0 {
		return Sample{}, fmt.Errorf("%w: negative elapsed time %v", errs.ErrMalformedOutput, elapsed)
	}

	s := Sample{Elapsed: elapsed}
	if metrics > 0 {
		s.Metrics = make([]float64, metrics)
		for i := range metrics {
			v, err := parseNumber(lines[i])
			if err != nil {
				return Sample{}, fmt.Errorf("%w: metric %d: %w", errs.ErrMalformedOutput, i, err)
			}
			s.Metrics[i] = v
		}
	}

	return s, nil
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}

	return v, nil
}
