// Package discover enumerates problem instances in a directory and groups
// them by the numeric size tag embedded in their file names.
//
// With the default pattern, a file named "ex12_3" has size tag 12. Hidden
// entries and directories are skipped; any other file that does not carry a
// tag is an error, so a stray file never silently disappears from a run.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/arloliu/asymptote/errs"
	"github.com/arloliu/asymptote/internal/options"
)

// DefaultPattern matches the constant prefix "ex", the size tag and the
// terminating underscore.
var DefaultPattern = regexp.MustCompile(`^ex(\d*?)_`)

// Instance is one input file.
type Instance struct {
	Path string
	Name string // base name
	Size int
}

// Unit is what a single trial runs on: one instance, or two for pairwise
// algorithms.
type Unit struct {
	Size      int
	Instances []Instance
}

// Paths returns the file paths of the unit's instances in order.
func (u Unit) Paths() []string {
	paths := make([]string, len(u.Instances))
	for i, inst := range u.Instances {
		paths[i] = inst.Path
	}

	return paths
}

// Label identifies the unit in logs and errors, e.g. "ex4_0+ex4_1".
func (u Unit) Label() string {
	names := make([]string, len(u.Instances))
	for i, inst := range u.Instances {
		names[i] = inst.Name
	}

	return strings.Join(names, "+")
}

// Bucket holds all instances sharing one size tag, sorted by name.
type Bucket struct {
	Dir       string
	Size      int
	Instances []Instance
}

// Pairs returns every unordered pair (i<j) of the bucket's instances in
// lexicographic order. No instance is paired with itself.
func (b *Bucket) Pairs() []Unit {
	n := len(b.Instances)
	if n < 2 {
		return nil
	}

	pairs := make([]Unit, 0, n*(n-1)/2)
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, Unit{
				Size:      b.Size,
				Instances: []Instance{b.Instances[i], b.Instances[j]},
			})
		}
	}

	return pairs
}

// Units returns the trial units for an algorithm taking the given number of
// operands. Only 1 and 2 are supported.
func (b *Bucket) Units(operands int) ([]Unit, error) {
	switch operands {
	case 1:
		units := make([]Unit, len(b.Instances))
		for i, inst := range b.Instances {
			units[i] = Unit{Size: b.Size, Instances: []Instance{inst}}
		}
		if len(units) == 0 {
			return nil, &errs.EmptyInputError{Dir: b.Dir, Size: b.Size}
		}

		return units, nil
	case 2:
		pairs := b.Pairs()
		if len(pairs) == 0 {
			return nil, &errs.EmptyInputError{Dir: b.Dir, Size: b.Size}
		}

		return pairs, nil
	default:
		return nil, fmt.Errorf("unsupported operand count %d", operands)
	}
}

// Inventory is the result of scanning one directory.
type Inventory struct {
	Dir     string
	buckets map[int]*Bucket
	sizes   []int
}

// Sizes returns the distinct size tags in ascending order.
func (inv *Inventory) Sizes() []int {
	return slices.Clone(inv.sizes)
}

// Bucket returns the instances for one size.
func (inv *Inventory) Bucket(size int) (*Bucket, bool) {
	b, ok := inv.buckets[size]
	return b, ok
}

// Buckets returns every bucket in ascending size order.
func (inv *Inventory) Buckets() []*Bucket {
	out := make([]*Bucket, len(inv.sizes))
	for i, s := range inv.sizes {
		out[i] = inv.buckets[s]
	}

	return out
}

// Len returns the total number of instances.
func (inv *Inventory) Len() int {
	n := 0
	for _, b := range inv.buckets {
		n += len(b.Instances)
	}

	return n
}

type config struct {
	pattern *regexp.Regexp
	minSize int
	maxSize int
}

// Option configures Discover.
type Option = options.Option[*config]

// WithPattern replaces DefaultPattern. The first capture group must hold the
// size tag.
func WithPattern(re *regexp.Regexp) Option {
	return options.New(func(c *config) error {
		if re == nil || re.NumSubexp() < 1 {
			return fmt.Errorf("size pattern must have a capture group")
		}
		c.pattern = re

		return nil
	})
}

// WithSizeRange keeps only tags in [lo, hi]; hi <= 0 means no upper bound.
// Files outside the range still have to parse.
func WithSizeRange(lo, hi int) Option {
	return options.NoError(func(c *config) {
		c.minSize = lo
		c.maxSize = hi
	})
}

// Discover scans dir and groups its instances by size tag.
func Discover(dir string, opts ...Option) (*Inventory, error) {
	cfg := &config{pattern: DefaultPattern}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read instance directory: %w", err)
	}

	inv := &Inventory{Dir: dir, buckets: make(map[int]*Bucket)}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		size, err := ParseSize(cfg.pattern, name)
		if err != nil {
			return nil, err
		}
		if size < cfg.minSize || (cfg.maxSize > 0 && size > cfg.maxSize) {
			continue
		}

		b, ok := inv.buckets[size]
		if !ok {
			b = &Bucket{Dir: dir, Size: size}
			inv.buckets[size] = b
			inv.sizes = append(inv.sizes, size)
		}
		b.Instances = append(b.Instances, Instance{
			Path: filepath.Join(dir, name),
			Name: name,
			Size: size,
		})
	}

	if len(inv.sizes) == 0 {
		return nil, &errs.EmptyInputError{Dir: dir}
	}

	slices.Sort(inv.sizes)
	for _, b := range inv.buckets {
		slices.SortFunc(b.Instances, func(x, y Instance) int {
			return strings.Compare(x.Name, y.Name)
		})
	}

	return inv, nil
}

// ParseSize extracts the size tag from a base file name.
func ParseSize(pattern *regexp.Regexp, name string) (int, error) {
	m := pattern.FindStringSubmatch(name)
	if m == nil {
		return 0, &errs.ParseError{File: name, Reason: "name does not match " + pattern.String()}
	}

	tag := m[1]
	if tag == "" {
		return 0, &errs.ParseError{File: name, Reason: "size tag is empty"}
	}

	size, err := strconv.Atoi(tag)
	if err != nil {
		return 0, &errs.ParseError{File: name, Tag: tag, Reason: "size tag is not an integer"}
	}
	if size < 0 {
		return 0, &errs.ParseError{File: name, Tag: tag, Reason: "size tag is negative"}
	}

	return size, nil
}
