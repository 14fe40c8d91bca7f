// Package table holds measured results as a sparse map keyed by
// (column, size) and derives the wide and long views from it.
//
// A Table never stores a placeholder for a missing measurement: a cell is
// either present with a finite value or absent. Every rendering (CSV,
// Markdown, binary snapshot) preserves that distinction, so a gap written by
// the measure phase is still a gap when the analyze phase reads it back.
//
//	tbl := table.New("N", "ExecutionTime", "Conventional", "Strassen")
//	_ = tbl.Put("Conventional", 4, 10.5)
//	for _, r := range tbl.Long() {
//	    fmt.Println(r.Column, r.Size, r.Value)
//	}
package table

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/asymptote/errs"
	"github.com/arloliu/asymptote/internal/hash"
)

type cellKey struct {
	col  int
	size int
}

// Table is the canonical results store. It is not safe for concurrent
// mutation.
type Table struct {
	indexName string
	valueName string

	columns []string
	colIDs  map[uint64]int // hash.ID(name) -> column position

	cells map[cellKey]float64

	// Meta travels with binary snapshots only.
	Meta Meta
}

// New creates an empty table with the given columns in display order.
// Duplicate column names are ignored after their first occurrence.
func New(indexName, valueName string, columns ...string) *Table {
	t := &Table{
		indexName: indexName,
		valueName: valueName,
		colIDs:    make(map[uint64]int, len(columns)),
		cells:     make(map[cellKey]float64),
	}
	for _, c := range columns {
		_ = t.AddColumn(c)
	}

	return t
}

// IndexName labels the size column, e.g. "N" or "GraphSize".
func (t *Table) IndexName() string { return t.indexName }

// ValueName labels the measured quantity in long form, e.g. "ExecutionTime".
func (t *Table) ValueName() string { return t.valueName }

// AddColumn appends a column. Adding an existing name returns
// ErrDuplicateColumn and leaves the table unchanged.
func (t *Table) AddColumn(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", errs.ErrUnknownColumn)
	}

	id := hash.ID(name)
	if pos, ok := t.colIDs[id]; ok {
		if t.columns[pos] == name {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateColumn, name)
		}

		return fmt.Errorf("%w: %q collides with %q", errs.ErrDuplicateColumn, name, t.columns[pos])
	}

	t.colIDs[id] = len(t.columns)
	t.columns = append(t.columns, name)

	return nil
}

func (t *Table) column(name string) (int, bool) {
	pos, ok := t.colIDs[hash.ID(name)]
	if !ok || t.columns[pos] != name {
		return 0, false
	}

	return pos, true
}

// HasColumn reports whether name is a declared column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.column(name)
	return ok
}

// Put stores value at (column, size), replacing any previous value.
func (t *Table) Put(column string, size int, value float64) error {
	pos, ok := t.column(column)
	if !ok {
		return fmt.Errorf("%w: %q", errs.ErrUnknownColumn, column)
	}
	if size < 0 {
		return fmt.Errorf("%w: %d", errs.ErrInvalidSize, size)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %v at %s/%d", errs.ErrInvalidValue, value, column, size)
	}

	t.cells[cellKey{col: pos, size: size}] = value

	return nil
}

// Get returns the value at (column, size) and whether it is present.
func (t *Table) Get(column string, size int) (float64, bool) {
	pos, ok := t.column(column)
	if !ok {
		return 0, false
	}

	v, ok := t.cells[cellKey{col: pos, size: size}]

	return v, ok
}

// Delete removes a cell. Deleting an absent cell is a no-op.
func (t *Table) Delete(column string, size int) {
	if pos, ok := t.column(column); ok {
		delete(t.cells, cellKey{col: pos, size: size})
	}
}

// Columns returns the column names in declaration order.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// Sizes returns the ascending union of sizes present in any column.
func (t *Table) Sizes() []int {
	seen := make(map[int]struct{}, len(t.cells))
	sizes := make([]int, 0, len(t.cells))
	for k := range t.cells {
		if _, ok := seen[k.size]; !ok {
			seen[k.size] = struct{}{}
			sizes = append(sizes, k.size)
		}
	}
	slices.Sort(sizes)

	return sizes
}

// Len returns the number of present cells.
func (t *Table) Len() int {
	return len(t.cells)
}

// Series returns the present (size, value) pairs of one column in ascending
// size order.
func (t *Table) Series(column string) ([]int, []float64) {
	pos, ok := t.column(column)
	if !ok {
		return nil, nil
	}

	var sizes []int
	for k := range t.cells {
		if k.col == pos {
			sizes = append(sizes, k.size)
		}
	}
	slices.Sort(sizes)

	values := make([]float64, len(sizes))
	for i, s := range sizes {
		values[i] = t.cells[cellKey{col: pos, size: s}]
	}

	return sizes, values
}

// Equal reports whether both tables have the same names, columns and cells.
// Meta is ignored.
func (t *Table) Equal(other *Table) bool {
	if other == nil || t.indexName != other.indexName || t.valueName != other.valueName {
		return false
	}
	if !slices.Equal(t.columns, other.columns) || len(t.cells) != len(other.cells) {
		return false
	}
	for k, v := range t.cells {
		ov, ok := other.cells[k]
		if !ok || math.Float64bits(v) != math.Float64bits(ov) {
			return false
		}
	}

	return true
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	c := New(t.indexName, t.valueName, t.columns...)
	for k, v := range t.cells {
		c.cells[k] = v
	}
	c.Meta = t.Meta

	return c
}
