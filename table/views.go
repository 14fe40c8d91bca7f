package table

import (
	"fmt"

	"github.com/arloliu/asymptote/errs"
)

// Cell is one position of the wide view.
type Cell struct {
	Value   float64
	Present bool
}

// Wide is the size x column view. Rows follow ascending size, columns follow
// declaration order.
type Wide struct {
	IndexName string
	Columns   []string
	Sizes     []int
	Rows      [][]Cell
}

// Record is one present cell of the long view.
type Record struct {
	Column string
	Size   int
	Value  float64
}

// Wide derives the wide view.
func (t *Table) Wide() Wide {
	sizes := t.Sizes()
	w := Wide{
		IndexName: t.indexName,
		Columns:   t.Columns(),
		Sizes:     sizes,
		Rows:      make([][]Cell, len(sizes)),
	}

	for r, size := range sizes {
		row := make([]Cell, len(t.columns))
		for c := range t.columns {
			if v, ok := t.cells[cellKey{col: c, size: size}]; ok {
				row[c] = Cell{Value: v, Present: true}
			}
		}
		w.Rows[r] = row
	}

	return w
}

// Long derives the long view: column-major in declaration order, ascending
// size within a column, missing cells excluded.
func (t *Table) Long() []Record {
	records := make([]Record, 0, len(t.cells))
	for _, name := range t.columns {
		sizes, values := t.Series(name)
		for i, s := range sizes {
			records = append(records, Record{Column: name, Size: s, Value: values[i]})
		}
	}

	return records
}

// FromRecords builds a table from long-form records. Columns are created in
// first-seen order.
func FromRecords(indexName, valueName string, records []Record) (*Table, error) {
	t := New(indexName, valueName)
	for _, r := range records {
		if !t.HasColumn(r.Column) {
			if err := t.AddColumn(r.Column); err != nil {
				return nil, err
			}
		}
		if _, ok := t.Get(r.Column, r.Size); ok {
			return nil, fmt.Errorf("%w: duplicate cell %s/%d", errs.ErrInvalidTable, r.Column, r.Size)
		}
		if err := t.Put(r.Column, r.Size, r.Value); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Group splits long-form records by column, preserving record order.
func Group(records []Record) map[string][]Record {
	out := make(map[string][]Record)
	for _, r := range records {
		out[r.Column] = append(out[r.Column], r)
	}

	return out
}
