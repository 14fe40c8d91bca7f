package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arloliu/asymptote/errs"
)

// WriteCSV writes the wide view. Values use the shortest representation that
// parses back to the same float64; missing cells are empty fields.
func (t *Table) WriteCSV(w io.Writer) error {
	wide := t.Wide()
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(wide.Columns)+1)
	header = append(header, wide.IndexName)
	header = append(header, wide.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for r, size := range wide.Sizes {
		record[0] = strconv.Itoa(size)
		for c, cell := range wide.Rows[r] {
			if cell.Present {
				record[c+1] = strconv.FormatFloat(cell.Value, 'g', -1, 64)
			} else {
				record[c+1] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// ReadCSV parses a table written by WriteCSV. The CSV carries no value name,
// so the caller supplies it.
func ReadCSV(r io.Reader, valueName string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 0
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header", errs.ErrInvalidTable)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidTable, err)
	}
	if len(header) < 1 || strings.TrimSpace(header[0]) == "" {
		return nil, fmt.Errorf("%w: empty index name", errs.ErrInvalidTable)
	}

	t := New(strings.TrimSpace(header[0]), valueName)
	for _, name := range header[1:] {
		if err := t.AddColumn(strings.TrimSpace(name)); err != nil {
			return nil, err
		}
	}

	seen := make(map[int]bool)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrInvalidTable, err)
		}

		size, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: size %q", errs.ErrInvalidTable, line, rec[0])
		}
		if seen[size] {
			return nil, fmt.Errorf("%w: line %d: duplicate size %d", errs.ErrInvalidTable, line, size)
		}
		seen[size] = true

		for c, field := range rec[1:] {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %s: %w", errs.ErrInvalidTable, line, t.columns[c], err)
			}
			if err := t.Put(t.columns[c], size, v); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
	}

	return t, nil
}
