package table

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arloliu/asymptote/errs"
	"github.com/arloliu/asymptote/format"
)

// Save writes the table to path in the format implied by its extension.
// The file is written to a temporary sibling and renamed into place, so a
// reader never sees a partially written table.
func (t *Table) Save(path string, opts ...SnapshotOption) error {
	f, err := format.FormatFromPath(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch f {
	case format.FormatCSV:
		err = t.WriteCSV(&buf)
	case format.FormatMarkdown:
		err = t.WriteMarkdown(&buf)
	case format.FormatSnapshot:
		var data []byte
		data, err = t.EncodeSnapshot(opts...)
		buf.Write(data)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", f, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// Load reads a table written by Save. A missing file yields
// *errs.MissingResultsError. For CSV files the value name is the file stem.
func Load(path string) (*Table, error) {
	f, err := format.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	if !f.Reloadable() {
		return nil, fmt.Errorf("%s tables cannot be read back: %s", f, path)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &errs.MissingResultsError{Path: path}
	}
	if err != nil {
		return nil, err
	}

	switch f {
	case format.FormatSnapshot:
		return DecodeSnapshot(data)
	default:
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return ReadCSV(bytes.NewReader(data), stem)
	}
}
