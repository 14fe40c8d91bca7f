package table

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/asymptote/endian"
	"github.com/arloliu/asymptote/errs"
	"github.com/arloliu/asymptote/format"
)

// sampleTable has a gap in Strassen at size 10 and a column with no cells.
func sampleTable(t *testing.T) *Table {
	t.Helper()
	tbl := New("N", "ExecutionTime", "Conventional", "Strassen", "Empty")
	require.NoError(t, tbl.Put("Conventional", 4, 10))
	require.NoError(t, tbl.Put("Conventional", 8, 80.125))
	require.NoError(t, tbl.Put("Conventional", 10, 0.1+0.2))
	require.NoError(t, tbl.Put("Strassen", 8, 1e-9))
	require.NoError(t, tbl.Put("Strassen", 4, 3))

	return tbl
}

func TestPutGet(t *testing.T) {
	tbl := sampleTable(t)

	v, ok := tbl.Get("Conventional", 8)
	require.True(t, ok)
	require.Equal(t, 80.125, v)

	_, ok = tbl.Get("Strassen", 10)
	require.False(t, ok)
	_, ok = tbl.Get("Nope", 4)
	require.False(t, ok)

	require.ErrorIs(t, tbl.Put("Nope", 4, 1), errs.ErrUnknownColumn)
	require.ErrorIs(t, tbl.Put("Strassen", 4, math.NaN()), errs.ErrInvalidValue)
	require.ErrorIs(t, tbl.Put("Strassen", 4, math.Inf(1)), errs.ErrInvalidValue)
	require.ErrorIs(t, tbl.Put("Strassen", -1, 1), errs.ErrInvalidSize)
	require.ErrorIs(t, tbl.AddColumn("Strassen"), errs.ErrDuplicateColumn)

	tbl.Delete("Strassen", 4)
	_, ok = tbl.Get("Strassen", 4)
	require.False(t, ok)
	require.Equal(t, 4, tbl.Len())
}

func TestSizesAndColumns(t *testing.T) {
	tbl := sampleTable(t)
	require.Equal(t, []int{4, 8, 10}, tbl.Sizes())
	require.Equal(t, []string{"Conventional", "Strassen", "Empty"}, tbl.Columns())

	cols := tbl.Columns()
	cols[0] = "changed"
	require.Equal(t, "Conventional", tbl.Columns()[0])
}

func TestWideView(t *testing.T) {
	w := sampleTable(t).Wide()
	require.Equal(t, "N", w.IndexName)
	require.Equal(t, []int{4, 8, 10}, w.Sizes)
	require.Len(t, w.Rows, 3)

	require.Equal(t, Cell{Value: 10, Present: true}, w.Rows[0][0])
	require.Equal(t, Cell{Value: 3, Present: true}, w.Rows[0][1])
	require.False(t, w.Rows[2][1].Present)
	for _, row := range w.Rows {
		require.False(t, row[2].Present)
	}
}

func TestLongView(t *testing.T) {
	long := sampleTable(t).Long()
	require.Equal(t, []Record{
		{Column: "Conventional", Size: 4, Value: 10},
		{Column: "Conventional", Size: 8, Value: 80.125},
		{Column: "Conventional", Size: 10, Value: 0.1 + 0.2},
		{Column: "Strassen", Size: 4, Value: 3},
		{Column: "Strassen", Size: 8, Value: 1e-9},
	}, long)

	groups := Group(long)
	require.Len(t, groups["Conventional"], 3)
	require.Len(t, groups["Strassen"], 2)
	require.Empty(t, groups["Empty"])
}

func TestFromRecords(t *testing.T) {
	orig := sampleTable(t)
	rebuilt, err := FromRecords("N", "ExecutionTime", orig.Long())
	require.NoError(t, err)
	require.Equal(t, orig.Long(), rebuilt.Long())
	require.Equal(t, []string{"Conventional", "Strassen"}, rebuilt.Columns())

	_, err = FromRecords("N", "v", []Record{{"a", 1, 1}, {"a", 1, 2}})
	require.ErrorIs(t, err, errs.ErrInvalidTable)
}

func TestSeries(t *testing.T) {
	sizes, values := sampleTable(t).Series("Strassen")
	require.Equal(t, []int{4, 8}, sizes)
	require.Equal(t, []float64{3, 1e-9}, values)

	sizes, values = sampleTable(t).Series("missing")
	require.Nil(t, sizes)
	require.Nil(t, values)
}

func TestCSVRoundTrip(t *testing.T) {
	tbl := sampleTable(t)

	var buf bytes.Buffer
	require.NoError(t, tbl.WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, "N,Conventional,Strassen,Empty", lines[0])
	require.Equal(t, "4,10,3,", lines[1])
	require.Equal(t, "10,0.30000000000000004,,", lines[3])

	back, err := ReadCSV(&buf, "ExecutionTime")
	require.NoError(t, err)
	require.True(t, tbl.Equal(back))
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", errs.ErrInvalidTable},
		{"bad size", "N,A\nx,1\n", errs.ErrInvalidTable},
		{"bad value", "N,A\n1,abc\n", errs.ErrInvalidTable},
		{"duplicate size", "N,A\n1,1\n1,2\n", errs.ErrInvalidTable},
		{"duplicate column", "N,A,A\n1,1,2\n", errs.ErrDuplicateColumn},
		{"ragged", "N,A\n1,1,2\n", errs.ErrInvalidTable},
		{"nan", "N,A\n1,NaN\n", errs.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input), "v")
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleTable(t).WriteMarkdown(&buf))

	out := buf.String()
	require.Contains(t, out, "Conventional")
	require.Contains(t, out, "80.125")
	require.Contains(t, out, "|-")
	// header, separator and three rows
	require.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 5)
}

func TestSnapshotRoundTrip(t *testing.T) {
	codecs := []format.CompressionType{
		format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	}

	for _, c := range codecs {
		for _, order := range []endian.Order{endian.Little, endian.Big} {
			t.Run(c.String()+"/"+order.String(), func(t *testing.T) {
				tbl := sampleTable(t)
				tbl.Meta = Meta{RunID: uuid.New(), Phase: 1, CreatedAt: time.UnixMicro(1_700_000_000_000_000)}

				data, err := tbl.EncodeSnapshot(WithCompression(c), WithByteOrder(order))
				require.NoError(t, err)

				back, err := DecodeSnapshot(data)
				require.NoError(t, err)
				require.True(t, tbl.Equal(back))
				require.Equal(t, tbl.Meta.RunID, back.Meta.RunID)
				require.Equal(t, uint8(1), back.Meta.Phase)
				require.True(t, tbl.Meta.CreatedAt.Equal(back.Meta.CreatedAt))

				meta, err := ReadMeta(data)
				require.NoError(t, err)
				require.Equal(t, tbl.Meta.RunID, meta.RunID)
			})
		}
	}
}

func TestBinaryMarshaler(t *testing.T) {
	tbl := sampleTable(t)
	data, err := tbl.MarshalBinary()
	require.NoError(t, err)

	var back Table
	require.NoError(t, back.UnmarshalBinary(data))
	require.True(t, tbl.Equal(&back))
	require.Equal(t, uuid.Nil, back.Meta.RunID)
}

func TestSnapshotEmptyTable(t *testing.T) {
	tbl := New("GraphSize", "colors", "Greedy")
	data, err := tbl.MarshalBinary()
	require.NoError(t, err)

	back, err := DecodeSnapshot(data)
	require.NoError(t, err)
	require.True(t, tbl.Equal(back))
	require.Empty(t, back.Sizes())
}

func TestSnapshotCorruption(t *testing.T) {
	data, err := sampleTable(t).EncodeSnapshot(WithCompression(format.CompressionNone))
	require.NoError(t, err)

	flipped := append([]byte(nil), data...)
	flipped[len(flipped)-1] ^= 0x01
	_, err = DecodeSnapshot(flipped)
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)

	// phase byte lives in the header, outside the payload
	phase := append([]byte(nil), data...)
	phase[6] ^= 0x02
	_, err = DecodeSnapshot(phase)
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)

	runID := append([]byte(nil), data...)
	runID[40] ^= 0xff
	_, err = DecodeSnapshot(runID)
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)

	_, err = DecodeSnapshot(data[:len(data)-3])
	require.ErrorIs(t, err, errs.ErrInvalidSnapshot)

	_, err = DecodeSnapshot(data[:10])
	require.ErrorIs(t, err, errs.ErrInvalidSnapshot)

	_, err = sampleTable(t).EncodeSnapshot(WithCompression(format.CompressionType(0x9)))
	require.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	tbl := sampleTable(t)

	tests := []struct {
		name      string
		valueName string
	}{
		{"execution_times.csv", "execution_times"},
		{"execution_times.snap", "ExecutionTime"},
	}
	for _, tt := range tests {
		path := filepath.Join(dir, "nested", tt.name)
		require.NoError(t, tbl.Save(path))

		back, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, tbl.Long(), back.Long())
		require.Equal(t, tt.valueName, back.ValueName())
		require.Equal(t, "N", back.IndexName())
	}

	md := filepath.Join(dir, "execution_times.md")
	require.NoError(t, tbl.Save(md))
	_, err := Load(md)
	require.Error(t, err)

	_, err = Load(filepath.Join(dir, "absent.csv"))
	var missing *errs.MissingResultsError
	require.ErrorAs(t, err, &missing)
	require.ErrorIs(t, err, errs.ErrMissingResults)

	require.Error(t, tbl.Save(filepath.Join(dir, "table.txt")))
}

func TestClone(t *testing.T) {
	tbl := sampleTable(t)
	c := tbl.Clone()
	require.True(t, tbl.Equal(c))

	require.NoError(t, c.Put("Empty", 4, 1))
	require.False(t, tbl.Equal(c))
	require.False(t, tbl.HasColumn("missing"))
}
