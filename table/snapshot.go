package table

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/bits"
	"time"

	"github.com/google/uuid"

	"github.com/arloliu/asymptote/compress"
	"github.com/arloliu/asymptote/endian"
	"github.com/arloliu/asymptote/errs"
	"github.com/arloliu/asymptote/format"
	"github.com/arloliu/asymptote/internal/hash"
	"github.com/arloliu/asymptote/internal/options"
	"github.com/arloliu/asymptote/internal/pool"
	"github.com/arloliu/asymptote/section"
)

// Meta is provenance recorded in a snapshot header.
type Meta struct {
	RunID     uuid.UUID
	Phase     uint8
	CreatedAt time.Time
}

type snapshotConfig struct {
	compression format.CompressionType
	order       endian.Order
}

// SnapshotOption configures EncodeSnapshot.
type SnapshotOption = options.Option[*snapshotConfig]

// WithCompression selects the payload codec. The default is zstd.
func WithCompression(c format.CompressionType) SnapshotOption {
	return options.New(func(cfg *snapshotConfig) error {
		if _, err := compress.GetCodec(c); err != nil {
			return err
		}
		cfg.compression = c

		return nil
	})
}

// WithByteOrder selects the byte order of header and payload fields.
func WithByteOrder(o endian.Order) SnapshotOption {
	return options.NoError(func(cfg *snapshotConfig) {
		cfg.order = o
	})
}

// MarshalBinary encodes a zstd-compressed little-endian snapshot.
func (t *Table) MarshalBinary() ([]byte, error) {
	return t.EncodeSnapshot()
}

// UnmarshalBinary replaces t with the decoded snapshot.
func (t *Table) UnmarshalBinary(data []byte) error {
	decoded, err := DecodeSnapshot(data)
	if err != nil {
		return err
	}
	*t = *decoded

	return nil
}

// EncodeSnapshot serializes the table, its names and Meta.
//
// Payload layout, before compression:
//
//	varstring index name, varstring value name
//	varstring column name x ColumnCount
//	uvarint size delta x SizeCount (first delta from 0)
//	presence bitmap, column-major, ceil(ColumnCount*SizeCount/8) bytes
//	float64 bits x CellCount, in bitmap order
func (t *Table) EncodeSnapshot(opts ...SnapshotOption) ([]byte, error) {
	cfg := &snapshotConfig{compression: format.CompressionZstd, order: endian.Little}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if len(t.columns) > section.MaxColumns {
		return nil, fmt.Errorf("%w: %d columns", errs.ErrInvalidTable, len(t.columns))
	}

	engine := cfg.order.Engine()
	sizes := t.Sizes()

	buf := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(buf)

	putString(buf, t.indexName)
	putString(buf, t.valueName)
	for _, c := range t.columns {
		putString(buf, c)
	}

	prev := 0
	for _, s := range sizes {
		buf.B = binary.AppendUvarint(buf.B, uint64(s-prev)) //nolint:gosec
		prev = s
	}

	bitmap := make([]byte, (len(t.columns)*len(sizes)+7)/8)
	values := make([]float64, 0, len(t.cells))
	for c := range t.columns {
		for r, s := range sizes {
			if v, ok := t.cells[cellKey{col: c, size: s}]; ok {
				i := c*len(sizes) + r
				bitmap[i/8] |= 1 << (i % 8)
				values = append(values, v)
			}
		}
	}
	_, _ = buf.Write(bitmap)
	for _, v := range values {
		buf.B = engine.AppendUint64(buf.B, math.Float64bits(v))
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}
	payload, err := codec.Compress(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress snapshot payload: %w", err)
	}

	created := t.Meta.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	header := section.NewSnapshotHeader(created)
	header.Flag.WithByteOrder(cfg.order)
	header.Flag.WithCompression(cfg.compression)
	header.Flag.WithRunID(t.Meta.RunID != uuid.Nil)
	header.ColumnCount = uint16(len(t.columns))
	header.Phase = t.Meta.Phase
	header.SizeCount = uint32(len(sizes))
	header.CellCount = uint32(len(values))
	header.PayloadSize = uint32(len(payload))
	header.RawSize = uint32(buf.Len())
	header.RunID = t.Meta.RunID
	header.Checksum = snapshotChecksum(header, buf.Bytes())

	out := make([]byte, 0, section.HeaderSize+len(payload))
	out = append(out, header.Bytes()...)
	out = append(out, payload...)

	return out, nil
}

// snapshotChecksum hashes the header fields before the checksum together with
// the uncompressed payload, so a flipped phase or run ID is caught as well.
func snapshotChecksum(h *section.SnapshotHeader, raw []byte) uint64 {
	d := hash.NewDigest()
	d.Write(h.Bytes()[:section.ChecksumOffset])
	d.Write(raw)

	return d.Sum64()
}

// ReadMeta decodes only the header of a snapshot. It does not verify the
// checksum.
func ReadMeta(data []byte) (Meta, error) {
	h, err := section.ParseSnapshotHeader(data)
	if err != nil {
		return Meta{}, err
	}

	return metaFromHeader(h), nil
}

func metaFromHeader(h section.SnapshotHeader) Meta {
	m := Meta{Phase: h.Phase, CreatedAt: h.CreatedAtTime()}
	if h.Flag.HasRunID() {
		m.RunID = uuid.UUID(h.RunID)
	}

	return m
}

// DecodeSnapshot parses a snapshot produced by EncodeSnapshot.
func DecodeSnapshot(data []byte) (*Table, error) {
	h, err := section.ParseSnapshotHeader(data)
	if err != nil {
		return nil, err
	}

	stored := data[section.HeaderSize:]
	if uint64(len(stored)) != uint64(h.PayloadSize) {
		return nil, fmt.Errorf("%w: payload is %d bytes, header says %d", errs.ErrInvalidSnapshot, len(stored), h.PayloadSize)
	}

	codec, err := compress.GetCodec(h.Flag.Compression())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
	}
	raw, err := codec.Decompress(stored)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
	}
	if uint64(len(raw)) != uint64(h.RawSize) {
		return nil, fmt.Errorf("%w: raw payload is %d bytes, header says %d", errs.ErrInvalidSnapshot, len(raw), h.RawSize)
	}
	if sum := snapshotChecksum(&h, raw); sum != h.Checksum {
		return nil, fmt.Errorf("%w: got %016x, want %016x", errs.ErrChecksumMismatch, sum, h.Checksum)
	}

	r := &payloadReader{data: raw, engine: h.Flag.GetEndianEngine()}
	indexName := r.string()
	valueName := r.string()

	t := New(indexName, valueName)
	for i := 0; i < int(h.ColumnCount); i++ {
		name := r.string()
		if r.err != nil {
			break
		}
		if err := t.AddColumn(name); err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
		}
	}

	sizes := make([]int, 0, min(int(h.SizeCount), len(raw)))
	prev := uint64(0)
	for i := 0; i < int(h.SizeCount) && r.err == nil; i++ {
		delta := r.uvarint()
		if i > 0 && delta == 0 {
			r.fail("sizes not strictly increasing")
			break
		}
		prev += delta
		if prev > math.MaxInt32 {
			r.fail("size out of range")
			break
		}
		sizes = append(sizes, int(prev)) //nolint:gosec
	}

	bitmap := r.bytes((len(t.columns)*len(sizes) + 7) / 8)
	if r.err != nil {
		return nil, r.err
	}

	present := 0
	for _, b := range bitmap {
		present += bits.OnesCount8(b)
	}
	if present != int(h.CellCount) {
		return nil, fmt.Errorf("%w: bitmap has %d cells, header says %d", errs.ErrInvalidSnapshot, present, h.CellCount)
	}

	for c, name := range t.columns {
		for row, s := range sizes {
			i := c*len(sizes) + row
			if bitmap[i/8]&(1<<(i%8)) == 0 {
				continue
			}
			v := math.Float64frombits(r.uint64())
			if r.err != nil {
				return nil, r.err
			}
			if err := t.Put(name, s, v); err != nil {
				return nil, fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
			}
		}
	}
	if r.off != len(raw) {
		return nil, fmt.Errorf("%w: %d trailing bytes", errs.ErrInvalidSnapshot, len(raw)-r.off)
	}

	t.Meta = metaFromHeader(h)

	return t, nil
}

func putString(buf *pool.ByteBuffer, s string) {
	buf.B = binary.AppendUvarint(buf.B, uint64(len(s)))
	_, _ = buf.WriteString(s)
}

// payloadReader reads sequential fields and remembers the first error.
type payloadReader struct {
	data   []byte
	off    int
	engine endian.EndianEngine
	err    error
}

func (r *payloadReader) fail(msg string) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %s at offset %d", errs.ErrInvalidSnapshot, msg, r.off)
	}
}

func (r *payloadReader) uvarint() uint64 {
	if r.err != nil {
		return 0
	}
	v, n := binary.Uvarint(r.data[r.off:])
	if n <= 0 {
		r.fail("bad varint")
		return 0
	}
	r.off += n

	return v
}

func (r *payloadReader) bytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || n > len(r.data)-r.off {
		r.fail("truncated payload")
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n

	return b
}

func (r *payloadReader) string() string {
	n := r.uvarint()
	if n > uint64(len(r.data)) {
		r.fail("string length out of range")
		return ""
	}

	return string(r.bytes(int(n)))
}

func (r *payloadReader) uint64() uint64 {
	b := r.bytes(8)
	if r.err != nil {
		return 0
	}

	return r.engine.Uint64(b)
}
