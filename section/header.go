package section

import (
	"fmt"
	"time"

	"github.com/arloliu/asymptote/errs"
)

// SnapshotHeader is the fixed-size header at the start of a snapshot.
type SnapshotHeader struct {
	Flag SnapshotFlag // byte offset 0-3

	ColumnCount uint16 // byte offset 4-5
	// Phase is the workflow state that produced the snapshot.
	Phase uint8 // byte offset 6, offset 7 reserved
	SizeCount uint32 // byte offset 8-11
	CellCount uint32 // byte offset 12-15

	// PayloadSize is the stored (compressed) payload length.
	PayloadSize uint32 // byte offset 16-19
	// RawSize is the payload length before compression.
	RawSize uint32 // byte offset 20-23

	CreatedAt int64    // byte offset 24-31, unix microseconds
	RunID     [16]byte // byte offset 32-47
	Checksum  uint64   // byte offset 48-55, xxHash64 of header bytes 0-47 and the raw payload
}

// NewSnapshotHeader creates a header stamped with createdAt. Counts, sizes
// and checksum are filled in by the encoder.
func NewSnapshotHeader(createdAt time.Time) *SnapshotHeader {
	return &SnapshotHeader{
		Flag:      NewSnapshotFlag(),
		CreatedAt: createdAt.UnixMicro(),
	}
}

// Bytes serializes the header.
func (h *SnapshotHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := h.Flag.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.Version
	b[3] = h.Flag.CompressionType
	engine.PutUint16(b[4:6], h.ColumnCount)
	b[6] = h.Phase
	engine.PutUint32(b[8:12], h.SizeCount)
	engine.PutUint32(b[12:16], h.CellCount)
	engine.PutUint32(b[16:20], h.PayloadSize)
	engine.PutUint32(b[20:24], h.RawSize)
	engine.PutUint64(b[24:32], uint64(h.CreatedAt)) //nolint:gosec
	copy(b[32:48], h.RunID[:])
	engine.PutUint64(b[48:56], h.Checksum)

	return b
}

// Parse decodes exactly HeaderSize bytes.
func (h *SnapshotHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: header is %d bytes, want %d", errs.ErrInvalidSnapshot, len(data), HeaderSize)
	}

	h.Flag.Options = uint16(data[0]) | uint16(data[1])<<8
	h.Flag.Version = data[2]
	h.Flag.CompressionType = data[3]
	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.GetEndianEngine()
	h.ColumnCount = engine.Uint16(data[4:6])
	h.Phase = data[6]
	h.SizeCount = engine.Uint32(data[8:12])
	h.CellCount = engine.Uint32(data[12:16])
	h.PayloadSize = engine.Uint32(data[16:20])
	h.RawSize = engine.Uint32(data[20:24])
	h.CreatedAt = int64(engine.Uint64(data[24:32])) //nolint:gosec
	copy(h.RunID[:], data[32:48])
	h.Checksum = engine.Uint64(data[48:56])

	return nil
}

// CreatedAtTime returns CreatedAt as a time.Time.
func (h *SnapshotHeader) CreatedAtTime() time.Time {
	return time.UnixMicro(h.CreatedAt)
}

// ParseSnapshotHeader parses the header at the start of data.
func ParseSnapshotHeader(data []byte) (SnapshotHeader, error) {
	if len(data) < HeaderSize {
		return SnapshotHeader{}, fmt.Errorf("%w: %d bytes is shorter than the header", errs.ErrInvalidSnapshot, len(data))
	}

	var h SnapshotHeader
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return SnapshotHeader{}, err
	}

	return h, nil
}
