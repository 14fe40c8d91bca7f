package section

import (
	"fmt"

	"github.com/arloliu/asymptote/endian"
	"github.com/arloliu/asymptote/errs"
	"github.com/arloliu/asymptote/format"
)

// SnapshotFlag is the packed first word of a snapshot header.
type SnapshotFlag struct {
	// Options packs the byte-order and run-ID bits with the magic number.
	Options uint16
	// Version is the payload layout version.
	Version uint8
	// CompressionType is the codec applied to the payload.
	CompressionType uint8
}

var validCompressions = map[uint8]struct{}{
	uint8(format.CompressionNone): {},
	uint8(format.CompressionZstd): {},
	uint8(format.CompressionS2):   {},
	uint8(format.CompressionLZ4):  {},
}

// NewSnapshotFlag returns a little-endian, zstd-compressed flag.
func NewSnapshotFlag() SnapshotFlag {
	return SnapshotFlag{
		Options:         MagicTableV1Opt,
		Version:         Version,
		CompressionType: uint8(format.CompressionZstd),
	}
}

// IsBigEndian reports whether multi-byte fields are big-endian.
func (f SnapshotFlag) IsBigEndian() bool {
	return f.Options&EndiannessMask != 0
}

// WithByteOrder records the byte order.
func (f *SnapshotFlag) WithByteOrder(o endian.Order) {
	if o == endian.Big {
		f.Options |= EndiannessMask
	} else {
		f.Options &^= EndiannessMask
	}
}

// ByteOrder returns the recorded byte order.
func (f SnapshotFlag) ByteOrder() endian.Order {
	if f.IsBigEndian() {
		return endian.Big
	}

	return endian.Little
}

// GetEndianEngine returns the engine matching the byte-order bit.
func (f SnapshotFlag) GetEndianEngine() endian.EndianEngine {
	return f.ByteOrder().Engine()
}

// HasRunID reports whether the header carries a run identifier.
func (f SnapshotFlag) HasRunID() bool {
	return f.Options&RunIDMask != 0
}

// WithRunID sets or clears the run-ID bit.
func (f *SnapshotFlag) WithRunID(present bool) {
	if present {
		f.Options |= RunIDMask
	} else {
		f.Options &^= RunIDMask
	}
}

// Compression returns the payload codec.
func (f SnapshotFlag) Compression() format.CompressionType {
	return format.CompressionType(f.CompressionType)
}

// WithCompression sets the payload codec.
func (f *SnapshotFlag) WithCompression(c format.CompressionType) {
	f.CompressionType = uint8(c)
}

// Validate checks magic, reserved bits, version and codec.
func (f SnapshotFlag) Validate() error {
	if f.Options&MagicNumberMask != MagicTableV1Opt {
		return fmt.Errorf("%w: bad magic 0x%04x", errs.ErrInvalidSnapshot, f.Options&MagicNumberMask)
	}
	if f.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved bits set", errs.ErrInvalidSnapshot)
	}
	if f.Version != Version {
		return fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidSnapshot, f.Version)
	}
	if _, ok := validCompressions[f.CompressionType]; !ok {
		return fmt.Errorf("%w: unknown compression 0x%02x", errs.ErrInvalidSnapshot, f.CompressionType)
	}

	return nil
}
