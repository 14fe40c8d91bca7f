// Package endian selects the byte order used by binary result snapshots.
//
// Snapshots are written little-endian by default; the chosen order is recorded
// in the snapshot header so a reader never has to guess.
package endian

import "encoding/binary"

// EndianEngine combines read/write and append access for one byte order.
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Order identifies a byte order inside a snapshot header.
type Order uint8

const (
	Little Order = 0
	Big    Order = 1
)

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// Engine returns the engine for o. Unknown values fall back to little-endian.
func (o Order) Engine() EndianEngine {
	if o == Big {
		return GetBigEndianEngine()
	}

	return GetLittleEndianEngine()
}

func (o Order) String() string {
	if o == Big {
		return "big"
	}

	return "little"
}
