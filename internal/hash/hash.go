// Package hash wraps xxHash64 for snapshot checksums and stable column identifiers.
package hash

import "github.com/cespare/xxhash/v2"

// ID returns the xxHash64 of a column label.
func ID(label string) uint64 {
	return xxhash.Sum64String(label)
}

// Checksum returns the xxHash64 of a payload.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Digest accumulates a checksum over several byte slices, such as a snapshot
// header followed by its payload.
type Digest struct {
	d *xxhash.Digest
}

// NewDigest returns an empty Digest.
func NewDigest() Digest {
	return Digest{d: xxhash.New()}
}

// Write appends data to the running checksum.
func (d Digest) Write(data []byte) {
	_, _ = d.d.Write(data)
}

// Sum64 returns the current checksum.
func (d Digest) Sum64() uint64 {
	return d.d.Sum64()
}
