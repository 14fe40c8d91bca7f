package pool

import "sync"

const (
	// SnapshotBufferDefaultSize is the initial capacity of pooled snapshot buffers.
	SnapshotBufferDefaultSize = 4 * 1024
	// SnapshotBufferMaxThreshold is the largest buffer kept for reuse.
	SnapshotBufferMaxThreshold = 1024 * 1024
)

// ByteBuffer is a growable byte slice used while encoding result snapshots.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given initial capacity.
func NewByteBuffer(size int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, size)}
}

// Bytes returns the buffered bytes. The slice is only valid until the buffer
// is reset or returned to the pool.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the number of buffered bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer and keeps its capacity.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Grow makes room for n more bytes.
//
// Small buffers grow by SnapshotBufferDefaultSize, larger ones by a quarter of
// their capacity, and never by less than n.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	growBy := SnapshotBufferDefaultSize
	if cap(bb.B) > 4*SnapshotBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < n {
		growBy = n
	}

	buf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(buf, bb.B)
	bb.B = buf
}

// Write appends data to the buffer. It never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)

	return len(data), nil
}

// WriteString appends s to the buffer. It never fails.
func (bb *ByteBuffer) WriteString(s string) (int, error) {
	bb.Grow(len(s))
	bb.B = append(bb.B, s...)

	return len(s), nil
}

var snapshotPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(SnapshotBufferDefaultSize)
	},
}

// GetSnapshotBuffer takes an empty buffer from the pool.
//
// Returns:
//   - *ByteBuffer: Empty buffer; return it with PutSnapshotBuffer
func GetSnapshotBuffer() *ByteBuffer {
	bb, _ := snapshotPool.Get().(*ByteBuffer)
	return bb
}

// PutSnapshotBuffer returns bb to the pool. Oversized buffers are dropped.
//
// Parameters:
//   - bb: Buffer from GetSnapshotBuffer; nil is ignored
func PutSnapshotBuffer(bb *ByteBuffer) {
	if bb == nil || cap(bb.B) > SnapshotBufferMaxThreshold {
		return
	}

	bb.Reset()
	snapshotPool.Put(bb)
}
