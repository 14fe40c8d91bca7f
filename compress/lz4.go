package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

const (
	lz4Block byte = 0
	lz4Raw   byte = 1

	// lz4MaxDecodedSize bounds allocations driven by a corrupted length prefix.
	lz4MaxDecodedSize = 128 * 1024 * 1024
)

var errLZ4Corrupt = errors.New("lz4: corrupted snapshot payload")

// LZ4Compressor uses the LZ4 block format. The block format does not record
// the decoded size, so each payload is framed as:
//
//	uvarint(decoded length) | mode byte | body
//
// where mode is lz4Block or lz4Raw (incompressible input stored verbatim).
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor returns an LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress encodes data as a length-prefixed LZ4 block.
//
// Uses a pooled lz4.Compressor. Input that does not shrink is stored raw.
//
// Parameters:
//   - data: Snapshot payload to compress
//
// Returns:
//   - []byte: Framed payload (nil if input is empty)
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	header := binary.AppendUvarint(nil, uint64(len(data)))
	dst := make([]byte, len(header)+1+lz4.CompressBlockBound(len(data)))
	copy(dst, header)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	body := dst[len(header)+1:]
	n, err := lc.CompressBlock(data, body)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	if n == 0 || n >= len(data) {
		dst[len(header)] = lz4Raw
		return append(dst[:len(header)+1], data...), nil
	}

	dst[len(header)] = lz4Block

	return dst[:len(header)+1+n], nil
}

// Decompress decodes a payload produced by Compress.
//
// Parameters:
//   - data: Framed payload produced by Compress
//
// Returns:
//   - []byte: Decompressed payload (nil if input is empty)
//   - error: errLZ4Corrupt on a bad frame or a decoded size above 128MB, or
//     the lz4 decoding error
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, k := binary.Uvarint(data)
	if k <= 0 || k >= len(data) || size > lz4MaxDecodedSize {
		return nil, errLZ4Corrupt
	}

	mode, body := data[k], data[k+1:]
	switch mode {
	case lz4Raw:
		if uint64(len(body)) != size {
			return nil, errLZ4Corrupt
		}

		return append([]byte(nil), body...), nil
	case lz4Block:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
		if uint64(n) != size {
			return nil, errLZ4Corrupt
		}

		return out, nil
	default:
		return nil, errLZ4Corrupt
	}
}
