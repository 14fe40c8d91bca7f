// Package compress provides the codecs applied to results-table snapshots.
//
// A snapshot payload is a small columnar encoding of the measured means
// (see package table). The payload is compressed as a whole with one of:
//
//   - None: stored as-is (format.CompressionNone)
//   - Zstd: best ratio, the default for snapshots (format.CompressionZstd)
//   - S2:   fast Snappy-compatible compression (format.CompressionS2)
//   - LZ4:  LZ4 block format with a length prefix (format.CompressionLZ4)
//
// Codecs are stateless values and safe for concurrent use; zstd encoders and
// decoders are pooled internally.
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
package compress
