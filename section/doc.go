// Package section defines the fixed binary header of a results snapshot.
//
// A snapshot is a header followed by one codec-compressed payload:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (56 bytes, fixed)                                │
//	│  - Flag (4 bytes): options/magic, version, compression  │
//	│  - Counts (12 bytes): columns, phase, sizes, cells      │
//	│  - Lengths (8 bytes): stored and raw payload size       │
//	│  - CreatedAt (8 bytes): unix microseconds               │
//	│  - RunID (16 bytes)                                     │
//	│  - Checksum (8 bytes): xxHash64 of header + raw payload │
//	├─────────────────────────────────────────────────────────┤
//	│ Payload (PayloadSize bytes, compressed)                 │
//	└─────────────────────────────────────────────────────────┘
//
// The first two bytes are always little-endian so a reader can find the
// byte-order bit before decoding anything else. All remaining header fields
// use the byte order recorded there.
package section
