package section

const (
	// Bit masks of SnapshotFlag.Options
	EndiannessMask   = 0x0001 // bit 0: 0=little, 1=big
	RunIDMask        = 0x0002 // bit 1: run ID present
	ReservedBitsMask = 0x000C // bits 2-3, must be zero
	MagicNumberMask  = 0xFFF0 // bits 4-15

	// MagicTableV1Opt identifies a results table snapshot.
	MagicTableV1Opt = 0xA5B0

	// Version is the current payload layout version.
	Version = 1
)

const (
	HeaderSize = 56 // fixed header size in bytes

	// ChecksumOffset is where the checksum field starts; the checksum covers
	// every header byte before it.
	ChecksumOffset = 48

	// MaxColumns bounds the column count stored in the uint16 header field.
	MaxColumns = 1<<16 - 1
)
