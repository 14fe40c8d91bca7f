package format

import (
	"fmt"
	"path/filepath"
	"strings"
)

type (
	// CompressionType selects the codec applied to a snapshot payload.
	CompressionType uint8
	// TableFormat selects how a results table is rendered on disk.
	TableFormat uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone stores the payload as-is.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
)

const (
	FormatCSV      TableFormat = 0x1 // FormatCSV is the exact-reload text rendering.
	FormatMarkdown TableFormat = 0x2 // FormatMarkdown is the display rendering, write-only.
	FormatSnapshot TableFormat = 0x3 // FormatSnapshot is the compressed binary rendering.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a case-insensitive name ("none", "zstd", "s2", "lz4")
// to a CompressionType.
func ParseCompressionType(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", name)
	}
}

func (f TableFormat) String() string {
	switch f {
	case FormatCSV:
		return "CSV"
	case FormatMarkdown:
		return "Markdown"
	case FormatSnapshot:
		return "Snapshot"
	default:
		return "Unknown"
	}
}

// Extension returns the file extension, including the dot.
func (f TableFormat) Extension() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatMarkdown:
		return ".md"
	case FormatSnapshot:
		return ".snap"
	default:
		return ""
	}
}

// Reloadable reports whether a table can be read back from this format.
func (f TableFormat) Reloadable() bool {
	return f == FormatCSV || f == FormatSnapshot
}

// FormatFromPath infers the table format from a file extension.
func FormatFromPath(path string) (TableFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".md":
		return FormatMarkdown, nil
	case ".snap":
		return FormatSnapshot, nil
	default:
		return 0, fmt.Errorf("cannot infer table format from %q", path)
	}
}
