package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	require.Equal(t, ID("Conventional"), ID("Conventional"))
	require.NotEqual(t, ID("Conventional"), ID("Strassen"))
	require.Equal(t, Checksum([]byte("Strassen")), ID("Strassen"))
}

func TestDigestMatchesChecksum(t *testing.T) {
	header := []byte("header")
	payload := []byte("payload bytes")

	d := NewDigest()
	d.Write(header)
	d.Write(payload)

	whole := append(append([]byte{}, header...), payload...)
	require.Equal(t, Checksum(whole), d.Sum64())
}
