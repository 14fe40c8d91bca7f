package endian

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderEngine(t *testing.T) {
	le := Little.Engine()
	be := Big.Engine()

	buf := le.AppendUint32(nil, 0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf)

	buf = be.AppendUint32(nil, 0x01020304)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, buf)

	require.Equal(t, uint32(0x01020304), be.Uint32(buf))
	require.Equal(t, GetLittleEndianEngine(), Order(9).Engine())
	require.Equal(t, "big", Big.String())
	require.Equal(t, "little", Little.String())
}
