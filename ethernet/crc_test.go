package ethernet

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// crc32Bitwise is the byte-at-a-time, bit-by-bit reflected CRC-32 as the MAC computes it.
func crc32Bitwise(data []byte) uint32 {
	const poly = 0xedb88320
	crc := uint32(0xffffffff)
	for _, b := range data {
		crc ^= uint32(b)
		for i := 0; i < 8; i++ {
			lsb := crc & 1
			crc >>= 1
			if lsb != 0 {
				crc ^= poly
			}
		}
	}
	return crc ^ 0xffffffff
}

func TestCRC32(t *testing.T) {
	t.Run("check value", func(t *testing.T) {
		require.Equal(t, uint32(0xcbf43926), CRC32([]byte("123456789")))
	})

	t.Run("empty input", func(t *testing.T) {
		require.Zero(t, CRC32(nil))
		require.Zero(t, CRC32([]byte{}))
	})

	t.Run("matches bitwise reference", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		buf := make([]byte, 256)
		for i := 0; i < 1024; i++ {
			data := buf[:rng.Intn(len(buf))]
			rng.Read(data)
			require.Equal(t, crc32Bitwise(data), CRC32(data), "len=%d", len(data))
		}
	})

	t.Run("no state between calls", func(t *testing.T) {
		addr := []byte{0x1f, 0x52, 0x41, 0x9c, 0xb6, 0xaf}
		first := CRC32(addr)
		CRC32([]byte("unrelated"))
		require.Equal(t, first, CRC32(addr))
	})
}
