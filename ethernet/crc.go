package ethernet

import (
	"hash/crc32"
)

//
// CRC API.
//

// crcTable is the IEEE CRC-32 table used for Ethernet FCS calculation.
var crcTable = crc32.MakeTable(crc32.IEEE)

// CRC32 calculates the reflected CRC-32 (CRC-32/ISO-HDLC) of data. This is the
// same checksum used for the Ethernet Frame Check Sequence and the one the MAC
// hash filter samples: polynomial 0xEDB88320, initial value and final XOR 0xFFFFFFFF.
// Empty data is valid and returns 0.
func CRC32(data []byte) uint32 {
	return crc32.Checksum(data, crcTable)
}
