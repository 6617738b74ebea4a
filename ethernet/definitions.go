package ethernet

import (
	"strconv"
)

const (
	sizeHeaderNoVLAN = 14
	sizeHeaderVLAN   = 18
)

// AppendAddr appends the text representation of the hardware address to the destination buffer.
func AppendAddr(dst []byte, hwAddr [6]byte) []byte {
	for i, b := range hwAddr {
		if i != 0 {
			dst = append(dst, ':')
		}
		if b < 16 {
			dst = append(dst, '0')
		}
		dst = strconv.AppendUint(dst, uint64(b), 16)
	}
	return dst
}

// BroadcastAddr returns the all 0xff's broadcast hardware/MAC/EUI/OUI address.
func BroadcastAddr() [6]byte {
	return [6]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
}

// IsMulticastAddr reports whether the group bit (least significant bit of the
// first octet) is set. The broadcast address is a multicast address.
func IsMulticastAddr(hwAddr [6]byte) bool {
	return hwAddr[0]&1 != 0
}

// Type is the EtherType/Size field of an Ethernet header.
type Type uint16

// IsSize returns true if the field is the size of the payload
// and should NOT be interpreted as an EtherType.
func (et Type) IsSize() bool { return et <= 1500 }

// TypeVLAN marks an 802.1Q tagged frame; the actual EtherType/Size follows the tag.
const TypeVLAN Type = 0x8100
