package ethernet

import (
	"encoding/binary"
	"fmt"

	"github.com/soypat/machash"
)

// NewFrame returns a read-only view of the Ethernet frame in buf. buf starts at the
// destination address (no preamble) and must hold the full header and, if the
// EtherType field is a payload size, the full payload. Otherwise an error wrapping
// [machash.ErrShortFrame] is returned.
func NewFrame(buf []byte) (Frame, error) {
	efrm := Frame{buf: buf}
	if err := efrm.validateSize(); err != nil {
		return Frame{}, err
	}
	return efrm, nil
}

// Frame exposes the fields of an Ethernet frame the MAC address filter looks at.
// See [IEEE 802.3].
//
// [IEEE 802.3]: https://standards.ieee.org/ieee/802.3/7071/
type Frame struct {
	buf []byte
}

func (efrm Frame) validateSize() error {
	if len(efrm.buf) < sizeHeaderNoVLAN {
		return fmt.Errorf("ethernet: got %d bytes, header needs %d: %w", len(efrm.buf), sizeHeaderNoVLAN, machash.ErrShortFrame)
	}
	hl := sizeHeaderNoVLAN
	if efrm.EtherTypeOrSize() == TypeVLAN {
		hl = sizeHeaderVLAN
		if len(efrm.buf) < hl {
			return fmt.Errorf("ethernet: got %d bytes, VLAN header needs %d: %w", len(efrm.buf), hl, machash.ErrShortFrame)
		}
	}
	if sz := efrm.payloadType(); sz.IsSize() && len(efrm.buf) < hl+int(sz) {
		return fmt.Errorf("ethernet: got %d bytes, size field needs %d: %w", len(efrm.buf), hl+int(sz), machash.ErrShortFrame)
	}
	return nil
}

// payloadType returns the EtherType/Size field following any VLAN tag.
func (efrm Frame) payloadType() Type {
	if efrm.EtherTypeOrSize() == TypeVLAN {
		return Type(binary.BigEndian.Uint16(efrm.buf[16:18]))
	}
	return efrm.EtherTypeOrSize()
}

// Payload returns the data following the header, limited to the size field when
// the frame carries one. The underlying buffer is shared with the caller and is
// re-checked, so an error is returned if it was modified into an inconsistent frame.
func (efrm Frame) Payload() ([]byte, error) {
	if err := efrm.validateSize(); err != nil {
		return nil, err
	}
	hl := sizeHeaderNoVLAN
	if efrm.EtherTypeOrSize() == TypeVLAN {
		hl = sizeHeaderVLAN
	}
	if sz := efrm.payloadType(); sz.IsSize() {
		return efrm.buf[hl : hl+int(sz)], nil
	}
	return efrm.buf[hl:], nil
}

// DestinationHardwareAddr returns the target's MAC/hardware address for the ethernet packet.
func (efrm Frame) DestinationHardwareAddr() [6]byte {
	return [6]byte(efrm.buf[0:6])
}

// SourceHardwareAddr returns the sender's MAC/hardware address of the ethernet packet.
func (efrm Frame) SourceHardwareAddr() [6]byte {
	return [6]byte(efrm.buf[6:12])
}

// EtherTypeOrSize returns the EtherType/Size field at octet 12.
func (efrm Frame) EtherTypeOrSize() Type {
	return Type(binary.BigEndian.Uint16(efrm.buf[12:14]))
}

// IsBroadcast returns true if the destination is the broadcast address ff:ff:ff:ff:ff:ff, false otherwise.
func (efrm Frame) IsBroadcast() bool {
	return efrm.DestinationHardwareAddr() == BroadcastAddr()
}

// IsMulticast returns true if the destination address has the group bit set.
func (efrm Frame) IsMulticast() bool {
	return IsMulticastAddr(efrm.DestinationHardwareAddr())
}

// DestinationHashIndex returns the hash filter index the MAC computes
// for the frame's destination address.
func (efrm Frame) DestinationHashIndex() HashIndex {
	return HashIndexOf(efrm.buf[0:6])
}

// PassesHashFilter reports whether the frame's destination address hits a bit set in ht.
func (efrm Frame) PassesHashFilter(ht HashTable) bool {
	return ht.Has(efrm.DestinationHashIndex())
}
