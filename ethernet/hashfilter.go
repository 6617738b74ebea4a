package ethernet

import (
	"fmt"
	"math/bits"

	"github.com/soypat/machash"
)

// HashIndex is the 6-bit position in the MAC's 64-bit hash filter table selected
// by a destination address. Valid values are in the range 0..63.
type HashIndex uint8

// HashTableSize is the number of bits in the hash filter table.
const HashTableSize = 64

const hashIndexMask = HashTableSize - 1

// String returns the index as two lowercase hex digits.
func (hi HashIndex) String() string {
	return fmt.Sprintf("%02x", uint8(hi))
}

// Registers returns the pair of hash table register words with only the bit
// corresponding to hi set. Bit 5 of hi selects the high register (HTH),
// bits 0..4 select the bit within the register.
func (hi HashIndex) Registers() (hth, htl uint32) {
	bit := uint32(1) << (hi & 0x1f)
	if hi&0x20 != 0 {
		return bit, 0
	}
	return 0, bit
}

// Reflect32 returns x with its bit order reversed; bit 0 becomes bit 31 and so on.
// Reflect32(Reflect32(x)) == x for all x.
func Reflect32(x uint32) uint32 {
	return bits.Reverse32(x)
}

// HashIndexOf returns the hash filter index for data. The MAC shifts bits into its
// CRC register LSB first and samples the upper 6 bits of the bit-reversed result,
// so the CRC must be reflected before extracting the index.
func HashIndexOf(data []byte) HashIndex {
	return HashIndex(Reflect32(CRC32(data))>>26) & hashIndexMask
}

// AddrHashIndex returns the hash filter index of a hardware address. addr must be
// exactly 6 bytes long, otherwise an error wrapping [machash.ErrInvalidInput] is returned.
func AddrHashIndex(addr []byte) (HashIndex, error) {
	if len(addr) != 6 {
		return 0, fmt.Errorf("ethernet: hardware address length %d, want 6: %w", len(addr), machash.ErrInvalidInput)
	}
	return HashIndexOf(addr), nil
}

// HashTable holds the two 32-bit hash table registers of the MAC hash filter.
// The zero value is an empty filter table that matches no address.
type HashTable struct {
	High uint32 // HTH: indices 32..63.
	Low  uint32 // HTL: indices 0..31.
}

// HashTableOf returns a HashTable with all of indices set.
func HashTableOf(indices ...HashIndex) HashTable {
	var ht HashTable
	for _, hi := range indices {
		ht.Set(hi)
	}
	return ht
}

// Set sets the bit of index hi in the table.
func (ht *HashTable) Set(hi HashIndex) {
	hth, htl := hi.Registers()
	ht.High |= hth
	ht.Low |= htl
}

// Add sets the bit selected by the hardware address addr and returns its index.
func (ht *HashTable) Add(addr [6]byte) HashIndex {
	hi := HashIndexOf(addr[:])
	ht.Set(hi)
	return hi
}

// Merge sets all bits set in other.
func (ht *HashTable) Merge(other HashTable) {
	ht.High |= other.High
	ht.Low |= other.Low
}

// Has reports whether the bit of index hi is set.
func (ht HashTable) Has(hi HashIndex) bool {
	hth, htl := hi.Registers()
	return ht.High&hth != 0 || ht.Low&htl != 0
}

// Match reports whether a frame destined to addr passes the hash filter.
// Collisions are inherent: any address sharing a set index also passes.
func (ht HashTable) Match(addr [6]byte) bool {
	return ht.Has(HashIndexOf(addr[:]))
}

// Len returns the number of indices set in the table.
func (ht HashTable) Len() int {
	return bits.OnesCount32(ht.High) + bits.OnesCount32(ht.Low)
}

// Uint64 returns the table as a single 64-bit bitmap where bit n is index n.
func (ht HashTable) Uint64() uint64 {
	return uint64(ht.High)<<32 | uint64(ht.Low)
}

// String formats the table registers the way they are written to the MAC.
func (ht HashTable) String() string {
	return fmt.Sprintf("HTH = 0x%08x, HTL = 0x%08x", ht.High, ht.Low)
}
