package bytehuff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// MaxCodeSize is the bit length of the longest possible code.  A tree over
// NumSymbols leaves is at most NumSymbols-1 levels deep.
const MaxCodeSize = NumSymbols - 1

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The most significant bit
	// of Bits[0] is the first bit, and unused trailing bits are zero.
	Bits [(MaxCodeSize + 7) / 8]byte
}

// MakeCode is a convenience function that constructs a Code from the low
// size bits of bits.  The most significant of those bits is the first bit.
func MakeCode(size byte, bits uint64) Code {
	assert.Assertf(size <= 64, "size %d > 64", size)

	var hc Code
	for i := byte(0); i < size; i++ {
		hc = hc.Append(byte(bits>>(size-1-i)) & 1)
	}
	return hc
}

// Bit returns the i'th bit of the Code, counting from 0.
func (hc Code) Bit(i int) byte {
	assert.Assertf(i >= 0 && i < int(hc.Size), "bit index %d out of range [0, %d)", i, hc.Size)
	return (hc.Bits[i/8] >> (7 - uint(i%8))) & 1
}

// Append returns a copy of the Code with one more bit at the end.
func (hc Code) Append(bit byte) Code {
	assert.Assertf(hc.Size < MaxCodeSize, "code already holds %d bits", hc.Size)

	i := uint(hc.Size)
	if bit != 0 {
		hc.Bits[i/8] |= 0x80 >> (i % 8)
	}
	hc.Size++
	return hc
}

// HasPrefix returns true iff prefix is a (possibly equal) prefix of hc.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	for i := 0; i < int(prefix.Size); i++ {
		if hc.Bit(i) != prefix.Bit(i) {
			return false
		}
	}
	return true
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	var sb strings.Builder
	sb.Grow(int(hc.Size))
	for i := 0; i < int(hc.Size); i++ {
		sb.WriteByte('0' + hc.Bit(i))
	}
	return strconv.Quote(sb.String())
}

var _ fmt.Stringer = Code{}
