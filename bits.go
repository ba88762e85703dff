package bytehuff

import (
	"bytes"
	"fmt"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// Bitstream is a sequence of bits packed most significant bit first into
// bytes.  Len is authoritative: the unused low-order bits of the last byte are
// zero padding and never carry data.
type Bitstream struct {
	Data []byte
	Len  uint64
}

// String returns a short description of the Bitstream.
func (bs Bitstream) String() string {
	return fmt.Sprintf("(bitstream of %d bits in %d bytes)", bs.Len, len(bs.Data))
}

func byteLen(bits uint64) uint64 {
	return bits/8 + (bits%8+7)/8
}

// BitWriter accumulates bits into a Bitstream.
type BitWriter struct {
	buf bytes.Buffer
	w   *bitio.CountWriter
}

// NewBitWriter returns an empty BitWriter.
func NewBitWriter() *BitWriter {
	bw := new(BitWriter)
	bw.w = bitio.NewCountWriter(&bw.buf)
	return bw
}

// WriteBit appends a single bit.  Any non-zero value is a 1 bit.
func (bw *BitWriter) WriteBit(bit byte) {
	bw.w.TryWriteBool(bit != 0)
}

// WriteCode appends the bits of hc, first bit first.
func (bw *BitWriter) WriteCode(hc Code) {
	for i := uint(0); i < uint(hc.Size); i += 8 {
		n := uint(hc.Size) - i
		if n > 8 {
			n = 8
		}
		bw.w.TryWriteBits(uint64(hc.Bits[i/8]>>(8-n)), uint8(n))
	}
}

// Len returns the number of bits written so far.
func (bw *BitWriter) Len() uint64 {
	return uint64(bw.w.BitsCount)
}

// Finish pads the final byte with zero bits and returns the Bitstream.  The
// BitWriter must not be used afterward.
func (bw *BitWriter) Finish() Bitstream {
	n := bw.Len()
	bw.w.TryAlign()
	assert.Assertf(bw.w.TryError == nil, "write to bytes.Buffer failed: %v", bw.w.TryError)
	return Bitstream{Data: bw.buf.Bytes(), Len: n}
}

// BitReader reads bits back out of a Bitstream, never past its Len.
type BitReader struct {
	r         *bitio.Reader
	remaining uint64
}

// NewBitReader returns a BitReader positioned at the first bit of bs.  It
// fails if bs.Data is too short to hold bs.Len bits.
func NewBitReader(bs Bitstream) (*BitReader, error) {
	if need := byteLen(bs.Len); uint64(len(bs.Data)) < need {
		return nil, fmt.Errorf("%w: %d bits need %d bytes, have %d", ErrBitRequestOutOfRange, bs.Len, need, len(bs.Data))
	}
	return &BitReader{r: bitio.NewReader(bytes.NewReader(bs.Data)), remaining: bs.Len}, nil
}

// ReadBit returns the next bit, 0 or 1.
func (br *BitReader) ReadBit() (byte, error) {
	if br.remaining == 0 {
		return 0, fmt.Errorf("%w: no bits remaining", ErrBitRequestOutOfRange)
	}
	b, err := br.r.ReadBool()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBitRequestOutOfRange, err)
	}
	br.remaining--
	if b {
		return 1, nil
	}
	return 0, nil
}

// Remaining returns the number of bits left to read.
func (br *BitReader) Remaining() uint64 {
	return br.remaining
}

// Pack packs a sequence of bits, one per byte with any non-zero value
// counting as 1, into a Bitstream.
func Pack(bits []byte) Bitstream {
	bw := NewBitWriter()
	for _, bit := range bits {
		bw.WriteBit(bit)
	}
	return bw.Finish()
}

// Unpack returns the first n bits of bs, one per byte.  Asking for more bits
// than bs holds is an error; padding is never returned as data.
func Unpack(bs Bitstream, n uint64) ([]byte, error) {
	if n > bs.Len {
		return nil, fmt.Errorf("%w: requested %d bits, stream holds %d", ErrBitRequestOutOfRange, n, bs.Len)
	}
	br, err := NewBitReader(bs)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	for i := range out {
		if out[i], err = br.ReadBit(); err != nil {
			return nil, err
		}
	}
	return out, nil
}
