package bytehuff

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

func TestEncode(t *testing.T) {
	type testRow struct {
		name   string
		input  string
		bits   uint64
		packed []byte
	}

	testData := [...]testRow{
		// C="0" A="10" B="11": the C leaf ties with the A+B node and wins.
		{name: "ABBCCC", input: "ABBCCC", bits: 9, packed: []byte{0xbc, 0x00}},
		{name: "CCCBBA", input: "CCCBBA", bits: 9, packed: []byte{0x1f, 0x00}},
		{name: "AB", input: "AB", bits: 2, packed: []byte{0x40}},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			enc, err := Encode([]byte(row.input))
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if enc.Bits.Len != row.bits {
				t.Errorf("expected %d bits, got %d", row.bits, enc.Bits.Len)
			}
			if !bytes.Equal(enc.Bits.Data, row.packed) {
				t.Errorf("wrong output:\n\texpect: %#v\n\tactual: %#v", row.packed, enc.Bits.Data)
			}
			if enc.Tree.Weight() != uint64(len(row.input)) {
				t.Errorf("expected tree weight %d, got %d", len(row.input), enc.Tree.Weight())
			}
		})
	}
}

func TestEncode_SingleSymbol(t *testing.T) {
	enc, err := Encode(bytes.Repeat([]byte{0x41}, 10))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if root := enc.Tree.Node(enc.Tree.Root()); !root.IsLeaf() || root.Symbol != 0x41 {
		t.Errorf("expected a single leaf root, got %+v", root)
	}
	if hc := enc.Codes.Encode(0x41); hc != MakeCode(1, 0) {
		t.Errorf("expected code \"0\", got %s", hc)
	}
	if enc.Bits.Len != 10 {
		t.Errorf("expected 10 bits, got %d", enc.Bits.Len)
	}
	if !bytes.Equal(enc.Bits.Data, []byte{0x00, 0x00}) {
		t.Errorf("expected all-zero bits, got %#v", enc.Bits.Data)
	}

	out, err := enc.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(out, bytes.Repeat([]byte{0x41}, 10)) {
		t.Errorf("wrong output: %q", out)
	}
}

func TestEncode_Empty(t *testing.T) {
	if _, err := Encode(nil); !errors.Is(err, ErrEmptyAlphabet) {
		t.Errorf("expected ErrEmptyAlphabet, got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	all := make([]byte, NumSymbols)
	for i := range all {
		all[i] = byte(i)
	}

	rng := rand.New(rand.NewSource(7))
	random := make([]byte, 4096)
	rng.Read(random)

	skewed := make([]byte, 10000)
	for i := range skewed {
		// Roughly geometric, so code lengths vary widely.
		n := 0
		for n < 40 && rng.Intn(2) == 0 {
			n++
		}
		skewed[i] = byte('a' + n)
	}

	inputs := map[string][]byte{
		"one-byte":   {0x00},
		"two-bytes":  {0xff, 0x00},
		"text":       []byte("the quick brown fox jumps over the lazy dog"),
		"all-bytes":  all,
		"random":     random,
		"skewed":     skewed,
		"repetitive": bytes.Repeat([]byte("abcab"), 333),
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			for _, workers := range []int{1, 4} {
				enc, err := Encode(input, WithWorkers(workers))
				if err != nil {
					t.Fatalf("Encode failed: %v", err)
				}
				if n := enc.Codes.EncodedSize(CountFrequencies(input)); n != enc.Bits.Len {
					t.Errorf("expected %d bits from code lengths, got %d", n, enc.Bits.Len)
				}

				out, err := Decode(enc.Tree, enc.Bits)
				if err != nil {
					t.Fatalf("Decode failed: %v", err)
				}
				if !bytes.Equal(out, input) {
					t.Errorf("round trip mismatch: %d bytes in, %d bytes out", len(input), len(out))
				}
			}
		})
	}
}

func TestDecode_Truncated(t *testing.T) {
	enc, err := Encode([]byte("CCCBBA"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// The last code is "10"; dropping its final bit leaves the walk at an
	// internal node.
	bs := enc.Bits
	bs.Len--
	if _, err := Decode(enc.Tree, bs); !errors.Is(err, ErrTruncatedStream) {
		t.Errorf("expected ErrTruncatedStream, got %v", err)
	}
}

func TestDecode_Errors(t *testing.T) {
	enc, err := Encode([]byte("ABBCCC"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// Dropping the final "0" ends cleanly at the root, one symbol short of
	// the tree's weight.
	short := &Encoded{Tree: enc.Tree, Codes: enc.Codes, Bits: Bitstream{Data: enc.Bits.Data, Len: 8}}
	if out, err := Decode(short.Tree, short.Bits); err != nil || string(out) != "ABBCC" {
		t.Errorf("expected \"ABBCC\", got %q, %v", out, err)
	}
	if _, err := short.Decode(); !errors.Is(err, ErrCorruptStream) {
		t.Errorf("expected ErrCorruptStream, got %v", err)
	}

	if _, err := Decode(enc.Tree, Bitstream{Data: []byte{0xbc}, Len: 9}); !errors.Is(err, ErrBitRequestOutOfRange) {
		t.Errorf("expected ErrBitRequestOutOfRange, got %v", err)
	}

	if _, err := Decode(nil, enc.Bits); !errors.Is(err, ErrEmptyAlphabet) {
		t.Errorf("expected ErrEmptyAlphabet, got %v", err)
	}

	single, err := Encode([]byte("zzz"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if _, err := Decode(single.Tree, Pack([]byte{0, 1, 0})); !errors.Is(err, ErrCorruptStream) {
		t.Errorf("expected ErrCorruptStream, got %v", err)
	}
}
