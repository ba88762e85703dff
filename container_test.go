package bytehuff

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncoded_MarshalBinary(t *testing.T) {
	enc, err := Encode([]byte("ABBCCC"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	raw, err := enc.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}

	expect := []byte{
		'B', 'H', 'F', '1',
		0x05,
		0x00,
		0x01, 'C', 0x03,
		0x00,
		0x01, 'A', 0x01,
		0x01, 'B', 0x02,
		0x09,
		0xbc, 0x00,
	}
	if !bytes.Equal(expect, raw) {
		t.Errorf("wrong output:\n\texpect: %#v\n\tactual: %#v", expect, raw)
	}

	var dec Encoded
	if err := dec.UnmarshalBinary(raw); err != nil {
		t.Fatalf("UnmarshalBinary failed: %v", err)
	}
	if *dec.Codes != *enc.Codes {
		t.Errorf("code tables differ after round trip")
	}
	if dec.Tree.Weight() != 6 {
		t.Errorf("expected tree weight 6, got %d", dec.Tree.Weight())
	}
	out, err := dec.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if string(out) != "ABBCCC" {
		t.Errorf("wrong output: %q", out)
	}
}

func TestEncoded_WriteTo(t *testing.T) {
	input := bytes.Repeat([]byte("mississippi river "), 50)
	enc, err := Encode(input)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var buf bytes.Buffer
	n, err := enc.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo reported %d bytes, wrote %d", n, buf.Len())
	}

	var dec Encoded
	if _, err := dec.ReadFrom(&buf); err != nil {
		t.Fatalf("ReadFrom failed: %v", err)
	}
	out, err := dec.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(out, input) {
		t.Errorf("round trip mismatch")
	}
}

func TestEncoded_SingleSymbolContainer(t *testing.T) {
	enc, err := Encode(bytes.Repeat([]byte{0x41}, 10))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	raw, err := enc.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}

	expect := []byte{'B', 'H', 'F', '1', 0x01, 0x01, 0x41, 0x0a, 0x0a, 0x00, 0x00}
	if !bytes.Equal(expect, raw) {
		t.Errorf("wrong output:\n\texpect: %#v\n\tactual: %#v", expect, raw)
	}

	var dec Encoded
	if err := dec.UnmarshalBinary(raw); err != nil {
		t.Fatalf("UnmarshalBinary failed: %v", err)
	}
	if out, err := dec.Decode(); err != nil || !bytes.Equal(out, bytes.Repeat([]byte{0x41}, 10)) {
		t.Errorf("wrong output: %q, %v", out, err)
	}
}

func TestEncoded_UnmarshalBinary_Errors(t *testing.T) {
	header := func(rest ...byte) []byte {
		return append([]byte("BHF1"), rest...)
	}

	type testRow struct {
		name   string
		raw    []byte
		expect error
	}

	testData := [...]testRow{
		{name: "empty", raw: nil, expect: ErrBadHeader},
		{name: "bad-magic", raw: []byte("HUF1\x01\x01A\x01\x01\x00"), expect: ErrBadHeader},
		{name: "no-node-count", raw: header(), expect: ErrBadHeader},
		{name: "zero-nodes", raw: header(0x00), expect: ErrEmptyAlphabet},
		{name: "too-many-nodes", raw: header(0x80, 0x04), expect: ErrStructuralCorruption},
		{name: "missing-child", raw: header(0x02, 0x00, 0x01, 'A', 0x01, 0x01, 0x00), expect: ErrStructuralCorruption},
		{name: "trailing-node", raw: header(0x02, 0x01, 'A', 0x01, 0x01, 'B', 0x01, 0x01, 0x00), expect: ErrStructuralCorruption},
		{name: "unknown-tag", raw: header(0x01, 0x07, 'A', 0x01, 0x01, 0x00), expect: ErrStructuralCorruption},
		{name: "short-tree", raw: header(0x03, 0x00, 0x01, 'A'), expect: ErrStructuralCorruption},
		{name: "duplicate-leaf", raw: header(0x03, 0x00, 0x01, 'A', 0x01, 0x01, 'A', 0x01, 0x02, 0x40), expect: ErrStructuralCorruption},
		{name: "no-bit-count", raw: header(0x01, 0x01, 'A', 0x01), expect: ErrBadHeader},
		{name: "short-payload", raw: header(0x01, 0x01, 'A', 0x09, 0x09, 0x00), expect: ErrTruncatedStream},
		{name: "trailing-payload", raw: header(0x01, 0x01, 'A', 0x01, 0x01, 0x00, 0x00), expect: ErrBadHeader},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			var dec Encoded
			if err := dec.UnmarshalBinary(row.raw); !errors.Is(err, row.expect) {
				t.Errorf("expected %v, got %v", row.expect, err)
			}
		})
	}
}
