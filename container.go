package bytehuff

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"fmt"
	"io"
)

// Serialized form of an Encoded value:
//
//	magic      "BHF1"
//	nodeCount  uvarint
//	tree       nodeCount nodes in preorder, each one of
//	             tagInternal
//	             tagLeaf, symbol byte, weight uvarint
//	bitCount   uvarint
//	payload    exactly ceil(bitCount/8) bytes
//
// Internal node weights are not stored; they are recomputed from the leaves.

const containerMagic = "BHF1"

const (
	tagInternal = 0x00
	tagLeaf     = 0x01
)

const maxTreeNodes = 2*NumSymbols - 1

// MarshalBinary implements encoding.BinaryMarshaler.
func (e *Encoded) MarshalBinary() ([]byte, error) {
	if need := byteLen(e.Bits.Len); uint64(len(e.Bits.Data)) < need {
		return nil, fmt.Errorf("%w: %d bits need %d bytes, have %d", ErrBitRequestOutOfRange, e.Bits.Len, need, len(e.Bits.Data))
	}

	t := e.Tree
	out := make([]byte, 0, len(containerMagic)+3*t.Len()+2*binary.MaxVarintLen64+len(e.Bits.Data))
	out = append(out, containerMagic...)
	out = binary.AppendUvarint(out, uint64(t.Len()))

	stack := make([]NodeID, 0, log2(t.Len()))
	stack = append(stack, t.root)
	for len(stack) != 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := t.nodes[id]
		if node.IsLeaf() {
			out = append(out, tagLeaf, byte(node.Symbol))
			out = binary.AppendUvarint(out, node.Weight)
			continue
		}
		out = append(out, tagInternal)
		stack = append(stack, node.Right, node.Left)
	}

	out = binary.AppendUvarint(out, e.Bits.Len)
	out = append(out, e.Bits.Data[:byteLen(e.Bits.Len)]...)
	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.  The tree is
// validated and the CodeTable regenerated from it.
func (e *Encoded) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)

	magic := make([]byte, len(containerMagic))
	if _, err := io.ReadFull(r, magic); err != nil || string(magic) != containerMagic {
		return fmt.Errorf("%w: bad magic", ErrBadHeader)
	}

	tree, err := readTree(r)
	if err != nil {
		return err
	}

	bitCount, err := binary.ReadUvarint(r)
	if err != nil {
		return fmt.Errorf("%w: bit count: %v", ErrBadHeader, err)
	}
	need := byteLen(bitCount)
	have := uint64(r.Len())
	switch {
	case have < need:
		return fmt.Errorf("%w: %d bits need %d payload bytes, have %d", ErrTruncatedStream, bitCount, need, have)
	case have > need:
		return fmt.Errorf("%w: %d trailing bytes", ErrBadHeader, have-need)
	}
	payload := make([]byte, need)
	copy(payload, data[len(data)-int(need):])

	codes, err := NewCodeTable(tree)
	if err != nil {
		return err
	}

	*e = Encoded{Tree: tree, Codes: codes, Bits: Bitstream{Data: payload, Len: bitCount}}
	return nil
}

// WriteTo implements io.WriterTo.
func (e *Encoded) WriteTo(w io.Writer) (int64, error) {
	raw, err := e.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(raw)
	return int64(n), err
}

// ReadFrom implements io.ReaderFrom.  It consumes r to EOF.
func (e *Encoded) ReadFrom(r io.Reader) (int64, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return int64(len(raw)), err
	}
	return int64(len(raw)), e.UnmarshalBinary(raw)
}

func readTree(r *bytes.Reader) (*Tree, error) {
	count, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("%w: node count: %v", ErrBadHeader, err)
	}
	if count == 0 {
		return nil, ErrEmptyAlphabet
	}
	if count > maxTreeNodes {
		return nil, fmt.Errorf("%w: %d nodes, max %d", ErrStructuralCorruption, count, maxTreeNodes)
	}

	// Nodes arrive in preorder, so every node is the next missing child of
	// the innermost internal node that still lacks one.

	type pending struct {
		id     NodeID
		filled byte
	}

	nodes := make([]Node, 0, count)
	stack := make([]pending, 0, log2(int(count)))
	for i := uint64(0); i < count; i++ {
		tag, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w: tree ends after %d of %d nodes", ErrStructuralCorruption, i, count)
		}

		node := Node{Left: NoNode, Right: NoNode}
		switch tag {
		case tagInternal:
		case tagLeaf:
			symbol, err := r.ReadByte()
			if err != nil {
				return nil, fmt.Errorf("%w: leaf %d: missing symbol", ErrStructuralCorruption, i)
			}
			weight, err := binary.ReadUvarint(r)
			if err != nil {
				return nil, fmt.Errorf("%w: leaf %d: weight: %v", ErrStructuralCorruption, i, err)
			}
			node.Symbol = Symbol(symbol)
			node.Weight = weight
		default:
			return nil, fmt.Errorf("%w: node %d: unknown tag %#02x", ErrStructuralCorruption, i, tag)
		}

		id := NodeID(len(nodes))
		nodes = append(nodes, node)

		if len(stack) != 0 {
			top := &stack[len(stack)-1]
			if top.filled == 0 {
				nodes[top.id].Left = id
			} else {
				nodes[top.id].Right = id
			}
			top.filled++
			if top.filled == 2 {
				stack = stack[:len(stack)-1]
			}
		} else if i != 0 {
			return nil, fmt.Errorf("%w: %d nodes follow a complete tree", ErrStructuralCorruption, count-i)
		}

		if tag == tagInternal {
			stack = append(stack, pending{id: id})
		}
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("%w: internal node %d is missing a child", ErrStructuralCorruption, stack[len(stack)-1].id)
	}

	// Children always follow their parent in preorder.
	for id := len(nodes) - 1; id >= 0; id-- {
		if node := &nodes[id]; !node.IsLeaf() {
			node.Weight = saturatingAdd(nodes[node.Left].Weight, nodes[node.Right].Weight)
		}
	}

	return NewTree(nodes, 0)
}

var (
	_ encoding.BinaryMarshaler   = (*Encoded)(nil)
	_ encoding.BinaryUnmarshaler = (*Encoded)(nil)
	_ io.WriterTo                = (*Encoded)(nil)
	_ io.ReaderFrom              = (*Encoded)(nil)
)
