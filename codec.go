package bytehuff

import (
	"fmt"
)

// Encoded is the result of Encode: the packed bits together with the tree
// needed to decode them.
type Encoded struct {
	Tree  *Tree
	Codes *CodeTable
	Bits  Bitstream
}

// Encode compresses data.  It counts symbol frequencies, builds the Huffman
// tree and its CodeTable, then writes the code of every input byte, in input
// order, into a Bitstream.
//
// Empty input has no alphabet and fails with ErrEmptyAlphabet.
func Encode(data []byte, opts ...Option) (*Encoded, error) {
	o := makeOptions(opts)

	ft := CountFrequenciesParallel(data, o.workers)
	tree, err := BuildTree(ft.Weighted())
	if err != nil {
		return nil, err
	}

	codes, err := newCodeTable(tree, o.logger)
	if err != nil {
		return nil, err
	}

	bw := NewBitWriter()
	for _, b := range data {
		bw.WriteCode(codes.codes[b])
	}

	return &Encoded{Tree: tree, Codes: codes, Bits: bw.Finish()}, nil
}

// Decode decompresses e.Bits with e.Tree.  Besides the checks made by the
// package-level Decode, the number of decoded bytes must equal the weight of
// the tree, which for a tree built by Encode is the length of the input.
func (e *Encoded) Decode() ([]byte, error) {
	out, err := Decode(e.Tree, e.Bits)
	if err != nil {
		return nil, err
	}
	if weight := e.Tree.Weight(); uint64(len(out)) != weight {
		return nil, fmt.Errorf("%w: decoded %d bytes, tree weight is %d", ErrCorruptStream, len(out), weight)
	}
	return out, nil
}

// Decode decompresses bs using the tree that produced it.
//
// Starting at the root, each 0 bit steps to the left child and each 1 bit to
// the right child; reaching a leaf emits its symbol and returns to the root.
// Decoding stops after exactly bs.Len bits.  Running out of bits anywhere but
// at the root fails with ErrTruncatedStream.
//
// When the root is a leaf, every symbol is coded as a single 0 bit, and a 1
// bit fails with ErrCorruptStream.
func Decode(tree *Tree, bs Bitstream) ([]byte, error) {
	if tree == nil {
		return nil, fmt.Errorf("%w: nil tree", ErrEmptyAlphabet)
	}

	br, err := NewBitReader(bs)
	if err != nil {
		return nil, err
	}

	capacity := tree.Weight()
	if capacity > bs.Len {
		capacity = bs.Len
	}
	out := make([]byte, 0, capacity)

	root := tree.nodes[tree.root]
	if root.IsLeaf() {
		for br.Remaining() != 0 {
			bit, err := br.ReadBit()
			if err != nil {
				return nil, err
			}
			if bit != 0 {
				return nil, fmt.Errorf("%w: 1 bit at offset %d in single-symbol stream", ErrCorruptStream, bs.Len-br.Remaining()-1)
			}
			out = append(out, byte(root.Symbol))
		}
		return out, nil
	}

	for br.Remaining() != 0 {
		start := bs.Len - br.Remaining()
		id := tree.root
		for {
			if br.Remaining() == 0 {
				return nil, fmt.Errorf("%w: code starting at bit %d ends after %d bits", ErrTruncatedStream, start, bs.Len-start)
			}
			bit, err := br.ReadBit()
			if err != nil {
				return nil, err
			}

			parent := id
			if bit == 0 {
				id = tree.nodes[parent].Left
			} else {
				id = tree.nodes[parent].Right
			}
			if id == NoNode {
				return nil, fmt.Errorf("%w: internal node %d is missing a child", ErrStructuralCorruption, parent)
			}
			if child := tree.nodes[id]; child.IsLeaf() {
				out = append(out, byte(child.Symbol))
				break
			}
		}
	}
	return out, nil
}
