package bytehuff

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
)

// CodeTable maps each Symbol of a Tree to its Huffman code.
type CodeTable struct {
	codes   [NumSymbols]Code
	count   int
	minSize byte
	maxSize byte
}

// NewCodeTable derives the CodeTable for a finished tree.  Descending to a
// left child appends a 0 bit and descending to a right child appends a 1 bit.
// If the root is itself a leaf, its symbol is assigned the single bit 0, as a
// zero-length code could not be decoded.
//
// Each assignment is traced at slog.LevelDebug on the default logger.
func NewCodeTable(tree *Tree) (*CodeTable, error) {
	return newCodeTable(tree, slog.Default())
}

func newCodeTable(tree *Tree, logger *slog.Logger) (*CodeTable, error) {
	ct := new(CodeTable)
	var hasMinMax bool

	assign := func(symbol Symbol, hc Code) {
		dbg(logger, "bytehuff.assign_code", "symbol", symbol, "code", hc.String())

		ct.codes[symbol] = hc
		ct.count++
		size := hc.Size
		if !hasMinMax {
			hasMinMax = true
			ct.minSize = size
			ct.maxSize = size
		} else if ct.minSize > size {
			ct.minSize = size
		} else if ct.maxSize < size {
			ct.maxSize = size
		}
	}

	root := tree.nodes[tree.root]
	if root.IsLeaf() {
		assign(root.Symbol, MakeCode(1, 0))
		return ct, nil
	}

	// Walk the tree with an explicit stack.  stackItem.x records where we
	// are within a node:
	//   x=0 → We just arrived at the node for the first time
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children

	type stackItem struct {
		id   NodeID
		code Code
		x    byte
	}

	stack := make([]stackItem, 0, log2(tree.Len()))
	stack = append(stack, stackItem{id: tree.root})

	processChild := func(parent NodeID, child NodeID, hc Code) error {
		if child == NoNode {
			return fmt.Errorf("%w: internal node %d is missing a child", ErrStructuralCorruption, parent)
		}
		if node := tree.nodes[child]; node.IsLeaf() {
			assign(node.Symbol, hc)
			return nil
		}
		stack = append(stack, stackItem{id: child, code: hc})
		return nil
	}

	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++

		var err error
		switch x {
		case 0:
			err = processChild(top.id, tree.nodes[top.id].Left, top.code.Append(0))
		case 1:
			err = processChild(top.id, tree.nodes[top.id].Right, top.code.Append(1))
		case 2:
			stack = stack[:len(stack)-1]
		}
		if err != nil {
			return nil, err
		}
	}

	return ct, nil
}

// Encode returns the code for symbol.  The zero Code is returned for symbols
// that are not in the table.
func (ct *CodeTable) Encode(symbol Symbol) Code {
	return ct.codes[symbol]
}

// Lookup returns the code for symbol and whether symbol is in the table.
func (ct *CodeTable) Lookup(symbol Symbol) (Code, bool) {
	hc := ct.codes[symbol]
	return hc, hc.Size != 0
}

// Len returns the number of symbols in the table.
func (ct *CodeTable) Len() int {
	return ct.count
}

// MinSize is the bit length of the shortest code.
func (ct *CodeTable) MinSize() byte {
	return ct.minSize
}

// MaxSize is the bit length of the longest code.
func (ct *CodeTable) MaxSize() byte {
	return ct.maxSize
}

// SizeBySymbol returns an array containing the bit length for each Symbol in
// the alphabet, 0 for symbols not in the table.
func (ct *CodeTable) SizeBySymbol() []byte {
	out := make([]byte, NumSymbols)
	for symbol := range ct.codes {
		out[symbol] = ct.codes[symbol].Size
	}
	return out
}

// EncodedSize returns the number of bits needed to encode input with the
// given frequencies.
func (ct *CodeTable) EncodedSize(ft *FrequencyTable) uint64 {
	var sum uint64
	for symbol := range ct.codes {
		sum += ft.counts[symbol] * uint64(ct.codes[symbol].Size)
	}
	return sum
}

// Dump writes a programmer-readable debugging dump of the CodeTable to the
// given writer.  Symbols that are not in the table are omitted.
func (ct *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", ct.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", ct.maxSize)
	for symbol := range ct.codes {
		hc := ct.codes[symbol]
		if hc.Size != 0 {
			fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", symbol, hc)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
