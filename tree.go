package bytehuff

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"
	"math"

	"github.com/chronos-tachyon/assert"
)

// NodeID identifies a Node within its Tree.
type NodeID int32

// NoNode marks an absent child.
const NoNode = NodeID(-1)

// Node is one node of a Huffman tree.  A leaf has no children and carries a
// Symbol; an internal node has exactly two children and its Weight is the sum
// of theirs.
type Node struct {
	Weight uint64
	Symbol Symbol
	Left   NodeID
	Right  NodeID
}

// IsLeaf returns true iff the node has no children.
func (n Node) IsLeaf() bool {
	return n.Left == NoNode && n.Right == NoNode
}

// Tree is a Huffman coding tree.  Nodes are stored in an arena and refer to
// their children by NodeID; a Tree is immutable once built.
type Tree struct {
	nodes []Node
	root  NodeID
}

// BuildTree builds the Huffman tree for the given symbols.
//
// Each symbol becomes a leaf, in the order given.  The two lightest nodes are
// then repeatedly merged into a new internal node, the first one popped
// becoming the left child, until a single root remains.  Ties between equal
// weights are broken by NodeID: leaves in insertion order come before merged
// nodes, and merged nodes in order of creation, so the same input always
// yields the same tree.
func BuildTree(symbols []WeightedSymbol) (*Tree, error) {
	if len(symbols) == 0 {
		return nil, ErrEmptyAlphabet
	}

	var seen [NumSymbols]bool
	nodes := make([]Node, 0, 2*len(symbols)-1)
	list := make([]nodeAndWeight, 0, len(symbols))
	for _, ws := range symbols {
		if seen[ws.Symbol] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateSymbol, ws.Symbol)
		}
		seen[ws.Symbol] = true

		id := NodeID(len(nodes))
		nodes = append(nodes, Node{Weight: ws.Weight, Symbol: ws.Symbol, Left: NoNode, Right: NoNode})
		list = append(list, nodeAndWeight{id, ws.Weight})
	}

	h := weightHeap{list}
	h.Init()

	for h.Len() > 1 {
		a := heap.Pop(&h).(nodeAndWeight)
		b := heap.Pop(&h).(nodeAndWeight)

		id := NodeID(len(nodes))
		weight := saturatingAdd(a.weight, b.weight)
		nodes = append(nodes, Node{Weight: weight, Left: a.id, Right: b.id})
		heap.Push(&h, nodeAndWeight{id, weight})
	}

	root := heap.Pop(&h).(nodeAndWeight)
	return &Tree{nodes: nodes, root: root.id}, nil
}

// NewTree adopts an arena of nodes built elsewhere, e.g. by a decoder for a
// serialized tree.  The arena is checked for every structural invariant: no
// node with one child, no child outside the arena, no node reachable twice,
// no unreachable node, no repeated leaf Symbol, and internal weights equal to
// the sum of their children.
func NewTree(nodes []Node, root NodeID) (*Tree, error) {
	if len(nodes) == 0 {
		return nil, ErrEmptyAlphabet
	}
	if !inRange(nodes, root) {
		return nil, fmt.Errorf("%w: root %d outside arena of %d nodes", ErrStructuralCorruption, root, len(nodes))
	}

	visited := make([]bool, len(nodes))
	var seen [NumSymbols]bool
	var numVisited int

	stack := make([]NodeID, 0, log2(len(nodes)))
	stack = append(stack, root)
	for len(stack) != 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[id] {
			return nil, fmt.Errorf("%w: node %d reachable more than once", ErrStructuralCorruption, id)
		}
		visited[id] = true
		numVisited++

		node := nodes[id]
		if node.IsLeaf() {
			if seen[node.Symbol] {
				return nil, fmt.Errorf("%w: symbol %d appears in more than one leaf", ErrStructuralCorruption, node.Symbol)
			}
			seen[node.Symbol] = true
			continue
		}
		if node.Left == NoNode || node.Right == NoNode {
			return nil, fmt.Errorf("%w: internal node %d has only one child", ErrStructuralCorruption, id)
		}
		if !inRange(nodes, node.Left) || !inRange(nodes, node.Right) {
			return nil, fmt.Errorf("%w: node %d has a child outside the arena", ErrStructuralCorruption, id)
		}
		if sum := saturatingAdd(nodes[node.Left].Weight, nodes[node.Right].Weight); node.Weight != sum {
			return nil, fmt.Errorf("%w: node %d has weight %d, children sum to %d", ErrStructuralCorruption, id, node.Weight, sum)
		}
		stack = append(stack, node.Right, node.Left)
	}

	if numVisited != len(nodes) {
		return nil, fmt.Errorf("%w: %d of %d nodes unreachable from root", ErrStructuralCorruption, len(nodes)-numVisited, len(nodes))
	}

	out := &Tree{nodes: make([]Node, len(nodes)), root: root}
	copy(out.nodes, nodes)
	return out, nil
}

// Root returns the NodeID of the root.
func (t *Tree) Root() NodeID {
	return t.root
}

// Node returns the node with the given NodeID.
func (t *Tree) Node(id NodeID) Node {
	assert.Assertf(inRange(t.nodes, id), "node %d outside arena of %d nodes", id, len(t.nodes))
	return t.nodes[id]
}

// Len returns the total number of nodes, leaves included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// NumLeaves returns the number of leaves, i.e. distinct symbols.
func (t *Tree) NumLeaves() int {
	// A strict binary tree with n leaves has n-1 internal nodes.
	return (len(t.nodes) + 1) / 2
}

// Weight returns the weight of the root, which equals the sum of the leaf
// weights.
func (t *Tree) Weight() uint64 {
	return t.nodes[t.root].Weight
}

// Dump writes a programmer-readable debugging dump of the Tree to the given
// writer.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tRoot() = %d\n", t.root)
	fmt.Fprintf(&buf, "\tWeight() = %d\n", t.Weight())
	for id, node := range t.nodes {
		if node.IsLeaf() {
			fmt.Fprintf(&buf, "\tNode(%d) = {symbol %d, weight %d}\n", id, node.Symbol, node.Weight)
		} else {
			fmt.Fprintf(&buf, "\tNode(%d) = {left %d, right %d, weight %d}\n", id, node.Left, node.Right, node.Weight)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func inRange(nodes []Node, id NodeID) bool {
	return id >= 0 && int(id) < len(nodes)
}

func saturatingAdd(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		sum = math.MaxUint64
	}
	return sum
}

// type nodeAndWeight + type weightHeap {{{

type nodeAndWeight struct {
	id     NodeID
	weight uint64
}

type weightHeap struct {
	list []nodeAndWeight
}

func (h *weightHeap) Init() {
	heap.Init(h)
}

func (h *weightHeap) Len() int {
	return len(h.list)
}

func (h *weightHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *weightHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	return a.id < b.id
}

func (h *weightHeap) Push(x interface{}) {
	h.list = append(h.list, x.(nodeAndWeight))
}

func (h *weightHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*weightHeap)(nil)

// }}}
