package bytehuff

import (
	"errors"
)

var (
	// ErrEmptyAlphabet is returned when a tree would have to be built from
	// zero symbols.
	ErrEmptyAlphabet = errors.New("bytehuff: empty alphabet")

	// ErrDuplicateSymbol is returned when the same Symbol is given to
	// BuildTree more than once.
	ErrDuplicateSymbol = errors.New("bytehuff: duplicate symbol")

	// ErrStructuralCorruption is returned when a tree violates the strict
	// binary tree invariants (e.g. an internal node with one child).
	ErrStructuralCorruption = errors.New("bytehuff: corrupt tree structure")

	// ErrTruncatedStream is returned when a bitstream ends in the middle of
	// a code.
	ErrTruncatedStream = errors.New("bytehuff: truncated stream")

	// ErrCorruptStream is returned when a bitstream cannot have been
	// produced by the tree it is being decoded with.
	ErrCorruptStream = errors.New("bytehuff: corrupt stream")

	// ErrBitRequestOutOfRange is returned when more bits are requested
	// from a Bitstream than it holds.
	ErrBitRequestOutOfRange = errors.New("bytehuff: bit request out of range")

	// ErrBadHeader is returned when an encoded container is malformed.
	ErrBadHeader = errors.New("bytehuff: invalid header")
)
