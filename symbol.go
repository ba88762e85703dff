package bytehuff

// Symbol represents one byte of input.  The alphabet is always the full range
// of byte values.
type Symbol byte

// NumSymbols is the size of the byte alphabet.
const NumSymbols = 256

// WeightedSymbol pairs a Symbol with its weight, i.e. the number of times it
// occurs in the input.
type WeightedSymbol struct {
	Symbol Symbol
	Weight uint64
}
