// Package bytehuff implements Huffman coding of byte strings.
//
// Encode counts the frequency of each byte, builds a Huffman tree by
// repeatedly merging the two lightest nodes, derives a prefix-free code for
// each byte from its path in the tree (0 for left, 1 for right), and packs the
// codes of the input into a Bitstream, most significant bit first.  Decode
// walks the same tree bit by bit to recover the input.  The tree must travel
// with the bits; Encoded.MarshalBinary stores both.
//
// References:
//
//	<https://en.wikipedia.org/wiki/Huffman_coding>
package bytehuff
