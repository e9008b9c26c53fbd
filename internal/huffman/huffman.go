// Package huffman implements canonical Huffman decoding for RFC 1951
// DEFLATE streams, represented as parallel length-count and
// symbol-permutation arrays rather than a pointer-linked tree. The
// representation is deliberate: decoding is hot and these small
// fixed-width arrays stay cache-resident.
package huffman

import "github.com/alec-rabold/zipvault/internal/bitio"

const maxCodeLen = 15

// Tree is a decoded canonical prefix code.
type Tree struct {
	counts  [maxCodeLen + 1]uint16 // counts[len] = number of codes of that length; counts[0] forced to 0
	symbols []uint16               // symbols ordered by (length, symbol value)
}

// NewLiteralTree allocates a Tree sized for the literal/length alphabet.
func NewLiteralTree() *Tree {
	return &Tree{symbols: make([]uint16, 288)}
}

// NewDistanceTree allocates a Tree sized for the distance alphabet.
func NewDistanceTree() *Tree {
	return &Tree{symbols: make([]uint16, 32)}
}

// NewMetaTree allocates a Tree sized for the 19-symbol code-length
// meta-alphabet.
func NewMetaTree() *Tree {
	return &Tree{symbols: make([]uint16, 19)}
}

// Build constructs the canonical code from lengths[off : off+num], per
// RFC 1951 §3.2.2: count codes per length, prefix-sum into per-length
// offsets, then place each symbol into its length's slot in arrival
// order (which is canonical order, since callers always supply lengths
// indexed by ascending symbol value).
func (t *Tree) Build(lengths []int, off, num int) {
	for i := range t.counts {
		t.counts[i] = 0
	}
	for i := 0; i < num; i++ {
		l := lengths[off+i]
		if l > maxCodeLen {
			l = maxCodeLen
		}
		t.counts[l]++
	}
	t.counts[0] = 0

	var offsets [maxCodeLen + 1]uint16
	var sum uint16
	for l := 0; l <= maxCodeLen; l++ {
		offsets[l] = sum
		sum += t.counts[l]
	}

	if cap(t.symbols) < num {
		t.symbols = make([]uint16, num)
	}
	t.symbols = t.symbols[:num]
	for i := 0; i < num; i++ {
		l := lengths[off+i]
		if l == 0 {
			continue
		}
		if l > maxCodeLen {
			l = maxCodeLen
		}
		t.symbols[offsets[l]] = uint16(i)
		offsets[l]++
	}
}

// Decode reads one symbol from r using this tree. It implements the
// classic bit-by-bit canonical decode: accumulate one bit at a time
// (MSB-first within the growing code value cur), tracking a running
// sum of codes already assigned to shorter lengths, until cur falls
// below the count at the current length — at that point cur is the
// offset of this code within its length's block of symbols table.
func (t *Tree) Decode(r *bitio.Reader) (uint16, error) {
	sum, cur, length := 0, 0, 0
	for {
		bit, err := r.GetBit()
		if err != nil {
			return 0, err
		}
		cur = 2*cur + int(bit)
		length++
		if length > maxCodeLen {
			return 0, ErrBadCode
		}
		sum += int(t.counts[length])
		cur -= int(t.counts[length])
		if cur < 0 {
			break
		}
	}
	idx := sum + cur
	if idx < 0 || idx >= len(t.symbols) {
		return 0, ErrBadCode
	}
	return t.symbols[idx], nil
}
