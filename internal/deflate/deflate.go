// Package deflate implements a read-only RFC 1951 DEFLATE decoder: bit
// stream parsing, fixed and dynamic Huffman trees, and LZ77 back-reference
// resolution with self-overlapping copies.
package deflate

import (
	"github.com/alec-rabold/zipvault/internal/bitio"
	"github.com/alec-rabold/zipvault/internal/huffman"
)

const (
	btypeStored   = 0
	btypeFixed    = 1
	btypeDynamic  = 2
	btypeReserved = 3

	endOfBlock = 256
)

// Inflate decompresses a raw DEFLATE stream. expectedSize is a capacity
// hint only: if >= 0, the output buffer is preallocated to that size;
// otherwise a speculative 7x-compressed-size buffer is grown as needed.
// Inflate does not itself enforce that the decompressed length matches
// expectedSize; callers that care (and that may want to skip the check)
// compare the returned slice's length themselves.
func Inflate(compressed []byte, expectedSize int) ([]byte, error) {
	var out []byte
	if expectedSize >= 0 {
		out = make([]byte, 0, expectedSize)
	} else {
		out = make([]byte, 0, 7*len(compressed)+16)
	}

	r := bitio.New(compressed)
	for {
		final, err := r.GetBit()
		if err != nil {
			return nil, ErrCorrupt
		}
		btype, err := r.ReadBits(2, 0)
		if err != nil {
			return nil, ErrCorrupt
		}

		switch btype {
		case btypeStored:
			out, err = inflateStored(r, out)
		case btypeFixed:
			lit, dist := huffman.StaticTrees()
			out, err = inflateBlock(r, lit, dist, out)
		case btypeDynamic:
			lit, dist, derr := readDynamicTrees(r)
			if derr != nil {
				return nil, derr
			}
			out, err = inflateBlock(r, lit, dist, out)
		default:
			return nil, ErrCorrupt
		}
		if err != nil {
			return nil, err
		}
		if final == 1 {
			break
		}
	}

	return out, nil
}

func inflateStored(r *bitio.Reader, out []byte) ([]byte, error) {
	r.AlignToByte()
	lenLo, err := r.ReadByte()
	if err != nil {
		return nil, ErrCorrupt
	}
	lenHi, err := r.ReadByte()
	if err != nil {
		return nil, ErrCorrupt
	}
	nlenLo, err := r.ReadByte()
	if err != nil {
		return nil, ErrCorrupt
	}
	nlenHi, err := r.ReadByte()
	if err != nil {
		return nil, ErrCorrupt
	}
	length := uint16(lenLo) | uint16(lenHi)<<8
	nlength := uint16(nlenLo) | uint16(nlenHi)<<8
	if length != ^nlength {
		return nil, ErrCorrupt
	}
	for i := uint16(0); i < length; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return nil, ErrCorrupt
		}
		out = append(out, b)
	}
	return out, nil
}

// readDynamicTrees reads the dynamic-Huffman block header (§4.3): HLIT,
// HDIST, HCLEN, the HCLEN code-length triples (placed via
// codeLengthOrder), the 19-symbol meta-tree built from those, and finally
// the HLIT+HDIST combined length vector decoded with the meta-tree,
// split into the literal/length and distance trees.
func readDynamicTrees(r *bitio.Reader) (lit, dist *huffman.Tree, err error) {
	hlit, err := r.ReadBits(5, 257)
	if err != nil {
		return nil, nil, ErrCorrupt
	}
	hdist, err := r.ReadBits(5, 1)
	if err != nil {
		return nil, nil, ErrCorrupt
	}
	hclen, err := r.ReadBits(4, 4)
	if err != nil {
		return nil, nil, ErrCorrupt
	}

	var clLengths [19]int
	for i := uint32(0); i < hclen; i++ {
		v, err := r.ReadBits(3, 0)
		if err != nil {
			return nil, nil, ErrCorrupt
		}
		clLengths[codeLengthOrder[i]] = int(v)
	}

	meta := huffman.NewMetaTree()
	meta.Build(clLengths[:], 0, 19)

	total := int(hlit) + int(hdist)
	lengths := make([]int, total)
	for i := 0; i < total; {
		sym, err := meta.Decode(r)
		if err != nil {
			return nil, nil, ErrCorrupt
		}
		switch {
		case sym < 16:
			lengths[i] = int(sym)
			i++
		case sym == 16:
			if i == 0 {
				return nil, nil, ErrCorrupt
			}
			n, err := r.ReadBits(2, 3)
			if err != nil {
				return nil, nil, ErrCorrupt
			}
			prev := lengths[i-1]
			for j := uint32(0); j < n && i < total; j++ {
				lengths[i] = prev
				i++
			}
		case sym == 17:
			n, err := r.ReadBits(3, 3)
			if err != nil {
				return nil, nil, ErrCorrupt
			}
			for j := uint32(0); j < n && i < total; j++ {
				lengths[i] = 0
				i++
			}
		case sym == 18:
			n, err := r.ReadBits(7, 11)
			if err != nil {
				return nil, nil, ErrCorrupt
			}
			for j := uint32(0); j < n && i < total; j++ {
				lengths[i] = 0
				i++
			}
		default:
			return nil, nil, ErrCorrupt
		}
	}

	lit = huffman.NewLiteralTree()
	lit.Build(lengths, 0, int(hlit))
	dist = huffman.NewDistanceTree()
	dist.Build(lengths, int(hlit), int(hdist))
	return lit, dist, nil
}

// inflateBlock decodes a fixed- or dynamic-Huffman block body: literals
// are emitted directly, length/distance pairs trigger an LZ77 copy.
// Copies may self-overlap (distance < length) so the copy proceeds
// byte-by-byte forward rather than as a bulk slice copy.
func inflateBlock(r *bitio.Reader, lit, dist *huffman.Tree, out []byte) ([]byte, error) {
	for {
		sym, err := lit.Decode(r)
		if err != nil {
			return nil, ErrCorrupt
		}
		switch {
		case sym < endOfBlock:
			out = append(out, byte(sym))
		case sym == endOfBlock:
			return out, nil
		case int(sym)-257 < len(lengthBase):
			idx := int(sym) - 257
			length, err := r.ReadBits(uint(lengthExtra[idx]), uint32(lengthBase[idx]))
			if err != nil {
				return nil, ErrCorrupt
			}
			distSym, err := dist.Decode(r)
			if err != nil {
				return nil, ErrCorrupt
			}
			if int(distSym) >= len(distBase) {
				return nil, ErrCorrupt
			}
			distance, err := r.ReadBits(uint(distExtra[distSym]), uint32(distBase[distSym]))
			if err != nil {
				return nil, ErrCorrupt
			}
			if int(distance) > len(out) {
				return nil, ErrCorrupt
			}
			start := len(out) - int(distance)
			for i := 0; i < int(length); i++ {
				out = append(out, out[start+i])
			}
		default:
			return nil, ErrCorrupt
		}
	}
}
