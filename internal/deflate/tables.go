package deflate

// lengthBase and lengthExtra translate length symbols 257..285 (index 0..28
// here) to a base length and an extra-bit count, per RFC 1951 §3.2.5.
var lengthBase, lengthExtra = buildTable(3, 4, 29)

// distBase and distExtra translate distance symbols 0..29 to a base
// distance and an extra-bit count.
var distBase, distExtra = buildTable(1, 2, 30)

func init() {
	// Symbol 28 (length 285) is the single exception to the regular
	// progression: it has no extra bits and a fixed base of 258.
	lengthExtra[28] = 0
	lengthBase[28] = 258
}

// buildTable is the generic base+extra-bits table builder described in
// spec §4.3: the first delta entries get zero extra bits (handling the
// irregular low end of each alphabet), then extraBits[i] = (i-delta)/delta
// for the remainder, and base values are the running prefix sum of
// 1<<extraBits starting from first.
func buildTable(first, delta, count int) (base, extra []int) {
	base = make([]int, count)
	extra = make([]int, count)
	for i := delta; i < count; i++ {
		extra[i] = (i - delta) / delta
	}
	base[0] = first
	for i := 0; i+1 < count; i++ {
		base[i+1] = base[i] + (1 << uint(extra[i]))
	}
	return base, extra
}

// codeLengthOrder gives the order in which the 19 code-length-alphabet
// bit-lengths appear in a dynamic Huffman block header (RFC 1951 §3.2.7).
var codeLengthOrder = [19]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}
