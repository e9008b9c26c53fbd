package deflate

import "errors"

// ErrCorrupt covers all fatal DEFLATE decode failures: reserved block
// type, stored-block length/complement mismatch, invalid Huffman code or
// back-reference, or truncated input during refill. A size mismatch
// against the caller-supplied expected length is not reported here.
var ErrCorrupt = errors.New("deflate: corrupt stream")
