package huffman

import "errors"

// ErrBadCode is returned when a decoded code does not correspond to a
// valid symbol in the tree (over-long code, or symbol table overrun).
var ErrBadCode = errors.New("huffman: invalid code")
