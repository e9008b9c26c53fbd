package huffman

import "sync"

var (
	staticOnce     sync.Once
	staticLiteral  *Tree
	staticDistance *Tree
)

// StaticTrees returns the fixed Huffman trees defined by RFC 1951 §3.2.6,
// building them once on first use.
func StaticTrees() (literal, distance *Tree) {
	staticOnce.Do(buildStaticTrees)
	return staticLiteral, staticDistance
}

func buildStaticTrees() {
	lengths := make([]int, 288)
	for i := 0; i < 144; i++ {
		lengths[i] = 8
	}
	for i := 144; i < 256; i++ {
		lengths[i] = 9
	}
	for i := 256; i < 280; i++ {
		lengths[i] = 7
	}
	for i := 280; i < 288; i++ {
		lengths[i] = 8
	}
	staticLiteral = NewLiteralTree()
	staticLiteral.Build(lengths, 0, 288)

	distLengths := make([]int, 32)
	for i := range distLengths {
		distLengths[i] = 5
	}
	staticDistance = NewDistanceTree()
	staticDistance.Build(distLengths, 0, 32)
}
