package zip

import "strings"

// Entry is one logical archive member: a file or a directory, reconstructed
// from the archive's central directory (and, for intermediate path
// components with no explicit directory record, synthesised).
type Entry struct {
	Name        string // full stored path; trailing "/" marks a directory
	Size        uint32 // uncompressed size, from the central directory
	Offset      uint32 // absolute byte offset of the local-file header
	Timestamp   uint32 // MS-DOS packed date/time, preserved verbatim
	CRC         uint32 // stored CRC-32 of uncompressed data
	IsDirectory bool

	Parent   *Entry   // nil only for the root
	Children []*Entry // ordered; directories only
}

// newRoot returns the synthetic root directory entry.
func newRoot() *Entry {
	return &Entry{Name: "/", IsDirectory: true}
}

// normalizeName strips one leading and one trailing "/" from a path for
// lookup purposes (directory names keep their trailing slash in Name
// itself; this is only used for comparisons and dictionary keys).
func normalizeName(path string) string {
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimSuffix(path, "/")
	return path
}

// getPath reconstructs e's absolute path by walking parent links and
// prepending each entry's own component (its name with the parent's name
// stripped) until the root is reached.
func getPath(e *Entry) string {
	if e.Parent == nil {
		return e.Name
	}
	var parts []string
	for cur := e; cur.Parent != nil; cur = cur.Parent {
		parts = append([]string{strings.TrimPrefix(cur.Name, cur.Parent.Name)}, parts...)
	}
	return strings.Join(parts, "")
}
