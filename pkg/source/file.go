package source

import (
	"context"
	"os"
)

// FileSource reads an entire local file into memory.
type FileSource struct {
	Path string
}

// NewFileSource returns a Source backed by a local file path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load implements Source.
func (f *FileSource) Load(_ context.Context) ([]byte, error) {
	return os.ReadFile(f.Path)
}
