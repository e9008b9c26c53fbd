// Package source loads a complete archive image into memory from an
// external collaborator — local filesystem or S3 — so the in-memory zip
// core (package zip) never performs I/O of its own.
package source

import "context"

// Source produces a complete byte buffer for the zip core to parse.
type Source interface {
	Load(ctx context.Context) ([]byte, error)
}
