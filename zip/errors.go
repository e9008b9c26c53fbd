package zip

import (
	"errors"

	"github.com/alec-rabold/zipvault/internal/deflate"
)

// Error kinds per §7. All are fatal at the point of detection except
// ChecksumMismatch and SizeMismatch, which callers may suppress via
// extract options.
var (
	// ErrMalformedArchive covers a missing EOCD signature, a bad local-file
	// signature, or a central-directory record that overruns the buffer.
	ErrMalformedArchive = errors.New("zip: malformed archive")
	// ErrUnsupportedCompression covers any compression method other than
	// STORE (0) or DEFLATE (8).
	ErrUnsupportedCompression = errors.New("zip: unsupported compression method")
	// ErrChecksumMismatch means the computed CRC-32 did not match the
	// stored CRC-32. Suppressible with ExtractOptions.SkipCRCValidation.
	ErrChecksumMismatch = errors.New("zip: checksum mismatch")
	// ErrSizeMismatch means the produced byte count did not match the
	// declared uncompressed size. Suppressible with
	// ExtractOptions.SkipSizeValidation.
	ErrSizeMismatch = errors.New("zip: size mismatch")
	// ErrDirectoryExtraction is returned when Extract is called on a
	// directory entry.
	ErrDirectoryExtraction = errors.New("zip: cannot extract a directory entry")
	// ErrNotADirectory is returned when ListDirectory's target is a file.
	ErrNotADirectory = errors.New("zip: not a directory")
	// ErrEntryNotFound is returned by FindEntry when no entry matches.
	ErrEntryNotFound = errors.New("zip: entry not found")
	// ErrCorruptDeflateStream is the DEFLATE decoder's fatal error,
	// re-exported here so callers can errors.Is against the zip package
	// without reaching into internal/deflate.
	ErrCorruptDeflateStream = deflate.ErrCorrupt
)
