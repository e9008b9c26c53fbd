package zip

import (
	"archive/zip"
	"bytes"
	"testing"
)

// fixtureFile describes one member of a test-fixture archive.
type fixtureFile struct {
	name    string
	content string
	method  uint16 // archive/zip.Store or archive/zip.Deflate
}

// buildArchive writes a real ZIP archive with the standard library's
// writer (ZIP writing is an explicit non-goal for this decoder, so test
// fixtures borrow the one encoder available anywhere in reach) and
// returns its bytes for the hand-written decoder under test to consume.
// archive/zip's plain Writer path always sets the data-descriptor flag
// (bit 3) on file entries, so these fixtures double as data-descriptor
// coverage for free.
func buildArchive(t *testing.T, files []fixtureFile) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, f := range files {
		hdr := &zip.FileHeader{Name: f.name, Method: f.method}
		fw, err := w.CreateHeader(hdr)
		if err != nil {
			t.Fatalf("CreateHeader(%s): %v", f.name, err)
		}
		if _, err := fw.Write([]byte(f.content)); err != nil {
			t.Fatalf("Write(%s): %v", f.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return buf.Bytes()
}
