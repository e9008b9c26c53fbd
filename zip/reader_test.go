package zip

import (
	"archive/zip"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoredHelloScenario(t *testing.T) {
	buf := buildArchive(t, []fixtureFile{{name: "hello.txt", content: "Hello", method: zip.Store}})

	r, err := Load(buf)
	require.NoError(t, err)

	e, err := r.FindEntry("hello.txt")
	require.NoError(t, err)
	require.EqualValues(t, 5, e.Size)

	res, err := r.Extract(e, ExtractOptions{Decompress: true, IsString: true})
	require.NoError(t, err)
	require.Equal(t, "Hello", res.String())

	stats := r.GetStats()
	require.Equal(t, Stats{FileCount: 1, DirCount: 0, TotalSize: 5}, stats)
}

func TestDeflateCompressibleScenario(t *testing.T) {
	content := make([]byte, 1024)
	for i := range content {
		content[i] = 'A'
	}
	buf := buildArchive(t, []fixtureFile{{name: "a.txt", content: string(content), method: zip.Deflate}})

	r, err := Load(buf)
	require.NoError(t, err)

	e, err := r.FindEntry("a.txt")
	require.NoError(t, err)

	res, err := r.Extract(e, DefaultExtractOptions())
	require.NoError(t, err)
	require.Len(t, res.Bytes, 1024)
	for i, b := range res.Bytes {
		require.Equalf(t, byte('A'), b, "byte %d", i)
	}
}

func TestImplicitDirectoriesScenario(t *testing.T) {
	buf := buildArchive(t, []fixtureFile{{name: "a/b/c.txt", content: "x", method: zip.Store}})

	r, err := Load(buf)
	require.NoError(t, err)

	rootChildren, err := r.ListDirectory("/")
	require.NoError(t, err)
	require.Len(t, rootChildren, 1)
	require.Equal(t, "a/", rootChildren[0].Name)

	aChildren, err := r.ListDirectory("a")
	require.NoError(t, err)
	require.Len(t, aChildren, 1)
	require.Equal(t, "a/b/", aChildren[0].Name)

	bChildren, err := r.ListDirectory("a/b")
	require.NoError(t, err)
	require.Len(t, bChildren, 1)
	require.Equal(t, "a/b/c.txt", bChildren[0].Name)

	stats := r.GetStats()
	require.Equal(t, 1, stats.FileCount)
	require.Equal(t, 2, stats.DirCount)
}

func TestWalkOrderingScenario(t *testing.T) {
	buf := buildArchive(t, []fixtureFile{
		{name: "dir/", method: zip.Store},
		{name: "dir/f.txt", content: "x", method: zip.Store},
		{name: "g.txt", content: "y", method: zip.Store},
	})

	r, err := Load(buf)
	require.NoError(t, err)

	type visit struct {
		name  string
		depth int
	}
	var visits []visit
	r.Walk(func(e *Entry, depth int) {
		visits = append(visits, visit{e.Name, depth})
	})

	require.Equal(t, []visit{
		{"/", 0},
		{"dir/", 1},
		{"dir/f.txt", 2},
		{"g.txt", 1},
	}, visits)
}

func TestCorruptCRCScenario(t *testing.T) {
	buf := buildArchive(t, []fixtureFile{{name: "a.txt", content: "payload", method: zip.Store}})
	corruptStoredCRC(t, buf, "a.txt")

	r, err := Load(buf)
	require.NoError(t, err)
	e, err := r.FindEntry("a.txt")
	require.NoError(t, err)

	_, err = r.Extract(e, DefaultExtractOptions())
	require.ErrorIs(t, err, ErrChecksumMismatch)

	res, err := r.Extract(e, ExtractOptions{Decompress: true, SkipCRCValidation: true})
	require.NoError(t, err)
	require.Equal(t, "payload", string(res.Bytes))
}

func TestDeflateSizeMismatchIsSkippable(t *testing.T) {
	// A mismatched declared size must surface as the documented,
	// suppressible ErrSizeMismatch, and SkipSizeValidation must actually
	// suppress it for DEFLATE entries, not just STORE ones.
	content := "payload long enough to deflate cleanly"
	buf := buildArchive(t, []fixtureFile{{name: "a.txt", content: content, method: zip.Deflate}})
	corruptDeclaredUncompressedSize(t, buf, "a.txt")

	r, err := Load(buf)
	require.NoError(t, err)
	e, err := r.FindEntry("a.txt")
	require.NoError(t, err)

	_, err = r.Extract(e, DefaultExtractOptions())
	require.ErrorIs(t, err, ErrSizeMismatch)

	res, err := r.Extract(e, ExtractOptions{Decompress: true, SkipSizeValidation: true})
	require.NoError(t, err)
	require.Equal(t, content, string(res.Bytes))
}

func TestBadBlockTypeScenario(t *testing.T) {
	buf := buildArchive(t, []fixtureFile{{name: "a.txt", content: "payload", method: zip.Deflate}})
	corruptDeflateBlockType(t, buf, "a.txt")

	r, err := Load(buf)
	require.NoError(t, err)
	e, err := r.FindEntry("a.txt")
	require.NoError(t, err)

	_, err = r.Extract(e, DefaultExtractOptions())
	require.ErrorIs(t, err, ErrCorruptDeflateStream)
}

func TestExtractDirectory(t *testing.T) {
	buf := buildArchive(t, []fixtureFile{
		{name: "dir/a.txt", content: "one", method: zip.Store},
		{name: "dir/b.txt", content: "two", method: zip.Store},
		{name: "other.txt", content: "three", method: zip.Store},
	})
	r, err := Load(buf)
	require.NoError(t, err)

	results, err := r.ExtractDirectory("dir", DefaultExtractOptions())
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "one", results["dir/a.txt"].String())
	require.Equal(t, "two", results["dir/b.txt"].String())
}

func TestExtractDirectoryEntryIsInvalid(t *testing.T) {
	buf := buildArchive(t, []fixtureFile{{name: "dir/", method: zip.Store}})
	r, err := Load(buf)
	require.NoError(t, err)

	e, err := r.FindEntry("dir")
	require.NoError(t, err)
	require.True(t, e.IsDirectory)

	_, err = r.Extract(e, DefaultExtractOptions())
	require.ErrorIs(t, err, ErrDirectoryExtraction)
}

func TestListDirectoryOnFileIsInvalid(t *testing.T) {
	buf := buildArchive(t, []fixtureFile{{name: "a.txt", content: "x", method: zip.Store}})
	r, err := Load(buf)
	require.NoError(t, err)

	_, err = r.ListDirectory("a.txt")
	require.ErrorIs(t, err, ErrNotADirectory)
}

func TestEmptyArchive(t *testing.T) {
	buf := buildArchive(t, nil)
	r, err := Load(buf)
	require.NoError(t, err)

	stats := r.GetStats()
	require.Equal(t, Stats{}, stats)

	children, err := r.ListDirectory("/")
	require.NoError(t, err)
	require.Empty(t, children)
}

func TestSingleStoredEmptyFile(t *testing.T) {
	buf := buildArchive(t, []fixtureFile{{name: "empty.txt", content: "", method: zip.Store}})
	r, err := Load(buf)
	require.NoError(t, err)

	e, err := r.FindEntry("empty.txt")
	require.NoError(t, err)

	res, err := r.Extract(e, DefaultExtractOptions())
	require.NoError(t, err)
	require.Empty(t, res.Bytes)
}

func TestDataDescriptorSignatureAbsentScenario(t *testing.T) {
	// archive/zip always emits the optional 4-byte descriptor signature,
	// so exercising the signature-absent (CRC-coincidence) branch of
	// findDataDescriptor needs a fixture with that word stripped out by
	// hand; both forms are legal per the format and must decode alike.
	buf := buildArchive(t, []fixtureFile{{name: "nodesc.txt", content: "streamed payload example, long enough to compress", method: zip.Deflate}})
	buf = stripDataDescriptorSignature(t, buf)

	r, err := Load(buf)
	require.NoError(t, err)
	e, err := r.FindEntry("nodesc.txt")
	require.NoError(t, err)

	res, err := r.Extract(e, DefaultExtractOptions())
	require.NoError(t, err)
	require.Equal(t, "streamed payload example, long enough to compress", string(res.Bytes))
}

func TestIdempotentExtract(t *testing.T) {
	buf := buildArchive(t, []fixtureFile{{name: "a.txt", content: "repeatable", method: zip.Deflate}})
	r, err := Load(buf)
	require.NoError(t, err)
	e, err := r.FindEntry("a.txt")
	require.NoError(t, err)

	res1, err := r.Extract(e, DefaultExtractOptions())
	require.NoError(t, err)
	res2, err := r.Extract(e, DefaultExtractOptions())
	require.NoError(t, err)
	require.Equal(t, res1.Bytes, res2.Bytes)
}

func TestParentChildInvariants(t *testing.T) {
	buf := buildArchive(t, []fixtureFile{
		{name: "a/b/c.txt", content: "x", method: zip.Store},
		{name: "a/d.txt", content: "y", method: zip.Store},
	})
	r, err := Load(buf)
	require.NoError(t, err)

	r.Walk(func(e *Entry, depth int) {
		if e.Parent == nil {
			require.Equal(t, "/", e.Name)
			return
		}
		require.Contains(t, e.Parent.Children, e)
		for _, c := range e.Children {
			require.Same(t, e, c.Parent)
		}
	})
}

func TestGetPathMatchesName(t *testing.T) {
	buf := buildArchive(t, []fixtureFile{{name: "a/b.txt", content: "x", method: zip.Store}})
	r, err := Load(buf)
	require.NoError(t, err)

	e, err := r.FindEntry("a/b.txt")
	require.NoError(t, err)
	require.Equal(t, "a/b.txt", getPath(e))
}

// corruptStoredCRC mutates the named entry's stored CRC-32 to simulate a
// corrupted archive: the central-directory field, and the CRC field of the
// trailing data descriptor (archive/zip always writes one for file
// entries), which is the value Extract validates against.
func corruptStoredCRC(t *testing.T, buf []byte, name string) {
	t.Helper()
	pos := findCentralDirRecord(t, buf, name)
	crcPos := pos + 16
	binary.LittleEndian.PutUint32(buf[crcPos:crcPos+4], binary.LittleEndian.Uint32(buf[crcPos:crcPos+4])^0xFFFFFFFF)

	localOffset := int(binary.LittleEndian.Uint32(buf[pos+42 : pos+46]))
	nameLen := int(binary.LittleEndian.Uint16(buf[localOffset+26 : localOffset+28]))
	extraLen := int(binary.LittleEndian.Uint16(buf[localOffset+28 : localOffset+30]))
	dataStart := localOffset + localHeaderLen + nameLen + extraLen
	for p := dataStart; p+8 <= pos; p++ {
		if binary.LittleEndian.Uint32(buf[p:p+4]) == dataDescriptorSignature {
			descCRC := p + 4
			binary.LittleEndian.PutUint32(buf[descCRC:descCRC+4], binary.LittleEndian.Uint32(buf[descCRC:descCRC+4])^0xFFFFFFFF)
			return
		}
	}
	t.Fatalf("data descriptor not found for entry %q", name)
}

// corruptDeclaredUncompressedSize finds the named entry's trailing data
// descriptor (archive/zip always writes one for file entries) and inflates
// its declared uncompressed size so it no longer matches the bytes the
// decoder actually produces.
func corruptDeclaredUncompressedSize(t *testing.T, buf []byte, name string) {
	t.Helper()
	cdPos := findCentralDirRecord(t, buf, name)
	localOffset := int(binary.LittleEndian.Uint32(buf[cdPos+42 : cdPos+46]))
	nameLen := int(binary.LittleEndian.Uint16(buf[localOffset+26 : localOffset+28]))
	extraLen := int(binary.LittleEndian.Uint16(buf[localOffset+28 : localOffset+30]))
	dataStart := localOffset + localHeaderLen + nameLen + extraLen

	eocdPos, err := findEOCD(buf)
	require.NoError(t, err)
	cdOffset := int(binary.LittleEndian.Uint32(buf[eocdPos+16 : eocdPos+20]))

	for pos := dataStart; pos+16 <= cdOffset; pos++ {
		if binary.LittleEndian.Uint32(buf[pos:pos+4]) == dataDescriptorSignature {
			sizePos := pos + 12
			binary.LittleEndian.PutUint32(buf[sizePos:sizePos+4], binary.LittleEndian.Uint32(buf[sizePos:sizePos+4])+1)
			return
		}
	}
	t.Fatalf("data descriptor not found for entry %q", name)
}

// corruptDeflateBlockType flips the first DEFLATE block's BTYPE to the
// reserved value 3, leaving BFINAL untouched.
func corruptDeflateBlockType(t *testing.T, buf []byte, name string) {
	t.Helper()
	pos := findCentralDirRecord(t, buf, name)
	localOffset := int(binary.LittleEndian.Uint32(buf[pos+42 : pos+46]))
	nameLen := int(binary.LittleEndian.Uint16(buf[localOffset+26 : localOffset+28]))
	extraLen := int(binary.LittleEndian.Uint16(buf[localOffset+28 : localOffset+30]))
	dataOffset := localOffset + 30 + nameLen + extraLen
	buf[dataOffset] |= 0x06 // force BTYPE bits to 11, keep BFINAL as-is
}

// stripDataDescriptorSignature removes the optional 4-byte signature word
// from a single-entry archive's trailing data descriptor, leaving it
// starting directly with its CRC-32 field, and patches the EOCD's central
// directory offset to account for the 4 fewer bytes before it.
func stripDataDescriptorSignature(t *testing.T, buf []byte) []byte {
	t.Helper()
	nameLen := int(binary.LittleEndian.Uint16(buf[26:28]))
	extraLen := int(binary.LittleEndian.Uint16(buf[28:30]))
	dataOffset := localHeaderLen + nameLen + extraLen

	eocdPos, err := findEOCD(buf)
	require.NoError(t, err)
	cdOffset := int(binary.LittleEndian.Uint32(buf[eocdPos+16 : eocdPos+20]))

	descPos := -1
	for pos := dataOffset; pos+4 <= cdOffset; pos++ {
		if binary.LittleEndian.Uint32(buf[pos:pos+4]) == dataDescriptorSignature {
			descPos = pos
			break
		}
	}
	require.NotEqual(t, -1, descPos, "data descriptor signature not found")

	out := make([]byte, 0, len(buf)-4)
	out = append(out, buf[:descPos]...)
	out = append(out, buf[descPos+4:]...)

	newEOCDPos, err := findEOCD(out)
	require.NoError(t, err)
	binary.LittleEndian.PutUint32(out[newEOCDPos+16:newEOCDPos+20], uint32(cdOffset-4))

	return out
}

func findCentralDirRecord(t *testing.T, buf []byte, name string) int {
	t.Helper()
	eocdPos, err := findEOCD(buf)
	require.NoError(t, err)
	cdOffset := int(binary.LittleEndian.Uint32(buf[eocdPos+16 : eocdPos+20]))
	cdEntries := int(binary.LittleEndian.Uint16(buf[eocdPos+10 : eocdPos+12]))

	pos := cdOffset
	for i := 0; i < cdEntries; i++ {
		nameLen := int(binary.LittleEndian.Uint16(buf[pos+28 : pos+30]))
		extraLen := int(binary.LittleEndian.Uint16(buf[pos+30 : pos+32]))
		commentLen := int(binary.LittleEndian.Uint16(buf[pos+32 : pos+34]))
		entryName := string(buf[pos+46 : pos+46+nameLen])
		if entryName == name {
			return pos
		}
		pos += 46 + nameLen + extraLen + commentLen
	}
	t.Fatalf("entry %q not found in central directory", name)
	return 0
}
