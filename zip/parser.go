package zip

import (
	"encoding/binary"
	"fmt"
)

const (
	eocdSignature           = 0x06054b50
	centralDirSignature     = 0x02014b50
	localFileSignature      = 0x04034b50
	dataDescriptorSignature = 0x08074b50

	eocdRecordLen       = 22
	maxEOCDCommentSpan  = 65557 // 22-byte EOCD + max 65535-byte comment
	centralDirHeaderLen = 46
)

// parseDirectory locates the EOCD record and walks the central directory,
// returning the flat entry list in on-disk order.
func parseDirectory(buf []byte) ([]*Entry, error) {
	eocdPos, err := findEOCD(buf)
	if err != nil {
		return nil, err
	}

	cdEntries := binary.LittleEndian.Uint16(buf[eocdPos+10 : eocdPos+12])
	cdOffset := binary.LittleEndian.Uint32(buf[eocdPos+16 : eocdPos+20])

	entries := make([]*Entry, 0, cdEntries)
	pos := int(cdOffset)
	for i := uint16(0); i < cdEntries; i++ {
		e, next, err := parseCentralDirRecord(buf, pos)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
		pos = next
	}
	return entries, nil
}

// findEOCD scans backward for the EOCD signature, bounded to the last
// maxEOCDCommentSpan bytes of the buffer (spec §9 open question: the
// unbounded scan is slow and can match spuriously inside archive bodies).
// Candidate matches are further checked for comment-length consistency
// against the distance from the signature to the end of the buffer.
func findEOCD(buf []byte) (int, error) {
	if len(buf) < eocdRecordLen {
		return 0, fmt.Errorf("%w: buffer too small for EOCD", ErrMalformedArchive)
	}

	lowerBound := 0
	if len(buf)-maxEOCDCommentSpan > 0 {
		lowerBound = len(buf) - maxEOCDCommentSpan
	}

	for pos := len(buf) - eocdRecordLen; pos >= lowerBound; pos-- {
		if binary.LittleEndian.Uint32(buf[pos:pos+4]) != eocdSignature {
			continue
		}
		commentLen := int(binary.LittleEndian.Uint16(buf[pos+20 : pos+22]))
		if pos+eocdRecordLen+commentLen == len(buf) {
			return pos, nil
		}
	}
	return 0, fmt.Errorf("%w: EOCD signature not found", ErrMalformedArchive)
}

// parseCentralDirRecord reads one central-directory record starting at
// pos, returning the constructed Entry and the offset of the next record.
func parseCentralDirRecord(buf []byte, pos int) (*Entry, int, error) {
	if pos+centralDirHeaderLen > len(buf) {
		return nil, 0, fmt.Errorf("%w: central directory record overruns buffer", ErrMalformedArchive)
	}
	if binary.LittleEndian.Uint32(buf[pos:pos+4]) != centralDirSignature {
		return nil, 0, fmt.Errorf("%w: bad central directory signature", ErrMalformedArchive)
	}

	timestamp := binary.LittleEndian.Uint32(buf[pos+12 : pos+16])
	crc := binary.LittleEndian.Uint32(buf[pos+16 : pos+20])
	size := binary.LittleEndian.Uint32(buf[pos+24 : pos+28])
	nameLen := int(binary.LittleEndian.Uint16(buf[pos+28 : pos+30]))
	extraLen := int(binary.LittleEndian.Uint16(buf[pos+30 : pos+32]))
	commentLen := int(binary.LittleEndian.Uint16(buf[pos+32 : pos+34]))
	localOffset := binary.LittleEndian.Uint32(buf[pos+42 : pos+46])

	nameStart := pos + 46
	nameEnd := nameStart + nameLen
	if nameEnd > len(buf) {
		return nil, 0, fmt.Errorf("%w: file name overruns buffer", ErrMalformedArchive)
	}
	name := string(buf[nameStart:nameEnd])

	e := &Entry{
		Name:        name,
		Size:        size,
		Offset:      localOffset,
		Timestamp:   timestamp,
		CRC:         crc,
		IsDirectory: isDirectoryName(name),
	}

	recordLen := centralDirHeaderLen + nameLen + extraLen + commentLen
	return e, pos + recordLen, nil
}

func isDirectoryName(name string) bool {
	return len(name) > 0 && name[len(name)-1] == '/'
}
