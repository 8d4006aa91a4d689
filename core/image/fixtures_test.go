package image

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ankit-chaubey/image-metadata-report/core/jpg"
)

// ifdEntry is one IFD0 entry of a test tag table.
type ifdEntry struct {
	tag   uint16
	typ   uint16
	count uint32
	data  []byte
}

func asciiEntry(tag uint16, s string) ifdEntry {
	val := s + "\x00"
	return ifdEntry{tag: tag, typ: 2, count: uint32(len(val)), data: []byte(val)}
}

func shortEntry(tag uint16, v uint16) ifdEntry {
	data := make([]byte, 2)
	binary.LittleEndian.PutUint16(data, v)
	return ifdEntry{tag: tag, typ: 3, count: 1, data: data}
}

func rationalEntry(tag uint16, num, den uint32) ifdEntry {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint32(data[0:], num)
	binary.LittleEndian.PutUint32(data[4:], den)
	return ifdEntry{tag: tag, typ: 5, count: 1, data: data}
}

// buildTIFF writes a little-endian TIFF stream with a single IFD.
func buildTIFF(entries []ifdEntry) []byte {
	var buf bytes.Buffer
	buf.WriteString("II")
	buf.Write([]byte{0x2A, 0x00})
	buf.Write([]byte{0x08, 0x00, 0x00, 0x00}) // offset to IFD0

	le16 := func(w *bytes.Buffer, v uint16) { binary.Write(w, binary.LittleEndian, v) }
	le32 := func(w *bytes.Buffer, v uint32) { binary.Write(w, binary.LittleEndian, v) }

	ifdSize := 2 + len(entries)*12 + 4
	valOffset := 8 + ifdSize

	var ifd, values bytes.Buffer
	le16(&ifd, uint16(len(entries)))
	for _, e := range entries {
		le16(&ifd, e.tag)
		le16(&ifd, e.typ)
		le32(&ifd, e.count)
		if len(e.data) <= 4 {
			padded := make([]byte, 4)
			copy(padded, e.data)
			ifd.Write(padded)
			continue
		}
		le32(&ifd, uint32(valOffset+values.Len()))
		values.Write(e.data)
		if values.Len()%2 != 0 {
			values.WriteByte(0)
		}
	}
	le32(&ifd, 0) // no next IFD

	buf.Write(ifd.Bytes())
	buf.Write(values.Bytes())
	return buf.Bytes()
}

func exifSegment(entries ...ifdEntry) jpg.Segment {
	return jpg.Segment{Name: "APP1", Data: append([]byte("Exif\x00\x00"), buildTIFF(entries)...)}
}

func writeJPEG(t *testing.T, name string, segs ...jpg.Segment) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpg.Build(&buf, segs))
	return writeFile(t, name, buf.Bytes())
}

func pngChunk(w *bytes.Buffer, typ string, data []byte) {
	binary.Write(w, binary.BigEndian, uint32(len(data)))
	w.WriteString(typ)
	w.Write(data)
	binary.Write(w, binary.BigEndian, crc32.ChecksumIEEE(append([]byte(typ), data...)))
}

func writePNG(t *testing.T, name string, chunks map[string][]byte, order ...string) string {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(pngSignature)
	pngChunk(&buf, "IHDR", make([]byte, 13))
	for _, typ := range order {
		pngChunk(&buf, typ, chunks[typ])
	}
	pngChunk(&buf, "IEND", nil)
	return writeFile(t, name, buf.Bytes())
}

func itxt(keyword, text string) []byte {
	return []byte(keyword + "\x00\x00\x00" + "\x00" + "\x00" + text)
}

func writeWebP(t *testing.T, name string, chunks ...[2]string) string {
	t.Helper()
	var body bytes.Buffer
	body.WriteString("WEBP")
	for _, c := range chunks {
		body.WriteString(c[0])
		binary.Write(&body, binary.LittleEndian, uint32(len(c[1])))
		body.WriteString(c[1])
		if len(c[1])%2 != 0 {
			body.WriteByte(0)
		}
	}
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(body.Len()))
	buf.Write(body.Bytes())
	return writeFile(t, name, buf.Bytes())
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
