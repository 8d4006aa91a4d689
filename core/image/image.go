// Package image extracts EXIF and XMP metadata from image containers:
// JPEG, PNG, WebP and TIFF (including TIFF based camera raw files).
package image

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
	"go.uber.org/zap"

	"github.com/ankit-chaubey/image-metadata-report/core"
	"github.com/ankit-chaubey/image-metadata-report/core/jpg"
	"github.com/ankit-chaubey/image-metadata-report/core/xmp"
)

// Segment names used for metadata carriers outside JPEG.
const (
	SegmentEXIF = "EXIF"
	SegmentXMP  = "XMP"
)

var exifHeader = []byte("Exif\x00\x00")

// Extractor reads metadata records from image files. It holds no state
// between calls.
type Extractor struct {
	log *zap.Logger
}

// NewExtractor returns an Extractor that reports recoverable failures to
// log. A nil logger discards them.
func NewExtractor(log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{log: log}
}

// ──────────────────────────────────────────────────────────────────────────────
// EXIF
// ──────────────────────────────────────────────────────────────────────────────

// Exif returns the EXIF tags of the image at path, keyed by tag name. It
// returns nil when the image has no tag table. Open and decode failures are
// logged and also yield nil.
func (e *Extractor) Exif(path string) core.ExifRecord {
	rec, err := e.readExif(path)
	if err != nil {
		e.log.Warn("Error reading EXIF data", zap.String("path", path), zap.Error(err))
		return nil
	}
	return rec
}

func (e *Extractor) readExif(path string) (core.ExifRecord, error) {
	format, err := core.DetectFormat(path)
	if err != nil {
		return nil, err
	}

	var blob []byte
	switch format {
	case core.FmtTIFF:
		blob, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	case core.FmtJPEG, core.FmtPNG, core.FmtWebP:
		segs, err := e.Segments(path)
		if err != nil {
			return nil, err
		}
		blob = exifBlob(segs)
	}
	if len(blob) == 0 {
		return nil, nil
	}

	x, err := exif.Decode(bytes.NewReader(blob))
	if err != nil {
		if x == nil || exif.IsCriticalError(err) {
			return nil, fmt.Errorf("decode tag table: %w", err)
		}
		e.log.Debug("Partial EXIF data", zap.String("path", path), zap.Error(err))
	}

	rec := core.ExifRecord{}
	if err := x.Walk(exifWalker{rec: rec}); err != nil {
		return nil, fmt.Errorf("walk tag table: %w", err)
	}
	if len(rec) == 0 {
		return nil, nil
	}
	return rec, nil
}

// exifBlob returns the first embedded EXIF payload among segs.
func exifBlob(segs []jpg.Segment) []byte {
	for _, seg := range segs {
		switch {
		case seg.Name == "APP1" && bytes.HasPrefix(seg.Data, exifHeader):
			return seg.Data
		case seg.Name == SegmentEXIF:
			return seg.Data
		}
	}
	return nil
}

type exifWalker struct {
	rec core.ExifRecord
}

func (w exifWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	// GPS and interoperability IDs restart at zero and collide with the table.
	n := string(name)
	if strings.HasPrefix(n, "GPS") || strings.HasPrefix(n, "Interoperability") {
		return nil
	}
	key, ok := exifTagNames[tag.Id]
	if !ok {
		return nil
	}
	if v, ok := tagValue(tag); ok {
		w.rec[key] = v
	}
	return nil
}

// tagValue converts a decoded tag into a Value. Multi-valued numeric tags
// keep their printed list; UNDEFINED tags are dropped.
func tagValue(tag *tiff.Tag) (core.Value, bool) {
	switch tag.Format() {
	case tiff.StringVal:
		s, err := tag.StringVal()
		if err != nil {
			return core.Value{}, false
		}
		return core.StringValue(strings.TrimRight(s, "\x00 ")), true
	case tiff.IntVal:
		if tag.Count != 1 {
			return core.StringValue(tag.String()), true
		}
		i, err := tag.Int64(0)
		if err != nil {
			return core.Value{}, false
		}
		return core.IntValue(i), true
	case tiff.RatVal:
		if tag.Count != 1 {
			return core.StringValue(tag.String()), true
		}
		num, den, err := tag.Rat2(0)
		if err != nil {
			return core.Value{}, false
		}
		return core.RationalValue(num, den), true
	case tiff.FloatVal:
		if tag.Count != 1 {
			return core.StringValue(tag.String()), true
		}
		f, err := tag.Float(0)
		if err != nil {
			return core.Value{}, false
		}
		return core.FloatValue(f), true
	}
	return core.Value{}, false
}

// ──────────────────────────────────────────────────────────────────────────────
// XMP
// ──────────────────────────────────────────────────────────────────────────────

// Xmp returns the flattened XMP packet of the image at path, or nil when the
// image carries none. Unlike Exif, failures are returned: a file that cannot
// be opened or a packet that does not parse (xmp.ErrMalformed).
func (e *Extractor) Xmp(path string) (core.XmpRecord, error) {
	segs, err := e.Segments(path)
	if err != nil {
		return nil, err
	}
	for _, seg := range segs {
		if !isXMPSegment(seg) {
			continue
		}
		parse := xmp.Parse
		if seg.Name == SegmentXMP {
			parse = xmp.ParsePacket
		}
		rec, err := parse(seg.Data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return rec, nil
	}
	return nil, nil
}

func isXMPSegment(seg jpg.Segment) bool {
	if seg.Name == SegmentXMP {
		return true
	}
	return seg.Name == "APP1" && bytes.HasPrefix(seg.Data, []byte(xmp.Marker))
}

// ──────────────────────────────────────────────────────────────────────────────
// Segments
// ──────────────────────────────────────────────────────────────────────────────

// Segments returns the auxiliary metadata segments of the image at path in
// file order: APPn and COM segments for JPEG, EXIF and XMP chunks for PNG
// and WebP. TIFF and unrecognised files have none. Damage inside the
// container is logged and the segments read up to that point are returned;
// only open failures are errors.
func (e *Extractor) Segments(path string) ([]jpg.Segment, error) {
	format, err := core.DetectFormat(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var segs []jpg.Segment
	switch format {
	case core.FmtJPEG:
		segs, err = jpg.ReadSegments(f)
	case core.FmtPNG:
		segs, err = readPNGSegments(f)
	case core.FmtWebP:
		segs, err = readWebPSegments(f)
	default:
		return nil, nil
	}
	if err != nil {
		e.log.Warn("Damaged image container",
			zap.String("path", path),
			zap.String("format", string(format)),
			zap.Error(err))
	}
	return segs, nil
}

// ─── PNG ─────────────────────────────────────────────────────────────────────

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

const pngXMPKeyword = "XML:com.adobe.xmp"

func readPNGSegments(r io.Reader) ([]jpg.Segment, error) {
	sig := make([]byte, 8)
	if _, err := io.ReadFull(r, sig); err != nil {
		return nil, err
	}
	if !bytes.Equal(sig, pngSignature) {
		return nil, errors.New("not a valid PNG")
	}

	var segs []jpg.Segment
	hdr := make([]byte, 8)
	for {
		if _, err := io.ReadFull(r, hdr); err != nil {
			return segs, nil
		}
		length := binary.BigEndian.Uint32(hdr[0:4])
		typ := string(hdr[4:8])
		if length > 1<<28 {
			return segs, fmt.Errorf("chunk %q too large: %d bytes", typ, length)
		}
		// data followed by CRC
		data := make([]byte, length+4)
		if _, err := io.ReadFull(r, data); err != nil {
			return segs, fmt.Errorf("chunk %q truncated", typ)
		}
		data = data[:length]

		switch typ {
		case "eXIf":
			segs = append(segs, jpg.Segment{Name: SegmentEXIF, Data: data})
		case "iTXt":
			if text, ok := pngXMPText(data); ok {
				segs = append(segs, jpg.Segment{Name: SegmentXMP, Data: text})
			}
		case "IEND":
			return segs, nil
		}
	}
}

// pngXMPText returns the text of an iTXt chunk carrying XMP. Layout:
// keyword\0 flag method language\0 translated\0 text.
func pngXMPText(data []byte) ([]byte, bool) {
	null := bytes.IndexByte(data, 0)
	if null < 0 || string(data[:null]) != pngXMPKeyword || null+3 > len(data) {
		return nil, false
	}
	compressed := data[null+1] == 1
	rest := data[null+3:]
	for i := 0; i < 2; i++ {
		n := bytes.IndexByte(rest, 0)
		if n < 0 {
			return nil, false
		}
		rest = rest[n+1:]
	}
	if !compressed {
		return rest, true
	}
	zr, err := zlib.NewReader(bytes.NewReader(rest))
	if err != nil {
		return nil, false
	}
	defer zr.Close()
	text, err := io.ReadAll(zr)
	if err != nil {
		return nil, false
	}
	return text, true
}

// ─── WebP ─────────────────────────────────────────────────────────────────────

func readWebPSegments(r io.Reader) ([]jpg.Segment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < 12 {
		return nil, errors.New("file too short")
	}

	var segs []jpg.Segment
	offset := 12 // skip RIFF header
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		offset += 8
		if chunkSize < 0 || offset+chunkSize > len(data) {
			return segs, fmt.Errorf("chunk %q truncated", chunkID)
		}
		chunkData := data[offset : offset+chunkSize]

		switch chunkID {
		case "EXIF":
			segs = append(segs, jpg.Segment{Name: SegmentEXIF, Data: chunkData})
		case "XMP ":
			segs = append(segs, jpg.Segment{Name: SegmentXMP, Data: chunkData})
		}

		offset += chunkSize
		if chunkSize%2 != 0 {
			offset++ // padding
		}
	}
	return segs, nil
}
