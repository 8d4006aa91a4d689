// Package jpg reads the marker segments that precede the compressed image
// data in a JPEG file.
package jpg

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrNotJPEG is returned when the stream does not start with an SOI marker.
var ErrNotJPEG = errors.New("not a JPEG")

const (
	markerSOI = 0xD8
	markerEOI = 0xD9
	markerSOS = 0xDA
	markerCOM = 0xFE
)

// Segment is one metadata carrier found in an image container. Name is the
// marker name for JPEG ("APP1", "COM") and the chunk name for other
// containers.
type Segment struct {
	Name string
	Data []byte
}

// MarkerName returns the conventional name of a JPEG marker byte.
func MarkerName(marker byte) string {
	switch {
	case marker >= 0xE0 && marker <= 0xEF:
		return fmt.Sprintf("APP%d", marker-0xE0)
	case marker == markerCOM:
		return "COM"
	case marker == markerSOS:
		return "SOS"
	}
	return fmt.Sprintf("0x%02X", marker)
}

// ReadSegments returns the APPn and COM segments of a JPEG stream in file
// order. Reading stops at the start of scan; other marker segments such as
// quantisation and Huffman tables are skipped.
func ReadSegments(r io.Reader) ([]Segment, error) {
	buf := make([]byte, 2)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, ErrNotJPEG
	}
	if buf[0] != 0xFF || buf[1] != markerSOI {
		return nil, ErrNotJPEG
	}

	var segs []Segment
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			// Truncated after the last complete segment.
			return segs, nil
		}
		if buf[0] != 0xFF {
			return segs, fmt.Errorf("invalid marker 0x%02X%02X", buf[0], buf[1])
		}
		marker := buf[1]
		// Fill bytes.
		for marker == 0xFF {
			if _, err := io.ReadFull(r, buf[1:]); err != nil {
				return segs, nil
			}
			marker = buf[1]
		}
		if marker == markerEOI || marker == markerSOS {
			return segs, nil
		}
		// Standalone markers without a length field.
		if marker == 0x01 || (marker >= 0xD0 && marker <= 0xD7) {
			continue
		}

		lenBuf := make([]byte, 2)
		if _, err := io.ReadFull(r, lenBuf); err != nil {
			return segs, nil
		}
		segLen := int(binary.BigEndian.Uint16(lenBuf)) - 2
		if segLen < 0 {
			return segs, fmt.Errorf("invalid length for marker %s", MarkerName(marker))
		}
		data := make([]byte, segLen)
		if _, err := io.ReadFull(r, data); err != nil {
			return segs, nil
		}
		if (marker >= 0xE0 && marker <= 0xEF) || marker == markerCOM {
			segs = append(segs, Segment{Name: MarkerName(marker), Data: data})
		}
	}
}

// Build assembles a JPEG stream from segments, writing SOI first and EOI
// last. Segment names must be APPn or COM.
func Build(w io.Writer, segs []Segment) error {
	if _, err := w.Write([]byte{0xFF, markerSOI}); err != nil {
		return err
	}
	for _, seg := range segs {
		marker, ok := markerByName(seg.Name)
		if !ok {
			return fmt.Errorf("unsupported segment %q", seg.Name)
		}
		if len(seg.Data)+2 > 0xFFFF {
			return fmt.Errorf("segment %s too large: %d bytes", seg.Name, len(seg.Data))
		}
		hdr := []byte{0xFF, marker, 0, 0}
		binary.BigEndian.PutUint16(hdr[2:], uint16(len(seg.Data)+2))
		if _, err := w.Write(hdr); err != nil {
			return err
		}
		if _, err := w.Write(seg.Data); err != nil {
			return err
		}
	}
	_, err := w.Write([]byte{0xFF, markerEOI})
	return err
}

func markerByName(name string) (byte, bool) {
	if name == "COM" {
		return markerCOM, true
	}
	var n int
	if _, err := fmt.Sscanf(name, "APP%d", &n); err != nil || n < 0 || n > 15 {
		return 0, false
	}
	return byte(0xE0 + n), true
}
