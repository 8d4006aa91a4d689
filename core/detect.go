package core

import (
	"bytes"
	"io"
	"os"
	"strings"
)

// FormatID enumerates the image containers the extractor can walk.
type FormatID string

const (
	FmtJPEG    FormatID = "jpeg"
	FmtPNG     FormatID = "png"
	FmtWebP    FormatID = "webp"
	FmtTIFF    FormatID = "tiff"
	FmtUnknown FormatID = "unknown"
)

// extMap maps lowercase extensions to format IDs.
var extMap = map[string]FormatID{
	".jpg":  FmtJPEG,
	".jpeg": FmtJPEG,
	".jpe":  FmtJPEG,
	".png":  FmtPNG,
	".webp": FmtWebP,
	".tiff": FmtTIFF,
	".tif":  FmtTIFF,
	// Camera raw formats are TIFF based.
	".dng": FmtTIFF,
	".nef": FmtTIFF,
	".cr2": FmtTIFF,
	".arw": FmtTIFF,
}

// DetectFormat returns the FormatID for the given file, first by reading
// magic bytes and falling back to extension.
func DetectFormat(path string) (FormatID, error) {
	f, err := os.Open(path)
	if err != nil {
		return FmtUnknown, err
	}
	defer f.Close()

	buf := make([]byte, 16)
	n, err := io.ReadFull(f, buf)
	if err != nil && n == 0 {
		if err == io.EOF {
			return FmtUnknown, nil
		}
		return FmtUnknown, err
	}
	if id := DetectMagic(buf[:n]); id != FmtUnknown {
		return id, nil
	}

	dot := strings.LastIndex(path, ".")
	if dot >= 0 {
		if id, ok := extMap[strings.ToLower(path[dot:])]; ok {
			return id, nil
		}
	}
	return FmtUnknown, nil
}

// DetectMagic identifies a container from its leading bytes.
func DetectMagic(b []byte) FormatID {
	if len(b) < 4 {
		return FmtUnknown
	}
	switch {
	// JPEG: FF D8 FF
	case b[0] == 0xFF && b[1] == 0xD8 && b[2] == 0xFF:
		return FmtJPEG
	// PNG: 89 50 4E 47 0D 0A 1A 0A
	case bytes.HasPrefix(b, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}):
		return FmtPNG
	// WebP: RIFF????WEBP
	case len(b) >= 12 && bytes.Equal(b[0:4], []byte("RIFF")) && bytes.Equal(b[8:12], []byte("WEBP")):
		return FmtWebP
	// TIFF: 49 49 2A 00 (little-endian) or 4D 4D 00 2A (big-endian)
	case bytes.HasPrefix(b, []byte{0x49, 0x49, 0x2A, 0x00}) ||
		bytes.HasPrefix(b, []byte{0x4D, 0x4D, 0x00, 0x2A}):
		return FmtTIFF
	}
	return FmtUnknown
}
