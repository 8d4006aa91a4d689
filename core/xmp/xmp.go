// Package xmp locates the XMP packet inside a metadata segment and flattens
// it into a name/value record.
//
// Flattening walks the XML tree in document order. For every element the
// leading text (the text before its first child) is recorded under the
// element's local name when the element is namespaced and the text is not
// blank; then every attribute is recorded under its local name. Namespace
// declarations are not attributes and are skipped. When two entries share a
// local name the one that comes later in the document wins.
package xmp

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ankit-chaubey/image-metadata-report/core"
)

// Marker is the namespace prefix that opens an XMP APP1 segment in JPEG.
const Marker = "http://ns.adobe.com/xap/1.0/"

// ErrMalformed is returned for packets that cannot be located, decoded or
// parsed.
var ErrMalformed = errors.New("malformed XMP")

var (
	metaStart = []byte("<x:xmpmeta")
	metaEnd   = []byte("</x:xmpmeta")
)

// Locate returns the <x:xmpmeta> element embedded in payload.
func Locate(payload []byte) ([]byte, error) {
	start := bytes.Index(payload, metaStart)
	end := bytes.Index(payload, metaEnd)
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no x:xmpmeta element", ErrMalformed)
	}
	end += len(metaEnd) + 1 // closing '>'
	if end > len(payload) {
		end = len(payload)
	}
	packet := payload[start:end]
	if !utf8.Valid(packet) {
		return nil, fmt.Errorf("%w: packet is not valid UTF-8", ErrMalformed)
	}
	return packet, nil
}

// Parse locates the packet in payload and flattens it.
func Parse(payload []byte) (core.XmpRecord, error) {
	packet, err := Locate(payload)
	if err != nil {
		return nil, err
	}
	return Flatten(bytes.NewReader(packet))
}

// ParsePacket flattens a packet from a native XMP carrier (PNG iTXt, WebP
// "XMP " chunk), where the x:xmpmeta wrapper is optional.
func ParsePacket(payload []byte) (core.XmpRecord, error) {
	if bytes.Contains(payload, metaStart) {
		return Parse(payload)
	}
	payload = bytes.TrimRight(payload, "\x00")
	if !utf8.Valid(payload) {
		return nil, fmt.Errorf("%w: packet is not valid UTF-8", ErrMalformed)
	}
	return Flatten(bytes.NewReader(payload))
}

// frame tracks an open element whose text and attributes have not been
// recorded yet.
type frame struct {
	name      xml.Name
	attrs     []xml.Attr
	text      strings.Builder
	committed bool
}

// Flatten reads one XML document from r and returns its flattened record.
func Flatten(r io.Reader) (core.XmpRecord, error) {
	dec := xml.NewDecoder(r)
	rec := core.XmpRecord{}
	var stack []*frame
	sawRoot := false

	commit := func(f *frame) {
		if f.committed {
			return
		}
		f.committed = true
		if f.name.Space != "" {
			if text := strings.TrimSpace(f.text.String()); text != "" {
				rec[f.name.Local] = text
			}
		}
		for _, a := range f.attrs {
			if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
				continue
			}
			rec[a.Name.Local] = a.Value
		}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 {
				if sawRoot {
					return nil, fmt.Errorf("%w: multiple root elements", ErrMalformed)
				}
				sawRoot = true
			} else {
				commit(stack[len(stack)-1])
			}
			stack = append(stack, &frame{name: t.Name, attrs: t.Copy().Attr})
		case xml.EndElement:
			top := stack[len(stack)-1]
			commit(top)
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				if top := stack[len(stack)-1]; !top.committed {
					top.text.Write(t)
				}
			}
		}
	}
	if !sawRoot {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}
	return rec, nil
}
