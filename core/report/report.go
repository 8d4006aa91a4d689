// Package report turns EXIF and XMP records into a sectioned, human
// readable text report.
package report

import (
	"strings"

	"github.com/ankit-chaubey/image-metadata-report/core"
)

// NoMetadata is the whole report for an image without any metadata.
const NoMetadata = "No metadata present"

// Section is a titled group of report lines.
type Section = core.Section

// Report is the ordered list of non-empty sections for one image.
type Report struct {
	Sections []Section
}

// Empty reports whether no section applied.
func (r Report) Empty() bool { return len(r.Sections) == 0 }

// SectionList returns the sections in output order.
func (r Report) SectionList() []core.Section { return r.Sections }

// String renders every section as a "Title\nline\n...\n\n" block. An empty
// report renders as NoMetadata.
func (r Report) String() string {
	if r.Empty() {
		return NoMetadata
	}
	var sb strings.Builder
	for _, s := range r.Sections {
		sb.WriteString(s.Title)
		sb.WriteByte('\n')
		for _, line := range s.Lines {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// SectionFunc renders one section from the two records. It returns no
// lines when the section does not apply. Either record may be nil.
type SectionFunc func(xmp core.XmpRecord, exif core.ExifRecord) []string

// Rule pairs a section title with the function that fills it.
type Rule struct {
	Title  string
	Render SectionFunc
}

// Rules lists the report sections in output order.
var Rules = []Rule{
	{"📸 Camera Settings Breakdown 📸", CameraSettings},
	{"📊 Settings", Settings},
	{"🔍 Tech Details", TechDetails},
	{"✂️ Crop Info", CropInfo},
	{"✨ Post-Processing", PostProcessing},
	{"📅 Capture Date", CaptureDate},
}

// Format builds the report for one image. When both records are empty the
// report is empty and renders as NoMetadata.
func Format(xmp core.XmpRecord, exif core.ExifRecord) Report {
	var r Report
	if len(xmp) == 0 && len(exif) == 0 {
		return r
	}
	for _, rule := range Rules {
		if lines := rule.Render(xmp, exif); len(lines) > 0 {
			r.Sections = append(r.Sections, Section{Title: rule.Title, Lines: lines})
		}
	}
	return r
}
