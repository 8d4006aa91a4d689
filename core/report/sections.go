package report

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ankit-chaubey/image-metadata-report/core"
)

// CameraSettings renders the camera body and lens. Both lines are always
// present; missing tags leave their value empty.
func CameraSettings(_ core.XmpRecord, exif core.ExifRecord) []string {
	camera := collapseRepeats(exifString(exif, "Make") + " " + exifString(exif, "Model"))
	block := "Camera: " + camera + "\nLens: " + exifString(exif, "LensModel")
	return strings.Split(strings.TrimSpace(block), "\n")
}

// Settings renders aperture, shutter speed, ISO and focal length.
func Settings(_ core.XmpRecord, exif core.ExifRecord) []string {
	var lines []string
	if v, ok := exif["FNumber"]; ok {
		lines = append(lines, "Aperture: f/"+v.String())
	}
	if v, ok := exif["ExposureTime"]; ok {
		lines = append(lines, "Shutter Speed: "+shutterSpeed(v)+" sec")
	}
	if v, ok := exif["ISOSpeedRatings"]; ok {
		lines = append(lines, "ISO: "+v.String())
	}
	if v, ok := exif["FocalLength"]; ok {
		lines = append(lines, "Focal Length: "+v.String()+" mm")
	}
	return lines
}

// TechDetails renders the exposure program and white balance mode.
func TechDetails(_ core.XmpRecord, exif core.ExifRecord) []string {
	var lines []string
	if v, ok := exif["ExposureProgram"]; ok {
		lines = append(lines, "Shot in "+exposureProgram(v)+" mode")
	}
	if v, ok := exif["WhiteBalance"]; ok {
		wb := "Manual"
		if f, ok := v.Float64(); ok && f == 0 {
			wb = "Auto"
		}
		lines = append(lines, "White Balance: "+wb)
	}
	return lines
}

// CropInfo renders how much was cropped from each edge. Crops of 0.1% or
// less are not reported.
func CropInfo(xmp core.XmpRecord, _ core.ExifRecord) []string {
	var lines []string
	for _, key := range cropKeys {
		raw, ok := xmp[key]
		if !ok {
			continue
		}
		v, ok := parseNumber(raw)
		if !ok {
			continue
		}
		pct := v * 100
		if key == "CropRight" || key == "CropBottom" {
			pct = (1 - v) * 100
		}
		if !(math.Abs(pct) > 0.1) {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %.2f%% cropped", strings.TrimPrefix(key, "Crop"), pct))
	}
	return lines
}

// PostProcessing renders the editing tool and every develop setting that
// differs from its neutral value.
func PostProcessing(xmp core.XmpRecord, _ core.ExifRecord) []string {
	var lines []string
	if tool, ok := xmp["CreatorTool"]; ok {
		lines = append(lines, "Edited in "+tool)
	}
	for _, key := range postProcessingKeys {
		value, ok := xmp[key]
		if !ok {
			continue
		}
		if f, ok := parseNumber(value); ok {
			if f == 0 || (key == "PerspectiveScale" && f == 100) {
				continue
			}
		} else if unsetValues[strings.ToLower(value)] {
			continue
		}
		lines = append(lines, Humanize(key)+": "+value)
	}
	return lines
}

// CaptureDate renders DateTimeOriginal ("YYYY:MM:DD HH:MM:SS") with a
// dashed date.
func CaptureDate(_ core.XmpRecord, exif core.ExifRecord) []string {
	v, ok := exif["DateTimeOriginal"]
	if !ok {
		return nil
	}
	parts := strings.Fields(v.String())
	if len(parts) != 2 {
		return nil
	}
	date := strings.ReplaceAll(parts[0], ":", "-")
	return []string{"Captured on " + date + " at " + parts[1]}
}

var (
	camelWord  = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	camelUpper = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// Humanize turns a setting key into a label: "2012" process suffixes are
// dropped, camel-case words are split and title-cased
// ("Clarity2012" -> "Clarity", "ColorNoiseReduction" -> "Color Noise Reduction").
func Humanize(key string) string {
	name := strings.ReplaceAll(key, "2012", "")
	name = camelWord.ReplaceAllString(name, "${1} ${2}")
	name = camelUpper.ReplaceAllString(name, "${1} ${2}")
	return cases.Title(language.Und).String(name)
}

func exifString(exif core.ExifRecord, key string) string {
	v, ok := exif[key]
	if !ok {
		return ""
	}
	return v.String()
}

// collapseRepeats joins the words of s, dropping a word that repeats the
// one before it ("Canon Canon EOS" -> "Canon EOS").
func collapseRepeats(s string) string {
	var out []string
	for _, w := range strings.Fields(s) {
		if len(out) > 0 && out[len(out)-1] == w {
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

func shutterSpeed(v core.Value) string {
	if f, ok := v.Float64(); ok && f > 0 && f < 1 {
		return "1/" + strconv.FormatInt(int64(math.RoundToEven(1/f)), 10)
	}
	return v.String()
}

func exposureProgram(v core.Value) string {
	f, ok := v.Float64()
	if !ok || f != math.Trunc(f) {
		return "Unknown"
	}
	if name, ok := exposurePrograms[int64(f)]; ok {
		return name
	}
	return "Unknown"
}

// parseNumber reads s as a decimal number. Out of range values still count
// as numbers.
func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}
