// Package core defines the shared value types, container detection and
// report output for the image metadata reporter.
package core

import (
	"math"
	"strconv"
)

// Kind identifies how a Value was stored in the image.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindRational
)

// Value is a single EXIF tag value.
type Value struct {
	Kind  Kind
	Str   string
	Int   int64
	Float float64
	Num   int64 // numerator for KindRational
	Den   int64 // denominator for KindRational
}

// StringValue wraps a text tag value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// IntValue wraps an integer tag value.
func IntValue(i int64) Value { return Value{Kind: KindInt, Int: i} }

// FloatValue wraps a floating point tag value.
func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// RationalValue wraps a num/den tag value.
func RationalValue(num, den int64) Value { return Value{Kind: KindRational, Num: num, Den: den} }

// Float64 returns the numeric reading of v. It reports false for text
// values and for rationals with a zero denominator.
func (v Value) Float64() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.Int), true
	case KindFloat:
		return v.Float, true
	case KindRational:
		if v.Den == 0 {
			return 0, false
		}
		return float64(v.Num) / float64(v.Den), true
	}
	return 0, false
}

// String renders v the way it appears in a report: integers bare, floats
// and rationals as decimals that keep one fractional digit when integral
// (85 -> "85.0").
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return formatDecimal(v.Float)
	case KindRational:
		if v.Den == 0 {
			return "nan"
		}
		return formatDecimal(float64(v.Num) / float64(v.Den))
	}
	return v.Str
}

func formatDecimal(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	switch {
	case abs >= 1e16 || (abs != 0 && abs < 1e-4):
		return strconv.FormatFloat(f, 'e', -1, 64)
	case f == math.Trunc(f):
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Section is a titled group of report lines.
type Section struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// ExifRecord maps EXIF tag names to their values. A nil record means the
// image carried no readable tag table.
type ExifRecord map[string]Value

// XmpRecord maps namespace-stripped XMP element and attribute names to
// their text. A nil record means the image carried no XMP packet.
type XmpRecord map[string]string
