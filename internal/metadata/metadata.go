// Package metadata extracts the camera metadata the watermark layouts display.
package metadata

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// ErrNoExif is returned when the input carries no readable EXIF block.
var ErrNoExif = errors.New("no exif data")

// Metadata is the subset of EXIF fields used for captions.
// Zero values mean "not recorded".
type Metadata struct {
	Make      string `json:"make,omitempty"`
	Model     string `json:"model,omitempty"`
	LensMake  string `json:"lens_make,omitempty"`
	LensModel string `json:"lens_model,omitempty"`

	// FocalLength is in millimetres; FocalLength35 is the 35mm equivalent.
	FocalLength   float64 `json:"focal_length,omitempty"`
	FocalLength35 int     `json:"focal_length_35mm,omitempty"`
	FNumber       float64 `json:"f_number,omitempty"`
	// ExposureNum/ExposureDen is the exposure time in seconds as a fraction.
	ExposureNum int64     `json:"exposure_num,omitempty"`
	ExposureDen int64     `json:"exposure_den,omitempty"`
	ISO         int       `json:"iso,omitempty"`
	DateTime    time.Time `json:"date_time,omitempty"`

	// Orientation is the EXIF orientation tag, 1 (upright) through 8.
	Orientation int `json:"orientation"`
}

// Empty returns metadata for a photo without EXIF.
func Empty() *Metadata {
	return &Metadata{Orientation: 1}
}

// Extract decodes the EXIF block of a JPEG or TIFF stream. When the stream has
// no EXIF the returned metadata is Empty and the error wraps ErrNoExif.
func Extract(r io.Reader) (*Metadata, error) {
	x, err := exif.Decode(r)
	if x == nil {
		if err == nil {
			err = errors.New("empty exif")
		}
		return Empty(), fmt.Errorf("%w: %v", ErrNoExif, err)
	}
	if err != nil && exif.IsCriticalError(err) {
		return Empty(), fmt.Errorf("failed to decode exif: %w", err)
	}

	m := Empty()
	m.Make = stringField(x, exif.Make)
	m.Model = stringField(x, exif.Model)
	m.LensMake = stringField(x, exif.LensMake)
	m.LensModel = stringField(x, exif.LensModel)
	m.FocalLength = ratField(x, exif.FocalLength)
	m.FocalLength35 = intField(x, exif.FocalLengthIn35mmFilm)
	m.FNumber = ratField(x, exif.FNumber)
	m.ISO = intField(x, exif.ISOSpeedRatings)

	if tag, err := x.Get(exif.ExposureTime); err == nil {
		if num, den, err := tag.Rat2(0); err == nil && den != 0 {
			m.ExposureNum, m.ExposureDen = num, den
		}
	}
	if o := intField(x, exif.Orientation); o >= 1 && o <= 8 {
		m.Orientation = o
	}
	if t, err := x.DateTime(); err == nil {
		m.DateTime = t
	}
	return m, nil
}

func stringField(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	if tag.Format() != tiff.StringVal {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.Trim(s, "\x00"))
}

func ratField(x *exif.Exif, name exif.FieldName) float64 {
	tag, err := x.Get(name)
	if err != nil {
		return 0
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func intField(x *exif.Exif, name exif.FieldName) int {
	tag, err := x.Get(name)
	if err != nil {
		return 0
	}
	v, err := tag.Int(0)
	if err != nil {
		return 0
	}
	return v
}

// FocalLengthString formats the focal length as "50mm". With equivalent set
// and a 35mm-equivalent value recorded, that value is used instead.
func (m *Metadata) FocalLengthString(equivalent bool) string {
	if equivalent && m.FocalLength35 > 0 {
		return strconv.Itoa(m.FocalLength35) + "mm"
	}
	if m.FocalLength <= 0 {
		return ""
	}
	return formatDecimal(m.FocalLength) + "mm"
}

// FNumberString formats the aperture as "F1.8".
func (m *Metadata) FNumberString() string {
	if m.FNumber <= 0 {
		return ""
	}
	return "F" + formatDecimal(m.FNumber)
}

// ExposureString formats the exposure time as "1/125s" or "2s".
func (m *Metadata) ExposureString() string {
	if m.ExposureNum <= 0 || m.ExposureDen <= 0 {
		return ""
	}
	seconds := float64(m.ExposureNum) / float64(m.ExposureDen)
	if seconds >= 1 {
		return formatDecimal(seconds) + "s"
	}
	return "1/" + strconv.Itoa(int(math.Round(1/seconds))) + "s"
}

// ISOString formats the sensitivity as "ISO100".
func (m *Metadata) ISOString() string {
	if m.ISO <= 0 {
		return ""
	}
	return "ISO" + strconv.Itoa(m.ISO)
}

// ParamString joins the non-empty capture parameters with single spaces,
// e.g. "50mm F1.8 1/125s ISO100".
func (m *Metadata) ParamString(equivalentFocalLength bool) string {
	parts := []string{
		m.FocalLengthString(equivalentFocalLength),
		m.FNumberString(),
		m.ExposureString(),
		m.ISOString(),
	}
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// formatDecimal prints v with at most one decimal and no trailing ".0".
func formatDecimal(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}
