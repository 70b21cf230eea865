// Package plate normalizes raw registration plate input into a canonical,
// classified form. Normalization is pure and idempotent: it performs no I/O
// and re-normalizing a canonical plate returns it unchanged.
package plate

import (
	"errors"
	"regexp"
	"strings"
)

type Format string

const (
	// FormatStandard is the generic state-series format:
	// 2 letters + 2 digits + 1-2 letters + 4 digits (e.g. MH12AB1234).
	FormatStandard Format = "standard"
	// FormatBharatSeries is the pan-India BH registration:
	// 2 digits + "BH" + 4 digits + 1-2 letters (e.g. 26BH1234AA).
	FormatBharatSeries Format = "bharat_series"
	// FormatDelhiSpecial covers Delhi plates with a single-digit RTO code:
	// "DL" + 1-2 digits + 1 category letter + 1-2 series letters + 4 digits.
	FormatDelhiSpecial Format = "delhi_special"
)

var (
	ErrTooShort           = errors.New("plate number too short")
	ErrTooLong            = errors.New("plate number too long")
	ErrUnrecognizedFormat = errors.New("unrecognized plate format")

	standardPattern     = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z]{1,2}[0-9]{4}$`)
	bharatSeriesPattern = regexp.MustCompile(`^[0-9]{2}BH[0-9]{4}[A-Z]{1,2}$`)
	delhiSpecialPattern = regexp.MustCompile(`^DL[0-9]{1,2}[A-Z][A-Z]{1,2}[0-9]{4}$`)

	nonAlphanumeric = regexp.MustCompile(`[^A-Z0-9]`)
)

const (
	minLength = 8
	maxLength = 12
)

// Plate is a canonical plate number together with its recognized format.
type Plate struct {
	Number string `json:"number"`
	Format Format `json:"format"`
}

func (p Plate) String() string {
	return p.Number
}

// Normalize strips separators and whitespace, uppercases, and classifies the
// result against the three recognized format families. Classification order
// is fixed: Standard wins over BharatSeries, and DelhiSpecial is tried only
// when neither matched, so a Standard plate containing "BH" as an incidental
// series can never be misread as a Bharat-series registration.
func Normalize(raw string) (Plate, error) {
	number := Canonicalize(raw)

	if len(number) < minLength {
		return Plate{}, ErrTooShort
	}
	if len(number) > maxLength {
		return Plate{}, ErrTooLong
	}

	switch {
	case standardPattern.MatchString(number):
		return Plate{Number: number, Format: FormatStandard}, nil
	case bharatSeriesPattern.MatchString(number):
		return Plate{Number: number, Format: FormatBharatSeries}, nil
	case delhiSpecialPattern.MatchString(number):
		return Plate{Number: number, Format: FormatDelhiSpecial}, nil
	}

	return Plate{}, ErrUnrecognizedFormat
}

// Canonicalize uppercases raw input and strips everything that is not a
// letter or digit. It does not validate; use Normalize for that.
func Canonicalize(raw string) string {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	return nonAlphanumeric.ReplaceAllString(upper, "")
}

// IsValid reports whether raw normalizes to a recognized plate.
func IsValid(raw string) bool {
	_, err := Normalize(raw)
	return err == nil
}
