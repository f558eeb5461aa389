package sheet

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Pre-compiled patterns for value classification (avoids recompilation on each call)
var (
	// floatRegex matches plain decimal notation. Exponents, leading dots
	// and trailing dots are rejected on purpose: those values would not
	// survive a round trip through a spreadsheet cell unchanged.
	floatRegex = regexp.MustCompile(`^-?\d+(?:\.\d+)?$`)

	// isoDateRegex matches YYYY-MM-DD with "-" or "/" separators and an
	// optional "T" or space separated HH:MM:SS[.fff] time part.
	isoDateRegex = regexp.MustCompile(`^(\d{4})[-/]([0-1][0-9])[-/]([0-3][0-9])(?:[T ]([0-2][0-9]):([0-5][0-9]):([0-5][0-9](?:\.\d+)?))?$`)

	// euroDateRegex matches DD.MM.YYYY with an optional HH:MM[:SS[.fff]]
	// time part.
	euroDateRegex = regexp.MustCompile(`^([0-3][0-9])\.([0-1][0-9])\.(\d{4})(?: ([0-2][0-9]):([0-5][0-9])(?::([0-5][0-9](?:\.\d+)?))?)?$`)
)

// fallbackDateLayouts are tried, in order, when neither date pattern
// matches in ParseDate.
var fallbackDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// IsInteger reports whether s is a whole number in canonical form:
// re-serializing the parsed value reproduces s exactly. Leading zeros,
// a leading "+", "-0" and surrounding whitespace all fail the check.
// A leading "-" is accepted: negative integers are integers.
func IsInteger(s string) bool {
	digits := s
	if strings.HasPrefix(digits, "-") {
		digits = digits[1:]
		if digits == "0" {
			return false
		}
	}
	if digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	// canonical form has no leading zero
	if len(digits) > 1 && digits[0] == '0' {
		return false
	}
	return true
}

// IsFloat reports whether s is a decimal number that is not an integer per
// IsInteger. The pattern is -?digits(.digits)?, so exponent notation and
// trailing dots are rejected. Note that non-canonical whole numbers such as
// "007" match: they are not integers but do parse as decimals.
func IsFloat(s string) bool {
	if IsInteger(s) {
		return false
	}
	if !floatRegex.MatchString(s) {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// IsDate reports whether s matches either supported date shape, with or
// without a time component.
func IsDate(s string) bool {
	return isoDateRegex.MatchString(s) || euroDateRegex.MatchString(s)
}

// IsDateTime reports whether s matches either supported date shape and
// carries a time component.
func IsDateTime(s string) bool {
	if m := isoDateRegex.FindStringSubmatch(s); m != nil {
		return m[4] != ""
	}
	if m := euroDateRegex.FindStringSubmatch(s); m != nil {
		return m[4] != ""
	}
	return false
}

// FloatPrecision returns the number of fractional digits of a value in
// plain decimal notation, or 0 if it has no fractional part.
func FloatPrecision(s string) int {
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// ParseDate converts a string to a naive local date-time. It applies the
// same two patterns as IsDate, then falls back to a small set of generic
// layouts. The second return value is false if nothing parses.
//
// Out-of-range day or month components are normalized by date arithmetic,
// and fractional seconds are truncated.
func ParseDate(s string) (time.Time, bool) {
	if m := isoDateRegex.FindStringSubmatch(s); m != nil {
		return buildDate(m[1], m[2], m[3], m[4], m[5], m[6]), true
	}
	if m := euroDateRegex.FindStringSubmatch(s); m != nil {
		return buildDate(m[3], m[2], m[1], m[4], m[5], m[6]), true
	}
	for _, layout := range fallbackDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// buildDate assembles a local time from matched date components. Empty
// time components default to zero.
func buildDate(year, month, day, hour, min, sec string) time.Time {
	y, _ := strconv.Atoi(year)
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	h := atoiDefault(hour)
	mi := atoiDefault(min)
	se := atoiDefault(secondsPart(sec))
	return time.Date(y, time.Month(mo), d, h, mi, se, 0, time.Local)
}

func atoiDefault(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}

// secondsPart strips a fractional suffix from a seconds component.
func secondsPart(s string) string {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return s[:i]
	}
	return s
}
