package sheet

import (
	"strconv"
	"time"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NumericToAlphaColumn converts a 1-based column number to spreadsheet
// column letters: 1 → "A", 26 → "Z", 27 → "AA".
func NumericToAlphaColumn(column int) string {
	var buf [8]byte
	i := len(buf)
	for column > 0 {
		rem := (column - 1) % 26
		i--
		buf[i] = alphabet[rem]
		column = (column - 1) / 26
	}
	return string(buf[i:])
}

// AlphaToNumericColumn converts column letters to a 1-based column number:
// "A" → 1, "Z" → 26, "AA" → 27. Lowercase letters are accepted; characters
// outside A-Z contribute nothing.
func AlphaToNumericColumn(column string) int {
	n := 0
	for i := 0; i < len(column); i++ {
		c := column[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 'A' || c > 'Z' {
			continue
		}
		n = n*26 + int(c-'A') + 1
	}
	return n
}

// CellRef renders a 1-based (column, row) pair as an A1-style reference.
func CellRef(col, row int) string {
	return NumericToAlphaColumn(col) + strconv.Itoa(row)
}

// excelEpoch is day zero of the serial date system: December 30, 1899.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ExcelSerialDate converts a naive local date-time to its serial day count.
// The wall-clock fields are taken as-is, without timezone adjustment, so the
// stored serial matches what the spreadsheet application displays.
func ExcelSerialDate(t time.Time) float64 {
	naive := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	return float64(naive.Sub(excelEpoch)) / float64(24*time.Hour)
}
