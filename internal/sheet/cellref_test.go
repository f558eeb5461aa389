package sheet

import (
	"math"
	"testing"
	"time"
)

func TestNumericToAlphaColumn(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{1, "A"},
		{2, "B"},
		{26, "Z"},
		{27, "AA"},
		{28, "AB"},
		{52, "AZ"},
		{53, "BA"},
		{702, "ZZ"},
		{703, "AAA"},
	}

	for _, tt := range tests {
		if got := NumericToAlphaColumn(tt.col); got != tt.want {
			t.Errorf("NumericToAlphaColumn(%d) = %q, want %q", tt.col, got, tt.want)
		}
	}
}

func TestAlphaColumnRoundTrip(t *testing.T) {
	for col := 1; col <= 26*26*26; col++ {
		letters := NumericToAlphaColumn(col)
		if got := AlphaToNumericColumn(letters); got != col {
			t.Fatalf("round trip %d -> %q -> %d", col, letters, got)
		}
	}
}

func TestAlphaToNumericColumnLowercase(t *testing.T) {
	if got := AlphaToNumericColumn("aa"); got != 27 {
		t.Errorf("AlphaToNumericColumn(aa) = %d, want 27", got)
	}
}

func TestCellRef(t *testing.T) {
	tests := []struct {
		col, row int
		want     string
	}{
		{1, 1, "A1"},
		{3, 7, "C7"},
		{27, 100, "AA100"},
	}

	for _, tt := range tests {
		if got := CellRef(tt.col, tt.row); got != tt.want {
			t.Errorf("CellRef(%d, %d) = %q, want %q", tt.col, tt.row, got, tt.want)
		}
	}
}

func TestExcelSerialDate(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want float64
	}{
		{"epoch", time.Date(1899, 12, 30, 0, 0, 0, 0, time.Local), 0},
		{"first 1900 day", time.Date(1900, 1, 1, 0, 0, 0, 0, time.Local), 2},
		{"2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), 45292},
		{"noon", time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local), 45292.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExcelSerialDate(tt.t); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ExcelSerialDate(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

// The serial is taken from the wall clock, not the absolute instant: the
// same local fields in different zones give the same serial.
func TestExcelSerialDateIgnoresZone(t *testing.T) {
	zone := time.FixedZone("east", 5*3600)
	a := time.Date(2024, 3, 5, 14, 30, 0, 0, zone)
	b := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	if ExcelSerialDate(a) != ExcelSerialDate(b) {
		t.Errorf("serials differ: %v vs %v", ExcelSerialDate(a), ExcelSerialDate(b))
	}
}
