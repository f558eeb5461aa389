package sheet

import (
	"testing"
	"time"
)

func TestIsInteger(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"0", true},
		{"5", true},
		{"42", true},
		{"-7", true},
		{"123456789012345678901234567890", true}, // length does not matter here
		{"", false},
		{"-", false},
		{"-0", false},
		{"+5", false},
		{"007", false},
		{"05", false},
		{"1.5", false},
		{"1e3", false},
		{" 5", false},
		{"5 ", false},
		{"abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsInteger(tt.input); got != tt.want {
				t.Errorf("IsInteger(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsFloat(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1.5", true},
		{"-0.25", true},
		{"3.14159", true},
		{"007", true}, // not canonical, so not an integer, but parses as decimal
		{"-0", true},
		{"42", false}, // integers are not floats
		{"", false},
		{".5", false},
		{"5.", false},
		{"1e3", false},
		{"1,5", false},
		{"abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsFloat(tt.input); got != tt.want {
				t.Errorf("IsFloat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsDateAndIsDateTime(t *testing.T) {
	tests := []struct {
		input        string
		wantDate     bool
		wantDateTime bool
	}{
		{"2024-03-05", true, false},
		{"2024/03/05", true, false},
		{"2024-03-05T14:30:00", true, true},
		{"2024-03-05 14:30:00", true, true},
		{"2024-03-05 14:30:00.500", true, true},
		{"05.03.2024", true, false},
		{"05.03.2024 14:30", true, true},
		{"05.03.2024 14:30:15", true, true},
		{"2024-3-05", false, false}, // month must be two digits
		{"5.3.2024", false, false},
		{"2024-03-05T14:30", false, false}, // ISO time needs seconds
		{"hello", false, false},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsDate(tt.input); got != tt.wantDate {
				t.Errorf("IsDate(%q) = %v, want %v", tt.input, got, tt.wantDate)
			}
			if got := IsDateTime(tt.input); got != tt.wantDateTime {
				t.Errorf("IsDateTime(%q) = %v, want %v", tt.input, got, tt.wantDateTime)
			}
		})
	}
}

func TestFloatPrecision(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"1.5", 1},
		{"1.50", 2},
		{"3.14159", 5},
		{"42", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := FloatPrecision(tt.input); got != tt.want {
			t.Errorf("FloatPrecision(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)},
		{"2024-03-05T14:30:00", time.Date(2024, 3, 5, 14, 30, 0, 0, time.Local)},
		{"05.03.2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)},
		{"05.03.2024 14:30", time.Date(2024, 3, 5, 14, 30, 0, 0, time.Local)},
		{"05.03.2024 14:30:15.75", time.Date(2024, 3, 5, 14, 30, 15, 0, time.Local)},
		{"Jan 2, 2006", time.Date(2006, 1, 2, 0, 0, 0, 0, time.Local)},
		{"2 Jan 2006", time.Date(2006, 1, 2, 0, 0, 0, 0, time.Local)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if !ok {
				t.Fatalf("ParseDate(%q) failed", tt.input)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// The ISO and European notations of the same instant parse to the same time.
func TestParseDateNotationsAgree(t *testing.T) {
	iso, ok := ParseDate("2024-03-05T14:30:00")
	if !ok {
		t.Fatal("ISO form did not parse")
	}
	euro, ok := ParseDate("05.03.2024 14:30")
	if !ok {
		t.Fatal("European form did not parse")
	}
	if !iso.Equal(euro) {
		t.Errorf("notations disagree: %v vs %v", iso, euro)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "hello", "12.34", "2024-13"} {
		if _, ok := ParseDate(input); ok {
			t.Errorf("ParseDate(%q) unexpectedly succeeded", input)
		}
	}
}
