package sheet

import (
	"testing"
	"time"
)

func TestProcessMaterializesTypedRows(t *testing.T) {
	rows := [][]string{
		{"Name", "Qty", "Price", "Day"},
		{"widget", "3", "1.5", "05.03.2024"},
		{"", "", "2", ""},
	}
	table := Process(rows, Options{})

	if len(table.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(table.Rows))
	}

	// header row carries the resolved names
	for i, want := range []string{"Name", "Qty", "Price", "Day"} {
		got := table.Rows[0][i]
		if got.Kind != CellText || got.Str != want {
			t.Errorf("header cell %d = %+v, want text %q", i, got, want)
		}
	}

	row := table.Rows[1]
	if row[0].Kind != CellText || row[0].Str != "widget" {
		t.Errorf("text cell = %+v", row[0])
	}
	if row[1].Kind != CellInt || row[1].Int != 3 {
		t.Errorf("int cell = %+v", row[1])
	}
	if row[2].Kind != CellFloat || row[2].Float != 1.5 || row[2].Prec != 1 {
		t.Errorf("float cell = %+v", row[2])
	}
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)
	if row[3].Kind != CellTime || !row[3].Time.Equal(want) {
		t.Errorf("time cell = %+v, want %v", row[3], want)
	}

	// empty raw cells are absent, whatever the column type
	row = table.Rows[2]
	for _, i := range []int{0, 1, 3} {
		if !row[i].IsAbsent() {
			t.Errorf("cell %d = %+v, want absent", i, row[i])
		}
	}
	if row[2].Kind != CellFloat || row[2].Float != 2 {
		t.Errorf("float cell = %+v", row[2])
	}
}

func TestProcessShortRowsPadAbsent(t *testing.T) {
	rows := [][]string{
		{"A", "B"},
		{"1"},
	}
	table := Process(rows, Options{})

	row := table.Rows[1]
	if len(row) != 2 {
		t.Fatalf("got %d cells, want 2", len(row))
	}
	if row[0].Kind != CellInt {
		t.Errorf("cell 0 = %+v, want int", row[0])
	}
	if !row[1].IsAbsent() {
		t.Errorf("cell 1 = %+v, want absent", row[1])
	}
}

func TestCoerceFailureIsAbsent(t *testing.T) {
	// a committed number column with an unparseable cell degrades to absent
	got := coerce("12x", TypeTag{Kind: KindNumber})
	if !got.IsAbsent() {
		t.Errorf("coerce(12x, number) = %+v, want absent", got)
	}
	got = coerce("not a date", TypeTag{Kind: KindDate})
	if !got.IsAbsent() {
		t.Errorf("coerce(not a date, date) = %+v, want absent", got)
	}
}
