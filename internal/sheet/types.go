// Package sheet turns raw CSV rows into typed spreadsheet data. It infers
// one semantic type per column, normalizes column names, and coerces every
// cell into a typed value ready for worksheet output.
// This package has no I/O dependencies and can be used by any frontend.
package sheet

import (
	"strconv"
	"time"
)

// Kind is the semantic data kind of a column or cell.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindFloat
	KindDate
	KindDateTime
)

// String returns the kind name used in format-code override tables.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindFloat:
		return "float"
	case KindDate:
		return "date"
	case KindDateTime:
		return "datetime"
	default:
		return "text"
	}
}

// TypeTag is a column type: a kind plus, for float columns, the maximum
// fractional-digit count observed across the column.
type TypeTag struct {
	Kind      Kind
	Precision int // only meaningful for KindFloat
}

// String renders the tag the way it is keyed internally: "text", "number",
// "date", "datetime" or "float<precision>".
func (t TypeTag) String() string {
	if t.Kind == KindFloat {
		return "float" + strconv.Itoa(t.Precision)
	}
	return t.Kind.String()
}

// FormatRef is a stable handle into a FormatPool. FormatNone marks columns
// without a number format binding (plain text columns).
type FormatRef int

// FormatNone is the FormatRef of columns that carry no format binding.
const FormatNone FormatRef = -1

// ColumnType binds a column type to its display format code. Columns sharing
// the same (type, format code) pair share one pool entry so the style table
// stays minimal.
type ColumnType struct {
	Type       TypeTag
	FormatCode string

	// NumFmtID is assigned by the styles emitter, in encounter order
	// starting at 256. Zero means unassigned.
	NumFmtID int
}

// FormatPool deduplicates ColumnType entries. The zero value is ready to use.
// Each conversion owns its own pool; pools must not be shared.
type FormatPool struct {
	entries []ColumnType
}

// Intern returns the handle for the (tag, formatCode) pair, creating a new
// entry if the pool has no matching one.
func (p *FormatPool) Intern(tag TypeTag, formatCode string) FormatRef {
	for i, e := range p.entries {
		if e.Type == tag && e.FormatCode == formatCode {
			return FormatRef(i)
		}
	}
	p.entries = append(p.entries, ColumnType{Type: tag, FormatCode: formatCode})
	return FormatRef(len(p.entries) - 1)
}

// At returns the entry for a handle.
func (p *FormatPool) At(ref FormatRef) ColumnType {
	return p.entries[ref]
}

// Len returns the number of distinct entries.
func (p *FormatPool) Len() int {
	return len(p.entries)
}

// Entries returns the pool entries in encounter order.
func (p *FormatPool) Entries() []ColumnType {
	return p.entries
}

// EnsureNumFmtIDs assigns number-format IDs to entries that have none yet,
// in encounter order starting at firstCustomNumFmtID. Calling it again is a
// no-op for already-assigned entries, so IDs are stable for the lifetime of
// one conversion.
func (p *FormatPool) EnsureNumFmtIDs() {
	next := firstCustomNumFmtID
	for i := range p.entries {
		if p.entries[i].NumFmtID == 0 {
			p.entries[i].NumFmtID = next
		}
		if p.entries[i].NumFmtID >= next {
			next = p.entries[i].NumFmtID + 1
		}
	}
}

// firstCustomNumFmtID is the first ID handed out for custom number formats.
// IDs below 164 are reserved for built-in formats; 256 leaves headroom for
// formats injected by other tooling.
const firstCustomNumFmtID = 256

// Column describes one detected CSV column. Columns are mutated only while
// the table is being built and are immutable afterward.
type Column struct {
	// Name is the resolved header text: non-empty and unique within the
	// table (case-insensitive).
	Name string

	// SourceIndex is the cell position in the raw CSV rows.
	SourceIndex int

	// Type is the inferred column type.
	Type TypeTag

	// Width is the column width in spreadsheet units. Zero means default.
	Width float64

	// Format is the handle of the shared ColumnType, or FormatNone for
	// text columns.
	Format FormatRef

	// Percent marks a column whose totals row should average instead of
	// sum. Never set by inference; callers may flag columns explicitly.
	Percent bool

	// TotalFormula overrides the default totals-row aggregate function
	// (e.g. "COUNT"). Empty means use the per-type default.
	TotalFormula string
}

// CellKind discriminates the typed cell value union.
type CellKind int

const (
	CellAbsent CellKind = iota
	CellText
	CellInt
	CellFloat
	CellTime
)

// Cell is one typed cell value: absent, a string, an integer, a float
// carrying its display precision, or a naive local date-time.
type Cell struct {
	Kind  CellKind
	Str   string
	Int   int64
	Float float64
	Prec  int
	Time  time.Time
}

// AbsentCell returns the absent value.
func AbsentCell() Cell { return Cell{Kind: CellAbsent} }

// TextCell returns a string cell.
func TextCell(s string) Cell { return Cell{Kind: CellText, Str: s} }

// IntCell returns an integer cell.
func IntCell(v int64) Cell { return Cell{Kind: CellInt, Int: v} }

// FloatCell returns a float cell with its display precision.
func FloatCell(v float64, prec int) Cell { return Cell{Kind: CellFloat, Float: v, Prec: prec} }

// TimeCell returns a date-time cell.
func TimeCell(t time.Time) Cell { return Cell{Kind: CellTime, Time: t} }

// IsAbsent reports whether the cell holds no value.
func (c Cell) IsAbsent() bool { return c.Kind == CellAbsent }

// Table is the result of processing one CSV: resolved columns, typed rows
// (row 0 is the header) and the shared format pool.
type Table struct {
	Columns []Column
	Rows    [][]Cell
	Formats FormatPool
}
