package sheet

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultMaxColumnWidth caps measured text column widths, in spreadsheet
// units.
const DefaultMaxColumnWidth = 120

// DefaultLongNumberTextLen is the raw string length (sign included) above
// which an all-digit column is forced to text. Spreadsheet applications
// render longer numbers in scientific notation, silently losing digits of
// account or document numbers.
const DefaultLongNumberTextLen = 15

// defaultFormatCodes are the per-kind display formats. Caller overrides are
// merged over these before inference runs. The float code is extended with
// trailing zeros to match the detected precision.
var defaultFormatCodes = map[Kind]string{
	KindText:     "@",
	KindDate:     "dd.mm.yyyy",
	KindDateTime: "dd.mm.yyyy hh:mm",
	KindNumber:   "0",
	KindFloat:    "0.0",
}

// defaultColumnWidths are fixed widths for typed columns. Zero means the
// sheet default; text columns are measured instead.
var defaultColumnWidths = map[Kind]float64{
	KindDate:     12,
	KindDateTime: 16,
}

var (
	// two consecutive letters anywhere force a column to text, accented
	// letters included
	lettersRegex = regexp.MustCompile(`\p{L}\p{L}`)

	// header cleanup: join hyphen-linebreak continuations, then collapse
	// breaks and tabs to single spaces
	hyphenBreakRegex = regexp.MustCompile(`(\w)-[\r\n]+(\w)`)
	breakRegex       = regexp.MustCompile(`[\r\n\t]+`)
)

// Options tune one Process run. The zero value selects all defaults.
type Options struct {
	// FormatCodes overrides the default per-kind format codes.
	FormatCodes map[Kind]string

	// MaxColumnWidth caps measured text column widths.
	// Zero selects DefaultMaxColumnWidth.
	MaxColumnWidth float64

	// LongNumberTextLen is the raw-length threshold above which numeric
	// columns fall back to text. Zero selects DefaultLongNumberTextLen.
	LongNumberTextLen int
}

func (o Options) maxColumnWidth() float64 {
	if o.MaxColumnWidth > 0 {
		return o.MaxColumnWidth
	}
	return DefaultMaxColumnWidth
}

func (o Options) longNumberTextLen() int {
	if o.LongNumberTextLen > 0 {
		return o.LongNumberTextLen
	}
	return DefaultLongNumberTextLen
}

// formatCode resolves the effective format code for a kind.
func (o Options) formatCode(k Kind) string {
	if o.FormatCodes != nil {
		if c, ok := o.FormatCodes[k]; ok && c != "" {
			return c
		}
	}
	return defaultFormatCodes[k]
}

// Process scans raw CSV rows (row 0 = header), infers one type per column,
// resolves unique column names and rewrites every row into typed cells.
// It never fails: malformed input degrades to text columns and absent cells.
func Process(rows [][]string, opts Options) *Table {
	t := &Table{}

	count := columnCount(rows)
	for i := 0; i < count; i++ {
		tag := inferColumnType(rows, i, opts)

		width := defaultColumnWidths[tag.Kind]
		if tag.Kind == KindText {
			width = measureColumnWidth(rows, i, opts.maxColumnWidth())
		}

		var header string
		if len(rows) > 0 && i < len(rows[0]) {
			header = rows[0][i]
		}

		// text columns carry no format binding; everything else shares
		// a pooled ColumnType
		format := FormatNone
		if tag.Kind != KindText {
			format = t.Formats.Intern(tag, formatCodeFor(tag, opts))
		}

		t.Columns = append(t.Columns, Column{
			Name:        columnName(header, i+1),
			SourceIndex: i,
			Type:        tag,
			Width:       width,
			Format:      format,
		})
	}

	uniqueColumnNames(t.Columns)
	t.Rows = materializeRows(rows, t.Columns)
	return t
}

// columnCount is the maximum row length across all rows.
func columnCount(rows [][]string) int {
	count := 0
	for _, row := range rows {
		if len(row) > count {
			count = len(row)
		}
	}
	return count
}

// inferColumnType derives the column type from all data rows of one column,
// skipping the header. The reduction short-circuits as soon as the column is
// known to be text.
func inferColumnType(rows [][]string, col int, opts Options) TypeTag {
	tag := TypeTag{Kind: KindText}
	seen := false
	floatLen := 0

	for i := 1; i < len(rows); i++ {
		if col >= len(rows[i]) {
			continue
		}
		v := rows[i][col]
		if v == "" {
			continue
		}

		local := KindText
		switch {
		case IsInteger(v):
			local = KindNumber
		case IsFloat(v):
			local = KindFloat
			if p := FloatPrecision(v); p > floatLen {
				floatLen = p
			}
		case IsDateTime(v):
			local = KindDateTime
		case IsDate(v):
			local = KindDate
		}

		switch {
		case seen && ((tag.Kind == KindFloat && local == KindNumber) || (tag.Kind == KindNumber && local == KindFloat)):
			// integers widen to float
			tag.Kind = KindFloat

		case seen && local != tag.Kind:
			// mixed types always lose to text
			return TypeTag{Kind: KindText}

		case local == KindText && lettersRegex.MatchString(v):
			return TypeTag{Kind: KindText}

		case local == KindNumber && len(v) > opts.longNumberTextLen():
			// long numbers stay text so the spreadsheet does not
			// render them in scientific notation
			return TypeTag{Kind: KindText}

		default:
			tag.Kind = local
			seen = true
		}
	}

	if !seen {
		return TypeTag{Kind: KindText}
	}
	if tag.Kind == KindFloat {
		tag.Precision = floatLen
	}
	return tag
}

// formatCodeFor resolves the display format for an inferred tag. Float
// codes are padded with trailing zeros to the detected precision.
func formatCodeFor(tag TypeTag, opts Options) string {
	if tag.Kind == KindText {
		return ""
	}
	code := opts.formatCode(tag.Kind)
	if tag.Kind == KindFloat && tag.Precision > 1 {
		code += strings.Repeat("0", tag.Precision-1)
	}
	return code
}

// measureColumnWidth approximates the rendered width of the widest value in
// a column, header included, capped at maxWidth.
func measureColumnWidth(rows [][]string, col int, maxWidth float64) float64 {
	width := 10.0
	for _, row := range rows {
		if col >= len(row) || row[col] == "" {
			continue
		}
		if w := stringWidth(row[col]); w > width {
			width = w
		}
		if width > maxWidth {
			return maxWidth
		}
	}
	return math.Ceil(width)
}

// stringWidth estimates the width of a string in spreadsheet units, where
// one unit is roughly one digit in the default font. Browser builds measure
// against a canvas; this table-based estimate tracks Calibri 11 closely
// enough for column sizing.
func stringWidth(s string) float64 {
	w := 0.0
	for _, r := range s {
		switch {
		case strings.ContainsRune(`iIjl.,:;'"!|()[]{} `, r):
			w += 0.55
		case strings.ContainsRune("mwMW@", r):
			w += 1.6
		case r >= 'A' && r <= 'Z':
			w += 1.25
		default:
			w += 1.0
		}
	}
	return w
}

// columnName returns a usable header name: the cleaned header text, or
// "Column <letters>" for the 1-based column number when the header is empty.
func columnName(header string, colNr int) string {
	if header != "" {
		header = hyphenBreakRegex.ReplaceAllString(header, "$1$2")
		header = strings.TrimSpace(breakRegex.ReplaceAllString(header, " "))
		if header != "" {
			return header
		}
	}
	return "Column " + NumericToAlphaColumn(colNr)
}

// uniqueColumnNames deduplicates names case-insensitively in column order by
// appending " 2", " 3", ... to later collisions. The result is order-stable:
// earlier columns keep their names untouched.
func uniqueColumnNames(columns []Column) {
	taken := make(map[string]bool, len(columns))
	for i := range columns {
		name := columns[i].Name
		suffix := ""
		for cntr := 1; taken[strings.ToLower(name+suffix)]; {
			cntr++
			suffix = " " + strconv.Itoa(cntr)
		}
		taken[strings.ToLower(name+suffix)] = true
		columns[i].Name = name + suffix
	}
}
