package sheet

import "strconv"

// materializeRows rewrites every raw row into typed cells according to the
// resolved columns. The header row becomes the resolved column names; data
// cells are coerced to their column's type. Coercion failures never
// propagate: a cell that does not parse under its committed type becomes
// absent.
func materializeRows(rows [][]string, columns []Column) [][]Cell {
	out := make([][]Cell, len(rows))
	for i := range rows {
		cells := make([]Cell, len(columns))
		for y, col := range columns {
			if i == 0 {
				cells[y] = TextCell(col.Name)
				continue
			}

			var raw string
			if col.SourceIndex < len(rows[i]) {
				raw = rows[i][col.SourceIndex]
			}
			cells[y] = coerce(raw, col.Type)
		}
		out[i] = cells
	}
	return out
}

// coerce converts one raw cell to a typed value.
func coerce(raw string, tag TypeTag) Cell {
	if raw == "" {
		return AbsentCell()
	}

	switch tag.Kind {
	case KindNumber:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return AbsentCell()
		}
		return IntCell(v)

	case KindFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return AbsentCell()
		}
		return FloatCell(v, tag.Precision)

	case KindDate, KindDateTime:
		t, ok := ParseDate(raw)
		if !ok {
			return AbsentCell()
		}
		return TimeCell(t)

	default:
		return TextCell(raw)
	}
}
