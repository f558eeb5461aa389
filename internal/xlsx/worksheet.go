package xlsx

import (
	"strconv"

	"github.com/tabforge/csv2xlsx/internal/sheet"
	"github.com/tabforge/csv2xlsx/internal/xmlbuilder"
)

// Worksheet emits xl/worksheets/sheet1.xml: column widths, all typed rows,
// and a trailing totals row mirroring the table part's aggregate formulas.
func Worksheet(t *sheet.Table) string {
	b := xmlbuilder.New("worksheet", nsSpreadsheetML)
	b.SetAttributeNS(xmlbuilder.Root, "Ignorable", "x14ac", nsMarkupCompat)

	// the totals row occupies one row past the data
	dimension := "A1:" + sheet.CellRef(len(t.Columns), len(t.Rows)+1)
	b.Element(xmlbuilder.Root, "dimension", "", a("ref", dimension))

	sheetFormatPr := b.Element(xmlbuilder.Root, "sheetFormatPr", "",
		a("baseColWidth", "10"), a("defaultRowHeight", "14.5"))
	b.SetAttributeNS(sheetFormatPr, "x14ac:dyDescent", "0.35", nsX14ac)

	cols := xmlbuilder.NodeRef(-1)
	for i, col := range t.Columns {
		if col.Width == 0 || col.Width == 10 {
			continue
		}
		if cols < 0 {
			cols = b.Element(xmlbuilder.Root, "cols", "")
		}
		nr := strconv.Itoa(i + 1)
		b.Element(cols, "col", "",
			a("min", nr), a("max", nr),
			a("width", formatFloat(col.Width)),
			a("customWidth", "1"))
	}

	sheetData := b.Element(xmlbuilder.Root, "sheetData", "")
	spans := "1:" + strconv.Itoa(len(t.Columns))

	for rowIdx, row := range t.Rows {
		rowNr := rowIdx + 1
		rowEl := b.Element(sheetData, "row", "",
			a("r", strconv.Itoa(rowNr)), a("spans", spans))
		b.SetAttributeNS(rowEl, "x14ac:dyDescent", "0.35", nsX14ac)

		for colIdx, col := range t.Columns {
			val := cellValue(row[colIdx])

			attrs := []xmlbuilder.Attr{a("r", sheet.CellRef(colIdx+1, rowNr))}
			inline := rowNr == 1 || col.Type.Kind == sheet.KindText
			if inline {
				if val != "" {
					attrs = append(attrs, a("t", "str"))
				}
			} else {
				attrs = append(attrs, a("s", strconv.Itoa(int(col.Format)+1)))
			}

			cEl := b.Element(rowEl, "c", "", attrs...)
			if val != "" {
				b.Text(cEl, "v", "", val)
			}
		}
	}

	// totals row
	totalsNr := len(t.Rows) + 1
	rowEl := b.Element(sheetData, "row", "",
		a("r", strconv.Itoa(totalsNr)), a("spans", spans))
	b.SetAttributeNS(rowEl, "x14ac:dyDescent", "0.35", nsX14ac)

	for colIdx, col := range t.Columns {
		cEl := b.Element(rowEl, "c", "",
			a("r", sheet.CellRef(colIdx+1, totalsNr)),
			a("s", strconv.Itoa(int(col.Format)+1)))

		if formula := totalsFormula(col); formula != "" {
			b.Text(cEl, "f", "", formula+"("+tableName(1)+"["+col.Name+"])")
		}
	}

	tableParts := b.Element(xmlbuilder.Root, "tableParts", "", a("count", "1"))
	tablePart := b.Element(tableParts, "tablePart", "")
	b.SetAttributeNS(tablePart, "r:id", "rId1", nsRelationships)

	return b.String()
}

// WorksheetRels emits xl/worksheets/_rels/sheet1.xml.rels, binding the sheet
// to its table part.
func WorksheetRels() string {
	b := xmlbuilder.New("Relationships", nsPackageRels)
	b.Element(xmlbuilder.Root, "Relationship", "",
		a("Id", "rId1"),
		a("Type", nsRelationships+"/table"),
		a("Target", "../tables/table1.xml"))
	return b.String()
}

// cellValue renders a typed cell as its worksheet value string. Absent cells
// render empty; date-times render as serial day counts.
func cellValue(c sheet.Cell) string {
	switch c.Kind {
	case sheet.CellText:
		return c.Str
	case sheet.CellInt:
		return strconv.FormatInt(c.Int, 10)
	case sheet.CellFloat:
		return formatFloat(c.Float)
	case sheet.CellTime:
		return formatFloat(sheet.ExcelSerialDate(c.Time))
	default:
		return ""
	}
}

// formatFloat renders a float in the shortest form that round-trips.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
