package xlsx

import (
	"strconv"

	"github.com/tabforge/csv2xlsx/internal/sheet"
	"github.com/tabforge/csv2xlsx/internal/xmlbuilder"
)

// tableName returns the display name of a numbered table.
func tableName(tableID int) string {
	return "Table" + strconv.Itoa(tableID)
}

// totalsFormula resolves the totals-row aggregate for a column: an explicit
// override wins, numeric columns sum, percentage columns average, everything
// else has no total.
func totalsFormula(col sheet.Column) string {
	if col.TotalFormula != "" {
		return col.TotalFormula
	}
	if col.Percent {
		return "AVERAGE"
	}
	if col.Type.Kind == sheet.KindNumber || col.Type.Kind == sheet.KindFloat {
		return "SUM"
	}
	return ""
}

// Table emits xl/tables/table1.xml: the table definition over the occupied
// range, one tableColumn per column, and totals-row formulas referencing
// columns by name.
func Table(t *sheet.Table, tableID int) string {
	b := xmlbuilder.New("table", nsSpreadsheetML)

	name := tableName(tableID)
	ref := "A1:" + sheet.CellRef(len(t.Columns), len(t.Rows))
	refWithTotals := "A1:" + sheet.CellRef(len(t.Columns), len(t.Rows)+1)

	b.SetAttribute(xmlbuilder.Root, "id", strconv.Itoa(tableID))
	b.SetAttribute(xmlbuilder.Root, "name", name)
	b.SetAttribute(xmlbuilder.Root, "displayName", name)
	b.SetAttribute(xmlbuilder.Root, "ref", refWithTotals)
	b.SetAttribute(xmlbuilder.Root, "totalsRowCount", "1")

	b.Element(xmlbuilder.Root, "autoFilter", "", a("ref", ref))

	tableColumns := b.Element(xmlbuilder.Root, "tableColumns", "",
		a("count", strconv.Itoa(len(t.Columns))))

	for i, col := range t.Columns {
		attrs := []xmlbuilder.Attr{
			a("id", strconv.Itoa(i + 1)),
			a("name", col.Name),
		}

		formula := totalsFormula(col)
		if formula != "" {
			attrs = append(attrs,
				a("totalsRowFunction", "custom"),
				a("totalsRowDxfId", "0"))
		}

		tableColumn := b.Element(tableColumns, "tableColumn", "", attrs...)
		if formula != "" {
			b.Text(tableColumn, "totalsRowFormula", "", formula+"("+name+"["+col.Name+"])")
		}
	}

	b.Element(xmlbuilder.Root, "tableStyleInfo", "",
		a("name", "TableStyleLight1"),
		a("showFirstColumn", "0"),
		a("showLastColumn", "0"),
		a("showRowStripes", "1"),
		a("showColumnStripes", "0"))

	return b.String()
}
