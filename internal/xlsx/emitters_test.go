package xlsx

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tabforge/csv2xlsx/internal/sheet"
)

// requireWellFormed fails the test if doc is not parseable XML.
func requireWellFormed(t *testing.T, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		require.NoError(t, err, "document is not well-formed:\n%s", doc)
	}
}

func TestStyles(t *testing.T) {
	table := sampleTable(t)
	doc := Styles(&table.Formats)
	requireWellFormed(t, doc)

	// number, float and date formats, IDs from 256 in encounter order
	assert.Contains(t, doc, `<numFmt numFmtId="256" formatCode="0"/>`)
	assert.Contains(t, doc, `<numFmt numFmtId="257" formatCode="0.00"/>`)
	assert.Contains(t, doc, `<numFmt numFmtId="258" formatCode="dd.mm.yyyy"/>`)

	// default xf plus one per pooled type
	assert.Contains(t, doc, `<cellXfs count="4">`)
	assert.Contains(t, doc, `<xf numFmtId="0" fontId="0" fillId="0" borderId="0" xfId="0"/>`)
	assert.Contains(t, doc, `<xf numFmtId="256" fontId="0" fillId="0" borderId="0" xfId="0" applyNumberFormat="1"/>`)

	// one dxf per pooled type, for totals-row formatting
	assert.Contains(t, doc, `<dxfs count="3">`)
	assert.Contains(t, doc, `<cellStyle name="Normal" xfId="0" builtinId="0"/>`)
}

func TestStylesEmptyPool(t *testing.T) {
	var pool sheet.FormatPool
	doc := Styles(&pool)
	requireWellFormed(t, doc)

	assert.Contains(t, doc, `<numFmts count="0"/>`)
	assert.Contains(t, doc, `<cellXfs count="1">`)
}

func TestTable(t *testing.T) {
	table := sampleTable(t)
	doc := Table(table, 1)
	requireWellFormed(t, doc)

	// 4 columns, 3 rows of data, totals row below
	assert.Contains(t, doc, `name="Table1"`)
	assert.Contains(t, doc, `ref="A1:D4" totalsRowCount="1"`)
	assert.Contains(t, doc, `<autoFilter ref="A1:D3"/>`)
	assert.Contains(t, doc, `<tableColumns count="4">`)

	// text and date columns have no totals formula
	assert.Contains(t, doc, `<tableColumn id="1" name="Name"/>`)
	assert.Contains(t, doc, `<tableColumn id="4" name="Day"/>`)

	// numeric columns sum
	assert.Contains(t, doc,
		`<tableColumn id="2" name="Qty" totalsRowFunction="custom" totalsRowDxfId="0">`+
			`<totalsRowFormula>SUM(Table1[Qty])</totalsRowFormula></tableColumn>`)
}

func TestTableTotalsOverrides(t *testing.T) {
	table := sampleTable(t)
	table.Columns[1].Percent = true
	table.Columns[2].TotalFormula = "COUNT"
	doc := Table(table, 1)

	assert.Contains(t, doc, `<totalsRowFormula>AVERAGE(Table1[Qty])</totalsRowFormula>`)
	assert.Contains(t, doc, `<totalsRowFormula>COUNT(Table1[Price])</totalsRowFormula>`)
}

func TestWorksheet(t *testing.T) {
	table := sampleTable(t)
	doc := Worksheet(table)
	requireWellFormed(t, doc)

	// dimension includes the totals row
	assert.Contains(t, doc, `<dimension ref="A1:D4"/>`)

	// header cells are inline strings
	assert.Contains(t, doc, `<c r="A1" t="str"><v>Name</v></c>`)
	assert.Contains(t, doc, `<c r="B1" t="str"><v>Qty</v></c>`)

	// typed cells carry the style of their pooled type (pool index + 1)
	assert.Contains(t, doc, `<c r="B2" s="1"><v>3</v></c>`)
	assert.Contains(t, doc, `<c r="C2" s="2"><v>1.5</v></c>`)

	// dates are serial day counts
	assert.Contains(t, doc, `<c r="D2" s="3"><v>45356</v></c>`)

	// text cells stay inline
	assert.Contains(t, doc, `<c r="A2" t="str"><v>widget</v></c>`)

	// totals row formulas reference table columns by name
	assert.Contains(t, doc, `<c r="B4" s="1"><f>SUM(Table1[Qty])</f></c>`)
	// text columns still get a styled, empty totals cell
	assert.Contains(t, doc, `<c r="A4" s="0"/>`)

	assert.Contains(t, doc, `<tableParts count="1">`)
}

func TestWorksheetColumnWidths(t *testing.T) {
	table := sheet.Process([][]string{
		{"When", "N"},
		{"05.03.2024", "1"},
	}, sheet.Options{})
	doc := Worksheet(table)

	// the date column carries its fixed width; the number column, at the
	// sheet default, is omitted
	assert.Contains(t, doc, `<col min="1" max="1" width="12" customWidth="1"/>`)
	assert.NotContains(t, doc, `<col min="2"`)
}

func TestWorksheetAbsentCells(t *testing.T) {
	table := sheet.Process([][]string{
		{"Qty"},
		{"3"},
		{""},
	}, sheet.Options{})
	doc := Worksheet(table)

	// absent cells render without a value element
	assert.Contains(t, doc, `<c r="A3" s="1"/>`)
}

func TestTableHeaderOnly(t *testing.T) {
	table := sheet.Process([][]string{{"A", "B"}}, sheet.Options{})
	doc := Table(table, 1)

	// the occupied data range is the header row alone; no totals formulas
	assert.Contains(t, doc, `<autoFilter ref="A1:B1"/>`)
	assert.NotContains(t, doc, "totalsRowFormula")
}

func TestWorkbook(t *testing.T) {
	doc := Workbook([]string{"report"})
	requireWellFormed(t, doc)

	assert.Contains(t, doc, `<workbookPr codeName="ThisWorkbook"/>`)
	assert.Contains(t, doc, `<sheet name="report" sheetId="1" r:id="rId1"/>`)
}

func TestWorkbookRels(t *testing.T) {
	doc := WorkbookRels([]string{"report"})
	requireWellFormed(t, doc)

	assert.Contains(t, doc, `Target="worksheets/sheet1.xml"`)
	assert.Contains(t, doc, `Id="rId2"`)
	assert.Contains(t, doc, `Target="theme/theme1.xml"`)
	assert.Contains(t, doc, `Id="rId3"`)
	assert.Contains(t, doc, `Target="styles.xml"`)
}

func TestContentTypes(t *testing.T) {
	doc := ContentTypes([]string{"report"})
	requireWellFormed(t, doc)

	assert.Contains(t, doc, `Extension="rels"`)
	assert.Contains(t, doc, `PartName="/xl/worksheets/sheet1.xml"`)
	assert.Contains(t, doc, `PartName="/xl/tables/table1.xml"`)
	assert.Contains(t, doc, `PartName="/docProps/core.xml"`)
}

func TestPackageRels(t *testing.T) {
	doc := PackageRels()
	requireWellFormed(t, doc)

	assert.Contains(t, doc, `Id="rId3"`)
	assert.Contains(t, doc, `Target="xl/workbook.xml"`)
}

func TestAppProps(t *testing.T) {
	doc := AppProps([]string{"report"}, "ACME")
	requireWellFormed(t, doc)

	assert.Contains(t, doc, `<Application>csv2xlsx</Application>`)
	assert.Contains(t, doc, `<vt:lpstr>Worksheets</vt:lpstr>`)
	assert.Contains(t, doc, `<vt:i4>1</vt:i4>`)
	assert.Contains(t, doc, `<vt:lpstr>report</vt:lpstr>`)
	assert.Contains(t, doc, `<Company>ACME</Company>`)

	// company is omitted entirely when empty
	assert.NotContains(t, AppProps([]string{"report"}, ""), "Company")
}

func TestCoreProps(t *testing.T) {
	created := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	doc := CoreProps(Metadata{
		Title:   "report",
		Creator: "tester",
		Created: created, Modified: created,
	})
	requireWellFormed(t, doc)

	assert.Contains(t, doc, `<dc:title>report</dc:title>`)
	assert.Contains(t, doc, `<dc:creator>tester</dc:creator>`)
	// lastModifiedBy falls back to the creator
	assert.Contains(t, doc, `<cp:lastModifiedBy>tester</cp:lastModifiedBy>`)
	assert.Contains(t, doc, `<dcterms:created xsi:type="dcterms:W3CDTF">2024-03-05T12:00:00Z</dcterms:created>`)
}

func TestCorePropsDefaults(t *testing.T) {
	doc := CoreProps(Metadata{})

	assert.Contains(t, doc, `<dc:title>My Document</dc:title>`)
	assert.Contains(t, doc, `<dc:creator>unknown</dc:creator>`)
	assert.Contains(t, doc, `<cp:lastModifiedBy>unknown</cp:lastModifiedBy>`)
}

func TestTheme(t *testing.T) {
	doc := Theme()
	requireWellFormed(t, doc)

	assert.Contains(t, doc, `<a:clrScheme name="Office">`)
	assert.Contains(t, doc, `<a:latin typeface="Calibri Light"`)
}
