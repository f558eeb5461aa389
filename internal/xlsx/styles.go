package xlsx

import (
	"strconv"

	"github.com/tabforge/csv2xlsx/internal/sheet"
	"github.com/tabforge/csv2xlsx/internal/xmlbuilder"
)

// Styles emits xl/styles.xml. It assigns number-format IDs to the pool in
// encounter order, emits one number format, one cell format and one
// conditional-format entry per distinct ColumnType, and always includes the
// default style at index 0 for header and text cells.
func Styles(pool *sheet.FormatPool) string {
	pool.EnsureNumFmtIDs()
	types := pool.Entries()

	b := xmlbuilder.New("styleSheet", nsSpreadsheetML)
	b.SetAttributeNS(xmlbuilder.Root, "Ignorable", "x14ac", nsMarkupCompat)

	numFmts := b.Element(xmlbuilder.Root, "numFmts", "", a("count", strconv.Itoa(len(types))))
	for _, ct := range types {
		b.Element(numFmts, "numFmt", "",
			a("numFmtId", strconv.Itoa(ct.NumFmtID)),
			a("formatCode", orTextFormat(ct.FormatCode)),
		)
	}

	fonts := b.Element(xmlbuilder.Root, "fonts", "", a("count", "1"))
	b.SetAttributeNS(fonts, "x14ac:knownFonts", "1", nsX14ac)

	font := b.Element(fonts, "font", "")
	b.Element(font, "sz", "", a("val", "11"))
	b.Element(font, "color", "", a("theme", "1"))
	b.Element(font, "name", "", a("val", "Calibri"))
	b.Element(font, "family", "", a("val", "2"))
	b.Element(font, "scheme", "", a("val", "minor"))

	fills := b.Element(xmlbuilder.Root, "fills", "", a("count", "2"))
	b.Element(b.Element(fills, "fill", ""), "patternFill", "", a("patternType", "none"))
	b.Element(b.Element(fills, "fill", ""), "patternFill", "", a("patternType", "gray125"))

	border := b.Element(b.Element(xmlbuilder.Root, "borders", "", a("count", "1")), "border", "")
	b.Element(border, "left", "")
	b.Element(border, "right", "")
	b.Element(border, "top", "")
	b.Element(border, "bottom", "")
	b.Element(border, "diagonal", "")

	b.Element(b.Element(xmlbuilder.Root, "cellStyleXfs", "", a("count", "1")), "xf", "",
		a("numFmtId", "0"), a("fontId", "0"), a("fillId", "0"), a("borderId", "0"))

	// style index 0 is the default for untyped cells; pooled types follow
	// at pool index + 1
	cellXfs := b.Element(xmlbuilder.Root, "cellXfs", "", a("count", strconv.Itoa(len(types)+1)))
	b.Element(cellXfs, "xf", "",
		a("numFmtId", "0"), a("fontId", "0"), a("fillId", "0"), a("borderId", "0"), a("xfId", "0"))
	for _, ct := range types {
		b.Element(cellXfs, "xf", "",
			a("numFmtId", strconv.Itoa(ct.NumFmtID)),
			a("fontId", "0"), a("fillId", "0"), a("borderId", "0"), a("xfId", "0"),
			a("applyNumberFormat", "1"))
	}

	b.Element(b.Element(xmlbuilder.Root, "cellStyles", "", a("count", "1")), "cellStyle", "",
		a("name", "Normal"), a("xfId", "0"), a("builtinId", "0"))

	dxfs := b.Element(xmlbuilder.Root, "dxfs", "", a("count", strconv.Itoa(len(types))))
	for _, ct := range types {
		b.Element(b.Element(dxfs, "dxf", ""), "numFmt", "",
			a("numFmtId", strconv.Itoa(ct.NumFmtID)),
			a("formatCode", orTextFormat(ct.FormatCode)))
	}

	b.Element(xmlbuilder.Root, "tableStyles", "",
		a("count", "0"),
		a("defaultTableStyle", "TableStyleMedium2"),
		a("defaultPivotStyle", "PivotStyleLight16"))

	return b.String()
}

// orTextFormat falls back to the text format for an empty format code.
func orTextFormat(code string) string {
	if code == "" {
		return "@"
	}
	return code
}
