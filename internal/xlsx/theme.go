package xlsx

import "github.com/tabforge/csv2xlsx/internal/xmlbuilder"

// themeColors are the standard Office palette entries, in scheme order.
var themeColors = []struct{ name, value string }{
	{"dk2", "44546A"},
	{"lt2", "E7E6E6"},
	{"accent1", "4472C4"},
	{"accent2", "ED7D31"},
	{"accent3", "A5A5A5"},
	{"accent4", "FFC000"},
	{"accent5", "5B9BD5"},
	{"accent6", "70AD47"},
	{"hlink", "0563C1"},
	{"folHlink", "954F72"},
}

// Theme emits xl/theme/theme1.xml, a minimal Office theme. The converter
// never references theme styling beyond the default font color, but the
// workbook relationships point at this part, so it has to exist and be
// well formed.
func Theme() string {
	b := xmlbuilder.New("a:theme", nsDrawingML)
	b.SetAttribute(xmlbuilder.Root, "name", "Office Theme")

	elements := b.Element(xmlbuilder.Root, "a:themeElements", "")

	clrScheme := b.Element(elements, "a:clrScheme", "", a("name", "Office"))
	dk1 := b.Element(clrScheme, "a:dk1", "")
	b.Element(dk1, "a:sysClr", "", a("val", "windowText"), a("lastClr", "000000"))
	lt1 := b.Element(clrScheme, "a:lt1", "")
	b.Element(lt1, "a:sysClr", "", a("val", "window"), a("lastClr", "FFFFFF"))
	for _, c := range themeColors {
		el := b.Element(clrScheme, "a:"+c.name, "")
		b.Element(el, "a:srgbClr", "", a("val", c.value))
	}

	fontScheme := b.Element(elements, "a:fontScheme", "", a("name", "Office"))
	major := b.Element(fontScheme, "a:majorFont", "")
	b.Element(major, "a:latin", "", a("typeface", "Calibri Light"))
	b.Element(major, "a:ea", "", a("typeface", ""))
	b.Element(major, "a:cs", "", a("typeface", ""))
	minor := b.Element(fontScheme, "a:minorFont", "")
	b.Element(minor, "a:latin", "", a("typeface", "Calibri"))
	b.Element(minor, "a:ea", "", a("typeface", ""))
	b.Element(minor, "a:cs", "", a("typeface", ""))

	fmtScheme := b.Element(elements, "a:fmtScheme", "", a("name", "Office"))

	fillStyleLst := b.Element(fmtScheme, "a:fillStyleLst", "")
	for i := 0; i < 3; i++ {
		fill := b.Element(fillStyleLst, "a:solidFill", "")
		b.Element(fill, "a:schemeClr", "", a("val", "phClr"))
	}

	lnStyleLst := b.Element(fmtScheme, "a:lnStyleLst", "")
	for _, w := range []string{"6350", "12700", "19050"} {
		ln := b.Element(lnStyleLst, "a:ln", "",
			a("w", w), a("cap", "flat"), a("cmpd", "sng"), a("algn", "ctr"))
		fill := b.Element(ln, "a:solidFill", "")
		b.Element(fill, "a:schemeClr", "", a("val", "phClr"))
		b.Element(ln, "a:prstDash", "", a("val", "solid"))
	}

	effectStyleLst := b.Element(fmtScheme, "a:effectStyleLst", "")
	for i := 0; i < 3; i++ {
		style := b.Element(effectStyleLst, "a:effectStyle", "")
		b.Element(style, "a:effectLst", "")
	}

	bgFillStyleLst := b.Element(fmtScheme, "a:bgFillStyleLst", "")
	for i := 0; i < 3; i++ {
		fill := b.Element(bgFillStyleLst, "a:solidFill", "")
		b.Element(fill, "a:schemeClr", "", a("val", "phClr"))
	}

	b.Element(xmlbuilder.Root, "a:objectDefaults", "")
	b.Element(xmlbuilder.Root, "a:extraClrSchemeLst", "")

	return b.String()
}
