package xlsx

import (
	"strconv"

	"github.com/tabforge/csv2xlsx/internal/xmlbuilder"
)

// Workbook emits xl/workbook.xml for the given sheet names.
func Workbook(sheets []string) string {
	if len(sheets) == 0 {
		sheets = []string{"Sheet 1"}
	}

	b := xmlbuilder.New("workbook", nsSpreadsheetML)
	b.Element(xmlbuilder.Root, "workbookPr", "", a("codeName", "ThisWorkbook"))

	sheetsEl := b.Element(xmlbuilder.Root, "sheets", "")
	for i, name := range sheets {
		se := b.Element(sheetsEl, "sheet", "",
			a("name", name),
			a("sheetId", strconv.Itoa(i+1)))
		b.SetAttributeNS(se, "r:id", "rId"+strconv.Itoa(i+1), nsRelationships)
	}

	return b.String()
}

// WorkbookRels emits xl/_rels/workbook.xml.rels: one relationship per
// worksheet, then the theme and styles parts.
func WorkbookRels(sheets []string) string {
	if len(sheets) == 0 {
		sheets = []string{"Sheet 1"}
	}

	b := xmlbuilder.New("Relationships", nsPackageRels)
	for i := range sheets {
		nr := strconv.Itoa(i + 1)
		b.Element(xmlbuilder.Root, "Relationship", "",
			a("Id", "rId"+nr),
			a("Type", nsRelationships+"/worksheet"),
			a("Target", "worksheets/sheet"+nr+".xml"))
	}
	b.Element(xmlbuilder.Root, "Relationship", "",
		a("Id", "rId"+strconv.Itoa(len(sheets)+1)),
		a("Type", nsRelationships+"/theme"),
		a("Target", "theme/theme1.xml"))
	b.Element(xmlbuilder.Root, "Relationship", "",
		a("Id", "rId"+strconv.Itoa(len(sheets)+2)),
		a("Type", nsRelationships+"/styles"),
		a("Target", "styles.xml"))

	return b.String()
}
