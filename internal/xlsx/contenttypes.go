package xlsx

import (
	"strconv"

	"github.com/tabforge/csv2xlsx/internal/xmlbuilder"
)

// ContentTypes emits [Content_Types].xml: defaults for .rels and .xml plus
// one override per part, including a worksheet and a table per sheet.
func ContentTypes(sheets []string) string {
	if len(sheets) == 0 {
		sheets = []string{"Sheet 1"}
	}

	b := xmlbuilder.New("Types", nsContentTypes)

	b.Element(xmlbuilder.Root, "Default", "",
		a("Extension", "rels"),
		a("ContentType", "application/vnd.openxmlformats-package.relationships+xml"))
	b.Element(xmlbuilder.Root, "Default", "",
		a("Extension", "xml"),
		a("ContentType", "application/xml"))

	overrides := []struct{ part, contentType string }{
		{"/xl/workbook.xml", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"},
		{"/xl/theme/theme1.xml", "application/vnd.openxmlformats-officedocument.theme+xml"},
		{"/xl/styles.xml", "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"},
		{"/docProps/core.xml", "application/vnd.openxmlformats-package.core-properties+xml"},
		{"/docProps/app.xml", "application/vnd.openxmlformats-officedocument.extended-properties+xml"},
	}
	for i := range sheets {
		nr := strconv.Itoa(i + 1)
		overrides = append(overrides,
			struct{ part, contentType string }{
				"/xl/worksheets/sheet" + nr + ".xml",
				"application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml",
			},
			struct{ part, contentType string }{
				"/xl/tables/table" + nr + ".xml",
				"application/vnd.openxmlformats-officedocument.spreadsheetml.table+xml",
			})
	}

	for _, o := range overrides {
		b.Element(xmlbuilder.Root, "Override", "",
			a("PartName", o.part),
			a("ContentType", o.contentType))
	}

	return b.String()
}

// PackageRels emits _rels/.rels, the package-level relationships.
func PackageRels() string {
	b := xmlbuilder.New("Relationships", nsPackageRels)

	b.Element(xmlbuilder.Root, "Relationship", "",
		a("Id", "rId1"),
		a("Type", nsRelationships+"/extended-properties"),
		a("Target", "docProps/app.xml"))
	b.Element(xmlbuilder.Root, "Relationship", "",
		a("Id", "rId2"),
		a("Type", "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"),
		a("Target", "docProps/core.xml"))
	b.Element(xmlbuilder.Root, "Relationship", "",
		a("Id", "rId3"),
		a("Type", nsRelationships+"/officeDocument"),
		a("Target", "xl/workbook.xml"))

	return b.String()
}
