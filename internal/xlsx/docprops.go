package xlsx

import (
	"strconv"
	"time"

	"github.com/tabforge/csv2xlsx/internal/xmlbuilder"
)

// AppProps emits docProps/app.xml: the generating application, the
// worksheet name list, and the company when present.
func AppProps(sheets []string, company string) string {
	if len(sheets) == 0 {
		sheets = []string{"Sheet 1"}
	}

	b := xmlbuilder.New("Properties", nsExtendedProps)
	b.Text(xmlbuilder.Root, "Application", "", "csv2xlsx")

	headingPairs := b.Element(xmlbuilder.Root, "HeadingPairs", "")
	vector := b.Element(headingPairs, "vt:vector", nsVTypes,
		a("size", "2"), a("baseType", "variant"))

	variant := b.Element(vector, "vt:variant", nsVTypes)
	b.Text(variant, "vt:lpstr", nsVTypes, "Worksheets")

	variant = b.Element(vector, "vt:variant", nsVTypes)
	b.Text(variant, "vt:i4", nsVTypes, strconv.Itoa(len(sheets)))

	titlesOfParts := b.Element(xmlbuilder.Root, "TitlesOfParts", "")
	vector = b.Element(titlesOfParts, "vt:vector", nsVTypes,
		a("size", strconv.Itoa(len(sheets))), a("baseType", "lpstr"))
	for _, name := range sheets {
		b.Text(vector, "vt:lpstr", nsVTypes, name)
	}

	if company != "" {
		b.Text(xmlbuilder.Root, "Company", "", company)
	}

	return b.String()
}

// CoreProps emits docProps/core.xml. Missing metadata gets defaults: title
// "My Document", creator "unknown", lastModifiedBy falls back to the
// creator, and timestamps default to the current time.
func CoreProps(meta Metadata) string {
	title := meta.Title
	if title == "" {
		title = "My Document"
	}
	creator := meta.Creator
	if creator == "" {
		creator = "unknown"
	}
	lastModifiedBy := meta.LastModifiedBy
	if lastModifiedBy == "" {
		lastModifiedBy = creator
	}
	created := meta.Created
	if created.IsZero() {
		created = time.Now()
	}
	modified := meta.Modified
	if modified.IsZero() {
		modified = time.Now()
	}

	b := xmlbuilder.New("cp:coreProperties", nsCoreProps)

	b.Text(xmlbuilder.Root, "dc:title", nsDublinCore, title)
	b.Text(xmlbuilder.Root, "dc:subject", nsDublinCore, meta.Subject)
	b.Text(xmlbuilder.Root, "dc:creator", nsDublinCore, creator)
	b.Text(xmlbuilder.Root, "cp:lastModifiedBy", nsCoreProps, lastModifiedBy)

	cr := b.Text(xmlbuilder.Root, "dcterms:created", nsDCTerms, created.UTC().Format(time.RFC3339))
	b.SetAttributeNS(cr, "xsi:type", "dcterms:W3CDTF", nsXSI)

	md := b.Text(xmlbuilder.Root, "dcterms:modified", nsDCTerms, modified.UTC().Format(time.RFC3339))
	b.SetAttributeNS(md, "xsi:type", "dcterms:W3CDTF", nsXSI)

	return b.String()
}
