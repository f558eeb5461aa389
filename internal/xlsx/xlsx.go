// Package xlsx emits the XML parts of a spreadsheet package. Each emitter is
// a pure function from typed column/row data to one XML document; BuildParts
// assembles the full part map and WritePackage zips it into an .xlsx file.
package xlsx

import (
	"archive/zip"
	"io"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/tabforge/csv2xlsx/internal/sheet"
	"github.com/tabforge/csv2xlsx/internal/xmlbuilder"
)

// Namespace URIs shared by the part emitters.
const (
	nsSpreadsheetML = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsMarkupCompat  = "http://schemas.openxmlformats.org/markup-compatibility/2006"
	nsX14ac         = "http://schemas.microsoft.com/office/spreadsheetml/2009/9/ac"
	nsExtendedProps = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	nsVTypes        = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"
	nsCoreProps     = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDublinCore    = "http://purl.org/dc/elements/1.1/"
	nsDCTerms       = "http://purl.org/dc/terms/"
	nsXSI           = "http://www.w3.org/2001/XMLSchema-instance"
	nsDrawingML     = "http://schemas.openxmlformats.org/drawingml/2006/main"
)

// Package-relative part paths.
const (
	PartContentTypes  = "[Content_Types].xml"
	PartPackageRels   = "_rels/.rels"
	PartAppProps      = "docProps/app.xml"
	PartCoreProps     = "docProps/core.xml"
	PartStyles        = "xl/styles.xml"
	PartWorkbook      = "xl/workbook.xml"
	PartWorkbookRels  = "xl/_rels/workbook.xml.rels"
	PartTheme         = "xl/theme/theme1.xml"
	PartTable         = "xl/tables/table1.xml"
	PartWorksheet     = "xl/worksheets/sheet1.xml"
	PartWorksheetRels = "xl/worksheets/_rels/sheet1.xml.rels"
)

// partOrder is the write order of parts within the package.
var partOrder = []string{
	PartContentTypes,
	PartPackageRels,
	PartAppProps,
	PartCoreProps,
	PartStyles,
	PartWorkbook,
	PartWorkbookRels,
	PartTheme,
	PartTable,
	PartWorksheet,
	PartWorksheetRels,
}

// a is shorthand for an ordered XML attribute.
var a = xmlbuilder.A

// Metadata is the document-properties contract. Every field is optional;
// emitters substitute documented defaults for anything missing.
type Metadata struct {
	Title          string    // defaults to "My Document"
	Subject        string    // defaults to empty
	Creator        string    // defaults to "unknown"
	Company        string    // omitted when empty
	LastModifiedBy string    // defaults to Creator
	Created        time.Time // defaults to current time
	Modified       time.Time // defaults to current time
}

// sheetTitleIllegal matches characters not allowed in a sheet title.
var sheetTitleIllegal = regexp.MustCompile(`[\\/?*\[\]:]`)

// maxSheetTitleLen caps sheet titles; longer titles are truncated with a
// trailing marker.
const maxSheetTitleLen = 30

// SanitizeSheetTitle substitutes characters that are illegal in a sheet
// title and truncates overlong titles.
func SanitizeSheetTitle(title string) string {
	title = sheetTitleIllegal.ReplaceAllString(title, "-")
	if len(title) > maxSheetTitleLen {
		title = title[:maxSheetTitleLen]
		// avoid splitting a multi-byte rune at the cut
		title = strings.ToValidUTF8(title, "") + "."
	}
	return title
}

// BuildParts runs every emitter and returns the complete part map, keyed by
// package-relative path.
func BuildParts(t *sheet.Table, meta Metadata) map[string]string {
	title := meta.Title
	if title == "" {
		title = "sheet 1"
	}
	sheets := []string{SanitizeSheetTitle(title)}

	return map[string]string{
		PartContentTypes:  ContentTypes(sheets),
		PartPackageRels:   PackageRels(),
		PartAppProps:      AppProps(sheets, meta.Company),
		PartCoreProps:     CoreProps(meta),
		PartStyles:        Styles(&t.Formats),
		PartWorkbook:      Workbook(sheets),
		PartWorkbookRels:  WorkbookRels(sheets),
		PartTheme:         Theme(),
		PartTable:         Table(t, 1),
		PartWorksheet:     Worksheet(t),
		PartWorksheetRels: WorksheetRels(),
	}
}

// WritePackage zips the part map into w in canonical part order. Unknown
// extra parts are appended after the known ones in lexical order.
func WritePackage(w io.Writer, parts map[string]string) error {
	zw := zip.NewWriter(w)

	written := make(map[string]bool, len(parts))
	for _, path := range partOrder {
		content, ok := parts[path]
		if !ok {
			continue
		}
		if err := writePart(zw, path, content); err != nil {
			return err
		}
		written[path] = true
	}

	extra := make([]string, 0)
	for path := range parts {
		if !written[path] {
			extra = append(extra, path)
		}
	}
	sort.Strings(extra)
	for _, path := range extra {
		if err := writePart(zw, path, parts[path]); err != nil {
			return err
		}
	}

	return zw.Close()
}

func writePart(zw *zip.Writer, path, content string) error {
	f, err := zw.Create(path)
	if err != nil {
		return err
	}
	_, err = io.WriteString(f, content)
	return err
}

