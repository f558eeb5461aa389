// Package convert orchestrates one CSV to XLSX conversion: tokenize the
// input, infer column types, materialize typed rows, emit the package
// parts and zip them. The heavy lifting lives in internal/sheet,
// internal/xlsx and internal/csvio; this package is the glue plus progress
// reporting.
package convert

import (
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tabforge/csv2xlsx/internal/csvio"
	"github.com/tabforge/csv2xlsx/internal/sheet"
	"github.com/tabforge/csv2xlsx/internal/xlsx"
)

// Phase indicates the current stage of a conversion.
type Phase string

const (
	PhaseDownload   Phase = "download"
	PhaseProcessing Phase = "processing"
	PhaseFinished   Phase = "finished"
	PhaseFailed     Phase = "failed"
)

// Progress is one progress update.
type Progress struct {
	Phase   Phase
	Message string // non-empty for PhaseFailed
}

// ProgressFunc is called as a conversion moves between phases.
type ProgressFunc func(Progress)

// Options tune a single conversion.
type Options struct {
	// Separator is the CSV field separator; zero means auto-detect.
	Separator rune

	// Charset of the raw CSV. Empty selects csvio.DefaultCharset.
	Charset string

	// FormatCodes overrides per-kind display formats.
	FormatCodes map[sheet.Kind]string

	// LongNumberTextLen overrides the digit-string length above which a
	// numeric column degrades to text. Zero keeps the default.
	LongNumberTextLen int

	// MaxColumnWidth overrides the text column width cap. Zero keeps the
	// default.
	MaxColumnWidth int

	// Metadata for the document-properties parts. An empty Title
	// defaults to the source filename without extension.
	Metadata xlsx.Metadata

	// OnProgress, when set, receives phase updates.
	OnProgress ProgressFunc
}

func (o Options) report(p Progress) {
	if o.OnProgress != nil {
		o.OnProgress(p)
	}
}

// Result describes one finished conversion.
type Result struct {
	ID          uuid.UUID
	Filename    string
	Rows        int
	Columns     int
	OutputBytes int64
	Duration    time.Duration
}

// Convert reads CSV content from r and writes a complete XLSX package to w.
// Malformed tabular input is never fatal: inference degrades to text and
// unparseable cells become absent. Only unreadable input or a failing
// writer produce errors.
func Convert(r io.Reader, filename string, opts Options, w io.Writer) (*Result, error) {
	start := time.Now()
	opts.report(Progress{Phase: PhaseProcessing})

	charset := opts.Charset
	if charset == "" {
		charset = csvio.DefaultCharset
	}

	rows, err := csvio.Read(r, charset, opts.Separator)
	if err != nil {
		opts.report(Progress{Phase: PhaseFailed, Message: err.Error()})
		return nil, err
	}

	// a headerless input still yields one defaulted text column
	if len(rows) == 0 {
		rows = [][]string{{""}}
	}

	table := sheet.Process(rows, sheet.Options{
		FormatCodes:       opts.FormatCodes,
		LongNumberTextLen: opts.LongNumberTextLen,
		MaxColumnWidth:    float64(opts.MaxColumnWidth),
	})

	meta := opts.Metadata
	if meta.Title == "" {
		meta.Title = titleFromFilename(filename)
	}

	parts := xlsx.BuildParts(table, meta)

	cw := &countingWriter{w: w}
	if err := xlsx.WritePackage(cw, parts); err != nil {
		opts.report(Progress{Phase: PhaseFailed, Message: err.Error()})
		return nil, fmt.Errorf("writing package: %w", err)
	}

	opts.report(Progress{Phase: PhaseFinished})
	return &Result{
		ID:          uuid.New(),
		Filename:    filename,
		Rows:        len(table.Rows),
		Columns:     len(table.Columns),
		OutputBytes: cw.n,
		Duration:    time.Since(start),
	}, nil
}

// titleFromFilename strips the directory and extension from a source
// filename for use as the document title.
func titleFromFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
