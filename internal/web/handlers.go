package web

import (
	"bytes"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/tabforge/csv2xlsx/internal/convert"
	"github.com/tabforge/csv2xlsx/internal/history"
	"github.com/tabforge/csv2xlsx/internal/logging"
	"github.com/tabforge/csv2xlsx/internal/xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleHealth reports service liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleConvert converts one CSV to XLSX and streams the workbook back.
//
// The source is either an uploaded multipart "file" field or a "url" form
// value pointing at a remote CSV. Optional form values:
//
//   - separator: field separator ("," ";" "|" or "tab"); auto-detected when absent
//   - charset: source encoding (e.g. "windows-1252", "utf-8")
//   - title: document title; defaults to the source filename
//   - creator: document author for the core properties
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Convert.MaxFileSize)

	if err := r.ParseMultipartForm(s.cfg.Convert.MaxFileSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	opts := convert.Options{
		Separator:         parseSeparator(r.FormValue("separator")),
		Charset:           r.FormValue("charset"),
		LongNumberTextLen: s.cfg.Convert.LongNumberTextLen,
		MaxColumnWidth:    s.cfg.Convert.MaxColumnWidth,
		Metadata: xlsx.Metadata{
			Title:   r.FormValue("title"),
			Creator: r.FormValue("creator"),
		},
	}
	if opts.Charset == "" {
		opts.Charset = s.cfg.Convert.DefaultCharset
	}

	var (
		buf      bytes.Buffer
		result   *convert.Result
		err      error
		filename string
	)

	if rawURL := r.FormValue("url"); rawURL != "" {
		result, err = s.service.ConvertURL(r.Context(), rawURL, opts, &buf)
		filename = filenameFromURL(rawURL)
	} else {
		file, header, ferr := r.FormFile("file")
		if ferr != nil {
			writeError(w, http.StatusBadRequest, `missing "file" upload or "url" form value`)
			return
		}
		defer file.Close()
		filename = header.Filename
		result, err = s.service.Convert(r.Context(), file, header.Filename, opts, &buf)
	}

	if err != nil {
		s.record(r, history.Conversion{
			Filename: filename,
			Outcome:  "failed",
			Error:    err.Error(),
		})
		switch {
		case errors.Is(err, convert.ErrBusy):
			w.Header().Set("Retry-After", "30")
			writeError(w, http.StatusServiceUnavailable, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	s.record(r, history.Conversion{
		ID:          result.ID,
		Filename:    result.Filename,
		Rows:        result.Rows,
		Columns:     result.Columns,
		OutputBytes: result.OutputBytes,
		Duration:    result.Duration,
		Outcome:     "ok",
	})

	logger.Info("conversion finished",
		"filename", result.Filename,
		"rows", result.Rows,
		"columns", result.Columns,
		"bytes", result.OutputBytes,
		"duration_ms", result.Duration.Milliseconds(),
	)

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment",
		map[string]string{"filename": outputFilename(result.Filename)}))
	w.Header().Set("Content-Length", strconv.FormatInt(int64(buf.Len()), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error("writing response", "error", err)
	}
}

// handleListConversions returns recent conversion history, newest first.
func (s *Server) handleListConversions(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "conversion history is not enabled")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	conversions, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		logging.FromContext(r.Context()).Error("listing conversions", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list conversions")
		return
	}
	if conversions == nil {
		conversions = []history.Conversion{}
	}

	writeJSON(w, map[string]interface{}{"conversions": conversions})
}

// record persists one history entry when a store is configured. Failures
// are logged, never surfaced: history must not break conversions.
func (s *Server) record(r *http.Request, c history.Conversion) {
	if s.store == nil {
		return
	}
	if err := s.store.Record(r.Context(), c); err != nil {
		logging.FromContext(r.Context()).Error("recording conversion", "error", err)
	}
}

// parseSeparator maps the form value to a separator rune. Zero means
// auto-detect.
func parseSeparator(v string) rune {
	switch strings.ToLower(v) {
	case "":
		return 0
	case "tab", "\\t":
		return '\t'
	default:
		return []rune(v)[0]
	}
}

// filenameFromURL extracts the source filename from a CSV URL, ignoring
// query and fragment.
func filenameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return path.Base(u.Path)
}

// outputFilename swaps the source extension for .xlsx.
func outputFilename(src string) string {
	base := path.Base(strings.ReplaceAll(src, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return "converted.xlsx"
	}
	return strings.TrimSuffix(base, path.Ext(base)) + ".xlsx"
}
