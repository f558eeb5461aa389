// Package csvio reads raw CSV bytes into rows of strings. It handles the
// encodings CSV exports actually arrive in (Excel's default is
// Windows-1252, not UTF-8) and guesses the separator when the caller does
// not know it.
package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// DefaultCharset is assumed when the caller supplies none.
const DefaultCharset = "windows-1252"

// separatorCandidates are scored during auto-detection, in preference order
// for ties.
var separatorCandidates = []rune{',', ';', '\t', '|'}

// decoderFor maps a charset label to a decoder. A nil decoder means the
// input is already UTF-8.
func decoderFor(charset string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "utf-16", "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder(), nil
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder(), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder(), nil
	case "windows-1251", "cp1251":
		return charmap.Windows1251.NewDecoder(), nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1.NewDecoder(), nil
	case "iso-8859-15", "latin9":
		return charmap.ISO8859_15.NewDecoder(), nil
	case "macintosh", "mac-roman":
		return charmap.Macintosh.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}
}

// Decode converts raw bytes in the given charset to a UTF-8 string and
// strips a leading byte-order mark.
func Decode(data []byte, charset string) (string, error) {
	dec, err := decoderFor(charset)
	if err != nil {
		return "", err
	}
	if dec != nil {
		data, err = dec.Bytes(data)
		if err != nil {
			return "", fmt.Errorf("decoding %s: %w", charset, err)
		}
	}
	return strings.TrimPrefix(string(data), "\uFEFF"), nil
}

// DetectSeparator guesses the field separator by counting candidate
// occurrences outside quoted sections in the first few lines. Ties and
// empty input fall back to a comma.
func DetectSeparator(sample string) rune {
	const maxLines = 10

	counts := make(map[rune]int, len(separatorCandidates))
	lines := 0
	inQuotes := false

scan:
	for _, r := range sample {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == '\n' && !inQuotes:
			lines++
			if lines >= maxLines {
				break scan
			}
		case !inQuotes:
			counts[r]++
		}
	}

	best := ','
	bestCount := 0
	for _, c := range separatorCandidates {
		if counts[c] > bestCount {
			best = c
			bestCount = counts[c]
		}
	}
	return best
}

// Read parses CSV content from r into rows of strings. A zero sep triggers
// auto-detection. Rows may have differing lengths; quoting is handled
// leniently so real-world exports survive.
func Read(r io.Reader, charset string, sep rune) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	text, err := Decode(data, charset)
	if err != nil {
		return nil, err
	}

	if sep == 0 {
		sep = DetectSeparator(text)
	}

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	return rows, nil
}

// ReadBytes is Read over an in-memory buffer.
func ReadBytes(data []byte, charset string, sep rune) ([][]string, error) {
	return Read(bytes.NewReader(data), charset, sep)
}
