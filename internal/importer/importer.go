// Package importer turns deck files into fresh word records.
package importer

import (
	"path/filepath"
	"strings"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/models"
)

// Format identifies a deck file layout.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// Formats lists every supported format.
var Formats = []Format{FormatCSV, FormatTSV, FormatJSON, FormatXLSX}

// ParseFormat resolves a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))); f {
	case FormatCSV, FormatTSV, FormatJSON, FormatXLSX:
		return f, nil
	case "txt":
		return FormatCSV, nil
	}
	return "", errors.NewValidationError("format", "must be one of csv, tsv, json, xlsx")
}

// DetectFormat guesses the format from a file extension.
func DetectFormat(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.NewValidationError("format", "cannot detect format of "+filepath.Base(path))
	}
	return ParseFormat(ext)
}

// Parse decodes a deck. Every returned record has fresh mastery state and a
// non-empty word; a payload yielding no words is a parse error.
func Parse(data []byte, format Format) ([]models.WordRecord, error) {
	var (
		words []models.WordRecord
		err   error
	)
	switch format {
	case FormatCSV:
		words, err = parseDelimited(data, ',', "csv deck")
	case FormatTSV:
		words, err = parseDelimited(data, '\t', "tsv deck")
	case FormatJSON:
		words, err = parseJSON(data)
	case FormatXLSX:
		words, err = parseXLSX(data)
	default:
		return nil, errors.NewValidationError("format", "unsupported format "+string(format))
	}
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, errors.NewParseError(string(format)+" deck", "no words found", nil)
	}
	return words, nil
}

// recordsFromRows maps word, part-of-speech, definition, example columns.
// Row 0 is skipped when it looks like a header.
func recordsFromRows(rows [][]string) []models.WordRecord {
	start := 0
	if len(rows) > 0 && isHeader(rows[0]) {
		start = 1
	}

	words := make([]models.WordRecord, 0, len(rows))
	for _, row := range rows[start:] {
		w := models.NewWordRecord(cell(row, 0), cell(row, 1), cell(row, 2), cell(row, 3))
		if w.Valid() {
			words = append(words, w)
		}
	}
	return words
}

func isHeader(row []string) bool {
	for _, c := range row {
		if strings.Contains(c, "单词") || strings.Contains(strings.ToLower(c), "word") {
			return true
		}
	}
	return false
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}
