package importer

import (
	"bytes"
	"encoding/csv"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// parseDelimited reads rows split on comma, which is ',' for csv and '\t'
// for tsv decks.
func parseDelimited(data []byte, comma rune, what string) ([]models.WordRecord, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.Comma = comma
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewParseError(what, "malformed rows", err)
	}
	return recordsFromRows(rows), nil
}
