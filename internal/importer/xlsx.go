package importer

import (
	"bytes"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/models"
	"github.com/xuri/excelize/v2"
)

// parseXLSX reads the first sheet with the same column layout as CSV decks.
func parseXLSX(data []byte) ([]models.WordRecord, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewParseError("xlsx deck", "not a workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParseError("xlsx deck", "workbook has no sheets", nil)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewParseError("xlsx deck", "cannot read sheet "+sheets[0], err)
	}
	return recordsFromRows(rows), nil
}
