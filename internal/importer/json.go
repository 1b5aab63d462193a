package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/models"
)

const (
	definitionSeparator   = "; "
	partOfSpeechSeparator = ", "
)

type jsonTranslation struct {
	Type        string `json:"type"`
	Translation string `json:"translation"`
}

type jsonEntry struct {
	Word         string
	Translations []jsonTranslation
}

func parseJSON(data []byte) ([]models.WordRecord, error) {
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewParseError("json deck", "expected a list of {word, translations}", err)
	}

	entries := make([]jsonEntry, 0, len(raw))
	for i, fields := range raw {
		e, err := decodeEntry(fields)
		if err != nil {
			return nil, errors.NewParseError("json deck", fmt.Sprintf("entry %d: %s", i, err.Error()), nil)
		}
		entries = append(entries, e)
	}

	words := make([]models.WordRecord, 0, len(entries))
	for _, e := range entries {
		var defs []string
		types := map[string]bool{}
		for _, tr := range e.Translations {
			if t := strings.TrimSpace(tr.Translation); t != "" {
				defs = append(defs, t)
			}
			if t := strings.TrimSpace(tr.Type); t != "" {
				types[t] = true
			}
		}
		pos := make([]string, 0, len(types))
		for t := range types {
			pos = append(pos, t)
		}
		sort.Strings(pos)

		w := models.NewWordRecord(e.Word, strings.Join(pos, partOfSpeechSeparator), strings.Join(defs, definitionSeparator), "")
		if w.Valid() {
			words = append(words, w)
		}
	}
	return words, nil
}

// decodeEntry requires a string word key. A present but blank word is
// accepted here and dropped with the other invalid records.
func decodeEntry(fields map[string]json.RawMessage) (jsonEntry, error) {
	var e jsonEntry
	if fields == nil {
		return e, fmt.Errorf("not an object")
	}
	word, ok := fields["word"]
	if !ok {
		return e, fmt.Errorf("missing word")
	}
	if err := json.Unmarshal(word, &e.Word); err != nil {
		return e, fmt.Errorf("word is not a string")
	}
	if tr, ok := fields["translations"]; ok && !isNull(tr) {
		if err := json.Unmarshal(tr, &e.Translations); err != nil {
			return e, fmt.Errorf("translations must be a list of {type, translation}")
		}
	}
	return e, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
