package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vytor/wordflash/internal/errors"
)

// Snapshot is the full persisted state of a store.
type Snapshot struct {
	Words    []WordRecord `json:"words"`
	Settings Settings     `json:"settings"`
	Source   string       `json:"source"`
}

// EncodeSnapshot renders s as indented JSON without HTML escaping.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	if s.Words == nil {
		s.Words = []WordRecord{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot parses a snapshot written by any schema revision.
//
// A bare array is accepted as the word list with default settings. Missing
// optional fields take their defaults; an element that is not an object or
// has no "word" key fails the whole decode.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	snap := Snapshot{Settings: DefaultSettings()}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Snapshot{}, errors.NewParseError("snapshot", "empty payload", nil)
	}

	var rawWords []json.RawMessage
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &rawWords); err != nil {
			return Snapshot{}, errors.NewParseError("snapshot", "invalid word list", err)
		}
	case '{':
		var top map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &top); err != nil {
			return Snapshot{}, errors.NewParseError("snapshot", "invalid object", err)
		}
		if raw, ok := top["words"]; ok && !isNull(raw) {
			if err := json.Unmarshal(raw, &rawWords); err != nil {
				return Snapshot{}, errors.NewParseError("snapshot", "words is not a list", err)
			}
		}
		if raw, ok := top["settings"]; ok && !isNull(raw) {
			settings, err := decodeSettings(raw)
			if err != nil {
				return Snapshot{}, err
			}
			snap.Settings = settings
		}
		if raw, ok := top["source"]; ok && !isNull(raw) {
			if err := json.Unmarshal(raw, &snap.Source); err != nil {
				return Snapshot{}, errors.NewParseError("snapshot", "source is not a string", err)
			}
		}
	default:
		return Snapshot{}, errors.NewParseError("snapshot", "expected an object or a list", nil)
	}

	snap.Words = make([]WordRecord, 0, len(rawWords))
	for i, raw := range rawWords {
		w, err := decodeWord(raw)
		if err != nil {
			return Snapshot{}, errors.NewParseError("snapshot", fmt.Sprintf("word #%d: %v", i, err), err)
		}
		snap.Words = append(snap.Words, w)
	}
	return snap, nil
}

func decodeWord(raw json.RawMessage) (WordRecord, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return WordRecord{}, fmt.Errorf("not an object")
	}
	rawWord, ok := fields["word"]
	if !ok {
		return WordRecord{}, fmt.Errorf("missing word")
	}

	w := WordRecord{Stage: MinStage}
	var err error
	if w.Word, err = decodeString(rawWord); err != nil {
		return WordRecord{}, fmt.Errorf("word: %w", err)
	}
	for key, dst := range map[string]*string{
		"definition": &w.Definition,
		"pos":        &w.PartOfSpeech,
		"example":    &w.Example,
	} {
		if v, ok := fields[key]; ok {
			if *dst, err = decodeString(v); err != nil {
				return WordRecord{}, fmt.Errorf("%s: %w", key, err)
			}
		}
	}
	if v, ok := fields["stage"]; ok {
		if w.Stage, err = decodeInt(v, MinStage); err != nil {
			return WordRecord{}, fmt.Errorf("stage: %w", err)
		}
	}
	if v, ok := fields["attempts"]; ok {
		if w.Attempts, err = decodeInt(v, 0); err != nil {
			return WordRecord{}, fmt.Errorf("attempts: %w", err)
		}
	}
	for key, dst := range map[string]*bool{
		"learned":  &w.Learned,
		"reviewed": &w.Reviewed,
		"tested":   &w.Tested,
	} {
		if v, ok := fields[key]; ok {
			if *dst, err = decodeBool(v); err != nil {
				return WordRecord{}, fmt.Errorf("%s: %w", key, err)
			}
		}
	}
	w.Normalize()
	return w, nil
}

func decodeSettings(raw json.RawMessage) (Settings, error) {
	s := DefaultSettings()
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return s, errors.NewParseError("snapshot", "settings is not an object", err)
	}
	for key, dst := range map[string]*int{
		"learn_count":  &s.LearnCount,
		"review_count": &s.ReviewCount,
		"test_count":   &s.TestCount,
	} {
		v, ok := fields[key]
		if !ok {
			continue
		}
		n, err := decodeInt(v, *dst)
		if err != nil || n <= 0 {
			// keep the default for unusable counts
			continue
		}
		*dst = n
	}
	return s, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeString(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if json.Unmarshal(raw, &n) == nil {
			return n.String(), nil
		}
		return "", fmt.Errorf("not a string")
	}
	return s, nil
}

// decodeInt accepts whole JSON numbers and numeric strings that fit in an
// int32. Fractions and out-of-range values are errors.
func decodeInt(raw json.RawMessage, def int) (int, error) {
	if isNull(raw) {
		return def, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return 0, fmt.Errorf("not an integer")
		}
		if f < math.MinInt32 || f > math.MaxInt32 {
			return 0, fmt.Errorf("out of range")
		}
		return int(f), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
		if err != nil {
			return 0, fmt.Errorf("not an integer")
		}
		return int(n), nil
	}
	return 0, fmt.Errorf("not an integer")
}

// decodeBool accepts booleans, numbers (non-zero is true) and "true"/"false" strings.
func decodeBool(raw json.RawMessage) (bool, error) {
	if isNull(raw) {
		return false, nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f != 0, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return v, nil
		}
	}
	return false, fmt.Errorf("not a boolean")
}
