package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/models"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	in := models.Snapshot{
		Words: []models.WordRecord{
			{Word: "apple", Definition: "苹果", PartOfSpeech: "n", Stage: 3, Learned: true, Attempts: 2, Reviewed: true},
			{Word: "run", Definition: "跑 <fast>", Stage: 2, Tested: true},
		},
		Settings: models.Settings{LearnCount: 4, ReviewCount: 5, TestCount: 6},
		Source:   "cet6.csv",
	}

	data, err := models.EncodeSnapshot(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<fast>", "html characters are written verbatim")

	out, err := models.DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeSnapshot_BareArray(t *testing.T) {
	snap, err := models.DecodeSnapshot([]byte(`[{"word":"apple","stage":2},{"word":"pear"}]`))
	require.NoError(t, err)

	require.Len(t, snap.Words, 2)
	assert.Equal(t, 2, snap.Words[0].Stage)
	assert.Equal(t, 1, snap.Words[1].Stage, "missing stage defaults to 1")
	assert.Equal(t, models.DefaultSettings(), snap.Settings)
	assert.Empty(t, snap.Source)
}

func TestDecodeSnapshot_TolerantFields(t *testing.T) {
	payload := `{
		"words": [{"word": " zebra ", "stage": 9, "attempts": -3, "learned": 1, "reviewed": "true"}],
		"settings": {"learn_count": 0, "review_count": "7"}
	}`

	snap, err := models.DecodeSnapshot([]byte(payload))
	require.NoError(t, err)

	w := snap.Words[0]
	assert.Equal(t, "zebra", w.Word)
	assert.Equal(t, 3, w.Stage, "stage is clamped")
	assert.Equal(t, 0, w.Attempts)
	assert.True(t, w.Learned)
	assert.True(t, w.Reviewed)
	assert.False(t, w.Tested)

	assert.Equal(t, models.DefaultLearnCount, snap.Settings.LearnCount, "non-positive count keeps default")
	assert.Equal(t, 7, snap.Settings.ReviewCount)
	assert.Equal(t, models.DefaultTestCount, snap.Settings.TestCount)
}

func TestDecodeSnapshot_WholeFloatCounts(t *testing.T) {
	snap, err := models.DecodeSnapshot([]byte(`[{"word": "apple", "stage": 2.0, "attempts": 4e0}]`))
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Words[0].Stage)
	assert.Equal(t, 4, snap.Words[0].Attempts)
}

func TestDecodeSnapshot_OutOfRangeCountKeepsDefault(t *testing.T) {
	snap, err := models.DecodeSnapshot([]byte(`{"words": [{"word": "apple"}], "settings": {"learn_count": 1e300, "test_count": 1.5}}`))
	require.NoError(t, err)
	assert.Equal(t, models.DefaultLearnCount, snap.Settings.LearnCount)
	assert.Equal(t, models.DefaultTestCount, snap.Settings.TestCount)
}

func TestDecodeSnapshot_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"empty", "  "},
		{"not json", "words: apple"},
		{"scalar", "42"},
		{"element not object", `["apple"]`},
		{"missing word", `{"words": [{"definition": "fruit"}]}`},
		{"words not list", `{"words": {"word": "apple"}}`},
		{"bad stage", `[{"word": "apple", "stage": "high"}]`},
		{"huge stage", `[{"word": "apple", "stage": 1e300}]`},
		{"fractional stage", `[{"word": "apple", "stage": 2.5}]`},
		{"huge attempts", `[{"word": "apple", "attempts": -1e19}]`},
		{"huge attempts string", `[{"word": "apple", "attempts": "99999999999999999999"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := models.DecodeSnapshot([]byte(tt.payload))
			require.Error(t, err)
			assert.True(t, errors.IsParse(err))
		})
	}
}
